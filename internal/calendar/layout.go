package calendar

import (
	"time"

	"github.com/evanschultz/moncal/internal/domain"
)

// DayLayout is one dated cell of the month grid.
type DayLayout struct {
	Day   int           `json:"day"`
	Today bool          `json:"today"`
	Tasks []domain.Task `json:"tasks"`
}

// Layout is the derived month grid: fillers, then one entry per day.
type Layout struct {
	Year           int         `json:"year"`
	Month          int         `json:"month"`
	LeadingFillers int         `json:"leading_fillers"`
	DaysInMonth    int         `json:"days_in_month"`
	Days           []DayLayout `json:"days"`
}

// CellCount returns fillers plus dated cells.
func (l Layout) CellCount() int {
	return l.LeadingFillers + len(l.Days)
}

// Day returns the layout of one day of the month.
func (l Layout) Day(day int) (DayLayout, bool) {
	if day < 1 || day > len(l.Days) {
		return DayLayout{}, false
	}
	return l.Days[day-1], true
}

// TaskCount sums the tasks shown in the month.
func (l Layout) TaskCount() int {
	total := 0
	for _, day := range l.Days {
		total += len(day.Tasks)
	}
	return total
}

// BuildLayout maps (year, month, tasks) deterministically onto a Monday-first grid.
// The month is normalized first, so the result always describes a real month.
func BuildLayout(year, month int, tasks []domain.Task, now time.Time) Layout {
	ym := domain.YearMonth{Year: year, Month: month}.Normalize()
	total := domain.DaysInMonth(ym.Year, ym.Month)
	out := Layout{
		Year:           ym.Year,
		Month:          ym.Month,
		LeadingFillers: domain.LeadingFillers(ym.Year, ym.Month),
		DaysInMonth:    total,
		Days:           make([]DayLayout, 0, total),
	}
	for day := 1; day <= total; day++ {
		out.Days = append(out.Days, DayLayout{
			Day:   day,
			Today: domain.IsToday(now, ym.Year, ym.Month, day),
			Tasks: domain.TasksOn(tasks, ym.Year, ym.Month, day),
		})
	}
	return out
}
