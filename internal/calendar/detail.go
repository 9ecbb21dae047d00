package calendar

import (
	"fmt"

	"github.com/evanschultz/moncal/internal/domain"
)

// DayDetail is the content of the default "day's tasks" modal.
type DayDetail struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Day   int           `json:"day"`
	Label string        `json:"label"`
	Lines []string      `json:"lines"`
	Tasks []domain.Task `json:"tasks"`
}

// DayDetailFor builds the modal header and one plain-text line per task.
func DayDetailFor(names Names, year, month, day int, tasks []domain.Task) DayDetail {
	lines := make([]string, 0, len(tasks))
	for _, task := range tasks {
		lines = append(lines, task.LongText())
	}
	return DayDetail{
		Year:  year,
		Month: month,
		Day:   day,
		Label: fmt.Sprintf("Tasks: %d. %s %d.", year, names.MonthName(month).Full, day),
		Lines: lines,
		Tasks: domain.CloneTasks(tasks),
	}
}
