package calendar

import (
	"strings"
	"time"

	"github.com/evanschultz/moncal/internal/domain"
)

// Name carries the full and abbreviated label for a month or weekday.
type Name struct {
	Full  string `json:"full" toml:"full"`
	Short string `json:"short" toml:"short"`
}

// TaskCallback receives a clicked day and exactly that day's tasks.
type TaskCallback func(year, month, day int, tasks []domain.Task)

// Options configures a View. Every field falls back to a default when absent.
type Options struct {
	MonthNames   []Name
	DayNames     []Name
	ShowButtons  *bool
	TaskCallback TaskCallback
	Now          func() time.Time
}

// Names holds the resolved month and weekday labels.
type Names struct {
	Months [12]Name
	Days   [7]Name
}

// MonthName returns the label for a 1-indexed month, normalizing out-of-range input.
func (n Names) MonthName(month int) Name {
	ym := domain.YearMonth{Month: month}.Normalize()
	return n.Months[ym.Month-1]
}

// DefaultMonthNames returns the English month labels.
func DefaultMonthNames() []Name {
	return []Name{
		{Full: "January", Short: "Jan"},
		{Full: "February", Short: "Feb"},
		{Full: "March", Short: "Mar"},
		{Full: "April", Short: "Apr"},
		{Full: "May", Short: "May"},
		{Full: "June", Short: "Jun"},
		{Full: "July", Short: "Jul"},
		{Full: "August", Short: "Aug"},
		{Full: "September", Short: "Sep"},
		{Full: "October", Short: "Oct"},
		{Full: "November", Short: "Nov"},
		{Full: "December", Short: "Dec"},
	}
}

// DefaultDayNames returns the English weekday labels, Monday first.
func DefaultDayNames() []Name {
	return []Name{
		{Full: "Monday", Short: "M"},
		{Full: "Tuesday", Short: "T"},
		{Full: "Wednesday", Short: "W"},
		{Full: "Thursday", Short: "Th"},
		{Full: "Friday", Short: "F"},
		{Full: "Saturday", Short: "Sa"},
		{Full: "Sunday", Short: "Su"},
	}
}

// ResolveNames merges overrides over the defaults entry by entry.
func ResolveNames(monthNames, dayNames []Name) Names {
	var names Names
	defaults := DefaultMonthNames()
	for i := range names.Months {
		names.Months[i] = mergeName(defaults[i], monthNames, i)
	}
	dayDefaults := DefaultDayNames()
	for i := range names.Days {
		names.Days[i] = mergeName(dayDefaults[i], dayNames, i)
	}
	return names
}

// mergeName picks override fields when present.
func mergeName(def Name, overrides []Name, idx int) Name {
	if idx >= len(overrides) {
		return def
	}
	out := def
	if v := strings.TrimSpace(overrides[idx].Full); v != "" {
		out.Full = v
	}
	if v := strings.TrimSpace(overrides[idx].Short); v != "" {
		out.Short = v
	}
	return out
}

// Bool returns a pointer to v, for Options.ShowButtons.
func Bool(v bool) *bool {
	return &v
}

// showButtons resolves the ShowButtons default.
func (o Options) showButtons() bool {
	if o.ShowButtons == nil {
		return true
	}
	return *o.ShowButtons
}

// now resolves the host clock.
func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
