package domain

import "time"

// YearMonth identifies one calendar month. Month is 1-indexed.
type YearMonth struct {
	Year  int
	Month int
}

// NewYearMonth validates month and returns the pair.
func NewYearMonth(year, month int) (YearMonth, error) {
	if month < 1 || month > 12 {
		return YearMonth{}, ErrInvalidMonth
	}
	return YearMonth{Year: year, Month: month}, nil
}

// Valid reports whether Month is within 1..12.
func (ym YearMonth) Valid() bool {
	return ym.Month >= 1 && ym.Month <= 12
}

// Normalize folds an out-of-range month into the year with carry.
func (ym YearMonth) Normalize() YearMonth {
	zero := ym.Month - 1
	carry := zero / 12
	zero %= 12
	if zero < 0 {
		zero += 12
		carry--
	}
	return YearMonth{Year: ym.Year + carry, Month: zero + 1}
}

// Add shifts by delta months; any integer offset is accepted.
func (ym YearMonth) Add(delta int) YearMonth {
	return YearMonth{Year: ym.Year, Month: ym.Month + delta}.Normalize()
}

// First returns midnight of the first day in the host local calendar.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.Local)
}

// DaysInMonth resolves the month length as day 0 of the following month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.Local).Day()
}

// MondayIndex maps time.Weekday (Sunday=0) to Monday=0 .. Sunday=6.
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// LeadingFillers counts blank cells before day 1 in a Monday-first grid.
func LeadingFillers(year, month int) int {
	return MondayIndex(YearMonth{Year: year, Month: month}.First().Weekday())
}

// IsToday reports an exact year/month/day match against now.
func IsToday(now time.Time, year, month, day int) bool {
	return now.Year() == year && int(now.Month()) == month && now.Day() == day
}
