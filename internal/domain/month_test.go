package domain

import (
	"errors"
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29},
		{1900, 2, 28},
		{2025, 4, 30},
		{2025, 12, 31},
		{2025, 1, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func TestLeadingFillers(t *testing.T) {
	// 2023-10-01 is a Sunday, 2024-01-01 a Monday, 2026-10-01 a Thursday.
	cases := []struct {
		year, month, want int
	}{
		{2023, 10, 6},
		{2024, 1, 0},
		{2026, 10, 3},
	}
	for _, tc := range cases {
		if got := LeadingFillers(tc.year, tc.month); got != tc.want {
			t.Fatalf("LeadingFillers(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
	for month := 1; month <= 12; month++ {
		got := LeadingFillers(2025, month)
		if got < 0 || got > 6 {
			t.Fatalf("LeadingFillers(2025, %d) = %d out of range", month, got)
		}
	}
}

func TestMondayIndex(t *testing.T) {
	if got := MondayIndex(time.Sunday); got != 6 {
		t.Fatalf("MondayIndex(Sunday) = %d, want 6", got)
	}
	if got := MondayIndex(time.Monday); got != 0 {
		t.Fatalf("MondayIndex(Monday) = %d, want 0", got)
	}
	if got := MondayIndex(time.Saturday); got != 5 {
		t.Fatalf("MondayIndex(Saturday) = %d, want 5", got)
	}
}

func TestYearMonthAdd(t *testing.T) {
	cases := []struct {
		name  string
		start YearMonth
		delta int
		want  YearMonth
	}{
		{"forward within year", YearMonth{2025, 3}, 1, YearMonth{2025, 4}},
		{"back across january", YearMonth{2025, 1}, -1, YearMonth{2024, 12}},
		{"forward across december", YearMonth{2025, 12}, 1, YearMonth{2026, 1}},
		{"full year forward", YearMonth{2025, 7}, 12, YearMonth{2026, 7}},
		{"full year back", YearMonth{2025, 7}, -12, YearMonth{2024, 7}},
		{"many years back", YearMonth{2025, 2}, -26, YearMonth{2022, 12}},
		{"zero", YearMonth{2025, 5}, 0, YearMonth{2025, 5}},
		{"large forward", YearMonth{2025, 11}, 27, YearMonth{2028, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.start.Add(tc.delta); got != tc.want {
				t.Fatalf("Add(%d) = %+v, want %+v", tc.delta, got, tc.want)
			}
		})
	}
}

func TestYearMonthAddRoundTrip(t *testing.T) {
	start := YearMonth{2025, 6}
	for delta := -40; delta <= 40; delta++ {
		got := start.Add(delta).Add(-delta)
		if got != start {
			t.Fatalf("Add(%d).Add(%d) = %+v, want %+v", delta, -delta, got, start)
		}
		if !start.Add(delta).Valid() {
			t.Fatalf("Add(%d) produced invalid month %+v", delta, start.Add(delta))
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := (YearMonth{2024, 13}).Normalize(); got != (YearMonth{2025, 1}) {
		t.Fatalf("Normalize(2024/13) = %+v", got)
	}
	if got := (YearMonth{2024, 0}).Normalize(); got != (YearMonth{2023, 12}) {
		t.Fatalf("Normalize(2024/0) = %+v", got)
	}
}

func TestNewYearMonthValidation(t *testing.T) {
	for _, month := range []int{0, 13, -1} {
		if _, err := NewYearMonth(2025, month); !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("NewYearMonth(2025, %d) error = %v, want ErrInvalidMonth", month, err)
		}
	}
	ym, err := NewYearMonth(2025, 12)
	if err != nil {
		t.Fatalf("NewYearMonth() error = %v", err)
	}
	if ym.Month != 12 {
		t.Fatalf("unexpected month %d", ym.Month)
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)
	if !IsToday(now, 2026, 10, 17) {
		t.Fatal("expected exact match to be today")
	}
	if IsToday(now, 2026, 9, 17) {
		t.Fatal("expected other month with same day to not be today")
	}
	if IsToday(now, 2025, 10, 17) {
		t.Fatal("expected other year with same day to not be today")
	}
}
