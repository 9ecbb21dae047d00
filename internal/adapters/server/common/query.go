package common

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// QueryInt reads one integer query parameter. Absent or blank values yield fallback.
func QueryInt(values url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidRequest, key, raw)
	}
	return n, nil
}

// MonthRequestFromQuery reads year and month, defaulting each to now.
func MonthRequestFromQuery(values url.Values, now time.Time) (MonthRequest, error) {
	year, err := QueryInt(values, "year", now.Year())
	if err != nil {
		return MonthRequest{}, err
	}
	month, err := QueryInt(values, "month", int(now.Month()))
	if err != nil {
		return MonthRequest{}, err
	}
	return MonthRequest{Year: year, Month: month}, nil
}

// DayRequestFromQuery reads year, month, and a required day.
func DayRequestFromQuery(values url.Values, now time.Time) (DayRequest, error) {
	month, err := MonthRequestFromQuery(values, now)
	if err != nil {
		return DayRequest{}, err
	}
	if strings.TrimSpace(values.Get("day")) == "" {
		return DayRequest{}, fmt.Errorf("%w: day is required", ErrInvalidRequest)
	}
	day, err := QueryInt(values, "day", 0)
	if err != nil {
		return DayRequest{}, err
	}
	return DayRequest{Year: month.Year, Month: month.Month, Day: day}, nil
}
