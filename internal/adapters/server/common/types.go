// Package common provides transport-agnostic server contracts used by HTTP, MCP, and web adapters.
package common

import (
	"context"
	"errors"
	"time"

	"github.com/evanschultz/moncal/internal/calendar"
)

// ErrInvalidRequest reports malformed or out-of-range calendar input.
var ErrInvalidRequest = errors.New("invalid request")

// MonthRequest selects one calendar month.
type MonthRequest struct {
	Year  int
	Month int
}

// DayRequest selects one calendar day.
type DayRequest struct {
	Year  int
	Month int
	Day   int
}

// MonthState is the transport view of one month grid.
type MonthState struct {
	Title     string        `json:"title"`
	MonthName calendar.Name `json:"month_name"`
	TaskCount int           `json:"task_count"`
	calendar.Layout
}

// CalendarReader serves read-only calendar state to transport adapters.
type CalendarReader interface {
	Now() time.Time
	Month(context.Context, MonthRequest) (MonthState, error)
	Day(context.Context, DayRequest) (calendar.DayDetail, error)
	Agenda(context.Context, MonthRequest) (string, error)
}
