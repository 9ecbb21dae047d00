package app

import (
	"context"
	"fmt"
	"time"

	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/domain"
)

// Clock returns the current time.
type Clock func() time.Time

// ServiceConfig holds label overrides and navigation defaults.
type ServiceConfig struct {
	MonthNames  []calendar.Name
	DayNames    []calendar.Name
	ShowButtons bool
}

// Service answers read-only month and day queries over a task source.
type Service struct {
	source      TaskSource
	clock       Clock
	names       calendar.Names
	monthNames  []calendar.Name
	dayNames    []calendar.Name
	showButtons bool
}

// NewService constructs a new value for this package.
func NewService(source TaskSource, clock Clock, cfg ServiceConfig) *Service {
	if source == nil {
		source = StaticTasks(nil)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		source:      source,
		clock:       clock,
		names:       calendar.ResolveNames(cfg.MonthNames, cfg.DayNames),
		monthNames:  cfg.MonthNames,
		dayNames:    cfg.DayNames,
		showButtons: cfg.ShowButtons,
	}
}

// Names returns the resolved month and weekday labels.
func (s *Service) Names() calendar.Names {
	return s.names
}

// Now returns the service clock reading.
func (s *Service) Now() time.Time {
	return s.clock()
}

// Tasks returns the current task list.
func (s *Service) Tasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.source.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CalendarOptions builds view options with the service labels, clock and the given callback.
func (s *Service) CalendarOptions(callback calendar.TaskCallback) calendar.Options {
	return calendar.Options{
		MonthNames:   s.monthNames,
		DayNames:     s.dayNames,
		ShowButtons:  calendar.Bool(s.showButtons),
		TaskCallback: callback,
		Now:          s.clock,
	}
}

// MonthLayout returns the grid for one month. The month must be 1..12.
func (s *Service) MonthLayout(ctx context.Context, year, month int) (calendar.Layout, error) {
	if _, err := domain.NewYearMonth(year, month); err != nil {
		return calendar.Layout{}, fmt.Errorf("month layout %d-%d: %w", year, month, err)
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return calendar.Layout{}, err
	}
	return calendar.BuildLayout(year, month, tasks, s.clock()), nil
}

// DayDetail returns the modal content for one day.
func (s *Service) DayDetail(ctx context.Context, year, month, day int) (calendar.DayDetail, error) {
	if _, err := domain.NewYearMonth(year, month); err != nil {
		return calendar.DayDetail{}, fmt.Errorf("day detail %d-%d-%d: %w", year, month, day, err)
	}
	if day < 1 || day > domain.DaysInMonth(year, month) {
		return calendar.DayDetail{}, fmt.Errorf("day detail %d-%d-%d: %w", year, month, day, domain.ErrInvalidDay)
	}
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return calendar.DayDetail{}, err
	}
	return calendar.DayDetailFor(s.names, year, month, day, domain.TasksOn(tasks, year, month, day)), nil
}
