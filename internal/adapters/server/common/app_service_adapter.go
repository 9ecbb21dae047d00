package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evanschultz/moncal/internal/agenda"
	"github.com/evanschultz/moncal/internal/app"
	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/domain"
)

// AppServiceAdapter maps transport contracts onto app.Service month and day APIs.
type AppServiceAdapter struct {
	service *app.Service
}

// NewAppServiceAdapter builds one common adapter over an app.Service instance.
func NewAppServiceAdapter(service *app.Service) *AppServiceAdapter {
	return &AppServiceAdapter{service: service}
}

// Now returns the service clock reading.
func (a *AppServiceAdapter) Now() time.Time {
	if a == nil || a.service == nil {
		return time.Now()
	}
	return a.service.Now()
}

// Month resolves one month grid with its display title.
func (a *AppServiceAdapter) Month(ctx context.Context, in MonthRequest) (MonthState, error) {
	if a == nil || a.service == nil {
		return MonthState{}, errors.New("app service adapter is not configured")
	}
	layout, err := a.service.MonthLayout(ctx, in.Year, in.Month)
	if err != nil {
		return MonthState{}, mapAppError("month", err)
	}
	name := a.service.Names().MonthName(layout.Month)
	return MonthState{
		Title:     fmt.Sprintf("%d. %s", layout.Year, name.Full),
		MonthName: name,
		TaskCount: layout.TaskCount(),
		Layout:    layout,
	}, nil
}

// Day resolves the modal content for one day.
func (a *AppServiceAdapter) Day(ctx context.Context, in DayRequest) (calendar.DayDetail, error) {
	if a == nil || a.service == nil {
		return calendar.DayDetail{}, errors.New("app service adapter is not configured")
	}
	detail, err := a.service.DayDetail(ctx, in.Year, in.Month, in.Day)
	if err != nil {
		return calendar.DayDetail{}, mapAppError("day", err)
	}
	return detail, nil
}

// Agenda renders one month as a markdown agenda.
func (a *AppServiceAdapter) Agenda(ctx context.Context, in MonthRequest) (string, error) {
	if a == nil || a.service == nil {
		return "", errors.New("app service adapter is not configured")
	}
	layout, err := a.service.MonthLayout(ctx, in.Year, in.Month)
	if err != nil {
		return "", mapAppError("agenda", err)
	}
	return agenda.Month(layout, a.service.Names()), nil
}

// mapAppError tags validation failures with ErrInvalidRequest.
func mapAppError(op string, err error) error {
	if errors.Is(err, domain.ErrInvalidMonth) || errors.Is(err, domain.ErrInvalidDay) {
		return fmt.Errorf("%s: %w", op, errors.Join(ErrInvalidRequest, err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
