// Package web serves the calendar as a server-rendered HTML page.
package web

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/evanschultz/moncal/internal/adapters/server/common"
	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/domain"
	"golang.org/x/net/html"
)

//go:embed calendar.css
var stylesheet string

// Service supplies tasks and view options for one page render.
type Service interface {
	Now() time.Time
	Tasks(context.Context) ([]domain.Task, error)
	CalendarOptions(calendar.TaskCallback) calendar.Options
}

// Handler renders one fresh calendar view per request.
type Handler struct {
	service Service
}

// NewHandler constructs the page handler.
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// page is everything one request renders.
type page struct {
	view  *calendar.View
	root  *calendar.Node
	modal *calendar.DayDetail
}

// ServeHTTP serves GET `/?year=&month=&day=`. A day with tasks opens the modal.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeErrorPage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.service == nil {
		writeErrorPage(w, http.StatusServiceUnavailable, "calendar service is not configured")
		return
	}
	query := r.URL.Query()
	req, err := common.MonthRequestFromQuery(query, h.service.Now())
	if err != nil {
		writeErrorPage(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.build(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidMonth) {
			status = http.StatusBadRequest
		}
		writeErrorPage(w, status, err.Error())
		return
	}
	day, err := common.QueryInt(query, "day", 0)
	if err != nil {
		writeErrorPage(w, http.StatusBadRequest, err.Error())
		return
	}
	if day > 0 {
		p.clickDay(day)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = html.Render(w, document(p.view.Names().MonthName(p.view.Month()).Full, p))
}

// build renders the requested month into a detached root node.
func (h *Handler) build(ctx context.Context, req common.MonthRequest) (*page, error) {
	tasks, err := h.service.Tasks(ctx)
	if err != nil {
		return nil, err
	}
	p := &page{root: calendar.NewNode("main")}
	opts := h.service.CalendarOptions(func(year, month, day int, dayTasks []domain.Task) {
		detail := calendar.DayDetailFor(p.view.Names(), year, month, day, dayTasks)
		p.modal = &detail
	})
	view, err := calendar.New(p.root, req.Year, 1, tasks, opts)
	if err != nil {
		return nil, err
	}
	p.view = view
	if err := view.SetMonth(req.Month); err != nil {
		return nil, err
	}
	return p, nil
}

// clickDay dispatches a click on one dated cell. Cells without tasks ignore it.
func (p *page) clickDay(day int) {
	want := strconv.Itoa(day)
	for _, cell := range p.root.FindAll(calendar.ClassCell) {
		if got, ok := cell.Attr(calendar.AttrDay); ok && got == want {
			cell.Click()
			return
		}
	}
}

// monthHref links to another month of the same view.
func monthHref(ym domain.YearMonth) string {
	return fmt.Sprintf("?year=%d&month=%d", ym.Year, ym.Month)
}

// dayHref links to the modal for one day of the displayed month.
func dayHref(ym domain.YearMonth, day string) string {
	return monthHref(ym) + "&day=" + day
}
