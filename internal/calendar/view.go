// Package calendar renders a month-view calendar with per-day task annotations.
package calendar

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/evanschultz/moncal/internal/domain"
)

// ErrContainerRequired and ErrTaskCallbackRequired reject incomplete construction.
var (
	ErrContainerRequired    = errors.New("calendar container is required")
	ErrTaskCallbackRequired = errors.New("calendar task callback is required")
)

// Class names emitted by Render. Presentation layers key off these.
const (
	ClassCalendar   = "calendar"
	ClassHeader     = "calendar-header"
	ClassTitle      = "calendar-title"
	ClassPrev       = "calendar-prev"
	ClassNext       = "calendar-next"
	ClassDays       = "calendar-days"
	ClassDayLabel   = "day-label"
	ClassFullName   = "full-name"
	ClassShortName  = "short-name"
	ClassGrid       = "calendar-grid"
	ClassCell       = "calendar-cell"
	ClassEmpty      = "empty"
	ClassToday      = "today"
	ClassDateNumber = "date-number"
	ClassTasks      = "tasks"
	ClassTask       = "task"
	ClassTaskFull   = "task-full"
	ClassTaskShort  = "task-short"
)

// AttrDay marks dated cells with their day of month.
const AttrDay = "data-day"

// colorAlphaSuffix is appended to task colors for the translucent background.
const colorAlphaSuffix = "80"

// View is a month calendar bound to one container. It re-renders fully on every change.
type View struct {
	container Container
	ym        domain.YearMonth
	tasks     []domain.Task
	opts      Options
	names     Names
}

// New constructs a view and renders it immediately.
func New(container Container, year, month int, tasks []domain.Task, opts Options) (*View, error) {
	if container == nil {
		return nil, ErrContainerRequired
	}
	if opts.TaskCallback == nil {
		return nil, ErrTaskCallbackRequired
	}
	v := &View{
		container: container,
		ym:        domain.YearMonth{Year: year, Month: month}.Normalize(),
		tasks:     domain.CloneTasks(tasks),
		opts:      opts,
		names:     ResolveNames(opts.MonthNames, opts.DayNames),
	}
	v.Render()
	return v, nil
}

// Year returns the displayed year.
func (v *View) Year() int {
	return v.ym.Year
}

// Month returns the displayed 1-indexed month.
func (v *View) Month() int {
	return v.ym.Month
}

// Names returns the resolved month and weekday labels.
func (v *View) Names() Names {
	return v.names
}

// MonthName returns the label of the displayed month.
func (v *View) MonthName() Name {
	return v.names.MonthName(v.ym.Month)
}

// Tasks returns a copy of the task list.
func (v *View) Tasks() []domain.Task {
	return domain.CloneTasks(v.tasks)
}

// Layout computes the grid for the current state.
func (v *View) Layout() Layout {
	return BuildLayout(v.ym.Year, v.ym.Month, v.tasks, v.opts.now())
}

// SetYear sets the year and re-renders.
func (v *View) SetYear(year int) {
	v.ym.Year = year
	v.Render()
}

// SetMonth sets the month and re-renders. Out-of-range input leaves state untouched.
func (v *View) SetMonth(month int) error {
	ym, err := domain.NewYearMonth(v.ym.Year, month)
	if err != nil {
		return fmt.Errorf("set month %d: %w", month, err)
	}
	v.ym = ym
	v.Render()
	return nil
}

// ChangeMonth moves by offset months, carrying into the year, and re-renders.
func (v *View) ChangeMonth(offset int) {
	v.ym = v.ym.Add(offset)
	v.Render()
}

// SetTasks replaces the task list and re-renders.
func (v *View) SetTasks(tasks []domain.Task) {
	v.tasks = domain.CloneTasks(tasks)
	v.Render()
}

// Render clears the container and rebuilds header, weekday labels and grid.
func (v *View) Render() {
	v.container.Clear()

	root := NewNode("div", ClassCalendar)
	root.Append(v.renderHeader(), v.renderDayLabels(), v.renderGrid(v.Layout()))
	v.container.Append(root)
}

// renderHeader builds the navigation row; placeholders keep alignment when buttons are hidden.
func (v *View) renderHeader() *Node {
	header := NewNode("div", ClassHeader)
	title := NewNode("div", ClassTitle).
		SetText(fmt.Sprintf("%d. %s", v.ym.Year, v.MonthName().Full))

	if !v.opts.showButtons() {
		header.Append(NewNode("div"), title, NewNode("div"))
		return header
	}
	prev := NewNode("button", "btn", "btn-primary", ClassPrev).
		SetAttr("aria-label", "previous month").
		OnClick(func() { v.ChangeMonth(-1) })
	next := NewNode("button", "btn", "btn-primary", ClassNext).
		SetAttr("aria-label", "next month").
		OnClick(func() { v.ChangeMonth(1) })
	header.Append(prev, title, next)
	return header
}

// renderDayLabels builds the Monday-first weekday row.
func (v *View) renderDayLabels() *Node {
	days := NewNode("div", ClassDays)
	for _, name := range v.names.Days {
		label := NewNode("div", ClassDayLabel)
		label.Append(
			NewNode("span", ClassFullName).SetText(name.Full),
			NewNode("span", ClassShortName).SetText(name.Short),
		)
		days.Append(label)
	}
	return days
}

// renderGrid emits leading fillers followed by one cell per day.
func (v *View) renderGrid(layout Layout) *Node {
	grid := NewNode("div", ClassGrid)
	for range layout.LeadingFillers {
		grid.Append(NewNode("div", ClassCell, ClassEmpty))
	}
	for _, day := range layout.Days {
		grid.Append(v.renderCell(layout.Year, layout.Month, day))
	}
	return grid
}

// renderCell builds one dated cell and wires its click handler when it has tasks.
func (v *View) renderCell(year, month int, day DayLayout) *Node {
	cell := NewNode("div", ClassCell).SetAttr(AttrDay, strconv.Itoa(day.Day))
	if day.Today {
		cell.AddClass(ClassToday)
	}
	cell.Append(NewNode("div", ClassDateNumber).SetText(strconv.Itoa(day.Day)))
	if len(day.Tasks) == 0 {
		return cell
	}

	tasksEl := NewNode("div", ClassTasks)
	for _, task := range day.Tasks {
		tasksEl.Append(renderTask(task))
	}
	cell.Append(tasksEl)
	cell.SetStyle("cursor", "pointer")

	dayTasks := day.Tasks
	callback := v.opts.TaskCallback
	cell.OnClick(func() {
		callback(year, month, day.Day, domain.CloneTasks(dayTasks))
	})
	return cell
}

// renderTask builds one task block with long/short variants and caller attributes.
func renderTask(task domain.Task) *Node {
	block := NewNode("div", ClassTask, "shadow")
	if task.Color != "" {
		block.SetStyle("background-color", task.Color+colorAlphaSuffix)
		block.SetStyle("border-color", task.Color)
	}
	if task.HasDescription() {
		block.Append(
			NewNode("span", ClassTaskFull).SetText(task.LongText()),
			NewNode("span", ClassTaskShort).SetText(task.ShortText()),
		)
	} else {
		block.SetText(task.ShortText())
	}
	for _, attr := range task.Attributes {
		block.SetAttr(attr.Name, attr.Value)
	}
	return block
}
