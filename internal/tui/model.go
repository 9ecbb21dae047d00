// Package tui hosts the month calendar in a Bubble Tea program.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/evanschultz/moncal/internal/agenda"
	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/domain"
)

// Service supplies tasks and view options to the model.
type Service interface {
	Tasks(context.Context) ([]domain.Task, error)
	CalendarOptions(calendar.TaskCallback) calendar.Options
}

// inputMode represents a selectable mode.
type inputMode int

const (
	modeNone inputMode = iota
	modeGoTo
)

// dayModal is shared by pointer so the calendar callback can open it from inside Update.
type dayModal struct {
	open   bool
	detail calendar.DayDetail
}

// show returns the default task callback: fill the modal with the clicked day.
func (d *dayModal) show(names calendar.Names) calendar.TaskCallback {
	return func(year, month, day int, tasks []domain.Task) {
		d.detail = calendar.DayDetailFor(names, year, month, day, tasks)
		d.open = true
	}
}

// Model is the Bubble Tea model wrapping one calendar.View.
type Model struct {
	svc Service

	root        *calendar.Node
	cal         *calendar.View
	names       calendar.Names
	showButtons bool
	clock       func() time.Time

	modal        *dayModal
	taskCallback calendar.TaskCallback

	startYear   int
	startMonth  int
	selectedDay int

	mode      inputMode
	gotoInput textinput.Model

	help          help.Model
	keys          keyMap
	markdown      *agenda.Renderer
	markdownStyle string
	copyText      func(string) error

	status string
	err    error
	ready  bool
	width  int
	height int
}

// loadedMsg carries loaded message data through update handling.
type loadedMsg struct {
	tasks []domain.Task
	err   error
}

// NewModel constructs a new value for this package.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	now := time.Now()
	m := Model{
		svc:        svc,
		root:       calendar.NewNode("div"),
		modal:      &dayModal{},
		startYear:  now.Year(),
		startMonth: int(now.Month()),
		gotoInput:  newModalInput("go to: ", "YYYY-MM", "", 10),
		help:       h,
		keys:       newKeyMap(),
		copyText:   defaultClipboard,
		status:     "loading...",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	m.markdown = agenda.NewRenderer(m.markdownStyle)
	return m
}

// Init handles init.
func (m Model) Init() tea.Cmd {
	return m.loadTasks
}

// loadTasks loads the task list from the service.
func (m Model) loadTasks() tea.Msg {
	tasks, err := m.svc.Tasks(context.Background())
	return loadedMsg{tasks: tasks, err: err}
}

// Update updates state for the requested operation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		return m.applyLoaded(msg)

	case tea.KeyPressMsg:
		if m.mode == modeGoTo {
			return m.handleGoToKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	default:
		return m, nil
	}
}

// applyLoaded builds the calendar view on first load and swaps tasks on reload.
func (m Model) applyLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.err = msg.err
		m.status = "load failed"
		return m, nil
	}
	m.err = nil
	if m.cal != nil {
		m.cal.SetTasks(msg.tasks)
		m.status = fmt.Sprintf("reloaded %d tasks", len(msg.tasks))
		return m, nil
	}

	opts := m.svc.CalendarOptions(m.taskCallback)
	m.names = calendar.ResolveNames(opts.MonthNames, opts.DayNames)
	if opts.TaskCallback == nil {
		opts.TaskCallback = m.modal.show(m.names)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	m.clock = opts.Now
	m.showButtons = opts.ShowButtons == nil || *opts.ShowButtons

	view, err := calendar.New(m.root, m.startYear, m.startMonth, msg.tasks, opts)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.cal = view
	m.selectedDay = 1
	if now := m.clock(); now.Year() == view.Year() && int(now.Month()) == view.Month() {
		m.selectedDay = now.Day()
	}
	m.status = fmt.Sprintf("loaded %d tasks", len(msg.tasks))
	return m, nil
}

// handleNormalModeKey handles normal mode key.
func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}
	if m.err != nil || m.cal == nil {
		if key.Matches(msg, m.keys.reload) {
			m.status = "loading..."
			return m, m.loadTasks
		}
		return m, nil
	}

	if m.help.ShowAll {
		if key.Matches(msg, m.keys.toggleHelp, m.keys.closeModal) {
			m.help.ShowAll = false
		}
		return m, nil
	}

	if m.modal.open {
		switch {
		case key.Matches(msg, m.keys.closeModal):
			m.modal.open = false
		case key.Matches(msg, m.keys.copyDay):
			m.copyDetail(m.modal.detail)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.toggleHelp):
		m.help.ShowAll = true
	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.loadTasks
	case key.Matches(msg, m.keys.moveLeft):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.moveRight):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.moveUp):
		m.moveSelection(-7)
	case key.Matches(msg, m.keys.moveDown):
		m.moveSelection(7)
	case key.Matches(msg, m.keys.prevMonth):
		m.clickHeader(calendar.ClassPrev, -1)
	case key.Matches(msg, m.keys.nextMonth):
		m.clickHeader(calendar.ClassNext, 1)
	case key.Matches(msg, m.keys.prevYear):
		m.cal.SetYear(m.cal.Year() - 1)
		m.clampSelection()
	case key.Matches(msg, m.keys.nextYear):
		m.cal.SetYear(m.cal.Year() + 1)
		m.clampSelection()
	case key.Matches(msg, m.keys.today):
		m.jumpToToday()
	case key.Matches(msg, m.keys.goTo):
		m.mode = modeGoTo
		m.gotoInput = newModalInput("go to: ", "YYYY-MM", "", 10)
		cmd := m.gotoInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.openDay):
		m.openSelectedDay()
	case key.Matches(msg, m.keys.copyDay):
		m.copyDetail(m.selectedDetail())
	}
	return m, nil
}

// handleGoToKey handles keys while the go-to prompt is open.
func (m Model) handleGoToKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNone
		m.status = "go to cancelled"
		return m, nil
	case "enter":
		m.mode = modeNone
		m.submitGoTo(m.gotoInput.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

// submitGoTo parses "YYYY-MM" or "YYYY-MM-DD" and moves the view there.
func (m *Model) submitGoTo(raw string) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) < 2 || len(parts) > 3 {
		m.status = "go to: expected YYYY-MM"
		return
	}
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			m.status = "go to: expected YYYY-MM"
			return
		}
		values = append(values, v)
	}
	if err := m.cal.SetMonth(values[1]); err != nil {
		m.status = "go to: " + err.Error()
		return
	}
	m.cal.SetYear(values[0])
	m.selectedDay = 1
	if len(values) == 3 {
		m.selectedDay = values[2]
	}
	m.clampSelection()
	m.status = m.title()
}

// moveSelection shifts the selected day, rolling into adjacent months at the edges.
func (m *Model) moveSelection(delta int) {
	target := m.selectedDay + delta
	switch days := domain.DaysInMonth(m.cal.Year(), m.cal.Month()); {
	case target < 1:
		m.cal.ChangeMonth(-1)
		target += domain.DaysInMonth(m.cal.Year(), m.cal.Month())
	case target > days:
		m.cal.ChangeMonth(1)
		target -= days
	}
	m.selectedDay = target
	m.clampSelection()
}

// clickHeader clicks a navigation button, or steps the month directly when buttons are hidden.
func (m *Model) clickHeader(class string, delta int) {
	if node, ok := m.root.Find(class); !ok || !node.Click() {
		m.cal.ChangeMonth(delta)
	}
	m.clampSelection()
	m.status = m.title()
}

// jumpToToday shows the host month and selects today.
func (m *Model) jumpToToday() {
	now := m.clock()
	if err := m.cal.SetMonth(int(now.Month())); err != nil {
		m.status = err.Error()
		return
	}
	m.cal.SetYear(now.Year())
	m.selectedDay = now.Day()
	m.clampSelection()
	m.status = "today"
}

// openSelectedDay clicks the selected cell.
func (m *Model) openSelectedDay() {
	cell, ok := m.cellForDay(m.selectedDay)
	if !ok || !cell.Click() {
		m.status = fmt.Sprintf("no tasks on %s %d", m.cal.MonthName().Full, m.selectedDay)
		return
	}
	if !m.modal.open {
		m.status = fmt.Sprintf("opened %s %d", m.cal.MonthName().Full, m.selectedDay)
	}
}

// clampSelection clamps the selected day to the displayed month.
func (m *Model) clampSelection() {
	m.selectedDay = clamp(m.selectedDay, 1, domain.DaysInMonth(m.cal.Year(), m.cal.Month()))
}

// selectedDetail builds the detail for the selected day from the current layout.
func (m Model) selectedDetail() calendar.DayDetail {
	day, _ := m.cal.Layout().Day(m.selectedDay)
	return calendar.DayDetailFor(m.names, m.cal.Year(), m.cal.Month(), m.selectedDay, day.Tasks)
}

// copyDetail writes a plain-text day summary to the clipboard.
func (m *Model) copyDetail(detail calendar.DayDetail) {
	text := detail.Label
	if len(detail.Lines) > 0 {
		text += "\n" + strings.Join(detail.Lines, "\n")
	}
	if err := m.copyText(text); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = "copied " + detail.Label
}

// cellForDay returns the rendered grid cell for one day.
func (m Model) cellForDay(day int) (*calendar.Node, bool) {
	want := strconv.Itoa(day)
	for _, cell := range m.gridCells() {
		if v, ok := cell.Attr(calendar.AttrDay); ok && v == want {
			return cell, true
		}
	}
	return nil, false
}

// gridCells returns fillers and dated cells in grid order.
func (m Model) gridCells() []*calendar.Node {
	grid, ok := m.root.Find(calendar.ClassGrid)
	if !ok {
		return nil
	}
	return grid.Children()
}

// title returns the rendered header title.
func (m Model) title() string {
	if node, ok := m.root.Find(calendar.ClassTitle); ok {
		return node.Text()
	}
	return ""
}

// handleMouseClick hit-tests header buttons and grid cells.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if m.cal == nil || m.help.ShowAll || m.mode != modeNone {
		return m, nil
	}
	if m.modal.open {
		m.modal.open = false
		return m, nil
	}

	g := m.geometry()
	if msg.Y == headerRow {
		switch {
		case msg.X >= 0 && msg.X < g.prevEnd:
			m.clickHeader(calendar.ClassPrev, -1)
		case msg.X >= g.nextStart && msg.X < g.nextEnd:
			m.clickHeader(calendar.ClassNext, 1)
		}
		return m, nil
	}
	if msg.Y < gridTop || msg.X < 0 {
		return m, nil
	}
	col := msg.X / g.cellW
	week := (msg.Y - gridTop) / g.cellH
	if col >= 7 || week >= g.weeks {
		return m, nil
	}
	cells := m.gridCells()
	idx := week*7 + col
	if idx >= len(cells) {
		return m, nil
	}
	cell := cells[idx]
	raw, ok := cell.Attr(calendar.AttrDay)
	if !ok {
		return m, nil
	}
	if day, err := strconv.Atoi(raw); err == nil {
		m.selectedDay = day
	}
	cell.Click()
	return m, nil
}

// newModalInput constructs modal input.
func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// clamp clamps the requested operation.
func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
