package calendar

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/evanschultz/moncal/internal/domain"
)

// callRecorder captures TaskCallback invocations.
type callRecorder struct {
	calls []recordedCall
}

type recordedCall struct {
	year, month, day int
	tasks            []domain.Task
}

func (r *callRecorder) callback(year, month, day int, tasks []domain.Task) {
	r.calls = append(r.calls, recordedCall{year: year, month: month, day: day, tasks: tasks})
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestView(t *testing.T, year, month int, tasks []domain.Task, opts Options) (*View, *Node, *callRecorder) {
	t.Helper()
	rec := &callRecorder{}
	if opts.TaskCallback == nil {
		opts.TaskCallback = rec.callback
	}
	if opts.Now == nil {
		opts.Now = fixedNow(time.Date(2026, 10, 17, 12, 0, 0, 0, time.Local))
	}
	root := NewNode("div")
	v, err := New(root, year, month, tasks, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v, root, rec
}

func gridCells(t *testing.T, root *Node) []*Node {
	t.Helper()
	grid, ok := root.Find(ClassGrid)
	if !ok {
		t.Fatal("grid not rendered")
	}
	return grid.Children()
}

func cellForDay(t *testing.T, root *Node, day int) *Node {
	t.Helper()
	for _, cell := range gridCells(t, root) {
		if v, ok := cell.Attr(AttrDay); ok && v == strconv.Itoa(day) {
			return cell
		}
	}
	t.Fatalf("cell for day %d not found", day)
	return nil
}

func taskTexts(cell *Node) []string {
	out := []string{}
	for _, block := range cell.FindAll(ClassTask) {
		if short, ok := block.Find(ClassTaskShort); ok {
			out = append(out, short.Text())
			continue
		}
		out = append(out, block.Text())
	}
	return out
}

func TestNewRequiresContainerAndCallback(t *testing.T) {
	if _, err := New(nil, 2025, 1, nil, Options{TaskCallback: func(int, int, int, []domain.Task) {}}); !errors.Is(err, ErrContainerRequired) {
		t.Fatalf("expected ErrContainerRequired, got %v", err)
	}
	if _, err := New(NewNode("div"), 2025, 1, nil, Options{}); !errors.Is(err, ErrTaskCallbackRequired) {
		t.Fatalf("expected ErrTaskCallbackRequired, got %v", err)
	}
}

func TestRenderStructure(t *testing.T) {
	_, root, _ := newTestView(t, 2025, 3, nil, Options{})
	children := root.Children()
	if len(children) != 1 || !children[0].HasClass(ClassCalendar) {
		t.Fatalf("expected one calendar root, got %d children", len(children))
	}
	sections := children[0].Children()
	if len(sections) != 3 {
		t.Fatalf("expected header, days and grid, got %d sections", len(sections))
	}
	if !sections[0].HasClass(ClassHeader) || !sections[1].HasClass(ClassDays) || !sections[2].HasClass(ClassGrid) {
		t.Fatalf("unexpected section order %v %v %v", sections[0].Classes(), sections[1].Classes(), sections[2].Classes())
	}

	title, _ := root.Find(ClassTitle)
	if title.Text() != "2025. March" {
		t.Fatalf("unexpected title %q", title.Text())
	}
	labels := root.FindAll(ClassDayLabel)
	if len(labels) != 7 {
		t.Fatalf("expected 7 day labels, got %d", len(labels))
	}
	full, _ := labels[0].Find(ClassFullName)
	short, _ := labels[6].Find(ClassShortName)
	if full.Text() != "Monday" || short.Text() != "Su" {
		t.Fatalf("unexpected day labels %q / %q", full.Text(), short.Text())
	}
}

func TestGridCellCount(t *testing.T) {
	for year := 2023; year <= 2025; year++ {
		for month := 1; month <= 12; month++ {
			_, root, _ := newTestView(t, year, month, nil, Options{})
			cells := gridCells(t, root)
			fillers := len(root.FindAll(ClassEmpty))
			if fillers < 0 || fillers > 6 {
				t.Fatalf("%d/%d: fillers %d out of range", year, month, fillers)
			}
			want := fillers + domain.DaysInMonth(year, month)
			if len(cells) != want {
				t.Fatalf("%d/%d: cells = %d, want %d", year, month, len(cells), want)
			}
			for i := 0; i < fillers; i++ {
				if !cells[i].HasClass(ClassEmpty) || cells[i].Clickable() || cells[i].TextContent() != "" {
					t.Fatalf("%d/%d: filler %d is not blank", year, month, i)
				}
			}
		}
	}
}

func TestWeekdayAlignment(t *testing.T) {
	// October 2023 starts on a Sunday, January 2024 on a Monday.
	_, sunday, _ := newTestView(t, 2023, 10, nil, Options{})
	if got := len(sunday.FindAll(ClassEmpty)); got != 6 {
		t.Fatalf("sunday start fillers = %d, want 6", got)
	}
	_, monday, _ := newTestView(t, 2024, 1, nil, Options{})
	if got := len(monday.FindAll(ClassEmpty)); got != 0 {
		t.Fatalf("monday start fillers = %d, want 0", got)
	}
}

func TestLeapYearFebruary(t *testing.T) {
	_, leap, _ := newTestView(t, 2024, 2, nil, Options{})
	if got := len(leap.FindAll(ClassDateNumber)); got != 29 {
		t.Fatalf("feb 2024 days = %d, want 29", got)
	}
	_, common, _ := newTestView(t, 2023, 2, nil, Options{})
	if got := len(common.FindAll(ClassDateNumber)); got != 28 {
		t.Fatalf("feb 2023 days = %d, want 28", got)
	}
}

func TestSetMonthRejectsOutOfRange(t *testing.T) {
	v, root, _ := newTestView(t, 2025, 5, nil, Options{})
	before := root.Children()[0]
	for _, month := range []int{0, 13} {
		err := v.SetMonth(month)
		if !errors.Is(err, domain.ErrInvalidMonth) {
			t.Fatalf("SetMonth(%d) error = %v, want ErrInvalidMonth", month, err)
		}
		if v.Year() != 2025 || v.Month() != 5 {
			t.Fatalf("state changed to %d/%d", v.Year(), v.Month())
		}
		if root.Children()[0] != before {
			t.Fatalf("SetMonth(%d) re-rendered after failure", month)
		}
	}
	if err := v.SetMonth(12); err != nil {
		t.Fatalf("SetMonth(12) error = %v", err)
	}
	if root.Children()[0] == before {
		t.Fatal("expected successful SetMonth to re-render")
	}
	title, _ := root.Find(ClassTitle)
	if title.Text() != "2025. December" {
		t.Fatalf("unexpected title %q", title.Text())
	}
}

func TestChangeMonthCarry(t *testing.T) {
	v, _, _ := newTestView(t, 2025, 1, nil, Options{})
	v.ChangeMonth(-1)
	if v.Year() != 2024 || v.Month() != 12 {
		t.Fatalf("ChangeMonth(-1) from 2025/1 = %d/%d", v.Year(), v.Month())
	}
	v.ChangeMonth(1)
	if v.Year() != 2025 || v.Month() != 1 {
		t.Fatalf("ChangeMonth(1) from 2024/12 = %d/%d", v.Year(), v.Month())
	}
	for month := 1; month <= 12; month++ {
		if err := v.SetMonth(month); err != nil {
			t.Fatalf("SetMonth(%d) error = %v", month, err)
		}
		year := v.Year()
		v.ChangeMonth(12)
		if v.Year() != year+1 || v.Month() != month {
			t.Fatalf("ChangeMonth(12) from %d/%d = %d/%d", year, month, v.Year(), v.Month())
		}
	}
	v.ChangeMonth(-25)
	if v.Month() < 1 || v.Month() > 12 {
		t.Fatalf("month left out of range: %d", v.Month())
	}
}

func TestConstructionNormalizesMonth(t *testing.T) {
	v, root, _ := newTestView(t, 2024, 13, nil, Options{})
	if v.Year() != 2025 || v.Month() != 1 {
		t.Fatalf("expected 2025/1, got %d/%d", v.Year(), v.Month())
	}
	title, _ := root.Find(ClassTitle)
	if title.Text() != "2025. January" {
		t.Fatalf("unexpected title %q", title.Text())
	}
}

func TestTaskAssociation(t *testing.T) {
	tasks := []domain.Task{
		{Year: 2025, Month: 3, Day: 10, Task: "B"},
		{Year: 2025, Month: 3, Day: 11, Task: "OTHER"},
		{Year: 2025, Month: 3, Day: 10, Task: "A"},
		{Year: 2025, Month: 4, Day: 10, Task: "APRIL"},
		{Year: 2024, Month: 3, Day: 10, Task: "LASTYEAR"},
		{Year: 2025, Month: 3, Day: 42, Task: "NEVER"},
	}
	v, root, _ := newTestView(t, 2025, 3, tasks, Options{})

	if got := taskTexts(cellForDay(t, root, 10)); !slices.Equal(got, []string{"B", "A"}) {
		t.Fatalf("day 10 tasks = %v", got)
	}
	if got := taskTexts(cellForDay(t, root, 11)); !slices.Equal(got, []string{"OTHER"}) {
		t.Fatalf("day 11 tasks = %v", got)
	}
	if got := len(root.FindAll(ClassTask)); got != 3 {
		t.Fatalf("expected 3 task blocks in march, got %d", got)
	}

	v.ChangeMonth(1)
	if got := taskTexts(cellForDay(t, root, 10)); !slices.Equal(got, []string{"APRIL"}) {
		t.Fatalf("april day 10 tasks = %v", got)
	}
	v.ChangeMonth(-1)
	if got := taskTexts(cellForDay(t, root, 10)); !slices.Equal(got, []string{"B", "A"}) {
		t.Fatalf("day 10 tasks after round trip = %v", got)
	}
	if !slices.EqualFunc(v.Tasks(), tasks, func(a, b domain.Task) bool { return a.Task == b.Task && a.Day == b.Day }) {
		t.Fatal("task data changed across navigation")
	}
}

func TestEmptyDayIsInert(t *testing.T) {
	tasks := []domain.Task{{Year: 2025, Month: 3, Day: 10, Task: "A"}}
	_, root, rec := newTestView(t, 2025, 3, tasks, Options{})
	cell := cellForDay(t, root, 9)
	if cell.Clickable() {
		t.Fatal("expected empty day to not be clickable")
	}
	if _, ok := cell.Style("cursor"); ok {
		t.Fatal("expected empty day without pointer affordance")
	}
	if _, ok := cell.Find(ClassTasks); ok {
		t.Fatal("expected empty day without tasks wrapper")
	}
	if cell.Click() {
		t.Fatal("Click() on empty day reported a handler")
	}
	if len(rec.calls) != 0 {
		t.Fatalf("unexpected callback calls %d", len(rec.calls))
	}
	if got := cell.TextContent(); got != "9" {
		t.Fatalf("empty day text = %q, want date only", got)
	}
}

func TestTaskBlockRendering(t *testing.T) {
	tasks := []domain.Task{
		{Year: 2025, Month: 3, Day: 5, Task: "MTG", Description: "Team sync", Color: "#ff0000",
			Attributes: []domain.Attribute{{Name: "data-id", Value: "42"}, {Name: "title", Value: "<b>raw</b>"}}},
		{Year: 2025, Month: 3, Day: 5, Task: "GYM"},
	}
	_, root, _ := newTestView(t, 2025, 3, tasks, Options{})
	blocks := cellForDay(t, root, 5).FindAll(ClassTask)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}

	first := blocks[0]
	if !first.HasClass("shadow") {
		t.Fatal("expected shadow class on task block")
	}
	full, ok := first.Find(ClassTaskFull)
	if !ok || full.Text() != "MTG - Team sync" {
		t.Fatalf("unexpected full text %v", full)
	}
	short, ok := first.Find(ClassTaskShort)
	if !ok || short.Text() != "MTG" {
		t.Fatalf("unexpected short text %v", short)
	}
	if bg, _ := first.Style("background-color"); bg != "#ff000080" {
		t.Fatalf("background-color = %q", bg)
	}
	if border, _ := first.Style("border-color"); border != "#ff0000" {
		t.Fatalf("border-color = %q", border)
	}
	if v, _ := first.Attr("data-id"); v != "42" {
		t.Fatalf("data-id = %q", v)
	}
	if v, _ := first.Attr("title"); v != "<b>raw</b>" {
		t.Fatalf("title attribute not copied verbatim: %q", v)
	}

	second := blocks[1]
	if second.Text() != "GYM" || len(second.Children()) != 0 {
		t.Fatalf("expected bare task text, got %q with %d children", second.Text(), len(second.Children()))
	}
	if _, ok := second.Style("background-color"); ok {
		t.Fatal("expected no color styles without color")
	}
}

func TestTodayHighlight(t *testing.T) {
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.Local)
	_, root, _ := newTestView(t, 2025, 3, nil, Options{Now: fixedNow(now)})
	today := root.FindAll(ClassToday)
	if len(today) != 1 {
		t.Fatalf("expected exactly one today cell, got %d", len(today))
	}
	if v, _ := today[0].Attr(AttrDay); v != "14" {
		t.Fatalf("today cell day = %q", v)
	}

	_, other, _ := newTestView(t, 2025, 4, nil, Options{Now: fixedNow(now)})
	if got := len(other.FindAll(ClassToday)); got != 0 {
		t.Fatalf("expected no today cell in other month, got %d", got)
	}
	_, lastYear, _ := newTestView(t, 2024, 3, nil, Options{Now: fixedNow(now)})
	if got := len(lastYear.FindAll(ClassToday)); got != 0 {
		t.Fatalf("expected no today cell in other year, got %d", got)
	}
}

func TestRenderIsIdempotent(t *testing.T) {
	tasks := []domain.Task{
		{Year: 2025, Month: 6, Day: 1, Task: "A"},
		{Year: 2025, Month: 6, Day: 30, Task: "B"},
	}
	v, root, _ := newTestView(t, 2025, 6, tasks, Options{})
	snapshot := func() []string {
		out := []string{}
		for _, cell := range gridCells(t, root) {
			day, _ := cell.Attr(AttrDay)
			out = append(out, day+":"+strings.Join(taskTexts(cell), ","))
		}
		return out
	}
	v.SetYear(2025)
	first := snapshot()
	v.SetYear(2025)
	second := snapshot()
	if !slices.Equal(first, second) {
		t.Fatalf("re-render differs:\n%v\n%v", first, second)
	}
	if len(root.Children()) != 1 {
		t.Fatalf("expected container cleared before render, got %d children", len(root.Children()))
	}
}

func TestClickInvokesCallbackOnce(t *testing.T) {
	tasks := []domain.Task{
		{Year: 2025, Month: 3, Day: 7, Task: "A"},
		{Year: 2025, Month: 3, Day: 8, Task: "B"},
		{Year: 2025, Month: 3, Day: 7, Task: "C", Description: "desc"},
	}
	_, root, rec := newTestView(t, 2025, 3, tasks, Options{})
	cell := cellForDay(t, root, 7)
	if v, _ := cell.Style("cursor"); v != "pointer" {
		t.Fatalf("cursor = %q, want pointer", v)
	}
	if !cell.Click() {
		t.Fatal("expected click handler on task-bearing cell")
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 callback call, got %d", len(rec.calls))
	}
	call := rec.calls[0]
	if call.year != 2025 || call.month != 3 || call.day != 7 {
		t.Fatalf("unexpected callback date %d/%d/%d", call.year, call.month, call.day)
	}
	if len(call.tasks) != 2 || call.tasks[0].Task != "A" || call.tasks[1].Task != "C" {
		t.Fatalf("unexpected callback tasks %#v", call.tasks)
	}
}

func TestStaleHandlersAreDetached(t *testing.T) {
	tasks := []domain.Task{{Year: 2025, Month: 3, Day: 7, Task: "A"}}
	v, root, rec := newTestView(t, 2025, 3, tasks, Options{})
	old := cellForDay(t, root, 7)
	v.ChangeMonth(1)
	if _, ok := root.Find(ClassTask); ok {
		t.Fatal("expected april to render no tasks")
	}
	for _, cell := range gridCells(t, root) {
		if cell == old {
			t.Fatal("old cell survived re-render")
		}
	}
	if len(rec.calls) != 0 {
		t.Fatalf("unexpected callback calls %d", len(rec.calls))
	}
}

func TestNavigationButtons(t *testing.T) {
	v, root, _ := newTestView(t, 2025, 1, nil, Options{})
	prev, ok := root.Find(ClassPrev)
	if !ok || !prev.Clickable() {
		t.Fatal("expected clickable previous button")
	}
	prev.Click()
	if v.Year() != 2024 || v.Month() != 12 {
		t.Fatalf("prev click = %d/%d", v.Year(), v.Month())
	}
	next, _ := root.Find(ClassNext)
	next.Click()
	next, _ = root.Find(ClassNext)
	next.Click()
	if v.Year() != 2025 || v.Month() != 2 {
		t.Fatalf("next clicks = %d/%d", v.Year(), v.Month())
	}
}

func TestHiddenButtonsKeepPlaceholders(t *testing.T) {
	_, root, _ := newTestView(t, 2025, 1, nil, Options{ShowButtons: Bool(false)})
	header, _ := root.Find(ClassHeader)
	children := header.Children()
	if len(children) != 3 {
		t.Fatalf("expected 3 header slots, got %d", len(children))
	}
	if _, ok := root.Find(ClassPrev); ok {
		t.Fatal("expected no previous button")
	}
	if children[0].Clickable() || children[2].Clickable() || children[0].Tag != "div" {
		t.Fatal("expected inert div placeholders")
	}
	if !children[1].HasClass(ClassTitle) {
		t.Fatal("expected title in the middle slot")
	}
}

func TestNameOverrides(t *testing.T) {
	months := DefaultMonthNames()
	months[2] = Name{Full: "Március", Short: "Már"}
	days := []Name{{Full: "Hétfő", Short: "H"}}
	_, root, _ := newTestView(t, 2025, 3, nil, Options{MonthNames: months, DayNames: days})
	title, _ := root.Find(ClassTitle)
	if title.Text() != "2025. Március" {
		t.Fatalf("unexpected title %q", title.Text())
	}
	labels := root.FindAll(ClassFullName)
	if labels[0].Text() != "Hétfő" || labels[1].Text() != "Tuesday" {
		t.Fatalf("unexpected day labels %q %q", labels[0].Text(), labels[1].Text())
	}
}

func TestSetTasksReplacesAndRerenders(t *testing.T) {
	v, root, _ := newTestView(t, 2025, 3, nil, Options{})
	if _, ok := root.Find(ClassTask); ok {
		t.Fatal("expected no tasks initially")
	}
	v.SetTasks([]domain.Task{{Year: 2025, Month: 3, Day: 3, Task: "NEW"}})
	if got := taskTexts(cellForDay(t, root, 3)); !slices.Equal(got, []string{"NEW"}) {
		t.Fatalf("day 3 tasks = %v", got)
	}
}

func TestDayDetailFor(t *testing.T) {
	names := ResolveNames(nil, nil)
	detail := DayDetailFor(names, 2025, 3, 7, []domain.Task{
		{Task: "A", Description: "alpha"},
		{Task: "B"},
	})
	if detail.Label != "Tasks: 2025. March 7." {
		t.Fatalf("unexpected label %q", detail.Label)
	}
	if !slices.Equal(detail.Lines, []string{"A - alpha", "B"}) {
		t.Fatalf("unexpected lines %v", detail.Lines)
	}
}
