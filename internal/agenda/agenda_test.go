package agenda

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/domain"
)

func TestMonthListsTaskDays(t *testing.T) {
	tasks := []domain.Task{
		{Year: 2025, Month: 3, Day: 14, Task: "MTG", Description: "Team *sync*"},
		{Year: 2025, Month: 3, Day: 3, Task: "GYM"},
	}
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)
	layout := calendar.BuildLayout(2025, 3, tasks, now)
	got := Month(layout, calendar.ResolveNames(nil, nil))

	want := "# 2025. March\n" +
		"\n## Monday 3\n\n- **GYM**\n" +
		"\n## Friday 14 (today)\n\n- **MTG** - Team \\*sync\\*\n"
	if got != want {
		t.Fatalf("unexpected agenda:\n%s\nwant:\n%s", got, want)
	}
}

func TestMonthWithoutTasks(t *testing.T) {
	layout := calendar.BuildLayout(2025, 4, nil, time.Time{})
	got := Month(layout, calendar.ResolveNames(nil, nil))
	if !strings.Contains(got, "# 2025. April") || !strings.Contains(got, "No tasks this month") {
		t.Fatalf("unexpected agenda %q", got)
	}
}

func TestDay(t *testing.T) {
	names := calendar.ResolveNames(nil, nil)
	detail := calendar.DayDetailFor(names, 2025, 3, 7, []domain.Task{{Task: "A", Description: "alpha"}, {Task: "B"}})
	got := Day(detail)
	want := "### Tasks: 2025. March 7.\n\n- **A** - alpha\n- **B**\n"
	if got != want {
		t.Fatalf("unexpected day markdown %q", got)
	}
	empty := Day(calendar.DayDetailFor(names, 2025, 3, 8, nil))
	if !strings.Contains(empty, "No tasks") {
		t.Fatalf("unexpected empty day markdown %q", empty)
	}
}

func TestRendererRendersAndCachesByWidth(t *testing.T) {
	r := NewRenderer("")
	if r.Render("   ", 80) != "" {
		t.Fatal("expected blank markdown to render empty")
	}
	out := ansi.Strip(r.Render("# Heading\n\n- **item** one", 80))
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "item one") {
		t.Fatalf("unexpected rendered output %q", out)
	}
	first := r.renderer
	r.Render("text", 10)
	if r.width != minWrapWidth {
		t.Fatalf("expected width clamped to %d, got %d", minWrapWidth, r.width)
	}
	if r.renderer == first {
		t.Fatal("expected renderer rebuilt on width change")
	}
}
