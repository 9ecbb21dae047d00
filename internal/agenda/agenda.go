// Package agenda formats month layouts and day details as markdown.
package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/evanschultz/moncal/internal/calendar"
	"github.com/evanschultz/moncal/internal/domain"
)

// Month renders a month layout as a markdown agenda listing only days with tasks.
func Month(layout calendar.Layout, names calendar.Names) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %d. %s\n", layout.Year, names.MonthName(layout.Month).Full)

	if layout.TaskCount() == 0 {
		b.WriteString("\n_No tasks this month._\n")
		return b.String()
	}
	for _, day := range layout.Days {
		if len(day.Tasks) == 0 {
			continue
		}
		weekday := time.Date(layout.Year, time.Month(layout.Month), day.Day, 0, 0, 0, 0, time.Local).Weekday()
		heading := fmt.Sprintf("%s %d", names.Days[domain.MondayIndex(weekday)].Full, day.Day)
		if day.Today {
			heading += " (today)"
		}
		fmt.Fprintf(&b, "\n## %s\n\n", heading)
		b.WriteString(TaskList(day.Tasks))
	}
	return b.String()
}

// Day renders the modal content for one day.
func Day(detail calendar.DayDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n\n", detail.Label)
	if len(detail.Tasks) == 0 {
		b.WriteString("_No tasks._\n")
		return b.String()
	}
	b.WriteString(TaskList(detail.Tasks))
	return b.String()
}

// TaskList renders one bullet per task: the bold code, then the description when present.
func TaskList(tasks []domain.Task) string {
	var b strings.Builder
	for _, task := range tasks {
		b.WriteString("- **" + escape(task.Task) + "**")
		if task.HasDescription() {
			b.WriteString(" - " + escape(task.Description))
		}
		b.WriteString("\n")
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

// escape keeps task text literal inside inline markdown.
func escape(text string) string {
	return markdownEscaper.Replace(text)
}
