package tui

import (
	"image/color"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/evanschultz/moncal/internal/agenda"
	"github.com/evanschultz/moncal/internal/calendar"
)

// Screen rows above the grid; mouse coordinates are zero-based.
const (
	headerRow = 0
	gridTop   = 2
)

const (
	defaultWidth  = 84
	minCellWidth  = 6
	minCellHeight = 3
	maxCellHeight = 8
	// wideCellInner is the inner cell width from which full task text and day names are shown.
	wideCellInner = 14
	prevLabel     = " < prev "
	nextLabel     = " next > "
)

var (
	accentColor = lipgloss.Color("62")
	mutedColor  = lipgloss.Color("241")
	dimColor    = lipgloss.Color("239")
	todayColor  = lipgloss.Color("214")
	selectColor = lipgloss.Color("212")
	taskText    = lipgloss.Color("252")
)

// gridGeometry is shared by rendering and mouse hit testing.
type gridGeometry struct {
	cellW     int
	cellH     int
	innerW    int
	weeks     int
	prevEnd   int
	nextStart int
	nextEnd   int
	wide      bool
}

// geometry sizes cells from the terminal size and the displayed month.
func (m Model) geometry() gridGeometry {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	cellW := max(minCellWidth, width/7)
	weeks := max(1, (m.cal.Layout().CellCount()+6)/7)
	cellH := 5
	if m.height > 0 {
		// header, labels, status line, help line with its top border
		avail := m.height - gridTop - 3
		cellH = clamp(avail/weeks, minCellHeight, maxCellHeight)
	}
	total := cellW * 7
	return gridGeometry{
		cellW:     cellW,
		cellH:     cellH,
		innerW:    cellW - 2,
		weeks:     weeks,
		prevEnd:   lipgloss.Width(prevLabel),
		nextStart: total - lipgloss.Width(nextLabel),
		nextEnd:   total,
		wide:      cellW-2 >= wideCellInner,
	}
}

// View handles view.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.MouseMode = tea.MouseModeCellMotion
	v.AltScreen = true
	return v
}

// render builds the full screen as a string.
func (m Model) render() string {
	if m.err != nil {
		return "error: " + m.err.Error() + "\n\npress r to retry • q quit\n"
	}
	if !m.ready || m.cal == nil {
		return "loading..."
	}

	g := m.geometry()
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(g),
		m.renderDayLabels(g),
		m.renderGrid(g),
	)

	statusLine := lipgloss.NewStyle().Foreground(dimColor).Render(m.status)
	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(mutedColor).
		BorderTop(true).
		BorderForeground(dimColor).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))
	footer := statusLine + "\n" + helpLine
	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(footer)))
	}
	full := content + "\n" + footer

	if overlay := m.renderOverlay(m.width - 8); overlay != "" {
		height := lipgloss.Height(full)
		if m.height > 0 {
			height = m.height
		}
		full = overlayOnContent(full, overlay, max(1, m.width), max(1, height))
	}
	return full
}

// renderHeader draws the navigation buttons around the title.
func (m Model) renderHeader(g gridGeometry) string {
	button := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(accentColor)
	prev := strings.Repeat(" ", g.prevEnd)
	next := strings.Repeat(" ", g.nextEnd-g.nextStart)
	if _, ok := m.root.Find(calendar.ClassPrev); ok {
		prev = button.Render(prevLabel)
	}
	if _, ok := m.root.Find(calendar.ClassNext); ok {
		next = button.Render(nextLabel)
	}
	middle := max(0, g.nextStart-g.prevEnd)
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Render(m.title())
	return prev + lipgloss.PlaceHorizontal(middle, lipgloss.Center, title) + next
}

// renderDayLabels draws the weekday row, picking full or short names by width.
func (m Model) renderDayLabels(g gridGeometry) string {
	labels, ok := m.root.Find(calendar.ClassDays)
	if !ok {
		return ""
	}
	class := calendar.ClassShortName
	if g.innerW >= longestFullDayName(labels) {
		class = calendar.ClassFullName
	}
	style := lipgloss.NewStyle().Foreground(mutedColor)
	var b strings.Builder
	for _, label := range labels.FindAll(calendar.ClassDayLabel) {
		name := ""
		if node, ok := label.Find(class); ok {
			name = node.Text()
		}
		b.WriteString(lipgloss.PlaceHorizontal(g.cellW, lipgloss.Center, style.Render(ansi.Truncate(name, g.cellW, ""))))
	}
	return b.String()
}

func longestFullDayName(labels *calendar.Node) int {
	longest := 0
	for _, node := range labels.FindAll(calendar.ClassFullName) {
		longest = max(longest, lipgloss.Width(node.Text()))
	}
	return longest
}

// renderGrid draws fillers and day cells, seven per row.
func (m Model) renderGrid(g gridGeometry) string {
	cells := m.gridCells()
	rows := make([]string, 0, g.weeks)
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		boxes := make([]string, 0, 7)
		for _, cell := range cells[start:end] {
			boxes = append(boxes, m.renderCell(cell, g))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCell draws one cell as a bordered box exactly cellW by cellH.
func (m Model) renderCell(cell *calendar.Node, g gridGeometry) string {
	innerH := g.cellH - 2
	blank := strings.Repeat(" ", g.innerW)
	if cell.HasClass(calendar.ClassEmpty) {
		lines := make([]string, g.cellH)
		for i := range lines {
			lines[i] = strings.Repeat(" ", g.cellW)
		}
		return strings.Join(lines, "\n")
	}

	day, _ := cell.Attr(calendar.AttrDay)
	selected := day == strconv.Itoa(m.selectedDay)
	today := cell.HasClass(calendar.ClassToday)

	dateStyle := lipgloss.NewStyle().Foreground(mutedColor)
	if today {
		dateStyle = lipgloss.NewStyle().Bold(true).Foreground(todayColor)
	}
	if selected {
		dateStyle = dateStyle.Reverse(true)
	}
	date := ""
	if node, ok := cell.Find(calendar.ClassDateNumber); ok {
		date = node.Text()
	}
	lines := []string{padLine(dateStyle.Render(date), g.innerW)}

	tasks := cell.FindAll(calendar.ClassTask)
	room := innerH - 1
	for i, task := range tasks {
		if len(lines) > room {
			break
		}
		if i == room-1 && len(tasks) > room {
			more := lipgloss.NewStyle().Foreground(mutedColor).Render(ansi.Truncate("+"+strconv.Itoa(len(tasks)-i)+" more", g.innerW, ""))
			lines = append(lines, padLine(more, g.innerW))
			break
		}
		lines = append(lines, padLine(renderTaskLine(task, g), g.innerW))
	}
	for len(lines) < innerH {
		lines = append(lines, blank)
	}

	border := dimColor
	switch {
	case selected:
		border = selectColor
	case today:
		border = todayColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(strings.Join(lines[:innerH], "\n"))
}

// renderTaskLine draws one task block: a colored bar, then full or short text.
func renderTaskLine(task *calendar.Node, g gridGeometry) string {
	text := task.Text()
	if g.wide {
		if node, ok := task.Find(calendar.ClassTaskFull); ok {
			text = node.Text()
		}
	} else if node, ok := task.Find(calendar.ClassTaskShort); ok {
		text = node.Text()
	}
	text = ansi.Truncate(text, max(0, g.innerW-1), "…")

	bar := lipgloss.NewStyle().Foreground(dimColor)
	body := lipgloss.NewStyle().Foreground(taskText)
	if hex, ok := task.Style("border-color"); ok {
		if border, background, ok := taskColors(hex); ok {
			bar = bar.Foreground(border)
			body = body.Background(background)
		}
	}
	return bar.Render("▌") + body.Render(text)
}

// taskColors returns the full color and the color blended halfway to black.
func taskColors(hex string) (color.Color, color.Color, bool) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return nil, nil, false
	}
	background := c.BlendRgb(colorful.Color{}, 0.5)
	return lipgloss.Color(c.Hex()), lipgloss.Color(background.Hex()), true
}

// renderOverlay returns the modal, go-to prompt or help box, if any is open.
func (m Model) renderOverlay(maxWidth int) string {
	switch {
	case m.help.ShowAll:
		return m.renderHelpOverlay(maxWidth)
	case m.mode == modeGoTo:
		return m.renderGoToOverlay()
	case m.modal.open:
		return m.renderDayModal(maxWidth)
	}
	return ""
}

// renderDayModal draws the default day modal: label, then the task list as markdown.
func (m Model) renderDayModal(maxWidth int) string {
	width := clamp(maxWidth, 30, 72)
	detail := m.modal.detail
	title := lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render(detail.Label)
	body := m.markdown.Render(agenda.TaskList(detail.Tasks), width-4)
	if body == "" {
		body = "no tasks"
	}
	footer := lipgloss.NewStyle().Foreground(mutedColor).Render("y copy • esc close")
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1).
		Width(width).
		Render(strings.Join([]string{title, "", body, "", footer}, "\n"))
}

// renderGoToOverlay draws the go-to prompt.
func (m Model) renderGoToOverlay() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Go to month"),
		m.gotoInput.View(),
		lipgloss.NewStyle().Foreground(mutedColor).Render("YYYY-MM or YYYY-MM-DD • enter apply • esc cancel"),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderHelpOverlay draws the full key reference.
func (m Model) renderHelpOverlay(maxWidth int) string {
	width := clamp(maxWidth, 56, 100)
	hb := m.help
	hb.ShowAll = true
	hb.SetWidth(width - 4)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("moncal help"),
		"",
		hb.View(m.keys),
		"",
		lipgloss.NewStyle().Foreground(mutedColor).Render("click a day with tasks to open it • click < prev / next > to change month"),
		lipgloss.NewStyle().Foreground(mutedColor).Render("press ? or esc to close"),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

// padLine right-pads a styled line to width cells, truncating when needed.
func padLine(line string, width int) string {
	line = ansi.Truncate(line, width, "")
	if gap := width - lipgloss.Width(line); gap > 0 {
		line += strings.Repeat(" ", gap)
	}
	return line
}

// fitLines fits lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent overlays on content.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}
