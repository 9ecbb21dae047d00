package agenda

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// minWrapWidth keeps glamour output readable in narrow panes.
const minWrapWidth = 24

// Renderer renders markdown for terminal views and recreates the glamour renderer when wrap width changes.
type Renderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewRenderer returns a renderer using the named glamour standard style; empty means "dark".
func NewRenderer(style string) *Renderer {
	style = strings.TrimSpace(style)
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style}
}

// Render converts markdown into ANSI-styled terminal text. On renderer failure the raw markdown is returned.
func (r *Renderer) Render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(width, minWrapWidth)
	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}
