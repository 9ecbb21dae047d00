package tui

import (
	"github.com/atotto/clipboard"

	"github.com/evanschultz/moncal/internal/calendar"
)

type Option func(*Model)

// WithMonth sets the month shown first. Out-of-range months roll over into the year.
func WithMonth(year, month int) Option {
	return func(m *Model) {
		m.startYear = year
		m.startMonth = month
	}
}

// WithTaskCallback replaces the day modal with a caller-supplied handler.
func WithTaskCallback(cb calendar.TaskCallback) Option {
	return func(m *Model) {
		m.taskCallback = cb
	}
}

// WithClipboard overrides the clipboard writer used by the copy binding.
func WithClipboard(write func(string) error) Option {
	return func(m *Model) {
		if write != nil {
			m.copyText = write
		}
	}
}

// WithMarkdownStyle selects the glamour style for the day modal.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) {
		m.markdownStyle = style
	}
}

func defaultClipboard(text string) error {
	return clipboard.WriteAll(text)
}
