package tui

import "charm.land/bubbles/v2/key"

// keyMap holds the calendar bindings.
type keyMap struct {
	quit       key.Binding
	reload     key.Binding
	toggleHelp key.Binding
	moveLeft   key.Binding
	moveRight  key.Binding
	moveUp     key.Binding
	moveDown   key.Binding
	prevMonth  key.Binding
	nextMonth  key.Binding
	prevYear   key.Binding
	nextYear   key.Binding
	today      key.Binding
	goTo       key.Binding
	openDay    key.Binding
	copyDay    key.Binding
	closeModal key.Binding
}

// newKeyMap constructs key map.
func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload tasks")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:   key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "day left")),
		moveRight:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "day right")),
		moveUp:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "week up")),
		moveDown:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "week down")),
		prevMonth:  key.NewBinding(key.WithKeys("[", "b"), key.WithHelp("[/b", "previous month")),
		nextMonth:  key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]/n", "next month")),
		prevYear:   key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "previous year")),
		nextYear:   key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "next year")),
		today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		goTo:       key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to month")),
		openDay:    key.NewBinding(key.WithKeys("enter", "i"), key.WithHelp("i/enter", "day tasks")),
		copyDay:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy day")),
		closeModal: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// ShortHelp handles short help.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.prevMonth, k.nextMonth, k.openDay, k.goTo, k.today, k.toggleHelp, k.quit,
	}
}

// FullHelp handles full help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown},
		{k.prevMonth, k.nextMonth, k.prevYear, k.nextYear, k.today, k.goTo},
		{k.openDay, k.copyDay, k.closeModal, k.reload, k.toggleHelp, k.quit},
	}
}
