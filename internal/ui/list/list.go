// Package list provides a generic scrollable list component.
package list

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/keymap"
	"github.com/sangeetx/sangeetx/internal/ui"
)

// Action represents what happened during Update.
type Action int

const (
	ActionNone  Action = iota
	ActionEnter        // Enter key pressed
	ActionAdd          // a pressed
	ActionClick        // Left click on a row (cursor moved to it)
)

// Result is returned from Update to tell the parent what happened.
type Result struct {
	Action Action
	Index  int // Which item index the action applies to (-1 if none)
}

// Model is a generic scrollable list component.
// It handles navigation and mouse input, returning actions for the parent to handle.
// The parent is responsible for rendering using VisibleRange().
type Model[T any] struct {
	ui.Base
	context string
	items   []T
	cursor  cursor

	// top and bottom are the rows the parent draws above and below the items.
	top, bottom int
}

// New creates a list whose keys resolve in the given keymap context.
func New[T any](context string) Model[T] {
	return Model[T]{
		context: context,
		cursor:  cursor{margin: ui.ScrollMargin},
	}
}

// SetChrome sets how many rows the parent draws above and below the items.
func (m *Model[T]) SetChrome(top, bottom int) {
	m.top, m.bottom = top, bottom
}

// SetSize sets the component dimensions, chrome included.
func (m *Model[T]) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.cursor.clampToBounds(len(m.items), m.listHeight())
	m.cursor.ensureVisible(len(m.items), m.listHeight())
}

// SetItems replaces all items and clamps cursor to bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.cursor.clampToBounds(len(items), m.listHeight())
}

// Items returns the current items slice.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the currently selected item and true, or zero value and false if empty.
func (m Model[T]) Selected() (T, bool) {
	if len(m.items) == 0 || m.cursor.pos >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.pos], true
}

// SelectedIndex returns the current cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.pos
}

// Select moves the cursor to index and scrolls it into view.
func (m *Model[T]) Select(index int) {
	m.cursor.jump(index, len(m.items), m.listHeight())
}

// VisibleRange returns [start, end) indices for rendering.
func (m Model[T]) VisibleRange() (start, end int) {
	return m.cursor.visibleRange(len(m.items), m.listHeight())
}

func (m Model[T]) listHeight() int {
	return max(m.Height()-m.top-m.bottom, 0)
}

// Update handles tea.Msg and returns the action that occurred. Mouse
// coordinates are relative to the top-left of the component.
func (m *Model[T]) Update(msg tea.Msg) Result {
	none := Result{Index: -1}
	if !m.IsFocused() {
		return none
	}
	n, height := len(m.items), m.listHeight()

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return none
		}
		switch msg.Button { //nolint:exhaustive // buttons the list reacts to
		case tea.MouseButtonWheelUp:
			m.cursor.scroll(-1, n, height)
		case tea.MouseButtonWheelDown:
			m.cursor.scroll(1, n, height)
		case tea.MouseButtonLeft:
			row := msg.Y - m.top
			idx := m.cursor.offset + row
			if row < 0 || row >= height || idx >= n {
				return none
			}
			m.cursor.jump(idx, n, height)
			return Result{Action: ActionClick, Index: idx}
		}

	case tea.KeyMsg:
		switch keymap.Lookup(m.context, msg.String()) { //nolint:exhaustive // list keys only
		case keymap.ActionMoveDown:
			m.cursor.move(1, n, height)
		case keymap.ActionMoveUp:
			m.cursor.move(-1, n, height)
		case keymap.ActionJumpStart:
			m.cursor.jump(0, n, height)
		case keymap.ActionJumpEnd:
			m.cursor.jump(n-1, n, height)
		case keymap.ActionPageDown:
			m.cursor.move(max(height/2, 1), n, height)
		case keymap.ActionPageUp:
			m.cursor.move(-max(height/2, 1), n, height)
		case keymap.ActionSelect:
			if n > 0 {
				return Result{Action: ActionEnter, Index: m.cursor.pos}
			}
		case keymap.ActionAdd:
			if n > 0 {
				return Result{Action: ActionAdd, Index: m.cursor.pos}
			}
		}
	}

	return none
}
