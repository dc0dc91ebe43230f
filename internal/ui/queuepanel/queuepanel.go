// Package queuepanel shows the play queue, jumps within it and removes
// entries from it.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/keymap"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/playlist"
	"github.com/sangeetx/sangeetx/internal/ui"
	"github.com/sangeetx/sangeetx/internal/ui/list"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
)

var _ popup.Popup = (*Model)(nil)

// Model represents the queue panel state.
type Model struct {
	ui.Base
	list    list.Model[api.Song]
	current int
	shuffle bool
	repeat  playlist.RepeatMode
}

// New creates an empty queue panel.
func New() *Model {
	m := &Model{list: list.New[api.Song]("songs"), current: -1}
	m.list.SetChrome(ui.PanelTop, 1)
	return m
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.list.SetSize(width, height)
}

// SetFocused sets whether the panel has focus.
func (m *Model) SetFocused(focused bool) {
	m.Base.SetFocused(focused)
	m.list.SetFocused(focused)
}

// SetQueue replaces the shown songs. The cursor follows the current song.
func (m *Model) SetQueue(songs []api.Song, current int) {
	m.list.SetItems(songs)
	m.SetCurrent(current)
}

// SetCurrent marks the song at list index i as the current one.
func (m *Model) SetCurrent(i int) {
	m.current = i
	if i >= 0 && !m.IsFocused() {
		m.list.Select(i)
	}
}

// SetModes sets the shuffle and repeat indicators.
func (m *Model) SetModes(shuffle bool, repeat playlist.RepeatMode) {
	m.shuffle = shuffle
	m.repeat = repeat
}

// Len returns the number of queued songs.
func (m *Model) Len() int {
	return m.list.Len()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.IsFocused() && m.list.Len() > 0 &&
		keymap.Lookup("songs", key.String()) == keymap.ActionRemove {
		remove := playback.Remove{Index: m.list.SelectedIndex()}
		return m, func() tea.Msg { return ActionMsg(remove) }
	}
	res := m.list.Update(msg)
	switch res.Action {
	case list.ActionEnter, list.ActionClick:
		jump := playback.JumpTo{Index: res.Index}
		return m, func() tea.Msg { return ActionMsg(jump) }
	case list.ActionNone, list.ActionAdd:
	}
	return m, nil
}
