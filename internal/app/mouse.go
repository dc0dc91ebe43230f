package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/ui/headerbar"
	"github.com/sangeetx/sangeetx/internal/ui/layout"
	"github.com/sangeetx/sangeetx/internal/ui/playerbar"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
)

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		m.firstGesture()
	}

	// The prompt and help are laid out on the whole screen.
	switch {
	case m.prompt.Active():
		return m, m.routeTo(m.prompt, msg)
	case m.showHelp:
		return m, m.routeTo(m.help, msg)
	}

	s := m.screen
	switch {
	case s.PlayerBar.Contains(msg.X, msg.Y):
		return m, m.handlePlayerBarMouse(msg)
	case s.Songs.Contains(msg.X, msg.Y):
		m.focusOnPress(msg, FocusSongs)
		return m, m.routeTo(m.songs, translate(msg, s.Songs))
	case s.Side.Contains(msg.X, msg.Y):
		m.focusOnPress(msg, FocusSide)
		return m, m.routeTo(m.sidePanel(), translate(msg, s.Side))
	}
	return m, nil
}

func (m *Model) handlePlayerBarMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	r := m.screen.PlayerBar
	x, y := layout.Translate(r, msg.X, msg.Y)
	if a, ok := playerbar.Hit(m.playerState(), r.Width, x, y).(playback.Action); ok {
		m.dispatch(a)
	}
	return nil
}

// focusOnPress moves focus to the clicked panel.
func (m *Model) focusOnPress(msg tea.MouseMsg, target FocusTarget) {
	if msg.Action != tea.MouseActionPress || m.focus == target {
		return
	}
	m.focus = target
	m.applyFocus()
}

func (m Model) sidePanel() popup.Popup {
	if m.side == headerbar.PanelQueue {
		return m.queue
	}
	return m.lyrics
}

// translate makes the event coordinates relative to r.
func translate(msg tea.MouseMsg, r popup.Rect) tea.MouseMsg {
	msg.X, msg.Y = layout.Translate(r, msg.X, msg.Y)
	return msg
}
