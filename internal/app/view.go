package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sangeetx/sangeetx/internal/ui/headerbar"
	"github.com/sangeetx/sangeetx/internal/ui/playerbar"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	header := headerbar.Render(m.Width, headerbar.Status{
		Panel:  m.side,
		Banner: m.banner,
		Locked: m.locked(),
	})

	songs := m.songs.View()
	side := m.sidePanel().View()
	var main string
	if m.screen.Narrow {
		main = songs + "\n" + side
	} else {
		main = lipgloss.JoinHorizontal(lipgloss.Top, songs, side)
	}

	view := header + "\n" + main + "\n" + playerbar.Render(m.playerState(), m.Width)
	view = fitHeight(view, m.Height)

	switch {
	case m.prompt.Active():
		view = popup.Compose(view, m.prompt.View(), m.Width, m.Height)
	case m.showHelp:
		box := popup.RenderBordered(m.help.View(), m.Width, m.Height, popup.SizeAuto)
		view = popup.Compose(view, box, m.Width, m.Height)
	}
	return view
}

// playerState builds the player bar state from the latest snapshot.
func (m Model) playerState() playerbar.State {
	s := playerbar.NewState(m.snap, m.playerError(), m.effectiveMode())
	if s.DisplayMode == playerbar.ModeExpanded && m.snap.Song != nil {
		s.Cover = m.cover.View()
	}
	return s
}

// fitHeight pads or cuts view to exactly height lines.
func fitHeight(view string, height int) string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
