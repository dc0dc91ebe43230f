package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/icons"
	"github.com/sangeetx/sangeetx/internal/playlist"
	"github.com/sangeetx/sangeetx/internal/ui"
	"github.com/sangeetx/sangeetx/internal/ui/render"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

const playingSymbol = "▶"

// View renders the queue panel.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := max(m.Height()-ui.PanelOverhead, 0)

	content := m.renderHeader(innerWidth) + "\n" +
		render.Separator(innerWidth) + "\n" +
		m.renderSongs(innerWidth, listHeight)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders the queue position with the mode icons on the right.
func (m *Model) renderHeader(innerWidth int) string {
	s := styles.T().S()
	left := fmt.Sprintf("Queue (%d/%d)", m.current+1, m.list.Len())

	modes, modesWidth := m.renderModeIcons()
	left = render.TruncateAndPad(left, innerWidth-modesWidth)
	return s.Title.Render(left) + modes
}

// renderModeIcons returns the styled mode icons and their display width.
func (m *Model) renderModeIcons() (styled string, width int) {
	var parts []string
	if m.shuffle {
		parts = append(parts, icons.Shuffle())
	}
	if m.repeat != playlist.RepeatNone {
		parts = append(parts, icons.Repeat(m.repeat.String()))
	}
	if len(parts) == 0 {
		return "", 0
	}
	raw := strings.Join(parts, "  ") + " "
	return styles.T().S().Playing.Render(raw), lipgloss.Width(raw)
}

func (m *Model) renderSongs(innerWidth, listHeight int) string {
	songs := m.list.Items()
	start, end := m.list.VisibleRange()

	lines := make([]string, 0, listHeight)
	for i := start; i < end && len(lines) < listHeight; i++ {
		lines = append(lines, m.renderSong(songs[i], i, innerWidth))
	}
	for len(lines) < listHeight {
		lines = append(lines, render.EmptyLine(innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderSong renders one row: marker, title and artist columns.
func (m *Model) renderSong(song api.Song, idx, width int) string {
	prefix := "  "
	if idx == m.current {
		prefix = playingSymbol + " "
	}
	contentWidth := max(width-2, 0)
	titleWidth := contentWidth / 2
	artistWidth := contentWidth - titleWidth

	line := prefix +
		render.TruncateAndPad(render.Sanitize(song.Title), titleWidth) +
		render.TruncateAndPad(render.Sanitize(song.ArtistName), artistWidth)

	return m.songStyle(idx).Render(line)
}

func (m *Model) songStyle(idx int) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.list.SelectedIndex() && m.IsFocused()
	isPlaying := idx == m.current

	switch {
	case isCursor && isPlaying:
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case isPlaying:
		return s.Playing
	default:
		return s.Base
	}
}
