package songlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/icons"
	"github.com/sangeetx/sangeetx/internal/ui"
	"github.com/sangeetx/sangeetx/internal/ui/render"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

const (
	durationWidth = 6
	playsWidth    = 9
)

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	innerWidth := m.Width() - ui.BorderHeight
	listHeight := max(m.Height()-ui.PanelOverhead, 0)

	lines := []string{m.renderHeader(innerWidth), render.Separator(innerWidth)}
	if m.searching {
		lines = append(lines, render.Pad(ansi.Truncate(m.search.View(), innerWidth, ""), innerWidth))
		listHeight = max(listHeight-1, 0)
	}
	lines = append(lines, m.renderRows(innerWidth, listHeight)...)

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderHeader(width int) string {
	s := styles.T().S()
	title := "Songs"
	if m.query != "" {
		title = fmt.Sprintf("Results for %q", m.query)
	}
	count := ""
	if !m.loading && m.err == "" {
		count = fmt.Sprintf("%d", m.list.Len())
	}
	return s.Title.Render(render.Row(render.TruncateEllipsis(title, width-len(count)-1), count, width))
}

func (m *Model) renderRows(width, height int) []string {
	s := styles.T().S()
	rows := make([]string, 0, height)
	switch {
	case m.loading:
		rows = append(rows, s.Muted.Render(render.Pad("Loading songs…", width)))
	case m.err != "":
		rows = append(rows, s.Error.Render(render.TruncateAndPadEllipsis(icons.FormatError(m.err), width)))
	case m.list.Len() == 0:
		rows = append(rows, s.Muted.Render(render.Pad("No songs found", width)))
	default:
		start, end := m.list.VisibleRange()
		items := m.list.Items()
		for i := start; i < end && len(rows) < height; i++ {
			rows = append(rows, m.renderRow(items[i], i == m.list.SelectedIndex(), width))
		}
	}
	for len(rows) < height {
		rows = append(rows, render.EmptyLine(width))
	}
	return rows[:height]
}

func (m *Model) renderRow(song api.Song, selected bool, width int) string {
	s := styles.T().S()

	like := icons.Like(song.IsLiked)
	likeWidth := lipgloss.Width(like) + 1
	duration := formatDuration(song.Duration)
	plays := humanize.Comma(song.PlayCount)

	textWidth := width - likeWidth - durationWidth - playsWidth
	if textWidth < 10 {
		// Narrow panel: title only.
		textWidth = width - likeWidth
		duration, plays = "", ""
	}
	text := render.Sanitize(song.Title)
	if song.ArtistName != "" {
		text += " · " + render.Sanitize(song.ArtistName)
	}

	row := render.Pad(like, likeWidth) + render.TruncateAndPadEllipsis(text, textWidth)
	if duration != "" {
		row += fmt.Sprintf("%*s%*s", durationWidth, duration, playsWidth, plays)
	}

	style := s.Base
	switch {
	case song.ID == m.playing:
		style = s.Playing
	case song.IsLiked:
		style = s.Liked
	}
	if selected && m.IsFocused() {
		style = style.Background(styles.T().BgCursor)
	}
	return style.Render(row)
}

func formatDuration(seconds int) string {
	if seconds <= 0 {
		return "--:--"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
