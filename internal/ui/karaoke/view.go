package karaoke

import (
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/sangeetx/sangeetx/internal/icons"
	"github.com/sangeetx/sangeetx/internal/subtitle"
	"github.com/sangeetx/sangeetx/internal/ui/render"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	width := m.Width()

	rows := make([]string, 0, m.Height())
	rows = append(rows, render.TruncateEllipsis(m.title(), width))
	rows = append(rows, m.body()...)
	rows = append(rows, t.S().Subtle.Render(render.TruncateEllipsis(m.footer(), width)))

	for i, row := range rows {
		rows[i] = lipgloss.NewStyle().Width(width).MaxWidth(width).Render(row)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) title() string {
	t := styles.T()
	title := t.S().Title.Render(icons.FormatLyrics("Lyrics"))
	if m.song != nil {
		title += t.S().Muted.Render(" · " + render.Sanitize(m.song.Title))
	}
	return title
}

func (m *Model) footer() string {
	switch {
	case m.state != StateLoaded:
		return ""
	case !m.lyrics.Synced:
		return "plain lyrics · j/k scroll"
	case m.synced:
		return "following · j/k scroll · enter seek"
	default:
		return "t follow · enter seek"
	}
}

// body renders exactly viewport rows.
func (m *Model) body() []string {
	viewport := m.viewport()
	var rows []string
	switch m.state {
	case StateIdle:
		rows = m.placeholder("Nothing playing")
	case StateLoading:
		rows = m.placeholder("Loading lyrics…")
	case StateNotFound:
		rows = m.placeholder("No lyrics for this song")
	case StateLoaded:
		rows = m.visibleRows()
	}
	for len(rows) < viewport {
		rows = append(rows, "")
	}
	return rows[:viewport]
}

func (m *Model) placeholder(text string) []string {
	rows := make([]string, m.viewport()/2, m.viewport())
	style := styles.T().S().Subtle.Width(m.Width()).Align(lipgloss.Center)
	return append(rows, style.Render(text))
}

func (m *Model) visibleRows() []string {
	start := int(math.Round(m.offset))
	end := start + m.viewport()
	width := m.textWidth()

	rows := make([]string, 0, m.viewport())
	row := 0
	for i, line := range m.lyrics.Lines {
		h := m.heights[i]
		if row+h <= start {
			row += h
			continue
		}
		if row >= end {
			break
		}
		for j, text := range m.renderLine(i, line, width) {
			if row+j >= start && row+j < end {
				rows = append(rows, text)
			}
		}
		row += h
	}
	return rows
}

// renderLine returns the wrapped, styled rows of line i.
func (m *Model) renderLine(i int, line subtitle.Line, width int) []string {
	t := styles.T()
	wrapped := render.Wrap(line.Text, width)

	// Manual mode is a plain list with a cursor; only synced mode highlights.
	highlight := m.synced && i == m.active

	marker := "  "
	switch {
	case !m.synced && i == m.cursor:
		marker = t.S().Playing.Render("› ")
	case highlight:
		marker = t.S().Playing.Render("▶ ")
	}

	var states []subtitle.WordState
	if highlight {
		states = m.wordStates(line)
	}
	next := 0

	out := make([]string, len(wrapped))
	for j, text := range wrapped {
		prefix := "  "
		if j == 0 {
			prefix = marker
		}
		switch {
		case highlight:
			out[j] = prefix + highlightRow(text, states, &next)
		case !m.synced && i == m.cursor:
			out[j] = prefix + t.S().Cursor.Render(text)
		default:
			out[j] = prefix + t.S().Lyric.Render(text)
		}
	}
	return out
}

// wordStates returns the state of every non-space rune of the active line.
func (m *Model) wordStates(line subtitle.Line) []subtitle.WordState {
	var states []subtitle.WordState
	for _, w := range subtitle.Highlight(line, m.position) {
		for range []rune(w.Text) {
			states = append(states, w.State)
		}
	}
	return states
}

// highlightRow styles one wrapped row of the active line. next indexes
// states and carries over from the previous row.
func highlightRow(text string, states []subtitle.WordState, next *int) string {
	var b, run strings.Builder
	cur := subtitle.Pending
	flush := func() {
		if run.Len() > 0 {
			b.WriteString(stateStyle(cur).Render(run.String()))
			run.Reset()
		}
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			flush()
			b.WriteRune(r)
			continue
		}
		state := subtitle.Pending
		if *next < len(states) {
			state = states[*next]
		}
		*next++
		if state != cur {
			flush()
			cur = state
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

func stateStyle(s subtitle.WordState) lipgloss.Style {
	st := styles.T().S()
	switch s {
	case subtitle.Sung:
		return st.Sung
	case subtitle.Singing:
		return st.Singing
	default:
		return st.Pending
	}
}
