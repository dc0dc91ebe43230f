// Package headerbar renders the one-line bar at the top of the screen.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sangeetx/sangeetx/internal/icons"
	"github.com/sangeetx/sangeetx/internal/ui/render"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

const title = "SangeetX"

// Panel names the view shown next to the song list.
type Panel string

const (
	PanelLyrics Panel = "lyrics"
	PanelQueue  Panel = "queue"
)

// tab represents a header bar tab.
type tab struct {
	key   string
	name  string
	panel Panel
}

var tabs = []tab{
	{"L", "Lyrics", PanelLyrics},
	{"L", "Queue", PanelQueue},
}

// Status is what the header reports besides the title.
type Status struct {
	Panel Panel

	// Banner is an error to show with a retry hint. It replaces the tabs.
	Banner string

	// Locked is set on mobile until the first tap enables audio.
	Locked bool
}

// Render returns the header bar string for the given width.
func Render(width int, st Status) string {
	if width < 20 {
		return ""
	}
	t := styles.T()
	s := t.S()

	left := styles.ApplyBoldGradient(title, t.Primary, t.Secondary)
	if st.Locked {
		left += s.Warning.Render(" · tap to enable audio")
	}

	var right string
	if st.Banner != "" {
		avail := width - lipgloss.Width(left) - 1 - s.Banner.GetHorizontalFrameSize()
		hint := " [r] retry"
		msg := render.TruncateEllipsis(icons.FormatError(st.Banner), max(avail-len(hint), 1))
		right = s.Banner.Render(msg + hint)
	} else {
		right = renderTabs(st.Panel)
	}

	line := render.Row(left, right, width)
	if lipgloss.Width(line) > width {
		return left
	}
	return line
}

func renderTabs(active Panel) string {
	s := styles.T().S()
	parts := make([]string, 0, len(tabs))
	for _, tb := range tabs {
		if tb.panel == active {
			parts = append(parts, s.Playing.Render(tb.name))
		} else {
			parts = append(parts, s.Muted.Render(tb.name))
		}
	}
	return s.Subtle.Render(tabs[0].key+" ") + strings.Join(parts, s.Subtle.Render(" │ "))
}
