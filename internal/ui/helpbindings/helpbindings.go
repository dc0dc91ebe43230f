// Package helpbindings provides a scrollable popup for displaying keybindings.
package helpbindings

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sangeetx/sangeetx/internal/keymap"
	"github.com/sangeetx/sangeetx/internal/ui"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// categoryOrder defines the display order of binding categories.
var categoryOrder = []string{
	"global",
	"playback",
	"songs",
	"lyrics",
	"prompt",
}

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"songs":    "Song List & Queue",
	"lyrics":   "Lyrics",
	"prompt":   "Play Prompt",
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	help         help.Model
	contexts     []string
	scrollOffset int
}

// New creates a new help bindings model.
func New() Model {
	t := styles.T()
	h := help.New()
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(t.FgBase)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(t.FgSubtle)
	return Model{help: h}
}

// SetContexts sets which binding contexts to display.
func (m *Model) SetContexts(contexts []string) {
	m.contexts = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.contexts = append(m.contexts, ctx)
		}
	}
	m.scrollOffset = 0
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button { //nolint:exhaustive // wheel only
		case tea.MouseButtonWheelDown:
			m.scroll(1)
		case tea.MouseButtonWheelUp:
			m.scroll(-1)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "?", "esc", "q":
			return m, func() tea.Msg { return ActionMsg(Close{}) }
		case "j", "down":
			m.scroll(1)
		case "k", "up":
			m.scroll(-1)
		}
	}
	return m, nil
}

func (m *Model) scroll(delta int) {
	m.scrollOffset = max(0, min(m.scrollOffset+delta, m.maxScroll()))
}

// View implements popup.Popup. The content is unbordered; the caller frames
// it with popup.RenderBordered.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()

	lines := m.contentLines()
	maxWidth := 0
	for _, line := range lines {
		maxWidth = max(maxWidth, lipgloss.Width(line))
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+m.visibleHeight(), len(lines))

	var sb strings.Builder
	sb.WriteString(styles.ApplyBoldGradient("Help", t.Primary, t.Secondary))
	sb.WriteString("\n\n")
	for _, line := range lines[start:end] {
		sb.WriteString(line + strings.Repeat(" ", maxWidth-lipgloss.Width(line)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(t.S().Subtle.Render(m.footer()))
	return sb.String()
}

func (m Model) contentLines() []string {
	t := styles.T()
	header := lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	sep := lipgloss.NewStyle().Foreground(t.FgSubtle)

	var lines []string
	for i, ctx := range m.contexts {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines,
			header.Render(categoryLabels[ctx]),
			sep.Render(strings.Repeat("─", 30)),
		)
		body := m.help.FullHelpView([][]key.Binding{keymap.Help(ctx)})
		lines = append(lines, strings.Split(body, "\n")...)
	}
	return lines
}

func (m Model) footer() string {
	if len(m.contentLines()) <= m.visibleHeight() {
		return "?/esc close"
	}
	return "j/k scroll · ?/esc close"
}

func (m Model) visibleHeight() int {
	// Leave room for popup chrome (title, footer, borders, margins)
	return max(m.Height()-10, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.contentLines())-m.visibleHeight(), 0)
}
