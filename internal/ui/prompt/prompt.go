// Package prompt provides the tap-to-play popup shown when a mobile
// terminal blocks playback until the user confirms.
package prompt

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/keymap"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/ui"
	"github.com/sangeetx/sangeetx/internal/ui/action"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// Source is the component name used in action.Msg.
const Source = "prompt"

// Model is the unlock prompt. It covers the whole screen: a click on the
// dialog confirms, a click elsewhere dismisses.
type Model struct {
	ui.Base
	song   string
	active bool
}

// New creates a hidden prompt.
func New() *Model {
	return &Model{}
}

// Show displays the prompt for the named song.
func (m *Model) Show(song string) {
	m.song = song
	m.active = true
}

// Hide removes the prompt without emitting anything.
func (m *Model) Hide() {
	m.active = false
}

// Active returns whether the prompt is shown.
func (m *Model) Active() bool {
	return m.active
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if !m.active {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch keymap.Lookup(Source, msg.String()) { //nolint:exhaustive // prompt keys only
		case keymap.ActionConfirm:
			return m, m.resolve(playback.ConfirmUnlock{})
		case keymap.ActionDismiss:
			return m, m.resolve(playback.DismissUnlock{})
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.Bounds().Contains(msg.X, msg.Y) {
			return m, m.resolve(playback.ConfirmUnlock{})
		}
		return m, m.resolve(playback.DismissUnlock{})
	}
	return m, nil
}

func (m *Model) resolve(a action.Action) tea.Cmd {
	m.active = false
	return func() tea.Msg {
		return action.Msg{Source: Source, Action: a}
	}
}

func (m *Model) dialog() *popup.Dialog {
	t := styles.T()
	d := popup.New()
	d.Title = "Tap to play"
	d.Content = "This terminal needs a tap before audio can start.\n\n" +
		t.S().Muted.Render(m.song) + "\n\n" +
		t.S().Button.Render("▶ Play")
	d.Footer = "enter/y play · esc/n not now"
	d.Style.BorderColor = t.Warning
	return d
}

// Bounds returns the screen area of the dialog.
func (m *Model) Bounds() popup.Rect {
	return popup.Placement(m.dialog().Box(m.Width()), m.Width(), m.Height())
}

// View implements popup.Popup. It renders the centered dialog, ready to
// be composed over the main view.
func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	return m.dialog().Render(m.Width(), m.Height())
}
