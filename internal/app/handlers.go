package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/app/handler"
	"github.com/sangeetx/sangeetx/internal/keymap"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/ui/headerbar"
	"github.com/sangeetx/sangeetx/internal/ui/popup"
)

const (
	seekStep     = 5 * time.Second
	seekStepLong = 30 * time.Second
	volumeStep   = 0.05
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.firstGesture()

	// Modal layers take every key.
	switch {
	case m.prompt.Active():
		return m, m.routeTo(m.prompt, msg)
	case m.showHelp:
		return m, m.routeTo(m.help, msg)
	case m.songs.Searching():
		return m, m.routeTo(m.songs, msg)
	}

	a := keymap.Lookup(m.focusContext(), msg.String())
	if handled, cmd := handler.Chain(a,
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
	); handled {
		return m, cmd
	}
	return m, m.routeTo(m.focused(), msg)
}

// firstGesture unlocks audio on the first key press or click.
func (m *Model) firstGesture() {
	if m.gestured {
		return
	}
	m.gestured = true
	m.dispatch(playback.Gesture{})
}

func (m *Model) routeTo(p popup.Popup, msg tea.Msg) tea.Cmd {
	_, cmd := p.Update(msg)
	return cmd
}

// focusContext is the keymap context of the focused panel.
func (m Model) focusContext() string {
	if m.focus == FocusSide && m.side == headerbar.PanelLyrics {
		return "lyrics"
	}
	return "songs"
}

func (m Model) focused() popup.Popup {
	if m.focus == FocusSongs {
		return m.songs
	}
	if m.side == headerbar.PanelQueue {
		return m.queue
	}
	return m.lyrics
}

// handleGlobalKeys handles quit, focus, search, side panel and help.
func (m *Model) handleGlobalKeys(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // global actions only
	case keymap.ActionQuit:
		m.SaveQueueState()
		return handler.Handled(tea.Quit)
	case keymap.ActionSwitchFocus:
		if m.focus == FocusSongs {
			m.focus = FocusSide
		} else {
			m.focus = FocusSongs
		}
		m.applyFocus()
		return handler.HandledNoCmd
	case keymap.ActionSearch:
		m.focus = FocusSongs
		m.applyFocus()
		return handler.Handled(m.songs.StartSearch())
	case keymap.ActionToggleLyrics:
		if m.side == headerbar.PanelLyrics {
			m.side = headerbar.PanelQueue
		} else {
			m.side = headerbar.PanelLyrics
		}
		m.applyFocus()
		return handler.HandledNoCmd
	case keymap.ActionHelp:
		m.help.SetContexts(helpContexts())
		m.showHelp = true
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// handlePlaybackKeys turns transport keys into session actions.
func (m *Model) handlePlaybackKeys(a keymap.Action) handler.Result {
	var act playback.Action
	switch a { //nolint:exhaustive // playback actions only
	case keymap.ActionPlayPause:
		act = playback.PlayPause{}
	case keymap.ActionStop:
		act = playback.Stop{}
	case keymap.ActionNextTrack:
		act = playback.Next{}
	case keymap.ActionPrevTrack:
		act = playback.Previous{}
	case keymap.ActionSeekForward:
		act = m.seekBy(seekStep)
	case keymap.ActionSeekBack:
		act = m.seekBy(-seekStep)
	case keymap.ActionSeekForwardLong:
		act = m.seekBy(seekStepLong)
	case keymap.ActionSeekBackLong:
		act = m.seekBy(-seekStepLong)
	case keymap.ActionVolumeUp:
		act = playback.SetVolume{Level: min(m.snap.Volume+volumeStep, 1)}
	case keymap.ActionVolumeDown:
		act = playback.SetVolume{Level: max(m.snap.Volume-volumeStep, 0)}
	case keymap.ActionToggleMute:
		act = playback.ToggleMute{}
	case keymap.ActionCycleRepeat:
		act = playback.CycleRepeat{}
	case keymap.ActionToggleShuffle:
		act = playback.ToggleShuffle{}
	case keymap.ActionToggleLike:
		act = playback.ToggleLike{}
	case keymap.ActionRetry:
		return handler.Handled(m.retry())
	default:
		return handler.NotHandled
	}
	if act != nil {
		m.dispatch(act)
	}
	return handler.HandledNoCmd
}

// seekBy returns a seek relative to the current position, or nil when
// nothing is loaded.
func (m *Model) seekBy(d time.Duration) playback.Action {
	if m.snap.Song == nil || m.snap.Duration <= 0 {
		return nil
	}
	pos := max(0, min(m.snap.Position+d, m.snap.Duration))
	return playback.SeekTo{Position: pos}
}
