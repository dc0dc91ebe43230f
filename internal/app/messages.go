package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangeetx/sangeetx/internal/playback"
)

// PlaybackMessage is implemented by messages bridged from the playback
// session. Each one re-arms the event watcher once handled.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// ServiceStateChangedMsg is sent when the playback state changes.
type ServiceStateChangedMsg playback.StateChange

func (ServiceStateChangedMsg) playbackMessage() {}

// ServiceTrackChangedMsg is sent when a different song becomes current.
type ServiceTrackChangedMsg playback.TrackChange

func (ServiceTrackChangedMsg) playbackMessage() {}

// ServicePositionMsg is sent on every time update and seek.
type ServicePositionMsg playback.PositionChange

func (ServicePositionMsg) playbackMessage() {}

// ServiceQueueChangedMsg is sent when the queue contents or order change.
type ServiceQueueChangedMsg playback.QueueChange

func (ServiceQueueChangedMsg) playbackMessage() {}

// ServiceModeChangedMsg is sent when shuffle or repeat changes.
type ServiceModeChangedMsg playback.ModeChange

func (ServiceModeChangedMsg) playbackMessage() {}

// ServiceLikeChangedMsg is sent when a song's liked flag flips.
type ServiceLikeChangedMsg playback.LikeChange

func (ServiceLikeChangedMsg) playbackMessage() {}

// ServicePromptMsg is sent when the mobile play prompt appears or goes away.
type ServicePromptMsg playback.PromptChange

func (ServicePromptMsg) playbackMessage() {}

// ServiceVolumeMsg is sent when the volume or mute flag changes.
type ServiceVolumeMsg playback.VolumeChange

func (ServiceVolumeMsg) playbackMessage() {}

// ServiceErrorMsg is sent when a session operation fails.
type ServiceErrorMsg playback.ErrorEvent

func (ServiceErrorMsg) playbackMessage() {}

// ServiceClosedMsg is sent when the playback session is closed.
type ServiceClosedMsg struct{}

func (ServiceClosedMsg) playbackMessage() {}
