package playback

import (
	"time"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playlist"
)

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when a different song becomes current and is
// loaded. Replaying the same song (repeat one, retry) does not emit it.
//
// The app handles track-related side effects (notifications, cover art,
// lyrics) in response to this event.
type TrackChange struct {
	Previous      *api.Song
	Current       *api.Song
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents or play order change.
type QueueChange struct {
	Songs []api.Song
	Index int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  playlist.RepeatMode
	Shuffle bool
}

// PositionChange is emitted on every time update and seek.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// LikeChange is emitted when the liked flag of a song flips.
type LikeChange struct {
	SongID string
	Liked  bool
}

// PromptChange is emitted when the mobile play prompt appears or goes away.
type PromptChange struct {
	Visible bool
}

// VolumeChange is emitted when the level or mute flag changes.
type VolumeChange struct {
	Volume float64
	Muted  bool
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g. "load", "play", "like"
	SongID    string
	Err       error
}
