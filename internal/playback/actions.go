package playback

import (
	"time"

	"github.com/sangeetx/sangeetx/internal/api"
)

// Action is a command sent to the session through Dispatch.
// The ActionType method returns a string identifier for logging and for
// the remote-control surface.
type Action interface {
	ActionType() string
}

type (
	// PlayPause toggles between playing and paused.
	PlayPause struct{}
	// Play starts or resumes the current song.
	Play struct{}
	// Pause pauses playback. A pause sent while a play is pending applies
	// after the play settles.
	Pause struct{}
	// Stop pauses and rewinds to the start.
	Stop struct{}
	// Next moves to the next song in play order.
	Next struct{}
	// Previous moves to the previous song in play order.
	Previous struct{}
	// ToggleShuffle turns the shuffled play order on or off.
	ToggleShuffle struct{}
	// CycleRepeat cycles none → one → all → none.
	CycleRepeat struct{}
	// ToggleLike flips the liked flag of the current song.
	ToggleLike struct{}
	// Retry reloads the current song after a load failure.
	Retry struct{}
	// ToggleMute mutes or unmutes the output.
	ToggleMute struct{}
	// ConfirmUnlock is the tap on the mobile play prompt.
	ConfirmUnlock struct{}
	// DismissUnlock closes the mobile play prompt without playing.
	DismissUnlock struct{}
	// Gesture reports a user key press or click.
	Gesture struct{}
)

// SeekTo seeks to an absolute position.
type SeekTo struct {
	Position time.Duration
}

// SeekRatio seeks to duration*clamp(X/Width, 0, 1), the result of a click
// at column X of a progress bar Width cells wide.
type SeekRatio struct {
	X, Width int
}

// SetVolume sets the output level in [0, 1].
type SetVolume struct {
	Level float64
}

// VolumeRatio sets the level to clamp(X/Width, 0, 1).
type VolumeRatio struct {
	X, Width int
}

// SelectSong replaces the queue with Songs and starts playing Songs[Index].
type SelectSong struct {
	Songs []api.Song
	Index int
}

// JumpTo plays the queue entry at Index.
type JumpTo struct {
	Index int
}

// Enqueue appends songs to the queue without interrupting playback.
type Enqueue struct {
	Songs []api.Song
}

// Remove drops the queue entry at Index. Removing the current song moves
// on to the next one in play order, keeping the play/pause intent.
type Remove struct {
	Index int
}

func (PlayPause) ActionType() string     { return "play_pause" }
func (Play) ActionType() string          { return "play" }
func (Pause) ActionType() string         { return "pause" }
func (Stop) ActionType() string          { return "stop" }
func (Next) ActionType() string          { return "next" }
func (Previous) ActionType() string      { return "previous" }
func (ToggleShuffle) ActionType() string { return "toggle_shuffle" }
func (CycleRepeat) ActionType() string   { return "cycle_repeat" }
func (ToggleLike) ActionType() string    { return "toggle_like" }
func (Retry) ActionType() string         { return "retry" }
func (ToggleMute) ActionType() string    { return "toggle_mute" }
func (ConfirmUnlock) ActionType() string { return "confirm_unlock" }
func (DismissUnlock) ActionType() string { return "dismiss_unlock" }
func (Gesture) ActionType() string       { return "gesture" }
func (SeekTo) ActionType() string        { return "seek_to" }
func (SeekRatio) ActionType() string     { return "seek_ratio" }
func (SetVolume) ActionType() string     { return "set_volume" }
func (VolumeRatio) ActionType() string   { return "volume_ratio" }
func (SelectSong) ActionType() string    { return "select_song" }
func (JumpTo) ActionType() string        { return "jump_to" }
func (Enqueue) ActionType() string       { return "enqueue" }
func (Remove) ActionType() string        { return "remove" }

// Ratio maps a click at x within a bar of width w to [0, 1].
func Ratio(x, w int) float64 {
	if w <= 0 {
		return 0
	}
	return max(0, min(float64(x)/float64(w), 1))
}
