// Package playback implements the listening session: the queue, the
// transport state machine and the single command channel that drives them.
package playback

import (
	"context"
	"errors"
	"time"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/player"
	"github.com/sangeetx/sangeetx/internal/playlist"
	"github.com/sangeetx/sangeetx/internal/settings"
	"github.com/sangeetx/sangeetx/internal/unlock"
)

var (
	// ErrEmptyQueue is returned by SelectSong with no songs.
	ErrEmptyQueue = errors.New("no songs to play")
	// ErrInvalidIndex is returned by JumpTo with an out of range index.
	ErrInvalidIndex = errors.New("queue index out of range")
	// ErrUnknownAction is returned for actions the session does not handle.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUnplayable is reported for songs without an audio URL or duration.
	ErrUnplayable = errors.New("song has no playable audio")
	// ErrClosed is returned by Dispatch after Close.
	ErrClosed = errors.New("playback session closed")
)

// LikeStore persists the liked flag of a song.
type LikeStore interface {
	SetLiked(ctx context.Context, songID string, liked bool) error
}

// PlayRecorder counts a play of a song.
type PlayRecorder interface {
	RecordPlay(ctx context.Context, songID string) error
}

// Service defines the playback session contract.
type Service interface {
	// Dispatch applies an action. It returns an error only for invalid
	// requests; playback failures are reported through Subscription.Error.
	Dispatch(a Action) error

	// Snapshot returns a copy of the session state.
	Snapshot() Snapshot

	// Queue returns the queued songs in list order.
	Queue() []api.Song

	// Restore loads a saved queue without starting playback.
	Restore(songs []api.Song, index int, repeat playlist.RepeatMode, shuffle bool)

	// Subscribe registers a new event subscriber.
	Subscribe() *Subscription

	Close() error
}

// Snapshot is the observable session state.
type Snapshot struct {
	Song     *api.Song
	State    State
	Volume   float64
	Muted    bool
	Position time.Duration
	Duration time.Duration
	Shuffle  bool
	Repeat   playlist.RepeatMode
	Index    int
	Length   int

	// ShowMobilePlayPrompt is set while a play waits for the user to tap.
	ShowMobilePlayPrompt bool

	// Err is the last load or play failure of the current song.
	Err error
}

// Progress returns Position/Duration in [0, 1], or 0 without a duration.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return max(0, min(float64(s.Position)/float64(s.Duration), 1))
}

// Options holds the optional collaborators of a session.
type Options struct {
	// Gate defers playback on mobile. Defaults to a desktop gate.
	Gate *unlock.Gate
	// Likes persists ToggleLike. Defaults to a no-op.
	Likes LikeStore
	// Plays records successful starts. Defaults to a no-op.
	Plays PlayRecorder
	// Settings provides autoplay, volume and mute. Defaults to memory.
	Settings settings.Store
	// Timeout bounds each LikeStore and PlayRecorder call.
	Timeout time.Duration
}

type nopStore struct{}

func (nopStore) SetLiked(context.Context, string, bool) error { return nil }
func (nopStore) RecordPlay(context.Context, string) error     { return nil }

// Verify player.Controller satisfies the unlock primer.
var _ unlock.Primer = (*player.Controller)(nil)
