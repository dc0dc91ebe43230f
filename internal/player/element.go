// Package player provides the playback controller and the audio element it owns.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPlaybackBlocked is returned by Play when the output refuses to start
// without a prior user gesture.
var ErrPlaybackBlocked = errors.New("playback blocked until user gesture")

// ErrNoSource is returned by Play or Seek when nothing is loaded.
var ErrNoSource = errors.New("no audio source loaded")

// LoadError reports a missing or undecodable audio source.
type LoadError struct {
	URL string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.URL, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EventKind identifies an element notification.
type EventKind int

const (
	EventTimeUpdate EventKind = iota
	EventEnded
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventTimeUpdate:
		return "timeupdate"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a notification emitted by an element. Gen identifies the load
// that produced it; the controller stamps it before forwarding.
type Event struct {
	Kind     EventKind
	Gen      uint64
	Position time.Duration
	Duration time.Duration
	Err      error
}

// Element is a single audio output handle. Implementations need not be safe
// for concurrent use: the Controller is the only caller.
type Element interface {
	Load(ctx context.Context, url string) error
	Play() error
	Pause()
	Seek(pos time.Duration) error
	SetVolume(level float64)
	SetMuted(muted bool)
	Position() time.Duration
	Duration() time.Duration
	// Prime plays a short silent clip so that later Play calls are allowed.
	Prime() error
	Events() <-chan Event
	Close() error
}

// Factory creates a fresh element for each load.
type Factory func() Element
