package player

// State is the status of the element owned by a Controller.
//
//	┌──────────┐   load    ┌──────────┐   play    ┌──────────┐
//	│  Stopped │ ─────────▶│  Loaded  │ ─────────▶│  Playing │
//	└──────────┘           └──────────┘           └──────────┘
//	     ▲                      ▲                   │     ▲
//	     │ close                │ ended       pause │     │ play
//	     │                      │                   ▼     │
//	     └──────────────────────┴──────────────── ┌──────────┐
//	                                              │  Paused  │
//	                                              └──────────┘
//
// A failed load leaves the controller Stopped. A play rejected with
// ErrPlaybackBlocked leaves the state unchanged.
type State int

const (
	Stopped State = iota
	Loaded
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loaded:
		return "Loaded"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// HasSource reports whether an element is loaded and can be played.
func (s State) HasSource() bool {
	return s == Loaded || s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanPlay returns true if the state allows starting or resuming playback.
func (s State) CanPlay() bool {
	return s == Loaded || s == Paused
}
