package playback

// State represents the playback state of the session.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name. The remote API sends it lowercased.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}
