package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_String(t *testing.T) {
	names := map[State]string{
		StateStopped: "Stopped",
		StatePlaying: "Playing",
		StatePaused:  "Paused",
		State(7):     "Unknown",
	}
	for st, want := range names {
		assert.Equal(t, want, st.String())
	}
}

func TestState_ZeroValueIsStopped(t *testing.T) {
	var snap Snapshot
	assert.Equal(t, StateStopped, snap.State)
	assert.Nil(t, snap.Song)
}
