package remote

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
)

// ErrUnknownAction is returned for an action name the session does not know.
var ErrUnknownAction = errors.New("unknown action")

// actionRequest is the body of POST /dispatch. Only the fields the named
// action needs are read.
type actionRequest struct {
	Action   string     `json:"action"`
	Position float64    `json:"position"` // seconds
	X        int        `json:"x"`
	Width    int        `json:"width"`
	Level    float64    `json:"level"`
	Index    int        `json:"index"`
	Songs    []api.Song `json:"songs"`
}

// simpleActions are the actions without parameters, by name.
var simpleActions = lo.KeyBy([]playback.Action{
	playback.PlayPause{}, playback.Play{}, playback.Pause{}, playback.Stop{},
	playback.Next{}, playback.Previous{}, playback.ToggleShuffle{},
	playback.CycleRepeat{}, playback.ToggleLike{}, playback.Retry{},
	playback.ToggleMute{}, playback.ConfirmUnlock{}, playback.DismissUnlock{},
}, playback.Action.ActionType)

// toAction converts a request into a session action.
func (r actionRequest) toAction() (playback.Action, error) {
	if a, ok := simpleActions[r.Action]; ok {
		return a, nil
	}
	switch r.Action {
	case playback.SeekTo{}.ActionType():
		if r.Position < 0 {
			return nil, fmt.Errorf("%s: negative position", r.Action)
		}
		return playback.SeekTo{Position: time.Duration(r.Position * float64(time.Second))}, nil
	case playback.SeekRatio{}.ActionType():
		return playback.SeekRatio{X: r.X, Width: r.Width}, nil
	case playback.SetVolume{}.ActionType():
		return playback.SetVolume{Level: r.Level}, nil
	case playback.VolumeRatio{}.ActionType():
		return playback.VolumeRatio{X: r.X, Width: r.Width}, nil
	case playback.JumpTo{}.ActionType():
		return playback.JumpTo{Index: r.Index}, nil
	case playback.Remove{}.ActionType():
		return playback.Remove{Index: r.Index}, nil
	case playback.SelectSong{}.ActionType():
		return playback.SelectSong{Songs: r.Songs, Index: r.Index}, nil
	case playback.Enqueue{}.ActionType():
		return playback.Enqueue{Songs: r.Songs}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAction, r.Action)
}
