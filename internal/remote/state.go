package remote

import (
	"strings"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
)

type stateJSON struct {
	Song       *api.Song `json:"song"`
	State      string    `json:"state"`
	Volume     float64   `json:"volume"`
	Muted      bool      `json:"muted"`
	Position   float64   `json:"position"`
	Duration   float64   `json:"duration"`
	Shuffle    bool      `json:"shuffle"`
	Repeat     string    `json:"repeat"`
	Index      int       `json:"index"`
	Length     int       `json:"length"`
	ShowPrompt bool      `json:"showMobilePlayPrompt"`
	Error      string    `json:"error,omitempty"`
}

func jsonState(s playback.Snapshot) stateJSON {
	out := stateJSON{
		Song:       s.Song,
		State:      stateName(s.State),
		Volume:     s.Volume,
		Muted:      s.Muted,
		Position:   s.Position.Seconds(),
		Duration:   s.Duration.Seconds(),
		Shuffle:    s.Shuffle,
		Repeat:     s.Repeat.String(),
		Index:      s.Index,
		Length:     s.Length,
		ShowPrompt: s.ShowMobilePlayPrompt,
	}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return out
}

func stateName(s playback.State) string {
	return strings.ToLower(s.String())
}
