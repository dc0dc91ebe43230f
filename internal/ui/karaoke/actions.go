package karaoke

import (
	"github.com/sangeetx/sangeetx/internal/subtitle"
	"github.com/sangeetx/sangeetx/internal/ui/action"
)

// Source is the component name used in action.Msg.
const Source = "karaoke"

// FetchedMsg is sent when the lyrics of a song have been fetched.
type FetchedMsg struct {
	SongID string
	Lyrics *subtitle.Lyrics
	Err    error
}

// frameMsg advances the scroll animation by one frame.
type frameMsg struct{}

// ActionMsg creates an action.Msg from the lyrics panel.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
