package songlist

import (
	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/ui/action"
)

// Source is the component name used in action.Msg.
const Source = "songlist"

// Search asks for the catalog to be searched. An empty query lists
// every song.
type Search struct {
	Query string
}

// ActionType implements action.Action.
func (Search) ActionType() string { return "songlist.search" }

// LoadedMsg delivers the songs for a query.
type LoadedMsg struct {
	Query string
	Songs []api.Song
	Err   error
}

// ActionMsg creates an action.Msg from the song list.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
