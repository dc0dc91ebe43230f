package queuepanel

import "github.com/sangeetx/sangeetx/internal/ui/action"

// Source is the component name used in action.Msg.
const Source = "queuepanel"

// ActionMsg creates an action.Msg from the queue panel.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: Source, Action: a}
}
