// Package keymap defines key bindings for the application.
package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "songs", "lyrics", "prompt"
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "global"},
	{ActionSearch, []string{"/"}, "Search", "global"},
	{ActionToggleLyrics, []string{"L"}, "Toggle lyrics", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next song", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous song", "playback"},
	{ActionSeekForward, []string{"right"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"left"}, "Seek -5s", "playback"},
	{ActionSeekForwardLong, []string{"shift+right"}, "Seek +30s", "playback"},
	{ActionSeekBackLong, []string{"shift+left"}, "Seek -30s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"m"}, "Mute", "playback"},
	{ActionCycleRepeat, []string{"R"}, "Cycle repeat mode", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},
	{ActionToggleLike, []string{"f"}, "Like/unlike", "playback"},
	{ActionRetry, []string{"r"}, "Retry after error", "playback"},

	// Song list
	{ActionMoveUp, []string{"k", "up"}, "Move up", "songs"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "songs"},
	{ActionJumpStart, []string{"g", "home"}, "First song", "songs"},
	{ActionJumpEnd, []string{"G", "end"}, "Last song", "songs"},
	{ActionPageUp, []string{"ctrl+u"}, "Page up", "songs"},
	{ActionPageDown, []string{"ctrl+d"}, "Page down", "songs"},
	{ActionSelect, []string{"enter"}, "Play from here", "songs"},
	{ActionAdd, []string{"a"}, "Add to queue", "songs"},
	{ActionRemove, []string{"x", "delete"}, "Remove from queue", "songs"},

	// Lyrics panel
	{ActionMoveUp, []string{"k", "up"}, "Scroll up", "lyrics"},
	{ActionMoveDown, []string{"j", "down"}, "Scroll down", "lyrics"},
	{ActionSelect, []string{"enter"}, "Seek to line", "lyrics"},
	{ActionToggleSynced, []string{"t"}, "Follow playback", "lyrics"},

	// Unlock prompt
	{ActionConfirm, []string{"enter", "y"}, "Start playback", "prompt"},
	{ActionDismiss, []string{"esc", "n"}, "Not now", "prompt"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Help returns the bindings of a context as bubbles key bindings, for use
// with the help component.
func Help(context string) []key.Binding {
	bs := ByContext(context)
	out := make([]key.Binding, 0, len(bs))
	for _, b := range bs {
		out = append(out, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(helpKey(b.Keys[0]), b.Description),
		))
	}
	return out
}

func helpKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
