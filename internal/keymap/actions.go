// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit         Action = "quit"
	ActionSwitchFocus  Action = "switch_focus"
	ActionSearch       Action = "search"
	ActionHelp         Action = "help"
	ActionToggleLyrics Action = "toggle_lyrics"

	// Playback actions
	ActionPlayPause       Action = "play_pause"
	ActionStop            Action = "stop"
	ActionNextTrack       Action = "next_track"
	ActionPrevTrack       Action = "prev_track"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionSeekForwardLong Action = "seek_forward_long"
	ActionSeekBackLong    Action = "seek_back_long"
	ActionVolumeUp        Action = "volume_up"
	ActionVolumeDown      Action = "volume_down"
	ActionToggleMute      Action = "toggle_mute"
	ActionCycleRepeat     Action = "cycle_repeat"
	ActionToggleShuffle   Action = "toggle_shuffle"
	ActionToggleLike      Action = "toggle_like"
	ActionRetry           Action = "retry"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Selection/activation actions
	ActionSelect Action = "select" // enter - play/activate
	ActionAdd    Action = "add"    // a - add to queue
	ActionRemove Action = "remove" // x - remove from queue

	// Lyrics panel actions
	ActionToggleSynced Action = "toggle_synced" // t - follow playback or scroll freely

	// Unlock prompt actions
	ActionConfirm Action = "confirm"
	ActionDismiss Action = "dismiss"
)
