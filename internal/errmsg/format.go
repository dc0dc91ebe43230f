// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/player"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpSongsLoad  Op = "load songs"
	OpSongSearch Op = "search songs"

	// Playback operations
	OpPlaybackLoad  Op = "load song"
	OpPlaybackStart Op = "start playback"
	OpPlaybackSeek  Op = "seek"

	// Song actions
	OpLikeToggle Op = "update like"
	OpPlayRecord Op = "record play"

	// Lyrics
	OpLyricsLoad Op = "load lyrics"

	// Queue persistence
	OpQueueLoad Op = "load queue"
	OpQueueSave Op = "save queue"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, describe(err))
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, describe(err))
}

// describe replaces errors that have a better plain-language explanation.
func describe(err error) any {
	var apiErr *api.Error
	switch {
	case errors.Is(err, player.ErrPlaybackBlocked):
		return "playback needs a tap to start"
	case errors.Is(err, player.ErrUnsupportedFormat):
		return "unsupported audio format"
	case errors.Is(err, player.ErrTooLarge):
		return "audio file too large"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	default:
		return err
	}
}
