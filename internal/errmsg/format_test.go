package errmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/player"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSongsLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpSongsLoad,
			err:      errors.New("connection refused"),
			expected: "Failed to load songs: connection refused",
		},
		{
			name:     "blocked playback",
			op:       OpPlaybackStart,
			err:      fmt.Errorf("play: %w", player.ErrPlaybackBlocked),
			expected: "Failed to start playback: playback needs a tap to start",
		},
		{
			name:     "unsupported format inside load error",
			op:       OpPlaybackLoad,
			err:      &player.LoadError{URL: "x.aac", Err: player.ErrUnsupportedFormat},
			expected: "Failed to load song: unsupported audio format",
		},
		{
			name:     "api error message",
			op:       OpLikeToggle,
			err:      &api.Error{Op: "like", Status: 500, Message: "database unavailable"},
			expected: "Failed to update like: database unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackLoad,
			context:  "Kesariya",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpPlaybackLoad,
			context:  "Kesariya",
			err:      errors.New("timeout"),
			expected: "Failed to load song 'Kesariya': timeout",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpLyricsLoad,
			context:  "",
			err:      errors.New("timeout"),
			expected: "Failed to load lyrics: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
