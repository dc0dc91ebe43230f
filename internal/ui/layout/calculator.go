// Package layout provides pure functions for UI dimension calculations.
package layout

import "github.com/sangeetx/sangeetx/internal/ui/popup"

// NarrowThreshold is the terminal width below which the layout switches to narrow mode.
// In narrow mode, the side panel is displayed below the song list instead of beside it.
const NarrowThreshold = 100

// Screen holds the regions of the main screen. All rects use absolute
// terminal coordinates.
type Screen struct {
	Header    popup.Rect
	Songs     popup.Rect
	Side      popup.Rect // lyrics or queue
	PlayerBar popup.Rect
	Narrow    bool
}

// Opts contains the parameters needed to split the screen.
type Opts struct {
	HeaderHeight    int
	PlayerBarHeight int
}

// Compute splits a width x height terminal into the screen regions.
func Compute(width, height int, opts Opts) Screen {
	narrow := IsNarrowMode(width)
	content := ContentHeight(height, opts)
	top := opts.HeaderHeight

	s := Screen{
		Header:    popup.Rect{X: 0, Y: 0, Width: width, Height: opts.HeaderHeight},
		PlayerBar: popup.Rect{X: 0, Y: top + content, Width: width, Height: opts.PlayerBarHeight},
		Narrow:    narrow,
	}

	songsW := SongsWidth(width, narrow)
	songsH := SongsHeight(content, narrow)
	s.Songs = popup.Rect{X: 0, Y: top, Width: songsW, Height: songsH}
	if narrow {
		s.Side = popup.Rect{X: 0, Y: top + songsH, Width: width, Height: content - songsH}
	} else {
		s.Side = popup.Rect{X: songsW, Y: top, Width: width - songsW, Height: content}
	}
	return s
}

// ContentHeight calculates the available height for the main content area
// (song list + side panel).
func ContentHeight(windowHeight int, opts Opts) int {
	return max(windowHeight-opts.HeaderHeight-opts.PlayerBarHeight, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// SongsWidth returns full width in narrow mode and 3/5 of it otherwise.
func SongsWidth(windowWidth int, narrow bool) int {
	if narrow {
		return windowWidth
	}
	return windowWidth * 3 / 5
}

// SongsHeight returns half of the content height in narrow mode, where the
// side panel is stacked below, and all of it otherwise.
func SongsHeight(contentHeight int, narrow bool) int {
	if narrow {
		return contentHeight / 2
	}
	return contentHeight
}

// Translate returns x, y relative to r.
func Translate(r popup.Rect, x, y int) (rx, ry int) {
	return x - r.X, y - r.Y
}
