// Package playerbar renders the mini-player: transport buttons, the song,
// a clickable progress bar and volume slider. Render and Hit share one
// layout so a click lands on exactly what was drawn.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/playback"
	"github.com/sangeetx/sangeetx/internal/playlist"
	"github.com/sangeetx/sangeetx/internal/ui/render"
	"github.com/sangeetx/sangeetx/internal/ui/styles"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // Single-line view
	ModeExpanded                    // Cover and details above the controls
)

const (
	// CoverCols and CoverRows size the cover in expanded mode.
	CoverCols = 8
	CoverRows = 4

	// MinExpandedWidth is the narrowest bar that shows the expanded view.
	MinExpandedWidth = 50

	// paddingX is the border plus the horizontal padding.
	paddingX = 3
	coverGap = 2
)

// State holds everything needed to render the player bar.
type State struct {
	Song     *api.Song
	Playing  bool
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Muted    bool
	Shuffle  bool
	Repeat   playlist.RepeatMode
	Index    int
	Length   int

	// Err replaces the song info with a message and a retry button.
	Err string

	// Cover is the pre-rendered cover, CoverCols x CoverRows cells.
	Cover string

	DisplayMode DisplayMode
}

// NewState builds a State from a session snapshot. errText is the
// user-facing form of snap.Err, if any.
func NewState(snap playback.Snapshot, errText string, mode DisplayMode) State {
	return State{
		Song:        snap.Song,
		Playing:     snap.State == playback.StatePlaying,
		Position:    snap.Position,
		Duration:    snap.Duration,
		Volume:      snap.Volume,
		Muted:       snap.Muted,
		Shuffle:     snap.Shuffle,
		Repeat:      snap.Repeat,
		Index:       snap.Index,
		Length:      snap.Length,
		Err:         errText,
		DisplayMode: mode,
	}
}

// Progress returns Position/Duration in [0, 1].
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return max(0, min(float64(s.Position)/float64(s.Duration), 1))
}

// Height returns the total height of the player bar for the given mode.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return CoverRows + 2
	}
	return 3 // top border + content + bottom border
}

func expanded(s State, width int) bool {
	return s.DisplayMode == ModeExpanded && width >= MinExpandedWidth
}

// controlsOrigin returns the bar-relative cell of the first control
// segment and the width available to the controls.
func controlsOrigin(s State, width int) (x, y, inner int) {
	inner = max(width-2*paddingX, 0)
	if expanded(s, width) {
		return paddingX + CoverCols + coverGap, CoverRows, max(inner-CoverCols-coverGap, 0)
	}
	return paddingX, 1, inner
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	t := styles.T()
	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 2).
		Width(max(width-2, 0))

	_, _, inner := controlsOrigin(s, width)
	controls := renderSegments(layout(s, inner), inner)

	if !expanded(s, width) {
		return box.Render(controls)
	}

	details := detailRows(s, inner)
	rows := make([]string, CoverRows)
	cover := strings.Split(s.Cover, "\n")
	for i := range rows {
		art := strings.Repeat(" ", CoverCols)
		if i < len(cover) && s.Cover != "" {
			art = render.Pad(cover[i], CoverCols)
		}
		right := controls
		if i < CoverRows-1 {
			right = details[i]
		}
		rows[i] = art + strings.Repeat(" ", coverGap) + right
	}
	return box.Render(strings.Join(rows, "\n"))
}

// detailRows returns the rows above the controls in expanded mode.
func detailRows(s State, width int) []string {
	t := styles.T()
	rows := make([]string, CoverRows-1)
	if s.Song == nil {
		return rows
	}

	rows[0] = t.S().Title.Render(render.TruncateEllipsis(render.Sanitize(s.Song.Title), width))

	info := []string{s.Song.ArtistName}
	if s.Song.Album != "" {
		info = append(info, s.Song.Album)
	}
	if s.Song.Year > 0 {
		info = append(info, fmt.Sprint(s.Song.Year))
	}
	rows[1] = t.S().Muted.Render(render.TruncateEllipsis(render.Sanitize(strings.Join(info, " · ")), width))

	meta := humanize.Comma(s.Song.PlayCount) + " plays"
	if s.Length > 0 {
		meta += fmt.Sprintf(" · %d/%d in queue", s.Index+1, s.Length)
	}
	if s.Song.Genre != "" {
		meta += " · " + s.Song.Genre
	}
	rows[2] = t.S().Subtle.Render(render.TruncateEllipsis(meta, width))
	return rows
}

func formatDuration(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
