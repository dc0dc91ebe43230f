// Package subtitle provides timed lyric lines, the lookups that keep them in
// step with playback, and the sources they are fetched from.
package subtitle

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/sangeetx/sangeetx/internal/api"
)

// Epsilon is the minimum length of a line. Lines with start == end are
// widened to it so progress never divides by zero.
const Epsilon = 10 * time.Millisecond

// Line is a single timed lyric line.
type Line struct {
	Start    time.Duration
	End      time.Duration
	Text     string
	Language string
}

// Length returns End-Start, never less than Epsilon.
func (l Line) Length() time.Duration {
	return max(l.End-l.Start, Epsilon)
}

// Contains reports whether t lies within [Start, End].
func (l Line) Contains(t time.Duration) bool {
	return l.Start <= t && t <= l.End
}

// Lyrics is the set of lines for one song and language.
type Lyrics struct {
	Lines []Line
	// Synced is false for plain lyrics without timestamps.
	Synced bool
	// Origin names where the lines came from: "api", "cache" or "lrclib".
	Origin string
}

// Empty reports whether there is nothing to display.
func (l *Lyrics) Empty() bool {
	return l == nil || len(l.Lines) == 0
}

// ActiveIndex returns the index of the active line at t, or -1.
func (l *Lyrics) ActiveIndex(t time.Duration) int {
	if l.Empty() || !l.Synced {
		return -1
	}
	return ActiveIndex(l.Lines, t)
}

// Normalize prepares lines for lookup: it drops lines with blank text or
// End < Start, widens zero-length lines to Epsilon, and stable-sorts by
// Start. Overlapping lines are kept; ActiveIndex picks the one that starts
// first.
func Normalize(lines []Line) []Line {
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		l.Text = strings.TrimSpace(l.Text)
		if l.Text == "" || l.End < l.Start || l.Start < 0 {
			continue
		}
		if l.End == l.Start {
			l.End = l.Start + Epsilon
		}
		out = append(out, l)
	}
	slices.SortStableFunc(out, func(a, b Line) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out
}

// ActiveIndex returns the first line with Start <= t <= End, or -1. Lines
// must be sorted by Start.
func ActiveIndex(lines []Line, t time.Duration) int {
	for i, l := range lines {
		if l.Start > t {
			break
		}
		if t <= l.End {
			return i
		}
	}
	return -1
}

// FromAPI converts subtitle records (times in seconds) into normalized lines.
func FromAPI(subs []api.Subtitle) []Line {
	lines := make([]Line, 0, len(subs))
	for _, s := range subs {
		lines = append(lines, Line{
			Start:    seconds(s.StartTime),
			End:      seconds(s.EndTime),
			Text:     s.Text,
			Language: s.Language,
		})
	}
	return Normalize(lines)
}

func seconds(s float64) time.Duration {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return -1
	}
	return time.Duration(math.Round(s * float64(time.Second)))
}
