package subtitle

import (
	"testing"
	"time"

	"github.com/sangeetx/sangeetx/internal/api"
)

func sec(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func TestNormalize(t *testing.T) {
	lines := Normalize([]Line{
		{Start: sec(5), End: sec(7), Text: "second"},
		{Start: sec(1), End: sec(1), Text: "zero length"},
		{Start: sec(3), End: sec(2), Text: "inverted"},
		{Start: sec(4), End: sec(6), Text: "   "},
		{Start: sec(5), End: sec(6), Text: "second tie"},
	})

	want := []string{"zero length", "second", "second tie"}
	if len(lines) != len(want) {
		t.Fatalf("len = %d, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i].Text, w)
		}
	}
	if lines[0].End != sec(1)+Epsilon {
		t.Errorf("zero-length end = %v, want %v", lines[0].End, sec(1)+Epsilon)
	}
}

func TestActiveIndex(t *testing.T) {
	lines := Normalize([]Line{
		{Start: sec(1), End: sec(3), Text: "one"},
		{Start: sec(5), End: sec(8), Text: "two"},
		{Start: sec(7), End: sec(9), Text: "overlap"},
	})

	tests := []struct {
		at   time.Duration
		want int
	}{
		{0, -1},
		{sec(1), 0},
		{sec(3), 0},
		{sec(4), -1},
		{sec(7.5), 1},
		{sec(8.5), 2},
		{sec(10), -1},
	}
	for _, tt := range tests {
		if got := ActiveIndex(lines, tt.at); got != tt.want {
			t.Errorf("ActiveIndex(%v) = %d, want %d", tt.at, got, tt.want)
		}
		// Same input, same answer.
		if got := ActiveIndex(lines, tt.at); got != tt.want {
			t.Errorf("second ActiveIndex(%v) = %d, want %d", tt.at, got, tt.want)
		}
	}
}

func TestActiveIndex_Empty(t *testing.T) {
	if got := ActiveIndex(nil, sec(1)); got != -1 {
		t.Errorf("ActiveIndex(nil) = %d, want -1", got)
	}
	var l *Lyrics
	if got := l.ActiveIndex(sec(1)); got != -1 {
		t.Errorf("nil Lyrics ActiveIndex = %d, want -1", got)
	}
	plain := &Lyrics{Lines: []Line{{Text: "x", End: sec(10)}}}
	if got := plain.ActiveIndex(sec(1)); got != -1 {
		t.Errorf("unsynced ActiveIndex = %d, want -1", got)
	}
}

func TestFromAPI(t *testing.T) {
	lines := FromAPI([]api.Subtitle{
		{StartTime: 4, EndTime: 6, Text: "later", Language: "hi"},
		{StartTime: 1.5, EndTime: 3.25, Text: "first", Language: "hi"},
		{StartTime: 7, EndTime: 6, Text: "bad"},
	})

	if len(lines) != 2 {
		t.Fatalf("len = %d, want 2", len(lines))
	}
	if lines[0].Text != "first" || lines[0].Start != 1500*time.Millisecond || lines[0].End != 3250*time.Millisecond {
		t.Errorf("lines[0] = %+v", lines[0])
	}
	if lines[1].Language != "hi" {
		t.Errorf("Language = %q, want hi", lines[1].Language)
	}
}
