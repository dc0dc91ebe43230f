package subtitle

import (
	"strings"
	"testing"
	"time"
)

func TestParseLRC_Basic(t *testing.T) {
	lrc := `[ar:Test Artist]
[ti:Test Title]
[00:12.34]First line
[00:15.67]Second line
[00:20.00]Third line`

	lines, err := ParseLRC(strings.NewReader(lrc), 30*time.Second)
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}

	expected := []struct {
		start, end time.Duration
		text       string
	}{
		{12*time.Second + 340*time.Millisecond, 15*time.Second + 670*time.Millisecond, "First line"},
		{15*time.Second + 670*time.Millisecond, 20 * time.Second, "Second line"},
		{20 * time.Second, 30 * time.Second, "Third line"},
	}
	for i, exp := range expected {
		if lines[i].Start != exp.start || lines[i].End != exp.end {
			t.Errorf("lines[%d] = [%v, %v], want [%v, %v]", i, lines[i].Start, lines[i].End, exp.start, exp.end)
		}
		if lines[i].Text != exp.text {
			t.Errorf("lines[%d].Text = %q, want %q", i, lines[i].Text, exp.text)
		}
	}
}

func TestParseLRC_MultipleTimestamps(t *testing.T) {
	lrc := `[00:30.00][01:30.00]Chorus line
[01:00.00]Verse`

	lines, err := ParseLRC(strings.NewReader(lrc), 2*time.Minute)
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}
	want := []string{"Chorus line", "Verse", "Chorus line"}
	if len(lines) != len(want) {
		t.Fatalf("len(lines) = %d, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("lines[%d].Text = %q, want %q", i, lines[i].Text, w)
		}
	}
}

func TestParseLRC_VariousFormats(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"[00:12.34]x", 12*time.Second + 340*time.Millisecond},
		{"[00:12:34]x", 12*time.Second + 340*time.Millisecond},
		{"[00:12.345]x", 12*time.Second + 345*time.Millisecond},
		{"[00:12.5]x", 12*time.Second + 500*time.Millisecond},
		{"[00:12]x", 12 * time.Second},
		{"[01:02.00]x", time.Minute + 2*time.Second},
	}
	for _, tt := range tests {
		lines, err := ParseLRC(strings.NewReader(tt.input), 0)
		if err != nil {
			t.Fatalf("ParseLRC(%q) error: %v", tt.input, err)
		}
		if len(lines) != 1 {
			t.Fatalf("ParseLRC(%q) len = %d, want 1", tt.input, len(lines))
		}
		if lines[0].Start != tt.want {
			t.Errorf("ParseLRC(%q) start = %v, want %v", tt.input, lines[0].Start, tt.want)
		}
	}
}

func TestParseLRC_InstrumentalGap(t *testing.T) {
	lrc := `[00:01.00]Sing
[00:04.00]
[00:09.00]Again`

	lines, err := ParseLRC(strings.NewReader(lrc), 12*time.Second)
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0].End != 4*time.Second {
		t.Errorf("first line end = %v, want 4s", lines[0].End)
	}
	if got := ActiveIndex(lines, 6*time.Second); got != -1 {
		t.Errorf("ActiveIndex in gap = %d, want -1", got)
	}
}

func TestParseLRC_LastLineWithoutDuration(t *testing.T) {
	lines, err := ParseLRC(strings.NewReader("[00:10.00]Only"), 0)
	if err != nil {
		t.Fatalf("ParseLRC error: %v", err)
	}
	if lines[0].End != 10*time.Second+lastLineFallback {
		t.Errorf("End = %v, want %v", lines[0].End, 10*time.Second+lastLineFallback)
	}
}

func TestParsePlain(t *testing.T) {
	lines := ParsePlain("first\n\n  second  \n")
	if len(lines) != 2 || lines[1].Text != "second" {
		t.Errorf("ParsePlain = %+v", lines)
	}
}
