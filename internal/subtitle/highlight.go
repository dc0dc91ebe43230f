package subtitle

import (
	"strings"
	"time"
)

// WordState is the karaoke state of a word within the active line.
type WordState int

const (
	Pending WordState = iota
	Singing
	Sung
)

func (s WordState) String() string {
	switch s {
	case Sung:
		return "sung"
	case Singing:
		return "singing"
	default:
		return "pending"
	}
}

// Word is one space-separated word of a line with its state.
type Word struct {
	Text  string
	State WordState
}

// Progress returns how far t is through line, clamped to [0, 1].
func Progress(line Line, t time.Duration) float64 {
	p := float64(t-line.Start) / float64(line.Length())
	return max(0, min(p, 1))
}

// ActiveWord returns floor(Progress*wordCount) capped at wordCount-1, or -1
// for a line without words.
func ActiveWord(line Line, t time.Duration) int {
	n := len(strings.Fields(line.Text))
	if n == 0 {
		return -1
	}
	return min(int(Progress(line, t)*float64(n)), n-1)
}

// Highlight splits line into words and marks each as sung, singing or
// pending at time t.
func Highlight(line Line, t time.Duration) []Word {
	fields := strings.Fields(line.Text)
	if len(fields) == 0 {
		return nil
	}
	active := min(int(Progress(line, t)*float64(len(fields))), len(fields)-1)
	words := make([]Word, len(fields))
	for i, f := range fields {
		state := Pending
		switch {
		case i < active:
			state = Sung
		case i == active:
			state = Singing
		}
		words[i] = Word{Text: f, State: state}
	}
	return words
}
