package playlist

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sangeetx/sangeetx/internal/api"
)

func songs(ids ...string) []api.Song {
	out := make([]api.Song, len(ids))
	for i, id := range ids {
		out[i] = api.Song{ID: id, Title: "Song " + id, Duration: 180, AudioURL: "https://cdn/" + id + ".mp3"}
	}
	return out
}

func testQueue() *Queue {
	return NewQueueWithRand(rand.New(rand.NewPCG(1, 2)))
}

func TestNewQueue(t *testing.T) {
	q := NewQueue()

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
	if q.Current() != nil {
		t.Error("Current() should be nil for empty queue")
	}
	if q.Next() != nil || q.Previous() != nil {
		t.Error("Next/Previous should be nil for empty queue")
	}
}

func TestQueue_Replace(t *testing.T) {
	q := testQueue()
	q.Replace(songs("x", "y"), 1)

	song := q.Replace(songs("a", "b", "c"), 2)

	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
	}
	if song == nil || song.ID != "c" {
		t.Errorf("returned song = %v, want c", song)
	}
}

func TestQueue_Replace_OutOfRangeStart(t *testing.T) {
	q := testQueue()
	song := q.Replace(songs("a", "b"), 7)
	if song == nil || song.ID != "a" {
		t.Errorf("returned song = %v, want a", song)
	}
	if q.Replace(nil, 0) != nil {
		t.Error("Replace with no songs should return nil")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("CurrentIndex() = %d, want -1", q.CurrentIndex())
	}
}

func TestQueue_NextPreviousWrap(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a", "b", "c"), 2)

	if s := q.Next(); s == nil || s.ID != "a" {
		t.Errorf("Next() from last = %v, want a", s)
	}
	if s := q.Previous(); s == nil || s.ID != "c" {
		t.Errorf("Previous() from first = %v, want c", s)
	}
}

func TestQueue_NextPrevious_SingleSongIsNoop(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a"), 0)

	if q.Next() != nil {
		t.Error("Next() should be a no-op for one song")
	}
	if q.Previous() != nil {
		t.Error("Previous() should be a no-op for one song")
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}
}

func TestQueue_RepeatAllReturnsToStart(t *testing.T) {
	for n := 1; n <= 6; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		for start := range n {
			for _, shuffle := range []bool{false, true} {
				q := testQueue()
				q.Replace(songs(ids...), start)
				q.SetShuffle(shuffle)
				for range n {
					q.AdvanceOnEnded(RepeatAll)
				}
				if q.CurrentIndex() != start {
					t.Errorf("n=%d start=%d shuffle=%v: index after n advances = %d", n, start, shuffle, q.CurrentIndex())
				}
			}
		}
	}
}

func TestQueue_NextNTimesReturnsToStart(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a", "b", "c", "d"), 1)
	q.SetShuffle(true)
	start := q.CurrentIndex()
	for range q.Len() {
		q.Next()
	}
	if q.CurrentIndex() != start {
		t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), start)
	}
}

func TestQueue_AdvanceOnEnded(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		mode      RepeatMode
		wantSong  string
		wantIndex int
	}{
		{"none at last stops", 1, RepeatNone, "", 1},
		{"none mid advances", 0, RepeatNone, "b", 1},
		{"one replays", 0, RepeatOne, "a", 0},
		{"one at last replays", 1, RepeatOne, "b", 1},
		{"all wraps", 1, RepeatAll, "a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQueue()
			q.Replace(songs("a", "b"), tt.start)

			got := q.AdvanceOnEnded(tt.mode)

			switch {
			case tt.wantSong == "" && got != nil:
				t.Errorf("AdvanceOnEnded() = %v, want nil", got.ID)
			case tt.wantSong != "" && (got == nil || got.ID != tt.wantSong):
				t.Errorf("AdvanceOnEnded() = %v, want %s", got, tt.wantSong)
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
		})
	}
}

func TestQueue_RepeatAllSingleSongReplays(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a"), 0)
	if s := q.AdvanceOnEnded(RepeatAll); s == nil || s.ID != "a" {
		t.Errorf("AdvanceOnEnded(RepeatAll) = %v, want a", s)
	}
}

func TestQueue_ShuffleKeepsCurrent(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a", "b", "c", "d", "e"), 3)

	q.SetShuffle(true)
	if q.CurrentIndex() != 3 {
		t.Errorf("CurrentIndex() after shuffle = %d, want 3", q.CurrentIndex())
	}
	order := slices.Clone(q.order)
	if order[0] != 3 {
		t.Errorf("order[0] = %d, want 3", order[0])
	}
	sorted := slices.Clone(order)
	slices.Sort(sorted)
	if !slices.Equal(sorted, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v is not a permutation", order)
	}

	q.Next()
	q.Next()
	current := q.CurrentIndex()
	q.SetShuffle(false)
	if q.CurrentIndex() != current {
		t.Errorf("CurrentIndex() after unshuffle = %d, want %d", q.CurrentIndex(), current)
	}
	if !slices.Equal(q.order, []int{0, 1, 2, 3, 4}) {
		t.Errorf("order = %v, want list order", q.order)
	}
	if s := q.Next(); s == nil || q.CurrentIndex() != (current+1)%5 {
		t.Errorf("Next() after unshuffle went to %d", q.CurrentIndex())
	}
}

func TestQueue_ShuffleOrderIsStable(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a", "b", "c", "d", "e", "f"), 0)
	q.SetShuffle(true)
	want := slices.Clone(q.order)

	var visited []int
	for range q.Len() {
		q.Next()
		visited = append(visited, q.CurrentIndex())
	}
	wantVisited := append(slices.Clone(want[1:]), want[0])
	if !slices.Equal(visited, wantVisited) {
		t.Errorf("visited %v, want %v", visited, wantVisited)
	}
}

func TestQueue_JumpTo(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a", "b", "c"), 0)
	q.SetShuffle(true)

	if s := q.JumpTo(2); s == nil || s.ID != "c" {
		t.Errorf("JumpTo(2) = %v, want c", s)
	}
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d, want 2", q.CurrentIndex())
	}
	if q.JumpTo(5) != nil || q.JumpTo(-1) != nil {
		t.Error("JumpTo out of range should return nil")
	}
	if q.CurrentIndex() != 2 {
		t.Errorf("CurrentIndex() = %d after invalid jump, want 2", q.CurrentIndex())
	}
}

func TestQueue_Add(t *testing.T) {
	q := testQueue()
	q.Add(songs("a", "b")...)
	if q.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, want 0", q.CurrentIndex())
	}

	q.JumpTo(1)
	q.Add(songs("c")...)
	if q.Len() != 3 || q.CurrentIndex() != 1 {
		t.Errorf("Len()=%d CurrentIndex()=%d, want 3 and 1", q.Len(), q.CurrentIndex())
	}
}

func TestQueue_RemoveAt(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		remove    int
		wantIndex int
		wantID    string
	}{
		{"before current", 2, 0, 1, "c"},
		{"after current", 0, 2, 0, "a"},
		{"current moves to next", 1, 1, 1, "c"},
		{"current last clamps", 2, 2, 1, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := testQueue()
			q.Replace(songs("a", "b", "c"), tt.current)

			if !q.RemoveAt(tt.remove) {
				t.Fatal("RemoveAt() = false")
			}
			if q.CurrentIndex() != tt.wantIndex {
				t.Errorf("CurrentIndex() = %d, want %d", q.CurrentIndex(), tt.wantIndex)
			}
			if s := q.Current(); s == nil || s.ID != tt.wantID {
				t.Errorf("Current() = %v, want %s", s, tt.wantID)
			}
		})
	}
}

func TestQueue_RemoveAt_Last(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a"), 0)
	q.RemoveAt(0)
	if !q.IsEmpty() || q.CurrentIndex() != -1 {
		t.Errorf("queue not empty after removing only song")
	}
	if q.RemoveAt(0) {
		t.Error("RemoveAt on empty queue should fail")
	}
}

func TestQueue_SetLiked(t *testing.T) {
	q := testQueue()
	q.Replace(songs("a", "b", "a"), 0)

	if !q.SetLiked("a", true) {
		t.Fatal("SetLiked() = false")
	}
	for _, s := range q.Songs() {
		if s.ID == "a" && !s.IsLiked {
			t.Error("every entry for a should be liked")
		}
		if s.ID == "b" && s.IsLiked {
			t.Error("b should not be liked")
		}
	}
	if q.SetLiked("zzz", true) {
		t.Error("SetLiked on unknown id should return false")
	}
}

func TestRepeatMode_Cycle(t *testing.T) {
	m := RepeatNone
	want := []RepeatMode{RepeatOne, RepeatAll, RepeatNone}
	for _, w := range want {
		m = m.Next()
		if m != w {
			t.Errorf("Next() = %v, want %v", m, w)
		}
	}
	for _, m := range []RepeatMode{RepeatNone, RepeatOne, RepeatAll} {
		if got := ParseRepeatMode(m.String()); got != m {
			t.Errorf("ParseRepeatMode(%q) = %v", m.String(), got)
		}
	}
}
