package playlist

import (
	"math/rand/v2"

	"github.com/sangeetx/sangeetx/internal/api"
)

// Queue wraps a Playlist with a play order and a current position.
//
// The play order is a permutation of playlist indices. With shuffle off it
// is the identity; with shuffle on the current song is moved first and the
// rest are permuted once, so next and previous walk a stable order until
// shuffle is toggled again.
type Queue struct {
	playlist *Playlist
	order    []int
	pos      int // position in order; -1 if empty
	shuffle  bool
	rng      *rand.Rand
}

// NewQueue creates a new empty queue.
func NewQueue() *Queue {
	return NewQueueWithRand(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))) //nolint:gosec // shuffle order, not security
}

// NewQueueWithRand creates an empty queue that shuffles with r.
func NewQueueWithRand(r *rand.Rand) *Queue {
	return &Queue{
		playlist: NewPlaylist(),
		pos:      -1,
		rng:      r,
	}
}

// Current returns the current song, or nil if the queue is empty.
func (q *Queue) Current() *api.Song {
	if q.pos < 0 || q.pos >= len(q.order) {
		return nil
	}
	return q.playlist.Song(q.order[q.pos])
}

// CurrentIndex returns the playlist index of the current song (-1 if none).
func (q *Queue) CurrentIndex() int {
	if q.pos < 0 || q.pos >= len(q.order) {
		return -1
	}
	return q.order[q.pos]
}

// Position returns the position of the current song in the play order.
func (q *Queue) Position() int {
	return q.pos
}

// Next advances to the next song in play order, wrapping at the end.
// Returns nil and leaves the queue untouched when it holds one song or less.
func (q *Queue) Next() *api.Song {
	n := len(q.order)
	if n <= 1 {
		return nil
	}
	q.pos = (q.pos + 1) % n
	return q.Current()
}

// Previous steps back in play order, wrapping at the start.
// Returns nil and leaves the queue untouched when it holds one song or less.
func (q *Queue) Previous() *api.Song {
	n := len(q.order)
	if n <= 1 {
		return nil
	}
	q.pos = (q.pos - 1 + n) % n
	return q.Current()
}

// HasNext reports whether Next would move without wrapping.
func (q *Queue) HasNext() bool {
	return q.pos >= 0 && q.pos < len(q.order)-1
}

// AdvanceOnEnded applies the repeat rules after the current song ends. It
// returns the song to play from the start, or nil when playback stops. With
// RepeatNone the position is left on the last song.
func (q *Queue) AdvanceOnEnded(mode RepeatMode) *api.Song {
	if q.IsEmpty() {
		return nil
	}
	switch mode {
	case RepeatOne:
		return q.Current()
	case RepeatAll:
		if len(q.order) == 1 {
			return q.Current()
		}
		return q.Next()
	default:
		if !q.HasNext() {
			return nil
		}
		return q.Next()
	}
}

// JumpTo makes the song at playlist index the current one.
// Returns the song, or nil if index is invalid.
func (q *Queue) JumpTo(index int) *api.Song {
	if index < 0 || index >= q.playlist.Len() {
		return nil
	}
	for pos, i := range q.order {
		if i == index {
			q.pos = pos
			break
		}
	}
	return q.Current()
}

// Replace clears the queue, adds songs and makes start the current index.
// An out of range start selects the first song. Returns the current song.
func (q *Queue) Replace(songs []api.Song, start int) *api.Song {
	q.playlist.Clear()
	q.order = q.order[:0]
	q.pos = -1
	if len(songs) == 0 {
		return nil
	}
	if start < 0 || start >= len(songs) {
		start = 0
	}
	q.playlist.Add(songs...)
	q.rebuildOrder(start)
	return q.Current()
}

// Add appends songs without changing the current song. In shuffle mode they
// join the end of the play order in random order.
func (q *Queue) Add(songs ...api.Song) {
	if len(songs) == 0 {
		return
	}
	first := q.playlist.Len()
	q.playlist.Add(songs...)
	added := make([]int, len(songs))
	for i := range added {
		added[i] = first + i
	}
	if q.shuffle {
		q.rng.Shuffle(len(added), func(i, j int) { added[i], added[j] = added[j], added[i] })
	}
	q.order = append(q.order, added...)
	if q.pos < 0 {
		q.pos = 0
	}
}

// RemoveAt removes the song at playlist index. When the current song is
// removed, the song after it in play order becomes current.
func (q *Queue) RemoveAt(index int) bool {
	if !q.playlist.Remove(index) {
		return false
	}
	removedPos := -1
	order := q.order[:0]
	for pos, i := range q.order {
		switch {
		case i == index:
			removedPos = pos
			continue
		case i > index:
			i--
		}
		order = append(order, i)
	}
	q.order = order

	switch {
	case len(q.order) == 0:
		q.pos = -1
	case removedPos < q.pos:
		q.pos--
	case q.pos >= len(q.order):
		q.pos = len(q.order) - 1
	}
	return true
}

// Clear removes all songs.
func (q *Queue) Clear() {
	q.playlist.Clear()
	q.order = q.order[:0]
	q.pos = -1
}

// Shuffle reports whether shuffle is on.
func (q *Queue) Shuffle() bool {
	return q.shuffle
}

// SetShuffle turns shuffle on or off, keeping the current song current.
func (q *Queue) SetShuffle(on bool) {
	if q.shuffle == on {
		return
	}
	q.shuffle = on
	if q.IsEmpty() {
		return
	}
	q.rebuildOrder(q.CurrentIndex())
}

// rebuildOrder recomputes the play order around playlist index current.
func (q *Queue) rebuildOrder(current int) {
	n := q.playlist.Len()
	q.order = q.order[:0]
	if !q.shuffle {
		for i := range n {
			q.order = append(q.order, i)
		}
		q.pos = current
		return
	}

	rest := make([]int, 0, n-1)
	for i := range n {
		if i != current {
			rest = append(rest, i)
		}
	}
	q.rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
	q.order = append(q.order, current)
	q.order = append(q.order, rest...)
	q.pos = 0
}

// SetLiked updates the liked flag of every entry for songID.
func (q *Queue) SetLiked(songID string, liked bool) bool {
	return q.playlist.SetLiked(songID, liked)
}

// Songs returns all songs in list order.
func (q *Queue) Songs() []api.Song {
	return q.playlist.Songs()
}

// Len returns the number of songs in the queue.
func (q *Queue) Len() int {
	return q.playlist.Len()
}

// IsEmpty returns true if the queue has no songs.
func (q *Queue) IsEmpty() bool {
	return q.playlist.Len() == 0
}
