package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/api"
	"github.com/sangeetx/sangeetx/internal/player"
	"github.com/sangeetx/sangeetx/internal/playlist"
	"github.com/sangeetx/sangeetx/internal/settings"
	"github.com/sangeetx/sangeetx/internal/unlock"
)

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

const defaultTimeout = 10 * time.Second

type serviceImpl struct {
	mu sync.Mutex

	ctrl  *player.Controller
	queue *playlist.Queue
	gate  *unlock.Gate
	likes LikeStore
	plays PlayRecorder
	store settings.Store

	timeout time.Duration

	state    State
	repeat   playlist.RepeatMode
	song     *api.Song // copy of the loaded song
	index    int
	gen      uint64 // controller generation of the loaded song
	loaded   bool
	ended    bool
	wantPlay bool
	recorded bool
	position time.Duration
	duration time.Duration
	volume   float64
	muted    bool
	lastErr  error

	// lastSettle is closed once every earlier completion has run.
	lastSettle chan struct{}

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback session driving ctrl. The queue is owned by the
// session from then on.
func New(ctrl *player.Controller, q *playlist.Queue, opts Options) Service {
	if opts.Gate == nil {
		opts.Gate = unlock.NewGate(unlock.Desktop, ctrl)
	}
	if opts.Likes == nil {
		opts.Likes = nopStore{}
	}
	if opts.Plays == nil {
		opts.Plays = nopStore{}
	}
	if opts.Settings == nil {
		opts.Settings = settings.NewMemory()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	settled := make(chan struct{})
	close(settled)

	s := &serviceImpl{
		ctrl:       ctrl,
		queue:      q,
		gate:       opts.Gate,
		likes:      opts.Likes,
		plays:      opts.Plays,
		store:      opts.Settings,
		timeout:    opts.Timeout,
		index:      -1,
		volume:     max(0, min(settings.Float(opts.Settings, settings.KeyVolume, 1), 1)),
		muted:      settings.Bool(opts.Settings, settings.KeyMuted, false),
		lastSettle: settled,
		done:       make(chan struct{}),
	}
	ctrl.SetVolume(s.volume)
	ctrl.SetMuted(s.muted)

	go s.watchPlayer()
	return s
}

func (s *serviceImpl) watchPlayer() {
	events := s.ctrl.Events()
	for {
		select {
		case <-s.done:
			return
		case ev := <-events:
			s.handlePlayerEvent(ev)
		}
	}
}

func (s *serviceImpl) handlePlayerEvent(ev player.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.loaded || ev.Gen != s.gen {
		// Belongs to a replaced element.
		return
	}

	switch ev.Kind {
	case player.EventTimeUpdate:
		if ev.Duration > 0 {
			s.duration = ev.Duration
		}
		s.position = min(ev.Position, s.duration)
		s.emitPosition()
	case player.EventEnded:
		s.position = s.duration
		s.emitPosition()
		s.handleEndedLocked()
	case player.EventError:
		s.failLocked("play", ev.Err)
	}
}

// handleEndedLocked applies the repeat rules after the current song ends.
func (s *serviceImpl) handleEndedLocked() {
	s.ended = true
	next := s.queue.AdvanceOnEnded(s.repeat)
	if next == nil {
		log.WithField("song", s.songID()).Debug("end of queue")
		s.wantPlay = false
		s.setStateLocked(StateStopped)
		return
	}
	play := s.repeat == playlist.RepeatOne || settings.Bool(s.store, settings.KeyAutoplay, true)
	s.startLocked(play)
}

// after runs fn with the result of p once p and every earlier completion
// have settled. fn runs with s.mu held.
func (s *serviceImpl) after(p *player.Pending, fn func(err error)) {
	prev := s.lastSettle
	next := make(chan struct{})
	s.lastSettle = next
	go func() {
		defer close(next)
		select {
		case <-prev:
		case <-s.done:
			return
		}
		select {
		case <-p.Done():
		case <-s.done:
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		fn(p.Err())
	}()
}

// startLocked loads the queue's current song and, if play is set, asks for
// playback.
func (s *serviceImpl) startLocked(play bool) {
	cur := s.queue.Current()
	if cur == nil {
		return
	}
	song := *cur
	prev, prevIndex := s.song, s.index
	s.song = &song
	s.index = s.queue.CurrentIndex()
	s.position = 0
	s.duration = song.Length()
	s.lastErr = nil
	s.ended = false
	s.recorded = false

	if prev == nil || prev.ID != song.ID || prevIndex != s.index {
		s.emitTrack(TrackChange{Previous: prev, Current: s.song, PreviousIndex: prevIndex, Index: s.index})
	}
	s.emitPosition()

	if !song.Playable() {
		s.loaded = false
		s.failLocked("load", &player.LoadError{URL: song.AudioURL, Err: ErrUnplayable})
		return
	}

	p, gen := s.ctrl.Load(song.AudioURL)
	s.gen = gen
	s.loaded = true
	log.WithFields(log.Fields{"song": song.ID, "gen": gen}).Debug("loading song")
	s.after(p, func(err error) {
		if gen != s.gen || err == nil || errors.Is(err, context.Canceled) {
			return
		}
		s.failLocked("load", err)
	})

	if play {
		s.requestPlayLocked()
	} else {
		s.wantPlay = false
		s.setStateLocked(StateStopped)
	}
}

// removeLocked drops queue entry index. Removing the current song loads
// the one that takes its place; removing the last song stops playback.
func (s *serviceImpl) removeLocked(index int) error {
	wasCurrent := index == s.queue.CurrentIndex()
	if !s.queue.RemoveAt(index) {
		return ErrInvalidIndex
	}
	s.emitQueue()

	switch {
	case s.queue.IsEmpty():
		prev, prevIndex := s.song, s.index
		s.wantPlay = false
		if s.loaded {
			s.ctrl.Pause()
		}
		s.song, s.index = nil, -1
		s.loaded = false
		s.lastErr = nil
		s.position, s.duration = 0, 0
		s.emitTrack(TrackChange{Previous: prev, PreviousIndex: prevIndex, Index: -1})
		s.emitPosition()
		s.setStateLocked(StateStopped)
	case wasCurrent:
		s.startLocked(s.wantPlay)
	default:
		s.index = s.queue.CurrentIndex()
	}
	return nil
}

// playLocked resumes the current song, reloading it when it ended or failed.
func (s *serviceImpl) playLocked() {
	if s.queue.Current() == nil {
		return
	}
	if !s.loaded || s.ended || s.lastErr != nil || s.queue.CurrentIndex() != s.index {
		s.startLocked(true)
		return
	}
	s.requestPlayLocked()
}

// requestPlayLocked asks the controller to play unless the unlock gate
// defers it.
func (s *serviceImpl) requestPlayLocked() {
	s.wantPlay = true
	if s.gate.Intercept() {
		log.Debug("play deferred until unlock")
		if s.state == StatePlaying {
			s.setStateLocked(StatePaused)
		}
		s.emitPrompt(true)
		return
	}

	gen := s.gen
	s.after(s.ctrl.Play(), func(err error) {
		if gen != s.gen {
			return
		}
		switch {
		case err == nil:
			// A pause queued behind this play settles next.
			s.setStateLocked(StatePlaying)
			s.recordPlayLocked()
		case errors.Is(err, player.ErrPlaybackBlocked):
			s.gate.Block()
			s.setStateLocked(StatePaused)
			s.emitPrompt(true)
		case errors.Is(err, player.ErrNoSource) && s.lastErr != nil:
			// The load already failed and was reported.
			s.setStateLocked(StateStopped)
		case errors.Is(err, context.Canceled), errors.Is(err, player.ErrClosed):
		default:
			s.failLocked("play", err)
		}
	})
}

func (s *serviceImpl) pauseLocked() {
	s.wantPlay = false
	if !s.loaded {
		return
	}
	gen := s.gen
	s.after(s.ctrl.Pause(), func(error) {
		if gen == s.gen && s.state == StatePlaying {
			s.setStateLocked(StatePaused)
		}
	})
}

func (s *serviceImpl) stopLocked() {
	s.wantPlay = false
	if !s.loaded {
		return
	}
	gen := s.gen
	s.ctrl.Pause()
	s.position = 0
	s.emitPosition()
	s.after(s.ctrl.Seek(0), func(error) {
		if gen == s.gen {
			s.setStateLocked(StateStopped)
		}
	})
}

func (s *serviceImpl) seekLocked(pos time.Duration) {
	if !s.loaded || s.lastErr != nil {
		return
	}
	pos = max(0, min(pos, s.duration))
	s.position = pos
	s.ended = false
	s.emitPosition()
	gen := s.gen
	s.after(s.ctrl.Seek(pos), func(err error) {
		if gen != s.gen || err == nil || errors.Is(err, player.ErrNoSource) {
			return
		}
		s.emitError("seek", err)
	})
}

func (s *serviceImpl) setVolumeLocked(level float64) {
	s.volume = max(0, min(level, 1))
	s.ctrl.SetVolume(s.volume)
	if err := settings.SetFloat(s.store, settings.KeyVolume, s.volume); err != nil {
		log.WithError(err).Warn("save volume")
	}
	s.emitVolume()
}

func (s *serviceImpl) toggleLikeLocked() {
	cur := s.queue.Current()
	if cur == nil {
		return
	}
	id, liked := cur.ID, !cur.IsLiked
	s.queue.SetLiked(id, liked)
	if s.song != nil && s.song.ID == id {
		s.song.IsLiked = liked
	}
	s.emitLike(LikeChange{SongID: id, Liked: liked})

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.likes.SetLiked(ctx, id, liked); err != nil {
			// The flag stays flipped; the error is reported instead.
			log.WithError(err).WithField("song", id).Warn("persist like")
			s.mu.Lock()
			defer s.mu.Unlock()
			if !s.closed {
				s.broadcast(func(sub *Subscription) {
					sub.sendError(ErrorEvent{Operation: "like", SongID: id, Err: err})
				})
			}
		}
	}()
}

func (s *serviceImpl) recordPlayLocked() {
	if s.recorded || s.song == nil {
		return
	}
	s.recorded = true
	id := s.song.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.plays.RecordPlay(ctx, id); err != nil {
			log.WithError(err).WithField("song", id).Debug("record play")
		}
	}()
}

func (s *serviceImpl) failLocked(op string, err error) {
	s.lastErr = err
	s.wantPlay = false
	log.WithError(err).WithFields(log.Fields{"op": op, "song": s.songID()}).Warn("playback error")
	s.setStateLocked(StateStopped)
	s.emitError(op, err)
}

// Dispatch applies a.
func (s *serviceImpl) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	log.WithField("action", a.ActionType()).Trace("dispatch")

	switch a := a.(type) {
	case PlayPause:
		if s.wantPlay {
			s.pauseLocked()
		} else {
			s.playLocked()
		}
	case Play:
		if !s.wantPlay {
			s.playLocked()
		}
	case Pause:
		s.pauseLocked()
	case Stop:
		s.stopLocked()
	case Next:
		if s.queue.Next() != nil {
			s.emitQueue()
			s.startLocked(true)
		}
	case Previous:
		if s.queue.Previous() != nil {
			s.emitQueue()
			s.startLocked(true)
		}
	case ToggleShuffle:
		s.queue.SetShuffle(!s.queue.Shuffle())
		s.emitMode()
		s.emitQueue()
	case CycleRepeat:
		s.repeat = s.repeat.Next()
		s.emitMode()
	case ToggleLike:
		s.toggleLikeLocked()
	case Retry:
		if s.lastErr != nil {
			s.startLocked(true)
		}
	case SeekTo:
		s.seekLocked(a.Position)
	case SeekRatio:
		s.seekLocked(time.Duration(float64(s.duration) * Ratio(a.X, a.Width)))
	case SetVolume:
		s.setVolumeLocked(a.Level)
	case VolumeRatio:
		s.setVolumeLocked(Ratio(a.X, a.Width))
	case ToggleMute:
		s.muted = !s.muted
		s.ctrl.SetMuted(s.muted)
		if err := settings.SetBool(s.store, settings.KeyMuted, s.muted); err != nil {
			log.WithError(err).Warn("save mute")
		}
		s.emitVolume()
	case SelectSong:
		if len(a.Songs) == 0 {
			return ErrEmptyQueue
		}
		s.queue.Replace(a.Songs, a.Index)
		s.emitQueue()
		s.startLocked(true)
	case JumpTo:
		if s.queue.JumpTo(a.Index) == nil {
			return ErrInvalidIndex
		}
		s.emitQueue()
		s.startLocked(true)
	case Enqueue:
		wasEmpty := s.queue.IsEmpty()
		s.queue.Add(a.Songs...)
		s.emitQueue()
		if wasEmpty && !s.queue.IsEmpty() {
			s.startLocked(settings.Bool(s.store, settings.KeyAutoplay, true))
		}
	case Remove:
		return s.removeLocked(a.Index)
	case ConfirmUnlock:
		deferred, prime := s.gate.Confirm()
		s.emitPrompt(false)
		if prime != nil {
			s.after(prime, func(err error) {
				if err != nil {
					s.emitError("unlock", err)
				}
			})
		}
		if deferred && s.wantPlay {
			s.playLocked()
		}
	case DismissUnlock:
		if s.gate.Dismiss() {
			s.wantPlay = false
			s.emitPrompt(false)
		}
	case Gesture:
		if prime := s.gate.Gesture(); prime != nil {
			s.after(prime, func(err error) {
				if err != nil {
					log.WithError(err).Debug("gesture prime")
				}
			})
		}
	default:
		return ErrUnknownAction
	}
	return nil
}

// Restore loads a saved queue without starting playback.
func (s *serviceImpl) Restore(songs []api.Song, index int, repeat playlist.RepeatMode, shuffle bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.Replace(songs, index)
	s.queue.SetShuffle(shuffle)
	s.repeat = repeat
	s.emitQueue()
	s.emitMode()
	if cur := s.queue.Current(); cur != nil {
		song := *cur
		s.song = &song
		s.index = s.queue.CurrentIndex()
		s.duration = song.Length()
		s.emitTrack(TrackChange{Current: s.song, PreviousIndex: -1, Index: s.index})
	}
}

// Snapshot returns a copy of the session state.
func (s *serviceImpl) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var song *api.Song
	if s.song != nil {
		c := *s.song
		song = &c
	}
	return Snapshot{
		Song:                 song,
		State:                s.state,
		Volume:               s.volume,
		Muted:                s.muted,
		Position:             s.position,
		Duration:             s.duration,
		Shuffle:              s.queue.Shuffle(),
		Repeat:               s.repeat,
		Index:                s.queue.CurrentIndex(),
		Length:               s.queue.Len(),
		ShowMobilePlayPrompt: s.gate.Prompt(),
		Err:                  s.lastErr,
	}
}

// Queue returns a copy of all songs in the queue.
func (s *serviceImpl) Queue() []api.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Songs()
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close shuts down the service. The controller is left to its owner.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *serviceImpl) songID() string {
	if s.song == nil {
		return ""
	}
	return s.song.ID
}

func (s *serviceImpl) broadcast(fn func(sub *Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		fn(sub)
	}
}

func (s *serviceImpl) setStateLocked(st State) {
	if s.state == st {
		return
	}
	prev := s.state
	s.state = st
	s.broadcast(func(sub *Subscription) { sub.sendState(StateChange{Previous: prev, Current: st}) })
}

func (s *serviceImpl) emitTrack(e TrackChange) {
	s.broadcast(func(sub *Subscription) { sub.sendTrack(e) })
}

func (s *serviceImpl) emitPosition() {
	e := PositionChange{Position: s.position, Duration: s.duration}
	s.broadcast(func(sub *Subscription) { sub.sendPosition(e) })
}

func (s *serviceImpl) emitQueue() {
	e := QueueChange{Songs: s.queue.Songs(), Index: s.queue.CurrentIndex()}
	s.broadcast(func(sub *Subscription) { sub.sendQueue(e) })
}

func (s *serviceImpl) emitMode() {
	e := ModeChange{Repeat: s.repeat, Shuffle: s.queue.Shuffle()}
	s.broadcast(func(sub *Subscription) { sub.sendMode(e) })
}

func (s *serviceImpl) emitLike(e LikeChange) {
	s.broadcast(func(sub *Subscription) { sub.sendLike(e) })
}

func (s *serviceImpl) emitPrompt(visible bool) {
	s.broadcast(func(sub *Subscription) { sub.sendPrompt(PromptChange{Visible: visible}) })
}

func (s *serviceImpl) emitVolume() {
	e := VolumeChange{Volume: s.volume, Muted: s.muted}
	s.broadcast(func(sub *Subscription) { sub.sendVolume(e) })
}

func (s *serviceImpl) emitError(op string, err error) {
	e := ErrorEvent{Operation: op, SongID: s.songID(), Err: err}
	s.broadcast(func(sub *Subscription) { sub.sendError(e) })
}
