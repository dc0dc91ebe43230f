package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	// TimeUpdateInterval is how often a playing element reports its position.
	TimeUpdateInterval = 250 * time.Millisecond

	primerLength = 100 * time.Millisecond
)

// Output is the process-wide audio device shared by every StreamElement.
// Activation, like a browser's per-document autoplay unlock, survives
// element replacement.
type Output struct {
	// RequireActivation makes Play fail with ErrPlaybackBlocked until an
	// element has been primed once.
	RequireActivation bool

	// SampleRate is the device rate; sources are resampled to it.
	SampleRate beep.SampleRate

	HTTPClient *http.Client

	// MaxBytes caps the size of a fetched audio file.
	MaxBytes int64

	activated atomic.Bool
	initOnce  sync.Once
	initErr   error
}

// NewOutput creates an output with default settings.
func NewOutput(requireActivation bool) *Output {
	return &Output{
		RequireActivation: requireActivation,
		SampleRate:        beep.SampleRate(44100),
		HTTPClient:        &http.Client{Timeout: 60 * time.Second},
		MaxBytes:          200 << 20,
	}
}

// Activated reports whether playback has been unlocked.
func (o *Output) Activated() bool {
	return !o.RequireActivation || o.activated.Load()
}

func (o *Output) init() error {
	o.initOnce.Do(func() {
		o.initErr = speaker.Init(o.SampleRate, o.SampleRate.N(time.Second/10))
	})
	return o.initErr
}

// NewElement implements Factory.
func (o *Output) NewElement() Element {
	return &StreamElement{
		out:    o,
		events: make(chan Event, eventBufferSize),
		level:  1,
	}
}

// StreamElement plays a remote audio file through the speaker.
type StreamElement struct {
	out *Output

	mu       sync.Mutex
	url      string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	muted    bool
	started  bool
	stopTick chan struct{}

	ended  atomic.Bool
	closed atomic.Bool
	events chan Event
}

var _ Element = (*StreamElement)(nil)

// Load fetches and decodes the audio at url.
func (e *StreamElement) Load(ctx context.Context, url string) error {
	streamer, format, err := fetchAndDecode(ctx, e.out.HTTPClient, url, e.out.MaxBytes)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &LoadError{URL: url, Err: err}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.url = url
	e.streamer = streamer
	e.format = format

	var playStreamer beep.Streamer = streamer
	if format.SampleRate != e.out.SampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, e.out.SampleRate, streamer)
	}
	e.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: true}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2, Volume: levelToVolume(e.level), Silent: e.muted}
	return nil
}

// Play starts or resumes playback.
func (e *StreamElement) Play() error {
	if !e.out.Activated() {
		return ErrPlaybackBlocked
	}
	if err := e.out.init(); err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return ErrNoSource
	}

	if e.ended.Load() {
		// Replay after the end: rewind and queue the stream again.
		speaker.Lock()
		err := e.streamer.Seek(0)
		speaker.Unlock()
		if err != nil {
			return err
		}
		e.ended.Store(false)
		e.started = false
		e.stopTicker()
	}

	if !e.started {
		e.ctrl.Paused = false
		speaker.Play(beep.Seq(e.volume, beep.Callback(e.onEnded)))
		e.started = true
	} else {
		speaker.Lock()
		e.ctrl.Paused = false
		speaker.Unlock()
	}
	e.startTicker()
	return nil
}

// onEnded runs on the speaker goroutine with the speaker lock held; it must
// not touch e.mu or the speaker.
func (e *StreamElement) onEnded() {
	if e.closed.Load() {
		return
	}
	e.ended.Store(true)
	select {
	case e.events <- Event{Kind: EventEnded}:
	default:
	}
}

// Pause pauses playback.
func (e *StreamElement) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	e.stopTicker()
}

// Seek moves the read position to pos.
func (e *StreamElement) Seek(pos time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return ErrNoSource
	}
	n := e.format.SampleRate.N(pos)
	n = max(0, min(n, e.streamer.Len()-1))

	speaker.Lock()
	err := e.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		return err
	}
	if e.ended.Swap(false) {
		// The drained stream left the speaker; the next Play queues it again.
		e.started = false
		e.stopTicker()
	}
	return nil
}

// SetVolume sets the output level (0.0 to 1.0).
func (e *StreamElement) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = level
	if e.volume != nil {
		speaker.Lock()
		e.volume.Volume = levelToVolume(level)
		speaker.Unlock()
	}
}

// SetMuted silences the output without losing the level.
func (e *StreamElement) SetMuted(muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = muted
	if e.volume != nil {
		speaker.Lock()
		e.volume.Silent = muted
		speaker.Unlock()
	}
}

// Position returns the current playback position.
func (e *StreamElement) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.positionLocked()
}

func (e *StreamElement) positionLocked() time.Duration {
	if e.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return e.format.SampleRate.D(e.streamer.Position())
}

// Duration returns the length of the loaded source.
func (e *StreamElement) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

// Prime plays a short silent clip at zero volume and marks the output as
// activated.
func (e *StreamElement) Prime() error {
	if err := e.out.init(); err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	clip := generators.Silence(e.out.SampleRate.N(primerLength))
	speaker.Play(&effects.Volume{Streamer: clip, Base: 2, Silent: true})
	e.out.activated.Store(true)
	return nil
}

// Events returns the element notifications.
func (e *StreamElement) Events() <-chan Event {
	return e.events
}

// Close stops playback and releases the decoded stream.
func (e *StreamElement) Close() error {
	if e.closed.Swap(true) {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTicker()
	if e.started {
		speaker.Clear()
	}
	var err error
	if e.streamer != nil {
		err = e.streamer.Close()
		e.streamer = nil
	}
	e.ctrl = nil
	e.volume = nil
	return err
}

// startTicker begins periodic time updates. Caller holds e.mu.
func (e *StreamElement) startTicker() {
	if e.stopTick != nil {
		return
	}
	stop := make(chan struct{})
	e.stopTick = stop
	go e.tick(stop)
}

// stopTicker ends periodic time updates. Caller holds e.mu.
func (e *StreamElement) stopTicker() {
	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
}

func (e *StreamElement) tick(stop <-chan struct{}) {
	ticker := time.NewTicker(TimeUpdateInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if e.ended.Load() || e.closed.Load() {
				return
			}
			pos, dur := e.Position(), e.Duration()
			select {
			case e.events <- Event{Kind: EventTimeUpdate, Position: pos, Duration: dur}:
			default:
			}
		}
	}
}
