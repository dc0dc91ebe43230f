package player

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// SeekTolerance is the distance under which a seek request is ignored, so
// that seeks echoed back from time updates do not feed back into playback.
const SeekTolerance = time.Second

const (
	opQueueSize     = 32
	eventBufferSize = 16
)

// ErrClosed is returned by operations issued after Close.
var ErrClosed = errors.New("controller closed")

// Controller owns exactly one Element at a time and applies every
// operation on it from a single goroutine, in submission order. A Pause
// submitted while a Play is pending therefore only runs once the Play has
// settled.
type Controller struct {
	newElement Factory

	ops    chan op
	events chan Event
	done   chan struct{}
	closed atomic.Bool

	// Loop-owned.
	el       Element
	elEvents <-chan Event
	elGen    uint64
	volume   float64
	muted    bool

	// Snapshot fields readable from any goroutine.
	gen      atomic.Uint64
	state    atomic.Int32
	position atomic.Int64
	duration atomic.Int64

	loadMu     sync.Mutex
	cancelLoad context.CancelFunc
}

// NewController creates a controller and starts its loop.
func NewController(factory Factory) *Controller {
	c := &Controller{
		newElement: factory,
		ops:        make(chan op, opQueueSize),
		events:     make(chan Event, eventBufferSize),
		done:       make(chan struct{}),
		volume:     1,
	}
	go c.loop()
	return c
}

func (c *Controller) loop() {
	for {
		select {
		case <-c.done:
			c.teardown()
			return
		case o := <-c.ops:
			o.p.settle(o.run())
		case ev, ok := <-c.elEvents:
			if !ok {
				c.elEvents = nil
				continue
			}
			c.handleElementEvent(ev)
		}
	}
}

func (c *Controller) handleElementEvent(ev Event) {
	ev.Gen = c.elGen
	switch ev.Kind {
	case EventTimeUpdate:
		c.position.Store(int64(ev.Position))
		if ev.Duration > 0 {
			c.duration.Store(int64(ev.Duration))
		}
	case EventEnded:
		c.position.Store(c.duration.Load())
		ev.Position = time.Duration(c.duration.Load())
		ev.Duration = time.Duration(c.duration.Load())
		c.setState(Loaded)
	case EventError:
		c.setState(Stopped)
	}
	c.emit(ev)
}

// emit forwards an event without blocking the loop; a slow consumer loses
// time updates rather than stalling playback.
func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
		if ev.Kind != EventTimeUpdate {
			log.WithField("event", ev.Kind).Warn("player event dropped, consumer too slow")
		}
	}
}

func (c *Controller) teardown() {
	for drained := false; !drained; {
		select {
		case o := <-c.ops:
			o.p.settle(ErrClosed)
		default:
			drained = true
		}
	}
	if c.el != nil {
		if err := c.el.Close(); err != nil {
			log.Debugf("close element: %v", err)
		}
		c.el = nil
		c.elEvents = nil
	}
	c.setState(Stopped)
}

type op struct {
	run func() error
	p   *Pending
}

// submit queues fn on the loop and returns a Pending settled with its result.
func (c *Controller) submit(fn func() error) *Pending {
	if c.closed.Load() {
		return settled(ErrClosed)
	}
	p := newPending()
	select {
	case c.ops <- op{run: fn, p: p}:
	case <-c.done:
		p.settle(ErrClosed)
	}
	return p
}

func (c *Controller) setState(s State) {
	c.state.Store(int32(s))
}

// Events returns the stream of element notifications. Each event carries
// the generation of the load that produced it.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Generation returns the number of loads issued so far. Events whose Gen
// differs belong to a replaced element.
func (c *Controller) Generation() uint64 {
	return c.gen.Load()
}

// State returns the element state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Position returns the last known playback position.
func (c *Controller) Position() time.Duration {
	return time.Duration(c.position.Load())
}

// Duration returns the duration of the loaded source.
func (c *Controller) Duration() time.Duration {
	return time.Duration(c.duration.Load())
}

// Load replaces the current element with a new one reading url. Any load
// still in flight is cancelled. The previous element is closed before the
// new one is attached, so none of its events reach subscribers afterwards.
func (c *Controller) Load(url string) (*Pending, uint64) {
	ctx, cancel := context.WithCancel(context.Background())
	c.loadMu.Lock()
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	c.cancelLoad = cancel
	c.loadMu.Unlock()

	gen := c.gen.Add(1)
	return c.submit(func() error {
		defer cancel()
		if c.el != nil {
			if err := c.el.Close(); err != nil {
				log.Debugf("close element: %v", err)
			}
			c.el = nil
			c.elEvents = nil
		}
		c.setState(Stopped)
		c.position.Store(0)
		c.duration.Store(0)

		// A newer load superseded this one while it was queued.
		if c.gen.Load() != gen || ctx.Err() != nil {
			return context.Canceled
		}

		el := c.newElement()
		el.SetVolume(c.volume)
		el.SetMuted(c.muted)
		if err := el.Load(ctx, url); err != nil {
			_ = el.Close()
			var loadErr *LoadError
			if errors.As(err, &loadErr) || errors.Is(err, context.Canceled) {
				return err
			}
			return &LoadError{URL: url, Err: err}
		}
		if c.gen.Load() != gen {
			_ = el.Close()
			return context.Canceled
		}
		c.el = el
		c.elEvents = el.Events()
		c.elGen = gen
		c.duration.Store(int64(el.Duration()))
		c.setState(Loaded)
		return nil
	}), gen
}

// Play starts or resumes playback. The returned Pending fails with
// ErrPlaybackBlocked when the output refuses to start.
func (c *Controller) Play() *Pending {
	return c.submit(func() error {
		if c.el == nil {
			return ErrNoSource
		}
		if err := c.el.Play(); err != nil {
			return err
		}
		c.setState(Playing)
		return nil
	})
}

// Pause pauses playback. It is ordered after any pending Play.
func (c *Controller) Pause() *Pending {
	return c.submit(func() error {
		if c.el == nil {
			return nil
		}
		c.el.Pause()
		if c.State() == Playing {
			c.setState(Paused)
		}
		return nil
	})
}

// Seek moves playback to pos. Requests within SeekTolerance of the current
// position are ignored.
func (c *Controller) Seek(pos time.Duration) *Pending {
	return c.submit(func() error {
		if c.el == nil {
			return ErrNoSource
		}
		pos = max(pos, 0)
		if d := c.el.Duration(); d > 0 {
			pos = min(pos, d)
		}
		current := c.el.Position()
		if delta := current - pos; delta < SeekTolerance && delta > -SeekTolerance {
			return nil
		}
		if err := c.el.Seek(pos); err != nil {
			return err
		}
		c.position.Store(int64(c.el.Position()))
		return nil
	})
}

// SetVolume sets the output level, clamped to [0, 1]. The level carries
// over to elements created by later loads.
func (c *Controller) SetVolume(level float64) *Pending {
	level = max(0, min(level, 1))
	return c.submit(func() error {
		c.volume = level
		if c.el != nil {
			c.el.SetVolume(level)
		}
		return nil
	})
}

// SetMuted mutes or unmutes the output.
func (c *Controller) SetMuted(muted bool) *Pending {
	return c.submit(func() error {
		c.muted = muted
		if c.el != nil {
			c.el.SetMuted(muted)
		}
		return nil
	})
}

// Prime plays the silent primer clip on the current element, creating a
// sourceless element if nothing is loaded yet.
func (c *Controller) Prime() *Pending {
	return c.submit(func() error {
		if c.el == nil {
			el := c.newElement()
			el.SetMuted(c.muted)
			if err := el.Prime(); err != nil {
				_ = el.Close()
				return err
			}
			c.el = el
			c.elEvents = el.Events()
			c.elGen = c.gen.Load()
			return nil
		}
		return c.el.Prime()
	})
}

// Close stops the loop and releases the element.
func (c *Controller) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.loadMu.Lock()
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	c.loadMu.Unlock()
	close(c.done)
	return nil
}
