package player

import (
	"context"
	"sync"
	"time"
)

// MockOutput is a test double for Output. It hands out MockElements and
// records every one it created.
type MockOutput struct {
	mu sync.Mutex

	// RequireActivation makes Play fail with ErrPlaybackBlocked until Prime.
	RequireActivation bool
	// LoadErr, when set, is returned by Load for the given URL.
	LoadErr map[string]error
	// PlayErr, when set, is returned by every Play.
	PlayErr error
	// Duration is reported by every loaded element.
	Duration time.Duration
	// LoadGate, when set, holds every Load until it is closed or the load
	// context is cancelled.
	LoadGate chan struct{}

	activated bool
	elements  []*MockElement
}

// NewMockOutput creates a mock output whose elements report a three-minute
// duration.
func NewMockOutput() *MockOutput {
	return &MockOutput{Duration: 3 * time.Minute, LoadErr: map[string]error{}}
}

// NewElement implements Factory.
func (o *MockOutput) NewElement() Element {
	o.mu.Lock()
	defer o.mu.Unlock()
	el := &MockElement{out: o, events: make(chan Event, eventBufferSize)}
	o.elements = append(o.elements, el)
	return el
}

// Elements returns every element created so far.
func (o *MockOutput) Elements() []*MockElement {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*MockElement(nil), o.elements...)
}

// Last returns the most recently created element, or nil.
func (o *MockOutput) Last() *MockElement {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.elements) == 0 {
		return nil
	}
	return o.elements[len(o.elements)-1]
}

// Activated reports whether Prime has been called on any element.
func (o *MockOutput) Activated() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activated
}

// SetPlayErr changes the error returned by Play.
func (o *MockOutput) SetPlayErr(err error) {
	o.mu.Lock()
	o.PlayErr = err
	o.mu.Unlock()
}

// MockElement is a test double for Element.
type MockElement struct {
	out *MockOutput

	mu         sync.Mutex
	url        string
	playing    bool
	closed     bool
	position   time.Duration
	duration   time.Duration
	volume     float64
	muted      bool
	playCalls  int
	pauseCalls int
	primeCalls int
	seekCalls  []time.Duration
	calls      []string

	events chan Event
}

var _ Element = (*MockElement)(nil)

func (m *MockElement) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *MockElement) Load(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("load")
	m.out.mu.Lock()
	err := m.out.LoadErr[url]
	dur := m.out.Duration
	gate := m.out.LoadGate
	m.out.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}
	m.url = url
	m.duration = dur
	return nil
}

func (m *MockElement) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("play")
	m.playCalls++
	m.out.mu.Lock()
	blocked := m.out.RequireActivation && !m.out.activated
	err := m.out.PlayErr
	m.out.mu.Unlock()
	if blocked {
		return ErrPlaybackBlocked
	}
	if err != nil {
		return err
	}
	if m.url == "" {
		return ErrNoSource
	}
	m.playing = true
	return nil
}

func (m *MockElement) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("pause")
	m.pauseCalls++
	m.playing = false
}

func (m *MockElement) Seek(pos time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("seek")
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
	return nil
}

func (m *MockElement) SetVolume(level float64) {
	m.mu.Lock()
	m.volume = level
	m.mu.Unlock()
}

func (m *MockElement) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

func (m *MockElement) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MockElement) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MockElement) Prime() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("prime")
	m.primeCalls++
	m.out.mu.Lock()
	m.out.activated = true
	m.out.mu.Unlock()
	return nil
}

func (m *MockElement) Events() <-chan Event { return m.events }

func (m *MockElement) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.playing = false
	return nil
}

// Emit delivers ev as if the element produced it.
func (m *MockElement) Emit(ev Event) {
	m.events <- ev
}

// SetPosition sets the position reported by Position.
func (m *MockElement) SetPosition(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	m.mu.Unlock()
}

// URL returns the loaded source.
func (m *MockElement) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

// Playing reports whether the element is currently playing.
func (m *MockElement) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Closed reports whether Close was called.
func (m *MockElement) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Volume returns the level last applied.
func (m *MockElement) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// Muted returns the mute flag last applied.
func (m *MockElement) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// PlayCalls returns the number of Play calls.
func (m *MockElement) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

// PauseCalls returns the number of Pause calls.
func (m *MockElement) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

// PrimeCalls returns the number of Prime calls.
func (m *MockElement) PrimeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.primeCalls
}

// SeekCalls returns the positions passed to Seek.
func (m *MockElement) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

// Calls returns the recorded call sequence.
func (m *MockElement) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
