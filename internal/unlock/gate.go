package unlock

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/sangeetx/sangeetx/internal/player"
)

// Primer plays the silent primer clip through the audio output.
type Primer interface {
	Prime() *player.Pending
}

// Gate tracks whether the session has been unlocked by a gesture and holds
// at most one play request deferred until the user confirms.
//
//	locked ──Gesture/Confirm──▶ unlocked
//	  │
//	  └─Intercept─▶ prompt shown ──Confirm──▶ unlocked + deferred play
//	                      └──────Dismiss──▶ locked, play dropped
//
// The unlocked flag lives only as long as the Gate.
type Gate struct {
	platform Platform
	primer   Primer

	mu       sync.Mutex
	unlocked bool
	prompt   bool
}

// NewGate creates a locked gate.
func NewGate(platform Platform, primer Primer) *Gate {
	return &Gate{platform: platform, primer: primer}
}

// Platform returns the platform the gate was created for.
func (g *Gate) Platform() Platform {
	return g.platform
}

// Unlocked reports whether a gesture has unlocked playback.
func (g *Gate) Unlocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unlocked
}

// Prompt reports whether the tap-to-play prompt should be shown.
func (g *Gate) Prompt() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.prompt
}

// Gesture records a user gesture. On a locked mobile session it plays the
// primer; it returns the pending prime, or nil when nothing was needed.
func (g *Gate) Gesture() *player.Pending {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unlocked {
		return nil
	}
	if g.platform != Mobile {
		g.unlocked = true
		return nil
	}
	return g.primeLocked()
}

// Intercept reports whether a play request must be deferred. When it
// returns true the prompt is raised and the caller must not start playback.
func (g *Gate) Intercept() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.platform != Mobile || g.unlocked {
		return false
	}
	g.prompt = true
	return true
}

// Block raises the prompt after the output refused to start playback, and
// locks the session again.
func (g *Gate) Block() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unlocked = false
	g.prompt = true
}

// Confirm is the second step of the prompt: it primes the output and
// reports whether a play was deferred. The caller issues that play right
// away; the controller orders it after the prime.
func (g *Gate) Confirm() (deferred bool, prime *player.Pending) {
	g.mu.Lock()
	defer g.mu.Unlock()
	deferred = g.prompt
	g.prompt = false
	if g.unlocked {
		return deferred, nil
	}
	return deferred, g.primeLocked()
}

// Dismiss hides the prompt and drops the deferred play.
func (g *Gate) Dismiss() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	was := g.prompt
	g.prompt = false
	return was
}

// primeLocked plays the primer and marks the session unlocked. A failed
// prime locks it again. Caller holds g.mu.
func (g *Gate) primeLocked() *player.Pending {
	g.unlocked = true
	p := g.primer.Prime()
	go func() {
		<-p.Done()
		if err := p.Err(); err != nil {
			log.WithError(err).Warn("audio primer failed")
			g.mu.Lock()
			g.unlocked = false
			g.mu.Unlock()
		}
	}()
	return p
}
