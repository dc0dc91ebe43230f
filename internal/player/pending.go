package player

import "context"

// Pending is the result of an operation queued on a Controller. It settles
// exactly once.
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// settled returns an already-settled Pending.
func settled(err error) *Pending {
	p := newPending()
	p.settle(err)
	return p
}

func (p *Pending) settle(err error) {
	p.err = err
	close(p.done)
}

// Done is closed once the operation has completed.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Err returns the outcome. Only valid after Done is closed.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the operation completes or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
