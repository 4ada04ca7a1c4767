package wizard

import (
	"context"
	"fmt"
	"sync"

	"kisansaarthi/models"
)

// SessionWriter persists the session a finished flow yields.
type SessionWriter interface {
	Materialize(ctx context.Context, sess models.Session) error
}

// persist hands sess to sessions, which may be nil.
func persist(ctx context.Context, sessions SessionWriter, sess models.Session) error {
	if sessions == nil {
		return nil
	}
	if err := sessions.Materialize(ctx, sess); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionNotSaved, err)
	}
	return nil
}

// gate admits one transition at a time and owns the cancel func of the
// request it admitted.
type gate struct {
	mu     sync.Mutex
	busy   bool
	closed bool
	cancel context.CancelFunc
}

// enter claims the gate. The returned release must run once the transition
// is over, whatever its outcome.
func (g *gate) enter(ctx context.Context) (context.Context, func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return nil, nil, ErrClosed
	}
	if g.busy {
		return nil, nil, ErrInFlight
	}
	ctx, cancel := context.WithCancel(ctx)
	g.busy = true
	g.cancel = cancel
	release := func() {
		g.mu.Lock()
		g.busy = false
		g.cancel = nil
		g.mu.Unlock()
		cancel()
	}
	return ctx, release, nil
}

// editable returns ErrClosed or ErrInFlight when the form must not change.
func (g *gate) editable() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return ErrClosed
	}
	if g.busy {
		return ErrInFlight
	}
	return nil
}

func (g *gate) loading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

func (g *gate) isClosed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.closed
}

// close refuses further transitions and cancels the one in flight.
func (g *gate) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	if g.cancel != nil {
		g.cancel()
	}
}
