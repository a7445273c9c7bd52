// Package preload gates game start on the completion of a fixed set of asset loads.
package preload

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidConfiguration is returned when a gate or set is created with an
// unusable asset count or key list.
var ErrInvalidConfiguration = errors.New("preload: invalid configuration")

// Gate counts completions and runs its launch action exactly once, when the
// last of total completions arrives.
type Gate struct {
	mu        sync.Mutex
	total     int
	completed int
	fired     bool
	launch    func()
	done      chan struct{}
}

// NewGate creates a gate waiting for total completions. launch may be nil.
func NewGate(total int, launch func()) (*Gate, error) {
	if total <= 0 {
		return nil, ErrInvalidConfiguration
	}
	return &Gate{
		total:  total,
		launch: launch,
		done:   make(chan struct{}),
	}, nil
}

// Notify records one completion. The call that completes the set runs the
// launch action on its own goroutine; calls after that are ignored.
func (g *Gate) Notify() {
	g.mu.Lock()
	if g.fired {
		g.mu.Unlock()
		return
	}
	g.completed++
	if g.completed < g.total {
		g.mu.Unlock()
		return
	}
	g.fired = true
	launch := g.launch
	g.launch = nil
	g.mu.Unlock()

	defer close(g.done)
	if launch != nil {
		launch()
	}
}

func (g *Gate) Fired() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fired
}

func (g *Gate) Completed() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.completed
}

func (g *Gate) Total() int {
	return g.total
}

// Progress returns completed/total in [0,1].
func (g *Gate) Progress() float64 {
	return float64(g.Completed()) / float64(g.total)
}

// Done is closed once the launch action has returned or panicked.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Wait blocks until the gate fires or ctx ends.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
