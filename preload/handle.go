package preload

import (
	"fmt"
	"strings"
	"sync"
)

type Status int

const (
	StatusPending Status = iota
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Handle is one tracked asset. It leaves StatusPending at most once and
// notifies its gate on that transition only.
type Handle struct {
	key  string
	gate *Gate

	mu     sync.Mutex
	status Status
	err    error
}

func (h *Handle) Key() string {
	return h.key
}

func (h *Handle) Status() Status {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Err returns the load error of a failed handle.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Loaded marks the asset loaded. It reports false if the handle had already
// completed.
func (h *Handle) Loaded() bool {
	return h.complete(StatusLoaded, nil)
}

// Failed marks the asset failed. A failed asset still counts toward the gate.
func (h *Handle) Failed(err error) bool {
	return h.complete(StatusFailed, err)
}

func (h *Handle) complete(status Status, err error) bool {
	h.mu.Lock()
	if h.status != StatusPending {
		h.mu.Unlock()
		return false
	}
	h.status = status
	h.err = err
	h.mu.Unlock()

	h.gate.Notify()
	return true
}

// Set is a fixed collection of handles sharing one gate.
type Set struct {
	gate    *Gate
	handles []*Handle
	byKey   map[string]*Handle
}

// NewSet creates one pending handle per key and a gate that fires launch once
// every handle has completed. Keys must be non-empty and unique.
func NewSet(keys []string, launch func()) (*Set, error) {
	if len(keys) == 0 {
		return nil, ErrInvalidConfiguration
	}
	byKey := make(map[string]*Handle, len(keys))
	for _, k := range keys {
		if strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: empty asset key", ErrInvalidConfiguration)
		}
		if _, dup := byKey[k]; dup {
			return nil, fmt.Errorf("%w: duplicate asset key %q", ErrInvalidConfiguration, k)
		}
		byKey[k] = nil
	}

	gate, err := NewGate(len(keys), launch)
	if err != nil {
		return nil, err
	}

	s := &Set{
		gate:    gate,
		handles: make([]*Handle, 0, len(keys)),
		byKey:   byKey,
	}
	for _, k := range keys {
		h := &Handle{key: k, gate: gate}
		s.handles = append(s.handles, h)
		s.byKey[k] = h
	}
	return s, nil
}

func (s *Set) Gate() *Gate {
	return s.gate
}

func (s *Set) Handle(key string) (*Handle, bool) {
	h, ok := s.byKey[key]
	return h, ok
}

// Handles returns the handles in key order as given to NewSet.
func (s *Set) Handles() []*Handle {
	out := make([]*Handle, len(s.handles))
	copy(out, s.handles)
	return out
}

// Failures returns the handles that completed with StatusFailed.
func (s *Set) Failures() []*Handle {
	var out []*Handle
	for _, h := range s.handles {
		if h.Status() == StatusFailed {
			out = append(out, h)
		}
	}
	return out
}
