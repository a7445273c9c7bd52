package preload

import "sync/atomic"

// Handoff carries the value produced by a launch action to one consumer that
// polls for it, such as a game loop running on its own goroutine.
type Handoff[T any] struct {
	v     atomic.Pointer[T]
	taken atomic.Bool
}

// Offer publishes v. Only the first non-nil offer is kept.
func (h *Handoff[T]) Offer(v *T) bool {
	if v == nil {
		return false
	}
	return h.v.CompareAndSwap(nil, v)
}

// Take returns the offered value on the first call after Offer and false on
// every other call.
func (h *Handoff[T]) Take() (*T, bool) {
	v := h.v.Load()
	if v == nil || !h.taken.CompareAndSwap(false, true) {
		return nil, false
	}
	return v, true
}
