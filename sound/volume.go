package sound

import "sync"

// Volume is a master level in [0,1] with a mute switch that remembers the
// last audible level.
type Volume struct {
	mu    sync.Mutex
	level float64
	muted bool
}

func NewVolume(level float64) *Volume {
	return &Volume{level: clamp(level)}
}

// Set applies v clamped to [0,1] and returns the applied level. Setting a
// level unmutes.
func (v *Volume) Set(level float64) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.level = clamp(level)
	v.muted = false
	return v.level
}

// Step adds delta to the level.
func (v *Volume) Step(delta float64) float64 {
	v.mu.Lock()
	level := v.level
	v.mu.Unlock()
	return v.Set(level + delta)
}

// ToggleMute flips mute and reports the new muted state.
func (v *Volume) ToggleMute() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.muted = !v.muted
	return v.muted
}

func (v *Volume) Muted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.muted
}

// Level is the configured level, ignoring mute.
func (v *Volume) Level() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.level
}

// Effective is the level to feed players: zero when muted.
func (v *Volume) Effective() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.muted {
		return 0
	}
	return v.level
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
