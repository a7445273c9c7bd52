// Package endscreen builds the end-of-run banner shown once the fire goes out.
package endscreen

import (
	"log"
	"strings"
	"sync"
)

// FadeFrames is how many frames the banner text takes to fade in.
const FadeFrames = 120

// Banner is shown at most once per run.
type Banner struct {
	verdict *Verdict

	mu      sync.Mutex
	shown   bool
	seconds int
	lines   []string
	frame   int
}

func NewBanner(v *Verdict) *Banner {
	return &Banner{verdict: v}
}

// Show fills the banner for a run that lasted seconds. Only the first call
// takes effect; it reports whether this call was that one.
func (b *Banner) Show(seconds int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.shown {
		return false
	}
	lines, err := b.verdict.Lines(seconds)
	if err != nil {
		log.Printf("endscreen: %v", err)
	}
	b.shown = true
	b.seconds = seconds
	b.lines = lines
	return true
}

func (b *Banner) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shown
}

func (b *Banner) Seconds() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seconds
}

func (b *Banner) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text is the banner lines joined for sharing.
func (b *Banner) Text() string {
	return strings.Join(b.Lines(), " ")
}

// Tick advances the fade-in by one frame.
func (b *Banner) Tick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.shown && b.frame < FadeFrames {
		b.frame++
	}
}

// Alpha is the text opacity for the current frame, in [0,1]. Lines after the
// first start fading in halfway through.
func (b *Banner) Alpha(line int) float32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.shown {
		return 0
	}
	start := 0
	if line > 0 {
		start = FadeFrames / 2
	}
	span := FadeFrames - start
	f := b.frame - start
	if f <= 0 {
		return 0
	}
	if f >= span {
		return 1
	}
	return float32(f) / float32(span)
}
