// Package sound plays the preloaded sound effects and music track.
package sound

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/milk9111/wisperingaway/assets"
)

const SampleRate = 44100

type clip struct {
	player *audio.Player
	volume float64
}

// Mixer owns one player per sound effect and an optional looping music
// player. Every player is scaled by the master Volume.
type Mixer struct {
	volume *Volume
	sfx    map[string]*clip
	music  *clip
}

// NewMixer builds players for every sound in m that made it into lib.
// Sounds that failed to preload or do not decode are skipped with a log line.
func NewMixer(ctx *audio.Context, lib *assets.Library, m *assets.Manifest, volume *Volume) (*Mixer, error) {
	if ctx == nil {
		return nil, fmt.Errorf("sound: nil audio context")
	}
	if volume == nil {
		volume = NewVolume(1)
	}
	mx := &Mixer{volume: volume, sfx: make(map[string]*clip, len(m.Sounds))}

	for _, spec := range m.Sounds {
		b, ok := lib.Sound(spec.Name)
		if !ok {
			log.Printf("sound: %s not loaded, skipping", spec.Name)
			continue
		}
		p, err := newPlayer(ctx, b, false)
		if err != nil {
			log.Printf("sound: %s: %v, skipping", spec.Name, err)
			continue
		}
		mx.sfx[spec.Name] = &clip{player: p, volume: spec.Volume}
	}

	if m.Music != nil {
		b, ok := lib.Sound(m.Music.Name)
		if !ok {
			log.Printf("sound: music %s not loaded, playing without music", m.Music.Name)
		} else if p, err := newPlayer(ctx, b, m.Music.Loop); err != nil {
			log.Printf("sound: music %s: %v, playing without music", m.Music.Name, err)
		} else {
			mx.music = &clip{player: p, volume: m.Music.Volume}
		}
	}

	mx.apply()
	return mx, nil
}

func newPlayer(ctx *audio.Context, b []byte, loop bool) (*audio.Player, error) {
	stream, err := decodeWAV(ctx.SampleRate(), b)
	if err != nil {
		return nil, err
	}
	if loop {
		return ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	}
	return ctx.NewPlayer(stream)
}

func decodeWAV(sampleRate int, b []byte) (*wav.Stream, error) {
	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return stream, nil
}

// Play rewinds and plays a one-shot sound effect.
func (mx *Mixer) Play(name string) {
	c, ok := mx.sfx[name]
	if !ok {
		log.Printf("sound: unknown sound %q", name)
		return
	}
	c.player.SetVolume(c.volume * mx.volume.Effective())
	if err := c.player.Rewind(); err != nil {
		log.Printf("sound: rewind %s: %v", name, err)
		return
	}
	c.player.Play()
}

func (mx *Mixer) StartMusic() {
	if mx.music == nil || mx.music.player.IsPlaying() {
		return
	}
	mx.apply()
	mx.music.player.Play()
}

func (mx *Mixer) StopMusic() {
	if mx.music == nil {
		return
	}
	mx.music.player.Pause()
}

// SetVolume sets the master level and returns the applied value.
func (mx *Mixer) SetVolume(level float64) float64 {
	applied := mx.volume.Set(level)
	mx.apply()
	return applied
}

func (mx *Mixer) StepVolume(delta float64) float64 {
	applied := mx.volume.Step(delta)
	mx.apply()
	return applied
}

// ToggleMute flips mute and reports whether the mixer is now muted.
func (mx *Mixer) ToggleMute() bool {
	muted := mx.volume.ToggleMute()
	mx.apply()
	return muted
}

func (mx *Mixer) Muted() bool {
	return mx.volume.Muted()
}

func (mx *Mixer) Volume() float64 {
	return mx.volume.Level()
}

func (mx *Mixer) apply() {
	master := mx.volume.Effective()
	if mx.music != nil {
		mx.music.player.SetVolume(mx.music.volume * master)
	}
	for _, c := range mx.sfx {
		if c.player.IsPlaying() {
			c.player.SetVolume(c.volume * master)
		}
	}
}
