package main

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/wisperingaway/assets"
	"github.com/milk9111/wisperingaway/endscreen"
	"github.com/milk9111/wisperingaway/sound"
	"github.com/milk9111/wisperingaway/world"
)

const (
	sheetName = "spritesheet"
	tileSize  = 32
)

// Session is everything a running game needs, handed over by the launch
// action instead of being reached through globals.
type Session struct {
	images map[string]*ebiten.Image
	mixer  *sound.Mixer
	world  *world.World
	banner *endscreen.Banner
}

func newSession(lib *assets.Library, m *assets.Manifest, audioCtx *audio.Context, volume *sound.Volume, verdict *endscreen.Verdict) (*Session, error) {
	mixer, err := sound.NewMixer(audioCtx, lib, m, volume)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s := &Session{
		images: make(map[string]*ebiten.Image, len(m.Images)),
		mixer:  mixer,
		world:  world.New(),
		banner: endscreen.NewBanner(verdict),
	}
	for _, spec := range m.Images {
		img, ok := lib.Image(spec.Name)
		if !ok {
			log.Printf("session: image %s not loaded, drawing placeholder", spec.Name)
			continue
		}
		s.setImage(spec.Name, img)
	}
	return s, nil
}

func (s *Session) setImage(name string, img image.Image) {
	s.images[name] = ebiten.NewImageFromImage(img)
}

// tile returns the (col,row) tile of the sprite sheet, or nil if the sheet is
// missing or too small.
func (s *Session) tile(col, row int) *ebiten.Image {
	sheet, ok := s.images[sheetName]
	if !ok {
		return nil
	}
	r := image.Rect(col*tileSize, row*tileSize, (col+1)*tileSize, (row+1)*tileSize)
	if !r.In(sheet.Bounds()) {
		return nil
	}
	return sheet.SubImage(r).(*ebiten.Image)
}
