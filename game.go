package main

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/wisperingaway/assets"
	"github.com/milk9111/wisperingaway/config"
	"github.com/milk9111/wisperingaway/endscreen"
	"github.com/milk9111/wisperingaway/preload"
	"github.com/milk9111/wisperingaway/sound"
	"github.com/milk9111/wisperingaway/world"
	"golang.org/x/image/font/basicfont"
)

const volumeStep = 0.1

type gameState int

const (
	stateLoading gameState = iota
	statePlaying
	stateOver
)

var (
	backgroundColor = color.RGBA{R: 0x12, G: 0x16, B: 0x10, A: 0xff}
	barBackColor    = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	barFillColor    = color.RGBA{R: 0xe6, G: 0x78, B: 0x1e, A: 0xff}
)

type Game struct {
	cfg      config.Config
	manifest *assets.Manifest
	loader   *assets.Loader
	verdict  *endscreen.Verdict

	audioCtx *audio.Context
	volume   *sound.Volume

	set     *preload.Set
	ready   preload.Handoff[assets.Library]
	lib     *assets.Library
	session *Session
	state   gameState

	hud     *HUD
	face    ebtext.Face
	watcher *assets.Watcher
	queued  assets.ReloadQueue
	clip    *clipboardWriter

	width, height int
}

func NewGame(cfg config.Config, m *assets.Manifest, loader *assets.Loader, verdict *endscreen.Verdict) *Game {
	g := &Game{
		cfg:      cfg,
		manifest: m,
		loader:   loader,
		verdict:  verdict,
		audioCtx: audio.NewContext(sound.SampleRate),
		volume:   sound.NewVolume(cfg.Volume),
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		clip:     &clipboardWriter{},
	}
	g.hud = NewHUD(g.toggleMute)
	g.hud.Sync(g.volume.Muted(), g.volume.Level())
	return g
}

// Start begins preloading. The launch action only hands the library to the
// game loop; the session is built on the next Update.
func (g *Game) Start(ctx context.Context) error {
	set, err := g.loader.Preload(ctx, g.manifest, func(lib *assets.Library) {
		g.ready.Offer(lib)
	})
	if err != nil {
		return err
	}
	g.set = set
	return nil
}

func (g *Game) Update() error {
	g.pollAssetChanges()

	switch g.state {
	case stateLoading:
		lib, ok := g.ready.Take()
		if !ok {
			return nil
		}
		if err := g.launch(lib); err != nil {
			return err
		}
	case statePlaying:
		g.updateAudioKeys()
		g.hud.ui.Update()
		g.updateWorld()
	case stateOver:
		g.updateAudioKeys()
		g.hud.ui.Update()
		g.session.banner.Tick()
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.clip.WriteText(g.session.banner.Text())
		}
	}
	return nil
}

func (g *Game) launch(lib *assets.Library) error {
	for _, h := range g.set.Failures() {
		log.Printf("game: starting without %s: %v", h.Key(), h.Err())
	}
	s, err := newSession(lib, g.manifest, g.audioCtx, g.volume, g.verdict)
	if err != nil {
		return err
	}
	g.lib = lib
	g.session = s
	g.state = statePlaying
	s.mixer.StartMusic()
	log.Printf("game: launched with %d assets", g.set.Gate().Total())
	for _, path := range g.queued.Drain() {
		g.reloadAsset(path)
	}
	return nil
}

func (g *Game) updateWorld() {
	in := world.Input{
		Chop:  inpututil.IsKeyJustPressed(ebiten.KeyE),
		Stoke: inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
	for _, ev := range g.session.world.Update(in) {
		g.session.mixer.Play(ev.Sound())
	}
	if g.session.world.Over() {
		g.session.mixer.StopMusic()
		g.session.banner.Show(g.session.world.Seconds())
		g.state = stateOver
	}
}

func (g *Game) updateAudioKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.toggleMute()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		g.session.mixer.StepVolume(-volumeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		g.session.mixer.StepVolume(volumeStep)
	default:
		return
	}
	g.hud.Sync(g.volume.Muted(), g.volume.Level())
}

func (g *Game) toggleMute() {
	if g.session != nil {
		g.session.mixer.ToggleMute()
	} else {
		g.volume.ToggleMute()
	}
	g.hud.Sync(g.volume.Muted(), g.volume.Level())
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	switch g.state {
	case stateLoading:
		g.drawLoading(screen)
		return
	case statePlaying:
		g.drawWorld(screen)
	case stateOver:
		g.drawWorld(screen)
		g.drawBanner(screen)
	}
	g.hud.ui.Draw(screen)

	if g.cfg.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  t=%ds", ebiten.ActualFPS(), g.session.world.Seconds()))
	}
}

func (g *Game) drawLoading(screen *ebiten.Image) {
	if g.set == nil {
		return
	}
	gate := g.set.Gate()
	w, h := float32(g.width), float32(g.height)
	barW, barH := w/2, float32(12)
	x, y := (w-barW)/2, h/2
	vector.FillRect(screen, x, y, barW, barH, barBackColor, false)
	vector.FillRect(screen, x, y, barW*float32(gate.Progress()), barH, barFillColor, false)
	g.drawText(screen, fmt.Sprintf("Loading %d/%d", gate.Completed(), gate.Total()), float64(w)/2, float64(y)-24, 1, 1)
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	s := g.session
	cx, cy := float64(g.width)/2, float64(g.height)/2

	if fire := s.tile(2, 0); fire != nil {
		scale := 1 + 2*s.world.Warmth()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-tileSize/2, -tileSize/2)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(cx, cy)
		op.ColorScale.ScaleAlpha(float32(0.3 + 0.7*s.world.Warmth()))
		screen.DrawImage(fire, op)
	} else {
		r := float32(16 + 48*s.world.Warmth())
		vector.FillRect(screen, float32(cx)-r/2, float32(cy)-r/2, r, r, barFillColor, false)
	}

	if wood := s.tile(0, 2); wood != nil {
		for i := 0; i < s.world.Logs(); i++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(16, float64(g.height-48-i*tileSize))
			screen.DrawImage(wood, op)
		}
	}

	barW := float32(g.width) / 3
	vector.FillRect(screen, 16, 16, barW, 10, barBackColor, false)
	vector.FillRect(screen, 16, 16, barW*float32(s.world.Warmth()), 10, barFillColor, false)
}

func (g *Game) drawBanner(screen *ebiten.Image) {
	b := g.session.banner
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 0xa0}, false)
	y := float64(g.height) / 3
	for i, line := range b.Lines() {
		g.drawText(screen, line, float64(g.width)/2, y, 2, b.Alpha(i))
		y += 40
	}
	if b.Alpha(0) >= 1 {
		g.drawText(screen, "press C to copy", float64(g.width)/2, y+20, 1, 0.6)
	}
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y, scale float64, alpha float32) {
	op := &ebtext.DrawOptions{}
	op.PrimaryAlign = ebtext.AlignCenter
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(alpha)
	ebtext.Draw(screen, s, g.face, op)
}

// Layout keeps the drawing surface the size of the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
