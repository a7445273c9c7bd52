package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/wisperingaway/assets"
	"github.com/milk9111/wisperingaway/config"
	"github.com/milk9111/wisperingaway/endscreen"
)

func main() {
	cfg, err := config.Load(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	fsys, err := assets.Open(cfg.AssetDir)
	if err != nil {
		log.Fatalf("assets: open %s: %v", cfg.AssetDir, err)
	}
	manifest, err := assets.LoadManifest(fsys, cfg.Manifest)
	if err != nil {
		log.Fatal(err)
	}
	verdict := loadVerdict(fsys, manifest)

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	title := manifest.Title
	if title == "" {
		title = "wisperingaway"
	}
	ebiten.SetWindowTitle(title)

	game := NewGame(cfg, manifest, assets.NewLoader(fsys, cfg.Concurrency), verdict)
	defer game.Close()

	ctx := context.Background()
	if cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.LoadTimeout)
		defer cancel()
	}
	if err := game.Start(ctx); err != nil {
		log.Fatal(err)
	}

	if cfg.Debug && cfg.AssetDir != "" {
		if err := game.watchAssets(cfg.AssetDir); err != nil {
			log.Printf("hotreload: disabled: %v", err)
		}
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// loadVerdict compiles the manifest's end-screen script, falling back to the
// built-in lines if it is missing or broken.
func loadVerdict(fsys fs.FS, m *assets.Manifest) *endscreen.Verdict {
	if m.Verdict == "" {
		return nil
	}
	src, err := assets.ReadFile(fsys, m.Verdict)
	if err != nil {
		log.Printf("endscreen: read %s: %v", m.Verdict, err)
		return nil
	}
	v, err := endscreen.CompileVerdict(src)
	if err != nil {
		log.Printf("endscreen: %v", err)
		return nil
	}
	return v
}
