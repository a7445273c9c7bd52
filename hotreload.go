package main

import (
	"log"
	"path/filepath"

	"github.com/milk9111/wisperingaway/assets"
	"github.com/milk9111/wisperingaway/endscreen"
)

// watchAssets starts hot reload for an on-disk asset directory.
func (g *Game) watchAssets(dir string) error {
	w, err := assets.NewWatcher(dir)
	if err != nil {
		return err
	}
	g.watcher = w
	log.Printf("hotreload: watching %s", dir)
	return nil
}

// pollAssetChanges applies pending file changes without blocking the frame.
func (g *Game) pollAssetChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadAsset(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("hotreload: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reloadAsset(path string) {
	switch {
	case assets.IsImageFile(path):
		if g.session == nil {
			if g.queued.Push(path) {
				log.Printf("hotreload: %s changed while loading, applying after launch", filepath.Base(path))
			}
			return
		}
		for _, spec := range g.manifest.ImagesForFile(path) {
			img, err := g.loader.LoadImage(spec.File)
			if err != nil {
				log.Printf("hotreload: %s: %v", spec.Name, err)
				continue
			}
			g.lib.SetImage(spec.Name, img)
			g.session.setImage(spec.Name, img)
			log.Printf("hotreload: reloaded %s", spec.Name)
		}
	case g.manifest.Verdict != "" && filepath.Base(path) == filepath.Base(g.manifest.Verdict):
		src, err := assets.ReadFile(g.loader.FS(), g.manifest.Verdict)
		if err != nil {
			log.Printf("hotreload: verdict: %v", err)
			return
		}
		v, err := endscreen.CompileVerdict(src)
		if err != nil {
			log.Printf("hotreload: verdict: %v", err)
			return
		}
		g.verdict = v
		if g.session != nil && !g.session.banner.Visible() {
			g.session.banner = endscreen.NewBanner(v)
		}
		log.Printf("hotreload: reloaded verdict")
	default:
		log.Printf("hotreload: %s changed; restart to apply", filepath.Base(path))
	}
}
