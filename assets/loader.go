package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log"
	"runtime"
	"sync"

	"github.com/milk9111/wisperingaway/preload"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/semaphore"
)

// Library holds decoded images and raw audio bytes keyed by manifest name.
type Library struct {
	mu      sync.RWMutex
	images  map[string]image.Image
	sounds  map[string][]byte
	missing []string
}

func NewLibrary() *Library {
	return &Library{
		images: make(map[string]image.Image),
		sounds: make(map[string][]byte),
	}
}

func (l *Library) Image(name string) (image.Image, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	img, ok := l.images[name]
	return img, ok
}

func (l *Library) SetImage(name string, img image.Image) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.images[name] = img
}

func (l *Library) Sound(name string) ([]byte, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.sounds[name]
	return b, ok
}

func (l *Library) setSound(name string, b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sounds[name] = b
}

func (l *Library) markMissing(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.missing = append(l.missing, name)
}

// Missing lists the assets that failed to load.
func (l *Library) Missing() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.missing))
	copy(out, l.missing)
	return out
}

type Loader struct {
	fsys        fs.FS
	concurrency int64
}

// NewLoader creates a loader reading from fsys. concurrency <= 0 uses GOMAXPROCS.
func NewLoader(fsys fs.FS, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Loader{fsys: fsys, concurrency: int64(concurrency)}
}

func (l *Loader) FS() fs.FS {
	return l.fsys
}

// Preload starts loading every asset in m and returns the set tracking them.
// onReady runs exactly once, after the last asset has loaded or failed, on the
// goroutine that finished last. Failed assets are logged and left out of the
// library.
func (l *Loader) Preload(ctx context.Context, m *Manifest, onReady func(*Library)) (*preload.Set, error) {
	lib := NewLibrary()
	set, err := preload.NewSet(m.Keys(), func() {
		if onReady != nil {
			onReady(lib)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("assets: preload: %w", err)
	}

	sem := semaphore.NewWeighted(l.concurrency)
	start := func(name string, load func() error) {
		h, _ := set.Handle(name)
		go func() {
			if err := sem.Acquire(ctx, 1); err != nil {
				l.fail(lib, h, err)
				return
			}
			defer sem.Release(1)
			if err := ctx.Err(); err != nil {
				l.fail(lib, h, err)
				return
			}
			if err := load(); err != nil {
				l.fail(lib, h, err)
				return
			}
			h.Loaded()
		}()
	}

	for _, spec := range m.Images {
		spec := spec
		start(spec.Name, func() error {
			img, err := l.LoadImage(spec.File)
			if err != nil {
				return err
			}
			lib.SetImage(spec.Name, img)
			return nil
		})
	}
	sounds := m.Sounds
	if m.Music != nil {
		sounds = append(sounds[:len(sounds):len(sounds)], *m.Music)
	}
	for _, spec := range sounds {
		spec := spec
		start(spec.Name, func() error {
			b, err := l.LoadAudio(spec.File)
			if err != nil {
				return err
			}
			lib.setSound(spec.Name, b)
			return nil
		})
	}

	return set, nil
}

func (l *Loader) fail(lib *Library, h *preload.Handle, err error) {
	log.Printf("assets: load %s: %v", h.Key(), err)
	lib.markMissing(h.Key())
	h.Failed(err)
}

// LoadImage decodes an image by assets-relative path.
func (l *Loader) LoadImage(path string) (image.Image, error) {
	b, err := ReadFile(l.fsys, path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}

// LoadAudio reads a wav file and checks that its fmt and data chunks are
// intact.
func (l *Loader) LoadAudio(path string) ([]byte, error) {
	b, err := ReadFile(l.fsys, path)
	if err != nil {
		return nil, err
	}
	if err := checkWAV(b); err != nil {
		return nil, fmt.Errorf("decode audio %q: %w", path, err)
	}
	return b, nil
}
