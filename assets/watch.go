package assets

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports changes to asset files in on-disk asset directories.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	watcher.wg.Add(1)
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.wg.Wait()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsAssetFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// wantEvent filters raw events down to asset files that exist after the event.
// A rename reports the old name, and the new name arrives as a Create, so a
// Rename or Remove only counts when something was put back at that path.
func wantEvent(event fsnotify.Event) bool {
	if !IsAssetFile(event.Name) {
		return false
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
		return true
	}
	if event.Op&(fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	_, err := os.Stat(event.Name)
	return err == nil
}

// ReloadQueue holds changed asset paths until the game can apply them.
type ReloadQueue struct {
	paths []string
	seen  map[string]bool
}

// Push queues path and reports whether it was not already queued.
func (q *ReloadQueue) Push(path string) bool {
	if q.seen == nil {
		q.seen = make(map[string]bool)
	}
	if q.seen[path] {
		return false
	}
	q.seen[path] = true
	q.paths = append(q.paths, path)
	return true
}

// Drain returns the queued paths in arrival order and empties the queue.
func (q *ReloadQueue) Drain() []string {
	paths := q.paths
	q.paths = nil
	q.seen = nil
	return paths
}

// IsAssetFile reports whether path has an extension the loader understands.
func IsAssetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".wav", ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}

// IsImageFile reports whether path is an image the loader can decode.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}
