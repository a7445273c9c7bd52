package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherReportsAssetWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "sheet.png")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	timeout := time.After(3 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if filepath.Ext(name) == ".txt" {
				t.Fatalf("non-asset file reported: %s", name)
			}
			if name == target {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-timeout:
			t.Fatalf("no event for %s", target)
		}
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, ok := <-w.Events; ok {
		t.Fatalf("events channel should be closed")
	}
}

func TestIsAssetFile(t *testing.T) {
	cases := []struct {
		path  string
		asset bool
		image bool
	}{
		{"a.PNG", true, true},
		{"dir/b.webp", true, true},
		{"c.wav", true, false},
		{"manifest.yaml", true, false},
		{"verdict.tengo", true, false},
		{"readme.md", false, false},
	}
	for _, c := range cases {
		if got := IsAssetFile(c.path); got != c.asset {
			t.Fatalf("IsAssetFile(%q) = %v", c.path, got)
		}
		if got := IsImageFile(c.path); got != c.image {
			t.Fatalf("IsImageFile(%q) = %v", c.path, got)
		}
	}
}

func TestWatcherReportsRenameIntoPlace(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	tmp := filepath.Join(dir, "sheet.png.swp")
	target := filepath.Join(dir, "sheet.png")
	if err := os.WriteFile(tmp, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		t.Fatalf("rename: %v", err)
	}

	timeout := time.After(3 * time.Second)
	for {
		select {
		case name := <-w.Events:
			if name == target {
				return
			}
		case err := <-w.Errors:
			t.Fatalf("watcher error: %v", err)
		case <-timeout:
			t.Fatalf("no event for %s", target)
		}
	}
}

func TestWantEvent(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present.png")
	if err := os.WriteFile(present, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	gone := filepath.Join(dir, "gone.png")

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: gone, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: gone, Op: fsnotify.Create}, true},
		{"renamed_away", fsnotify.Event{Name: gone, Op: fsnotify.Rename}, false},
		{"removed", fsnotify.Event{Name: gone, Op: fsnotify.Remove}, false},
		{"replaced_after_remove", fsnotify.Event{Name: present, Op: fsnotify.Remove}, true},
		{"replaced_after_rename", fsnotify.Event{Name: present, Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: present, Op: fsnotify.Chmod}, false},
		{"not_asset", fsnotify.Event{Name: filepath.Join(dir, "a.txt"), Op: fsnotify.Write}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := wantEvent(c.event); got != c.want {
				t.Fatalf("wantEvent(%v) = %v, want %v", c.event, got, c.want)
			}
		})
	}
}

func TestReloadQueue(t *testing.T) {
	var q ReloadQueue
	if got := q.Drain(); len(got) != 0 {
		t.Fatalf("empty queue drained %v", got)
	}
	for _, p := range []string{"a.png", "b.png", "a.png"} {
		q.Push(p)
	}
	got := q.Drain()
	if len(got) != 2 || got[0] != "a.png" || got[1] != "b.png" {
		t.Fatalf("Drain = %v", got)
	}
	if !q.Push("a.png") {
		t.Fatalf("path should be queueable again after Drain")
	}
}
