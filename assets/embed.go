package assets

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//go:embed manifest.yaml verdict.tengo *.png *.wav
var assetsFS embed.FS

// Embedded returns the asset set compiled into the binary.
func Embedded() fs.FS {
	return assetsFS
}

// Open returns os.DirFS(dir) when dir is set, otherwise the embedded set.
func Open(dir string) (fs.FS, error) {
	if dir == "" {
		return assetsFS, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: dir, Err: fs.ErrInvalid}
	}
	return os.DirFS(dir), nil
}

// ReadFile loads an asset by assets-relative path.
func ReadFile(fsys fs.FS, path string) ([]byte, error) {
	return fs.ReadFile(fsys, cleanAssetPath(path))
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return strings.TrimPrefix(s, "./")
}
