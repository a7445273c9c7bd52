package assets

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultManifest = "manifest.yaml"

type Manifest struct {
	Title   string      `yaml:"title"`
	Images  []ImageSpec `yaml:"images"`
	Sounds  []SoundSpec `yaml:"sounds"`
	Music   *SoundSpec  `yaml:"music"`
	Verdict string      `yaml:"verdict"`
}

type ImageSpec struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
}

type SoundSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
	Loop   bool    `yaml:"loop"`
}

// LoadManifest reads and validates a manifest from fsys.
func LoadManifest(fsys fs.FS, name string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, cleanAssetPath(name))
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", name, err)
	}
	return ParseManifest(data)
}

func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("assets: unmarshal manifest: %w", err)
	}
	if err := m.normalize(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) normalize() error {
	seen := make(map[string]struct{})
	check := func(kind, name, file string) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("assets: %s with file %q has no name", kind, file)
		}
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("assets: %s %q has no file", kind, name)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("assets: duplicate asset name %q", name)
		}
		seen[name] = struct{}{}
		return nil
	}

	for i := range m.Images {
		img := &m.Images[i]
		img.Name = strings.TrimSpace(img.Name)
		if err := check("image", img.Name, img.File); err != nil {
			return err
		}
	}
	for i := range m.Sounds {
		snd := &m.Sounds[i]
		snd.Name = strings.TrimSpace(snd.Name)
		if err := check("sound", snd.Name, snd.File); err != nil {
			return err
		}
		snd.Volume = clampVolume(snd.Volume)
	}
	if m.Music != nil {
		m.Music.Name = strings.TrimSpace(m.Music.Name)
		if m.Music.Name == "" {
			m.Music.Name = "music"
		}
		if err := check("music", m.Music.Name, m.Music.File); err != nil {
			return err
		}
		m.Music.Volume = clampVolume(m.Music.Volume)
	}
	if len(seen) == 0 {
		return fmt.Errorf("assets: manifest declares no assets")
	}
	return nil
}

// Keys returns every asset name in declaration order: images, sounds, music.
func (m *Manifest) Keys() []string {
	keys := make([]string, 0, len(m.Images)+len(m.Sounds)+1)
	for _, img := range m.Images {
		keys = append(keys, img.Name)
	}
	for _, snd := range m.Sounds {
		keys = append(keys, snd.Name)
	}
	if m.Music != nil {
		keys = append(keys, m.Music.Name)
	}
	return keys
}

// Sound finds a sound or the music track by name.
func (m *Manifest) Sound(name string) (SoundSpec, bool) {
	for _, snd := range m.Sounds {
		if snd.Name == name {
			return snd, true
		}
	}
	if m.Music != nil && m.Music.Name == name {
		return *m.Music, true
	}
	return SoundSpec{}, false
}

// ImagesForFile returns the image specs backed by the file at path, which may
// be absolute or assets-relative.
func (m *Manifest) ImagesForFile(path string) []ImageSpec {
	target := filepath.ToSlash(filepath.Base(path))
	var out []ImageSpec
	for _, img := range m.Images {
		if filepath.Base(cleanAssetPath(img.File)) == target {
			out = append(out, img)
		}
	}
	return out
}

func clampVolume(v float64) float64 {
	if v <= 0 {
		return 1
	}
	if v > 1 {
		return 1
	}
	return v
}
