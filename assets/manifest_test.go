package assets

import (
	"strings"
	"testing"
)

func TestParseManifest(t *testing.T) {
	cases := []struct {
		name     string
		src      string
		wantErr  string
		wantKeys []string
	}{
		{
			name: "full",
			src: `
title: test
images:
  - name: sheet
    file: sheet.png
sounds:
  - name: hit
    file: hit.wav
    volume: 3
music:
  file: loop.wav
  loop: true
`,
			wantKeys: []string{"sheet", "hit", "music"},
		},
		{
			name:    "empty",
			src:     "title: nothing\n",
			wantErr: "declares no assets",
		},
		{
			name: "duplicate",
			src: `
images:
  - name: a
    file: a.png
sounds:
  - name: a
    file: a.wav
`,
			wantErr: `duplicate asset name "a"`,
		},
		{
			name: "missing_file",
			src: `
images:
  - name: a
`,
			wantErr: "has no file",
		},
		{
			name: "missing_name",
			src: `
sounds:
  - file: a.wav
`,
			wantErr: "has no name",
		},
		{
			name:    "bad_yaml",
			src:     "images: [",
			wantErr: "unmarshal manifest",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(c.src))
			if c.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), c.wantErr) {
					t.Fatalf("expected error containing %q, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			keys := m.Keys()
			if len(keys) != len(c.wantKeys) {
				t.Fatalf("expected keys %v, got %v", c.wantKeys, keys)
			}
			for i := range keys {
				if keys[i] != c.wantKeys[i] {
					t.Fatalf("expected keys %v, got %v", c.wantKeys, keys)
				}
			}
		})
	}
}

func TestManifestVolumesAndLookup(t *testing.T) {
	m, err := ParseManifest([]byte(`
sounds:
  - name: loud
    file: loud.wav
    volume: 4
  - name: unset
    file: unset.wav
  - name: quiet
    file: quiet.wav
    volume: 0.25
music:
  name: theme
  file: theme.wav
  volume: 0.5
`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}

	cases := map[string]float64{"loud": 1, "unset": 1, "quiet": 0.25, "theme": 0.5}
	for name, want := range cases {
		snd, ok := m.Sound(name)
		if !ok {
			t.Fatalf("sound %q not found", name)
		}
		if snd.Volume != want {
			t.Fatalf("%s: expected volume %v, got %v", name, want, snd.Volume)
		}
	}
	if _, ok := m.Sound("nope"); ok {
		t.Fatalf("unknown sound should not resolve")
	}
}

func TestManifestImagesForFile(t *testing.T) {
	m, err := ParseManifest([]byte(`
images:
  - name: sheet
    file: assets/sprites/sheet.png
  - name: other
    file: other.png
`))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}
	got := m.ImagesForFile("/home/dev/game/assets/sprites/sheet.png")
	if len(got) != 1 || got[0].Name != "sheet" {
		t.Fatalf("unexpected match: %v", got)
	}
	if got := m.ImagesForFile("music.wav"); len(got) != 0 {
		t.Fatalf("expected no match, got %v", got)
	}
}

func TestEmbeddedManifest(t *testing.T) {
	m, err := LoadManifest(Embedded(), DefaultManifest)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Title == "" {
		t.Fatalf("embedded manifest has no title")
	}
	if m.Verdict == "" {
		t.Fatalf("embedded manifest has no verdict script")
	}
	for _, name := range []string{"spritesheet", "stoke", "chop", "fizzle", "music"} {
		found := false
		for _, k := range m.Keys() {
			if k == name {
				found = true
			}
		}
		if !found {
			t.Fatalf("embedded manifest missing %q", name)
		}
	}
}
