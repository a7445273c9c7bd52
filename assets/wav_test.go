package assets

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

// wavBytes builds a mono 16-bit PCM wav holding samples frames of silence.
func wavBytes(samples int) []byte {
	data := make([]byte, samples*2)
	b := make([]byte, 0, 44+len(data))
	b = append(b, "RIFF"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(36+len(data)))
	b = append(b, "WAVEfmt "...)
	b = binary.LittleEndian.AppendUint32(b, 16)
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint32(b, 44100)
	b = binary.LittleEndian.AppendUint32(b, 44100*2)
	b = binary.LittleEndian.AppendUint16(b, 2)
	b = binary.LittleEndian.AppendUint16(b, 16)
	b = append(b, "data"...)
	b = binary.LittleEndian.AppendUint32(b, uint32(len(data)))
	return append(b, data...)
}

func TestCheckWAV(t *testing.T) {
	valid := wavBytes(8)

	withList := append([]byte{}, valid[:12]...)
	withList = append(withList, "LIST\x03\x00\x00\x00abc\x00"...)
	withList = append(withList, valid[12:]...)

	cases := []struct {
		name string
		data []byte
		ok   bool
	}{
		{"valid", valid, true},
		{"empty_data", wavBytes(0), true},
		{"extra_chunk_padded", withList, true},
		{"header_only", []byte("RIFF\x00\x00\x00\x00WAVE"), false},
		{"header_junk", []byte("RIFF\x00\x00\x00\x00WAVEjunk"), false},
		{"no_data_chunk", valid[:36], false},
		{"truncated_samples", valid[:len(valid)-4], false},
		{"short_fmt", valid[:24], false},
		{"ogg", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00"), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := checkWAV(c.data)
			if c.ok && err != nil {
				t.Fatalf("expected valid wav, got %v", err)
			}
			if !c.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestCheckWAVEmbedded(t *testing.T) {
	for _, name := range []string{"chop.wav", "fizzle.wav", "stoke.wav", "music.wav"} {
		b, err := ReadFile(Embedded(), name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := checkWAV(b); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestLoadAudioRejectsHeaderOnly(t *testing.T) {
	fsys := fstest.MapFS{"s.wav": {Data: []byte("RIFF\x00\x00\x00\x00WAVEjunk")}}
	_, err := NewLoader(fsys, 1).LoadAudio("s.wav")
	if err == nil || !strings.Contains(err.Error(), "missing fmt chunk") {
		t.Fatalf("expected missing fmt chunk error, got %v", err)
	}
	if _, err := NewLoader(fsys, 1).LoadAudio("absent.wav"); errors.Is(err, errNotWAV) {
		t.Fatalf("read failure reported as format error: %v", err)
	}
}
