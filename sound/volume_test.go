package sound

import "testing"

func TestVolumeSetClamps(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{7, 1},
	}
	v := NewVolume(1)
	for _, c := range cases {
		if got := v.Set(c.in); got != c.want {
			t.Fatalf("Set(%v) = %v, want %v", c.in, got, c.want)
		}
		if v.Level() != c.want {
			t.Fatalf("Level after Set(%v) = %v", c.in, v.Level())
		}
	}
}

func TestVolumeMute(t *testing.T) {
	v := NewVolume(0.6)
	if v.Muted() || v.Effective() != 0.6 {
		t.Fatalf("fresh volume should be audible")
	}
	if !v.ToggleMute() {
		t.Fatalf("first toggle should mute")
	}
	if v.Effective() != 0 || v.Level() != 0.6 {
		t.Fatalf("mute should zero effective and keep level: %v %v", v.Effective(), v.Level())
	}
	if v.ToggleMute() {
		t.Fatalf("second toggle should unmute")
	}
	if v.Effective() != 0.6 {
		t.Fatalf("unmute should restore level, got %v", v.Effective())
	}

	v.ToggleMute()
	v.Set(0.2)
	if v.Muted() || v.Effective() != 0.2 {
		t.Fatalf("setting a level should unmute")
	}
}

func TestVolumeStep(t *testing.T) {
	v := NewVolume(0.95)
	if got := v.Step(0.1); got != 1 {
		t.Fatalf("step past max = %v", got)
	}
	v.Set(0.05)
	if got := v.Step(-0.1); got != 0 {
		t.Fatalf("step past min = %v", got)
	}
}
