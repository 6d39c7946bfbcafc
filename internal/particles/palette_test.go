package particles

import "testing"

func TestPalette_Anchors(t *testing.T) {
	tests := []struct {
		name string
		t    float64
		want RGB
	}{
		{"first anchor", 0, RGB{232, 145, 58}},
		{"second anchor", 1.0 / 3, RGB{240, 176, 96}},
		{"last anchor", 1, RGB{42, 90, 124}},
		{"clamped above", 1.7, RGB{42, 90, 124}},
		{"clamped below", -0.3, RGB{232, 145, 58}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DuskPalette.At(tt.t); got != tt.want {
				t.Errorf("At(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestPalette_LinearBlend(t *testing.T) {
	p := MustPalette("#000000", "#c8c8c8")

	tests := []struct {
		t    float64
		want uint8
	}{
		{0.25, 50},
		{0.5, 100},
		{0.75, 150},
	}
	for _, tt := range tests {
		got := p.At(tt.t)
		if got.R != tt.want || got.G != tt.want || got.B != tt.want {
			t.Errorf("At(%v) = %v, want gray %d", tt.t, got, tt.want)
		}
	}
}

func TestPalette_BlendBracketsAnchors(t *testing.T) {
	// halfway between deep orange and blue
	got := DuskPalette.At(5.0 / 6)
	want := [3]float64{(200 + 42) / 2.0, (110 + 90) / 2.0, (47 + 124) / 2.0}
	channels := [3]uint8{got.R, got.G, got.B}
	for i := range want {
		if d := float64(channels[i]) - want[i]; d < -1 || d > 1 {
			t.Errorf("channel %d = %d, want about %.1f", i, channels[i], want[i])
		}
	}
}

func TestPalette_Errors(t *testing.T) {
	if _, err := NewPalette(); err == nil {
		t.Error("empty palette should fail")
	}
	if _, err := NewPalette("#zzzzzz"); err == nil {
		t.Error("malformed anchor should fail")
	}
}

func TestRGB_Brighten(t *testing.T) {
	c := RGB{R: 230, G: 100, B: 240}
	got := c.Brighten(40, 40, 20)
	want := RGB{R: 255, G: 140, B: 255}
	if got != want {
		t.Errorf("Brighten = %v, want %v", got, want)
	}
}
