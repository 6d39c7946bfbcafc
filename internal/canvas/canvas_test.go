package canvas

import (
	"go/build"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/iburimskiy/duskfx/internal/particles"
)

var duskStops = []particles.Stop{
	{Offset: 0, Color: particles.RGB{R: 232, G: 145, B: 58}, Alpha: 0.6},
	{Offset: 0.4, Color: particles.RGB{R: 232, G: 145, B: 58}, Alpha: 0.18},
	{Offset: 1, Color: particles.RGB{R: 232, G: 145, B: 58}, Alpha: 0},
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a >> 8
}

func TestGlowSprite_Falloff(t *testing.T) {
	img := GlowSprite(64, duskStops)

	center := img.NRGBAAt(32, 32)
	if center.R != 255 || center.G != 255 || center.B != 255 {
		t.Errorf("sprite center color = %v, want white", center)
	}
	if center.A < 230 {
		t.Errorf("center alpha = %d, want near 255", center.A)
	}

	mid := img.NRGBAAt(32+13, 32).A // about 40% of the radius
	if mid < 60 || mid > 100 {
		t.Errorf("alpha at 40%% radius = %d, want about 76", mid)
	}
	if corner := img.NRGBAAt(0, 0).A; corner != 0 {
		t.Errorf("corner alpha = %d, want 0", corner)
	}

	prev := uint8(255)
	for x := 32; x < 64; x++ {
		a := img.NRGBAAt(x, 32).A
		if a > prev {
			t.Fatalf("alpha increases outward at x=%d: %d > %d", x, a, prev)
		}
		prev = a
	}
}

func TestGlowSprite_EmptyProfile(t *testing.T) {
	img := GlowSprite(16, []particles.Stop{{Offset: 0, Alpha: 0}})
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if a := img.NRGBAAt(x, y).A; a != 0 {
				t.Fatalf("pixel (%d, %d) alpha %d, want transparent", x, y, a)
			}
		}
	}
}

func TestGlowProfile_Matches(t *testing.T) {
	prof, ok := NewGlowProfile(duskStops)
	if !ok {
		t.Fatal("NewGlowProfile rejected a visible gradient")
	}

	// same shape at a different brightness and color
	dimmer := []particles.Stop{
		{Offset: 0, Color: particles.RGB{R: 42, G: 90, B: 124}, Alpha: 0.2},
		{Offset: 0.4, Color: particles.RGB{R: 42, G: 90, B: 124}, Alpha: 0.06},
		{Offset: 1, Color: particles.RGB{R: 42, G: 90, B: 124}, Alpha: 0},
	}
	if !prof.Matches(dimmer) {
		t.Error("scaled stops should match the profile")
	}

	other := append([]particles.Stop(nil), duskStops...)
	other[1].Offset = 0.5
	if prof.Matches(other) {
		t.Error("moved mid stop should not match")
	}
	if prof.Matches(duskStops[:2]) {
		t.Error("different stop count should not match")
	}
}

func TestSoft_DrawAndClear(t *testing.T) {
	s := NewSoft(100, 100)

	s.FillRadial(50, 50, 30, duskStops)
	img := s.Image()

	center := alphaAt(img, 50, 50)
	inner := alphaAt(img, 62, 50)
	outside := alphaAt(img, 85, 50)
	if center == 0 {
		t.Fatal("glow center is transparent")
	}
	if inner >= center {
		t.Errorf("alpha at 12px (%d) not below center (%d)", inner, center)
	}
	if outside != 0 {
		t.Errorf("alpha outside radius = %d, want 0", outside)
	}

	s.FillCircle(20, 20, 4, particles.RGB{R: 255, G: 185, B: 78}, 1)
	if a := alphaAt(s.Image(), 20, 20); a < 250 {
		t.Errorf("opaque core alpha = %d", a)
	}

	s.Clear()
	img = s.Image()
	for _, pt := range [][2]int{{50, 50}, {20, 20}} {
		if a := alphaAt(img, pt[0], pt[1]); a != 0 {
			t.Errorf("pixel %v alpha %d after clear", pt, a)
		}
	}
}

func TestSoft_Resize(t *testing.T) {
	s := NewSoft(1920, 1080)
	s.Resize(800, 600)
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("size = %dx%d, want 800x600", w, h)
	}
	if b := s.Image().Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("image bounds = %v", b)
	}

	s.Resize(0, 600)
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("invalid resize changed size to %dx%d", w, h)
	}
}

func TestSoft_WithField(t *testing.T) {
	s := NewSoft(320, 240)
	f := particles.New(s, 320, 240)
	for i := 0; i < 120; i++ {
		f.Tick()
	}
	if f.Drawn() == 0 {
		t.Fatal("no particles drawn after warm-up")
	}

	lit := 0
	img := s.Image()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x += 2 {
			if alphaAt(img, x, y) > 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("field drew particles but no pixel is lit")
	}
}

func TestBackdrop(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		base color.NRGBA
	}{
		{"warm", 120, 80, color.NRGBA{R: 200, G: 110, B: 50, A: 255}},
		{"no base color", 64, 64, color.NRGBA{}},
		{"degenerate size", 0, -5, color.NRGBA{R: 40, G: 90, B: 120, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := Backdrop(tt.w, tt.h, tt.base)
			b := img.Bounds()
			if b.Dx() != max(tt.w, 1) || b.Dy() != max(tt.h, 1) {
				t.Fatalf("bounds = %v", b)
			}
			if a := alphaAt(img, b.Min.X, b.Min.Y); a < 250 {
				t.Errorf("top-left alpha = %d, want opaque sky", a)
			}
		})
	}
}

func TestImports_NoWindowSystem(t *testing.T) {
	pkg, err := build.ImportDir(".", 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, imp := range pkg.Imports {
		if strings.HasPrefix(imp, "github.com/hajimehoshi/ebiten") {
			t.Errorf("canvas imports %s; the headless frame tool must build without a window system", imp)
		}
	}
}
