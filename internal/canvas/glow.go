package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/duskfx/internal/particles"
)

// GlowProfile is a radial falloff normalized to the first stop: offsets and
// alpha ratios only, color comes from tinting. A sprite rasterized for one
// profile can draw any stops that match it.
type GlowProfile struct {
	offsets []float64
	ratios  []float64
}

// NewGlowProfile normalizes stops. It fails when the first stop is invisible.
func NewGlowProfile(stops []particles.Stop) (GlowProfile, bool) {
	if len(stops) == 0 || stops[0].Alpha <= 0 {
		return GlowProfile{}, false
	}
	p := GlowProfile{
		offsets: make([]float64, len(stops)),
		ratios:  make([]float64, len(stops)),
	}
	for i, st := range stops {
		p.offsets[i] = st.Offset
		p.ratios[i] = st.Alpha / stops[0].Alpha
	}
	return p, true
}

// Matches reports whether stops have the same normalized shape.
func (p GlowProfile) Matches(stops []particles.Stop) bool {
	if len(stops) != len(p.offsets) || len(stops) == 0 || stops[0].Alpha <= 0 {
		return false
	}
	for i, st := range stops {
		if math.Abs(st.Offset-p.offsets[i]) > 1e-9 {
			return false
		}
		if math.Abs(st.Alpha/stops[0].Alpha-p.ratios[i]) > 1e-6 {
			return false
		}
	}
	return true
}

// GlowSprite rasterizes a white radial falloff of the given diameter. Alpha
// follows the profile; pixels outside the circle are transparent.
func GlowSprite(size int, stops []particles.Stop) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	prof, ok := NewGlowProfile(stops)
	if !ok || size <= 0 {
		return img
	}

	r := float64(size) / 2
	brush := gg.NewRadialGradientBrush(r, r, 0, r)
	for i := range prof.offsets {
		brush.AddColorStop(prof.offsets[i], gg.RGBA2(1, 1, 1, prof.ratios[i]))
	}

	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			cx, cy := float64(px)+0.5, float64(py)+0.5
			if math.Hypot(cx-r, cy-r) > r {
				continue
			}
			a := brush.ColorAt(cx, cy).A
			img.SetNRGBA(px, py, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(clamp01(a) * 255))})
		}
	}
	return img
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
