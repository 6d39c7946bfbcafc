package canvas

import (
	"image"
	"image/color"
	"log"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
)

var (
	nightSky = colorful.Color{R: 0.04, G: 0.05, B: 0.09}
	sunCore  = colorful.Color{R: 1, G: 0.86, B: 0.6}
)

// Backdrop paints a dusk scene keyed on base: a sky graded from night into
// base, a low sun glow and a dark horizon band. Page images use it in place
// of photographs.
func Backdrop(width, height int, base color.NRGBA) image.Image {
	width, height = max(width, 1), max(height, 1)
	dc := gg.NewContext(width, height)
	w, h := float64(width), float64(height)

	tone, _ := colorful.MakeColor(base)
	if base.A == 0 {
		tone = colorful.Color{R: 0.5, G: 0.3, B: 0.15}
	}

	sky := gg.NewLinearGradientBrush(0, 0, 0, h)
	sky.AddColorStop(0, fromColorful(nightSky.BlendRgb(tone, 0.2), 1))
	sky.AddColorStop(0.65, fromColorful(tone, 1))
	sky.AddColorStop(1, fromColorful(tone.BlendRgb(sunCore, 0.35), 1))
	dc.SetFillBrush(sky)
	dc.DrawRectangle(0, 0, w, h)
	fill(dc, "sky")

	r := max(w, h) * 0.45
	sun := gg.NewRadialGradientBrush(w*0.62, h*0.72, 0, r)
	sun.AddColorStop(0, fromColorful(sunCore, 0.85))
	sun.AddColorStop(0.25, fromColorful(sunCore.BlendRgb(tone, 0.5), 0.4))
	sun.AddColorStop(1, fromColorful(tone, 0))
	dc.SetFillBrush(sun)
	dc.DrawCircle(w*0.62, h*0.72, r)
	fill(dc, "sun")

	dc.SetFillBrush(gg.Solid(fromColorful(nightSky.BlendRgb(tone, 0.1), 0.9)))
	dc.DrawRectangle(0, h*0.82, w, h*0.18)
	fill(dc, "horizon")

	return dc.Image()
}

func fill(dc *gg.Context, what string) {
	if err := dc.Fill(); err != nil {
		log.Printf("[Canvas] Warning: backdrop %s: %v", what, err)
	}
}

func fromColorful(c colorful.Color, alpha float64) gg.RGBA {
	c = c.Clamped()
	return gg.RGBA2(c.R, c.G, c.B, alpha)
}
