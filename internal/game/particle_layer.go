package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/duskfx/internal/canvas"
	"github.com/iburimskiy/duskfx/internal/particles"
)

// glowSpriteSize is the sprite diameter in pixels; glows are scaled from it.
const glowSpriteSize = 128

// particleLayer is the live render target for the particle field: an
// offscreen ebiten image composited over the page each frame. Radial glows
// are drawn by tinting a pre-rasterized white falloff sprite, which assumes
// every stop of a glow shares the first stop's color.
type particleLayer struct {
	img *ebiten.Image

	glow    *ebiten.Image
	profile canvas.GlowProfile

	op ebiten.DrawImageOptions
}

var _ particles.Canvas = (*particleLayer)(nil)

func newParticleLayer(width, height int) *particleLayer {
	l := &particleLayer{}
	l.Resize(width, height)
	return l
}

func (l *particleLayer) Resize(width, height int) {
	width, height = max(width, 1), max(height, 1)
	if l.img != nil {
		if b := l.img.Bounds(); b.Dx() == width && b.Dy() == height {
			return
		}
		l.img.Deallocate()
	}
	l.img = ebiten.NewImage(width, height)
}

func (l *particleLayer) Clear() { l.img.Clear() }

func (l *particleLayer) FillRadial(x, y, radius float64, stops []particles.Stop) {
	if radius <= 0 || len(stops) == 0 || stops[0].Alpha <= 0 {
		return
	}
	if l.glow == nil || !l.profile.Matches(stops) {
		l.rebuildGlow(stops)
	}

	c, a := stops[0].Color, stops[0].Alpha
	scale := 2 * radius / glowSpriteSize

	l.op.GeoM.Reset()
	l.op.GeoM.Scale(scale, scale)
	l.op.GeoM.Translate(x-radius, y-radius)
	l.op.ColorScale.Reset()
	// sprite is premultiplied white
	l.op.ColorScale.Scale(
		float32(float64(c.R)/255*a),
		float32(float64(c.G)/255*a),
		float32(float64(c.B)/255*a),
		float32(a),
	)
	l.op.Filter = ebiten.FilterLinear
	l.img.DrawImage(l.glow, &l.op)
}

func (l *particleLayer) FillCircle(x, y, radius float64, c particles.RGB, alpha float64) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	clr := color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(alpha)*255 + 0.5)}
	vector.DrawFilledCircle(l.img, float32(x), float32(y), float32(radius), clr, true)
}

// drawTo composites the layer onto dst.
func (l *particleLayer) drawTo(dst *ebiten.Image) {
	dst.DrawImage(l.img, nil)
}

func (l *particleLayer) rebuildGlow(stops []particles.Stop) {
	prof, ok := canvas.NewGlowProfile(stops)
	if !ok {
		return
	}
	if l.glow != nil {
		l.glow.Deallocate()
	}
	l.glow = ebiten.NewImageFromImage(canvas.GlowSprite(glowSpriteSize, stops))
	l.profile = prof
}
