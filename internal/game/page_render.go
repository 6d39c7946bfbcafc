package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/duskfx/internal/canvas"
	"github.com/iburimskiy/duskfx/internal/page"
)

const (
	// debug font cell size
	glyphW, glyphH = 6, 16

	maxBackdropSize = 1024
)

// placement is where an element lands on screen after styles, ancestor
// transforms, pinning and scrolling.
type placement struct {
	cx, cy  float64
	w, h    float64
	scale   float64
	angle   float64
	opacity float64
}

// place resolves el against the current scroll offset. Opacity and
// translation inherit from ancestors; scale and rotation apply to el alone.
func place(el *page.Element, scrollY float64) placement {
	opacity := 1.0
	var dx, dy float64
	for n := el; n != nil; n = n.Parent {
		s := &n.Style
		opacity *= s.Opacity
		dx += s.X
		dy += s.Y + s.YPercent*n.Box.H/100
	}
	b := el.Box
	return placement{
		cx:      b.X + b.W/2 + dx,
		cy:      b.Y + b.H/2 + dy + el.TotalPin() - scrollY,
		w:       b.W,
		h:       b.H,
		scale:   el.Style.Scale,
		angle:   el.Style.Rotation * math.Pi / 180,
		opacity: clamp01(opacity),
	}
}

// onScreen is a conservative visibility test against the viewport height.
func (p placement) onScreen(viewportH float64) bool {
	extent := math.Hypot(p.w, p.h) * math.Abs(p.scale) / 2
	return p.cy+extent >= 0 && p.cy-extent <= viewportH
}

// clipRadius converts a clip percentage to pixels: percentages refer to
// the box diagonal divided by sqrt(2), as CSS circle() does.
func clipRadius(clip, w, h, scale float64) float64 {
	return clip / 100 * math.Hypot(w, h) / math.Sqrt2 * math.Abs(scale)
}

// artCache holds the rasterized art of image elements. It is filled on
// request, whether or not the element is currently visible.
type artCache struct {
	images map[*page.Element]image.Image
}

func newArtCache() *artCache {
	return &artCache{images: map[*page.Element]image.Image{}}
}

// prepare rasterizes el's art if it has none yet and reports whether el can
// be drawn. Elements without art are always ready.
func (a *artCache) prepare(el *page.Element) bool {
	if el == nil || el.Kind != "image" {
		return true
	}
	return a.get(el) != nil
}

func (a *artCache) get(el *page.Element) image.Image {
	if img, ok := a.images[el]; ok {
		return img
	}
	w := min(int(el.Box.W), maxBackdropSize)
	h := min(int(el.Box.H), maxBackdropSize)
	img := canvas.Backdrop(w, h, el.Color)
	a.images[el] = img
	return img
}

// reset drops all art; it is rebuilt at the new element sizes.
func (a *artCache) reset() { clear(a.images) }

// pageRenderer paints the scrollable part of a page.
type pageRenderer struct {
	white    *ebiten.Image
	art      *artCache
	textures map[*page.Element]*ebiten.Image

	clipBuf *ebiten.Image
	mask    *ebiten.Image

	cm colorm.ColorM
	op colorm.DrawImageOptions
}

func newPageRenderer() *pageRenderer {
	white := ebiten.NewImage(1, 1)
	white.Fill(color.White)
	return &pageRenderer{
		white:    white,
		art:      newArtCache(),
		textures: map[*page.Element]*ebiten.Image{},
	}
}

func (r *pageRenderer) draw(screen *ebiten.Image, pg *page.Page) {
	_, vh := pg.Viewport()
	scroll := pg.ScrollY()
	for _, el := range pg.Elements() {
		if el.Fixed {
			continue
		}
		if el.Kind != "image" && el.Color.A == 0 {
			continue
		}
		p := place(el, scroll)
		if p.opacity <= 0.001 || p.scale == 0 || !p.onScreen(vh) {
			continue
		}
		r.drawElement(screen, el, p)
	}
}

func (r *pageRenderer) drawElement(screen *ebiten.Image, el *page.Element, p placement) {
	tex := r.texture(el)
	tb := tex.Bounds()
	tw, th := float64(tb.Dx()), float64(tb.Dy())

	// local size and center before style transforms
	lw, lh, lcx := p.w, p.h, p.cx
	if el.Kind == "text" && el.Label != "" {
		k := min(p.w/tw, p.h/th)
		lw, lh = tw*k, th*k
		lcx = p.cx - p.w/2 + lw/2
	}

	r.op.GeoM.Reset()
	r.op.GeoM.Scale(lw/tw, lh/th)
	r.op.GeoM.Translate(-lw/2, -lh/2)
	r.op.GeoM.Scale(p.scale, p.scale)
	r.op.GeoM.Rotate(p.angle)
	r.op.GeoM.Translate(lcx, p.cy)
	r.op.Filter = ebiten.FilterLinear

	r.cm.Reset()
	if el.Kind == "image" {
		r.cm.Scale(1, 1, 1, p.opacity)
	} else {
		c := el.Color
		r.cm.Scale(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, float64(c.A)/255*p.opacity)
	}
	if s := el.Style; s.Brightness != 1 || s.Saturate != 1 {
		r.cm.ChangeHSV(0, s.Saturate, s.Brightness)
	}

	if el.Style.Clip <= 0 {
		colorm.DrawImage(screen, tex, r.cm, &r.op)
		return
	}

	r.ensureBuffers(screen)
	r.clipBuf.Clear()
	colorm.DrawImage(r.clipBuf, tex, r.cm, &r.op)

	r.mask.Clear()
	radius := clipRadius(el.Style.Clip, lw, lh, p.scale)
	vector.DrawFilledCircle(r.mask, float32(lcx), float32(p.cy), float32(radius), color.White, true)
	r.clipBuf.DrawImage(r.mask, &ebiten.DrawImageOptions{Blend: ebiten.BlendDestinationIn})
	screen.DrawImage(r.clipBuf, nil)
}

func (r *pageRenderer) ensureBuffers(screen *ebiten.Image) {
	sb := screen.Bounds()
	if r.clipBuf != nil && r.clipBuf.Bounds().Eq(sb) {
		return
	}
	if r.clipBuf != nil {
		r.clipBuf.Deallocate()
		r.mask.Deallocate()
	}
	r.clipBuf = ebiten.NewImage(sb.Dx(), sb.Dy())
	r.mask = ebiten.NewImage(sb.Dx(), sb.Dy())
}

func (r *pageRenderer) texture(el *page.Element) *ebiten.Image {
	if t, ok := r.textures[el]; ok {
		return t
	}

	var t *ebiten.Image
	switch {
	case el.Kind == "image":
		t = ebiten.NewImageFromImage(r.art.get(el))
	case el.Kind == "text" && el.Label != "":
		t = ebiten.NewImage(len(el.Label)*glyphW+2, glyphH)
		ebitenutil.DebugPrint(t, el.Label)
	default:
		t = r.white
	}
	r.textures[el] = t
	return t
}

// release frees every cached texture and the art behind them; both are
// rebuilt on demand.
func (r *pageRenderer) release() {
	r.art.reset()
	for el, t := range r.textures {
		if t != r.white {
			t.Deallocate()
		}
		delete(r.textures, el)
	}
}
