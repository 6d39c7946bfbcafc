package canvas

import (
	"image"
	"log"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/duskfx/internal/particles"
)

// Soft is a software render target backed by a gg context. It is used for
// headless frame dumps and needs no window.
type Soft struct {
	dc *gg.Context
}

var _ particles.Canvas = (*Soft)(nil)

// NewSoft creates a transparent target of the given size.
func NewSoft(width, height int) *Soft {
	return &Soft{dc: gg.NewContext(max(width, 1), max(height, 1))}
}

func (s *Soft) Resize(width, height int) {
	if err := s.dc.Resize(width, height); err != nil {
		log.Printf("[Canvas] Warning: soft resize: %v", err)
	}
}

func (s *Soft) Clear() { s.dc.Clear() }

func (s *Soft) FillRadial(x, y, radius float64, stops []particles.Stop) {
	if radius <= 0 || len(stops) == 0 {
		return
	}
	brush := gg.NewRadialGradientBrush(x, y, 0, radius)
	for _, st := range stops {
		brush.AddColorStop(st.Offset, toRGBA(st.Color, st.Alpha))
	}
	s.dc.SetFillBrush(brush)
	s.dc.DrawCircle(x, y, radius)
	if err := s.dc.Fill(); err != nil {
		log.Printf("[Canvas] Warning: radial fill: %v", err)
	}
}

func (s *Soft) FillCircle(x, y, radius float64, c particles.RGB, alpha float64) {
	if radius <= 0 {
		return
	}
	s.dc.SetFillBrush(gg.Solid(toRGBA(c, alpha)))
	s.dc.DrawCircle(x, y, radius)
	if err := s.dc.Fill(); err != nil {
		log.Printf("[Canvas] Warning: circle fill: %v", err)
	}
}

// Size returns the current target dimensions.
func (s *Soft) Size() (int, int) { return s.dc.Width(), s.dc.Height() }

// Image returns a snapshot of the current pixels.
func (s *Soft) Image() image.Image { return s.dc.Image() }

// SavePNG writes the current pixels to path.
func (s *Soft) SavePNG(path string) error { return s.dc.SavePNG(path) }

func toRGBA(c particles.RGB, alpha float64) gg.RGBA {
	return gg.RGBA2(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
}
