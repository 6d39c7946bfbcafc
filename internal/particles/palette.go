package particles

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Brighten adds the per-channel offsets, saturating at 255.
func (c RGB) Brighten(dr, dg, db int) RGB {
	return RGB{R: addSat(c.R, dr), G: addSat(c.G, dg), B: addSat(c.B, db)}
}

func addSat(v uint8, d int) uint8 {
	n := int(v) + d
	if n > 255 {
		return 255
	}
	if n < 0 {
		return 0
	}
	return uint8(n)
}

// Palette is an ordered list of color anchors sampled by linear interpolation.
type Palette struct {
	anchors []colorful.Color
}

// DuskPalette runs warm orange, gold, deep orange, then cool blue.
var DuskPalette = MustPalette("#e8913a", "#f0b060", "#c86e2f", "#2a5a7c")

// NewPalette parses #rrggbb anchors.
func NewPalette(hexes ...string) (Palette, error) {
	if len(hexes) == 0 {
		return Palette{}, fmt.Errorf("palette needs at least one anchor")
	}
	anchors := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette anchor %q: %w", h, err)
		}
		anchors = append(anchors, c)
	}
	return Palette{anchors: anchors}, nil
}

// MustPalette is NewPalette that panics on malformed anchors.
func MustPalette(hexes ...string) Palette {
	p, err := NewPalette(hexes...)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of anchors.
func (p Palette) Len() int { return len(p.anchors) }

// At samples the palette at t, clamped to [0,1]. t=0 is the first anchor,
// t=1 the last; values in between blend the two bracketing anchors
// component-wise and round to the nearest integer.
func (p Palette) At(t float64) RGB {
	n := len(p.anchors)
	if n == 0 {
		return RGB{}
	}
	if n == 1 || math.IsNaN(t) || t <= 0 {
		r, g, b := p.anchors[0].RGB255()
		return RGB{R: r, G: g, B: b}
	}
	if t > 1 {
		t = 1
	}

	pos := t * float64(n-1)
	idx := int(math.Floor(pos))
	next := min(idx+1, n-1)
	local := pos - float64(idx)

	r, g, b := p.anchors[idx].BlendRgb(p.anchors[next], local).RGB255()
	return RGB{R: r, G: g, B: b}
}
