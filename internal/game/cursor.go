package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/duskfx/internal/config"
)

var (
	cursorDotColor      = color.NRGBA{R: 232, G: 145, B: 58, A: 255}
	cursorFollowerColor = color.NRGBA{R: 240, G: 176, B: 96, A: 140}
)

type point struct{ x, y float64 }

// cursor is a dot that tracks the pointer closely and a ring that trails
// behind it.
type cursor struct {
	cfg     config.CursorSettings
	enabled bool

	target   point
	dot      point
	follower point
}

func newCursor(cfg config.CursorSettings, viewportWidth int) *cursor {
	c := &cursor{cfg: cfg}
	c.resize(viewportWidth)
	return c
}

// resize turns the cursor off on narrow viewports.
func (c *cursor) resize(viewportWidth int) {
	c.enabled = c.cfg.Enabled && viewportWidth > config.MobileBreakpoint
}

func (c *cursor) setPointer(x, y float64) { c.target = point{x, y} }

// update eases both marks one frame toward the pointer.
func (c *cursor) update() {
	if !c.enabled {
		return
	}
	c.dot.x += (c.target.x - c.dot.x) * c.cfg.DotEase
	c.dot.y += (c.target.y - c.dot.y) * c.cfg.DotEase
	c.follower.x += (c.target.x - c.follower.x) * c.cfg.FollowerEase
	c.follower.y += (c.target.y - c.follower.y) * c.cfg.FollowerEase
}

// offsets returns the top-left corners the marks are drawn at.
func (c *cursor) offsets() (dot, follower point) {
	return point{c.dot.x - c.cfg.DotRadius, c.dot.y - c.cfg.DotRadius},
		point{c.follower.x - c.cfg.FollowerRadius, c.follower.y - c.cfg.FollowerRadius}
}

func (c *cursor) draw(screen *ebiten.Image) {
	if !c.enabled {
		return
	}
	dot, fol := c.offsets()
	vector.StrokeCircle(screen,
		float32(fol.x+c.cfg.FollowerRadius), float32(fol.y+c.cfg.FollowerRadius),
		float32(c.cfg.FollowerRadius), 1.5, cursorFollowerColor, true)
	vector.DrawFilledCircle(screen,
		float32(dot.x+c.cfg.DotRadius), float32(dot.y+c.cfg.DotRadius),
		float32(c.cfg.DotRadius), cursorDotColor, true)
}
