package particles

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/duskfx/internal/config"
)

// Spawn region weights, cumulative: lower-right quadrant, right strip, anywhere.
const (
	regionLowerRight = 0.6
	regionRightStrip = 0.8
)

// Core highlight offsets per channel
const (
	coreBoostR = 40
	coreBoostG = 40
	coreBoostB = 20
)

// Field is the ambient particle overlay: a fixed pool of short-lived glowing
// points that drift up and left from a light source in the lower right.
//
// The host owns the loop and calls Tick once per display frame. Pointer and
// scroll signals are plain fields written between frames; nothing here is
// safe for concurrent use.
type Field struct {
	canvas  Canvas
	pool    []Particle
	cfg     config.ParticleSettings
	palette Palette
	rng     *rand.Rand

	width, height float64
	input         Input

	// scratch reused by every draw call
	stops [3]Stop

	drawn int
}

// Option configures a Field.
type Option func(*Field)

// WithRand sets the random source. Tests use a fixed seed.
func WithRand(r *rand.Rand) Option {
	return func(f *Field) { f.rng = r }
}

// WithSettings overrides the particle tuning.
func WithSettings(s config.ParticleSettings) Option {
	return func(f *Field) {
		s.Validate()
		f.cfg = s
	}
}

// WithPalette overrides the spawn colors.
func WithPalette(p Palette) Option {
	return func(f *Field) {
		if p.Len() > 0 {
			f.palette = p
		}
	}
}

// New creates the field against a render target of the given size and fills
// the pool with staggered lifetimes. A nil canvas yields an inert field that
// spawns nothing and ignores Tick.
func New(canvas Canvas, width, height int, opts ...Option) *Field {
	f := &Field{
		canvas: canvas,
		cfg:    config.DefaultParticles(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if f.palette.Len() == 0 {
		p, err := NewPalette(f.cfg.Palette...)
		if err != nil {
			log.Printf("[Particles] Warning: %v, using dusk palette", err)
			p = DuskPalette
		}
		f.palette = p
	}

	if canvas == nil {
		log.Printf("[Particles] No render target, field disabled")
		return f
	}

	f.Resize(width, height)
	f.pool = make([]Particle, f.cfg.PoolSize)
	for i := range f.pool {
		f.spawn(&f.pool[i])
		f.pool[i].Life = f.rng.Float64() * f.pool[i].MaxLife
	}
	return f
}

// Enabled reports whether the field has a render target.
func (f *Field) Enabled() bool { return f.canvas != nil }

// Len returns the pool size; zero for an inert field.
func (f *Field) Len() int { return len(f.pool) }

// Particle returns a copy of slot i.
func (f *Field) Particle(i int) Particle { return f.pool[i] }

// Drawn returns how many particles passed the alpha cutoff in the last draw.
func (f *Field) Drawn() int { return f.drawn }

// Size returns the current render target size.
func (f *Field) Size() (float64, float64) { return f.width, f.height }

// Resize resynchronizes the render target with the viewport. Particles keep
// their positions; after a shrink some may sit outside until they drift or
// respawn.
func (f *Field) Resize(width, height int) {
	if f.canvas == nil {
		return
	}
	f.width, f.height = float64(width), float64(height)
	f.canvas.Resize(width, height)
}

// SetPointer records the last known pointer position in viewport coordinates.
func (f *Field) SetPointer(x, y float64) {
	f.input.PointerX, f.input.PointerY = x, y
	f.input.HasPointer = true
}

// SetScrollProgress records the page scroll ratio, clamped to [0,1].
func (f *Field) SetScrollProgress(p float64) {
	f.input.ScrollProgress = clamp01(p)
}

// Input returns the signal state the next update will read.
func (f *Field) Input() Input { return f.input }

// Tick runs one frame: update then draw.
func (f *Field) Tick() {
	if f.canvas == nil {
		return
	}
	f.Update()
	f.Draw()
}

// Update advances every slot by one frame.
func (f *Field) Update() {
	dim := f.ScrollDim()
	for i := range f.pool {
		p := &f.pool[i]

		p.Life++
		if p.Life >= p.MaxLife {
			f.spawn(p)
			continue
		}

		p.X += p.VX
		p.Y += p.VY

		if f.input.HasPointer {
			dx, dy := f.repel(p.X-f.input.PointerX, p.Y-f.input.PointerY, p.VX, p.VY)
			p.X += dx
			p.Y += dy
		}

		p.TwinklePhase += p.TwinkleSpeed
		twinkle := math.Sin(p.TwinklePhase)*0.5 + 0.5
		p.Alpha = p.BaseAlpha * twinkle * dim
		p.Size = p.BaseSize * (0.8 + 0.4*twinkle)
		p.Alpha *= f.envelope(p.LifeRatio())
	}
}

// Draw clears the target and paints every visible particle in pool order:
// a soft radial glow followed by a brighter core.
func (f *Field) Draw() {
	if f.canvas == nil {
		return
	}
	f.canvas.Clear()
	f.drawn = 0

	for i := range f.pool {
		p := &f.pool[i]
		if p.Alpha <= f.cfg.AlphaCutoff {
			continue
		}

		f.stops[0] = Stop{Offset: 0, Color: p.Color, Alpha: p.Alpha}
		f.stops[1] = Stop{Offset: f.cfg.GlowMid, Color: p.Color, Alpha: p.Alpha * f.cfg.GlowMidA}
		f.stops[2] = Stop{Offset: 1, Color: p.Color, Alpha: 0}
		f.canvas.FillRadial(p.X, p.Y, p.Size*f.cfg.GlowScale, f.stops[:])

		core := p.Color.Brighten(coreBoostR, coreBoostG, coreBoostB)
		f.canvas.FillCircle(p.X, p.Y, p.Size*f.cfg.CoreScale, core, p.Alpha*f.cfg.CoreAlpha)
		f.drawn++
	}
}

// ScrollDim is the global brightness factor: 1 at the top of the page,
// 1-ScrollDim at the bottom.
func (f *Field) ScrollDim() float64 {
	return 1 - f.cfg.ScrollDim*f.input.ScrollProgress
}

// envelope fades alpha in over the first FadeIn of life and out over the
// last FadeOut.
func (f *Field) envelope(ratio float64) float64 {
	switch {
	case f.cfg.FadeIn > 0 && ratio < f.cfg.FadeIn:
		return ratio / f.cfg.FadeIn
	case f.cfg.FadeOut > 0 && ratio > 1-f.cfg.FadeOut:
		return (1 - ratio) / f.cfg.FadeOut
	}
	return 1
}

// repel returns the displacement pushing a particle at offset (dx, dy) from
// the pointer away from it. Zero outside RepelRadius; at zero distance the
// push follows the particle's drift (vx, vy), or goes straight up.
func (f *Field) repel(dx, dy, vx, vy float64) (float64, float64) {
	radius := f.cfg.RepelRadius
	dist := math.Hypot(dx, dy)
	if radius <= 0 || dist >= radius {
		return 0, 0
	}

	force := (radius - dist) / radius * f.cfg.RepelStrength
	if dist == 0 {
		speed := math.Hypot(vx, vy)
		if speed == 0 {
			return 0, -force
		}
		return vx / speed * force, vy / speed * force
	}
	return dx / dist * force, dy / dist * force
}

// spawn overwrites p with a fresh particle.
func (f *Field) spawn(p *Particle) {
	r := f.rng
	var x, y float64
	switch area := r.Float64(); {
	case area < regionLowerRight:
		x = f.width * (0.6 + r.Float64()*0.4)
		y = f.height * (0.6 + r.Float64()*0.4)
	case area < regionRightStrip:
		x = f.width * (0.8 + r.Float64()*0.2)
		y = r.Float64() * f.height
	default:
		x = r.Float64() * f.width
		y = r.Float64() * f.height
	}

	c := &f.cfg
	size := c.SizeMin + r.Float64()*(c.SizeMax-c.SizeMin)
	*p = Particle{
		X:            x,
		Y:            y,
		OriginX:      x,
		OriginY:      y,
		Size:         size,
		BaseSize:     size,
		Color:        f.palette.At(r.Float64()),
		BaseAlpha:    c.AlphaMin + r.Float64()*(c.AlphaMax-c.AlphaMin),
		VX:           (r.Float64() - c.DriftBias) * c.DriftScaleX,
		VY:           (r.Float64() - c.DriftBias) * c.DriftScaleY,
		TwinkleSpeed: c.TwinkleSpeedMin + r.Float64()*(c.TwinkleSpeedMax-c.TwinkleSpeedMin),
		TwinklePhase: r.Float64() * 2 * math.Pi,
		MaxLife:      c.LifeMin + r.Float64()*(c.LifeMax-c.LifeMin),
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
