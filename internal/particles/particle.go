package particles

// Particle is one slot of the pool. Alpha and Size are recomputed every
// update from the base values; only the base values persist.
type Particle struct {
	X, Y             float64
	OriginX, OriginY float64

	Size, BaseSize   float64
	Color            RGB
	Alpha, BaseAlpha float64

	VX, VY float64

	TwinklePhase float64
	TwinkleSpeed float64

	// Age and lifespan in frames
	Life    float64
	MaxLife float64
}

// LifeRatio returns Life/MaxLife.
func (p *Particle) LifeRatio() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return p.Life / p.MaxLife
}

// Input is the external signal state read by the next update. The host
// overwrites it between frames.
type Input struct {
	PointerX, PointerY float64
	HasPointer         bool
	// In [0,1]
	ScrollProgress float64
}
