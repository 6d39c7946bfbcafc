package particles

// Stop is one color stop of a radial gradient. Alpha is in [0,1].
type Stop struct {
	Offset float64
	Color  RGB
	Alpha  float64
}

// Canvas is the render target the field draws into. Implementations must not
// retain the stops slice past the call.
type Canvas interface {
	Resize(width, height int)
	Clear()
	FillRadial(x, y, radius float64, stops []Stop)
	FillCircle(x, y, radius float64, c RGB, alpha float64)
}
