package page

import (
	"fmt"
	"strings"
)

// Prop names an animatable style property.
type Prop int

const (
	Opacity Prop = iota
	X
	Y
	YPercent
	Scale
	Rotation
	// Clip is a circle clip radius in percent of the element's
	// normalized diagonal; 0 disables clipping
	Clip
	Brightness
	Saturate

	numProps
)

var propNames = [numProps]string{
	Opacity:    "opacity",
	X:          "x",
	Y:          "y",
	YPercent:   "y_percent",
	Scale:      "scale",
	Rotation:   "rotation",
	Clip:       "clip",
	Brightness: "brightness",
	Saturate:   "saturate",
}

func (p Prop) String() string {
	if p < 0 || p >= numProps {
		return fmt.Sprintf("Prop(%d)", int(p))
	}
	return propNames[p]
}

// ParseProp resolves a property name. Camel-case aliases are accepted.
func ParseProp(name string) (Prop, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "ypercent", "y%":
		return YPercent, nil
	case "rotate":
		return Rotation, nil
	case "clippath", "clip_path":
		return Clip, nil
	}
	for i, pn := range propNames {
		if pn == n {
			return Prop(i), nil
		}
	}
	return 0, fmt.Errorf("unknown style property %q", name)
}

// Style is the animatable look of an element.
type Style struct {
	Opacity    float64
	X, Y       float64
	YPercent   float64
	Scale      float64
	Rotation   float64
	Clip       float64
	Brightness float64
	Saturate   float64
}

// RestStyle is the untransformed, fully visible look.
func RestStyle() Style {
	return Style{Opacity: 1, Scale: 1, Brightness: 1, Saturate: 1}
}

// Get returns the value of p.
func (s *Style) Get(p Prop) float64 {
	switch p {
	case Opacity:
		return s.Opacity
	case X:
		return s.X
	case Y:
		return s.Y
	case YPercent:
		return s.YPercent
	case Scale:
		return s.Scale
	case Rotation:
		return s.Rotation
	case Clip:
		return s.Clip
	case Brightness:
		return s.Brightness
	case Saturate:
		return s.Saturate
	}
	return 0
}

// Set assigns v to p.
func (s *Style) Set(p Prop, v float64) {
	switch p {
	case Opacity:
		s.Opacity = v
	case X:
		s.X = v
	case Y:
		s.Y = v
	case YPercent:
		s.YPercent = v
	case Scale:
		s.Scale = v
	case Rotation:
		s.Rotation = v
	case Clip:
		s.Clip = v
	case Brightness:
		s.Brightness = v
	case Saturate:
		s.Saturate = v
	}
}

// Apply overlays named values onto s.
func (s *Style) Apply(values map[string]float64) error {
	for name, v := range values {
		p, err := ParseProp(name)
		if err != nil {
			return err
		}
		s.Set(p, v)
	}
	return nil
}

// Visible reports whether the element would paint anything.
func (s *Style) Visible() bool {
	return s.Opacity > 0.001 && s.Scale != 0
}
