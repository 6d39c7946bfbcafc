package page

import (
	_ "embed"
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed layout.yaml
var defaultLayout []byte

// Layout is the YAML description of a page.
type Layout struct {
	Sections []NodeSpec `yaml:"sections"`
	Overlays []NodeSpec `yaml:"overlays"`
}

// NodeSpec describes one element. Box is [x, y, w, h] as fractions of the
// parent box; for sections only Height (in viewport heights) is used.
type NodeSpec struct {
	ID       string             `yaml:"id"`
	Class    []string           `yaml:"class"`
	Kind     string             `yaml:"kind"`
	Label    string             `yaml:"label"`
	Color    string             `yaml:"color"`
	Height   float64            `yaml:"height"`
	Box      []float64          `yaml:"box"`
	Initial  map[string]float64 `yaml:"initial"`
	Rest     map[string]float64 `yaml:"rest"`
	Children []NodeSpec         `yaml:"children"`
}

// ParseLayout decodes a YAML layout.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if len(l.Sections) == 0 {
		return nil, fmt.Errorf("layout has no sections")
	}
	return &l, nil
}

// LoadLayout reads a layout file; an empty path returns the built-in page.
func LoadLayout(path string) (*Layout, error) {
	if path == "" {
		return ParseLayout(defaultLayout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %q: %w", path, err)
	}
	return ParseLayout(data)
}

// New builds a page from a layout and lays it out for the viewport. Every
// element starts in its initial style.
func New(l *Layout, width, height float64) (*Page, error) {
	p := &Page{
		byID:    map[string]*Element{},
		heights: map[*Element]float64{},
	}

	for i, spec := range l.Sections {
		s, err := buildNode(spec, nil, "section")
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		h := spec.Height
		if h <= 0 {
			h = 1
		}
		p.heights[s] = h
		p.sections = append(p.sections, s)
		if err := p.register(s); err != nil {
			return nil, err
		}
	}
	for i, spec := range l.Overlays {
		o, err := buildNode(spec, nil, "overlay")
		if err != nil {
			return nil, fmt.Errorf("overlay %d: %w", i, err)
		}
		o.Fixed = true
		markFixed(o)
		p.overlays = append(p.overlays, o)
		if err := p.register(o); err != nil {
			return nil, err
		}
	}

	p.Resize(width, height)
	p.Reset(false)
	log.Printf("[Page] Built %d sections, %d elements, document %.0fpx", len(p.sections), len(p.elements), p.docH)
	return p, nil
}

func markFixed(e *Element) {
	for _, c := range e.Children {
		c.Fixed = true
		markFixed(c)
	}
}

func buildNode(spec NodeSpec, parent *Element, defaultKind string) (*Element, error) {
	e := &Element{
		ID:      spec.ID,
		Classes: spec.Class,
		Kind:    spec.Kind,
		Label:   spec.Label,
		Parent:  parent,
		frac:    Rect{W: 1, H: 1},
		Rest:    RestStyle(),
	}
	if e.Kind == "" {
		e.Kind = defaultKind
	}

	if spec.Color != "" {
		c, err := colorful.Hex(spec.Color)
		if err != nil {
			return nil, fmt.Errorf("element %q color: %w", spec.ID, err)
		}
		r, g, b := c.RGB255()
		e.Color = color.NRGBA{R: r, G: g, B: b, A: 255}
	}

	switch len(spec.Box) {
	case 0:
	case 4:
		e.frac = Rect{X: spec.Box[0], Y: spec.Box[1], W: spec.Box[2], H: spec.Box[3]}
	default:
		return nil, fmt.Errorf("element %q box needs 4 values, got %d", spec.ID, len(spec.Box))
	}

	if err := e.Rest.Apply(spec.Rest); err != nil {
		return nil, fmt.Errorf("element %q rest: %w", spec.ID, err)
	}
	e.Initial = e.Rest
	if err := e.Initial.Apply(spec.Initial); err != nil {
		return nil, fmt.Errorf("element %q initial: %w", spec.ID, err)
	}

	for _, cs := range spec.Children {
		c, err := buildNode(cs, e, "block")
		if err != nil {
			return nil, err
		}
		e.Children = append(e.Children, c)
	}
	return e, nil
}
