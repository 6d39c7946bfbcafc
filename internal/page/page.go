package page

import (
	"fmt"
	"image/color"
	"strings"
)

// Rect is an axis-aligned box in document pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Bottom() float64 { return r.Y + r.H }

// Element is one node of the page. Boxes are layout positions, before any
// style transform or pin offset.
type Element struct {
	ID      string
	Classes []string
	Kind    string
	Label   string
	Color   color.NRGBA
	Fixed   bool

	Parent   *Element
	Children []*Element

	Box Rect

	Initial Style
	Rest    Style
	Style   Style

	// PinOffset is added to Y while an ancestor pin holds the element in place
	PinOffset float64

	// frac is the box relative to the parent box (or section) in fractions
	frac Rect
}

// HasClass reports whether e carries class c.
func (e *Element) HasClass(c string) bool {
	for _, cls := range e.Classes {
		if cls == c {
			return true
		}
	}
	return false
}

// Ancestor reports whether a is e or one of its ancestors.
func (e *Element) Ancestor(a *Element) bool {
	for n := e; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// TotalPin sums the pin offsets of e and its ancestors.
func (e *Element) TotalPin() float64 {
	var sum float64
	for n := e; n != nil; n = n.Parent {
		sum += n.PinOffset
	}
	return sum
}

func (e *Element) String() string {
	if e.ID != "" {
		return "#" + e.ID
	}
	if len(e.Classes) > 0 {
		return "." + e.Classes[0]
	}
	return e.Kind
}

// Page is a virtual scrollable document: sections stacked vertically plus
// fixed overlays positioned against the viewport.
type Page struct {
	viewportW, viewportH float64
	docH                 float64
	scrollY              float64

	sections []*Element
	overlays []*Element
	elements []*Element // document order, overlays last
	byID     map[string]*Element

	// section heights in viewport units
	heights map[*Element]float64
}

// Viewport returns the viewport size.
func (p *Page) Viewport() (float64, float64) { return p.viewportW, p.viewportH }

// DocumentHeight returns the total laid-out height.
func (p *Page) DocumentHeight() float64 { return p.docH }

// Elements returns all elements in document order. Do not modify the slice.
func (p *Page) Elements() []*Element { return p.elements }

// Sections returns the top-level sections.
func (p *Page) Sections() []*Element { return p.sections }

// ByID returns the element with the given id, or nil.
func (p *Page) ByID(id string) *Element { return p.byID[strings.TrimPrefix(id, "#")] }

// Resize relays out every box for a new viewport. Scroll is clamped to the
// new range.
func (p *Page) Resize(width, height float64) {
	p.viewportW, p.viewportH = width, height
	y := 0.0
	for _, s := range p.sections {
		h := p.heights[s] * height
		s.Box = Rect{X: 0, Y: y, W: width, H: h}
		layoutChildren(s)
		y += h
	}
	p.docH = y
	for _, o := range p.overlays {
		o.Box = Rect{X: o.frac.X * width, Y: o.frac.Y * height, W: o.frac.W * width, H: o.frac.H * height}
		layoutChildren(o)
	}
	p.SetScroll(p.scrollY)
}

func layoutChildren(parent *Element) {
	for _, c := range parent.Children {
		c.Box = Rect{
			X: parent.Box.X + c.frac.X*parent.Box.W,
			Y: parent.Box.Y + c.frac.Y*parent.Box.H,
			W: c.frac.W * parent.Box.W,
			H: c.frac.H * parent.Box.H,
		}
		layoutChildren(c)
	}
}

// ScrollY returns the current scroll offset.
func (p *Page) ScrollY() float64 { return p.scrollY }

// MaxScroll is documentHeight - viewportHeight, or 0 if the page fits.
func (p *Page) MaxScroll() float64 {
	return max(p.docH-p.viewportH, 0)
}

// SetScroll moves the viewport to y, clamped to [0, MaxScroll].
func (p *Page) SetScroll(y float64) {
	p.scrollY = min(max(y, 0), p.MaxScroll())
}

// ScrollBy moves the viewport by dy.
func (p *Page) ScrollBy(dy float64) { p.SetScroll(p.scrollY + dy) }

// ScrollProgress maps the scroll offset to [0,1].
func (p *Page) ScrollProgress() float64 {
	return Progress(p.scrollY, p.docH, p.viewportH)
}

// Progress is scrollY / (documentHeight - viewportHeight), clamped to [0,1];
// 0 when the document does not scroll.
func Progress(scrollY, documentHeight, viewportHeight float64) float64 {
	maxScroll := documentHeight - viewportHeight
	if maxScroll <= 0 {
		return 0
	}
	r := scrollY / maxScroll
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Reset puts every element into its rest style, or its initial
// pre-animation style, and drops pin offsets.
func (p *Page) Reset(toRest bool) {
	for _, e := range p.elements {
		if toRest {
			e.Style = e.Rest
		} else {
			e.Style = e.Initial
		}
		e.PinOffset = 0
	}
}

// Query returns elements matching a selector: "#id", ".class", or a
// space-separated descendant chain of those ("#parallax-back .parallax-img").
func (p *Page) Query(selector string) []*Element {
	parts := strings.Fields(selector)
	if len(parts) == 0 {
		return nil
	}

	var out []*Element
	for _, e := range p.elements {
		if matchChain(e, parts) {
			out = append(out, e)
		}
	}
	return out
}

// QueryOne returns the first match of selector, or nil.
func (p *Page) QueryOne(selector string) *Element {
	if m := p.Query(selector); len(m) > 0 {
		return m[0]
	}
	return nil
}

func matchChain(e *Element, parts []string) bool {
	last := len(parts) - 1
	if !matchSimple(e, parts[last]) {
		return false
	}
	n := e.Parent
	for i := last - 1; i >= 0; i-- {
		for n != nil && !matchSimple(n, parts[i]) {
			n = n.Parent
		}
		if n == nil {
			return false
		}
		n = n.Parent
	}
	return true
}

func matchSimple(e *Element, sel string) bool {
	switch {
	case strings.HasPrefix(sel, "#"):
		return e.ID == sel[1:]
	case strings.HasPrefix(sel, "."):
		return e.HasClass(sel[1:])
	}
	return e.Kind == sel
}

func (p *Page) register(e *Element) error {
	if e.ID != "" {
		if _, dup := p.byID[e.ID]; dup {
			return fmt.Errorf("duplicate element id %q", e.ID)
		}
		p.byID[e.ID] = e
	}
	p.elements = append(p.elements, e)
	for _, c := range e.Children {
		if err := p.register(c); err != nil {
			return err
		}
	}
	return nil
}
