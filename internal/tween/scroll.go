package tween

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iburimskiy/duskfx/internal/page"
)

// anchor is a point along an element or the viewport: a fraction of its
// height plus a pixel offset.
type anchor struct {
	frac, px float64
}

// Position is a parsed scroll position such as "top 80%" (trigger top meets
// 80% down the viewport), "30% 60%" or "+=400" (relative to the start).
type Position struct {
	elem, view anchor
	relative   bool
	offset     float64
}

// ParsePosition parses "<element> <viewport>" where each side is top,
// center, bottom, a percentage or a pixel value, or "+=N" for an end N
// pixels after the start.
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+="); ok {
		v, err := parsePixels(rest)
		if err != nil {
			return Position{}, fmt.Errorf("position %q: %w", s, err)
		}
		return Position{relative: true, offset: v}, nil
	}

	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("position %q: want \"<element> <viewport>\"", s)
	}
	elem, err := parseAnchor(parts[0])
	if err != nil {
		return Position{}, fmt.Errorf("position %q: %w", s, err)
	}
	view, err := parseAnchor(parts[1])
	if err != nil {
		return Position{}, fmt.Errorf("position %q: %w", s, err)
	}
	return Position{elem: elem, view: view}, nil
}

// MustPosition is ParsePosition for literals.
func MustPosition(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

func parseAnchor(s string) (anchor, error) {
	switch s {
	case "top":
		return anchor{frac: 0}, nil
	case "center":
		return anchor{frac: 0.5}, nil
	case "bottom":
		return anchor{frac: 1}, nil
	}
	if v, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return anchor{}, fmt.Errorf("bad percentage %q", s)
		}
		return anchor{frac: f / 100}, nil
	}
	px, err := parsePixels(s)
	if err != nil {
		return anchor{}, err
	}
	return anchor{px: px}, nil
}

func parsePixels(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("bad offset %q", s)
	}
	return v, nil
}

// resolve returns the scroll offset at which the anchors meet.
func (p Position) resolve(box page.Rect, viewportH float64) float64 {
	return box.Y + p.elem.frac*box.H + p.elem.px - (p.view.frac*viewportH + p.view.px)
}

// Scrub selects how a scroll trigger drives its animation. The zero value
// plays the animation once, in time, when the start is crossed.
type Scrub struct {
	On bool
	// Lag in seconds for the displayed progress to catch up with the scroll
	// position; 0 follows it exactly
	Lag float64
}

// ScrollTrigger maps a scroll window over a trigger element to [0,1].
type ScrollTrigger struct {
	Trigger *page.Element
	Start   Position
	End     Position
	Scrub   Scrub
	// Pin holds the element in place while scrolling through the window
	Pin *page.Element

	start, end float64
}

// Refresh resolves the window against the trigger's current layout box.
func (st *ScrollTrigger) Refresh(viewportH float64) {
	box := st.Trigger.Box
	st.start = st.Start.resolve(box, viewportH)
	if st.End.relative {
		st.end = st.start + st.End.offset
	} else {
		st.end = st.End.resolve(box, viewportH)
	}
}

// Bounds returns the resolved scroll window.
func (st *ScrollTrigger) Bounds() (start, end float64) { return st.start, st.end }

// Progress is clamp((scroll-start)/(end-start), 0, 1). It depends only on
// the scroll offset, so scrolling back reverses it exactly. A collapsed
// window steps from 0 to 1 at start.
func (st *ScrollTrigger) Progress(scroll float64) float64 {
	span := st.end - st.start
	if span <= 0 {
		if scroll >= st.start {
			return 1
		}
		return 0
	}
	return min(max((scroll-st.start)/span, 0), 1)
}

// PinOffset is how far the pinned element must move down to stay put.
func (st *ScrollTrigger) PinOffset(scroll float64) float64 {
	if st.end <= st.start {
		return 0
	}
	return min(max(scroll, st.start), st.end) - st.start
}

// binding drives one animation from one trigger.
type binding struct {
	st   *ScrollTrigger
	anim Animation

	shown    float64
	rendered float64
	init     bool
	fired    bool
}

func (b *binding) update(e *Engine, dt, scroll float64) {
	if b.st.Pin != nil {
		b.st.Pin.PinOffset = b.st.PinOffset(scroll)
	}

	target := b.st.Progress(scroll)
	if !b.st.Scrub.On {
		if !b.fired && scroll >= b.st.start {
			b.fired = true
			e.Play(b.anim)
		}
		return
	}

	switch {
	case !b.init || b.st.Scrub.Lag <= 0:
		b.shown = target
	default:
		k := 1 - math.Exp(-dt*3/b.st.Scrub.Lag)
		b.shown += (target - b.shown) * k
		if math.Abs(target-b.shown) < 1e-4 {
			b.shown = target
		}
	}
	b.init = true

	// rendered starts at 0, so the animation stays untouched until the
	// scroll first moves into the window
	if b.shown == b.rendered {
		return
	}
	b.rendered = b.shown
	b.anim.render(b.shown * b.anim.Duration())
}
