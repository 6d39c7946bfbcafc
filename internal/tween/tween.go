package tween

import (
	"github.com/iburimskiy/duskfx/internal/page"
)

// Vars maps style properties to values.
type Vars map[page.Prop]float64

// Animation is anything the engine can play or scrub. Duration includes any
// leading delay.
type Animation interface {
	Duration() float64
	render(t float64)
	started() bool
}

// Options configure a Tween.
type Options struct {
	// Duration per target in seconds; 0 jumps straight to the end values
	Duration float64
	Delay    float64
	// Stagger offsets each successive target's start
	Stagger float64
	Ease    Func
	// From overrides the captured start value for the listed properties
	From       Vars
	OnComplete func()
}

// Tween moves a set of properties on one or more elements toward target
// values. Start values are captured from the elements the first time the
// tween renders, so a tween placed after another one on the same property
// continues from wherever that one left off.
type Tween struct {
	targets []*page.Element
	to      Vars
	opts    Options
	ease    Func

	from     []page.Style
	captured bool
	complete bool
}

// New creates a tween. A nil ease selects DefaultEase.
func New(targets []*page.Element, to Vars, opts Options) *Tween {
	t := &Tween{
		targets: targets,
		to:      to,
		opts:    opts,
		ease:    opts.Ease,
	}
	if t.ease == nil {
		t.ease = Ease(DefaultEase)
	}
	return t
}

// Duration is delay + stagger spread + per-target duration.
func (t *Tween) Duration() float64 {
	n := max(len(t.targets)-1, 0)
	return t.opts.Delay + t.opts.Stagger*float64(n) + t.opts.Duration
}

func (t *Tween) started() bool { return t.captured }

func (t *Tween) capture() {
	t.from = make([]page.Style, len(t.targets))
	for i, e := range t.targets {
		t.from[i] = e.Style
		for p, v := range t.opts.From {
			t.from[i].Set(p, v)
		}
	}
	t.captured = true
}

// render puts every target at local time tm (seconds since the tween began,
// delay included).
func (t *Tween) render(tm float64) {
	if !t.captured {
		t.capture()
	}
	local := tm - t.opts.Delay
	for i, e := range t.targets {
		p := t.targetProgress(local - t.opts.Stagger*float64(i))
		k := t.ease(p)
		for prop, to := range t.to {
			e.Style.Set(prop, Lerp(t.from[i].Get(prop), to, k))
		}
	}

	end := tm >= t.Duration()
	if end && !t.complete {
		t.complete = true
		if t.opts.OnComplete != nil {
			t.opts.OnComplete()
		}
	} else if !end {
		t.complete = false
	}
}

func (t *Tween) targetProgress(local float64) float64 {
	if t.opts.Duration <= 0 {
		if local >= 0 {
			return 1
		}
		return 0
	}
	return min(max(local/t.opts.Duration, 0), 1)
}
