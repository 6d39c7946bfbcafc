package tween

import (
	"errors"
	"log"
)

// ErrNoScrollPlugin is returned when a scroll trigger is bound before the
// scroll plugin is registered.
var ErrNoScrollPlugin = errors.New("scroll plugin not registered")

// Playback is a time-based run of an animation.
type Playback struct {
	anim Animation
	time float64
	done bool
}

// Done reports whether the animation reached its end.
func (p *Playback) Done() bool { return p.done }

// Time returns the elapsed time.
func (p *Playback) Time() float64 { return p.time }

// Engine plays timed animations and drives scroll-bound ones. Scroll
// support is a plugin: until RegisterScrollPlugin is called, Bind fails
// and Available reports false.
type Engine struct {
	scroll    bool
	viewportH float64

	playing  []*Playback
	bindings []*binding
}

// NewEngine returns an engine without the scroll plugin.
func NewEngine() *Engine { return &Engine{} }

// RegisterScrollPlugin enables scroll triggers.
func (e *Engine) RegisterScrollPlugin() { e.scroll = true }

// Available reports whether the engine and its scroll plugin are both
// present. Safe on a nil engine.
func (e *Engine) Available() bool { return e != nil && e.scroll }

// Play starts a at time 0. It renders on the next Advance.
func (e *Engine) Play(a Animation) *Playback {
	p := &Playback{anim: a}
	e.playing = append(e.playing, p)
	return p
}

// Bind attaches a to a scroll trigger and resolves the trigger window.
func (e *Engine) Bind(a Animation, st *ScrollTrigger) error {
	if !e.scroll {
		return ErrNoScrollPlugin
	}
	if st.Trigger == nil {
		return errors.New("scroll trigger has no trigger element")
	}
	st.Refresh(e.viewportH)
	e.bindings = append(e.bindings, &binding{st: st, anim: a})
	return nil
}

// Refresh re-resolves every trigger window after a layout change.
func (e *Engine) Refresh(viewportH float64) {
	e.viewportH = viewportH
	for _, b := range e.bindings {
		b.st.Refresh(viewportH)
	}
}

// Advance moves timed animations forward by dt seconds and updates every
// scroll binding for the given scroll offset.
func (e *Engine) Advance(dt, scroll float64) {
	if dt < 0 {
		dt = 0
	}

	// bindings first: a play-once trigger starts its playback this frame
	for _, b := range e.bindings {
		b.update(e, dt, scroll)
	}

	// completion callbacks may start new playbacks
	current := e.playing
	e.playing = nil
	live := current[:0]
	for _, p := range current {
		p.time = min(p.time+dt, p.anim.Duration())
		p.anim.render(p.time)
		if p.time >= p.anim.Duration() {
			p.done = true
			continue
		}
		live = append(live, p)
	}
	clear(current[len(live):])
	e.playing = append(live, e.playing...)
}

// Active returns the number of running timed animations and scroll bindings.
func (e *Engine) Active() (playing, bound int) { return len(e.playing), len(e.bindings) }

// Kill drops every animation and binding, leaving element styles as they are.
func (e *Engine) Kill() {
	if n := len(e.playing) + len(e.bindings); n > 0 {
		log.Printf("[Tween] Killed %d animations", n)
	}
	e.playing = nil
	e.bindings = nil
}
