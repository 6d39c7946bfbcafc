// Package choreo binds a declarative script of tweens to page elements and
// drives them from time and scroll position.
package choreo

import (
	"fmt"
	"log"

	"github.com/iburimskiy/duskfx/internal/page"
	"github.com/iburimskiy/duskfx/internal/tween"
)

// Choreographer runs one script against one page.
type Choreographer struct {
	engine  *tween.Engine
	page    *page.Page
	script  *Script
	skipped bool
	verbose bool

	animations int
	missing    []string
}

// Option configures Start.
type Option func(*Choreographer)

// WithVerbose logs every entry skipped for a missing selector.
func WithVerbose(v bool) Option {
	return func(c *Choreographer) { c.verbose = v }
}

// Start builds every timeline and tween of script on engine. When the engine
// or its scroll plugin is missing, nothing is animated: the page is put in its
// rest style so all content stays visible, and the returned choreographer
// reports Skipped. A nil script selects Default.
func Start(engine *tween.Engine, pg *page.Page, script *Script, opts ...Option) *Choreographer {
	c := &Choreographer{engine: engine, page: pg, script: script}
	for _, opt := range opts {
		opt(c)
	}
	if c.script == nil {
		c.script = Default()
	}

	if !engine.Available() {
		log.Printf("[Choreo] Tweening engine or scroll plugin not available, skipping animations")
		pg.Reset(true)
		c.skipped = true
		return c
	}

	_, vh := pg.Viewport()
	engine.Refresh(vh)
	for i := range c.script.Timelines {
		if err := c.buildTimeline(&c.script.Timelines[i]); err != nil {
			log.Printf("[Choreo] Warning: timeline %q: %v", c.script.Timelines[i].Name, err)
		}
	}
	for i := range c.script.Tweens {
		if err := c.buildTween(&c.script.Tweens[i]); err != nil {
			log.Printf("[Choreo] Warning: tween %q: %v", c.script.Tweens[i].Target, err)
		}
	}

	log.Printf("[Choreo] Started %q: %d animations, %d selectors missing", c.script.Name, c.animations, len(c.missing))
	return c
}

// Skipped reports whether Start found no usable engine.
func (c *Choreographer) Skipped() bool { return c.skipped }

// Animations returns how many animations were created.
func (c *Choreographer) Animations() int { return c.animations }

// Missing lists selectors that matched no element.
func (c *Choreographer) Missing() []string { return c.missing }

// Advance moves every animation forward by dt seconds at the page's
// current scroll offset.
func (c *Choreographer) Advance(dt float64) {
	if c.skipped {
		return
	}
	c.engine.Advance(dt, c.page.ScrollY())
}

// Refresh recomputes scroll windows after the page was laid out again.
func (c *Choreographer) Refresh() {
	if c.skipped {
		return
	}
	_, vh := c.page.Viewport()
	c.engine.Refresh(vh)
}

// Stop kills every animation. Element styles stay where they are.
func (c *Choreographer) Stop() {
	if c.skipped {
		return
	}
	c.engine.Kill()
}

func (c *Choreographer) query(sel string) []*page.Element {
	els := c.page.Query(sel)
	if len(els) == 0 {
		c.missing = append(c.missing, sel)
		if c.verbose {
			log.Printf("[Choreo] Selector %q matched nothing, entry skipped", sel)
		}
	}
	return els
}

func (c *Choreographer) buildTimeline(spec *TimelineSpec) error {
	tl := tween.NewTimeline(spec.Delay)
	for i := range spec.Tweens {
		e := &spec.Tweens[i]
		targets := c.query(e.Target)
		if len(targets) == 0 {
			continue
		}
		to, err := vars(e.To)
		if err != nil {
			return err
		}
		at := -1.0
		if e.At != nil {
			at = *e.At
		}
		tl.Add(tween.New(targets, to, e.options()), at)
	}
	if tl.Len() == 0 {
		return nil
	}

	if spec.Scroll == nil {
		c.engine.Play(tl)
		c.animations++
		return nil
	}
	st, err := c.trigger(spec.Scroll, nil)
	if err != nil || st == nil {
		return err
	}
	if err := c.engine.Bind(tl, st); err != nil {
		return err
	}
	c.animations++
	return nil
}

func (c *Choreographer) buildTween(e *Entry) error {
	targets := c.query(e.Target)
	if len(targets) == 0 {
		return nil
	}
	to, err := vars(e.To)
	if err != nil {
		return err
	}

	groups := [][]*page.Element{targets}
	if e.Each {
		groups = groups[:0]
		for _, t := range targets {
			groups = append(groups, []*page.Element{t})
		}
	}

	for _, g := range groups {
		tw := tween.New(g, to, e.options())
		if e.Scroll == nil {
			c.engine.Play(tw)
			c.animations++
			continue
		}
		st, err := c.trigger(e.Scroll, g[0])
		if err != nil {
			return err
		}
		if st == nil {
			continue
		}
		if err := c.engine.Bind(tw, st); err != nil {
			return err
		}
		c.animations++
	}
	return nil
}

// trigger resolves a trigger spec; self is the element for "self". A nil
// trigger with no error means a selector was missing.
func (c *Choreographer) trigger(spec *TriggerSpec, self *page.Element) (*tween.ScrollTrigger, error) {
	start, err := tween.ParsePosition(spec.Start)
	if err != nil {
		return nil, err
	}
	end, err := tween.ParsePosition(spec.End)
	if err != nil {
		return nil, err
	}

	var el *page.Element
	if spec.Trigger == "self" {
		if self == nil {
			return nil, fmt.Errorf("trigger \"self\" outside an each entry")
		}
		el = self
	} else if m := c.query(spec.Trigger); len(m) > 0 {
		el = m[0]
	} else {
		return nil, nil
	}

	st := &tween.ScrollTrigger{
		Trigger: el,
		Start:   start,
		End:     end,
		Scrub:   tween.Scrub(spec.Scrub),
	}
	if spec.Pin != "" {
		if m := c.query(spec.Pin); len(m) > 0 {
			st.Pin = m[0]
		}
	}
	return st, nil
}
