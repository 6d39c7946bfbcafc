package choreo

import (
	"math"
	"strings"
	"testing"

	"github.com/iburimskiy/duskfx/internal/page"
	"github.com/iburimskiy/duskfx/internal/tween"
)

func newPage(t *testing.T) *page.Page {
	t.Helper()
	l, err := page.LoadLayout("")
	if err != nil {
		t.Fatal(err)
	}
	pg, err := page.New(l, 1000, 800)
	if err != nil {
		t.Fatal(err)
	}
	return pg
}

func newEngine() *tween.Engine {
	e := tween.NewEngine()
	e.RegisterScrollPlugin()
	return e
}

// settle advances long enough for every scrub lag to catch up.
func settle(c *Choreographer) {
	for range 900 {
		c.Advance(1.0 / 60)
	}
}

func near(a, b, eps float64) bool { return math.Abs(a-b) < eps }

func TestStart_SkipsWithoutEngine(t *testing.T) {
	tests := []struct {
		name   string
		engine *tween.Engine
	}{
		{"nil engine", nil},
		{"no scroll plugin", tween.NewEngine()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg := newPage(t)
			c := Start(tt.engine, pg, nil)
			if !c.Skipped() {
				t.Fatal("choreographer not skipped")
			}
			for _, el := range pg.Elements() {
				if el.Style != el.Rest {
					t.Errorf("%v not at rest: %+v", el, el.Style)
				}
			}

			// the rest of the host keeps calling these
			c.Advance(0.1)
			c.Refresh()
			c.Stop()
			if el := pg.ByID("ending-mask"); el.Style.Opacity != 1 {
				t.Errorf("ending mask opacity = %v after advancing a skipped choreographer", el.Style.Opacity)
			}
		})
	}
}

func TestStart_DefaultScript(t *testing.T) {
	pg := newPage(t)
	c := Start(newEngine(), pg, nil)
	if c.Skipped() {
		t.Fatal("skipped with a full engine")
	}
	if len(c.Missing()) != 0 {
		t.Errorf("default script misses selectors: %v", c.Missing())
	}
	// 2 timelines, 20 tweens once the story lines are expanded
	if c.Animations() != 22 {
		t.Errorf("animations = %d, want 22", c.Animations())
	}
}

func TestHeroEntrance(t *testing.T) {
	pg := newPage(t)
	c := Start(newEngine(), pg, nil)

	c.Advance(0.1)
	lines := pg.Query(".hero-title-line")
	if lines[0].Style.Opacity != 0 {
		t.Errorf("title visible during timeline delay: %v", lines[0].Style.Opacity)
	}

	for range 40 {
		c.Advance(0.1)
	}
	for i, l := range lines {
		if !near(l.Style.Opacity, 1, 1e-9) || !near(l.Style.Y, 0, 1e-9) {
			t.Errorf("title line %d at %+v after entrance", i, l.Style)
		}
	}
	if s := pg.ByID("hero-image").Style.Scale; !near(s, 1.05, 1e-9) {
		t.Errorf("hero image scale = %v, want 1.05", s)
	}
	if o := pg.ByID("scroll-indicator").Style.Opacity; !near(o, 1, 1e-9) {
		t.Errorf("scroll indicator opacity = %v", o)
	}
}

func TestZoomReveal_ScrubAndPin(t *testing.T) {
	pg := newPage(t)
	c := Start(newEngine(), pg, nil)
	img := pg.ByID("zoom-image")
	container := pg.ByID("zoom-container")

	// zoom section spans 800..3200, window is top top .. 70% top
	pg.SetScroll(1640)
	settle(c)
	if !near(img.Style.Clip, 41.5, 1e-3) {
		t.Errorf("clip at half the window = %v, want 41.5", img.Style.Clip)
	}
	if !near(container.PinOffset, 840, 1e-6) {
		t.Errorf("pin offset = %v, want 840", container.PinOffset)
	}

	pg.SetScroll(3000)
	settle(c)
	if !near(img.Style.Clip, 75, 1e-9) || !near(img.Style.Scale, 1, 1e-9) {
		t.Errorf("zoom image at end = %+v", img.Style)
	}

	pg.SetScroll(0)
	settle(c)
	if img.Style.Clip != 8 || img.Style.Scale != 1.3 {
		t.Errorf("zoom image after scrolling back = %+v, want initial", img.Style)
	}
	if container.PinOffset != 0 {
		t.Errorf("pin offset at top = %v", container.PinOffset)
	}
}

func TestStoryLines_EachOwnTrigger(t *testing.T) {
	pg := newPage(t)
	c := Start(newEngine(), pg, nil)
	lines := pg.Query(".story-line")

	// past the first line's window, before the last line's
	pg.SetScroll(3000)
	settle(c)
	if !near(lines[0].Style.Opacity, 1, 1e-9) {
		t.Errorf("first story line opacity = %v, want 1", lines[0].Style.Opacity)
	}
	if last := lines[len(lines)-1]; last.Style.Opacity != 0 {
		t.Errorf("last story line opacity = %v, want 0", last.Style.Opacity)
	}
}

func TestStart_MissingSelector(t *testing.T) {
	script, err := Parse([]byte(`
name: partial
tweens:
  - target: "#nope"
    to: { opacity: 1 }
  - target: "#hero-date"
    to: { opacity: 1 }
    duration: 1
  - target: "#story-eyebrow"
    to: { opacity: 1 }
    scroll: { trigger: "#gone", start: "top 80%", end: "top 50%", scrub: true }
`))
	if err != nil {
		t.Fatal(err)
	}

	pg := newPage(t)
	c := Start(newEngine(), pg, script, WithVerbose(true))
	if c.Animations() != 1 {
		t.Errorf("animations = %d, want 1", c.Animations())
	}
	if got := strings.Join(c.Missing(), ","); got != "#nope,#gone" {
		t.Errorf("missing = %q", got)
	}

	for range 20 {
		c.Advance(0.1)
	}
	if o := pg.ByID("hero-date").Style.Opacity; !near(o, 1, 1e-9) {
		t.Errorf("surviving entry did not run: opacity %v", o)
	}
}

func TestStop(t *testing.T) {
	pg := newPage(t)
	e := newEngine()
	c := Start(e, pg, nil)
	c.Stop()
	if p, b := e.Active(); p != 0 || b != 0 {
		t.Errorf("after Stop: %d playing, %d bound", p, b)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "name: x"},
		{"no target", "tweens: [{to: {opacity: 1}}]"},
		{"no values", `tweens: [{target: "#a"}]`},
		{"bad prop", `tweens: [{target: "#a", to: {blur: 1}}]`},
		{"bad ease", `tweens: [{target: "#a", to: {opacity: 1}, ease: wobble}]`},
		{"negative duration", `tweens: [{target: "#a", to: {opacity: 1}, duration: -1}]`},
		{"bad position", `tweens: [{target: "#a", to: {opacity: 1}, scroll: {trigger: "#a", start: "top", end: "top top"}}]`},
		{"self without each", `tweens: [{target: "#a", to: {opacity: 1}, scroll: {trigger: self, start: "top top", end: "bottom top"}}]`},
		{"scrub string", `tweens: [{target: "#a", to: {opacity: 1}, scroll: {trigger: "#a", start: "top top", end: "bottom top", scrub: fast}}]`},
		{"negative scrub", `tweens: [{target: "#a", to: {opacity: 1}, scroll: {trigger: "#a", start: "top top", end: "bottom top", scrub: -1}}]`},
		{"empty timeline", "timelines: [{name: t}]"},
		{"scroll inside timeline", `timelines: [{name: t, tweens: [{target: "#a", to: {opacity: 1}, scroll: {trigger: "#a", start: "top top", end: "bottom top"}}]}]`},
		{"bad yaml", "tweens: [:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestScrubSpec(t *testing.T) {
	tests := []struct {
		in   string
		want tween.Scrub
	}{
		{"false", tween.Scrub{}},
		{"true", tween.Scrub{On: true}},
		{"1.5", tween.Scrub{On: true, Lag: 1.5}},
		{"0", tween.Scrub{On: true}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s, err := Parse([]byte(`tweens: [{target: "#a", to: {opacity: 1}, scroll: {trigger: "#a", start: "top top", end: "bottom top", scrub: ` + tt.in + `}}]`))
			if err != nil {
				t.Fatal(err)
			}
			if got := tween.Scrub(s.Tweens[0].Scroll.Scrub); got != tt.want {
				t.Errorf("scrub = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefault_Parses(t *testing.T) {
	s := Default()
	if s.Name != "dusk" || len(s.Timelines) != 2 {
		t.Errorf("default script = %q with %d timelines", s.Name, len(s.Timelines))
	}
}
