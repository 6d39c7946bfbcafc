package tween

import (
	"math"
	"testing"

	"github.com/iburimskiy/duskfx/internal/page"
)

func newElem(opacity float64) *page.Element {
	e := &page.Element{ID: "e", Rest: page.RestStyle()}
	e.Style = e.Rest
	e.Style.Opacity = opacity
	return e
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestEase_Endpoints(t *testing.T) {
	for name, f := range registry {
		if got := f(0); !near(got, 0) {
			t.Errorf("%s(0) = %v", name, got)
		}
		if got := f(1); !near(got, 1) {
			t.Errorf("%s(1) = %v", name, got)
		}
	}
}

func TestEase_Lookup(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"none", 0.3, 0.3},
		{"power1.out", 0.5, 0.75},
		{"power2.out", 0.5, 0.875},
		{"power2.in", 0.5, 0.125},
		{"power3.out", 0.5, 0.9375},
		{"power2.inOut", 0.25, 0.0625},
		{"Power2.InOut", 0.75, 0.9375},
		{"quad.out", 0.5, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) failed", tt.name)
			}
			if got := f(tt.in); !near(got, tt.want) {
				t.Errorf("%s(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
			}
		})
	}
}

func TestEase_UnknownFallsBack(t *testing.T) {
	f := Ease("bounce.wobble")
	def, _ := Lookup(DefaultEase)
	if f(0.5) != def(0.5) {
		t.Errorf("fallback ease(0.5) = %v, want %v", f(0.5), def(0.5))
	}
	if Ease("")(0.5) != def(0.5) {
		t.Error("empty name should select the default ease")
	}
}

func TestTween_PlaysToEnd(t *testing.T) {
	e := NewEngine()
	el := newElem(0)
	completed := 0
	tw := New([]*page.Element{el}, Vars{page.Opacity: 1}, Options{
		Duration:   1,
		Ease:       Linear,
		OnComplete: func() { completed++ },
	})
	pb := e.Play(tw)

	e.Advance(0.5, 0)
	if !near(el.Style.Opacity, 0.5) {
		t.Errorf("opacity at 0.5s = %v", el.Style.Opacity)
	}
	e.Advance(0.6, 0)
	if el.Style.Opacity != 1 {
		t.Errorf("opacity at end = %v", el.Style.Opacity)
	}
	if !pb.Done() || completed != 1 {
		t.Errorf("done=%v completed=%d", pb.Done(), completed)
	}
	if pb.Time() != 1 {
		t.Errorf("playback time = %v, want clamped to 1", pb.Time())
	}
	if playing, _ := e.Active(); playing != 0 {
		t.Errorf("%d playbacks still active", playing)
	}

	e.Advance(1, 0)
	if completed != 1 {
		t.Errorf("OnComplete fired %d times", completed)
	}
}

func TestTween_DelayAndStagger(t *testing.T) {
	els := []*page.Element{newElem(0), newElem(0), newElem(0)}
	tw := New(els, Vars{page.Opacity: 1}, Options{Duration: 1, Delay: 0.5, Stagger: 0.5, Ease: Linear})
	if !near(tw.Duration(), 2.5) {
		t.Fatalf("duration = %v, want 2.5", tw.Duration())
	}

	tw.render(1.5)
	want := []float64{1, 0.5, 0}
	for i, el := range els {
		if !near(el.Style.Opacity, want[i]) {
			t.Errorf("target %d opacity = %v, want %v", i, el.Style.Opacity, want[i])
		}
	}

	tw.render(0.25)
	for i, el := range els {
		if el.Style.Opacity != 0 {
			t.Errorf("target %d moved during delay: %v", i, el.Style.Opacity)
		}
	}
}

func TestTween_ZeroDuration(t *testing.T) {
	e := NewEngine()
	el := newElem(0)
	e.Play(New([]*page.Element{el}, Vars{page.Y: 40}, Options{}))
	e.Advance(0, 0)
	if el.Style.Y != 40 {
		t.Errorf("y = %v, want 40 immediately", el.Style.Y)
	}
}

func TestTween_FromOverride(t *testing.T) {
	el := newElem(1)
	tw := New([]*page.Element{el}, Vars{page.Opacity: 1}, Options{
		Duration: 1,
		Ease:     Linear,
		From:     Vars{page.Opacity: 0},
	})
	tw.render(0.25)
	if !near(el.Style.Opacity, 0.25) {
		t.Errorf("opacity = %v, want 0.25", el.Style.Opacity)
	}
}

func TestTimeline_SequenceAndSeekBack(t *testing.T) {
	el := newElem(0)
	tl := NewTimeline(0)
	tl.Add(New([]*page.Element{el}, Vars{page.Opacity: 1}, Options{Duration: 1, Ease: Linear}), 0)
	tl.Add(New([]*page.Element{el}, Vars{page.Opacity: 0.2}, Options{Duration: 1, Ease: Linear}), -1)

	if !near(tl.Duration(), 2) {
		t.Fatalf("duration = %v, want 2", tl.Duration())
	}

	tl.render(0.5)
	if !near(el.Style.Opacity, 0.5) {
		t.Errorf("opacity at 0.5 = %v", el.Style.Opacity)
	}
	tl.render(2)
	if !near(el.Style.Opacity, 0.2) {
		t.Errorf("opacity at end = %v, want 0.2", el.Style.Opacity)
	}
	tl.render(0.5)
	if !near(el.Style.Opacity, 0.5) {
		t.Errorf("opacity after seeking back = %v, want 0.5", el.Style.Opacity)
	}
	tl.render(1.5)
	if !near(el.Style.Opacity, 0.6) {
		t.Errorf("opacity at 1.5 = %v, want 0.6", el.Style.Opacity)
	}
}

func TestTimeline_Delay(t *testing.T) {
	el := newElem(0)
	done := false
	tl := NewTimeline(0.2)
	tl.OnComplete = func() { done = true }
	tl.Add(New([]*page.Element{el}, Vars{page.Opacity: 1}, Options{Duration: 1, Ease: Linear}), 0)

	e := NewEngine()
	e.Play(tl)
	e.Advance(0.1, 0)
	if el.Style.Opacity != 0 {
		t.Errorf("moved before delay: %v", el.Style.Opacity)
	}
	e.Advance(0.6, 0)
	if !near(el.Style.Opacity, 0.5) {
		t.Errorf("opacity = %v, want 0.5", el.Style.Opacity)
	}
	e.Advance(1, 0)
	if !done {
		t.Error("timeline OnComplete not called")
	}
}
