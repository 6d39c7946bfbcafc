package tween

type child struct {
	anim Animation
	at   float64
}

// Timeline sequences animations at absolute positions.
type Timeline struct {
	Delay      float64
	OnComplete func()

	children []child
	touched  bool
	complete bool
	last     float64
}

// NewTimeline returns an empty timeline.
func NewTimeline(delay float64) *Timeline {
	return &Timeline{Delay: delay}
}

// Add places a at position at seconds (after the timeline delay). A negative
// position appends after the current end.
func (tl *Timeline) Add(a Animation, at float64) *Timeline {
	if at < 0 {
		at = tl.Duration() - tl.Delay
	}
	tl.children = append(tl.children, child{anim: a, at: at})
	return tl
}

// Len returns the number of children.
func (tl *Timeline) Len() int { return len(tl.children) }

// Duration is the delay plus the latest child end.
func (tl *Timeline) Duration() float64 {
	var end float64
	for _, c := range tl.children {
		end = max(end, c.at+c.anim.Duration())
	}
	return tl.Delay + end
}

func (tl *Timeline) started() bool { return tl.touched }

// render seeks every child. A child is first rendered only once the
// playhead reaches it; after that it is rendered at every seek, clamped to
// its own range, so seeking backward restores earlier values. Children are
// visited in reverse when seeking backward so earlier ones win.
func (tl *Timeline) render(tm float64) {
	backward := tl.touched && tm < tl.last
	tl.touched = true
	tl.last = tm
	local := tm - tl.Delay
	n := len(tl.children)
	for i := range n {
		c := tl.children[i]
		if backward {
			c = tl.children[n-1-i]
		}
		ct := local - c.at
		if ct < 0 && !c.anim.started() {
			continue
		}
		c.anim.render(min(max(ct, 0), c.anim.Duration()))
	}

	end := tm >= tl.Duration()
	if end && !tl.complete {
		tl.complete = true
		if tl.OnComplete != nil {
			tl.OnComplete()
		}
	} else if !end {
		tl.complete = false
	}
}
