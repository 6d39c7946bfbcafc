package game

import (
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/duskfx/internal/config"
	"github.com/iburimskiy/duskfx/internal/page"
	"github.com/iburimskiy/duskfx/internal/tween"
)

type loaderState int

const (
	loaderIdle loaderState = iota
	loaderLoading
	loaderFading
	loaderDone
)

var loaderTrackColor = color.NRGBA{R: 60, G: 48, B: 40, A: 255}

// loader is the preload screen: a progress bar that fills in random steps,
// waits for the hero image, then fades out and hands over to onDone.
type loader struct {
	cfg    config.LoaderSettings
	el     *page.Element
	bar    *page.Element
	engine *tween.Engine
	rng    *rand.Rand

	// ready reports whether the hero image can be shown
	ready  func() bool
	onDone func()

	state    loaderState
	progress float64
	acc      float64
}

func newLoader(cfg config.LoaderSettings, pg *page.Page, engine *tween.Engine, rng *rand.Rand, ready func() bool, onDone func()) *loader {
	l := &loader{
		cfg:    cfg,
		engine: engine,
		rng:    rng,
		ready:  ready,
		onDone: onDone,
	}
	if cfg.Enabled {
		l.el = pg.ByID("loader")
		l.bar = pg.QueryOne(".loader-progress-bar")
	}
	return l
}

// start begins loading. Without a loader element the handover is immediate.
func (l *loader) start() {
	if l.state != loaderIdle {
		return
	}
	if l.el == nil {
		l.finish()
		return
	}
	l.state = loaderLoading
}

func (l *loader) done() bool { return l.state == loaderDone }

func (l *loader) update(dt float64) {
	if l.state != loaderLoading {
		return
	}

	interval := config.LoaderTickInterval.Seconds()
	l.acc += dt
	for l.acc >= interval && l.progress < 100 {
		l.acc -= interval
		l.progress = min(l.progress+l.rng.Float64()*l.cfg.StepRange+l.cfg.StepMin, 100)
	}

	if l.progress >= 100 && (l.ready == nil || l.ready()) {
		l.hide()
	}
}

func (l *loader) hide() {
	l.state = loaderFading
	if l.engine == nil {
		l.el.Style.Opacity = 0
		l.finish()
		return
	}
	l.engine.Play(tween.New([]*page.Element{l.el}, tween.Vars{page.Opacity: 0}, tween.Options{
		Duration:   config.LoaderFadeDuration,
		Ease:       tween.Ease("power2.inOut"),
		OnComplete: l.finish,
	}))
}

func (l *loader) finish() {
	l.state = loaderDone
	log.Printf("[Loader] Done")
	if l.onDone != nil {
		l.onDone()
	}
}

func (l *loader) draw(screen *ebiten.Image) {
	if l.el == nil || l.state == loaderDone || l.state == loaderIdle {
		return
	}
	a := clamp01(l.el.Style.Opacity)
	b := l.el.Box
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fade(l.el.Color, a), false)

	if l.bar == nil {
		return
	}
	bb := l.bar.Box
	h := max(bb.H, 2)
	vector.DrawFilledRect(screen, float32(bb.X), float32(bb.Y), float32(bb.W), float32(h), fade(loaderTrackColor, a), false)
	vector.DrawFilledRect(screen, float32(bb.X), float32(bb.Y), float32(bb.W*l.progress/100), float32(h), fade(l.bar.Color, a), false)
}

// fade scales c's alpha by a.
func fade(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(float64(c.A)*clamp01(a) + 0.5)
	return c
}
