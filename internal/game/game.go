// Package game hosts the dusk page in an ebiten window: it scrolls the
// virtual page, runs the choreography and composites the particle layer.
package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/duskfx/internal/choreo"
	"github.com/iburimskiy/duskfx/internal/config"
	"github.com/iburimskiy/duskfx/internal/page"
	"github.com/iburimskiy/duskfx/internal/particles"
	"github.com/iburimskiy/duskfx/internal/tween"
)

var backgroundColor = color.NRGBA{R: 10, G: 8, B: 6, A: 255}

// Options configure a Game.
type Options struct {
	Settings config.Settings
	// Layout and Script default to the built-in dusk page
	Layout *page.Layout
	Script *choreo.Script
	// Static leaves the scroll plugin unregistered, so the choreography is
	// skipped and the page shows at rest
	Static bool
	Debug  bool
	Seed   uint64
}

// Game implements ebiten.Game.
type Game struct {
	settings config.Settings
	debug    bool

	page     *page.Page
	engine   *tween.Engine
	script   *choreo.Script
	choreo   *choreo.Choreographer
	renderer *pageRenderer

	field *particles.Field
	layer *particleLayer
	rng   *rand.Rand

	loader *loader
	boot   *boot
	cursor *cursor
	stats  *frameStats
	clock  frameClock

	width, height int

	lastMouseX int
	lastMouseY int
	hasPointer bool

	started   bool
	showStats bool
	startTime time.Time
	lastErr   error
}

// New builds the page and wires the startup sequence. Nothing animates
// until the first Update.
func New(opts Options) (*Game, error) {
	s := opts.Settings
	layout := opts.Layout
	if layout == nil {
		l, err := page.LoadLayout("")
		if err != nil {
			return nil, err
		}
		layout = l
	}
	pg, err := page.New(layout, float64(s.Window.Width), float64(s.Window.Height))
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	engine := tween.NewEngine()
	if !opts.Static {
		engine.RegisterScrollPlugin()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		settings:  s,
		debug:     opts.Debug,
		page:      pg,
		engine:    engine,
		script:    opts.Script,
		renderer:  newPageRenderer(),
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		cursor:    newCursor(s.Cursor, s.Window.Width),
		stats:     newFrameStats(config.FrameStatsSize),
		width:     s.Window.Width,
		height:    s.Window.Height,
		showStats: opts.Debug,
	}
	g.boot = newBoot(g.startChoreography, g.startParticles)
	hero := pg.ByID("hero-image")
	g.loader = newLoader(s.Loader, pg, engine, g.rng,
		func() bool { return g.renderer.art.prepare(hero) },
		g.boot.loaderDone)
	return g, nil
}

func (g *Game) startChoreography() {
	g.choreo = choreo.Start(g.engine, g.page, g.script, choreo.WithVerbose(g.debug))
}

func (g *Game) startParticles() {
	g.layer = newParticleLayer(g.width, g.height)
	g.field = particles.New(g.layer, g.width, g.height,
		particles.WithSettings(g.settings.Particles),
		particles.WithRand(g.rng))
}

// Update runs once per display frame; main sets ebiten.SyncWithFPS, so dt
// is measured rather than derived from a fixed tick rate.
func (g *Game) Update() error {
	updateStart := time.Now()
	dt := g.clock.tick(updateStart)

	if !g.started {
		g.started = true
		g.startTime = time.Now()
		g.loader.start()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openChoreography()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		g.showStats = !g.showStats
	}
	g.handleScroll()
	g.handlePointer()

	g.loader.update(dt)
	g.engine.Advance(dt, g.page.ScrollY())
	g.boot.update(dt)

	if g.field != nil {
		if g.hasPointer {
			x, y := ebiten.CursorPosition()
			g.field.SetPointer(float64(x), float64(y))
		}
		g.field.SetScrollProgress(g.page.ScrollProgress())
		g.field.Update()
	}
	g.cursor.update()

	g.stats.record(frameSample{update: time.Since(updateStart)})
	return nil
}

func (g *Game) handleScroll() {
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.page.ScrollBy(-wy * config.WheelStep)
	}

	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyJ) {
		g.page.ScrollBy(config.KeyStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyK) {
		g.page.ScrollBy(-config.KeyStep)
	}

	_, vh := g.page.Viewport()
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.page.ScrollBy(vh * config.PageStepFrac)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.page.ScrollBy(-vh * config.PageStepFrac)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.page.SetScroll(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		g.page.SetScroll(g.page.MaxScroll())
	}
}

// handlePointer marks the pointer present once it first moves; ebiten
// reports (0, 0) before the cursor ever enters the window.
func (g *Game) handlePointer() {
	x, y := ebiten.CursorPosition()
	if x != g.lastMouseX || y != g.lastMouseY {
		g.hasPointer = true
		g.lastMouseX, g.lastMouseY = x, y
	}
	if g.hasPointer {
		g.cursor.setPointer(float64(x), float64(y))
	}
}

func (g *Game) openChoreography() {
	path, err := openChoreographyDialog()
	if err != nil {
		g.lastErr = err
		return
	}
	if path == "" {
		return
	}
	script, err := choreo.LoadFile(path)
	if err != nil {
		g.lastErr = err
		return
	}
	g.lastErr = nil
	g.reloadChoreography(script)
	log.Printf("[Game] Loaded choreography %s", path)
}

// reloadChoreography replaces the running script. Before the loader has
// finished it only swaps the script that will be started.
func (g *Game) reloadChoreography(script *choreo.Script) {
	g.script = script
	if g.choreo == nil {
		return
	}
	g.choreo.Stop()
	g.page.Reset(false)
	g.startChoreography()
}

func (g *Game) Draw(screen *ebiten.Image) {
	drawStart := time.Now()

	screen.Fill(backgroundColor)
	g.renderer.draw(screen, g.page)
	if g.field != nil {
		g.field.Draw()
		g.layer.drawTo(screen)
	}
	g.loader.draw(screen)
	g.cursor.draw(screen)
	g.drawStatus(screen)

	g.stats.setDraw(time.Since(drawStart))
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), 12, g.height-24)
	}
	if !g.showStats {
		return
	}

	avg, worst := g.stats.summary()
	anims := 0
	mode := "loading"
	if g.choreo != nil {
		anims = g.choreo.Animations()
		mode = "running"
		if g.choreo.Skipped() {
			mode = "static"
		}
	}
	drawn := 0
	if g.field != nil {
		drawn = g.field.Drawn()
	}
	uptime := time.Duration(0)
	if g.started {
		uptime = time.Since(g.startTime)
	}

	status := fmt.Sprintf("%s  fps %.0f  frame avg %v max %v\nscroll %.0f/%.0f (%.0f%%)  choreo %s (%d)  particles %d",
		formatDuration(uptime), ebiten.ActualFPS(), avg.Round(time.Microsecond), worst.Round(time.Microsecond),
		g.page.ScrollY(), g.page.MaxScroll(), g.page.ScrollProgress()*100, mode, anims, drawn)
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window size and relays out the page when it changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != g.width || h != g.height {
		g.resize(w, h)
	}
	return w, h
}

func (g *Game) resize(w, h int) {
	g.width, g.height = w, h
	g.page.Resize(float64(w), float64(h))
	if g.choreo != nil {
		g.choreo.Refresh()
	}
	if g.field != nil {
		g.field.Resize(w, h)
	}
	g.cursor.resize(w)
	g.renderer.release()
}
