// Command duskfx renders the scroll-driven dusk page in a desktop window.
//
// Usage:
//
//	duskfx [flags]
//
// Flags:
//
//	-config <file>   YAML settings (window, particles, cursor, loader)
//	-choreo <file>   choreography script replacing the built-in one
//	-layout <file>   page layout replacing the built-in one
//	-static          run without the scroll plugin; the page shows at rest
//	-seed <n>        random seed for the loader and particles (0 = time)
//	-debug           verbose logging and the frame stats overlay
//
// Controls:
//
//	Wheel, Up/Down, J/K    - scroll
//	PageUp/PageDown, Space - scroll by a screen
//	Home/End               - jump to the top or bottom
//	O                      - open a choreography file
//	D                      - toggle frame stats
//	Esc/Q                  - quit
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/duskfx/internal/choreo"
	"github.com/iburimskiy/duskfx/internal/config"
	"github.com/iburimskiy/duskfx/internal/game"
	"github.com/iburimskiy/duskfx/internal/page"
)

var (
	configFlag = flag.String("config", "", "YAML settings file")
	choreoFlag = flag.String("choreo", "", "choreography YAML replacing the built-in script")
	layoutFlag = flag.String("layout", "", "page layout YAML replacing the built-in page")
	staticFlag = flag.Bool("static", false, "skip the scroll choreography and show the page at rest")
	seedFlag   = flag.Uint64("seed", 0, "random seed (0 uses the clock)")
	debugFlag  = flag.Bool("debug", false, "verbose logging and frame stats overlay")
)

func main() {
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		log.Printf("[Boot] Warning: %v, using defaults", err)
	}

	var script *choreo.Script
	if *choreoFlag != "" {
		script, err = choreo.LoadFile(*choreoFlag)
		if err != nil {
			log.Fatalf("[Boot] %v", err)
		}
	}

	layout, err := page.LoadLayout(*layoutFlag)
	if err != nil {
		log.Fatalf("[Boot] %v", err)
	}

	g, err := game.New(game.Options{
		Settings: settings,
		Layout:   layout,
		Script:   script,
		Static:   *staticFlag,
		Debug:    *debugFlag,
		Seed:     *seedFlag,
	})
	if err != nil {
		log.Fatalf("[Boot] Failed to initialize: %v", err)
	}

	title := settings.Window.Title
	if title == "" {
		title = config.WindowTitle
	}
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// one Update per display refresh, so the particle field tracks the display
	ebiten.SetTPS(ebiten.SyncWithFPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
