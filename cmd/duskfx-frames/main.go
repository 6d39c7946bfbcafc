// Command duskfx-frames runs the particle field headless and writes frames
// as PNG files, for checking the look without opening a window.
//
// Usage:
//
//	go run ./cmd/duskfx-frames -frames 240 -every 60 -scroll 0.5 -out frames
//
// Each frame is one 60 Hz tick. The pointer, when given, stays put for the
// whole run.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/iburimskiy/duskfx/internal/canvas"
	"github.com/iburimskiy/duskfx/internal/config"
	"github.com/iburimskiy/duskfx/internal/particles"
)

var (
	widthFlag   = flag.Int("w", 1920, "frame width")
	heightFlag  = flag.Int("h", 1080, "frame height")
	framesFlag  = flag.Int("frames", 120, "number of ticks to run")
	everyFlag   = flag.Int("every", 30, "write a PNG every N ticks")
	scrollFlag  = flag.Float64("scroll", 0, "page scroll progress in [0,1]")
	pointerFlag = flag.String("pointer", "", "pointer position as x,y (empty = no pointer)")
	outFlag     = flag.String("out", "frames", "output directory")
	seedFlag    = flag.Uint64("seed", 1, "random seed")
	configFlag  = flag.String("config", "", "YAML settings file")
)

func main() {
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		log.Printf("[Frames] Warning: %v, using defaults", err)
	}
	if *framesFlag <= 0 || *everyFlag <= 0 {
		log.Fatal("[Frames] -frames and -every must be positive")
	}

	if err := os.MkdirAll(*outFlag, 0o755); err != nil {
		log.Fatalf("[Frames] %v", err)
	}

	target := canvas.NewSoft(*widthFlag, *heightFlag)
	field := particles.New(target, *widthFlag, *heightFlag,
		particles.WithSettings(settings.Particles),
		particles.WithRand(rand.New(rand.NewPCG(*seedFlag, *seedFlag+1))))

	field.SetScrollProgress(*scrollFlag)
	if *pointerFlag != "" {
		var x, y float64
		if _, err := fmt.Sscanf(*pointerFlag, "%g,%g", &x, &y); err != nil {
			log.Fatalf("[Frames] bad -pointer %q: %v", *pointerFlag, err)
		}
		field.SetPointer(x, y)
	}

	written := 0
	for i := 1; i <= *framesFlag; i++ {
		field.Tick()
		if i%*everyFlag != 0 {
			continue
		}
		path := filepath.Join(*outFlag, fmt.Sprintf("frame_%04d.png", i))
		if err := target.SavePNG(path); err != nil {
			log.Fatalf("[Frames] save %s: %v", path, err)
		}
		written++
	}
	log.Printf("[Frames] Wrote %d frames to %s (%d particles drawn last tick)", written, *outFlag, field.Drawn())
}
