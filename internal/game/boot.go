package game

import (
	"log"

	"github.com/iburimskiy/duskfx/internal/config"
)

type bootPhase int

const (
	bootLoading bootPhase = iota
	bootSettling
	bootRunning
)

// boot sequences startup: the loader hands over to the choreography, and
// the particle field follows after a short delay.
type boot struct {
	phase bootPhase
	wait  float64

	startChoreo    func()
	startParticles func()
}

func newBoot(startChoreo, startParticles func()) *boot {
	return &boot{startChoreo: startChoreo, startParticles: startParticles}
}

// loaderDone is the loader's completion callback.
func (b *boot) loaderDone() {
	if b.phase != bootLoading {
		return
	}
	b.startChoreo()
	b.phase = bootSettling
	b.wait = config.ParticleStartDelay.Seconds()
}

func (b *boot) update(dt float64) {
	if b.phase != bootSettling {
		return
	}
	b.wait -= dt
	if b.wait <= 0 {
		b.phase = bootRunning
		log.Printf("[Boot] Starting particle field")
		b.startParticles()
	}
}

func (b *boot) running() bool { return b.phase == bootRunning }
