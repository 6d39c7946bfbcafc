package game

import (
	"time"

	"github.com/iburimskiy/duskfx/internal/config"
)

// frameClock measures the time between display frames. The first frame,
// and any gap outside (0, MaxFrameStep], count as one nominal tick.
type frameClock struct {
	last time.Time
}

func (c *frameClock) tick(now time.Time) float64 {
	nominal := 1.0 / config.TicksPerSecond
	if c.last.IsZero() {
		c.last = now
		return nominal
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt <= 0 || dt > config.MaxFrameStep {
		return nominal
	}
	return dt.Seconds()
}
