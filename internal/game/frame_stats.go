package game

import (
	"time"
)

// frameSample is the time spent in one Update and the Draw that followed.
type frameSample struct {
	update time.Duration
	draw   time.Duration
}

// frameStats records the last N frame timings into a ring buffer so the
// debug overlay can show recent cost.
type frameStats struct {
	buffer    []frameSample
	nextIndex int
	count     int
}

func newFrameStats(ringSize int) *frameStats {
	return &frameStats{buffer: make([]frameSample, max(ringSize, 1))}
}

func (s *frameStats) record(sample frameSample) {
	s.buffer[s.nextIndex] = sample
	s.nextIndex++
	if s.nextIndex >= len(s.buffer) {
		s.nextIndex = 0
	}
	s.count = min(s.count+1, len(s.buffer))
}

// setDraw fills in the draw time of the most recent sample.
func (s *frameStats) setDraw(d time.Duration) {
	if s.count == 0 {
		return
	}
	idx := s.nextIndex - 1
	if idx < 0 {
		idx = len(s.buffer) - 1
	}
	s.buffer[idx].draw = d
}

// snapshot returns up to the last n samples, most recent last.
func (s *frameStats) snapshot(n int) []frameSample {
	n = min(n, s.count)
	out := make([]frameSample, 0, n)
	// Walk backwards from nextIndex - 1
	idx := s.nextIndex - 1
	if idx < 0 {
		idx = len(s.buffer) - 1
	}
	for i := 0; i < n; i++ {
		out = append(out, s.buffer[idx])
		idx--
		if idx < 0 {
			idx = len(s.buffer) - 1
		}
	}
	// reverse to chronological order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// summary returns the mean and worst total frame cost over the buffer.
func (s *frameStats) summary() (avg, worst time.Duration) {
	if s.count == 0 {
		return 0, 0
	}
	var sum time.Duration
	for _, f := range s.snapshot(s.count) {
		total := f.update + f.draw
		sum += total
		worst = max(worst, total)
	}
	return sum / time.Duration(s.count), worst
}
