package config

import "time"

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "duskfx - wheel/arrows: scroll, O: open choreography, D: stats, Esc/Q: quit"

	// Viewports at or below this width skip the custom cursor
	MobileBreakpoint = 768

	// Startup sequencing
	ParticleStartDelay = 100 * time.Millisecond
	LoaderTickInterval = 120 * time.Millisecond
	LoaderFadeDuration = 0.8

	// Scrolling the virtual page
	WheelStep    = 60.0
	KeyStep      = 40.0
	PageStepFrac = 0.9

	// Frame stats ring
	FrameStatsSize = 240

	// Nominal frame rate for the first frame and after stalls
	TicksPerSecond = 60
	// Longer gaps between frames (window hidden, debugger) are not replayed
	MaxFrameStep = 250 * time.Millisecond
)
