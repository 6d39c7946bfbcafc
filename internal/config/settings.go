package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the runtime tuning loaded from an optional YAML file.
// Fields missing from the file keep their defaults.
type Settings struct {
	Window    WindowSettings   `yaml:"window"`
	Particles ParticleSettings `yaml:"particles"`
	Cursor    CursorSettings   `yaml:"cursor"`
	Loader    LoaderSettings   `yaml:"loader"`
}

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ParticleSettings tunes the ambient particle field.
type ParticleSettings struct {
	PoolSize int `yaml:"pool_size"`

	SizeMin  float64 `yaml:"size_min"`
	SizeMax  float64 `yaml:"size_max"`
	AlphaMin float64 `yaml:"alpha_min"`
	AlphaMax float64 `yaml:"alpha_max"`

	// Velocity is (rand - Bias) * Scale per axis
	DriftBias   float64 `yaml:"drift_bias"`
	DriftScaleX float64 `yaml:"drift_scale_x"`
	DriftScaleY float64 `yaml:"drift_scale_y"`

	TwinkleSpeedMin float64 `yaml:"twinkle_speed_min"`
	TwinkleSpeedMax float64 `yaml:"twinkle_speed_max"`

	LifeMin float64 `yaml:"life_min"`
	LifeMax float64 `yaml:"life_max"`

	RepelRadius   float64 `yaml:"repel_radius"`
	RepelStrength float64 `yaml:"repel_strength"`

	// Maximum dimming applied at full scroll progress
	ScrollDim float64 `yaml:"scroll_dim"`

	FadeIn  float64 `yaml:"fade_in"`
	FadeOut float64 `yaml:"fade_out"`

	AlphaCutoff float64 `yaml:"alpha_cutoff"`
	GlowScale   float64 `yaml:"glow_scale"`
	GlowMid     float64 `yaml:"glow_mid"`
	GlowMidA    float64 `yaml:"glow_mid_alpha"`
	CoreScale   float64 `yaml:"core_scale"`
	CoreAlpha   float64 `yaml:"core_alpha"`

	// Palette anchors as #rrggbb, interpolated in order
	Palette []string `yaml:"palette"`
}

type CursorSettings struct {
	Enabled        bool    `yaml:"enabled"`
	DotEase        float64 `yaml:"dot_ease"`
	FollowerEase   float64 `yaml:"follower_ease"`
	DotRadius      float64 `yaml:"dot_radius"`
	FollowerRadius float64 `yaml:"follower_radius"`
}

type LoaderSettings struct {
	Enabled   bool    `yaml:"enabled"`
	StepMin   float64 `yaml:"step_min"`
	StepRange float64 `yaml:"step_range"`
}

// Default returns the settings matching the dusk page.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Particles: DefaultParticles(),
		Cursor: CursorSettings{
			Enabled:        true,
			DotEase:        0.2,
			FollowerEase:   0.08,
			DotRadius:      4,
			FollowerRadius: 18,
		},
		Loader: LoaderSettings{
			Enabled:   true,
			StepMin:   5,
			StepRange: 15,
		},
	}
}

// DefaultParticles returns the particle tuning used when nothing is configured.
func DefaultParticles() ParticleSettings {
	return ParticleSettings{
		PoolSize:        80,
		SizeMin:         0.5,
		SizeMax:         3.0,
		AlphaMin:        0.1,
		AlphaMax:        0.6,
		DriftBias:       0.7,
		DriftScaleX:     0.3,
		DriftScaleY:     0.2,
		TwinkleSpeedMin: 0.005,
		TwinkleSpeedMax: 0.025,
		LifeMin:         200,
		LifeMax:         600,
		RepelRadius:     150,
		RepelStrength:   0.5,
		ScrollDim:       0.5,
		FadeIn:          0.1,
		FadeOut:         0.2,
		AlphaCutoff:     0.01,
		GlowScale:       3,
		GlowMid:         0.4,
		GlowMidA:        0.3,
		CoreScale:       0.5,
		CoreAlpha:       0.8,
		Palette:         []string{"#e8913a", "#f0b060", "#c86e2f", "#2a5a7c"},
	}
}

// Load reads settings from path on top of Default. An empty path returns
// the defaults. The result is always validated.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read settings %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parse settings %q: %w", path, err)
	}

	s.Validate()
	log.Printf("[Config] Loaded settings from %s (pool=%d)", path, s.Particles.PoolSize)
	return s, nil
}

// Validate replaces out-of-range values with defaults.
func (s *Settings) Validate() {
	def := Default()
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		s.Window.Width, s.Window.Height = def.Window.Width, def.Window.Height
	}
	if s.Window.Title == "" {
		s.Window.Title = def.Window.Title
	}
	s.Particles.Validate()

	if s.Cursor.DotEase <= 0 || s.Cursor.DotEase > 1 {
		s.Cursor.DotEase = def.Cursor.DotEase
	}
	if s.Cursor.FollowerEase <= 0 || s.Cursor.FollowerEase > 1 {
		s.Cursor.FollowerEase = def.Cursor.FollowerEase
	}
	if s.Loader.StepMin <= 0 {
		s.Loader.StepMin = def.Loader.StepMin
	}
	if s.Loader.StepRange < 0 {
		s.Loader.StepRange = def.Loader.StepRange
	}
}

// Validate replaces out-of-range particle values with defaults.
func (p *ParticleSettings) Validate() {
	def := DefaultParticles()
	if p.PoolSize <= 0 {
		p.PoolSize = def.PoolSize
	}
	if p.SizeMin <= 0 || p.SizeMax < p.SizeMin {
		p.SizeMin, p.SizeMax = def.SizeMin, def.SizeMax
	}
	if p.AlphaMin < 0 || p.AlphaMax > 1 || p.AlphaMax < p.AlphaMin {
		p.AlphaMin, p.AlphaMax = def.AlphaMin, def.AlphaMax
	}
	if p.TwinkleSpeedMin <= 0 || p.TwinkleSpeedMax < p.TwinkleSpeedMin {
		p.TwinkleSpeedMin, p.TwinkleSpeedMax = def.TwinkleSpeedMin, def.TwinkleSpeedMax
	}
	if p.LifeMin < 1 || p.LifeMax <= p.LifeMin {
		p.LifeMin, p.LifeMax = def.LifeMin, def.LifeMax
	}
	if p.RepelRadius < 0 {
		p.RepelRadius = def.RepelRadius
	}
	if p.ScrollDim < 0 || p.ScrollDim > 1 {
		p.ScrollDim = def.ScrollDim
	}
	if p.FadeIn < 0 || p.FadeOut < 0 || p.FadeIn+p.FadeOut > 1 {
		p.FadeIn, p.FadeOut = def.FadeIn, def.FadeOut
	}
	if p.GlowScale <= 0 {
		p.GlowScale = def.GlowScale
	}
	if p.GlowMid <= 0 || p.GlowMid >= 1 {
		p.GlowMid, p.GlowMidA = def.GlowMid, def.GlowMidA
	}
	if p.CoreScale <= 0 {
		p.CoreScale = def.CoreScale
	}
	if p.CoreAlpha < 0 || p.CoreAlpha > 1 {
		p.CoreAlpha = def.CoreAlpha
	}
	if len(p.Palette) == 0 {
		p.Palette = def.Palette
	}
}
