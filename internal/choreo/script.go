package choreo

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/duskfx/internal/page"
	"github.com/iburimskiy/duskfx/internal/tween"
)

//go:embed dusk.yaml
var defaultScript []byte

// DefaultDuration is used by entries that name no duration.
const DefaultDuration = 0.5

// Script is a declarative choreography: timelines of tweens and standalone
// tweens, each optionally bound to a scroll window.
type Script struct {
	Name      string         `yaml:"name"`
	Timelines []TimelineSpec `yaml:"timelines"`
	Tweens    []Entry        `yaml:"tweens"`
}

// TimelineSpec groups entries placed at absolute positions.
type TimelineSpec struct {
	Name   string       `yaml:"name"`
	Delay  float64      `yaml:"delay"`
	Scroll *TriggerSpec `yaml:"scroll"`
	Tweens []Entry      `yaml:"tweens"`
}

// Entry binds a selector to target values over a time or scroll window.
type Entry struct {
	Target   string             `yaml:"target"`
	To       map[string]float64 `yaml:"to"`
	From     map[string]float64 `yaml:"from"`
	Duration *float64           `yaml:"duration"`
	Delay    float64            `yaml:"delay"`
	Stagger  float64            `yaml:"stagger"`
	Ease     string             `yaml:"ease"`
	// At places the entry inside its timeline; unset appends it
	At *float64 `yaml:"at"`
	// Each creates one tween per matched element, and a trigger of "self"
	// then refers to that element
	Each   bool         `yaml:"each"`
	Scroll *TriggerSpec `yaml:"scroll"`
}

// TriggerSpec is the YAML form of a scroll trigger.
type TriggerSpec struct {
	Trigger string    `yaml:"trigger"`
	Start   string    `yaml:"start"`
	End     string    `yaml:"end"`
	Scrub   ScrubSpec `yaml:"scrub"`
	Pin     string    `yaml:"pin"`
}

// ScrubSpec accepts false, true or a lag in seconds.
type ScrubSpec tween.Scrub

func (s *ScrubSpec) UnmarshalYAML(n *yaml.Node) error {
	var b bool
	if err := n.Decode(&b); err == nil {
		*s = ScrubSpec{On: b}
		return nil
	}
	var lag float64
	if err := n.Decode(&lag); err != nil {
		return fmt.Errorf("line %d: scrub must be a bool or seconds", n.Line)
	}
	if lag < 0 {
		return fmt.Errorf("line %d: negative scrub lag %v", n.Line, lag)
	}
	*s = ScrubSpec{On: true, Lag: lag}
	return nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse choreography: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile reads a script from disk.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read choreography %q: %w", path, err)
	}
	return Parse(data)
}

// Default returns the built-in dusk page choreography.
func Default() *Script {
	s, err := Parse(defaultScript)
	if err != nil {
		panic(fmt.Sprintf("embedded choreography: %v", err))
	}
	return s
}

// Validate checks selectors, property names, eases and trigger positions.
// Selectors that match nothing are not an error here.
func (s *Script) Validate() error {
	if len(s.Timelines) == 0 && len(s.Tweens) == 0 {
		return fmt.Errorf("choreography has no timelines or tweens")
	}
	for i, tl := range s.Timelines {
		if tl.Scroll != nil {
			if err := tl.Scroll.validate(false); err != nil {
				return fmt.Errorf("timeline %d (%s): %w", i, tl.Name, err)
			}
		}
		if len(tl.Tweens) == 0 {
			return fmt.Errorf("timeline %d (%s) is empty", i, tl.Name)
		}
		for j, e := range tl.Tweens {
			if e.Scroll != nil {
				return fmt.Errorf("timeline %d (%s) tween %d: scroll belongs on the timeline", i, tl.Name, j)
			}
			if err := e.validate(); err != nil {
				return fmt.Errorf("timeline %d (%s) tween %d: %w", i, tl.Name, j, err)
			}
		}
	}
	for i, e := range s.Tweens {
		if err := e.validate(); err != nil {
			return fmt.Errorf("tween %d (%s): %w", i, e.Target, err)
		}
	}
	return nil
}

func (e *Entry) validate() error {
	if e.Target == "" {
		return fmt.Errorf("missing target")
	}
	if len(e.To) == 0 {
		return fmt.Errorf("no target values")
	}
	if _, err := vars(e.To); err != nil {
		return err
	}
	if _, err := vars(e.From); err != nil {
		return err
	}
	if e.Duration != nil && *e.Duration < 0 {
		return fmt.Errorf("negative duration")
	}
	if e.Ease != "" {
		if _, ok := tween.Lookup(e.Ease); !ok {
			return fmt.Errorf("unknown ease %q", e.Ease)
		}
	}
	if e.Scroll != nil {
		return e.Scroll.validate(e.Each)
	}
	return nil
}

func (t *TriggerSpec) validate(each bool) error {
	if t.Trigger == "" {
		return fmt.Errorf("scroll trigger needs a trigger selector")
	}
	if t.Trigger == "self" && !each {
		return fmt.Errorf("trigger \"self\" needs each: true")
	}
	if _, err := tween.ParsePosition(t.Start); err != nil {
		return err
	}
	if _, err := tween.ParsePosition(t.End); err != nil {
		return err
	}
	return nil
}

func vars(m map[string]float64) (tween.Vars, error) {
	if len(m) == 0 {
		return nil, nil
	}
	v := make(tween.Vars, len(m))
	for name, val := range m {
		p, err := page.ParseProp(name)
		if err != nil {
			return nil, err
		}
		v[p] = val
	}
	return v, nil
}

func (e *Entry) options() tween.Options {
	d := DefaultDuration
	if e.Duration != nil {
		d = *e.Duration
	}
	from, _ := vars(e.From)
	return tween.Options{
		Duration: d,
		Delay:    e.Delay,
		Stagger:  e.Stagger,
		Ease:     tween.Ease(e.Ease),
		From:     from,
	}
}
