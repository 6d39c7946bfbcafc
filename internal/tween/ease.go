package tween

import (
	"log"
	"math"
	"strconv"
	"strings"
)

// Func maps linear progress t in [0,1] to eased progress.
type Func func(t float64) float64

// DefaultEase is used when a tween names no ease.
const DefaultEase = "power1.out"

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// EaseOutCubic is 1 - (1-t)^3: fast start, slow finish.
func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

// EaseInCubic is t^3.
func EaseInCubic(t float64) float64 { return t * t * t }

// EaseInOutCubic is slow at both ends.
//
//	t < 0.5:  4t^3
//	t >= 0.5: 1 - (-2t+2)^3 / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutExpo is 1 - 2^(-10t).
func EaseOutExpo(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseInExpo is 2^(10t-10).
func EaseInExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

// EaseInOutSine follows half a cosine wave.
func EaseInOutSine(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

// Lerp interpolates between a and b; t=0 gives a, t=1 gives b.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// powerIn/powerOut/powerInOut use exponent n+1, so power1 is quadratic and
// power4 quintic.
func powerIn(n int) Func {
	e := float64(n + 1)
	return func(t float64) float64 { return math.Pow(t, e) }
}

func powerOut(n int) Func {
	e := float64(n + 1)
	return func(t float64) float64 { return 1 - math.Pow(1-t, e) }
}

func powerInOut(n int) Func {
	e := float64(n + 1)
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2*t, e) / 2
		}
		return 1 - math.Pow(2*(1-t), e)/2
	}
}

var registry = map[string]Func{
	"none":        Linear,
	"linear":      Linear,
	"expo.in":     EaseInExpo,
	"expo.out":    EaseOutExpo,
	"sine.inout":  EaseInOutSine,
	"cubic.in":    EaseInCubic,
	"cubic.out":   EaseOutCubic,
	"cubic.inout": EaseInOutCubic,
}

func init() {
	aliases := map[int]string{1: "quad", 2: "cubic", 3: "quart", 4: "quint"}
	for n := 1; n <= 4; n++ {
		name := "power" + strconv.Itoa(n)
		registry[name] = powerOut(n)
		registry[name+".in"] = powerIn(n)
		registry[name+".out"] = powerOut(n)
		registry[name+".inout"] = powerInOut(n)

		a := aliases[n]
		if _, ok := registry[a+".in"]; !ok {
			registry[a+".in"] = powerIn(n)
			registry[a+".out"] = powerOut(n)
			registry[a+".inout"] = powerInOut(n)
		}
	}
	registry["expo"] = EaseOutExpo
	registry["sine"] = EaseInOutSine
}

// Lookup finds an ease by name ("power2.out", "expo.inOut", "none").
// Names are case-insensitive.
func Lookup(name string) (Func, bool) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Ease resolves name, falling back to DefaultEase with a warning when the
// name is unknown. An empty name selects DefaultEase silently.
func Ease(name string) Func {
	if name == "" {
		name = DefaultEase
	}
	if f, ok := Lookup(name); ok {
		return f
	}
	log.Printf("[Tween] Warning: unknown ease %q, using %s", name, DefaultEase)
	f, _ := Lookup(DefaultEase)
	return f
}
