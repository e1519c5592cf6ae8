package input

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Zoom tracks the target camera distance and optionally eases the actual
// distance toward it with a critically damped spring.
type Zoom struct {
	Min, Max         float64
	WheelSensitivity float64
	Gain             float64

	target   float64
	pos, vel float64

	smooth bool
	spring harmonica.Spring
}

// NewZoom creates a zoom starting at distance. Smoothing with a positive
// FPS enables the spring at that frame rate.
func NewZoom(distance float64, s Settings) *Zoom {
	z := &Zoom{
		Min:              s.MinDistance,
		Max:              s.MaxDistance,
		WheelSensitivity: s.WheelSensitivity,
		Gain:             s.ZoomGain,
	}
	if s.Smoothing && s.FPS > 0 {
		z.smooth = true
		z.spring = harmonica.NewSpring(harmonica.FPS(s.FPS), 6.0, 1.0)
	}
	z.Reset(distance)
	return z
}

// Reset jumps to distance (clamped) with no motion in flight.
func (z *Zoom) Reset(distance float64) {
	z.target = z.clamp(distance)
	z.pos = z.target
	z.vel = 0
}

// Target returns the distance the zoom is heading to.
func (z *Zoom) Target() float64 {
	return z.target
}

// Current returns the eased distance.
func (z *Zoom) Current() float64 {
	return z.pos
}

// Scroll moves the target for a wheel delta. d is the projection distance
// in pixels. With dr = -sensitivity·wheel and u = target + d the target
// moves by dr·u² / (gain·d + dr·u). A non-positive denominator snaps the
// target to Min.
func (z *Zoom) Scroll(wheel, d float64) {
	if wheel == 0 {
		return
	}
	dr := -z.WheelSensitivity * wheel
	u := z.target + d
	denom := z.Gain*d + dr*u
	if denom <= 0 {
		z.target = z.Min
		return
	}
	z.target = z.clamp(z.target + dr*u*u/denom)
}

// Advance steps the eased distance one frame toward the target and
// returns it. Without smoothing it returns the target.
func (z *Zoom) Advance() float64 {
	if !z.smooth {
		z.pos = z.target
		return z.pos
	}
	z.pos, z.vel = z.spring.Update(z.pos, z.vel, z.target)
	if c := z.clamp(z.pos); c != z.pos {
		z.pos, z.vel = c, 0
	}
	if math.Abs(z.pos-z.target) < 1e-3 && math.Abs(z.vel) < 1e-3 {
		z.pos, z.vel = z.target, 0
	}
	return z.pos
}

// Settled reports whether no easing is in flight.
func (z *Zoom) Settled() bool {
	return z.pos == z.target && z.vel == 0
}

func (z *Zoom) clamp(d float64) float64 {
	return math.Max(z.Min, math.Min(z.Max, d))
}
