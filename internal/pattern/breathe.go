package pattern

import (
	"math"

	"github.com/example/stripd/internal/strip"
)

// Breathe pulses a fixed base color with a raised-cosine brightness curve
// between Min and Max. The curve is continuous at the period boundary and
// only touches full dark when Min is explicitly zero.
type Breathe struct {
	Color  strip.Pixel
	Period float64 // seconds per full cycle at speed 1.0; 0 = 4
	Min    float64 // floor multiplier, 0..1
	Max    float64 // ceiling multiplier, 0..1; 0 = 1
}

func (Breathe) Name() string { return "breathe" }

// Level returns the brightness multiplier at time t. Exposed for tests.
func (b Breathe) Level(t, speed float64) float64 {
	period := b.Period
	if period <= 0 {
		period = 4
	}
	max := b.Max
	if max <= 0 {
		max = 1
	}
	min := b.Min
	if min < 0 {
		min = 0
	}
	if min > max {
		min = max
	}
	// Raised cosine starting at the floor, so a freshly entered pattern
	// fades in instead of flashing.
	phase := 2 * math.Pi * t * speed / period
	return min + (max-min)*(0.5-0.5*math.Cos(phase))
}

func (b Breathe) Render(dst strip.Frame, t, speed float64) {
	level := b.Level(t, speed)
	px := strip.Pixel{
		R: scale(b.Color.R, level),
		G: scale(b.Color.G, level),
		B: scale(b.Color.B, level),
	}
	dst.Fill(px)
}

func scale(v uint8, f float64) uint8 {
	s := math.Round(float64(v) * f)
	if s > 255 {
		s = 255
	}
	if s < 0 {
		s = 0
	}
	return uint8(s)
}
