package pattern

import (
	"math"

	"github.com/example/stripd/internal/strip"
)

// Chase sweeps a window of lit pixels along the strip, wrapping across the
// seam without a gap. The window advances one pixel per StepDelay seconds at
// speed 1.0.
type Chase struct {
	Color     strip.Pixel
	Window    int     // lit pixels; 0 = 1
	StepDelay float64 // seconds per step at speed 1.0; 0 = 0.05
}

func (Chase) Name() string { return "chase" }

func (c Chase) Render(dst strip.Frame, t, speed float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	window := c.Window
	if window <= 0 {
		window = 1
	}
	if window > n {
		window = n
	}
	delay := c.StepDelay
	if delay <= 0 {
		delay = 0.05
	}

	pos := int(math.Floor(t*speed/delay)) % n
	if pos < 0 {
		pos += n
	}

	dst.Fill(strip.Pixel{})
	for j := 0; j < window; j++ {
		dst[(pos+j)%n] = c.Color
	}
}
