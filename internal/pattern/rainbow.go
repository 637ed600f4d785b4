package pattern

import "github.com/example/stripd/internal/strip"

// Rainbow sweeps a full hue cycle along the strip and rotates it over time.
// Pixel i gets hue BaseHue + i*DegPerPixel + t*speed*DegPerSec, wrapped into
// the hue circle, at full saturation and value.
type Rainbow struct {
	BaseHue     float64 // starting hue offset, degrees
	DegPerPixel float64 // hue step between neighbors; 0 = spread 360 over the strip
	DegPerSec   float64 // angular velocity at speed 1.0; 0 = default 90
}

func (Rainbow) Name() string { return "rainbow" }

func (r Rainbow) Render(dst strip.Frame, t, speed float64) {
	n := len(dst)
	if n == 0 {
		return
	}
	step := r.DegPerPixel
	if step == 0 {
		step = 360.0 / float64(n)
	}
	rate := r.DegPerSec
	if rate == 0 {
		rate = 90
	}
	phase := r.BaseHue + t*speed*rate
	for i := range dst {
		dst[i] = strip.HSV(phase+float64(i)*step, 1, 1)
	}
}
