package pattern

import "github.com/example/stripd/internal/strip"

// Off darkens the whole strip. Used as the explicit resting state and as the
// safe frame pushed on shutdown.
type Off struct{}

func (Off) Name() string { return "off" }

func (Off) Render(dst strip.Frame, t, speed float64) {
	dst.Fill(strip.Pixel{})
}

// Solid paints every pixel in one configured color. No time dependency.
type Solid struct {
	Color strip.Pixel
}

func (Solid) Name() string { return "solid" }

func (s Solid) Render(dst strip.Frame, t, speed float64) {
	dst.Fill(s.Color)
}
