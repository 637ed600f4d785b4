package strip

import (
	"fmt"
	"math"
)

// Order describes the channel wiring of the strip, e.g. "GRB" for WS2812.
type Order [3]byte

// ParseOrder validates a wiring string like "RGB" or "GRB". Each of R, G and
// B must appear exactly once.
func ParseOrder(s string) (Order, error) {
	if len(s) != 3 {
		return Order{}, fmt.Errorf("color order %q: must be 3 characters", s)
	}
	var o Order
	seen := map[byte]bool{}
	for i := 0; i < 3; i++ {
		c := s[i]
		switch c {
		case 'R', 'G', 'B':
			if seen[c] {
				return Order{}, fmt.Errorf("color order %q: duplicate channel %c", s, c)
			}
			seen[c] = true
			o[i] = c
		default:
			return Order{}, fmt.Errorf("color order %q: unknown channel %c", s, c)
		}
	}
	return o, nil
}

func (o Order) String() string { return string(o[:]) }

// OrderRGB is the identity wiring, OrderGRB the usual WS2812 wiring.
var (
	OrderRGB = Order{'R', 'G', 'B'}
	OrderGRB = Order{'G', 'R', 'B'}
)

// Trim is a per-channel output multiplier in logical R,G,B order, used to
// compensate for diffuser and power differences between LED sizes.
type Trim [3]float64

// NoTrim leaves all channels untouched.
var NoTrim = Trim{1, 1, 1}

// Trim curves derived from the warm-white tuning of the two supported strip
// builds. Big LEDs sit behind a heavy diffuser and need green and blue pulled
// down harder than the small bare ones.
var (
	BigLEDTrim   = Trim{1, 160.0 / 255.0, 25.0 / 255.0}
	SmallLEDTrim = Trim{1, 170.0 / 255.0, 30.0 / 255.0}
)

// TrimForSize selects the trim curve for the configured LED build.
func TrimForSize(big bool) Trim {
	if big {
		return BigLEDTrim
	}
	return SmallLEDTrim
}

// WarmWhite is the resting color each build renders as a cozy white once its
// trim curve is applied.
func WarmWhite() Pixel { return Pixel{R: 255, G: 255, B: 255} }

// Profile is the correction applied to every pixel before transmission:
// channel reordering per strip wiring, global brightness scaling, an optional
// gamma curve and an optional per-channel trim. Deterministic and
// side-effect-free.
type Profile struct {
	Order      Order
	Brightness uint8   // 255 = no attenuation
	Gamma      float64 // <= 0 or 1 disables the curve
	Trim       Trim
}

// DefaultProfile returns an identity profile for the given wiring.
func DefaultProfile(order Order) Profile {
	return Profile{Order: order, Brightness: 255, Trim: NoTrim}
}

// Apply returns the corrected pixel in logical R,G,B order. Reordering
// happens at serialization time in Render.
func (p Profile) Apply(px Pixel) Pixel {
	return Pixel{
		R: p.channel(px.R, p.Trim[0]),
		G: p.channel(px.G, p.Trim[1]),
		B: p.channel(px.B, p.Trim[2]),
	}
}

func (p Profile) channel(v uint8, trim float64) uint8 {
	x := float64(v) / 255.0
	x *= float64(p.Brightness) / 255.0
	if trim > 0 && trim != 1 {
		x *= trim
	}
	if p.Gamma > 0 && p.Gamma != 1 {
		x = math.Pow(x, p.Gamma)
	}
	s := math.Round(x * 255.0)
	if s > 255 {
		s = 255
	}
	if s < 0 {
		s = 0
	}
	return uint8(s)
}

// Render corrects every pixel of the frame and serializes it into the 3*N
// wire byte order the sinks expect.
func (p Profile) Render(f Frame) []byte {
	out := make([]byte, len(f)*3)
	for i, px := range f {
		c := p.Apply(px)
		for j, ch := range p.Order {
			switch ch {
			case 'R':
				out[i*3+j] = c.R
			case 'G':
				out[i*3+j] = c.G
			case 'B':
				out[i*3+j] = c.B
			}
		}
	}
	return out
}
