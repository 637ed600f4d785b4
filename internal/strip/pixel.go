package strip

// Pixel is one LED's color in logical R,G,B order, 8 bits per channel.
type Pixel struct {
	R, G, B uint8
}

// Frame is one complete strip snapshot. A fresh Frame is produced every
// render tick; once handed to a sink it is never mutated.
type Frame []Pixel

// NewFrame allocates an all-dark frame of n pixels.
func NewFrame(n int) Frame {
	if n <= 0 {
		return Frame{}
	}
	return make(Frame, n)
}

// Fill sets every pixel to p.
func (f Frame) Fill(p Pixel) {
	for i := range f {
		f[i] = p
	}
}

// Reverse flips the frame in place so index 0 maps to the far end of the
// strip. Used when the strip is mounted data-line-last.
func (f Frame) Reverse() {
	for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
		f[i], f[j] = f[j], f[i]
	}
}

// Clone returns an independent copy of the frame.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	copy(out, f)
	return out
}
