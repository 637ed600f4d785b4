package strip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrder(t *testing.T) {
	for _, tc := range []struct {
		in  string
		ok  bool
		out Order
	}{
		{"RGB", true, OrderRGB},
		{"GRB", true, OrderGRB},
		{"BRG", true, Order{'B', 'R', 'G'}},
		{"RGBW", false, Order{}},
		{"RRB", false, Order{}},
		{"XYZ", false, Order{}},
		{"", false, Order{}},
	} {
		o, err := ParseOrder(tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.out, o)
	}
}

func TestProfileFullBrightnessIsIdentity(t *testing.T) {
	p := DefaultProfile(OrderRGB)
	px := Pixel{R: 12, G: 200, B: 255}
	assert.Equal(t, px, p.Apply(px))
}

func TestProfileHalfBrightness(t *testing.T) {
	p := DefaultProfile(OrderRGB)
	p.Brightness = 128
	got := p.Apply(Pixel{R: 255, G: 0, B: 0})
	assert.Equal(t, Pixel{R: 128, G: 0, B: 0}, got)
}

func TestProfileReorder(t *testing.T) {
	p := DefaultProfile(OrderGRB)
	f := Frame{{R: 1, G: 2, B: 3}}
	assert.Equal(t, []byte{2, 1, 3}, p.Render(f))
}

func TestProfileGammaMonotonicAndBounded(t *testing.T) {
	p := DefaultProfile(OrderRGB)
	p.Gamma = 2.2
	prev := -1
	for v := 0; v <= 255; v++ {
		out := int(p.Apply(Pixel{R: uint8(v)}).R)
		if out < prev {
			t.Fatalf("gamma curve not monotonic at %d: %d -> %d", v, prev, out)
		}
		prev = out
	}
	assert.Equal(t, uint8(0), p.Apply(Pixel{}).R)
	assert.Equal(t, uint8(255), p.Apply(Pixel{R: 255}).R)
}

func TestTrimForSize(t *testing.T) {
	big := Profile{Order: OrderRGB, Brightness: 255, Trim: TrimForSize(true)}
	small := Profile{Order: OrderRGB, Brightness: 255, Trim: TrimForSize(false)}

	bw := big.Apply(WarmWhite())
	sw := small.Apply(WarmWhite())

	// Both builds pull green and blue down, big harder than small.
	assert.Equal(t, uint8(255), bw.R)
	assert.Equal(t, uint8(255), sw.R)
	assert.Less(t, bw.G, sw.G)
	assert.Less(t, bw.B, sw.B)
}

func TestEndToEndSolidHalfBrightness(t *testing.T) {
	// num_leds=5, solid red at brightness 128 must serialize as the
	// reordered, brightness-scaled encoding on every pixel.
	f := NewFrame(5)
	f.Fill(Pixel{R: 255})
	p := DefaultProfile(OrderRGB)
	p.Brightness = 128

	out := p.Render(f)
	require.Len(t, out, 15)
	for i := 0; i < 5; i++ {
		assert.Equal(t, []byte{128, 0, 0}, out[i*3:i*3+3], "pixel %d", i)
	}
}

func TestFrameReverse(t *testing.T) {
	f := Frame{{R: 1}, {R: 2}, {R: 3}, {R: 4}}
	f.Reverse()
	assert.Equal(t, Frame{{R: 4}, {R: 3}, {R: 2}, {R: 1}}, f)
}
