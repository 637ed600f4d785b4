package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stripd/internal/strip"
)

func TestOffAndSolid(t *testing.T) {
	f := strip.NewFrame(4)
	Solid{Color: strip.Pixel{R: 10, G: 20, B: 30}}.Render(f, 12.3, 1)
	for _, px := range f {
		assert.Equal(t, strip.Pixel{R: 10, G: 20, B: 30}, px)
	}

	Off{}.Render(f, 0, 1)
	for _, px := range f {
		assert.Equal(t, strip.Pixel{}, px)
	}
}

func TestEmptyFrameIsNoop(t *testing.T) {
	f := strip.NewFrame(0)
	for _, p := range []Pattern{Off{}, Solid{}, Rainbow{}, Chase{}, Breathe{}} {
		assert.NotPanics(t, func() { p.Render(f, 1, 1) }, p.Name())
	}
}

func TestRainbowHueWrapsContinuously(t *testing.T) {
	r := Rainbow{DegPerSec: 90}
	f := strip.NewFrame(1)

	// Hue just before the 360-degree wrap matches hue at zero.
	r.Render(f, 360.0/90.0-1e-6, 1)
	before := f[0]
	r.Render(f, 0, 1)
	atZero := f[0]
	assert.InDelta(t, float64(atZero.R), float64(before.R), 1)
	assert.InDelta(t, float64(atZero.G), float64(before.G), 1)
	assert.InDelta(t, float64(atZero.B), float64(before.B), 1)
}

func TestRainbowSpeedScalesAngularVelocity(t *testing.T) {
	r := Rainbow{DegPerSec: 90}
	full := strip.NewFrame(1)
	half := strip.NewFrame(1)

	// Half speed at time 2t must equal full speed at time t.
	r.Render(full, 1.0, 1.0)
	r.Render(half, 2.0, 0.5)
	assert.Equal(t, full[0], half[0])
}

func TestRainbowSpreadsFullCycle(t *testing.T) {
	r := Rainbow{}
	f := strip.NewFrame(6)
	r.Render(f, 0, 1)
	// 360/6 = 60 degree steps: red, yellow, green, ...
	assert.Equal(t, strip.HSV(0, 1, 1), f[0])
	assert.Equal(t, strip.HSV(60, 1, 1), f[1])
	assert.Equal(t, strip.HSV(120, 1, 1), f[2])
}

func litIndices(f strip.Frame) []int {
	var out []int
	for i, px := range f {
		if px != (strip.Pixel{}) {
			out = append(out, i)
		}
	}
	return out
}

func TestChaseWindowWrapsSeam(t *testing.T) {
	c := Chase{Color: strip.Pixel{R: 255}, Window: 3, StepDelay: 1}
	f := strip.NewFrame(10)

	// Position 9: window covers 9, 0, 1 with no gap or double-lit seam.
	c.Render(f, 9, 1)
	assert.ElementsMatch(t, []int{0, 1, 9}, litIndices(f))

	// Every position lights exactly Window contiguous-mod-n pixels.
	for step := 0; step < 25; step++ {
		c.Render(f, float64(step), 1)
		lit := litIndices(f)
		require.Len(t, lit, 3, "step %d", step)
		pos := step % 10
		for j := 0; j < 3; j++ {
			assert.Equal(t, strip.Pixel{R: 255}, f[(pos+j)%10], "step %d", step)
		}
	}
}

func TestChaseWindowClampedToStrip(t *testing.T) {
	c := Chase{Color: strip.Pixel{G: 255}, Window: 8, StepDelay: 1}
	f := strip.NewFrame(5)
	c.Render(f, 3, 1)
	assert.Len(t, litIndices(f), 5)
}

func TestBreatheContinuousAtPeriodBoundary(t *testing.T) {
	b := Breathe{Color: strip.Pixel{B: 255}, Period: 2, Min: 0.1, Max: 0.9}
	assert.InDelta(t, b.Level(0, 1), b.Level(2, 1), 1e-9)
	assert.InDelta(t, b.Level(0, 1), b.Level(4, 1), 1e-9)
}

func TestBreatheStaysWithinConfiguredRange(t *testing.T) {
	b := Breathe{Color: strip.Pixel{B: 255}, Period: 2, Min: 0.2, Max: 0.8}
	for i := 0; i < 200; i++ {
		l := b.Level(float64(i)*0.01*2, 1)
		assert.GreaterOrEqual(t, l, 0.2-1e-9)
		assert.LessOrEqual(t, l, 0.8+1e-9)
	}
	// Midway through the cycle it peaks at Max.
	assert.InDelta(t, 0.8, b.Level(1, 1), 1e-9)
	// Never fully dark unless Min is exactly zero.
	f := strip.NewFrame(1)
	b.Render(f, 0, 1)
	assert.NotEqual(t, strip.Pixel{}, f[0])
}

func TestBreatheSpeedShortensPeriod(t *testing.T) {
	b := Breathe{Color: strip.Pixel{R: 255}, Period: 4, Min: 0, Max: 1}
	// At double speed the peak arrives in half the time.
	assert.InDelta(t, 1.0, b.Level(1, 2), 1e-9)
	assert.InDelta(t, 1.0, b.Level(2, 1), 1e-9)
	assert.InDelta(t, 0.0, b.Level(0, 2), 1e-9)
}

func TestBreatheMinZeroReachesDark(t *testing.T) {
	b := Breathe{Color: strip.Pixel{R: 255}, Period: 2, Min: 0, Max: 1}
	assert.InDelta(t, 0, b.Level(0, 1), 1e-9)
}

func TestRegistry(t *testing.T) {
	reg := Defaults(strip.Pixel{R: 255})
	assert.Equal(t, []string{"breathe", "chase", "off", "rainbow", "solid"}, reg.List())

	p, ok := reg.Get("rainbow")
	require.True(t, ok)
	assert.Equal(t, "rainbow", p.Name())

	_, ok = reg.Get("sparkle")
	assert.False(t, ok)
}

func TestChaseNonIntegerSpeedFloors(t *testing.T) {
	c := Chase{Color: strip.Pixel{R: 255}, Window: 1, StepDelay: 1}
	f := strip.NewFrame(10)
	c.Render(f, 1.0, 1.5) // 1.5 steps -> floor to 1
	assert.Equal(t, []int{1}, litIndices(f))
}
