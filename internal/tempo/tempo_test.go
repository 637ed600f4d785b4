package tempo

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSpeedValid(t *testing.T) {
	c := New(1.0)
	require.NoError(t, c.SetSpeed(1.5))
	assert.Equal(t, 1.5, c.Speed())
}

func TestSetSpeedRejectsInvalid(t *testing.T) {
	c := New(1.0)
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := c.SetSpeed(v)
		assert.ErrorIs(t, err, ErrInvalidSpeed, "value %v", v)
		assert.Equal(t, 1.0, c.Speed(), "state must be unchanged after %v", v)
	}
}

func TestNewFallsBackOnInvalidInitial(t *testing.T) {
	assert.Equal(t, DefaultSpeed, New(-3).Speed())
	assert.Equal(t, DefaultSpeed, New(math.NaN()).Speed())
	assert.Equal(t, 2.0, New(2).Speed())
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	c := New(1.0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = c.SetSpeed(1.5)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s := c.Speed()
				// A read observes either value, never a torn one.
				if s != 1.0 && s != 1.5 {
					t.Errorf("torn read: %v", s)
					return
				}
			}
		}()
	}
	wg.Wait()
}
