// Package tempo holds the single piece of cross-component mutable state:
// the speed multiplier applied to elapsed time before it drives a pattern's
// phase. The render loop reads it every tick; the control channel writes it.
package tempo

import (
	"errors"
	"math"
	"sync"
)

// ErrInvalidSpeed is returned for speeds that are non-finite or not
// strictly positive. The stored value is left unchanged.
var ErrInvalidSpeed = errors.New("speed must be a positive finite number")

// DefaultSpeed is the 1.0 baseline (roughly 120 BPM).
const DefaultSpeed = 1.0

// Controller is a linearizable speed scalar. Critical sections are a single
// load or store so neither side can stall the other.
type Controller struct {
	mu    sync.RWMutex
	speed float64
}

// New returns a controller at the given initial speed, falling back to
// DefaultSpeed when the initial value is invalid.
func New(initial float64) *Controller {
	c := &Controller{speed: DefaultSpeed}
	if valid(initial) {
		c.speed = initial
	}
	return c
}

// Speed returns the current multiplier.
func (c *Controller) Speed() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.speed
}

// SetSpeed validates and stores a new multiplier.
func (c *Controller) SetSpeed(v float64) error {
	if !valid(v) {
		return ErrInvalidSpeed
	}
	c.mu.Lock()
	c.speed = v
	c.mu.Unlock()
	return nil
}

func valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
