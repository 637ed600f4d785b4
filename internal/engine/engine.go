// Package engine drives the render loop: it asks the active pattern for a
// frame at a fixed cadence, pushes the corrected bytes to the hardware sink
// and rotates through the configured patterns on an independent clock.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/stripd/internal/led"
	"github.com/example/stripd/internal/pattern"
	"github.com/example/stripd/internal/strip"
	"github.com/example/stripd/internal/tempo"
)

// State enumerates the scheduler states.
type State int

const (
	Running State = iota
	ModeTransition
	ShuttingDown
)

// ErrSinkFailed is returned when the sink keeps rejecting frames beyond the
// tolerated burst and the loop gives up.
var ErrSinkFailed = errors.New("hardware sink failed repeatedly")

// maxWriteFailures is how many consecutive dropped frames are tolerated
// before a hardware fault is treated as fatal.
const maxWriteFailures = 5

// Options configures an Engine.
type Options struct {
	Patterns     []pattern.Pattern // rotation sequence; at least one
	Profile      strip.Profile
	Sink         led.Sink
	Tempo        *tempo.Controller
	NumLEDs      int
	Tick         time.Duration // delay per frame
	ModeDuration time.Duration // 0 disables rotation (single-shot variant)
	Flipped      bool          // reverse the strip before handoff
	OnFrame      func(strip.Frame)
	Log          zerolog.Logger
}

// Engine owns the active pattern and the render clock. It is driven either
// by Run or, in tests, by Start/Tick with synthetic times.
type Engine struct {
	opts Options

	state        State
	idx          int
	patternStart time.Time
	failures     int
}

// New validates the options and returns a stopped engine.
func New(opts Options) (*Engine, error) {
	if len(opts.Patterns) == 0 {
		return nil, errors.New("no patterns configured")
	}
	if opts.Sink == nil {
		return nil, errors.New("no sink configured")
	}
	if opts.Tempo == nil {
		return nil, errors.New("no tempo controller configured")
	}
	if opts.NumLEDs < 0 {
		return nil, fmt.Errorf("invalid LED count: %d", opts.NumLEDs)
	}
	if opts.Tick <= 0 {
		return nil, fmt.Errorf("invalid tick interval: %v", opts.Tick)
	}
	return &Engine{opts: opts}, nil
}

// Active returns the currently selected pattern.
func (e *Engine) Active() pattern.Pattern { return e.opts.Patterns[e.idx] }

// State returns the scheduler state.
func (e *Engine) State() State { return e.state }

// Start resets the phase clock. Newly entered patterns always begin at
// phase zero.
func (e *Engine) Start(now time.Time) {
	e.state = Running
	e.idx = 0
	e.patternStart = now
	e.failures = 0
}

// Tick renders and transmits one frame for the given wall-clock instant,
// rotating the active pattern first if its slot expired.
func (e *Engine) Tick(now time.Time) error {
	if e.opts.ModeDuration > 0 && now.Sub(e.patternStart) >= e.opts.ModeDuration {
		e.rotate(now)
	}

	elapsed := now.Sub(e.patternStart).Seconds()
	speed := e.opts.Tempo.Speed()

	// A fresh frame every tick keeps the generators stateless; nothing
	// downstream ever sees partial mutation.
	frame := strip.NewFrame(e.opts.NumLEDs)
	e.Active().Render(frame, elapsed, speed)
	if e.opts.Flipped {
		frame.Reverse()
	}

	if err := e.opts.Sink.Write(e.opts.Profile.Render(frame)); err != nil {
		e.failures++
		e.opts.Log.Warn().Err(err).Int("consecutive", e.failures).Msg("frame dropped")
		if e.failures > maxWriteFailures {
			return fmt.Errorf("%w: %v", ErrSinkFailed, err)
		}
		return nil
	}
	e.failures = 0

	if e.opts.OnFrame != nil {
		e.opts.OnFrame(frame)
	}
	return nil
}

// rotate advances round-robin through the configured sequence and restarts
// the phase clock so the incoming pattern starts at zero.
func (e *Engine) rotate(now time.Time) {
	e.state = ModeTransition
	e.idx = (e.idx + 1) % len(e.opts.Patterns)
	e.patternStart = now
	e.state = Running
	e.opts.Log.Info().Str("pattern", e.Active().Name()).Msg("mode rotated")
}

// Run drives the loop until ctx is canceled or the sink fails fatally. On
// the way out it pushes one dark frame so the hardware is left in a safe
// state. Ticker semantics drop missed ticks, so a slow sink supersedes
// stale frames instead of queueing them.
func (e *Engine) Run(ctx context.Context) error {
	e.Start(time.Now())
	e.opts.Log.Info().
		Str("pattern", e.Active().Name()).
		Dur("tick", e.opts.Tick).
		Msg("render loop started")

	ticker := time.NewTicker(e.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.shutdown()
			return nil
		case now := <-ticker.C:
			if err := e.Tick(now); err != nil {
				e.shutdown()
				return err
			}
		}
	}
}

// shutdown pushes the safe all-off frame. A failure here is logged but not
// propagated; there is nothing further to do with dead hardware.
func (e *Engine) shutdown() {
	e.state = ShuttingDown
	frame := strip.NewFrame(e.opts.NumLEDs)
	pattern.Off{}.Render(frame, 0, 1)
	if err := e.opts.Sink.Write(e.opts.Profile.Render(frame)); err != nil {
		e.opts.Log.Warn().Err(err).Msg("safe-off frame failed")
	}
	e.opts.Log.Info().Msg("render loop stopped")
}
