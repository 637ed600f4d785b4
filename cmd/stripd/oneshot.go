package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/example/stripd/internal/engine"
	"github.com/example/stripd/internal/pattern"
	"github.com/example/stripd/internal/strip"
	"github.com/example/stripd/internal/tempo"
)

// newOneShotCmds builds the pattern subcommands. Each one runs a single
// pattern with rotation disabled until interrupted; "off" just darkens the
// strip and exits.
func newOneShotCmds(rf *rootFlags) []*cobra.Command {
	var (
		speed     float64
		colorHex  string
		window    int
		stepDelay float64
		period    float64
		minLevel  float64
		maxLevel  float64
	)

	color := func() (strip.Pixel, error) {
		if colorHex == "" {
			return strip.WarmWhite(), nil
		}
		return parseHexColor(colorHex)
	}

	rainbow := &cobra.Command{
		Use:   "rainbow",
		Short: "Cycle a rainbow along the strip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOneShot(cmd, rf, speed, pattern.Rainbow{})
		},
	}

	solid := &cobra.Command{
		Use:   "solid",
		Short: "Light the whole strip in one color",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := color()
			if err != nil {
				return err
			}
			return runOneShot(cmd, rf, speed, pattern.Solid{Color: c})
		},
	}

	chase := &cobra.Command{
		Use:   "chase",
		Short: "Sweep a lit window along the strip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := color()
			if err != nil {
				return err
			}
			return runOneShot(cmd, rf, speed, pattern.Chase{Color: c, Window: window, StepDelay: stepDelay})
		},
	}
	chase.Flags().IntVar(&window, "window", 3, "lit pixels in the moving window")
	chase.Flags().Float64Var(&stepDelay, "step-delay", 0.05, "seconds per step at speed 1.0")

	breathe := &cobra.Command{
		Use:   "breathe",
		Short: "Pulse the strip between two brightness levels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := color()
			if err != nil {
				return err
			}
			return runOneShot(cmd, rf, speed, pattern.Breathe{Color: c, Period: period, Min: minLevel, Max: maxLevel})
		},
	}
	breathe.Flags().Float64Var(&period, "period", 4, "seconds per breath at speed 1.0")
	breathe.Flags().Float64Var(&minLevel, "min", 0.05, "brightness floor 0..1")
	breathe.Flags().Float64Var(&maxLevel, "max", 1, "brightness ceiling 0..1")

	off := &cobra.Command{
		Use:   "off",
		Short: "Turn the strip off and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			sink, profile, err := buildOutput(cfg)
			if err != nil {
				return err
			}
			defer sink.Close()
			return sink.Write(profile.Render(strip.NewFrame(cfg.NumLEDs)))
		},
	}

	animated := []*cobra.Command{rainbow, solid, chase, breathe}
	for _, c := range animated {
		c.Flags().Float64Var(&speed, "speed", tempo.DefaultSpeed, "animation speed multiplier")
	}
	for _, c := range []*cobra.Command{solid, chase, breathe} {
		c.Flags().StringVar(&colorHex, "color", "", `hex color like "ff8800"; default warm white`)
	}
	return append(animated, off)
}

// runOneShot drives a single pattern until SIGINT/SIGTERM.
func runOneShot(cmd *cobra.Command, rf *rootFlags, speed float64, p pattern.Pattern) error {
	cfg, err := rf.resolve(cmd.Flags())
	if err != nil {
		return err
	}
	sink, profile, err := buildOutput(cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	tc := tempo.New(speed)
	eng, err := engine.New(engine.Options{
		Patterns: []pattern.Pattern{p},
		Profile:  profile,
		Sink:     sink,
		Tempo:    tc,
		NumLEDs:  cfg.NumLEDs,
		Tick:     time.Duration(cfg.DelayMs) * time.Millisecond,
		Flipped:  cfg.Flipped,
		Log:      log.Logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("pattern", p.Name()).Float64("speed", tc.Speed()).Msg("one-shot starting")
	return eng.Run(ctx)
}

// parseHexColor accepts "rrggbb" with an optional leading '#'.
func parseHexColor(s string) (strip.Pixel, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return strip.Pixel{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return strip.Pixel{}, fmt.Errorf("color %q: %v", s, err)
	}
	return strip.Pixel{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
