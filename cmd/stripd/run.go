package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/example/stripd/internal/control"
	"github.com/example/stripd/internal/engine"
	"github.com/example/stripd/internal/pattern"
	"github.com/example/stripd/internal/preview"
	"github.com/example/stripd/internal/strip"
	"github.com/example/stripd/internal/tempo"
)

func newRunCmd(rf *rootFlags) *cobra.Command {
	var (
		modeDuration int
		modes        []string
		previewAddr  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the animation daemon",
		Long: `Renders the configured mode sequence in rotation, listens on the control
socket for live speed changes and optionally streams frames to browser
preview clients.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rf.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mode-duration") {
				cfg.ModeDurationSecs = modeDuration
			}
			if cmd.Flags().Changed("modes") {
				cfg.Modes = modes
			}
			if cmd.Flags().Changed("preview-addr") {
				cfg.PreviewAddr = previewAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			registry := pattern.Defaults(strip.WarmWhite())
			rotation := make([]pattern.Pattern, 0, len(cfg.Modes))
			for _, name := range cfg.Modes {
				p, ok := registry.Get(name)
				if !ok {
					return fmt.Errorf("unknown mode %q, have %v", name, registry.List())
				}
				rotation = append(rotation, p)
			}
			if len(rotation) == 0 {
				return fmt.Errorf("no modes configured")
			}

			sink, profile, err := buildOutput(cfg)
			if err != nil {
				return err
			}
			defer sink.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			tc := tempo.New(tempo.DefaultSpeed)
			ctl := control.New(cfg.SocketPath, tc, log.Logger)
			if err := ctl.Start(ctx); err != nil {
				return err
			}
			defer ctl.Close()

			opts := engine.Options{
				Patterns:     rotation,
				Profile:      profile,
				Sink:         sink,
				Tempo:        tc,
				NumLEDs:      cfg.NumLEDs,
				Tick:         time.Duration(cfg.DelayMs) * time.Millisecond,
				ModeDuration: time.Duration(cfg.ModeDurationSecs) * time.Second,
				Flipped:      cfg.Flipped,
				Log:          log.Logger,
			}

			if cfg.PreviewAddr != "" {
				pv := preview.New(cfg.PreviewAddr, cfg.NumLEDs, log.Logger)
				if err := pv.Start(); err != nil {
					return err
				}
				defer pv.Close()
				opts.OnFrame = pv.Broadcast
			}

			eng, err := engine.New(opts)
			if err != nil {
				return err
			}

			log.Info().
				Int("leds", cfg.NumLEDs).
				Str("driver", cfg.Driver).
				Strs("modes", cfg.Modes).
				Msg("daemon starting")
			return eng.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&modeDuration, "mode-duration", 30, "seconds before rotating to the next mode")
	cmd.Flags().StringSliceVar(&modes, "modes", nil, "mode rotation sequence, e.g. rainbow,chase")
	cmd.Flags().StringVar(&previewAddr, "preview-addr", "", "HTTP address for the browser preview, e.g. :8080")
	return cmd
}
