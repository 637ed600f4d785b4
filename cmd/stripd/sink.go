package main

import (
	"fmt"

	"github.com/example/stripd/internal/config"
	"github.com/example/stripd/internal/led"
	"github.com/example/stripd/internal/strip"
)

// buildOutput constructs the hardware sink and the matching color profile.
// The pwm binding reorders channels and scales brightness in hardware, so its
// profile stays at identity order and full brightness to avoid correcting
// twice; every other driver gets the corrections applied in software.
func buildOutput(cfg *config.Config) (led.Sink, strip.Profile, error) {
	order, err := strip.ParseOrder(cfg.ColorOrder)
	if err != nil {
		return nil, strip.Profile{}, err
	}

	profile := strip.Profile{
		Order:      order,
		Brightness: cfg.Brightness,
		Trim:       strip.TrimForSize(cfg.BigLEDs),
	}

	var sink led.Sink
	switch cfg.Driver {
	case "pwm":
		profile.Order = strip.OrderRGB
		profile.Brightness = 255
		sink, err = led.NewPWM(cfg.GPIOPin, cfg.NumLEDs, cfg.ColorOrder, cfg.Brightness)
	case "spi":
		sink, err = led.NewSPI(cfg.SPI.Dev, cfg.NumLEDs, cfg.SPI.SpeedHz)
	case "term":
		sink, err = led.NewTerm(cfg.NumLEDs)
	case "sim":
		sink = led.NewSim(cfg.NumLEDs)
	default:
		err = fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, strip.Profile{}, fmt.Errorf("driver %s: %w", cfg.Driver, err)
	}
	return sink, profile, nil
}
