//go:build linux

package led

import (
	"fmt"

	ws2811 "github.com/rpi-ws281x/rpi-ws281x-go"
)

// PWMSink drives the strip through the Raspberry Pi PWM/DMA peripheral via
// the rpi_ws281x binding. The binding applies the channel wiring itself, so
// this sink takes logical R,G,B bytes and the wiring is selected here.
type PWMSink struct {
	dev   *ws2811.WS2811
	count int
}

// NewPWM initializes channel 0 on the given BCM pin. colorOrder selects the
// strip type the binding reorders for; brightness is the hardware-level cap
// the binding applies on top of whatever the profile already scaled.
func NewPWM(gpio, count int, colorOrder string, brightness uint8) (*PWMSink, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	st, err := stripType(colorOrder)
	if err != nil {
		return nil, err
	}

	opt := ws2811.DefaultOptions
	opt.Channels[0].GpioPin = gpio
	opt.Channels[0].LedCount = count
	opt.Channels[0].Brightness = int(brightness)
	opt.Channels[0].StripeType = st

	dev, err := ws2811.MakeWS2811(&opt)
	if err != nil {
		return nil, fmt.Errorf("ws2811 setup: %w", err)
	}
	if err := dev.Init(); err != nil {
		return nil, fmt.Errorf("ws2811 init: %w", err)
	}
	return &PWMSink{dev: dev, count: count}, nil
}

func stripType(order string) (int, error) {
	switch order {
	case "RGB":
		return ws2811.WS2811StripRGB, nil
	case "RBG":
		return ws2811.WS2811StripRBG, nil
	case "GRB", "":
		return ws2811.WS2811StripGRB, nil
	case "GBR":
		return ws2811.WS2811StripGBR, nil
	case "BRG":
		return ws2811.WS2811StripBRG, nil
	case "BGR":
		return ws2811.WS2811StripBGR, nil
	}
	return 0, fmt.Errorf("unsupported color order %q for pwm driver", order)
}

func (p *PWMSink) Write(rgb []byte) error {
	if p.dev == nil {
		return fmt.Errorf("pwm sink closed")
	}
	if len(rgb) != p.count*3 {
		return fmt.Errorf("frame length %d does not match %d pixels", len(rgb), p.count)
	}
	leds := p.dev.Leds(0)
	for i := 0; i < p.count && i < len(leds); i++ {
		r := uint32(rgb[i*3+0])
		g := uint32(rgb[i*3+1])
		b := uint32(rgb[i*3+2])
		leds[i] = r<<16 | g<<8 | b
	}
	if err := p.dev.Render(); err != nil {
		return fmt.Errorf("ws2811 render: %w", err)
	}
	return nil
}

func (p *PWMSink) Close() error {
	if p.dev != nil {
		p.dev.Fini()
		p.dev = nil
	}
	return nil
}
