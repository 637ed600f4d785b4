package led

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// SPISink drives a WS2812 strip through a spidev port using the NRZ encoder
// from periph.io. The encoder handles the bit timing; callers hand it bytes
// already in the strip's wire order.
type SPISink struct {
	dev  io.Writer
	port spi.PortCloser
	n    int
}

// NewSPI opens the named SPI port ("" = first available) and prepares the
// NRZ device for count pixels. speedHz <= 0 selects 2.5 MHz, which leaves the
// WS2812 800 kHz data rate plenty of margin with 3x bit expansion.
func NewSPI(dev string, count int, speedHz int) (*SPISink, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %w", err)
	}
	port, err := spireg.Open(dev)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", dev, err)
	}
	freq := 2500 * physic.KiloHertz
	if speedHz > 0 {
		freq = physic.Frequency(speedHz) * physic.Hertz
	}
	s, err := newSPIFromPort(port, count, freq)
	if err != nil {
		_ = port.Close()
		return nil, err
	}
	return s, nil
}

func newSPIFromPort(port spi.PortCloser, count int, freq physic.Frequency) (*SPISink, error) {
	d, err := nrzled.NewSPI(port, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &SPISink{dev: d, port: port, n: count}, nil
}

func (s *SPISink) Write(rgb []byte) error {
	if len(rgb) != s.n*3 {
		return fmt.Errorf("frame length %d does not match %d pixels", len(rgb), s.n)
	}
	if _, err := s.dev.Write(rgb); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

func (s *SPISink) Close() error {
	if s.port != nil {
		return s.port.Close()
	}
	return nil
}
