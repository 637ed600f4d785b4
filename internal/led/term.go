package led

import (
	"fmt"
	"io"

	"periph.io/x/extra/devices/screen"
)

// TermSink renders frames as ANSI color blocks on the controlling terminal.
// Useful for developing patterns on a machine without a strip attached.
type TermSink struct {
	dev io.Writer
	n   int
}

// NewTerm returns a terminal sink for count pixels.
func NewTerm(count int) (*TermSink, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	return &TermSink{dev: screen.New(count), n: count}, nil
}

func (t *TermSink) Write(rgb []byte) error {
	if len(rgb) != t.n*3 {
		return fmt.Errorf("frame length %d does not match %d pixels", len(rgb), t.n)
	}
	if _, err := t.dev.Write(rgb); err != nil {
		return fmt.Errorf("term write: %w", err)
	}
	return nil
}

func (t *TermSink) Close() error { return nil }
