// Package led provides the hardware sinks a rendered frame is handed to.
// A sink receives wire-ready bytes and owns the transport-specific timing;
// it is deliberately unaware of patterns, tempo or profiles.
package led

// Sink abstracts an LED output transport.
type Sink interface {
	// Write transmits one frame. len(rgb) must be 3*N in the byte order
	// the sink was configured for.
	Write(rgb []byte) error
	// Close releases the transport and leaves the hardware untouched.
	Close() error
}
