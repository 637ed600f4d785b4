package led

import (
	"fmt"
	"sync"
)

// Sim is an in-memory sink for headless runs and tests. It records the last
// frame written and how many frames it has seen.
type Sim struct {
	mu     sync.Mutex
	count  int
	frames int
	last   []byte
	closed bool
}

// NewSim returns a sink that accepts frames of count pixels.
func NewSim(count int) *Sim {
	return &Sim{count: count}
}

func (s *Sim) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("sim sink closed")
	}
	if len(rgb) != s.count*3 {
		return fmt.Errorf("frame length %d does not match %d pixels", len(rgb), s.count)
	}
	s.last = append(s.last[:0], rgb...)
	s.frames++
	return nil
}

func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// LastFrame returns a copy of the most recent frame, or nil.
func (s *Sim) LastFrame() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	return append([]byte(nil), s.last...)
}

// Frames returns the number of frames written so far.
func (s *Sim) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
