//go:build !linux

package led

import "fmt"

type PWMSink struct{}

func NewPWM(gpio, count int, colorOrder string, brightness uint8) (*PWMSink, error) {
	return nil, fmt.Errorf("pwm driver not supported on this platform")
}

func (p *PWMSink) Write(rgb []byte) error { return nil }
func (p *PWMSink) Close() error           { return nil }
