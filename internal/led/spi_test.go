package led

import (
	"bytes"
	"testing"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestSPIFromPortWritesEncodedFrame(t *testing.T) {
	buf := bytes.Buffer{}
	s, err := newSPIFromPort(spitest.NewRecordRaw(&buf), 4, 2500*physic.KiloHertz)
	if err != nil {
		t.Fatal(err)
	}
	frame := []byte{
		0xFF, 0x00, 0x00,
		0x00, 0xFF, 0x00,
		0x00, 0x00, 0xFF,
		0x80, 0x80, 0x80,
	}
	if err := s.Write(frame); err != nil {
		t.Fatalf("write: %v", err)
	}
	// The NRZ encoder expands each bit, so the recorded stream must be
	// strictly longer than the raw frame.
	if buf.Len() <= len(frame) {
		t.Fatalf("expected expanded NRZ stream, recorded %d bytes", buf.Len())
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSPIRejectsWrongFrameLength(t *testing.T) {
	buf := bytes.Buffer{}
	s, err := newSPIFromPort(spitest.NewRecordRaw(&buf), 4, 2500*physic.KiloHertz)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Write(make([]byte, 9)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestSPIRejectsZeroCount(t *testing.T) {
	if _, err := NewSPI("", 0, 0); err == nil {
		t.Fatal("expected error for zero count")
	}
}
