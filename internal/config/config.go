package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SPI holds the WS2812-over-SPI transport settings.
type SPI struct {
	Dev     string `yaml:"dev"`      // e.g. /dev/spidev0.0; empty = first port
	SpeedHz int    `yaml:"speed_hz"` // e.g. 2500000
}

// Config is the startup configuration. Immutable after startup; the only
// runtime-mutable knob (speed) lives in the tempo controller instead.
type Config struct {
	NumLEDs    int    `yaml:"num_leds"`
	GPIOPin    int    `yaml:"gpio_pin"`
	Brightness uint8  `yaml:"brightness"`
	ColorOrder string `yaml:"color_order"`
	BigLEDs    bool   `yaml:"big_leds"`
	Flipped    bool   `yaml:"flipped"`

	Driver string `yaml:"driver"` // "pwm" | "spi" | "term" | "sim"
	SPI    SPI    `yaml:"spi,omitempty"`

	DelayMs          int      `yaml:"delay_ms"`
	ModeDurationSecs int      `yaml:"mode_duration_secs"`
	Modes            []string `yaml:"modes,omitempty"`

	SocketPath  string `yaml:"socket"`
	PreviewAddr string `yaml:"preview_addr,omitempty"` // empty = preview disabled
}

// Default mirrors the flag defaults of the CLI.
func Default() Config {
	return Config{
		NumLEDs:          8,
		GPIOPin:          18,
		Brightness:       255,
		ColorOrder:       "GRB",
		Driver:           "pwm",
		DelayMs:          20,
		ModeDurationSecs: 30,
		Modes:            []string{"rainbow", "chase", "breathe"},
		SocketPath:       "/tmp/stripd.sock",
	}
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

// Save writes the config back out as YAML.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Validate reports the first invalid startup parameter. Any error here is
// fatal: the process must not start.
func (c *Config) Validate() error {
	if c.NumLEDs <= 0 {
		return fmt.Errorf("num_leds must be > 0, got %d", c.NumLEDs)
	}
	if c.GPIOPin < 0 || c.GPIOPin > 53 {
		return fmt.Errorf("gpio_pin %d out of range", c.GPIOPin)
	}
	if c.DelayMs <= 0 {
		return fmt.Errorf("delay_ms must be > 0, got %d", c.DelayMs)
	}
	if c.ModeDurationSecs <= 0 {
		return fmt.Errorf("mode_duration_secs must be > 0, got %d", c.ModeDurationSecs)
	}
	switch c.Driver {
	case "pwm", "spi", "term", "sim":
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.SocketPath == "" {
		return fmt.Errorf("socket path must not be empty")
	}
	return nil
}
