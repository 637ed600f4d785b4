package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/stripd/internal/config"
)

// rootFlags carries the flag values shared by every subcommand. Flags that
// the user actually set override the config file; untouched flags defer to
// it.
type rootFlags struct {
	configPath string

	numLEDs    int
	gpioPin    int
	brightness uint8
	bigLEDs    bool
	flipped    bool
	colorOrder string
	driver     string
	delayMs    int
	socket     string
}

func newRootCmd() *cobra.Command {
	rf := &rootFlags{}
	def := config.Default()

	root := &cobra.Command{
		Use:   "stripd",
		Short: "WS2812 LED strip animation daemon",
		Long: `stripd renders animations on a WS2812/NeoPixel strip and exposes a
Unix-socket control channel for live tempo changes. Run it as a daemon with
"stripd run", or fire a single pattern with one of the pattern subcommands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rf.configPath, "config", "", "path to YAML config file")
	pf.IntVarP(&rf.numLEDs, "num-leds", "n", def.NumLEDs, "number of LEDs on the strip")
	pf.IntVarP(&rf.gpioPin, "gpio-pin", "g", def.GPIOPin, "BCM data pin for the pwm driver")
	pf.Uint8VarP(&rf.brightness, "brightness", "b", def.Brightness, "global brightness 0-255")
	pf.BoolVar(&rf.bigLEDs, "big-leds", def.BigLEDs, "tune colors for the big diffused LED build")
	pf.BoolVar(&rf.flipped, "flipped", def.Flipped, "reverse the strip direction")
	pf.StringVar(&rf.colorOrder, "color-order", def.ColorOrder, "strip channel wiring, e.g. GRB")
	pf.StringVar(&rf.driver, "driver", def.Driver, "output driver: pwm | spi | term | sim")
	pf.IntVar(&rf.delayMs, "delay-ms", def.DelayMs, "delay per frame in milliseconds")
	pf.StringVar(&rf.socket, "socket", def.SocketPath, "control socket path")

	root.AddCommand(newRunCmd(rf))
	for _, c := range newOneShotCmds(rf) {
		root.AddCommand(c)
	}
	return root
}

// resolve merges the config file (when given) with the flags the user set,
// then validates the result.
func (rf *rootFlags) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if rf.configPath != "" {
		loaded, err := config.Load(rf.configPath)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file %s not found", rf.configPath)
			}
			return nil, err
		}
		cfg = *loaded
		log.Info().Str("path", rf.configPath).Msg("config loaded")
	}

	if fs.Changed("num-leds") {
		cfg.NumLEDs = rf.numLEDs
	}
	if fs.Changed("gpio-pin") {
		cfg.GPIOPin = rf.gpioPin
	}
	if fs.Changed("brightness") {
		cfg.Brightness = rf.brightness
	}
	if fs.Changed("big-leds") {
		cfg.BigLEDs = rf.bigLEDs
	}
	if fs.Changed("flipped") {
		cfg.Flipped = rf.flipped
	}
	if fs.Changed("color-order") {
		cfg.ColorOrder = rf.colorOrder
	}
	if fs.Changed("driver") {
		cfg.Driver = rf.driver
	}
	if fs.Changed("delay-ms") {
		cfg.DelayMs = rf.delayMs
	}
	if fs.Changed("socket") {
		cfg.SocketPath = rf.socket
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
