package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stripd/internal/config"
	"github.com/example/stripd/internal/strip"
)

func TestFlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_leds: 60\ndriver: sim\nbrightness: 100\n"), 0644))

	root := newRootCmd()
	root.SetArgs([]string{"off", "--config", path, "-n", "10"})
	require.NoError(t, root.Execute())
}

func TestResolveRejectsInvalidMerge(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"off", "--driver", "sim", "-n", "0"})
	assert.Error(t, root.Execute())
}

func TestResolveMissingConfigFile(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"off", "--config", "/does/not/exist.yaml"})
	assert.Error(t, root.Execute())
}

func TestBuildOutputSim(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "sim"
	cfg.Brightness = 128

	sink, profile, err := buildOutput(&cfg)
	require.NoError(t, err)
	defer sink.Close()

	assert.Equal(t, strip.OrderGRB, profile.Order)
	assert.Equal(t, uint8(128), profile.Brightness)
	assert.Equal(t, strip.SmallLEDTrim, profile.Trim)
}

func TestBuildOutputRejectsBadOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Driver = "sim"
	cfg.ColorOrder = "RRB"
	_, _, err := buildOutput(&cfg)
	assert.Error(t, err)
}

func TestParseHexColor(t *testing.T) {
	px, err := parseHexColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, strip.Pixel{R: 255, G: 136, B: 0}, px)

	px, err = parseHexColor("001020")
	require.NoError(t, err)
	assert.Equal(t, strip.Pixel{R: 0, G: 16, B: 32}, px)

	for _, bad := range []string{"", "ff88", "zzzzzz", "#12345"} {
		_, err := parseHexColor(bad)
		assert.Error(t, err, bad)
	}
}
