package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDeriveLayout(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		force   string
		compact bool
		scale   float32
	}{
		{"phone", 390, "auto", true, 0.55},
		{"tablet edge", 768, "auto", false, 0.55},
		{"laptop", 1280, "auto", false, 0.8},
		{"reference", 1600, "auto", false, 1},
		{"ultra wide", 3000, "auto", false, 1.2},
		{"forced compact", 1600, "true", true, 1},
		{"forced wide", 390, "false", false, 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Window.Compact = tt.force
			l := cfg.DeriveLayout(tt.width)
			assert.Equal(t, tt.compact, l.Compact)
			assert.InDelta(t, tt.scale, l.Scale, 1e-6)
		})
	}
}

func TestDecodeTOML(t *testing.T) {
	cfg := Default()
	src := `
[window]
width = 800
compact = "true"

[warp]
count = 250
seed = 7

[camera.rail]
end_z = -3.0
`
	require.NoError(t, Decode(cfg, strings.NewReader(src), ".toml"))
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, "true", cfg.Window.Compact)
	assert.Equal(t, 250, cfg.Warp.Count)
	assert.Equal(t, uint64(7), cfg.Warp.Seed)
	assert.Equal(t, float32(-3), cfg.Camera.Rail.EndZ)
	assert.Equal(t, float32(-6), cfg.Camera.Rail.StartY)
}

func TestDecodeYAML(t *testing.T) {
	cfg := Default()
	src := `
portal:
  smooth_time: 0.05
steering:
  seek_wide: 0.55
`
	require.NoError(t, Decode(cfg, strings.NewReader(src), ".yml"))
	assert.Equal(t, float32(0.05), cfg.Portal.SmoothTime)
	assert.Equal(t, float32(0.55), cfg.Steering.SeekWide)
	assert.Equal(t, float32(0.1), cfg.Steering.SeekCompact)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	assert.Error(t, Decode(Default(), strings.NewReader("[warp]\nturbo = 1.0\n"), ".toml"))
	assert.Error(t, Decode(Default(), strings.NewReader("warp:\n  turbo: 1.0\n"), ".yaml"))
}

func TestDecodeUnknownFormat(t *testing.T) {
	err := Decode(Default(), strings.NewReader("{}"), ".json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeEmptyYAML(t *testing.T) {
	cfg := Default()
	require.NoError(t, Decode(cfg, strings.NewReader(""), ".yaml"))
	assert.Equal(t, Default(), cfg)
}

func TestValidateCollectsEveryError(t *testing.T) {
	cfg := Default()
	cfg.Portal.Range = 0
	cfg.Warp.BoundsZ = -1
	cfg.Progress.TouchScale = 0.01
	cfg.Portal.BloomIntensity = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "portal.range")
	assert.Contains(t, err.Error(), "warp bounds")
	assert.Contains(t, err.Error(), "touch_scale")
	assert.Contains(t, err.Error(), "portal bloom")
}

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("file overrides", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warp.toml")
		require.NoError(t, os.WriteFile(path, []byte("[raymarch]\ndivisor_wide = 4\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Raymarch.DivisorWide)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("raymarch:\n  divisor_wide: 0\n"), 0o644))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}
