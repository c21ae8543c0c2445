package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// Load reads the file at path over the defaults and validates the result.
// The format is chosen by extension: .toml, .yaml or .yml. An empty path returns the defaults.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if the file cannot be opened, decoded or validated
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if err := Decode(cfg, f, filepath.Ext(path)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode decodes r into cfg. Fields absent from the stream keep their current values.
// Unknown keys are rejected.
//
// Parameters:
//   - cfg: the config to decode into
//   - r: the encoded stream
//   - ext: the file extension selecting the format
//
// Returns:
//   - error: error if the format is unknown or decoding fails
func Decode(cfg *Config, r io.Reader, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(r).DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	return nil
}

// Validate checks every field that would otherwise produce a degenerate frame.
// All failures are reported together, wrapped with ErrInvalid.
//
// Returns:
//   - error: nil when the config is usable
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.MSAA == 1 || c.Window.MSAA == 4, "window.msaa must be 1 or 4, got %d", c.Window.MSAA)
	check(c.Window.Compact == "auto" || c.Window.Compact == "true" || c.Window.Compact == "false",
		"window.compact must be auto, true or false, got %q", c.Window.Compact)

	check(c.Layout.ReferenceWidth > 0, "layout.reference_width must be positive")
	check(c.Layout.MinScale > 0 && c.Layout.MinScale <= c.Layout.MaxScale, "layout scale range is empty")

	check(c.Progress.TouchScale >= 0.001 && c.Progress.TouchScale <= 0.002,
		"progress.touch_scale must be within [0.001, 0.002], got %g", c.Progress.TouchScale)
	check(c.Progress.Lambda > 0, "progress.lambda must be positive")

	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "camera clip range must satisfy 0 < near < far")
	check(c.Camera.FOV > 0 && c.Camera.FOV < 180, "camera.fov must be within (0, 180)")
	check(c.Camera.Rail.Split > 0 && c.Camera.Rail.Split < 1, "camera.rail.split must be within (0, 1)")

	check(c.Raymarch.DivisorCompact >= 1 && c.Raymarch.DivisorWide >= 1, "raymarch divisors must be at least 1")

	check(c.Portal.Range > 0, "portal.range must be positive")
	check(c.Portal.SmoothTime > 0, "portal.smooth_time must be positive")
	check(c.Portal.BloomIntensity >= 0 && c.Portal.BloomThreshold >= 0, "portal bloom values must not be negative")

	check(c.Warp.Baseline > 0 && c.Warp.Baseline < c.Warp.Max, "warp.baseline must be within (0, max)")
	check(c.Warp.Latch <= c.Warp.Max, "warp.latch must not exceed warp.max")
	check(c.Warp.ActivateBelow < c.Warp.Latch, "warp.activate_below must be below warp.latch")
	check(c.Warp.BoundsZ > 0 && c.Warp.BoundsXY > 0, "warp bounds must be positive")
	check(c.Warp.Count > 0, "warp.count must be positive")
	check(c.Warp.MaxDelta > 0, "warp.max_delta must be positive")

	check(c.Steering.Mass > 0, "steering.mass must be positive")
	check(c.Steering.ColliderRadius > 0 && c.Steering.HoverRadius > 0, "steering radii must be positive")

	check(c.Pointer.AppearRate > 0 && c.Pointer.AppearRate <= 1, "pointer.appear_rate must be within (0, 1]")
	check(c.Pointer.DisappearRate > 0 && c.Pointer.DisappearRate <= 1, "pointer.disappear_rate must be within (0, 1]")

	check(c.Performance.MinDPR > 0 && c.Performance.MinDPR <= c.Performance.MaxDPR, "performance dpr range is empty")
	check(c.Performance.SampleSeconds > 0, "performance.sample_seconds must be positive")

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
