package scene

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithConfig sets the configuration every component is built from.
//
// Parameters:
//   - cfg: the configuration, config.Default() when nil
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConfig(cfg *config.Config) SceneBuilderOption {
	return func(s *scene) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithSize sets the initial framebuffer size. The layout is derived from the width.
// Defaults to the configured window size.
//
// Parameters:
//   - width, height: the framebuffer size in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSize(width, height int) SceneBuilderOption {
	return func(s *scene) {
		s.width, s.height = width, height
	}
}

// WithOnOutputChange registers a callback fired from Frame whenever the DPR hint, the space
// scene flag or the hovered body changes.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithOnOutputChange(fn func(Outputs)) SceneBuilderOption {
	return func(s *scene) {
		s.onOutputChange = fn
	}
}

// WithPayloads sets the initial body content, keyed by body ID.
func WithPayloads(payloads map[string]common.Payload) SceneBuilderOption {
	return func(s *scene) {
		s.payloads = payloads
	}
}
