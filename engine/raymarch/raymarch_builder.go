package raymarch

import "github.com/Carmen-Shannon/oxy-warp/config"

// StageBuilderOption is a functional option for configuring a Stage.
type StageBuilderOption func(*stageImpl)

// WithConfig applies the raymarch section of the configuration.
//
// Parameters:
//   - cfg: the raymarch configuration
//
// Returns:
//   - StageBuilderOption: a function that applies the configuration to a stageImpl
func WithConfig(cfg config.RaymarchConfig) StageBuilderOption {
	return func(s *stageImpl) {
		s.cfg = cfg
	}
}

// WithLayout selects the target divisor from the compact flag.
//
// Parameters:
//   - layout: the derived layout
//
// Returns:
//   - StageBuilderOption: a function that applies the layout to a stageImpl
func WithLayout(layout config.Layout) StageBuilderOption {
	return func(s *stageImpl) {
		s.layout = layout
	}
}
