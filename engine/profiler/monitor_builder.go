package profiler

import "github.com/Carmen-Shannon/oxy-warp/config"

// MonitorBuilderOption is a functional option for configuring a Monitor.
type MonitorBuilderOption func(*monitorImpl)

// WithConfig applies the performance section of the configuration.
//
// Parameters:
//   - cfg: the performance configuration
//
// Returns:
//   - MonitorBuilderOption: a function that applies the configuration to a monitorImpl
func WithConfig(cfg config.PerformanceConfig) MonitorBuilderOption {
	return func(m *monitorImpl) {
		m.cfg = cfg
	}
}

// WithOnChange registers a callback fired when the ratio changes.
//
// Parameters:
//   - fn: the callback, receiving the new ratio
//
// Returns:
//   - MonitorBuilderOption: a function that sets the callback on a monitorImpl
func WithOnChange(fn func(dpr float32)) MonitorBuilderOption {
	return func(m *monitorImpl) {
		m.onChange = fn
	}
}
