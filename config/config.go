// package config holds every tunable of the experience. Default carries the reference values;
// a TOML or YAML file decoded over the defaults overrides individual fields.
package config

// Config is the root configuration.
type Config struct {
	Window      WindowConfig      `toml:"window" yaml:"window"`
	Layout      LayoutConfig      `toml:"layout" yaml:"layout"`
	Progress    ProgressConfig    `toml:"progress" yaml:"progress"`
	Camera      CameraConfig      `toml:"camera" yaml:"camera"`
	Raymarch    RaymarchConfig    `toml:"raymarch" yaml:"raymarch"`
	Portal      PortalConfig      `toml:"portal" yaml:"portal"`
	Warp        WarpConfig        `toml:"warp" yaml:"warp"`
	Steering    SteeringConfig    `toml:"steering" yaml:"steering"`
	Pointer     PointerConfig     `toml:"pointer" yaml:"pointer"`
	Performance PerformanceConfig `toml:"performance" yaml:"performance"`
	Assets      AssetsConfig      `toml:"assets" yaml:"assets"`
}

// WindowConfig configures the host window and swapchain.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	VSync  bool   `toml:"vsync" yaml:"vsync"`
	MSAA   int    `toml:"msaa" yaml:"msaa"`
	// Compact forces the layout: "auto" derives it from the window width.
	Compact string `toml:"compact" yaml:"compact"`
	// FrameLimit caps the frame rate when VSync is off. Zero means uncapped.
	FrameLimit int `toml:"frame_limit" yaml:"frame_limit"`
}

// LayoutConfig derives the compact flag and the scaling factor from the viewport width.
type LayoutConfig struct {
	CompactBelow   float32 `toml:"compact_below" yaml:"compact_below"`
	ReferenceWidth float32 `toml:"reference_width" yaml:"reference_width"`
	MinScale       float32 `toml:"min_scale" yaml:"min_scale"`
	MaxScale       float32 `toml:"max_scale" yaml:"max_scale"`
}

// ProgressConfig configures scroll ingestion and smoothing.
type ProgressConfig struct {
	WheelScale   float32 `toml:"wheel_scale" yaml:"wheel_scale"`
	TouchScale   float32 `toml:"touch_scale" yaml:"touch_scale"`
	TouchRejectX float32 `toml:"touch_reject_x" yaml:"touch_reject_x"`
	Lambda       float32 `toml:"lambda" yaml:"lambda"`
}

// CameraConfig configures the perspective camera and its scroll rail.
type CameraConfig struct {
	FOV  float32    `toml:"fov" yaml:"fov"`
	Near float32    `toml:"near" yaml:"near"`
	Far  float32    `toml:"far" yaml:"far"`
	Rail RailConfig `toml:"rail" yaml:"rail"`
}

// RailConfig holds the two-phase camera path. Compact and wide values sit side by side.
type RailConfig struct {
	Split         float32 `toml:"split" yaml:"split"`
	StartY        float32 `toml:"start_y" yaml:"start_y"`
	EndYCompact   float32 `toml:"end_y_compact" yaml:"end_y_compact"`
	EndYWide      float32 `toml:"end_y_wide" yaml:"end_y_wide"`
	StartZCompact float32 `toml:"start_z_compact" yaml:"start_z_compact"`
	StartZWide    float32 `toml:"start_z_wide" yaml:"start_z_wide"`
	EndZ          float32 `toml:"end_z" yaml:"end_z"`
}

// RaymarchConfig configures the low resolution procedural stage.
type RaymarchConfig struct {
	DivisorCompact int     `toml:"divisor_compact" yaml:"divisor_compact"`
	DivisorWide    int     `toml:"divisor_wide" yaml:"divisor_wide"`
	HideAbove      float32 `toml:"hide_above" yaml:"hide_above"`
}

// PortalConfig configures the cross-fade into the warp scene.
type PortalConfig struct {
	Start            float32 `toml:"start" yaml:"start"`
	Range            float32 `toml:"range" yaml:"range"`
	SmoothTime       float32 `toml:"smooth_time" yaml:"smooth_time"`
	Epsilon          float32 `toml:"epsilon" yaml:"epsilon"`
	VisibleThreshold float32 `toml:"visible_threshold" yaml:"visible_threshold"`
	EffectsAbove     float32 `toml:"effects_above" yaml:"effects_above"`
	ScatterAbove     float32 `toml:"scatter_above" yaml:"scatter_above"`
	TransitionDPR    float32 `toml:"transition_dpr" yaml:"transition_dpr"`
	// BloomIntensity scales the glow added by the composite while effects are enabled.
	BloomIntensity float32 `toml:"bloom_intensity" yaml:"bloom_intensity"`
	BloomThreshold float32 `toml:"bloom_threshold" yaml:"bloom_threshold"`
}

// WarpConfig configures the velocity state machine and the particle field.
type WarpConfig struct {
	Baseline      float32 `toml:"baseline" yaml:"baseline"`
	Max           float32 `toml:"max" yaml:"max"`
	Accel         float32 `toml:"accel" yaml:"accel"`
	Latch         float32 `toml:"latch" yaml:"latch"`
	Decel         float32 `toml:"decel" yaml:"decel"`
	DecelFloor    float32 `toml:"decel_floor" yaml:"decel_floor"`
	ActivateBelow float32 `toml:"activate_below" yaml:"activate_below"`
	MaxDelta      float32 `toml:"max_delta" yaml:"max_delta"`
	Count         int     `toml:"count" yaml:"count"`
	BoundsXY      float32 `toml:"bounds_xy" yaml:"bounds_xy"`
	BoundsZ       float32 `toml:"bounds_z" yaml:"bounds_z"`
	SpeedFactor   float32 `toml:"speed_factor" yaml:"speed_factor"`
	MaxScale      float32 `toml:"max_scale" yaml:"max_scale"`
	Aberration    float32 `toml:"aberration" yaml:"aberration"`
	ParticleSize  float32 `toml:"particle_size" yaml:"particle_size"`
	Seed          uint64  `toml:"seed" yaml:"seed"`
}

// SteeringConfig configures the four content bodies.
type SteeringConfig struct {
	SeekCompact    float32 `toml:"seek_compact" yaml:"seek_compact"`
	SeekWide       float32 `toml:"seek_wide" yaml:"seek_wide"`
	ReturnCompact  float32 `toml:"return_compact" yaml:"return_compact"`
	ReturnWide     float32 `toml:"return_wide" yaml:"return_wide"`
	ResetDistance  float32 `toml:"reset_distance" yaml:"reset_distance"`
	LinearDamping  float32 `toml:"linear_damping" yaml:"linear_damping"`
	AngularDamping float32 `toml:"angular_damping" yaml:"angular_damping"`
	Friction       float32 `toml:"friction" yaml:"friction"`
	Mass           float32 `toml:"mass" yaml:"mass"`
	ColliderRadius float32 `toml:"collider_radius" yaml:"collider_radius"`
	HoverRadius    float32 `toml:"hover_radius" yaml:"hover_radius"`
	HoverLerp      float32 `toml:"hover_lerp" yaml:"hover_lerp"`
}

// PointerConfig configures the pointer light.
type PointerConfig struct {
	VisibleScale     float32 `toml:"visible_scale" yaml:"visible_scale"`
	VisibleIntensity float32 `toml:"visible_intensity" yaml:"visible_intensity"`
	AppearRate       float32 `toml:"appear_rate" yaml:"appear_rate"`
	DisappearRate    float32 `toml:"disappear_rate" yaml:"disappear_rate"`
	Radius           float32 `toml:"radius" yaml:"radius"`
	Distance         float32 `toml:"distance" yaml:"distance"`
	Decay            float32 `toml:"decay" yaml:"decay"`
}

// PerformanceConfig configures the adaptive device pixel ratio monitor.
type PerformanceConfig struct {
	InitialDPR   float32 `toml:"initial_dpr" yaml:"initial_dpr"`
	MinDPR       float32 `toml:"min_dpr" yaml:"min_dpr"`
	MaxDPR       float32 `toml:"max_dpr" yaml:"max_dpr"`
	Step         float32 `toml:"step" yaml:"step"`
	FallbackDPR  float32 `toml:"fallback_dpr" yaml:"fallback_dpr"`
	FlipFlops    int     `toml:"flip_flops" yaml:"flip_flops"`
	HighRefresh  float32 `toml:"high_refresh" yaml:"high_refresh"`
	LowerFPS     float32 `toml:"lower_fps" yaml:"lower_fps"`
	UpperFPSHigh float32 `toml:"upper_fps_high" yaml:"upper_fps_high"`
	UpperFPSLow  float32 `toml:"upper_fps_low" yaml:"upper_fps_low"`
	// SampleSeconds is the length of one averaging window.
	SampleSeconds float32 `toml:"sample_seconds" yaml:"sample_seconds"`
}

// AssetsConfig names the external inputs. Empty texture paths fall back to generated noise.
type AssetsConfig struct {
	Noise     string `toml:"noise" yaml:"noise"`
	BlueNoise string `toml:"blue_noise" yaml:"blue_noise"`
	Content   string `toml:"content" yaml:"content"`
	Watch     bool   `toml:"watch" yaml:"watch"`
}

// Default returns the reference configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "oxy-warp",
			Width:   1280,
			Height:  720,
			VSync:   true,
			MSAA:    1,
			Compact: "auto",
		},
		Layout: LayoutConfig{
			CompactBelow:   768,
			ReferenceWidth: 1600,
			MinScale:       0.55,
			MaxScale:       1.2,
		},
		Progress: ProgressConfig{
			WheelScale:   0.001,
			TouchScale:   0.002,
			TouchRejectX: 40,
			Lambda:       1.2,
		},
		Camera: CameraConfig{
			FOV:  75,
			Near: 0.1,
			Far:  100,
			Rail: RailConfig{
				Split:         0.5,
				StartY:        -6,
				EndYCompact:   0,
				EndYWide:      -0.2,
				StartZCompact: 5.9,
				StartZWide:    5.0,
				EndZ:          -2.5,
			},
		},
		Raymarch: RaymarchConfig{
			DivisorCompact: 3,
			DivisorWide:    5,
			HideAbove:      0.85,
		},
		Portal: PortalConfig{
			Start:            0.75,
			Range:            0.20,
			SmoothTime:       0.01,
			Epsilon:          0.001,
			VisibleThreshold: 0.001,
			EffectsAbove:     0.94,
			ScatterAbove:     0.75,
			TransitionDPR:    0.7,
			BloomIntensity:   4,
			BloomThreshold:   0,
		},
		Warp: WarpConfig{
			Baseline:      0.12,
			Max:           2.0,
			Accel:         0.6,
			Latch:         1.6,
			Decel:         5.0,
			DecelFloor:    0.01,
			ActivateBelow: 0.1,
			MaxDelta:      0.1,
			Count:         1000,
			BoundsXY:      40,
			BoundsZ:       20,
			SpeedFactor:   1.3,
			MaxScale:      35,
			Aberration:    0.006,
			ParticleSize:  0.03,
			Seed:          1,
		},
		Steering: SteeringConfig{
			SeekCompact:    0.1,
			SeekWide:       0.5,
			ReturnCompact:  0.15,
			ReturnWide:     0.6,
			ResetDistance:  1.0,
			LinearDamping:  4,
			AngularDamping: 1,
			Friction:       0.1,
			Mass:           1,
			ColliderRadius: 1.4,
			HoverRadius:    1.45,
			HoverLerp:      0.1,
		},
		Pointer: PointerConfig{
			VisibleScale:     0.2,
			VisibleIntensity: 100,
			AppearRate:       0.01,
			DisappearRate:    0.05,
			Radius:           0.2,
			Distance:         40,
			Decay:            3,
		},
		Performance: PerformanceConfig{
			InitialDPR:    1,
			MinDPR:        0.5,
			MaxDPR:        2,
			Step:          0.3,
			FallbackDPR:   0.5,
			FlipFlops:     2,
			HighRefresh:   90,
			LowerFPS:      45,
			UpperFPSHigh:  80,
			UpperFPSLow:   55,
			SampleSeconds: 0.25,
		},
	}
}

// Layout is the per-session layout derived once from the viewport width.
type Layout struct {
	Compact bool
	Scale   float32
}

// DeriveLayout derives the compact flag and scaling factor for a viewport width.
// Window.Compact "true" or "false" overrides the width test.
//
// Parameters:
//   - width: viewport width in pixels
//
// Returns:
//   - Layout: the derived layout
func (c *Config) DeriveLayout(width int) Layout {
	w := float32(width)
	scale := w / c.Layout.ReferenceWidth
	scale = max(c.Layout.MinScale, min(c.Layout.MaxScale, scale))

	compact := w < c.Layout.CompactBelow
	switch c.Window.Compact {
	case "true":
		compact = true
	case "false":
		compact = false
	}
	return Layout{Compact: compact, Scale: scale}
}
