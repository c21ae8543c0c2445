package warp

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/chewxy/math32"
)

// Particle is one streak of the field.
type Particle struct {
	X, Y, Z float32
	// ScaleZ is the streak length factor, 1 at rest.
	ScaleZ float32
	// Brightness is the grayscale color in [0, 1].
	Brightness float32
}

// Field is a fixed population of particles flowing toward +Z and wrapping back to the far
// bound. It never allocates after construction.
type Field interface {
	// Scatter draws new random positions for every particle.
	Scatter()

	// Update advances every particle by max(dt, velocity*speedFactor), wrapping particles that
	// pass the near bound to the far bound, and refreshes scale and brightness.
	//
	// Parameters:
	//   - dt: elapsed seconds, clamped to the configured maximum
	//   - velocity: the warp velocity
	//   - enabled: whether the warp effects are enabled
	Update(dt, velocity float32, enabled bool)

	// Len returns the particle count.
	Len() int

	// Particles returns the particle slice. The slice is owned by the field and rewritten by
	// every Update.
	Particles() []Particle

	// Bounds returns the XY and Z extents of the field.
	Bounds() (xy, z float32)

	// Instances writes the GPU instance data of every particle into dst, reusing its capacity.
	//
	// Parameters:
	//   - dst: the destination buffer
	//
	// Returns:
	//   - []byte: dst with len(Particles)*GPUParticleInstanceSize bytes
	Instances(dst []byte) []byte
}

type fieldImpl struct {
	cfg   config.WarpConfig
	scale float32
	rng   *rand.Rand

	boundsXY  float32
	boundsZ   float32
	particles []Particle
}

var _ Field = &fieldImpl{}

// NewField creates and scatters the particle field. The count and bounds are multiplied by
// the layout scaling factor.
//
// Parameters:
//   - options: functional options for the field
//
// Returns:
//   - Field: the particle field
func NewField(options ...FieldBuilderOption) Field {
	f := &fieldImpl{
		cfg:   config.Default().Warp,
		scale: 1,
	}
	for _, opt := range options {
		opt(f)
	}
	f.rng = rand.New(rand.NewPCG(f.cfg.Seed, f.cfg.Seed^0x9e3779b97f4a7c15))

	count := max(0, int(math32.Round(float32(f.cfg.Count)*f.scale)))
	f.boundsXY = f.cfg.BoundsXY * f.scale
	f.boundsZ = f.cfg.BoundsZ * f.scale
	f.particles = make([]Particle, count)
	f.Scatter()
	return f
}

func (f *fieldImpl) Scatter() {
	for i := range f.particles {
		p := &f.particles[i]
		p.X = (f.rng.Float32() - 0.5) * f.boundsXY
		p.Y = (f.rng.Float32() - 0.5) * f.boundsXY
		p.Z = (f.rng.Float32() - 0.5) * f.boundsZ
		p.ScaleZ = 1
		p.Brightness = brightness(p.Z, f.boundsZ)
	}
}

func (f *fieldImpl) Update(dt, velocity float32, enabled bool) {
	dt = max(0, min(dt, f.cfg.MaxDelta))
	step := max(dt, velocity*f.cfg.SpeedFactor)

	var on float32
	if enabled {
		on = 1
	}
	scaleZ := max(1, velocity*f.cfg.MaxScale*on)

	half := f.boundsZ / 2
	for i := range f.particles {
		p := &f.particles[i]
		next := p.Z + step
		if next > half {
			next = -half
		}
		p.Z = next
		p.ScaleZ = scaleZ
		p.Brightness = brightness(p.Z, f.boundsZ)
	}
}

// brightness is full for z > 0 and dims linearly to zero at the far bound.
func brightness(z, boundsZ float32) float32 {
	if z > 0 || boundsZ <= 0 {
		return 1
	}
	return 1 - z/(-boundsZ/2)
}

func (f *fieldImpl) Len() int {
	return len(f.particles)
}

func (f *fieldImpl) Particles() []Particle {
	return f.particles
}

func (f *fieldImpl) Bounds() (xy, z float32) {
	return f.boundsXY, f.boundsZ
}

func (f *fieldImpl) Instances(dst []byte) []byte {
	dst = dst[:0]
	var inst GPUParticleInstance
	for _, p := range f.particles {
		inst = GPUParticleInstance{
			Offset: [3]float32{p.X, p.Y, p.Z},
			ScaleZ: p.ScaleZ,
			Color:  [4]float32{p.Brightness, p.Brightness, p.Brightness, 1},
		}
		dst = inst.AppendTo(dst)
	}
	return dst
}
