package material

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// Binder is the slice of the renderer a Material needs to create its GPU resources.
// renderer.Renderer satisfies it.
type Binder interface {
	BindGroupLayout(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, error)
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error
}

// material is the implementation of the Material interface.
type material struct {
	name        string
	pipelineKey string
	group       int

	textures map[int]*common.TextureStagingData
	samplers map[int]common.SamplerStagingData
	// views are borrowed texture views, typically render target outputs.
	views map[int]*wgpu.TextureView

	bufferSizes map[int]uint64

	initialized bool
	dirty       bool

	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for one bind group of a pipeline: the textures, samplers and
// uniform buffers a draw binds at a fixed group index, plus the GPU provider holding them.
//
// Staged textures and samplers are uploaded once by Init. Borrowed views (render target
// outputs) can be reassigned at any time with SetTextureView; the bind group is rebuilt by
// the next Rebind. A material whose Init has not succeeded is not Ready and draws using it
// should be skipped.
type Material interface {
	// Name retrieves the material identifier.
	Name() string

	// PipelineKey retrieves the key identifying the render pipeline this material binds into.
	PipelineKey() string

	// Group retrieves the bind group index this material occupies.
	Group() int

	// BindGroupProvider retrieves the provider holding the GPU-side resources.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Ready reports whether the bind group exists and matches the current views.
	Ready() bool

	// SetTextureView assigns a borrowed texture view to a binding. The bind group is marked
	// stale when the view differs from the current one.
	//
	// Parameters:
	//   - binding: the texture binding index
	//   - view: the view, owned by the caller
	SetTextureView(binding int, view *wgpu.TextureView)

	// Init uploads staged textures and samplers and creates the bind group.
	//
	// Parameters:
	//   - b: the renderer
	//
	// Returns:
	//   - error: an error naming the material if any resource fails
	Init(b Binder) error

	// Rebind rebuilds the bind group when a borrowed view changed since the last build.
	// It does nothing when the material is current.
	//
	// Parameters:
	//   - b: the renderer
	//
	// Returns:
	//   - bool: true if the bind group was rebuilt
	//   - error: an error if the rebuild fails
	Rebind(b Binder) (bool, error)

	// Write builds the buffer write for a uniform binding of this material.
	//
	// Parameters:
	//   - binding: the uniform binding index
	//   - data: the marshalled uniform
	//
	// Returns:
	//   - bind_group_provider.BufferWrite: the write to hand to Renderer.WriteBuffers
	Write(binding int, data []byte) bind_group_provider.BufferWrite

	// Release frees every GPU resource the material owns. Borrowed views stay alive.
	Release()
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		textures:    make(map[int]*common.TextureStagingData),
		samplers:    make(map[int]common.SamplerStagingData),
		views:       make(map[int]*wgpu.TextureView),
		bufferSizes: make(map[int]uint64),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider(m.name)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) Group() int {
	return m.group
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) Ready() bool {
	return m.initialized && !m.dirty
}

func (m *material) SetTextureView(binding int, view *wgpu.TextureView) {
	if cur, ok := m.views[binding]; ok && cur == view {
		return
	}
	m.views[binding] = view
	m.dirty = true
}

func (m *material) Init(b Binder) error {
	if b == nil {
		return fmt.Errorf("material %s: no renderer", m.name)
	}
	for _, binding := range slices.Sorted(maps.Keys(m.textures)) {
		if err := b.InitTextureView(m.bindGroupProvider, binding, *m.textures[binding]); err != nil {
			return fmt.Errorf("material %s: texture %d: %w", m.name, binding, err)
		}
	}
	for _, binding := range slices.Sorted(maps.Keys(m.samplers)) {
		if err := b.InitSampler(m.bindGroupProvider, binding, m.samplers[binding]); err != nil {
			return fmt.Errorf("material %s: sampler %d: %w", m.name, binding, err)
		}
	}
	// staged pixels are on the GPU now
	clear(m.textures)

	if err := m.build(b); err != nil {
		return err
	}
	m.initialized = true
	return nil
}

func (m *material) Rebind(b Binder) (bool, error) {
	if !m.initialized || !m.dirty {
		return false, nil
	}
	if err := m.build(b); err != nil {
		return false, err
	}
	return true, nil
}

// build binds the borrowed views and creates the bind group from the pipeline's merged layout.
func (m *material) build(b Binder) error {
	desc, err := b.BindGroupLayout(m.pipelineKey, m.group)
	if err != nil {
		return fmt.Errorf("material %s: %w", m.name, err)
	}
	for binding, view := range m.views {
		m.bindGroupProvider.BorrowTextureView(binding, view)
	}
	if err := b.InitBindGroup(m.bindGroupProvider, desc, nil, m.bufferSizes); err != nil {
		return fmt.Errorf("material %s: bind group: %w", m.name, err)
	}
	m.dirty = false
	return nil
}

func (m *material) Write(binding int, data []byte) bind_group_provider.BufferWrite {
	return bind_group_provider.BufferWrite{
		Provider: m.bindGroupProvider,
		Binding:  binding,
		Data:     data,
	}
}

func (m *material) Release() {
	m.bindGroupProvider.Release()
	m.initialized = false
}
