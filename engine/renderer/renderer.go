package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *wgpu.Color
}

// Renderer defines the interface for the rendering system.
//
// The Renderer caches pipelines by key, owns the GPU resources created for BindGroupProviders,
// and drives two kinds of passes: offscreen passes into RenderTargets, and the swapchain pass
// that ends every frame.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipeline objects via the backend and caches them by PipelineKey.
	// Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// BindGroupLayout returns the merged layout descriptor of one bind group of a cached pipeline.
	// Bind groups drawn with that pipeline must be created from this descriptor.
	//
	// Parameters:
	//   - pipelineKey: the cached pipeline
	//   - group: the bind group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the merged descriptor
	//   - error: an error if the pipeline is unknown or has no such group
	BindGroupLayout(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, error)

	// Resize reconfigures the swapchain for a new surface size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// InitMeshBuffers creates GPU vertex and index buffers and stores them on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU
	//   - indexCount: the number of indices, used for draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitInstanceBuffer allocates a per-instance vertex buffer on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the buffer on
	//   - size: the size in bytes
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, size uint64) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the provider. Textures and samplers must be set on the provider first.
	// Calling it again rebuilds the bind group, which is how a resized render target is rebound.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferUsageOverrides: additional buffer usage flags keyed by binding index (nil safe)
	//   - bufferSizeOverrides: custom buffer sizes keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error

	// InitTextureView uploads staging data to a new texture and stores its view on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created texture view on
	//   - bindingKey: the binding index for this texture
	//   - stagingData: the pixel data and dimensions for the texture
	//
	// Returns:
	//   - error: an error if texture creation fails
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a GPU sampler and stores it on the provider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created sampler on
	//   - bindingKey: the binding index for this sampler
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if sampler creation fails
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// CreateRenderTarget allocates an offscreen color target.
	//
	// Parameters:
	//   - label: the debug label
	//   - width, height: the size in pixels
	//   - withDepth: whether the target carries a depth attachment
	//
	// Returns:
	//   - RenderTarget: the created target
	//   - error: an error if allocation fails
	CreateRenderTarget(label string, width, height int, withDepth bool) (RenderTarget, error)

	// BeginOffscreenPass begins a pass into target. Must be paired with EndOffscreenPass.
	//
	// Parameters:
	//   - target: the RenderTarget to draw into
	//   - clear: the clear color
	//
	// Returns:
	//   - error: an error if the pass could not begin
	BeginOffscreenPass(target RenderTarget, clear wgpu.Color) error

	// OffscreenDrawCall draws mesh with a cached offscreen pipeline in the open offscreen pass.
	//
	// Parameters:
	//   - pipelineKey: the cached pipeline
	//   - meshProvider: the provider holding the vertex, index and instance buffers
	//   - bindGroups: providers bound at group 0..n-1
	//
	// Returns:
	//   - error: an error if the pipeline is not found or targets the swapchain
	OffscreenDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndOffscreenPass ends and submits the open offscreen pass.
	EndOffscreenPass()

	// BeginFrame acquires the swapchain texture and begins the swapchain pass.
	// Must be paired with EndFrame after all DrawCall invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall draws mesh with a cached swapchain pipeline in the current frame.
	// The draw is instanced by meshProvider.InstanceCount().
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the provider holding the vertex, index and instance buffers
	//   - bindGroups: providers bound at group 0..n-1
	//
	// Returns:
	//   - error: an error if the pipeline is not found or targets an offscreen pass
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the swapchain pass and submits the command buffer to the GPU.
	// Does not present the surface, call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// SetPresentMode sets the surface present mode. A call to Resize is required after changing
	// this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Release frees every cached pipeline and the GPU device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type, bound to the given surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the window providing the surface descriptor and framebuffer size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	// options first so forceFallbackAdapter is known before the adapter request
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAAOff
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	r.backend.ConfigureSurface(surface.Width(), surface.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("pipeline %s: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) BindGroupLayout(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, error) {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return wgpu.BindGroupLayoutDescriptor{}, fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	merged := MergeBindGroupLayouts(
		p.Shader(shader.ShaderTypeVertex).BindGroupLayoutDescriptors(),
		p.Shader(shader.ShaderTypeFragment).BindGroupLayoutDescriptors(),
	)
	desc, ok := merged[group]
	if !ok {
		return wgpu.BindGroupLayoutDescriptor{}, fmt.Errorf("render pipeline %q has no bind group %d", pipelineKey, group)
	}
	return desc, nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, size uint64) error {
	return r.backend.InitInstanceBuffer(provider, size)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferUsageOverrides, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) CreateRenderTarget(label string, width, height int, withDepth bool) (RenderTarget, error) {
	return r.backend.CreateRenderTarget(label, width, height, withDepth)
}

func (r *renderer) BeginOffscreenPass(target RenderTarget, clear wgpu.Color) error {
	return r.backend.BeginOffscreenPass(target, clear)
}

func (r *renderer) OffscreenDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.lookup(pipelineKey, pipeline.TargetOffscreen)
	if err != nil {
		return err
	}
	r.backend.OffscreenDrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndOffscreenPass() {
	r.backend.EndOffscreenPass()
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	p, err := r.lookup(pipelineKey, pipeline.TargetSwapchain)
	if err != nil {
		return err
	}
	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

// lookup fetches a cached pipeline and checks it was built for the pass it is drawn in.
func (r *renderer) lookup(pipelineKey string, target pipeline.Target) (pipeline.Pipeline, error) {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return nil, fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	if p.Target() != target {
		return nil, fmt.Errorf("render pipeline %q targets %d, pass is %d", pipelineKey, p.Target(), target)
	}
	return p, nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()
	r.backend.Release()
}
