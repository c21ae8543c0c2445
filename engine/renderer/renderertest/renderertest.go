// Package renderertest provides a recording Renderer for exercising GPU-facing components
// without a device.
package renderertest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoPass is returned by draws issued outside a matching pass.
var ErrNoPass = errors.New("renderertest: draw outside pass")

// Draw records one draw call.
type Draw struct {
	Pipeline  string
	Mesh      string
	Groups    []string
	Offscreen bool
	Target    string
}

// Target is a RenderTarget without textures. Its views are distinct non-nil pointers so
// identity comparisons behave as with real targets.
type Target struct {
	label         string
	width, height int
	view          *wgpu.TextureView
	released      bool
}

var _ renderer.RenderTarget = &Target{}

func (t *Target) Label() string                { return t.label }
func (t *Target) View() *wgpu.TextureView      { return t.view }
func (t *Target) DepthView() *wgpu.TextureView { return nil }
func (t *Target) Width() int                   { return t.width }
func (t *Target) Height() int                  { return t.height }
func (t *Target) Release()                     { t.released = true }

// Released reports whether Release was called.
func (t *Target) Released() bool { return t.released }

// Renderer records every call. Fields are guarded by mu; read them through the accessors.
type Renderer struct {
	mu sync.Mutex

	pipelines map[string]pipeline.Pipeline

	draws    []Draw
	writes   []bind_group_provider.BufferWrite
	targets  []*Target
	bound    map[string]int
	textures map[string]int
	frames   int

	pass      string
	offscreen bool

	// FailBeginFrame makes BeginFrame return an error, as when the swapchain is lost.
	FailBeginFrame bool
}

var _ renderer.Renderer = &Renderer{}

// New creates an empty recording renderer.
func New() *Renderer {
	return &Renderer{
		pipelines: make(map[string]pipeline.Pipeline),
		bound:     make(map[string]int),
		textures:  make(map[string]int),
	}
}

func (r *Renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelines[key]
}

func (r *Renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		if _, ok := r.pipelines[p.PipelineKey()]; !ok {
			r.pipelines[p.PipelineKey()] = p
		}
	}
	return nil
}

func (r *Renderer) BindGroupLayout(pipelineKey string, group int) (wgpu.BindGroupLayoutDescriptor, error) {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return wgpu.BindGroupLayoutDescriptor{}, fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	merged := renderer.MergeBindGroupLayouts(
		p.Shader(shader.ShaderTypeVertex).BindGroupLayoutDescriptors(),
		p.Shader(shader.ShaderTypeFragment).BindGroupLayoutDescriptors(),
	)
	desc, ok := merged[group]
	if !ok {
		return wgpu.BindGroupLayoutDescriptor{}, fmt.Errorf("render pipeline %q has no bind group %d", pipelineKey, group)
	}
	return desc, nil
}

func (r *Renderer) Resize(width, height int) {}

func (r *Renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (r *Renderer) InitInstanceBuffer(provider bind_group_provider.BindGroupProvider, size uint64) error {
	return nil
}

func (r *Renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bound[provider.Label()]++
	return nil
}

func (r *Renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	if uint32(len(stagingData.Pixels)) != stagingData.Width*stagingData.Height*4 {
		return fmt.Errorf("texture %dx%d: got %d bytes", stagingData.Width, stagingData.Height, len(stagingData.Pixels))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textures[provider.Label()]++
	return nil
}

func (r *Renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (r *Renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, writes...)
}

func (r *Renderer) CreateRenderTarget(label string, width, height int, withDepth bool) (renderer.RenderTarget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := &Target{label: label, width: width, height: height, view: new(wgpu.TextureView)}
	r.targets = append(r.targets, t)
	return t, nil
}

func (r *Renderer) BeginOffscreenPass(target renderer.RenderTarget, clear wgpu.Color) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pass = target.Label()
	r.offscreen = true
	return nil
}

func (r *Renderer) OffscreenDrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	return r.record(pipelineKey, meshProvider, bindGroups, true)
}

func (r *Renderer) EndOffscreenPass() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pass = ""
	r.offscreen = false
}

func (r *Renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailBeginFrame {
		return errors.New("renderertest: surface lost")
	}
	r.pass = "swapchain"
	return nil
}

func (r *Renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider) error {
	return r.record(pipelineKey, meshProvider, bindGroups, false)
}

func (r *Renderer) record(pipelineKey string, mesh bind_group_provider.BindGroupProvider, groups []bind_group_provider.BindGroupProvider, offscreen bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pass == "" || r.offscreen != offscreen {
		return ErrNoPass
	}
	p, ok := r.pipelines[pipelineKey]
	if !ok {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	want := pipeline.TargetSwapchain
	if offscreen {
		want = pipeline.TargetOffscreen
	}
	if p.Target() != want {
		return fmt.Errorf("render pipeline %q targets %d, pass is %d", pipelineKey, p.Target(), want)
	}
	d := Draw{Pipeline: pipelineKey, Offscreen: offscreen, Target: r.pass}
	if mesh != nil {
		d.Mesh = mesh.Label()
	}
	for _, g := range groups {
		d.Groups = append(d.Groups, g.Label())
	}
	r.draws = append(r.draws, d)
	return nil
}

func (r *Renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pass = ""
	r.frames++
}

func (r *Renderer) Present() {}

func (r *Renderer) SetPresentMode(mode renderer.PresentMode) {}

func (r *Renderer) Release() {}

// Draws returns the recorded draws in issue order.
func (r *Renderer) Draws() []Draw {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Draw(nil), r.draws...)
}

// Writes returns the recorded buffer writes in issue order.
func (r *Renderer) Writes() []bind_group_provider.BufferWrite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bind_group_provider.BufferWrite(nil), r.writes...)
}

// Targets returns every render target created, in creation order.
func (r *Renderer) Targets() []*Target {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Target(nil), r.targets...)
}

// BindCount returns how many times a provider's bind group was built.
func (r *Renderer) BindCount(label string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound[label]
}

// TextureCount returns how many textures were uploaded to a provider.
func (r *Renderer) TextureCount(label string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textures[label]
}

// Frames returns how many swapchain frames ended.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Reset clears recorded draws and writes, keeping pipelines and targets.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draws = nil
	r.writes = nil
}
