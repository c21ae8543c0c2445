package portal

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// BloomExtractPipelineKey is the offscreen pipeline thresholding and downsampling the source.
	BloomExtractPipelineKey = "portal.bloom.extract"
	// BloomBlurPipelineKey is the offscreen pipeline of both separable blur passes.
	BloomBlurPipelineKey = "portal.bloom.blur"

	// BloomTargetA holds the extracted and the final blurred glow.
	BloomTargetA = "portal.bloom.a"
	// BloomTargetB holds the horizontally blurred glow.
	BloomTargetB = "portal.bloom.b"

	// BloomDivisor is the downsampling factor from the source to the bloom targets.
	BloomDivisor = 4
)

const (
	bloomParamsBinding  = 0
	bloomTextureBinding = 1
	bloomSamplerBinding = 2
)

// Bloom blurs the bright parts of the warp scene target at reduced resolution. The result in
// Output is added by the composite, scaled by the bloom intensity.
type Bloom interface {
	// Pipelines builds the extract and blur render pipelines.
	//
	// Returns:
	//   - []pipeline.Pipeline: the pipelines keyed BloomExtractPipelineKey and BloomBlurPipelineKey
	//   - error: an error if a shader fails to reflect
	Pipelines() ([]pipeline.Pipeline, error)

	// Init uploads the triangle, creates the bloom targets and binds the source. The pipelines
	// must be registered first.
	//
	// Parameters:
	//   - r: the renderer
	//   - source: the warp scene target
	//
	// Returns:
	//   - error: an error if the source is nil or a GPU resource fails
	Init(r renderer.Renderer, source renderer.RenderTarget) error

	// Ready reports whether Init succeeded.
	Ready() bool

	// Resize points the extract pass at a new source and recreates the bloom targets when the
	// downsampled size changed. Bind groups are rebuilt by the next Prepare.
	//
	// Parameters:
	//   - r: the renderer
	//   - source: the warp scene target
	//
	// Returns:
	//   - error: an error if a target cannot be created
	Resize(r renderer.Renderer, source renderer.RenderTarget) error

	// Output returns the target holding the blurred glow, nil before Init.
	Output() renderer.RenderTarget

	// Prepare rebinds changed views and builds the pass uniforms after a resize.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the uniform writes, nil when nothing changed
	//   - error: an error if a rebind fails
	Prepare(r renderer.Renderer) ([]bind_group_provider.BufferWrite, error)

	// Render issues the extract pass and both blur passes.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: an error if a pass fails
	Render(r renderer.Renderer) error

	// Release frees the bloom targets, the triangle and the materials. The source is not released.
	Release()
}

type bloomImpl struct {
	triangle   model.Model
	extract    material.Material
	horizontal material.Material
	vertical   material.Material

	source renderer.RenderTarget
	a, b   renderer.RenderTarget

	threshold float32
	stale     bool
	ready     bool
}

var _ Bloom = &bloomImpl{}

// NewBloom creates the bloom stage.
//
// Parameters:
//   - options: functional options for the bloom stage
//
// Returns:
//   - Bloom: the bloom stage, ready for Init
func NewBloom(options ...BloomBuilderOption) Bloom {
	vertices, indices := model.FullscreenTriangle()
	b := &bloomImpl{
		triangle: model.NewModel(
			model.WithName("portal.bloom"),
			model.WithMesh(vertices, indices),
		),
		extract:    bloomMaterial("portal.bloom.extract", BloomExtractPipelineKey),
		horizontal: bloomMaterial("portal.bloom.horizontal", BloomBlurPipelineKey),
		vertical:   bloomMaterial("portal.bloom.vertical", BloomBlurPipelineKey),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func bloomMaterial(name, key string) material.Material {
	return material.NewMaterial(
		material.WithName(name),
		material.WithPipeline(key, 0),
		material.WithSampler(bloomSamplerBinding, common.ClampSampler()),
	)
}

func (b *bloomImpl) Pipelines() ([]pipeline.Pipeline, error) {
	include := shader.WithInclude("bloom", GPUBloomParamsSource)
	out := make([]pipeline.Pipeline, 0, 2)
	for _, p := range []struct{ key, fragment string }{
		{BloomExtractPipelineKey, bloomExtractSource},
		{BloomBlurPipelineKey, bloomBlurSource},
	} {
		vs, err := shader.NewShader(p.key+".vs", shader.ShaderTypeVertex, bloomVertexSource)
		if err != nil {
			return nil, err
		}
		fs, err := shader.NewShader(p.key+".fs", shader.ShaderTypeFragment, p.fragment, include)
		if err != nil {
			return nil, err
		}
		out = append(out, pipeline.NewPipeline(p.key,
			pipeline.WithVertexShader(vs),
			pipeline.WithFragmentShader(fs),
			pipeline.WithTarget(pipeline.TargetOffscreen),
			pipeline.WithDepthAttachment(false),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
		))
	}
	return out, nil
}

func (b *bloomImpl) Init(r renderer.Renderer, source renderer.RenderTarget) error {
	if source == nil {
		return errors.New("bloom: no source target")
	}
	mesh := b.triangle.MeshProvider()
	if err := r.InitMeshBuffers(mesh, b.triangle.VertexData(), b.triangle.IndexData(), b.triangle.IndexCount()); err != nil {
		return fmt.Errorf("bloom: mesh: %w", err)
	}
	if err := b.Resize(r, source); err != nil {
		return err
	}
	for _, m := range []material.Material{b.extract, b.horizontal, b.vertical} {
		if err := m.Init(r); err != nil {
			return fmt.Errorf("bloom: %w", err)
		}
	}
	b.ready = true
	return nil
}

func (b *bloomImpl) Ready() bool {
	return b.ready
}

func (b *bloomImpl) Resize(r renderer.Renderer, source renderer.RenderTarget) error {
	if source == nil {
		return errors.New("bloom: no source target")
	}
	if source != b.source {
		b.source = source
		b.extract.SetTextureView(bloomTextureBinding, source.View())
		b.stale = true
	}
	w, h := max(1, source.Width()/BloomDivisor), max(1, source.Height()/BloomDivisor)
	if b.a != nil && b.a.Width() == w && b.a.Height() == h {
		return nil
	}
	a, err := r.CreateRenderTarget(BloomTargetA, w, h, false)
	if err != nil {
		return fmt.Errorf("bloom: target %dx%d: %w", w, h, err)
	}
	bt, err := r.CreateRenderTarget(BloomTargetB, w, h, false)
	if err != nil {
		a.Release()
		return fmt.Errorf("bloom: target %dx%d: %w", w, h, err)
	}
	b.releaseTargets()
	b.a, b.b = a, bt
	b.horizontal.SetTextureView(bloomTextureBinding, a.View())
	b.vertical.SetTextureView(bloomTextureBinding, bt.View())
	b.stale = true
	return nil
}

func (b *bloomImpl) Output() renderer.RenderTarget {
	return b.a
}

func (b *bloomImpl) Prepare(r renderer.Renderer) ([]bind_group_provider.BufferWrite, error) {
	if !b.ready {
		return nil, nil
	}
	for _, m := range []material.Material{b.extract, b.horizontal, b.vertical} {
		if _, err := m.Rebind(r); err != nil {
			return nil, fmt.Errorf("bloom: %w", err)
		}
	}
	if !b.stale {
		return nil, nil
	}
	b.stale = false

	extract := GPUBloomParams{TexelSize: texelSize(b.source), Threshold: b.threshold}
	blurTexel := texelSize(b.a)
	horizontal := GPUBloomParams{TexelSize: blurTexel, Direction: [2]float32{1, 0}}
	vertical := GPUBloomParams{TexelSize: blurTexel, Direction: [2]float32{0, 1}}
	return []bind_group_provider.BufferWrite{
		b.extract.Write(bloomParamsBinding, extract.Marshal()),
		b.horizontal.Write(bloomParamsBinding, horizontal.Marshal()),
		b.vertical.Write(bloomParamsBinding, vertical.Marshal()),
	}, nil
}

func texelSize(t renderer.RenderTarget) [2]float32 {
	return [2]float32{1 / float32(max(1, t.Width())), 1 / float32(max(1, t.Height()))}
}

func (b *bloomImpl) Render(r renderer.Renderer) error {
	if !b.ready || !b.extract.Ready() || !b.horizontal.Ready() || !b.vertical.Ready() {
		return nil
	}
	// a -> b -> a, no pass samples the target it writes
	if err := b.pass(r, b.a, BloomExtractPipelineKey, b.extract); err != nil {
		return err
	}
	if err := b.pass(r, b.b, BloomBlurPipelineKey, b.horizontal); err != nil {
		return err
	}
	return b.pass(r, b.a, BloomBlurPipelineKey, b.vertical)
}

func (b *bloomImpl) pass(r renderer.Renderer, target renderer.RenderTarget, key string, m material.Material) error {
	if err := r.BeginOffscreenPass(target, wgpu.Color{}); err != nil {
		return fmt.Errorf("bloom: %s: %w", m.Name(), err)
	}
	defer r.EndOffscreenPass()
	return r.OffscreenDrawCall(key, b.triangle.MeshProvider(), []bind_group_provider.BindGroupProvider{
		m.BindGroupProvider(),
	})
}

func (b *bloomImpl) releaseTargets() {
	if b.a != nil {
		b.a.Release()
	}
	if b.b != nil {
		b.b.Release()
	}
	b.a, b.b = nil, nil
}

func (b *bloomImpl) Release() {
	for _, m := range []material.Material{b.extract, b.horizontal, b.vertical} {
		m.Release()
	}
	b.triangle.MeshProvider().Release()
	b.releaseTargets()
	b.source = nil
	b.ready = false
}
