package scene

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/game_object"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/pointer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-warp/engine/steering"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/body_vert.wgsl
var bodyVertexSource string

//go:embed assets/body_frag.wgsl
var bodyFragmentSource string

//go:embed assets/glow_frag.wgsl
var glowFragmentSource string

const (
	// BodyPipelineKey is the lit pipeline of the steered bodies.
	BodyPipelineKey = "space.body"
	// GlowPipelineKey is the additive pipeline of the pointer glow.
	GlowPipelineKey = "space.glow"
	// SpaceTargetLabel labels the render target the warp scene is drawn into.
	SpaceTargetLabel = "space"
)

const (
	bodyRadius    float32 = 1
	hoverEmissive float32 = 0.35
	glowEmissive  float32 = 4
	// glowVisible is the pointer scale below which the glow is skipped.
	glowVisible float32 = 1e-3
)

// spaceClear is the background of the warp scene.
var spaceClear = wgpu.Color{R: 0, G: 0, B: 0, A: 1}

// spacePipelines builds the body and glow pipelines.
func spacePipelines() ([]pipeline.Pipeline, error) {
	bodyVS, err := shader.NewShader("space.body.vs", shader.ShaderTypeVertex, bodyVertexSource)
	if err != nil {
		return nil, err
	}
	bodyFS, err := shader.NewShader("space.body.fs", shader.ShaderTypeFragment, bodyFragmentSource)
	if err != nil {
		return nil, err
	}
	glowVS, err := shader.NewShader("space.glow.vs", shader.ShaderTypeVertex, bodyVertexSource)
	if err != nil {
		return nil, err
	}
	glowFS, err := shader.NewShader("space.glow.fs", shader.ShaderTypeFragment, glowFragmentSource)
	if err != nil {
		return nil, err
	}
	return []pipeline.Pipeline{
		pipeline.NewPipeline(BodyPipelineKey,
			pipeline.WithVertexShader(bodyVS),
			pipeline.WithFragmentShader(bodyFS),
			pipeline.WithTarget(pipeline.TargetOffscreen),
		),
		pipeline.NewPipeline(GlowPipelineKey,
			pipeline.WithVertexShader(glowVS),
			pipeline.WithFragmentShader(glowFS),
			pipeline.WithTarget(pipeline.TargetOffscreen),
			pipeline.WithDepthWriteEnabled(false),
			pipeline.WithBlendState(pipeline.BlendAdditive),
		),
	}, nil
}

// newBodies creates one lit sphere per steered body.
func newBodies(specs [steering.BodyCount]steering.Body) [steering.BodyCount]game_object.GameObject {
	var out [steering.BodyCount]game_object.GameObject
	for i, b := range specs {
		vertices, indices := model.UVSphere(bodyRadius, 32, 24)
		out[i] = game_object.NewGameObject(
			game_object.WithName("space.body."+b.ID),
			game_object.WithModel(model.NewModel(
				model.WithName("space.body."+b.ID),
				model.WithMesh(vertices, indices),
			)),
			game_object.WithPipeline(BodyPipelineKey, 1),
			game_object.WithPosition(b.Spawn),
			game_object.WithColor(b.Color),
		)
	}
	return out
}

// newGlow creates the pointer glow sphere, carrying the pointer light.
func newGlow(p pointer.Pointer) game_object.GameObject {
	vertices, indices := model.UVSphere(1, 16, 12)
	return game_object.NewGameObject(
		game_object.WithName("space.glow"),
		game_object.WithModel(model.NewModel(
			model.WithName("space.glow"),
			model.WithMesh(vertices, indices),
		)),
		game_object.WithPipeline(GlowPipelineKey, 1),
		game_object.WithColor(pointer.GlowColor),
		game_object.WithEmissive(glowEmissive),
		game_object.WithScale(common.Vec3{}),
		game_object.WithLight(p.Light()),
	)
}

// newLighting creates the lighting uniform material shared by every body draw.
func newLighting() material.Material {
	return material.NewMaterial(
		material.WithName("space.lighting"),
		material.WithPipeline(BodyPipelineKey, 2),
	)
}

// syncSpace copies the physics state onto the drawables and appends their uniform writes.
func (s *scene) syncSpace(writes []bind_group_provider.BufferWrite) []bind_group_provider.BufferWrite {
	scale := s.layout.Scale
	for i, b := range s.steering.Bodies() {
		obj := s.bodies[i]
		obj.SetPosition(b.Position)
		obj.SetRotation(b.Rotation)
		r := bodyRadius * scale * b.DisplayScale
		obj.SetScale(common.Vec3{r, r, r})
		if b.Hovered {
			obj.SetEmissive(hoverEmissive)
		} else {
			obj.SetEmissive(0)
		}
		if obj.Ready() {
			writes = append(writes, obj.Sync())
		}
	}

	g := s.pointer.Scale()
	s.glow.SetPosition(s.pointer.Position())
	s.glow.SetScale(common.Vec3{g, g, g})
	s.glow.SetEnabled(g > glowVisible)
	if vi := s.cfg.Pointer.VisibleIntensity; vi > 0 {
		s.glow.SetOpacity(common.Clamp(s.pointer.Intensity()/vi, 0, 1))
	}
	if s.glow.Ready() {
		writes = append(writes, s.glow.Sync())
	}

	if s.lighting.Ready() {
		lighting := light.PackLighting(s.lights)
		writes = append(writes, s.lighting.Write(0, lighting.Marshal()))
	}
	return writes
}

// resizeSpace recreates the warp scene target when its size changes and points the bloom and
// the portal at the new one. The old target is released after both have been repointed.
func (s *scene) resizeSpace(r renderer.Renderer, width, height int) error {
	w, h := spaceSize(width, height, s.outputsSnapshot().DevicePixelRatio)
	if s.spaceTarget != nil && s.spaceTarget.Width() == w && s.spaceTarget.Height() == h {
		return nil
	}
	target, err := r.CreateRenderTarget(SpaceTargetLabel, w, h, true)
	if err != nil {
		return fmt.Errorf("scene: space target %dx%d: %w", w, h, err)
	}
	old := s.spaceTarget
	s.spaceTarget = target
	// a failed bloom resize keeps the previous glow targets
	var bloomErr error
	if s.bloom.Ready() {
		bloomErr = s.bloom.Resize(r, target)
	}
	if s.portal.Ready() {
		s.portal.SetSource(target, s.bloom.Output())
	}
	if old != nil {
		old.Release()
	}
	if bloomErr != nil {
		return fmt.Errorf("scene: %w", bloomErr)
	}
	return nil
}

// spaceSize scales the viewport by the DPR hint, never above the viewport itself.
func spaceSize(width, height int, dpr float32) (int, int) {
	f := common.Clamp(dpr, 0, 1)
	if f == 0 {
		f = 1
	}
	return max(1, int(float32(width)*f)), max(1, int(float32(height)*f))
}

// renderSpace draws particles, bodies and the pointer glow into the space target.
func (s *scene) renderSpace(r renderer.Renderer) error {
	if err := r.BeginOffscreenPass(s.spaceTarget, spaceClear); err != nil {
		return fmt.Errorf("scene: space pass: %w", err)
	}
	defer r.EndOffscreenPass()

	cam := s.spaceCam.BindGroupProvider()
	if err := s.particles.Draw(r, cam); err != nil {
		return fmt.Errorf("scene: particles: %w", err)
	}
	if s.lighting.Ready() {
		for _, obj := range s.bodies {
			if !obj.Enabled() || !obj.Ready() {
				continue
			}
			if err := r.OffscreenDrawCall(BodyPipelineKey, obj.Model().MeshProvider(), []bind_group_provider.BindGroupProvider{
				cam,
				obj.Material().BindGroupProvider(),
				s.lighting.BindGroupProvider(),
			}); err != nil {
				return fmt.Errorf("scene: body %s: %w", obj.Name(), err)
			}
		}
	}
	if s.glow.Enabled() && s.glow.Ready() {
		if err := r.OffscreenDrawCall(GlowPipelineKey, s.glow.Model().MeshProvider(), []bind_group_provider.BindGroupProvider{
			cam,
			s.glow.Material().BindGroupProvider(),
		}); err != nil {
			return fmt.Errorf("scene: glow: %w", err)
		}
	}
	return nil
}
