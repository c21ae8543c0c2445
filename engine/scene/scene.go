// package scene is the per-frame orchestrator: it owns every component of the experience,
// advances them in a fixed order from the scroll progress and issues the three render passes.
package scene

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/camera"
	"github.com/Carmen-Shannon/oxy-warp/engine/game_object"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/physics"
	"github.com/Carmen-Shannon/oxy-warp/engine/pointer"
	"github.com/Carmen-Shannon/oxy-warp/engine/portal"
	"github.com/Carmen-Shannon/oxy-warp/engine/profiler"
	"github.com/Carmen-Shannon/oxy-warp/engine/progress"
	"github.com/Carmen-Shannon/oxy-warp/engine/raymarch"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/steering"
	"github.com/Carmen-Shannon/oxy-warp/engine/title"
	"github.com/Carmen-Shannon/oxy-warp/engine/warp"
	"github.com/chewxy/math32"
)

// Scene lights, matching the warp scene's look.
const (
	AmbientColor         uint32  = 0x8b8abd
	AmbientIntensity     float32 = 2.5
	DirectionalColor     uint32  = 0xb3c3f2
	DirectionalIntensity float32 = 9
)

// DirectionalFrom is the position the directional light shines from.
var DirectionalFrom = common.Vec3{5, 5, 5}

// Outputs are the values the scene exposes to its host.
type Outputs struct {
	// DevicePixelRatio is the monitor's DPR, capped during the portal transition.
	DevicePixelRatio float32
	// SpaceSceneActive mirrors the warp activated signal.
	SpaceSceneActive bool
	Hovered          [steering.BodyCount]bool
	// Progress is the smoothed progress. It does not trigger OnOutputChange on its own.
	Progress float32
}

// changed reports whether an edge-triggering output differs.
func (o Outputs) changed(prev Outputs) bool {
	return o.DevicePixelRatio != prev.DevicePixelRatio ||
		o.SpaceSceneActive != prev.SpaceSceneActive ||
		o.Hovered != prev.Hovered
}

// HoveredIndex returns the index of the hovered body, or -1.
func (o Outputs) HoveredIndex() int {
	for i, h := range o.Hovered {
		if h {
			return i
		}
	}
	return -1
}

// Scene owns one session. Frame and Render run on the render goroutine; the input hooks,
// Resize and Outputs may be called from any goroutine.
type Scene interface {
	// Init registers every pipeline and creates the GPU resources. Until Init succeeds Render
	// does nothing, while Frame still advances the simulation.
	//
	// Parameters:
	//   - r: the renderer
	//   - noise: the RG noise texture sampled by the raymarch shader
	//   - blueNoise: the dither texture
	//
	// Returns:
	//   - error: an error if a pipeline or GPU resource fails
	Init(r renderer.Renderer, noise, blueNoise *common.TextureStagingData) error

	// Renderer returns the renderer passed to Init, or nil.
	Renderer() renderer.Renderer

	// Frame advances every component by dt seconds in the fixed order: progress, camera,
	// raymarch uniforms, portal blend, warp, steering, pointer, physics step and outputs.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Frame(dt float32)

	// Render uploads the frame's uniforms and issues the raymarch pass, the warp scene pass
	// and the swapchain pass.
	//
	// Returns:
	//   - error: an error if a pass fails
	Render() error

	// Resize records a new framebuffer size. Cameras follow on the next Frame, the swapchain
	// and render targets on the next Render.
	//
	// Parameters:
	//   - width, height: the framebuffer size in pixels
	Resize(width, height int)

	// OnScroll ingests a wheel delta, positive scrolling down.
	OnScroll(deltaY float32)

	// OnTouchDrag ingests a drag delta. Mostly horizontal drags are ignored.
	//
	// Parameters:
	//   - deltaY: upward drag distance in pixels
	//   - deltaX: horizontal drag distance in pixels
	OnTouchDrag(deltaY, deltaX float32)

	// OnPointerMove stores the pointer position, read at the start of the next Frame.
	//
	// Parameters:
	//   - ndcX, ndcY: pointer position in [-1, 1], +Y up
	//   - inside: false once the pointer leaves the window
	OnPointerMove(ndcX, ndcY float32, inside bool)

	// OnCycle queues a slot rotation, applied at the start of the next Frame.
	//
	// Parameters:
	//   - dir: +1 for next, -1 for previous
	OnCycle(dir int)

	// SetRefreshRate selects the perf monitor's frame rate bounds.
	SetRefreshRate(hz float32)

	// SetPayloads replaces the content shown by the bodies, keyed by body ID.
	SetPayloads(payloads map[string]common.Payload)

	// Outputs returns the outputs of the last Frame.
	Outputs() Outputs

	// Bodies returns a snapshot of the steered bodies.
	Bodies() [steering.BodyCount]steering.Body

	// Layout returns the session layout.
	Layout() config.Layout

	// Release frees every GPU resource the scene created.
	Release()
}

type scene struct {
	mu *sync.Mutex

	cfg    *config.Config
	layout config.Layout
	r      renderer.Renderer
	ready  bool

	width, height int
	elapsed       float32

	tracker  progress.Tracker
	rail     camera.RailController
	mainCam  camera.Camera
	spaceCam camera.Camera

	raymarch raymarch.Stage
	upscaler raymarch.Upscaler
	title    title.Title

	blend  portal.Blend
	portal portal.Stage
	bloom  portal.Bloom

	velocity  warp.Velocity
	field     warp.Field
	particles warp.Stage

	world    physics.World
	steering steering.System
	pointer  pointer.Pointer
	lights   []light.Light
	lighting material.Material
	bodies   [steering.BodyCount]game_object.GameObject
	glow     game_object.GameObject

	monitor     profiler.Monitor
	spaceTarget renderer.RenderTarget

	pending      []bind_group_provider.BufferWrite
	targetsDirty bool
	surfaceDirty bool

	outputs        Outputs
	onOutputChange func(Outputs)
	payloads       map[string]common.Payload

	// written by the input goroutine
	pointerNDC    atomic.Uint64
	pointerInside atomic.Bool
	cycles        atomic.Int32
	size          atomic.Uint64
	resized       atomic.Bool
}

var _ Scene = &scene{}

// NewScene creates every component of a session. The layout is derived once from the
// configured size.
//
// Parameters:
//   - options: functional options for the scene
//
// Returns:
//   - Scene: the scene, ready for Init
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:  &sync.Mutex{},
		cfg: config.Default(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.width <= 0 || s.height <= 0 {
		s.width, s.height = s.cfg.Window.Width, s.cfg.Window.Height
	}
	s.layout = s.cfg.DeriveLayout(s.width)
	cfg := s.cfg

	s.tracker = progress.NewTracker(progress.WithConfig(cfg.Progress))
	s.rail = camera.NewRailController(cfg.Camera.Rail, s.layout.Compact)
	s.mainCam = camera.NewCamera(camera.WithConfig(cfg.Camera), camera.WithController(s.rail))
	s.spaceCam = camera.NewCamera(camera.WithConfig(cfg.Camera))

	s.raymarch = raymarch.NewStage(raymarch.WithConfig(cfg.Raymarch), raymarch.WithLayout(s.layout))
	s.upscaler = raymarch.NewUpscaler()
	s.title = title.NewTitle(s.layout)

	s.blend = portal.NewBlend(portal.WithConfig(cfg.Portal))
	s.portal = portal.NewStage()
	s.bloom = portal.NewBloom(portal.WithThreshold(cfg.Portal.BloomThreshold))

	s.velocity = warp.NewVelocity(warp.WithVelocityConfig(cfg.Warp))
	s.field = warp.NewField(warp.WithFieldConfig(cfg.Warp), warp.WithScale(s.layout.Scale))
	s.particles = warp.NewStage(s.field, s.layout.Scale, cfg.Warp.ParticleSize)

	s.world = physics.NewWorld()
	s.steering = steering.NewSystem(s.world,
		steering.WithConfig(cfg.Steering),
		steering.WithLayout(s.layout),
		steering.WithMaxDelta(cfg.Warp.MaxDelta),
		steering.WithPayloads(s.payloads),
	)
	s.pointer = pointer.NewPointer(s.world, pointer.WithConfig(cfg.Pointer))
	s.lights = []light.Light{
		light.NewLight(light.LightTypeAmbient,
			light.WithColor(AmbientColor),
			light.WithIntensity(AmbientIntensity),
		),
		light.NewLight(light.LightTypeDirectional,
			light.WithColor(DirectionalColor),
			light.WithIntensity(DirectionalIntensity),
			light.WithDirectionFrom(DirectionalFrom),
		),
		s.pointer.Light(),
	}
	s.lighting = newLighting()
	s.bodies = newBodies(s.steering.Bodies())
	s.glow = newGlow(s.pointer)

	s.monitor = profiler.NewMonitor(
		profiler.WithConfig(cfg.Performance),
		profiler.WithOnChange(func(dpr float32) {
			common.Logger().Info("device pixel ratio", "dpr", dpr)
		}),
	)
	s.outputs = Outputs{DevicePixelRatio: s.monitor.DPR()}

	s.setAspect(s.width, s.height)
	return s
}

func (s *scene) Init(r renderer.Renderer, noise, blueNoise *common.TextureStagingData) error {
	if r == nil {
		return errors.New("scene: no renderer")
	}
	pipelines, err := s.pipelines()
	if err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if err := r.RegisterPipelines(pipelines...); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if err := initCamera(r, s.mainCam, title.PipelineKey); err != nil {
		return err
	}
	if err := initCamera(r, s.spaceCam, warp.ParticlePipelineKey); err != nil {
		return err
	}

	if err := s.raymarch.Init(r, noise, blueNoise, s.width, s.height); err != nil {
		return err
	}
	if err := s.upscaler.Init(r, s.raymarch.Target()); err != nil {
		return err
	}
	if err := s.title.Init(r); err != nil {
		return err
	}
	if err := s.resizeSpace(r, s.width, s.height); err != nil {
		return err
	}
	if err := s.bloom.Init(r, s.spaceTarget); err != nil {
		return err
	}
	if err := s.portal.Init(r, s.spaceTarget, s.bloom.Output()); err != nil {
		return err
	}
	if err := s.particles.Init(r); err != nil {
		return err
	}
	for _, obj := range s.bodies {
		if err := obj.Init(r); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}
	if err := s.glow.Init(r); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	if err := s.lighting.Init(r); err != nil {
		return fmt.Errorf("scene: %w", err)
	}

	s.r = r
	s.ready = true
	common.Logger().Info("scene ready",
		"width", s.width, "height", s.height,
		"compact", s.layout.Compact, "scale", s.layout.Scale,
		"particles", s.field.Len())
	return nil
}

// pipelines collects the pipeline of every stage.
func (s *scene) pipelines() ([]pipeline.Pipeline, error) {
	builders := []func() (pipeline.Pipeline, error){
		s.raymarch.Pipeline,
		s.upscaler.Pipeline,
		s.title.Pipeline,
		s.portal.Pipeline,
		s.particles.Pipeline,
	}
	out := make([]pipeline.Pipeline, 0, len(builders)+2)
	for _, build := range builders {
		p, err := build()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	bloom, err := s.bloom.Pipelines()
	if err != nil {
		return nil, err
	}
	out = append(out, bloom...)
	space, err := spacePipelines()
	if err != nil {
		return nil, err
	}
	return append(out, space...), nil
}

// initCamera creates a camera's uniform bind group from a pipeline's group 0 layout.
func initCamera(r renderer.Renderer, cam camera.Camera, pipelineKey string) error {
	desc, err := r.BindGroupLayout(pipelineKey, 0)
	if err != nil {
		return fmt.Errorf("scene: camera: %w", err)
	}
	if err := r.InitBindGroup(cam.BindGroupProvider(), desc, nil, nil); err != nil {
		return fmt.Errorf("scene: camera: %w", err)
	}
	return nil
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Frame(dt float32) {
	dt = max(0, dt)
	s.elapsed += dt

	if s.resized.Swap(false) {
		size := s.size.Load()
		s.width, s.height = int(size>>32), int(uint32(size))
		s.setAspect(s.width, s.height)
		s.targetsDirty = true
		s.surfaceDirty = true
	}
	if n := s.cycles.Swap(0); n != 0 {
		s.steering.Cycle(int(n))
	}

	// progress and camera
	p := s.tracker.Update(dt)
	m := camera.Map(p, s.layout.Compact, s.cfg.Camera.Rail)
	s.rail.Apply(m)
	s.mainCam.Update()

	// raymarch uniforms and title
	s.pending = append(s.pending[:0], s.raymarch.Prepare(s.elapsed, s.mainCam.Position(), p)...)
	s.pending = append(s.pending, s.title.Sync(m.TextOpacity)...)

	// portal blend
	s.blend.Update(p, dt)
	if s.blend.ScatterRose() {
		s.field.Scatter()
	}

	// warp
	enabled := s.blend.EffectsEnabled()
	tr := s.velocity.Update(dt, enabled)
	if tr.Changed() {
		common.Logger().Debug("warp state", "from", tr.From, "to", tr.To, "velocity", s.velocity.Value())
	}
	s.field.Update(dt, s.velocity.Value(), enabled)
	s.pending = append(s.pending, s.particles.Sync()...)

	// steering and pointer
	ndcX, ndcY := unpackNDC(s.pointerNDC.Load())
	inside := s.pointerInside.Load()
	var ray steering.Ray
	if inside {
		origin, dir := s.spaceCam.Ray(ndcX, ndcY)
		ray = steering.Ray{Origin: origin, Dir: dir}
	}
	s.steering.Update(dt, s.velocity.Activated(), ray)
	viewW, viewH := s.spaceCam.ViewportAt(s.spaceCam.Position()[2])
	s.pointer.Update(ndcX, ndcY, viewW, viewH, inside && s.velocity.Activated())
	s.world.Step(min(dt, s.cfg.Warp.MaxDelta))
	s.pending = s.syncSpace(s.pending)

	// outputs
	s.monitor.Sample(dt)
	s.publish(p)
}

// publish stores the frame outputs and notifies the host when one of them changed.
func (s *scene) publish(p float32) {
	dpr := s.monitor.DPR()
	if p > s.cfg.Portal.Start && s.cfg.Portal.TransitionDPR > 0 {
		dpr = min(dpr, s.cfg.Portal.TransitionDPR)
	}
	out := Outputs{
		DevicePixelRatio: dpr,
		SpaceSceneActive: s.velocity.Activated(),
		Progress:         p,
	}
	if h := s.steering.Hovered(); h >= 0 {
		out.Hovered[h] = true
	}

	s.mu.Lock()
	prev := s.outputs
	s.outputs = out
	s.mu.Unlock()

	if !out.changed(prev) {
		return
	}
	if out.DevicePixelRatio != prev.DevicePixelRatio {
		s.targetsDirty = true
	}
	if out.SpaceSceneActive != prev.SpaceSceneActive {
		common.Logger().Info("space scene", "active", out.SpaceSceneActive)
	}
	if s.onOutputChange != nil {
		s.onOutputChange(out)
	}
}

func (s *scene) Render() error {
	if !s.ready {
		return nil
	}
	r := s.r
	if s.surfaceDirty {
		r.Resize(s.width, s.height)
		s.surfaceDirty = false
	}
	if s.targetsDirty {
		if _, err := s.raymarch.Resize(r, s.width, s.height); err != nil {
			return err
		}
		if err := s.resizeSpace(r, s.width, s.height); err != nil {
			return err
		}
		s.targetsDirty = false
	}

	writes := s.pending
	up, err := s.upscaler.Sync(r, s.raymarch.Target())
	if err != nil {
		return err
	}
	writes = append(writes, up...)
	bw, err := s.bloom.Prepare(r)
	if err != nil {
		return err
	}
	writes = append(writes, bw...)
	effects := s.blend.EffectsEnabled()
	var glow float32
	if effects {
		glow = s.cfg.Portal.BloomIntensity
	}
	pw, err := s.portal.Prepare(r, portal.GPUPortalParams{
		Resolution: [2]float32{float32(s.width), float32(s.height)},
		Blend:      s.blend.Value(),
		Aberration: s.velocity.Aberration(),
		Bloom:      glow,
	})
	if err != nil {
		return err
	}
	writes = append(writes, pw...)
	writes = append(writes, cameraWrite(s.mainCam), cameraWrite(s.spaceCam))
	r.WriteBuffers(writes)
	s.pending = writes[:0]

	// pass A
	if err := s.raymarch.Render(r); err != nil {
		return err
	}
	// pass B
	if s.blend.Visible() {
		if err := s.renderSpace(r); err != nil {
			return err
		}
		if effects {
			if err := s.bloom.Render(r); err != nil {
				return fmt.Errorf("scene: %w", err)
			}
		}
	}
	// pass C
	if err := r.BeginFrame(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	var errs []error
	if s.raymarch.Visible() {
		errs = append(errs, s.upscaler.Draw(r))
	}
	mainGroup := s.mainCam.BindGroupProvider()
	errs = append(errs,
		s.title.Draw(r, mainGroup),
		s.portal.Draw(r, mainGroup, s.blend.Visible()),
	)
	r.EndFrame()
	r.Present()
	return errors.Join(errs...)
}

func cameraWrite(cam camera.Camera) bind_group_provider.BufferWrite {
	u := cam.Uniform()
	return bind_group_provider.BufferWrite{
		Provider: cam.BindGroupProvider(),
		Binding:  0,
		Data:     u.Marshal(),
	}
}

func (s *scene) setAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	s.mainCam.SetAspect(aspect)
	s.spaceCam.SetAspect(aspect)
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.size.Store(uint64(uint32(width))<<32 | uint64(uint32(height)))
	s.resized.Store(true)
}

func (s *scene) OnScroll(deltaY float32) {
	s.tracker.Ingest(deltaY, 0, false)
}

func (s *scene) OnTouchDrag(deltaY, deltaX float32) {
	s.tracker.Ingest(deltaY, deltaX, true)
}

func (s *scene) OnPointerMove(ndcX, ndcY float32, inside bool) {
	s.pointerNDC.Store(packNDC(ndcX, ndcY))
	s.pointerInside.Store(inside)
}

func (s *scene) OnCycle(dir int) {
	s.cycles.Add(int32(dir))
}

func (s *scene) SetRefreshRate(hz float32) {
	s.monitor.SetRefreshRate(hz)
}

func (s *scene) SetPayloads(payloads map[string]common.Payload) {
	s.steering.SetPayloads(payloads)
}

func (s *scene) Outputs() Outputs {
	return s.outputsSnapshot()
}

func (s *scene) outputsSnapshot() Outputs {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outputs
}

func (s *scene) Bodies() [steering.BodyCount]steering.Body {
	return s.steering.Bodies()
}

func (s *scene) Layout() config.Layout {
	return s.layout
}

func (s *scene) Release() {
	s.raymarch.Release()
	s.upscaler.Release()
	s.title.Release()
	s.portal.Release()
	s.bloom.Release()
	s.particles.Release()
	for _, obj := range s.bodies {
		obj.Release()
	}
	s.glow.Release()
	s.lighting.Release()
	if s.spaceTarget != nil {
		s.spaceTarget.Release()
		s.spaceTarget = nil
	}
	s.ready = false
}

func packNDC(x, y float32) uint64 {
	return uint64(math32.Float32bits(x))<<32 | uint64(math32.Float32bits(y))
}

func unpackNDC(v uint64) (x, y float32) {
	return math32.Float32frombits(uint32(v >> 32)), math32.Float32frombits(uint32(v))
}
