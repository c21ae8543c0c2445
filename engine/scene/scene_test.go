package scene

import (
	"encoding/binary"
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/camera"
	"github.com/Carmen-Shannon/oxy-warp/engine/portal"
	"github.com/Carmen-Shannon/oxy-warp/engine/raymarch"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-warp/engine/steering"
	"github.com/Carmen-Shannon/oxy-warp/engine/title"
	"github.com/Carmen-Shannon/oxy-warp/engine/warp"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texture() *common.TextureStagingData {
	return &common.TextureStagingData{Pixels: make([]byte, 4*4*4), Width: 4, Height: 4}
}

func newTestScene(t *testing.T, options ...SceneBuilderOption) (*scene, *renderertest.Renderer) {
	t.Helper()
	cfg := config.Default()
	cfg.Warp.Count = 64
	options = append([]SceneBuilderOption{WithConfig(cfg), WithSize(1280, 720)}, options...)
	s := NewScene(options...).(*scene)
	r := renderertest.New()
	require.NoError(t, s.Init(r, texture(), texture()))
	return s, r
}

// run advances n frames of dt, rendering each.
func run(t *testing.T, s Scene, n int, dt float32) {
	t.Helper()
	for range n {
		s.Frame(dt)
		require.NoError(t, s.Render())
	}
}

func targets(draws []renderertest.Draw) map[string][]string {
	out := map[string][]string{}
	for _, d := range draws {
		out[d.Target] = append(out[d.Target], d.Pipeline)
	}
	return out
}

func TestInitErrors(t *testing.T) {
	s := NewScene(WithSize(1280, 720))
	require.Error(t, s.Init(nil, texture(), texture()))
	require.Error(t, s.Init(renderertest.New(), nil, texture()))

	s.Frame(0.016)
	assert.NoError(t, s.Render(), "an uninitialized scene renders nothing")
	assert.Nil(t, s.Renderer())
}

func TestLayoutFromSize(t *testing.T) {
	wide := NewScene(WithSize(1600, 900))
	assert.Equal(t, config.Layout{Compact: false, Scale: 1}, wide.Layout())

	compact := NewScene(WithSize(390, 844))
	assert.True(t, compact.Layout().Compact)
	assert.InDelta(t, 0.55, compact.Layout().Scale, 1e-6)
}

func TestApproachFrame(t *testing.T) {
	s, r := newTestScene(t)
	s.Frame(0.016)
	require.NoError(t, s.Render())

	byTarget := targets(r.Draws())
	assert.Equal(t, []string{raymarch.ScenePipelineKey}, byTarget[raymarch.TargetLabel])
	assert.Equal(t, []string{raymarch.UpscalePipelineKey, title.PipelineKey}, byTarget["swapchain"],
		"the portal is hidden and the space pass skipped at rest")
	assert.Empty(t, byTarget[SpaceTargetLabel])
	assert.Equal(t, 1, r.Frames())

	out := s.Outputs()
	assert.InDelta(t, 1, out.DevicePixelRatio, 1e-6)
	assert.False(t, out.SpaceSceneActive)
	assert.Equal(t, -1, out.HoveredIndex())
}

func TestWarpActivationIsEdgeTriggered(t *testing.T) {
	var activations []bool
	last := false
	s, r := newTestScene(t, WithOnOutputChange(func(o Outputs) {
		if o.SpaceSceneActive != last {
			activations = append(activations, o.SpaceSceneActive)
			last = o.SpaceSceneActive
		}
	}))

	s.OnScroll(2000)
	run(t, s, 120, 0.1)

	out := s.Outputs()
	assert.Greater(t, out.Progress, float32(0.99))
	assert.True(t, out.SpaceSceneActive)
	assert.LessOrEqual(t, out.DevicePixelRatio, float32(0.7), "transition caps the DPR")
	assert.Equal(t, []bool{true}, activations)
	assert.Equal(t, warp.StateActivated, s.velocity.State())

	r.Reset()
	s.Frame(0.1)
	require.NoError(t, s.Render())
	byTarget := targets(r.Draws())
	assert.Empty(t, byTarget[raymarch.TargetLabel], "the raymarch stage hides past its threshold")
	require.NotEmpty(t, byTarget[SpaceTargetLabel])
	assert.Equal(t, warp.ParticlePipelineKey, byTarget[SpaceTargetLabel][0])
	bodies := 0
	for _, p := range byTarget[SpaceTargetLabel] {
		if p == BodyPipelineKey {
			bodies++
		}
	}
	assert.Equal(t, steering.BodyCount, bodies)
	assert.Equal(t, []string{portal.CompositePipelineKey}, byTarget["swapchain"], "the title has faded out")

	// scrolling back disables the effects with a hard cut
	s.OnScroll(-2000)
	run(t, s, 60, 0.1)
	assert.False(t, s.Outputs().SpaceSceneActive)
	assert.Equal(t, []bool{true, false}, activations)
}

func TestHoverAndCycle(t *testing.T) {
	s, _ := newTestScene(t)
	s.OnScroll(2000)
	run(t, s, 200, 0.1)
	require.True(t, s.Outputs().SpaceSceneActive)

	cam := camera.NewCamera(camera.WithConfig(s.cfg.Camera), camera.WithAspect(1280.0/720.0))
	vp := cam.ViewProjectionMatrix()
	body := s.Bodies()[2]
	clip := common.MulVec4(vp[:], [4]float32{body.Position[0], body.Position[1], body.Position[2], 1})
	s.OnPointerMove(clip[0]/clip[3], clip[1]/clip[3], true)
	s.Frame(0.1)
	assert.Equal(t, 2, s.Outputs().HoveredIndex())

	s.OnPointerMove(0, 0, false)
	s.Frame(0.1)
	assert.Equal(t, -1, s.Outputs().HoveredIndex(), "leaving the window clears the hover")

	before := s.Bodies()
	s.OnCycle(1)
	s.Frame(0.1)
	after := s.Bodies()
	assert.Equal(t, before[1].Target, after[0].Target)
	assert.Equal(t, before[0].Target, after[3].Target)
}

func TestPointerWaitsForActivation(t *testing.T) {
	s, _ := newTestScene(t)
	s.OnScroll(820)
	s.OnPointerMove(0.2, 0.1, true)
	run(t, s, 600, float32(1)/60)

	require.False(t, s.velocity.Activated())
	require.True(t, s.blend.Visible(), "the portal is open during the transition")
	assert.Zero(t, s.pointer.Intensity())
	assert.Zero(t, s.pointer.Scale())
	assert.False(t, s.glow.Enabled())

	s.OnScroll(2000)
	run(t, s, 120, 0.1)
	require.True(t, s.velocity.Activated())
	assert.Positive(t, s.pointer.Intensity())
	assert.True(t, s.glow.Enabled())
}

func TestResizeRecreatesTargets(t *testing.T) {
	s, r := newTestScene(t)
	run(t, s, 1, 0.016)
	first := r.Targets()
	require.Len(t, first, 4)

	s.Resize(800, 600)
	run(t, s, 1, 0.016)
	all := r.Targets()
	require.Len(t, all, 8)
	for _, tg := range first {
		assert.True(t, tg.Released(), tg.Label())
	}

	sizes := map[string][2]int{}
	for _, tg := range all[4:] {
		sizes[tg.Label()] = [2]int{tg.Width(), tg.Height()}
	}
	assert.Equal(t, [2]int{160, 120}, sizes[raymarch.TargetLabel])
	assert.Equal(t, [2]int{800, 600}, sizes[SpaceTargetLabel])
	assert.Equal(t, [2]int{200, 150}, sizes[portal.BloomTargetA])
	assert.Equal(t, [2]int{200, 150}, sizes[portal.BloomTargetB])
	assert.Equal(t, 2, r.BindCount("raymarch.upscale"))
	assert.Equal(t, 2, r.BindCount("portal.composite"))
	assert.Equal(t, 2, r.BindCount("portal.bloom.extract"))
}

func TestBloomFollowsEffects(t *testing.T) {
	s, r := newTestScene(t)
	s.OnScroll(820)
	run(t, s, 600, float32(1)/60)
	require.True(t, s.blend.Visible())
	require.False(t, s.blend.EffectsEnabled())

	r.Reset()
	run(t, s, 1, float32(1)/60)
	byTarget := targets(r.Draws())
	require.NotEmpty(t, byTarget[SpaceTargetLabel])
	assert.Empty(t, byTarget[portal.BloomTargetA], "no glow passes before the effects threshold")
	assert.Empty(t, byTarget[portal.BloomTargetB])
	assert.Equal(t, float32(0), compositeBloom(t, r))

	s.OnScroll(2000)
	run(t, s, 120, 0.1)
	require.True(t, s.blend.EffectsEnabled())

	r.Reset()
	run(t, s, 1, 0.1)
	byTarget = targets(r.Draws())
	assert.Equal(t, []string{portal.BloomExtractPipelineKey, portal.BloomBlurPipelineKey}, byTarget[portal.BloomTargetA])
	assert.Equal(t, []string{portal.BloomBlurPipelineKey}, byTarget[portal.BloomTargetB])
	assert.Equal(t, s.cfg.Portal.BloomIntensity, compositeBloom(t, r))

	// the glow passes run after the space pass
	draws := r.Draws()
	lastSpace, firstBloom := -1, -1
	for i, d := range draws {
		if d.Target == SpaceTargetLabel {
			lastSpace = i
		}
		if d.Target == portal.BloomTargetA && firstBloom < 0 {
			firstBloom = i
		}
	}
	assert.Less(t, lastSpace, firstBloom)
}

// compositeBloom decodes the bloom intensity of the last composite uniform write.
func compositeBloom(t *testing.T, r *renderertest.Renderer) float32 {
	t.Helper()
	writes := r.Writes()
	for i := len(writes) - 1; i >= 0; i-- {
		w := writes[i]
		if w.Provider.Label() != "portal.composite" || w.Binding != 0 {
			continue
		}
		require.Len(t, w.Data, 32)
		return math32.Float32frombits(binary.LittleEndian.Uint32(w.Data[16:20]))
	}
	require.Fail(t, "no composite write")
	return 0
}

func TestRenderReportsLostSurface(t *testing.T) {
	s, r := newTestScene(t)
	r.FailBeginFrame = true
	s.Frame(0.016)
	assert.Error(t, s.Render())
}

func TestPointerNDCPacking(t *testing.T) {
	x, y := unpackNDC(packNDC(-0.25, 0.75))
	assert.Equal(t, float32(-0.25), x)
	assert.Equal(t, float32(0.75), y)
}

func TestReleaseFreesSpaceTarget(t *testing.T) {
	s, r := newTestScene(t)
	run(t, s, 1, 0.016)
	s.Release()
	for _, tg := range r.Targets() {
		assert.True(t, tg.Released(), tg.Label())
	}
	assert.NoError(t, s.Render(), "a released scene renders nothing")
}
