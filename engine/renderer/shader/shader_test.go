package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexSource = `
//@oxy:include camera
//@oxy:include vertex

struct ParticleInstance {
    @location(3) offset: vec3<f32>,
    @location(4) scale_z: f32,
    @location(5) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) color: vec4<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;

@vertex
fn vs_main(v: VertexInput, inst: ParticleInstance) -> VertexOutput {
    var out: VertexOutput;
    out.clip = camera.view_proj * vec4<f32>(v.position + inst.offset, 1.0);
    out.color = inst.color;
    return out;
}
`

const testFragmentSource = `
struct Params {
    source_size: vec2<f32>,
    texel_size: vec2<f32>,
    tint: vec3<f32>,
    strength: f32,
    samples: array<vec4<f32>, 4>,
};

@group(1) @binding(0) var<uniform> params: Params;
@group(1) @binding(1) var source: texture_2d<f32>;
@group(1) @binding(2) var source_sampler: sampler;
@group(2) @binding(0) var<storage, read> weights: array<f32>;

/* @fragment fn commented_out() {} */
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return textureSample(source, source_sampler, vec2<f32>(0.5)) * params.strength;
}
`

func TestNewShaderReflectsVertexStage(t *testing.T) {
	s, err := NewShader("particles", ShaderTypeVertex, testVertexSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())
	assert.Equal(t, ShaderTypeVertex, s.ShaderType())
	assert.Contains(t, s.Source(), "struct CameraUniform")
	assert.Contains(t, s.Source(), "struct VertexInput")
	assert.NotContains(t, s.Source(), "//@oxy:include")

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 2)

	mesh := layouts[0]
	assert.Equal(t, wgpu.VertexStepModeVertex, mesh.StepMode)
	assert.Equal(t, uint64(32), mesh.ArrayStride)
	require.Len(t, mesh.Attributes, 3)
	assert.Equal(t, uint64(24), mesh.Attributes[2].Offset)
	assert.Equal(t, uint32(2), mesh.Attributes[2].ShaderLocation)

	inst := layouts[1]
	assert.Equal(t, wgpu.VertexStepModeInstance, inst.StepMode)
	assert.Equal(t, uint64(32), inst.ArrayStride)
	require.Len(t, inst.Attributes, 3)
	assert.Equal(t, wgpu.VertexFormatFloat32, inst.Attributes[1].Format)
	assert.Equal(t, uint64(12), inst.Attributes[1].Offset)

	desc := s.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(80), desc.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, desc.Entries[0].Visibility)
	assert.Equal(t, "camera", s.BindGroupVarName(0, 0))
}

func TestNewShaderReflectsFragmentResources(t *testing.T) {
	s, err := NewShader("upscale", ShaderTypeFragment, testFragmentSource)
	require.NoError(t, err)

	assert.Equal(t, "fs_main", s.EntryPoint())
	assert.Empty(t, s.VertexLayouts())

	g1 := s.BindGroupLayoutDescriptor(1)
	require.Len(t, g1.Entries, 3)

	// vec2 + vec2 + vec3 (align 16 => offset 16) + f32 => 32, then array of 4 vec4 => 96
	assert.Equal(t, uint64(96), g1.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, g1.Entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, g1.Entries[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, g1.Entries[2].Sampler.Type)
	for _, e := range g1.Entries {
		assert.Equal(t, wgpu.ShaderStageFragment, e.Visibility)
	}

	g2 := s.BindGroupLayoutDescriptor(2)
	require.Len(t, g2.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeReadOnlyStorage, g2.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(4), g2.Entries[0].Buffer.MinBindingSize)

	binding, ok := s.BindGroupFromVarName(1, "source_sampler")
	assert.True(t, ok)
	assert.Equal(t, 2, binding)
	_, ok = s.BindGroupFromVarName(1, "missing")
	assert.False(t, ok)
}

func TestNewShaderErrors(t *testing.T) {
	cases := []struct {
		name   string
		source string
		stage  ShaderType
	}{
		{"empty", "", ShaderTypeVertex},
		{"no entry point", "struct A { x: f32, };", ShaderTypeFragment},
		{"wrong stage", testVertexSource, ShaderTypeFragment},
		{"unknown include", "//@oxy:include nothing\n@vertex fn vs() {}", ShaderTypeVertex},
		{"include without name", "//@oxy:include\n@vertex fn vs() {}", ShaderTypeVertex},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewShader(tc.name, tc.stage, tc.source)
			assert.Error(t, err)
		})
	}
}

func TestWithIncludeRegistersExtraSource(t *testing.T) {
	src := "//@oxy:include extra\n//@oxy:include extra\n@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(EXTRA); }"
	s, err := NewShader("extra", ShaderTypeFragment, src, WithInclude("extra", "const EXTRA: f32 = 1.0;\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, countOf(s.Source(), "const EXTRA"))
}

func TestPreProcessorSkipsDuplicates(t *testing.T) {
	pp := NewPreProcessor()
	pp.Register("a", "A")
	out, err := pp.Process("x\n  //@oxy:include a\n//@oxy:include a\ny")
	require.NoError(t, err)
	assert.Equal(t, "x\nA\ny", out)
}

func TestStructLayouts(t *testing.T) {
	structs := parseStructBlocks(stripComments(`
struct Inner { a: vec3<f32>, };
struct Outer { b: f32, inner: Inner, c: vec2<f32>, };
struct Runtime { items: array<Inner>, };
`))
	sizes := computeStructSizes(structs)

	assert.Equal(t, wgslTypeLayout{16, 16}, sizes["Inner"])
	// f32 at 0, Inner aligned to 16 => [16, 32), vec2 at 32 => 40, rounded to 48
	assert.Equal(t, wgslTypeLayout{48, 16}, sizes["Outer"])
	assert.Equal(t, wgslTypeLayout{16, 16}, sizes["Runtime"])
}

func TestStripComments(t *testing.T) {
	src := "a /* b /* nested */ c */ d // tail\ne"
	assert.Equal(t, "a  d \ne\n", stripComments(src))
}

func TestSplitAtTopLevelCommas(t *testing.T) {
	assert.Equal(t, []string{"array<vec4<f32>, 4>", " x"}, splitAtTopLevelCommas("array<vec4<f32>, 4>, x"))
}

func countOf(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}

func TestRegisteredIncludesMatchGPUTypes(t *testing.T) {
	src := `
//@oxy:include camera
//@oxy:include model
//@oxy:include lighting
@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> model: ModelData;
@group(2) @binding(0) var<uniform> lighting: Lighting;
@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(shade_lambert(lighting, vec3<f32>(0.0), vec3<f32>(0.0, 1.0, 0.0), model.color.rgb), 1.0); }
`
	s, err := NewShader("includes", ShaderTypeFragment, src)
	require.NoError(t, err)

	assert.Equal(t, uint64(80), s.BindGroupLayoutDescriptor(0).Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(96), s.BindGroupLayoutDescriptor(1).Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(96), s.BindGroupLayoutDescriptor(2).Entries[0].Buffer.MinBindingSize)
}
