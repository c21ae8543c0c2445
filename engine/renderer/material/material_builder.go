package material

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/cogentcore/webgpu/wgpu"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material, also used as the label of
// the provider created for it.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPipeline sets the pipeline and bind group index the material binds into.
//
// Parameters:
//   - pipelineKey: the cached pipeline key
//   - group: the bind group index
//
// Returns:
//   - MaterialBuilderOption: a function that applies the pipeline option to a material
func WithPipeline(pipelineKey string, group int) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = pipelineKey
		m.group = group
	}
}

// WithTexture stages pixel data uploaded to a texture binding on Init.
//
// Parameters:
//   - binding: the texture binding index
//   - data: the decoded pixels
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(binding int, data *common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		if data != nil {
			m.textures[binding] = data
		}
	}
}

// WithSampler stages a sampler created for a binding on Init.
//
// Parameters:
//   - binding: the sampler binding index
//   - sampler: the sampler configuration
//
// Returns:
//   - MaterialBuilderOption: a function that applies the sampler option to a material
func WithSampler(binding int, sampler common.SamplerStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.samplers[binding] = sampler
	}
}

// WithTextureView binds a view owned by someone else, such as a render target's output.
//
// Parameters:
//   - binding: the texture binding index
//   - view: the borrowed view
//
// Returns:
//   - MaterialBuilderOption: a function that applies the view option to a material
func WithTextureView(binding int, view *wgpu.TextureView) MaterialBuilderOption {
	return func(m *material) {
		m.views[binding] = view
	}
}

// WithBufferSize overrides the allocation size of a buffer binding, for runtime-sized arrays.
//
// Parameters:
//   - binding: the buffer binding index
//   - size: the size in bytes
//
// Returns:
//   - MaterialBuilderOption: a function that applies the size option to a material
func WithBufferSize(binding int, size uint64) MaterialBuilderOption {
	return func(m *material) {
		m.bufferSizes[binding] = size
	}
}

// WithBindGroupProvider provides a custom bind group provider instead of a fresh one.
//
// Parameters:
//   - provider: the provider to hold the material's GPU resources
//
// Returns:
//   - MaterialBuilderOption: a function that applies the provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
