package shader

// shaderBuilder collects construction-time state for NewShader.
type shaderBuilder struct {
	pp PreProcessor
}

// ShaderBuilderOption is a functional option for NewShader.
type ShaderBuilderOption func(*shaderBuilder)

// WithInclude registers an extra include source for this shader, such as a stage's own
// GPU struct definition.
//
// Parameters:
//   - name: the include name
//   - source: the WGSL text injected in its place
//
// Returns:
//   - ShaderBuilderOption: a function that registers the include
func WithInclude(name, source string) ShaderBuilderOption {
	return func(b *shaderBuilder) {
		b.pp.Register(name, source)
	}
}
