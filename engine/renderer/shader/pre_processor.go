// pre_processor.go implements the WGSL include pre-processor. A line of the form
//
//	//@oxy:include <name>
//
// is replaced with the registered WGSL source for name, letting Go GPU types own the
// canonical struct definitions their shaders share.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-warp/engine/camera"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
)

// includeDirective is the comment prefix that marks an include line.
const includeDirective = "//@oxy:include"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// registry maps include names to embedded WGSL struct sources.
	registry map[string]string
}

// PreProcessor expands include directives in WGSL source.
type PreProcessor interface {
	// Register adds or replaces an include source.
	//
	// Parameters:
	//   - name: the include name used after the directive
	//   - source: the WGSL text injected in its place
	Register(name, source string)

	// Process replaces every include directive with its registered source. Each name is
	// injected at most once per call; repeated includes of the same name expand to nothing.
	//
	// Parameters:
	//   - source: the raw WGSL shader source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of a malformed or unknown include
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's shared structs registered:
// "camera" (CameraUniform), "vertex" (VertexInput), "model" (ModelData) and "lighting"
// (Lighting plus shade_lambert).
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			"camera":   camera.GPUCameraUniformSource,
			"vertex":   model.GPUVertexSource,
			"model":    model.GPUModelDataSource,
			"lighting": light.GPULightingSource,
		},
	}
}

func (p *preProcessor) Register(name, source string) {
	p.registry[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)

	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), includeDirective)
		if !ok {
			out = append(out, line)
			continue
		}

		args := strings.Fields(rest)
		if len(args) != 1 {
			return "", fmt.Errorf("line %d: include takes exactly one name, got %d", i+1, len(args))
		}
		name := args[0]
		src, ok := p.registry[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, strings.TrimRight(src, "\n"))
	}
	return strings.Join(out, "\n"), nil
}
