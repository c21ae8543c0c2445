package game_object

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the object name. The material provider carries the same label.
//
// Parameters:
//   - name: the object name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the mesh of the GameObject.
//
// Parameters:
//   - m: the model to draw
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithPipeline sets the render pipeline and the bind group index of the per-object uniform.
//
// Parameters:
//   - key: the pipeline key
//   - group: the bind group holding ModelData at binding 0
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the pipeline
func WithPipeline(key string, group int) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.pipelineKey = key
		obj.group = group
	}
}

// WithPosition sets the initial world translation.
func WithPosition(position common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = position
	}
}

// WithScale sets the initial per-axis scale.
func WithScale(scale common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = scale
	}
}

// WithRotation sets the initial Euler rotation in radians.
func WithRotation(rotation common.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = rotation
	}
}

// WithColor sets the base color from a 0xRRGGBB value.
//
// Parameters:
//   - hex: the color
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the color
func WithColor(hex uint32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		c := common.HexColor(hex)
		obj.color = [4]float32{c[0], c[1], c[2], 1}
	}
}

// WithEmissive sets the emissive strength.
func WithEmissive(emissive float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.emissive = emissive
	}
}

// WithLight attaches a light to the GameObject. The light follows SetPosition.
//
// Parameters:
//   - l: the light to attach
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.attachedLight = l
	}
}
