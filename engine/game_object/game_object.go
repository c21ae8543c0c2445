package game_object

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
)

// objectCount generates IDs for objects built without WithID.
var objectCount atomic.Uint64

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	enabled atomic.Bool

	mdl           model.Model
	material      material.Material
	pipelineKey   string
	group         int
	attachedLight light.Light

	position common.Vec3
	rotation common.Vec3
	scale    common.Vec3

	color    [4]float32
	emissive float32
	opacity  float32

	ready bool
}

// GameObject is one drawable of the warp scene: a mesh, the per-object uniform material at a
// fixed bind group and the transform and color written into that uniform each frame.
// An optional light travels with the object.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object name, also the label of its material provider.
	Name() string

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether this object is drawn.
	SetEnabled(enabled bool)

	// Model returns the mesh of this object.
	Model() model.Model

	// Material returns the per-object uniform material.
	Material() material.Material

	// PipelineKey returns the render pipeline the object draws with.
	PipelineKey() string

	// Ready reports whether Init succeeded.
	Ready() bool

	// Position returns the world translation.
	Position() common.Vec3

	// SetPosition sets the world translation and moves the attached light with it.
	//
	// Parameters:
	//   - position: the translation
	SetPosition(position common.Vec3)

	// Rotation returns the Euler rotation in radians.
	Rotation() common.Vec3

	// SetRotation sets the Euler rotation in radians.
	SetRotation(rotation common.Vec3)

	// Scale returns the per-axis scale.
	Scale() common.Vec3

	// SetScale sets the per-axis scale.
	SetScale(scale common.Vec3)

	// SetColor sets the base color from a 0xRRGGBB value, keeping the alpha.
	SetColor(hex uint32)

	// SetEmissive sets the emissive strength.
	SetEmissive(emissive float32)

	// SetOpacity sets the global opacity.
	SetOpacity(opacity float32)

	// Light returns the attached light, or nil.
	Light() light.Light

	// SetLight attaches a light that follows the object.
	SetLight(l light.Light)

	// ModelData builds the per-object uniform from the current state.
	//
	// Returns:
	//   - model.GPUModelData: the uniform
	ModelData() model.GPUModelData

	// Init uploads the mesh and binds the material. The pipeline must be registered first.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: an error if a GPU resource fails
	Init(r renderer.Renderer) error

	// Sync builds the uniform write of the current state.
	//
	// Returns:
	//   - bind_group_provider.BufferWrite: the write for Renderer.WriteBuffers
	Sync() bind_group_provider.BufferWrite

	// Release frees the mesh and material.
	Release()
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject at the origin with unit scale, white and opaque.
// WithModel and WithPipeline are required before Init.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the new object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:      &sync.Mutex{},
		scale:   common.Vec3{1, 1, 1},
		color:   [4]float32{1, 1, 1, 1},
		opacity: 1,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.id == 0 {
		obj.id = objectCount.Add(1)
	}
	if obj.name == "" {
		obj.name = fmt.Sprintf("object_%d", obj.id)
	}
	obj.material = material.NewMaterial(
		material.WithName(obj.name),
		material.WithPipeline(obj.pipelineKey, obj.group),
	)
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.material
}

func (g *gameObject) PipelineKey() string {
	return g.pipelineKey
}

func (g *gameObject) Ready() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ready
}

func (g *gameObject) Position() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(position common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = position
	if g.attachedLight != nil {
		g.attachedLight.SetPosition(position)
	}
}

func (g *gameObject) Rotation() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetRotation(rotation common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = rotation
}

func (g *gameObject) Scale() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(scale common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
}

func (g *gameObject) SetColor(hex uint32) {
	c := common.HexColor(hex)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.color = [4]float32{c[0], c[1], c[2], g.color[3]}
}

func (g *gameObject) SetEmissive(emissive float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.emissive = emissive
}

func (g *gameObject) SetOpacity(opacity float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.opacity = opacity
}

func (g *gameObject) Light() light.Light {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attachedLight
}

func (g *gameObject) SetLight(l light.Light) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attachedLight = l
	if l != nil {
		l.SetPosition(g.position)
	}
}

func (g *gameObject) ModelData() model.GPUModelData {
	g.mu.Lock()
	defer g.mu.Unlock()
	data := model.GPUModelData{
		Color:    g.color,
		Emissive: g.emissive,
		Opacity:  g.opacity,
	}
	common.BuildModelMatrix(data.Model[:], g.position, g.rotation, g.scale)
	return data
}

func (g *gameObject) Init(r renderer.Renderer) error {
	if g.mdl == nil {
		return fmt.Errorf("game object %s: no model", g.name)
	}
	mesh := g.mdl.MeshProvider()
	if err := r.InitMeshBuffers(mesh, g.mdl.VertexData(), g.mdl.IndexData(), g.mdl.IndexCount()); err != nil {
		return fmt.Errorf("game object %s: mesh: %w", g.name, err)
	}
	if err := g.material.Init(r); err != nil {
		return fmt.Errorf("game object %s: %w", g.name, err)
	}
	g.mu.Lock()
	g.ready = true
	g.mu.Unlock()
	return nil
}

func (g *gameObject) Sync() bind_group_provider.BufferWrite {
	data := g.ModelData()
	return g.material.Write(0, data.Marshal())
}

func (g *gameObject) Release() {
	g.material.Release()
	if g.mdl != nil {
		g.mdl.MeshProvider().Release()
	}
	g.mu.Lock()
	g.ready = false
	g.mu.Unlock()
}
