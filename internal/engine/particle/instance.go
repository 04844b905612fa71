package particle

import (
	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// Instance is one running simulation of an engine class. It implements
// the drawable contract so a scene renders it like any other item.
type Instance struct {
	class *EngineClass
	state InstanceState
}

// NewInstance creates an instance in its pre-restart state. Call
// Restart before the first update to apply the initial emission.
func NewInstance(class *EngineClass) *Instance {
	i := &Instance{class: class}
	i.state.delay = class.params.Delay
	return i
}

// Class returns the engine class the instance runs.
func (i *Instance) Class() *EngineClass { return i.class }

func (i *Instance) ShaderID(env *drawable.Environment) string { return i.class.shaderID(env) }

// GeometryID is shared across instances; the stream usage keeps every
// instance on its own buffer regardless.
func (i *Instance) GeometryID(env *drawable.Environment) string { return "particle-buffer" }

func (i *Instance) Shader(env *drawable.Environment, dev device.Device) *shader.ShaderSource {
	return i.class.shader(env)
}

func (i *Instance) Construct(env *drawable.Environment, dev device.Device, args *geometry.CreateArgs) bool {
	return i.class.construct(env, &i.state, args)
}

func (i *Instance) ApplyDynamicState(env *drawable.Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) {
	i.class.applyDynamicState(env, program)
	// particles moving across the boundary flip their winding
	raster.Culling = device.CullNone
}

func (i *Instance) Update(env *drawable.Environment, dt float32) {
	i.class.update(env, &i.state, dt)
}

func (i *Instance) Restart(env *drawable.Environment) {
	i.class.restart(env, &i.state)
}

// Emit spawns count extra particles immediately. This is how
// SpawnCommand engines spawn at all.
func (i *Instance) Emit(env *drawable.Environment, count int) {
	i.class.emit(env, &i.state, count)
}

func (i *Instance) IsAlive() bool { return i.class.isAlive(&i.state) }

// Unbounded reports whether the instance simulates directly in world
// space, where its particles may live far outside the local unit
// bounds. View culling of the local box does not apply then.
func (i *Instance) Unbounded() bool { return i.class.params.Space == SpaceGlobal }

func (i *Instance) Primitive() drawable.Primitive {
	if i.class.params.Primitive == Point {
		return drawable.PrimitivePoints
	}
	return drawable.PrimitiveLines
}

func (i *Instance) Usage() geometry.Usage { return geometry.Stream }

// ParticleCount snapshots the live particle count.
func (i *Instance) ParticleCount() int {
	i.state.mu.Lock()
	defer i.state.mu.Unlock()
	return len(i.state.particles)
}

// Particles copies out the live particle buffer, mainly for tools and
// tests.
func (i *Instance) Particles() []Particle {
	i.state.mu.Lock()
	defer i.state.mu.Unlock()
	out := make([]Particle, len(i.state.particles))
	copy(out, i.state.particles)
	return out
}
