// Package drawable defines the drawable contract of the renderer and
// its shape variants. A drawable supplies a vertex-stage shader
// contribution, geometry on demand and per-draw state; the renderer
// memoizes the expensive GPU uploads and shader builds through the
// shader/geometry id cache keys.
package drawable

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// EffectType selects a vertex mesh effect.
type EffectType int

const (
	EffectNone EffectType = iota
	EffectMeshExplosion
)

// Environment is the read-only per-draw context passed into every
// drawable and material call. Callees never mutate it.
type Environment struct {
	// EditingMode is true when even static content may have changed
	// under the caller's feet and should be re-checked.
	EditingMode bool
	// InstancedDraw is true when the draw renders many instances of
	// the same geometry.
	InstancedDraw bool
	// UseEffects enables the vertex mesh effect path.
	UseEffects bool
	// RenderPoints is true when the draw rasterizes point primitives
	// and texture coordinates come from gl_PointCoord.
	RenderPoints bool
	// How many render surface units (pixels, or texels when rendering
	// to a texture) to a game unit.
	PixelRatio mgl32.Vec2
	Proj       mgl32.Mat4
	View       mgl32.Mat4
	Model      mgl32.Mat4
	World      mgl32.Mat4
	// Rand is the RNG handle for randomized construction (particle
	// spawns, effect shards). Injected so behavior is seedable.
	Rand *rand.Rand
}

// NewEnvironment returns an Environment with identity transforms.
func NewEnvironment(rng *rand.Rand) *Environment {
	return &Environment{
		PixelRatio: mgl32.Vec2{1, 1},
		Proj:       mgl32.Ident4(),
		View:       mgl32.Ident4(),
		Model:      mgl32.Ident4(),
		World:      mgl32.Ident4(),
		Rand:       rng,
	}
}

// ModelView returns the combined model-view transform.
func (e *Environment) ModelView() mgl32.Mat4 {
	return e.View.Mul4(e.Model)
}

// Primitive is the high-level primitive topology of a drawable.
type Primitive int

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveLines
	PrimitivePoints
)

// Drawable produces geometry and the vertex-stage shader contribution
// for one rendered item. ShaderID and GeometryID are cache keys and
// must be deterministic functions of the object's content and the
// shape-affecting environment fields only, never of per-frame values.
type Drawable interface {
	ShaderID(env *Environment) string
	GeometryID(env *Environment) string
	// Shader returns the vertex-stage source. The source defines
	// VertexShaderMain and writes vs_out.clip_position.
	Shader(env *Environment, dev device.Device) *shader.ShaderSource
	// Construct fills the geometry buffer, usage hint and content
	// name/hash. Returns false on unrecoverable construction failure;
	// the caller must not draw then.
	Construct(env *Environment, dev device.Device, args *geometry.CreateArgs) bool
	// ApplyDynamicState sets per-draw uniforms and raster overrides.
	ApplyDynamicState(env *Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState)
	Update(env *Environment, dt float32)
	Restart(env *Environment)
	IsAlive() bool
	Primitive() Primitive
	Usage() geometry.Usage
}

const simple2DVertexShaderSrc = `
uniform mat4 kProjectionMatrix;
uniform mat4 kModelViewMatrix;
out vec2 vTexCoord;
out float vParticleAlpha;
void VertexShaderMain() {
    vec4 vertex = vec4(aPosition.x, aPosition.y * -1.0, 0.0, 1.0);
#ifdef USE_EFFECTS_MESH
    vertex.xy = MeshEffectDisplace(vertex.xy);
#endif
#ifdef INSTANCED_DRAW
    mat4 model = mat4(iaModelVecX, iaModelVecY, iaModelVecZ, iaModelVecW);
    vertex = model * vertex;
#endif
    vTexCoord = aTexCoord;
    vParticleAlpha = 1.0;
    vs_out.clip_position = kProjectionMatrix * kModelViewMatrix * vertex;
}
`

// simple2DShaderID is the shared cache key of the standard 2D vertex
// shader.
func simple2DShaderID(env *Environment) string {
	if env.InstancedDraw {
		return "simple-instanced-2d-vertex-shader"
	}
	return "simple-2d-vertex-shader"
}

// simple2DVertexShader builds the shared vertex shader of the plain 2D
// drawables.
func simple2DVertexShader(env *Environment) *shader.ShaderSource {
	src := shader.New(shader.Vertex)
	src.SetVersion(shader.GLSL300)
	src.AddShaderName("simple-2d-vertex-shader")
	src.AddAttribute("aPosition", shader.TypeVec2f)
	src.AddAttribute("aTexCoord", shader.TypeVec2f)
	if env.InstancedDraw {
		src.AddDefine("INSTANCED_DRAW")
		src.AddAttribute("iaModelVecX", shader.TypeVec4f)
		src.AddAttribute("iaModelVecY", shader.TypeVec4f)
		src.AddAttribute("iaModelVecZ", shader.TypeVec4f)
		src.AddAttribute("iaModelVecW", shader.TypeVec4f)
	}
	mustLoadRawSource(src, simple2DVertexShaderSrc)
	return src
}

// mustLoadRawSource parses embedded shader text. The text is a
// compile-time constant so a parse failure is a bug.
func mustLoadRawSource(src *shader.ShaderSource, text string) {
	if err := src.LoadRawSource(text); err != nil {
		panic(err)
	}
}

// applyTransformState sets the standard transform uniforms.
func applyTransformState(env *Environment, program *device.ProgramState) {
	program.SetUniform("kProjectionMatrix", env.Proj)
	program.SetUniform("kModelViewMatrix", env.ModelView())
}
