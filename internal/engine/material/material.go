// Package material defines the fragment-stage half of the rendering
// contract. A material supplies the fragment shader contribution that
// defines FragmentShaderMain and the per-draw program and raster state
// that goes with it. Like drawables, materials are cached through
// their shader id; a static material folds its parameters into the
// shader source itself, trading more program variants for fewer
// uniform updates.
package material

import (
	"fmt"
	"hash/fnv"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// SurfaceType controls how the rasterizer blends the material output
// into the color buffer.
type SurfaceType int

const (
	// SurfaceOpaque writes color without blending.
	SurfaceOpaque SurfaceType = iota
	// SurfaceTransparent alpha-blends against the destination.
	SurfaceTransparent
	// SurfaceEmissive adds onto the destination.
	SurfaceEmissive
)

func (s SurfaceType) String() string {
	switch s {
	case SurfaceOpaque:
		return "opaque"
	case SurfaceTransparent:
		return "transparent"
	case SurfaceEmissive:
		return "emissive"
	}
	panic("unknown surface type")
}

// MarshalText persists the surface type under its stable wire name.
func (s SurfaceType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SurfaceType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "opaque":
		*s = SurfaceOpaque
	case "transparent":
		*s = SurfaceTransparent
	case "emissive":
		*s = SurfaceEmissive
	default:
		return fmt.Errorf("unknown material surface type %q", text)
	}
	return nil
}

// Material produces the fragment-stage shader source and per-draw
// state for one rendered item. ShaderID is a cache key and must be a
// deterministic function of the material content only.
type Material interface {
	ShaderID(env *drawable.Environment) string
	// Shader returns the fragment-stage source. The source defines
	// FragmentShaderMain and writes fs_out.color.
	Shader(env *drawable.Environment, dev device.Device) *shader.ShaderSource
	// ApplyDynamicState sets per-draw uniforms, texture bindings and
	// blend state. Returns false on unrecoverable state failure; the
	// caller must not draw then.
	ApplyDynamicState(env *drawable.Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) bool
	// ApplyStaticState sets the uniforms that stay constant over the
	// program's lifetime. Called once when the program is first built.
	ApplyStaticState(env *drawable.Environment, dev device.Device, program *device.ProgramState)
	IsStatic() bool
}

// BaseClass carries the parameters common to every material type.
type BaseClass struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Surface selects the blend mode of the material output.
	Surface SurfaceType `json:"surface"`
	// Static folds the material parameters into the shader source as
	// constants. This creates more shader programs but skips the
	// per-draw uniform updates.
	Static bool `json:"static"`
	// PremultipliedAlpha marks the material output (or its texture
	// content) as already premultiplied.
	PremultipliedAlpha bool `json:"premultiply_alpha,omitempty"`
}

func (b *BaseClass) IsStatic() bool { return b.Static }

// applySurfaceState maps the surface type onto the raster blend state.
func (b *BaseClass) applySurfaceState(raster *device.RasterState) {
	switch b.Surface {
	case SurfaceOpaque:
		raster.Blending = device.BlendNone
	case SurfaceTransparent:
		raster.Blending = device.BlendTransparent
	case SurfaceEmissive:
		raster.Blending = device.BlendAdditive
	}
	raster.PremulAlpha = b.PremultipliedAlpha
}

// applyCommonState sets the uniforms every material shader may read.
func applyCommonState(env *drawable.Environment, program *device.ProgramState) {
	points := float32(0)
	if env.RenderPoints {
		points = 1
	}
	program.SetUniform("kRenderPoints", points)
}

// finishSource adds the declarations shared by all built-in material
// sources.
func finishSource(src *shader.ShaderSource, name string) *shader.ShaderSource {
	src.SetVersion(shader.GLSL300)
	src.SetPrecision(shader.PrecisionHigh)
	src.AddShaderName(name)
	src.AddDefineValue("PI", float32(3.1415926))
	return src
}

// linearRGBA converts an sRGB-authored color to the linear vec4 the
// shaders expect from their color uniforms.
func linearRGBA(c gfxcolor.Color) mgl32.Vec4 {
	lin := c.Linearized()
	return mgl32.Vec4{lin.R, lin.G, lin.B, lin.A}
}

// rawRGBA keeps the sRGB-encoded channels as-is for shaders that do
// their own gamma handling.
func rawRGBA(c gfxcolor.Color) mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// hashValues builds a short stable digest of the folded parameters so
// static materials with identical parameters share one program.
func hashValues(values ...any) string {
	h := fnv.New64a()
	for _, value := range values {
		fmt.Fprintf(h, "%v;", value)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
