// Package program holds the render-pass shader policies. A policy
// completes the partial shader sources coming from drawables and
// materials into full GLSL programs: the drawable defines
// VertexShaderMain, the material defines FragmentShaderMain, and the
// policy wraps both with the stage interface structs and the real
// main() entry points. The policy also namespaces the shader cache ids
// so two policies never share a program built from the same sources.
package program

import (
	"go.uber.org/zap"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/material"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

// Program is the shader policy of one render pass.
type Program interface {
	Name() string
	// DrawableShader completes the vertex stage of a drawable.
	// Returns an empty source when the drawable source does not meet
	// the stage contract.
	DrawableShader(env *drawable.Environment, dr drawable.Drawable, dev device.Device) *shader.ShaderSource
	// MaterialShader completes the fragment stage of a material.
	MaterialShader(env *drawable.Environment, mat material.Material, dev device.Device) *shader.ShaderSource
	// DrawableShaderID namespaces the drawable shader cache id.
	DrawableShaderID(env *drawable.Environment, dr drawable.Drawable) string
	// MaterialShaderID namespaces the material shader cache id.
	MaterialShaderID(env *drawable.Environment, mat material.Material) string
	// ApplyDynamicState sets the per-draw uniforms owned by the
	// policy itself.
	ApplyDynamicState(dev device.Device, state *device.ProgramState)
}

// vertexWrapSrc completes a vertex source. The drawable's
// VertexShaderMain writes the stage output through vs_out.
const vertexWrapSrc = `
struct VS_OUT {
  vec4 clip_position;
} vs_out;

void main() {
  VertexShaderMain();
  gl_Position = vs_out.clip_position;
}
`

// wrapVertexSource appends the VS_OUT interface and main() to a
// drawable vertex source. The source must be a GLSL 300 es vertex
// stage.
func wrapVertexSource(src *shader.ShaderSource, policy string) *shader.ShaderSource {
	if src.Stage() != shader.Vertex || src.Version() != shader.GLSL300 {
		logger.Error("Invalid vertex shader source for program policy.",
			zap.String("policy", policy))
		return shader.New(shader.Vertex)
	}
	if err := src.LoadRawSource(vertexWrapSrc); err != nil {
		panic(err)
	}
	return src
}
