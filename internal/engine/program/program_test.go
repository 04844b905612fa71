package program

import (
	"os"
	"strings"
	"testing"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
	"github.com/ember-gfx/ember/internal/engine/material"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	os.Exit(m.Run())
}

func testEnv() *drawable.Environment {
	return drawable.NewEnvironment(nil)
}

func TestGenericMaterialShader(t *testing.T) {
	policy := NewGeneric()
	mat := material.NewColor("red", gfxcolor.RGBA(1, 0, 0, 1))

	src := policy.MaterialShader(testEnv(), mat, device.NewNullDevice())
	text := src.GetSource(shader.Production)

	if !strings.HasPrefix(text, "#version 300 es") {
		t.Error("expected GLSL 300 es header")
	}
	if !strings.Contains(text, "precision highp float;") {
		t.Error("expected default high precision")
	}
	if !strings.Contains(text, "struct FS_OUT") {
		t.Error("expected FS_OUT interface struct")
	}
	if !strings.Contains(text, "void main()") {
		t.Error("expected main entry point")
	}
	// the material body must precede main so FragmentShaderMain is
	// defined before its call
	bodyAt := strings.Index(text, "void FragmentShaderMain()")
	mainAt := strings.Index(text, "void main()")
	if bodyAt < 0 || mainAt < 0 || bodyAt > mainAt {
		t.Error("expected FragmentShaderMain before main")
	}
	if strings.Contains(text, "fragOutBloom") {
		t.Error("bloom output should not exist with bloom disabled")
	}
}

func TestGenericMaterialShaderWithBloom(t *testing.T) {
	policy := NewGeneric()
	policy.BloomEnabled = true
	mat := material.NewColor("red", gfxcolor.RGBA(1, 0, 0, 1))

	src := policy.MaterialShader(testEnv(), mat, device.NewNullDevice())
	text := src.GetSource(shader.Production)

	if !strings.Contains(text, "#define ENABLE_BLOOM") {
		t.Error("expected bloom define")
	}
	if !strings.Contains(text, "uniform float kBloomThreshold;") {
		t.Error("expected bloom threshold uniform")
	}
	if !strings.Contains(text, "layout(location=1) out vec4 fragOutBloom;") {
		t.Error("expected second color output")
	}
}

func TestGenericRejectsWrongStage(t *testing.T) {
	policy := NewGeneric()

	src := policy.MaterialShader(testEnv(), vertexMaterial{}, device.NewNullDevice())
	if !src.IsEmpty() {
		t.Error("expected empty source for a vertex-stage material")
	}
}

// vertexMaterial returns a wrong-stage source to exercise the policy
// validation.
type vertexMaterial struct{}

func (vertexMaterial) ShaderID(env *drawable.Environment) string { return "bogus" }
func (vertexMaterial) Shader(env *drawable.Environment, dev device.Device) *shader.ShaderSource {
	src := shader.New(shader.Vertex)
	src.SetVersion(shader.GLSL300)
	return src
}
func (vertexMaterial) ApplyDynamicState(env *drawable.Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) bool {
	return true
}
func (vertexMaterial) ApplyStaticState(env *drawable.Environment, dev device.Device, program *device.ProgramState) {
}
func (vertexMaterial) IsStatic() bool { return false }

func TestGenericDrawableShader(t *testing.T) {
	policy := NewGeneric()
	shape := drawable.NewSimpleShape(drawable.Rectangle)

	src := policy.DrawableShader(testEnv(), shape, device.NewNullDevice())
	text := src.GetSource(shader.Production)

	if !strings.Contains(text, "struct VS_OUT") {
		t.Error("expected VS_OUT interface struct")
	}
	if !strings.Contains(text, "gl_Position = vs_out.clip_position;") {
		t.Error("expected clip position forwarding")
	}
	bodyAt := strings.Index(text, "void VertexShaderMain()")
	mainAt := strings.Index(text, "void main()")
	if bodyAt < 0 || mainAt < 0 || bodyAt > mainAt {
		t.Error("expected VertexShaderMain before main")
	}
}

func TestGenericShaderIDNamespacing(t *testing.T) {
	generic := NewGeneric()
	stencil := NewStencil()
	shape := drawable.NewSimpleShape(drawable.Rectangle)
	env := testEnv()

	if generic.DrawableShaderID(env, shape) == stencil.DrawableShaderID(env, shape) {
		t.Error("policies must not share drawable shader ids")
	}

	withBloom := NewGeneric()
	withBloom.BloomEnabled = true
	mat := material.NewColor("red", gfxcolor.RGBA(1, 0, 0, 1))
	if generic.MaterialShaderID(env, mat) == withBloom.MaterialShaderID(env, mat) {
		t.Error("bloom must change the material shader id")
	}
}

func TestGenericDynamicState(t *testing.T) {
	policy := NewGeneric()
	policy.BloomEnabled = true
	policy.BloomThreshold = 0.8

	var state device.ProgramState
	policy.ApplyDynamicState(device.NewNullDevice(), &state)
	if value, _ := state.Uniform("kBloomThreshold"); value != float32(0.8) {
		t.Errorf("kBloomThreshold = %v, want 0.8", value)
	}

	policy.BloomEnabled = false
	var disabled device.ProgramState
	policy.ApplyDynamicState(device.NewNullDevice(), &disabled)
	if len(disabled.Uniforms()) != 0 {
		t.Error("expected no policy uniforms with bloom disabled")
	}
}

func TestStencilMaterialShader(t *testing.T) {
	policy := NewStencil()
	mat := material.NewColor("ignored", gfxcolor.RGBA(0, 1, 0, 1))

	src := policy.MaterialShader(testEnv(), mat, device.NewNullDevice())
	text := src.GetSource(shader.Production)

	if strings.Contains(text, "kBaseColor") {
		t.Error("stencil pass must ignore the material source")
	}
	if !strings.Contains(text, "fs_out.color = vec4(1.0);") {
		t.Error("expected the constant mask write")
	}

	other := material.NewGradient("also-ignored")
	if policy.MaterialShaderID(testEnv(), mat) != policy.MaterialShaderID(testEnv(), other) {
		t.Error("all mask draws should share one material shader id")
	}
}
