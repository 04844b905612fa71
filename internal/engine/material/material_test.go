package material

import (
	"os"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
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

func TestColorShaderSource(t *testing.T) {
	m := NewColor("red", gfxcolor.RGBA(1, 0, 0, 1))
	src := m.Shader(testEnv(), device.NewNullDevice())
	text := src.GetSource(shader.Production)

	if !strings.HasPrefix(text, "#version 300 es") {
		t.Errorf("expected GLSL 300 es header, got %q", text[:20])
	}
	if !strings.Contains(text, "uniform vec4 kBaseColor;") {
		t.Error("expected kBaseColor uniform declaration")
	}
	if !strings.Contains(text, "void FragmentShaderMain()") {
		t.Error("expected FragmentShaderMain definition")
	}
	if !strings.Contains(text, "in float vParticleAlpha;") {
		t.Error("expected vParticleAlpha varying declaration")
	}
}

func TestStaticColorFoldsBaseColor(t *testing.T) {
	m := NewColor("red", gfxcolor.RGBA(1, 0, 0, 1))
	m.Static = true
	src := m.Shader(testEnv(), device.NewNullDevice())
	text := src.GetSource(shader.Production)

	if strings.Contains(text, "uniform vec4 kBaseColor;") {
		t.Error("static material should not declare kBaseColor uniform")
	}
	if !strings.Contains(text, "const vec4 kBaseColor = vec4(1.0,0.0,0.0,1.0);") {
		t.Errorf("expected folded constant, got:\n%s", text)
	}
}

func TestColorShaderIDStaticVariants(t *testing.T) {
	red := NewColor("a", gfxcolor.RGBA(1, 0, 0, 1))
	blue := NewColor("b", gfxcolor.RGBA(0, 0, 1, 1))
	env := testEnv()

	if red.ShaderID(env) != blue.ShaderID(env) {
		t.Error("dynamic color materials should share one shader")
	}

	red.Static = true
	blue.Static = true
	if red.ShaderID(env) == blue.ShaderID(env) {
		t.Error("static materials with different colors need different shaders")
	}

	other := NewColor("c", gfxcolor.RGBA(1, 0, 0, 1))
	other.Static = true
	if red.ShaderID(env) != other.ShaderID(env) {
		t.Error("static materials with equal parameters should share one shader")
	}
}

func TestColorDynamicState(t *testing.T) {
	m := NewColor("red", gfxcolor.RGBA(1, 0, 0, 0.5))
	env := testEnv()
	env.RenderPoints = true

	var program device.ProgramState
	raster := device.DefaultRasterState()
	if !m.ApplyDynamicState(env, device.NewNullDevice(), &program, &raster) {
		t.Fatal("expected dynamic state to succeed")
	}
	value, ok := program.Uniform("kBaseColor")
	if !ok {
		t.Fatal("expected kBaseColor uniform")
	}
	// alpha passes through linearization
	if got := value.(mgl32.Vec4); got[3] != 0.5 || got[0] != 1.0 {
		t.Errorf("unexpected kBaseColor value %v", got)
	}
	if points, _ := program.Uniform("kRenderPoints"); points != float32(1) {
		t.Errorf("kRenderPoints = %v, want 1", points)
	}
}

func TestStaticColorSkipsDynamicUniform(t *testing.T) {
	m := NewColor("red", gfxcolor.RGBA(1, 0, 0, 1))
	m.Static = true

	var program device.ProgramState
	raster := device.DefaultRasterState()
	m.ApplyDynamicState(testEnv(), device.NewNullDevice(), &program, &raster)
	if _, ok := program.Uniform("kBaseColor"); ok {
		t.Error("static material must not set folded uniforms")
	}
}

func TestSurfaceBlending(t *testing.T) {
	tests := []struct {
		surface SurfaceType
		blend   device.BlendMode
	}{
		{SurfaceOpaque, device.BlendNone},
		{SurfaceTransparent, device.BlendTransparent},
		{SurfaceEmissive, device.BlendAdditive},
	}
	for _, test := range tests {
		m := NewColor("x", gfxcolor.RGBA(1, 1, 1, 1))
		m.Surface = test.surface

		var program device.ProgramState
		raster := device.DefaultRasterState()
		m.ApplyDynamicState(testEnv(), device.NewNullDevice(), &program, &raster)
		if raster.Blending != test.blend {
			t.Errorf("surface %v: blending = %v, want %v",
				test.surface, raster.Blending, test.blend)
		}
	}
}

func TestGradientStaticFoldKeepsRawChannels(t *testing.T) {
	m := NewGradient("grad")
	m.Static = true
	m.SetColor(GradientTopLeft, gfxcolor.RGBA(0.5, 0.5, 0.5, 1))

	src := m.Shader(testEnv(), device.NewNullDevice())
	text := src.GetSource(shader.Production)
	// the gradient shader linearizes after mixing so the folded
	// constant must keep the authored 0.5, not its linearized value
	if !strings.Contains(text, "const vec4 kColor0 = vec4(0.5,0.5,0.5,1.0);") {
		t.Errorf("expected raw folded gradient color, got:\n%s", text)
	}
}

func TestGradientDynamicState(t *testing.T) {
	m := NewGradient("grad")
	m.SetColor(GradientBottomRight, gfxcolor.RGBA(0, 1, 0, 1))
	m.Offset = mgl32.Vec2{0.25, 0.75}

	var program device.ProgramState
	raster := device.DefaultRasterState()
	if !m.ApplyDynamicState(testEnv(), device.NewNullDevice(), &program, &raster) {
		t.Fatal("expected dynamic state to succeed")
	}
	if value, _ := program.Uniform("kColor3"); value != (mgl32.Vec4{0, 1, 0, 1}) {
		t.Errorf("kColor3 = %v", value)
	}
	if value, _ := program.Uniform("kOffset"); value != (mgl32.Vec2{0.25, 0.75}) {
		t.Errorf("kOffset = %v", value)
	}
}

func TestTextureMissingTexture(t *testing.T) {
	dev := device.NewNullDevice()
	m := NewTexture("sprite", "textures/missing")

	var program device.ProgramState
	raster := device.DefaultRasterState()
	if m.ApplyDynamicState(testEnv(), dev, &program, &raster) {
		t.Error("expected failure when the texture does not exist")
	}
}

func TestTextureDynamicState(t *testing.T) {
	dev := device.NewNullDevice()
	dev.MakeTexture("textures/crate")

	m := NewTexture("sprite", "textures/crate")
	m.TextureBox = mgl32.Vec4{0.5, 0.5, 0.5, 0.5}

	var program device.ProgramState
	raster := device.DefaultRasterState()
	if !m.ApplyDynamicState(testEnv(), dev, &program, &raster) {
		t.Fatal("expected dynamic state to succeed")
	}
	texture, ok := program.Texture("kTexture")
	if !ok || texture.Name() != "textures/crate" {
		t.Errorf("expected crate texture binding, got %v", texture)
	}
	if value, _ := program.Uniform("kTextureBox"); value != (mgl32.Vec4{0.5, 0.5, 0.5, 0.5}) {
		t.Errorf("kTextureBox = %v", value)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	grad := NewGradient("grad-1")
	grad.Name = "sky"
	grad.Static = true
	grad.Surface = SurfaceOpaque
	grad.SetColor(GradientTopLeft, gfxcolor.RGBA(0.1, 0.2, 0.3, 1))
	grad.Offset = mgl32.Vec2{0.5, 0.25}

	data, err := ToJSON(grad)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if !strings.Contains(string(data), `"surface": "opaque"`) {
		t.Errorf("expected stable surface wire key, got:\n%s", data)
	}

	restored, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	got, ok := restored.(*Gradient)
	if !ok {
		t.Fatalf("expected *Gradient, got %T", restored)
	}
	if got.Name != "sky" || !got.Static || got.Surface != SurfaceOpaque {
		t.Errorf("base parameters did not round trip: %+v", got)
	}
	if got.Colors[GradientTopLeft] != grad.Colors[GradientTopLeft] {
		t.Errorf("corner color did not round trip: %+v", got.Colors)
	}
	if got.Offset != grad.Offset {
		t.Errorf("offset did not round trip: %v", got.Offset)
	}
}

func TestJSONUnknownType(t *testing.T) {
	_, err := FromJSON([]byte(`{"type": "plasma", "material": {}}`))
	if err == nil {
		t.Error("expected error for unknown material type")
	}
}
