package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// GradientCorner indexes the four gradient colors.
type GradientCorner int

const (
	GradientTopLeft GradientCorner = iota
	GradientTopRight
	GradientBottomLeft
	GradientBottomRight
)

// Gradient is the four-corner color gradient material. The corner
// colors are mixed in sRGB space across the texture coordinates and
// the mixed result is linearized in the shader, which matches how
// image editors blend gradients.
type Gradient struct {
	BaseClass
	Colors [4]gfxcolor.Color `json:"color_map"`
	// Offset shifts the gradient mixing center away from (0.5, 0.5).
	Offset mgl32.Vec2 `json:"color_weight"`
}

// NewGradient returns a transparent-surface gradient material with the
// mixing center in the middle.
func NewGradient(id string) *Gradient {
	return &Gradient{
		BaseClass: BaseClass{ID: id, Surface: SurfaceTransparent},
		Offset:    mgl32.Vec2{0.5, 0.5},
	}
}

// SetColor sets one corner color.
func (m *Gradient) SetColor(corner GradientCorner, color gfxcolor.Color) {
	m.Colors[corner] = color
}

func (m *Gradient) ShaderID(env *drawable.Environment) string {
	if m.Static {
		return "gradient-material/" + hashValues(m.Colors, m.Offset)
	}
	return "gradient-material"
}

const gradientShaderSrc = `
vec4 MixGradient(vec2 coords)
{
  vec4 top = mix(kColor0, kColor1, coords.x);
  vec4 bot = mix(kColor2, kColor3, coords.x);
  vec4 color = mix(top, bot, coords.y);
  return color;
}

void FragmentShaderMain()
{
  vec2 coords = mix(vTexCoord, gl_PointCoord, kRenderPoints);
  coords = (coords - kOffset) + vec2(0.5, 0.5);
  coords = clamp(coords, vec2(0.0, 0.0), vec2(1.0, 1.0));
  vec4 color = MixGradient(coords);

  fs_out.color.rgb = vec3(pow(color.rgb, vec3(2.2)));
  fs_out.color.a   = color.a * vParticleAlpha;
}
`

func (m *Gradient) Shader(env *drawable.Environment, dev device.Device) *shader.ShaderSource {
	src := shader.New(shader.Fragment)
	finishSource(src, "gradient-material")
	src.AddUniform("kColor0", shader.TypeColor4f)
	src.AddUniform("kColor1", shader.TypeColor4f)
	src.AddUniform("kColor2", shader.TypeColor4f)
	src.AddUniform("kColor3", shader.TypeColor4f)
	src.AddUniform("kOffset", shader.TypeVec2f)
	src.AddUniform("kRenderPoints", shader.TypeFloat)
	src.AddVarying("vTexCoord", shader.TypeVec2f)
	src.AddVarying("vParticleAlpha", shader.TypeFloat)
	src.AddSource(gradientShaderSrc)
	if m.Static {
		// the shader linearizes after the sRGB-space mix, so the
		// folded constants keep the raw encoded channels
		src.FoldUniform("kColor0", rawRGBA(m.Colors[GradientTopLeft]))
		src.FoldUniform("kColor1", rawRGBA(m.Colors[GradientTopRight]))
		src.FoldUniform("kColor2", rawRGBA(m.Colors[GradientBottomLeft]))
		src.FoldUniform("kColor3", rawRGBA(m.Colors[GradientBottomRight]))
		src.FoldUniform("kOffset", m.Offset)
	}
	return src
}

func (m *Gradient) ApplyDynamicState(env *drawable.Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) bool {
	applyCommonState(env, program)
	m.applySurfaceState(raster)
	if !m.Static {
		m.setColorState(program)
	}
	return true
}

func (m *Gradient) ApplyStaticState(env *drawable.Environment, dev device.Device, program *device.ProgramState) {
	m.setColorState(program)
}

func (m *Gradient) setColorState(program *device.ProgramState) {
	program.SetUniform("kColor0", rawRGBA(m.Colors[GradientTopLeft]))
	program.SetUniform("kColor1", rawRGBA(m.Colors[GradientTopRight]))
	program.SetUniform("kColor2", rawRGBA(m.Colors[GradientBottomLeft]))
	program.SetUniform("kColor3", rawRGBA(m.Colors[GradientBottomRight]))
	program.SetUniform("kOffset", m.Offset)
}
