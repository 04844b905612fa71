package material

import (
	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// Color is the solid color material.
type Color struct {
	BaseClass
	BaseColor gfxcolor.Color `json:"color"`
}

// NewColor returns a transparent-surface color material.
func NewColor(id string, color gfxcolor.Color) *Color {
	return &Color{
		BaseClass: BaseClass{ID: id, Surface: SurfaceTransparent},
		BaseColor: color,
	}
}

func (m *Color) ShaderID(env *drawable.Environment) string {
	if m.Static {
		return "color-material/" + hashValues(m.BaseColor)
	}
	return "color-material"
}

const colorShaderSrc = `
void FragmentShaderMain()
{
  vec4 color = kBaseColor;
  color.a *= vParticleAlpha;
  fs_out.color = color;
}
`

func (m *Color) Shader(env *drawable.Environment, dev device.Device) *shader.ShaderSource {
	src := shader.New(shader.Fragment)
	finishSource(src, "color-material")
	src.AddUniform("kBaseColor", shader.TypeColor4f)
	src.AddVarying("vParticleAlpha", shader.TypeFloat)
	src.AddSource(colorShaderSrc)
	if m.Static {
		src.FoldUniform("kBaseColor", m.BaseColor)
	}
	return src
}

func (m *Color) ApplyDynamicState(env *drawable.Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) bool {
	applyCommonState(env, program)
	m.applySurfaceState(raster)
	if !m.Static {
		program.SetUniform("kBaseColor", linearRGBA(m.BaseColor))
	}
	return true
}

func (m *Color) ApplyStaticState(env *drawable.Environment, dev device.Device, program *device.ProgramState) {
	program.SetUniform("kBaseColor", linearRGBA(m.BaseColor))
}
