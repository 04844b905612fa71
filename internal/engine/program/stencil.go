package program

import (
	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/material"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// Stencil is the mask-pass policy. Mask shapes only carve stencil
// values so the material is irrelevant; the fragment stage is replaced
// with a constant write and every mask draw shares one fragment
// program.
type Stencil struct{}

// NewStencil returns the mask-pass policy.
func NewStencil() *Stencil { return &Stencil{} }

func (p *Stencil) Name() string { return "Stencil" }

const stencilShaderSrc = `
void FragmentShaderMain()
{
  fs_out.color = vec4(1.0);
}
`

func (p *Stencil) DrawableShader(env *drawable.Environment, dr drawable.Drawable, dev device.Device) *shader.ShaderSource {
	return wrapVertexSource(dr.Shader(env, dev), p.Name())
}

func (p *Stencil) MaterialShader(env *drawable.Environment, mat material.Material, dev device.Device) *shader.ShaderSource {
	src := shader.New(shader.Fragment)
	src.SetVersion(shader.GLSL300)
	src.SetPrecision(shader.PrecisionHigh)
	src.AddShaderName("stencil-mask")
	src.AddSource(stencilShaderSrc)
	if err := src.LoadRawSource(fragmentWrapSrc); err != nil {
		panic(err)
	}
	return src
}

func (p *Stencil) DrawableShaderID(env *drawable.Environment, dr drawable.Drawable) string {
	return p.Name() + "/Drawable:" + dr.ShaderID(env)
}

func (p *Stencil) MaterialShaderID(env *drawable.Environment, mat material.Material) string {
	// all mask draws share the constant fragment stage
	return p.Name() + "/Material:mask"
}

func (p *Stencil) ApplyDynamicState(dev device.Device, state *device.ProgramState) {}
