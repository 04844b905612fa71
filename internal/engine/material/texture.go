package material

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

// Texture is the single texture map material. The texture is looked up
// on the device by name, so whoever uploads the content owns its
// lifetime.
type Texture struct {
	BaseClass
	TextureName string         `json:"texture"`
	BaseColor   gfxcolor.Color `json:"color"`
	// TextureBox selects a sub-rectangle of the texture as
	// (x, y, width, height) in normalized coordinates.
	TextureBox mgl32.Vec4 `json:"texture_box"`
	// AlphaCutoff discards fragments at or below this alpha. Negative
	// disables the cutoff.
	AlphaCutoff float32 `json:"alpha_cutoff"`
	// Filter and wrap mode applied to the texture on every bind.
	Filter device.TextureFilter `json:"texture_filter"`
	Wrap   device.TextureWrap   `json:"texture_wrap"`

	// latched so a missing texture warns once per material, not once
	// per frame
	bindError logger.Once
}

// NewTexture returns a transparent-surface texture material sampling
// the whole texture with a white base color.
func NewTexture(id, textureName string) *Texture {
	return &Texture{
		BaseClass:   BaseClass{ID: id, Surface: SurfaceTransparent},
		TextureName: textureName,
		BaseColor:   gfxcolor.RGBA(1, 1, 1, 1),
		TextureBox:  mgl32.Vec4{0, 0, 1, 1},
		AlphaCutoff: -1,
	}
}

func (m *Texture) ShaderID(env *drawable.Environment) string {
	if m.Static {
		return "texture-material/" + hashValues(m.BaseColor, m.AlphaCutoff)
	}
	return "texture-material"
}

const textureShaderSrc = `
void FragmentShaderMain()
{
  vec2 coords = mix(vTexCoord, gl_PointCoord, kRenderPoints);
  coords = coords * kTextureBox.zw + kTextureBox.xy;

  vec4 texel = texture(kTexture, coords);
  vec4 color = kBaseColor * texel;
  color.a *= vParticleAlpha;

  if (color.a <= kAlphaCutoff)
    discard;

  fs_out.color = color;
}
`

func (m *Texture) Shader(env *drawable.Environment, dev device.Device) *shader.ShaderSource {
	src := shader.New(shader.Fragment)
	finishSource(src, "texture-material")
	src.AddUniform("kTexture", shader.TypeSampler2D)
	src.AddUniform("kTextureBox", shader.TypeVec4f)
	src.AddUniform("kBaseColor", shader.TypeColor4f)
	src.AddUniform("kAlphaCutoff", shader.TypeFloat)
	src.AddUniform("kRenderPoints", shader.TypeFloat)
	src.AddVarying("vTexCoord", shader.TypeVec2f)
	src.AddVarying("vParticleAlpha", shader.TypeFloat)
	src.AddSource(textureShaderSrc)
	if m.Static {
		src.FoldUniform("kBaseColor", m.BaseColor)
		src.FoldUniform("kAlphaCutoff", m.AlphaCutoff)
	}
	return src
}

func (m *Texture) ApplyDynamicState(env *drawable.Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) bool {
	texture := dev.FindTexture(m.TextureName)
	if texture == nil {
		m.bindError.Warn("Failed to find material texture.",
			zap.String("material", m.ID),
			zap.String("texture", m.TextureName))
		return false
	}
	// set texture properties before binding it to the program
	texture.SetFilter(m.Filter)
	texture.SetWrap(m.Wrap)

	applyCommonState(env, program)
	m.applySurfaceState(raster)
	program.SetTexture("kTexture", texture)
	program.SetUniform("kTextureBox", m.TextureBox)
	if !m.Static {
		program.SetUniform("kBaseColor", linearRGBA(m.BaseColor))
		program.SetUniform("kAlphaCutoff", m.AlphaCutoff)
	}
	return true
}

func (m *Texture) ApplyStaticState(env *drawable.Environment, dev device.Device, program *device.ProgramState) {
	program.SetUniform("kBaseColor", linearRGBA(m.BaseColor))
	program.SetUniform("kAlphaCutoff", m.AlphaCutoff)
}
