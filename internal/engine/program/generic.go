package program

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/material"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

// Generic is the standard color-pass policy. The scene renders in
// linear space and the policy encodes back to sRGB on output. With
// bloom enabled the fragment stage writes a second color attachment
// holding only the fragments whose weighted brightness passes the
// bloom threshold.
type Generic struct {
	BloomEnabled   bool
	BloomThreshold float32
	// BloomColor weighs the RGB channels for the brightness test.
	// Defaults to the Rec. 709 luma coefficients.
	BloomColor mgl32.Vec4
}

// NewGeneric returns the policy with bloom disabled and default
// brightness weights.
func NewGeneric() *Generic {
	return &Generic{
		BloomThreshold: 1.0,
		BloomColor:     mgl32.Vec4{0.2126, 0.7152, 0.0722, 0},
	}
}

func (p *Generic) Name() string { return "Generic" }

// fragmentWrapSrc completes a fragment source. The material's
// FragmentShaderMain writes the stage output through fs_out; main()
// routes it to the attachments, sRGB-encoded right before each write.
const fragmentWrapSrc = `
struct FS_OUT {
  vec4 color;
} fs_out;

// @uniforms
#ifdef ENABLE_BLOOM
uniform float kBloomThreshold;
uniform vec4 kBloomColor;
#endif

// @out
layout(location=0) out vec4 fragOutColor;
#ifdef ENABLE_BLOOM
layout(location=1) out vec4 fragOutBloom;
#endif

float sRGB_encode(float value)
{
  return value <= 0.0031308
    ? value * 12.92
    : pow(value, 1.0/2.4) * 1.055 - 0.055;
}
vec4 sRGB_encode(vec4 color)
{
  vec4 ret;
  ret.r = sRGB_encode(color.r);
  ret.g = sRGB_encode(color.g);
  ret.b = sRGB_encode(color.b);
  ret.a = color.a;
  return ret;
}

void main() {
  fs_out.color = vec4(0.0);

  FragmentShaderMain();

#ifdef ENABLE_BLOOM
  float brightness = dot(fs_out.color.rgb, kBloomColor.rgb);
  if (brightness > kBloomThreshold) {
    fragOutBloom = sRGB_encode(fs_out.color);
  } else {
    fragOutBloom = vec4(0.0, 0.0, 0.0, 0.0);
  }
#endif

  fragOutColor = sRGB_encode(fs_out.color);
}
`

func (p *Generic) DrawableShader(env *drawable.Environment, dr drawable.Drawable, dev device.Device) *shader.ShaderSource {
	return wrapVertexSource(dr.Shader(env, dev), p.Name())
}

func (p *Generic) MaterialShader(env *drawable.Environment, mat material.Material, dev device.Device) *shader.ShaderSource {
	src := mat.Shader(env, dev)
	if src == nil || src.Stage() != shader.Fragment || src.Version() != shader.GLSL300 {
		logger.Error("Invalid fragment shader source for program policy.",
			zap.String("policy", p.Name()))
		return shader.New(shader.Fragment)
	}
	if src.Precision() == shader.PrecisionUnset {
		src.SetPrecision(shader.PrecisionHigh)
	}
	if p.BloomEnabled {
		src.AddDefine("ENABLE_BLOOM")
	}
	if err := src.LoadRawSource(fragmentWrapSrc); err != nil {
		panic(err)
	}
	return src
}

func (p *Generic) DrawableShaderID(env *drawable.Environment, dr drawable.Drawable) string {
	return p.Name() + "/Drawable:" + dr.ShaderID(env)
}

func (p *Generic) MaterialShaderID(env *drawable.Environment, mat material.Material) string {
	id := p.Name() + "/Material:" + mat.ShaderID(env)
	if p.BloomEnabled {
		id += "/bloom"
	}
	return id
}

func (p *Generic) ApplyDynamicState(dev device.Device, state *device.ProgramState) {
	if p.BloomEnabled {
		state.SetUniform("kBloomThreshold", p.BloomThreshold)
		state.SetUniform("kBloomColor", p.BloomColor)
	}
}
