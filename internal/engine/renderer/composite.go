package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

// the composite vertex stage passes NDC positions straight through
const blitVertexSrc = `
out vec2 vTexCoord;
void main() {
    vTexCoord = aTexCoord;
    gl_Position = vec4(aPosition, 0.0, 1.0);
}
`

const blitFragmentSrc = `
uniform sampler2D kTexture;
in vec2 vTexCoord;
layout(location=0) out vec4 fragColor;
void main() {
    fragColor = texture(kTexture, vTexCoord);
}
`

// blurFragmentSrc is one separable Gaussian pass. kDirection selects
// the horizontal or vertical axis.
const blurFragmentSrc = `
uniform sampler2D kTexture;
uniform vec2 kDirection;
in vec2 vTexCoord;
layout(location=0) out vec4 fragColor;
void main() {
    float weights[5] = float[](0.227027, 0.1945946, 0.1216216, 0.054054, 0.016216);
    vec2 texel = 1.0 / vec2(textureSize(kTexture, 0));
    vec3 result = texture(kTexture, vTexCoord).rgb * weights[0];
    for (int i = 1; i < 5; ++i) {
        vec2 offset = kDirection * texel * float(i);
        result += texture(kTexture, vTexCoord + offset).rgb * weights[i];
        result += texture(kTexture, vTexCoord - offset).rgb * weights[i];
    }
    fragColor = vec4(result, 1.0);
}
`

func blitVertexSource() string {
	src := shader.New(shader.Vertex)
	src.SetVersion(shader.GLSL300)
	src.AddShaderName("blit-vertex-shader")
	src.AddAttribute("aPosition", shader.TypeVec2f)
	src.AddAttribute("aTexCoord", shader.TypeVec2f)
	if err := src.LoadRawSource(blitVertexSrc); err != nil {
		panic(err)
	}
	return src.GetSource(shader.Production)
}

func fullscreenFragmentSource(name, text string) string {
	src := shader.New(shader.Fragment)
	src.SetVersion(shader.GLSL300)
	src.SetPrecision(shader.PrecisionHigh)
	src.AddShaderName(name)
	if err := src.LoadRawSource(text); err != nil {
		panic(err)
	}
	return src.GetSource(shader.Production)
}

// fullscreenProgram finds or builds one of the fixed post-process
// programs.
func (r *Renderer) fullscreenProgram(suffix, fragmentName, fragmentText string) device.Program {
	name := r.name + suffix
	if prog := r.dev.FindProgram(name); prog != nil {
		return prog
	}
	prog := r.dev.MakeProgram(name)
	if err := prog.Build(blitVertexSource(), fullscreenFragmentSource(fragmentName, fragmentText)); err != nil {
		logger.Error("Failed to build post-process program.",
			zap.String("program", name), zap.Error(err))
	}
	return prog
}

// fullscreenQuad finds or uploads the shared composite quad.
func (r *Renderer) fullscreenQuad() device.Geometry {
	name := r.name + "/FullscreenQuad"
	if geom := r.dev.FindGeometry(name); geom != nil {
		return geom
	}

	vertices := []geometry.Vertex2D{
		{Position: mgl32.Vec2{-1, -1}, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec2{1, -1}, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec2{1, 1}, TexCoord: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec2{-1, 1}, TexCoord: mgl32.Vec2{0, 1}},
	}
	var args geometry.CreateArgs
	args.Buffer.SetVertexLayout(geometry.Vertex2DLayout())
	args.Buffer.UploadVertices(geometry.PackVertices2D(vertices))
	args.Buffer.AddDrawCmd(geometry.TriangleFan)
	args.Usage = geometry.Static
	args.ContentName = "fullscreen-quad"
	args.ContentHash = geometry.HashBytes(args.Buffer.VertexBytes())

	geom := r.dev.MakeGeometry(name)
	geom.Upload(args)
	return geom
}

// composite draws a texture over the output framebuffer with the given
// blending.
func (r *Renderer) composite(image device.Texture, blending device.BlendMode) {
	if image == nil {
		return
	}
	prog := r.fullscreenProgram("/CompositeProgram", "composite-shader", blitFragmentSrc)
	if !prog.IsValid() {
		return
	}

	var binds device.ProgramState
	binds.SetTexture("kTexture", image)

	state := device.State{
		Raster:       device.RasterState{Blending: blending, LineWidth: 1},
		DepthStencil: device.DefaultDepthStencilState(),
		Viewport:     r.viewport(),
	}
	r.dev.Draw(prog, &binds, r.fullscreenQuad(), state, nil)
}

// blurBloomImage runs the alternating horizontal/vertical blur passes
// over the bloom attachment and returns the final blurred texture.
func (r *Renderer) blurBloomImage(bloom device.Texture) device.Texture {
	if bloom == nil {
		return nil
	}
	prog := r.fullscreenProgram("/BlurProgram", "gaussian-blur-shader", blurFragmentSrc)
	if !prog.IsValid() {
		return nil
	}

	targets := [2]device.Framebuffer{
		r.pingPongFramebuffer("/BloomPing"),
		r.pingPongFramebuffer("/BloomPong"),
	}
	quad := r.fullscreenQuad()

	source := bloom
	var result device.Texture
	for i := 0; i < r.blurIterations; i++ {
		target := targets[i%2]
		direction := mgl32.Vec2{1, 0}
		if i%2 == 1 {
			direction = mgl32.Vec2{0, 1}
		}

		var binds device.ProgramState
		binds.SetTexture("kTexture", source)
		binds.SetUniform("kDirection", direction)

		state := device.State{
			Raster:       device.RasterState{Blending: device.BlendNone, LineWidth: 1},
			DepthStencil: device.DefaultDepthStencilState(),
			Viewport:     r.viewport(),
		}
		r.dev.Draw(prog, &binds, quad, state, target)

		result = target.Resolve(0)
		source = result
	}
	return result
}

func (r *Renderer) pingPongFramebuffer(suffix string) device.Framebuffer {
	fbo := r.dev.MakeFramebuffer(r.name + suffix)
	want := device.FramebufferConfig{Width: r.width, Height: r.height, ColorTargets: 1}
	if fbo.Config() != want {
		fbo.Configure(want)
	}
	return fbo
}
