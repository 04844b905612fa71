package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/config"
	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
	"github.com/ember-gfx/ember/internal/engine/program"
)

// RenderLayer groups the draw lists of one entity layer. Mask lists
// gate the color list through the stencil buffer: cover starts with
// everything shown and carves regions out, expose starts hidden and
// reveals regions.
type RenderLayer struct {
	DrawColorList  []DrawShape
	MaskCoverList  []DrawShape
	MaskExposeList []DrawShape
}

// SceneRenderLayerList is the frame input: scene layers of entity
// layers, drawn in order so later layers paint over earlier ones.
type SceneRenderLayerList [][]RenderLayer

// Renderer runs the per-frame pass sequence into an offscreen target
// and composites the result onto the output framebuffer.
type Renderer struct {
	name    string
	dev     device.Device
	painter *painter

	colorPolicy *program.Generic
	maskPolicy  *program.Stencil

	width  int
	height int
	msaa   bool

	clearColor     gfxcolor.Color
	blurIterations int
}

// New creates a renderer drawing through the given device. The name
// prefixes all device resources the renderer owns.
func New(name string, dev device.Device, cfg *config.Config) *Renderer {
	colorPolicy := program.NewGeneric()
	colorPolicy.BloomEnabled = cfg.Bloom.Enabled
	colorPolicy.BloomThreshold = cfg.Bloom.Threshold
	colorPolicy.BloomColor = mgl32.Vec4{
		cfg.Bloom.ColorWeights[0],
		cfg.Bloom.ColorWeights[1],
		cfg.Bloom.ColorWeights[2],
		0,
	}

	iterations := cfg.Bloom.BlurIterations
	if iterations <= 0 {
		iterations = 4
	}

	cc := cfg.Graphics.ClearColor
	return &Renderer{
		name:           name,
		dev:            dev,
		painter:        newPainter(dev),
		colorPolicy:    colorPolicy,
		maskPolicy:     program.NewStencil(),
		width:          cfg.Graphics.Width,
		height:         cfg.Graphics.Height,
		msaa:           cfg.Graphics.MSAASamples > 1,
		clearColor:     gfxcolor.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]},
		blurIterations: iterations,
	}
}

// Name returns the renderer's resource name prefix.
func (r *Renderer) Name() string { return r.name }

// SetSurfaceSize resizes the render target. The offscreen framebuffer
// is reconfigured on the next frame.
func (r *Renderer) SetSurfaceSize(width, height int) {
	r.width = width
	r.height = height
}

// SetClearColor sets the frame background color.
func (r *Renderer) SetClearColor(color gfxcolor.Color) {
	r.clearColor = color
}

// RenderFrame draws one frame: clears, runs every layer's passes into
// the offscreen target, resolves and composites onto the output
// framebuffer.
func (r *Renderer) RenderFrame(env *drawable.Environment, scene SceneRenderLayerList) {
	fbo := r.mainFramebuffer()

	r.dev.ClearColor(r.clearColor, 0, fbo)
	if r.colorPolicy.BloomEnabled {
		r.dev.ClearColor(gfxcolor.Transparent, 1, fbo)
	}
	r.dev.ClearDepth(1, fbo)

	for _, sceneLayer := range scene {
		for i := range sceneLayer {
			r.renderLayer(env, &sceneLayer[i], fbo)
		}
	}

	sceneImage := fbo.Resolve(0)
	r.composite(sceneImage, device.BlendNone)
	if r.colorPolicy.BloomEnabled {
		r.composite(r.blurBloomImage(fbo.Resolve(1)), device.BlendAdditive)
	}
}

func (r *Renderer) mainFramebuffer() device.Framebuffer {
	fbo := r.dev.MakeFramebuffer(r.name + "/MainFBO")
	want := device.FramebufferConfig{
		Width:        r.width,
		Height:       r.height,
		MSAA:         r.msaa,
		ColorTargets: 1,
	}
	if r.colorPolicy.BloomEnabled {
		want.ColorTargets = 2
	}
	if fbo.Config() != want {
		fbo.Configure(want)
	}
	return fbo
}

func (r *Renderer) viewport() device.Viewport {
	return device.Viewport{Width: r.width, Height: r.height}
}

// maskCoverState writes stencil 0 where mask shapes rasterize, carving
// them out of the cleared-to-1 buffer.
func maskCoverState() device.DepthStencilState {
	return device.DepthStencilState{
		Stencil:     device.StencilPassAlways,
		StencilRef:  0,
		StencilMask: 0xff,
		StencilPass: device.StencilWriteRef,
	}
}

// maskExposeState writes stencil 1 where mask shapes rasterize,
// revealing them in the cleared-to-0 buffer.
func maskExposeState() device.DepthStencilState {
	return device.DepthStencilState{
		Stencil:     device.StencilPassAlways,
		StencilRef:  1,
		StencilMask: 0xff,
		StencilPass: device.StencilWriteRef,
	}
}

// maskedColorState gates color draws to fragments where the stencil
// holds 1.
func maskedColorState() device.DepthStencilState {
	return device.DepthStencilState{
		WriteColor:  true,
		Stencil:     device.StencilRefIsEqual,
		StencilRef:  1,
		StencilMask: 0xff,
		StencilPass: device.StencilDontModify,
	}
}

func (r *Renderer) renderLayer(env *drawable.Environment, layer *RenderLayer, fbo device.Framebuffer) {
	cover := len(layer.MaskCoverList) > 0
	expose := len(layer.MaskExposeList) > 0

	switch {
	case cover && expose:
		r.dev.ClearStencil(1, fbo)
		r.drawList(env, layer.MaskCoverList, r.maskPolicy, maskCoverState(), fbo)
		r.drawList(env, layer.MaskExposeList, r.maskPolicy, maskExposeState(), fbo)
		r.drawList(env, layer.DrawColorList, r.colorPolicy, maskedColorState(), fbo)
	case cover:
		r.dev.ClearStencil(1, fbo)
		r.drawList(env, layer.MaskCoverList, r.maskPolicy, maskCoverState(), fbo)
		r.drawList(env, layer.DrawColorList, r.colorPolicy, maskedColorState(), fbo)
	case expose:
		r.dev.ClearStencil(0, fbo)
		r.drawList(env, layer.MaskExposeList, r.maskPolicy, maskExposeState(), fbo)
		r.drawList(env, layer.DrawColorList, r.colorPolicy, maskedColorState(), fbo)
	default:
		r.drawList(env, layer.DrawColorList, r.colorPolicy, device.DefaultDepthStencilState(), fbo)
	}
}

func (r *Renderer) drawList(env *drawable.Environment, shapes []DrawShape, policy program.Program, depthStencil device.DepthStencilState, fbo device.Framebuffer) {
	state := device.State{
		DepthStencil: depthStencil,
		Viewport:     r.viewport(),
	}
	for _, shape := range shapes {
		if culled(env, shape) {
			continue
		}
		r.painter.paint(env, policy, shape, state, fbo)
	}
}

// culled tests the drawable's local unit box against the clip volume.
// Drawables that place content outside their local bounds opt out by
// reporting themselves unbounded.
func culled(env *drawable.Environment, shape DrawShape) bool {
	if u, ok := shape.Drawable.(interface{ Unbounded() bool }); ok && u.Unbounded() {
		return false
	}

	mvp := env.Proj.Mul4(env.View).Mul4(shape.Transform)
	// the vertex stage flips y, so the local box spans y in [-1, 0]
	corners := [4]mgl32.Vec4{
		{0, 0, 0, 1},
		{1, 0, 0, 1},
		{0, -1, 0, 1},
		{1, -1, 0, 1},
	}

	var left, right, below, above int
	for _, corner := range corners {
		clip := mvp.Mul4x1(corner)
		if clip[0] < -clip[3] {
			left++
		}
		if clip[0] > clip[3] {
			right++
		}
		if clip[1] < -clip[3] {
			below++
		}
		if clip[1] > clip[3] {
			above++
		}
	}
	n := len(corners)
	return left == n || right == n || below == n || above == n
}
