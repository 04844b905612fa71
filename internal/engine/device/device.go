// Package device defines what the rendering core requires from a
// graphics device backend: find-or-make resource management keyed by
// content-addressed names, draw submission with explicit pipeline
// state, and clears. The actual GPU backend lives elsewhere; this
// package also provides an in-memory NullDevice for tests.
package device

import (
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
)

// BlendMode selects the framebuffer blend function.
type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendTransparent
	BlendAdditive
)

// Culling selects which triangle faces are discarded.
type Culling int

const (
	CullNone Culling = iota
	CullBack
	CullFront
)

// StencilFunc selects the stencil test.
type StencilFunc int

const (
	StencilDisabled StencilFunc = iota
	StencilPassAlways
	StencilRefIsEqual
)

// StencilOp selects what a passing stencil test writes.
type StencilOp int

const (
	StencilDontModify StencilOp = iota
	StencilWriteRef
)

// RasterState is the per-draw raster configuration drawables and
// materials may override.
type RasterState struct {
	Blending    BlendMode
	PremulAlpha bool
	LineWidth   float32
	Culling     Culling
}

// DefaultRasterState returns the neutral raster configuration.
func DefaultRasterState() RasterState {
	return RasterState{LineWidth: 1}
}

// DepthStencilState is the per-pass depth/stencil configuration.
type DepthStencilState struct {
	WriteColor  bool
	DepthTest   bool
	Stencil     StencilFunc
	StencilRef  int
	StencilMask uint8
	StencilFail StencilOp
	StencilPass StencilOp
}

// DefaultDepthStencilState returns the plain color-draw configuration.
func DefaultDepthStencilState() DepthStencilState {
	return DepthStencilState{
		WriteColor:  true,
		StencilMask: 0xff,
	}
}

// Viewport is the render target area in pixels.
type Viewport struct {
	X, Y, Width, Height int
}

// State bundles all fixed-function state of one draw.
type State struct {
	Raster       RasterState
	DepthStencil DepthStencilState
	Viewport     Viewport
}

// TextureFormat is the pixel format of a texture resource.
type TextureFormat int

const (
	FormatRGBA TextureFormat = iota
	FormatSRGBA
)

// TextureFilter is the sampling filter.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
)

// TextureWrap is the sampling wrap mode.
type TextureWrap int

const (
	WrapClamp TextureWrap = iota
	WrapRepeat
)

// Program is a compiled shader program resource.
type Program interface {
	Name() string
	// Build compiles the program from serialized stage sources.
	Build(vertexSource, fragmentSource string) error
	IsValid() bool
}

// Texture is a texture resource.
type Texture interface {
	Name() string
	Allocate(width, height int, format TextureFormat)
	Size() (width, height int)
	Format() TextureFormat
	SetFilter(filter TextureFilter)
	SetWrap(wrap TextureWrap)
}

// FramebufferConfig describes an offscreen render target.
type FramebufferConfig struct {
	Width        int
	Height       int
	MSAA         bool
	ColorTargets int // 1 or 2, the second target carries bloom
}

// Framebuffer is an offscreen render target resource.
type Framebuffer interface {
	Name() string
	Configure(config FramebufferConfig)
	Config() FramebufferConfig
	// Resolve returns the single-sampled texture of one color
	// attachment.
	Resolve(attachment int) Texture
}

// Geometry is an uploaded geometry resource.
type Geometry interface {
	Name() string
	Upload(args geometry.CreateArgs)
	ContentHash() uint64
	DrawCommands() []geometry.DrawCommand
	VertexCount() int
}

// Device is the graphics backend contract. All resource names are
// content-addressed strings; creation is idempotent (find-or-make).
// A nil Framebuffer argument targets the default framebuffer. The
// device is single-threaded, touched only from the render thread.
type Device interface {
	FindProgram(name string) Program
	MakeProgram(name string) Program
	FindTexture(name string) Texture
	MakeTexture(name string) Texture
	FindFramebuffer(name string) Framebuffer
	MakeFramebuffer(name string) Framebuffer
	FindGeometry(name string) Geometry
	MakeGeometry(name string) Geometry

	Draw(program Program, programState *ProgramState, geom Geometry, state State, fbo Framebuffer)

	ClearColor(color gfxcolor.Color, attachment int, fbo Framebuffer)
	ClearDepth(value float32, fbo Framebuffer)
	ClearStencil(value int, fbo Framebuffer)
}
