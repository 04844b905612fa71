package device

import (
	"fmt"

	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/gfxcolor"
)

// NullDevice is an in-memory Device that records every resource and
// submission instead of talking to a GPU. Unit tests assert against
// its operation log.
type NullDevice struct {
	programs     map[string]*nullProgram
	textures     map[string]*nullTexture
	framebuffers map[string]*nullFramebuffer
	geometries   map[string]*nullGeometry

	// Ops is the ordered log of draws and clears.
	Ops []Op
}

// DrawCall is one recorded draw submission.
type DrawCall struct {
	Program     string
	Geometry    string
	Framebuffer string // "" for the default framebuffer
	State       State
	Bindings    ProgramState
	Commands    []geometry.DrawCommand // whole-buffer counts resolved
}

// ClearCall is one recorded clear.
type ClearCall struct {
	Kind        string // "color", "depth" or "stencil"
	Attachment  int
	Color       gfxcolor.Color
	Depth       float32
	Stencil     int
	Framebuffer string
}

// Op is one entry of the operation log, either a draw or a clear.
type Op struct {
	Draw  *DrawCall
	Clear *ClearCall
}

// NewNullDevice returns an empty recording device.
func NewNullDevice() *NullDevice {
	return &NullDevice{
		programs:     make(map[string]*nullProgram),
		textures:     make(map[string]*nullTexture),
		framebuffers: make(map[string]*nullFramebuffer),
		geometries:   make(map[string]*nullGeometry),
	}
}

// Draws returns all recorded draw calls in submission order.
func (d *NullDevice) Draws() []DrawCall {
	var out []DrawCall
	for _, op := range d.Ops {
		if op.Draw != nil {
			out = append(out, *op.Draw)
		}
	}
	return out
}

// Clears returns all recorded clears of one kind in submission order.
func (d *NullDevice) Clears(kind string) []ClearCall {
	var out []ClearCall
	for _, op := range d.Ops {
		if op.Clear != nil && op.Clear.Kind == kind {
			out = append(out, *op.Clear)
		}
	}
	return out
}

func (d *NullDevice) FindProgram(name string) Program {
	if p, ok := d.programs[name]; ok {
		return p
	}
	return nil
}

func (d *NullDevice) MakeProgram(name string) Program {
	if p, ok := d.programs[name]; ok {
		return p
	}
	p := &nullProgram{name: name}
	d.programs[name] = p
	return p
}

func (d *NullDevice) FindTexture(name string) Texture {
	if t, ok := d.textures[name]; ok {
		return t
	}
	return nil
}

func (d *NullDevice) MakeTexture(name string) Texture {
	if t, ok := d.textures[name]; ok {
		return t
	}
	t := &nullTexture{name: name}
	d.textures[name] = t
	return t
}

func (d *NullDevice) FindFramebuffer(name string) Framebuffer {
	if f, ok := d.framebuffers[name]; ok {
		return f
	}
	return nil
}

func (d *NullDevice) MakeFramebuffer(name string) Framebuffer {
	if f, ok := d.framebuffers[name]; ok {
		return f
	}
	f := &nullFramebuffer{name: name, device: d}
	d.framebuffers[name] = f
	return f
}

func (d *NullDevice) FindGeometry(name string) Geometry {
	if g, ok := d.geometries[name]; ok {
		return g
	}
	return nil
}

func (d *NullDevice) MakeGeometry(name string) Geometry {
	if g, ok := d.geometries[name]; ok {
		return g
	}
	g := &nullGeometry{name: name}
	d.geometries[name] = g
	return g
}

func (d *NullDevice) Draw(program Program, programState *ProgramState, geom Geometry, state State, fbo Framebuffer) {
	call := DrawCall{
		Program:  program.Name(),
		Geometry: geom.Name(),
		State:    state,
	}
	if fbo != nil {
		call.Framebuffer = fbo.Name()
	}
	if programState != nil {
		call.Bindings = *programState
	}
	vertexCount := geom.VertexCount()
	for _, cmd := range geom.DrawCommands() {
		if cmd.Count == geometry.WholeBuffer {
			cmd.Count = vertexCount - cmd.Offset
		}
		call.Commands = append(call.Commands, cmd)
	}
	d.Ops = append(d.Ops, Op{Draw: &call})
}

func (d *NullDevice) ClearColor(color gfxcolor.Color, attachment int, fbo Framebuffer) {
	d.clear(ClearCall{Kind: "color", Attachment: attachment, Color: color}, fbo)
}

func (d *NullDevice) ClearDepth(value float32, fbo Framebuffer) {
	d.clear(ClearCall{Kind: "depth", Depth: value}, fbo)
}

func (d *NullDevice) ClearStencil(value int, fbo Framebuffer) {
	d.clear(ClearCall{Kind: "stencil", Stencil: value}, fbo)
}

func (d *NullDevice) clear(call ClearCall, fbo Framebuffer) {
	if fbo != nil {
		call.Framebuffer = fbo.Name()
	}
	d.Ops = append(d.Ops, Op{Clear: &call})
}

type nullProgram struct {
	name     string
	vertex   string
	fragment string
	valid    bool
}

func (p *nullProgram) Name() string { return p.name }

func (p *nullProgram) Build(vertexSource, fragmentSource string) error {
	if vertexSource == "" || fragmentSource == "" {
		p.valid = false
		return fmt.Errorf("program %s: missing stage source", p.name)
	}
	p.vertex = vertexSource
	p.fragment = fragmentSource
	p.valid = true
	return nil
}

func (p *nullProgram) IsValid() bool { return p.valid }

// VertexSource exposes the built vertex stage for assertions.
func (p *nullProgram) VertexSource() string { return p.vertex }

// FragmentSource exposes the built fragment stage for assertions.
func (p *nullProgram) FragmentSource() string { return p.fragment }

type nullTexture struct {
	name   string
	width  int
	height int
	format TextureFormat
	filter TextureFilter
	wrap   TextureWrap
}

func (t *nullTexture) Name() string { return t.name }

func (t *nullTexture) Allocate(width, height int, format TextureFormat) {
	t.width = width
	t.height = height
	t.format = format
}

func (t *nullTexture) Size() (int, int)             { return t.width, t.height }
func (t *nullTexture) Format() TextureFormat        { return t.format }
func (t *nullTexture) SetFilter(filter TextureFilter) { t.filter = filter }
func (t *nullTexture) SetWrap(wrap TextureWrap)       { t.wrap = wrap }

type nullFramebuffer struct {
	name   string
	device *NullDevice
	config FramebufferConfig
}

func (f *nullFramebuffer) Name() string { return f.name }

func (f *nullFramebuffer) Configure(config FramebufferConfig) {
	f.config = config
}

func (f *nullFramebuffer) Config() FramebufferConfig { return f.config }

func (f *nullFramebuffer) Resolve(attachment int) Texture {
	tex := f.device.MakeTexture(fmt.Sprintf("%s/color%d", f.name, attachment))
	tex.Allocate(f.config.Width, f.config.Height, FormatRGBA)
	return tex
}

type nullGeometry struct {
	name string
	args geometry.CreateArgs
}

func (g *nullGeometry) Name() string { return g.name }

func (g *nullGeometry) Upload(args geometry.CreateArgs) {
	g.args = args
}

func (g *nullGeometry) ContentHash() uint64 { return g.args.ContentHash }

func (g *nullGeometry) DrawCommands() []geometry.DrawCommand {
	return g.args.Buffer.DrawCommands()
}

func (g *nullGeometry) VertexCount() int {
	return g.args.Buffer.VertexCount()
}
