package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// LineBatch renders a set of line segments in one draw, for editor
// guides and debug visualization.
type LineBatch struct {
	id        string
	LineWidth float32
	lines     []lineSegment
}

type lineSegment struct {
	from mgl32.Vec2
	to   mgl32.Vec2
}

// NewLineBatch returns an empty batch.
func NewLineBatch(id string) *LineBatch {
	return &LineBatch{id: id, LineWidth: 1}
}

// AddLine appends one segment.
func (b *LineBatch) AddLine(from, to mgl32.Vec2) {
	b.lines = append(b.lines, lineSegment{from: from, to: to})
}

// ClearLines drops all segments.
func (b *LineBatch) ClearLines() {
	b.lines = b.lines[:0]
}

// LineCount returns the number of segments.
func (b *LineBatch) LineCount() int { return len(b.lines) }

func (b *LineBatch) ShaderID(env *Environment) string {
	return simple2DShaderID(env)
}

func (b *LineBatch) GeometryID(env *Environment) string {
	return "line-batch/" + b.id
}

func (b *LineBatch) Shader(env *Environment, dev device.Device) *shader.ShaderSource {
	return simple2DVertexShader(env)
}

func (b *LineBatch) Construct(env *Environment, dev device.Device, args *geometry.CreateArgs) bool {
	vertices := make([]geometry.Vertex2D, 0, len(b.lines)*2)
	for _, line := range b.lines {
		vertices = append(vertices,
			geometry.Vertex2D{Position: line.from, TexCoord: line.from},
			geometry.Vertex2D{Position: line.to, TexCoord: line.to})
	}
	data := geometry.PackVertices2D(vertices)
	args.Buffer.SetVertexLayout(geometry.Vertex2DLayout())
	args.Buffer.UploadVertices(data)
	args.Buffer.AddDrawCmd(geometry.Lines)
	args.Usage = geometry.Stream
	args.ContentName = b.GeometryID(env)
	args.ContentHash = geometry.HashBytes(data)
	return true
}

func (b *LineBatch) ApplyDynamicState(env *Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) {
	applyTransformState(env, program)
	raster.LineWidth = b.LineWidth
}

func (b *LineBatch) Update(env *Environment, dt float32) {}
func (b *LineBatch) Restart(env *Environment)            {}
func (b *LineBatch) IsAlive() bool                       { return true }
func (b *LineBatch) Primitive() Primitive                { return PrimitiveLines }
func (b *LineBatch) Usage() geometry.Usage               { return geometry.Stream }
