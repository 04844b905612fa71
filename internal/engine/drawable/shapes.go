package drawable

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// ShapeType enumerates the built-in 2D unit shapes. Shapes live in
// local [0,1]x[0,1] space; the model transform gives them their world
// size and position.
type ShapeType int

const (
	Rectangle ShapeType = iota
	IsoscelesTriangle
	RightTriangle
	Circle
	SemiCircle
	Parallelogram
	Trapezoid
	Line
	Grid
)

// String returns the shape name used in geometry ids.
func (t ShapeType) String() string {
	switch t {
	case Rectangle:
		return "rectangle"
	case IsoscelesTriangle:
		return "isosceles-triangle"
	case RightTriangle:
		return "right-triangle"
	case Circle:
		return "circle"
	case SemiCircle:
		return "semi-circle"
	case Parallelogram:
		return "parallelogram"
	case Trapezoid:
		return "trapezoid"
	case Line:
		return "line"
	case Grid:
		return "grid"
	}
	panic("unknown shape type")
}

// Style selects between filled and outlined shape rendering.
type Style int

const (
	Solid Style = iota
	Outline
)

func (s Style) String() string {
	if s == Outline {
		return "outline"
	}
	return "solid"
}

const circleSegments = 64

// SimpleShape is a drawable rendering one built-in 2D shape.
type SimpleShape struct {
	Shape ShapeType
	Style Style
	// LineWidth applies to Outline, Line and Grid rendering.
	LineWidth float32
	// GridRows and GridCols set the Grid line counts. Zero means 10.
	GridRows int
	GridCols int
}

// NewSimpleShape returns a solid shape of the given type.
func NewSimpleShape(shape ShapeType) *SimpleShape {
	return &SimpleShape{Shape: shape, LineWidth: 1}
}

func (s *SimpleShape) ShaderID(env *Environment) string {
	return simple2DShaderID(env)
}

func (s *SimpleShape) GeometryID(env *Environment) string {
	if s.Shape == Grid {
		return fmt.Sprintf("%s/%dx%d", s.Shape, s.gridRows(), s.gridCols())
	}
	return s.Shape.String() + "/" + s.Style.String()
}

func (s *SimpleShape) Shader(env *Environment, dev device.Device) *shader.ShaderSource {
	return simple2DVertexShader(env)
}

func (s *SimpleShape) Construct(env *Environment, dev device.Device, args *geometry.CreateArgs) bool {
	var vertices []geometry.Vertex2D
	var cmd geometry.DrawType

	switch s.Shape {
	case Rectangle:
		vertices = quadVertices(
			mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1}, mgl32.Vec2{1, 0})
		cmd = fanOrLoop(s.Style)
	case IsoscelesTriangle:
		vertices = shapeVertices(mgl32.Vec2{0.5, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1})
		cmd = fanOrLoop(s.Style)
	case RightTriangle:
		vertices = shapeVertices(mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1})
		cmd = fanOrLoop(s.Style)
	case Parallelogram:
		vertices = quadVertices(
			mgl32.Vec2{0.25, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{0.75, 1}, mgl32.Vec2{1, 0})
		cmd = fanOrLoop(s.Style)
	case Trapezoid:
		vertices = quadVertices(
			mgl32.Vec2{0.2, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1}, mgl32.Vec2{0.8, 0})
		cmd = fanOrLoop(s.Style)
	case Circle:
		vertices = circleVertices(s.Style, 0, 2*math.Pi)
		cmd = fanOrLoop(s.Style)
	case SemiCircle:
		vertices = circleVertices(s.Style, 0, math.Pi)
		cmd = fanOrLoop(s.Style)
	case Line:
		vertices = shapeVertices(mgl32.Vec2{0, 0.5}, mgl32.Vec2{1, 0.5})
		cmd = geometry.Lines
	case Grid:
		vertices = gridVertices(s.gridRows(), s.gridCols())
		cmd = geometry.Lines
	default:
		panic("unknown shape type")
	}

	data := geometry.PackVertices2D(vertices)
	args.Buffer.SetVertexLayout(geometry.Vertex2DLayout())
	args.Buffer.UploadVertices(data)
	args.Buffer.AddDrawCmd(cmd)
	args.Usage = geometry.Static
	args.ContentName = s.GeometryID(env)
	args.ContentHash = geometry.HashBytes(data)
	return true
}

func (s *SimpleShape) ApplyDynamicState(env *Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) {
	applyTransformState(env, program)
	if s.Primitive() == PrimitiveLines {
		raster.LineWidth = s.lineWidth()
	}
}

func (s *SimpleShape) Update(env *Environment, dt float32) {}
func (s *SimpleShape) Restart(env *Environment)            {}
func (s *SimpleShape) IsAlive() bool                       { return true }

func (s *SimpleShape) Primitive() Primitive {
	if s.Style == Outline || s.Shape == Line || s.Shape == Grid {
		return PrimitiveLines
	}
	return PrimitiveTriangles
}

func (s *SimpleShape) Usage() geometry.Usage { return geometry.Static }

func (s *SimpleShape) lineWidth() float32 {
	if s.LineWidth <= 0 {
		return 1
	}
	return s.LineWidth
}

func (s *SimpleShape) gridRows() int {
	if s.GridRows <= 0 {
		return 10
	}
	return s.GridRows
}

func (s *SimpleShape) gridCols() int {
	if s.GridCols <= 0 {
		return 10
	}
	return s.GridCols
}

func fanOrLoop(style Style) geometry.DrawType {
	if style == Outline {
		return geometry.LineLoop
	}
	return geometry.TriangleFan
}

// shapeVertices maps positions to vertices with texture coordinates
// equal to the position, since shapes live in unit space.
func shapeVertices(positions ...mgl32.Vec2) []geometry.Vertex2D {
	out := make([]geometry.Vertex2D, len(positions))
	for i, p := range positions {
		out[i] = geometry.Vertex2D{Position: p, TexCoord: p}
	}
	return out
}

func quadVertices(a, b, c, d mgl32.Vec2) []geometry.Vertex2D {
	return shapeVertices(a, b, c, d)
}

// circleVertices builds a fan (solid) or loop (outline) over an arc.
func circleVertices(style Style, startAngle, arc float64) []geometry.Vertex2D {
	center := mgl32.Vec2{0.5, 0.5}
	var positions []mgl32.Vec2
	if style == Solid {
		positions = append(positions, center)
	}
	for i := 0; i <= circleSegments; i++ {
		angle := startAngle + arc*float64(i)/circleSegments
		positions = append(positions, mgl32.Vec2{
			0.5 + 0.5*float32(math.Cos(angle)),
			0.5 + 0.5*float32(math.Sin(angle)),
		})
	}
	return shapeVertices(positions...)
}

// gridVertices builds the interior grid lines as line-list segments.
func gridVertices(rows, cols int) []geometry.Vertex2D {
	var positions []mgl32.Vec2
	for r := 1; r < rows; r++ {
		y := float32(r) / float32(rows)
		positions = append(positions, mgl32.Vec2{0, y}, mgl32.Vec2{1, y})
	}
	for c := 1; c < cols; c++ {
		x := float32(c) / float32(cols)
		positions = append(positions, mgl32.Vec2{x, 0}, mgl32.Vec2{x, 1})
	}
	return shapeVertices(positions...)
}
