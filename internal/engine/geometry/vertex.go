package geometry

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Attribute describes one vertex attribute inside a vertex struct.
type Attribute struct {
	Name       string
	Index      int
	Components int // number of float components
	Offset     int // byte offset inside the vertex
	Divisor    int // instancing divisor, 0 for per-vertex
}

// VertexLayout describes the packed layout of one vertex.
type VertexLayout struct {
	VertexSize int // bytes per vertex
	Attributes []Attribute
}

// Vertex2D is the standard 2D shape vertex.
type Vertex2D struct {
	Position mgl32.Vec2
	TexCoord mgl32.Vec2
}

// Vertex2DLayout matches Vertex2D.
func Vertex2DLayout() VertexLayout {
	return VertexLayout{
		VertexSize: 16,
		Attributes: []Attribute{
			{Name: "aPosition", Index: 0, Components: 2, Offset: 0},
			{Name: "aTexCoord", Index: 1, Components: 2, Offset: 8},
		},
	}
}

// PackFloats packs float32 values into little-endian bytes.
func PackFloats(values []float32) []byte {
	out := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// PackVertices2D packs Vertex2D values into little-endian bytes.
func PackVertices2D(vertices []Vertex2D) []byte {
	floats := make([]float32, 0, len(vertices)*4)
	for _, v := range vertices {
		floats = append(floats, v.Position[0], v.Position[1], v.TexCoord[0], v.TexCoord[1])
	}
	return PackFloats(floats)
}

// PackIndices16 packs 16-bit indices into little-endian bytes.
func PackIndices16(indices []uint16) []byte {
	out := make([]byte, len(indices)*2)
	for i, v := range indices {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}
