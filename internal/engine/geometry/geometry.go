// Package geometry holds the CPU-side representation of renderable
// geometry: packed vertex/index data, vertex layout and an ordered list
// of draw commands, plus the content hashing used for upload caching.
package geometry

import "hash/fnv"

// DrawType selects the rasterizer primitive of a draw command.
type DrawType int

const (
	Triangles DrawType = iota
	TriangleFan
	Points
	Lines
	LineLoop
)

// Usage hints how often the geometry contents change.
type Usage int

const (
	// Static is uploaded once and drawn many times.
	Static Usage = iota
	// Dynamic changes occasionally.
	Dynamic
	// Stream changes on every draw, i.e. particle data.
	Stream
)

// WholeBuffer as a draw command count means "the rest of the buffer".
const WholeBuffer = -1

// DrawCommand renders a contiguous range of vertices or indices.
type DrawCommand struct {
	Type   DrawType
	Offset int
	Count  int
}

// Buffer is a CPU-side geometry buffer under construction. Drawables
// fill one in Construct; the device uploads it.
type Buffer struct {
	layout   VertexLayout
	vertices []byte
	indices  []byte
	commands []DrawCommand
}

// SetVertexLayout describes the vertex attributes of the vertex data.
func (b *Buffer) SetVertexLayout(layout VertexLayout) {
	b.layout = layout
}

// Layout returns the vertex layout.
func (b *Buffer) Layout() VertexLayout {
	return b.layout
}

// UploadVertices replaces the packed vertex data.
func (b *Buffer) UploadVertices(data []byte) {
	b.vertices = data
}

// UploadIndices replaces the packed 16-bit index data.
func (b *Buffer) UploadIndices(data []byte) {
	b.indices = data
}

// VertexBytes returns the packed vertex data.
func (b *Buffer) VertexBytes() []byte {
	return b.vertices
}

// IndexBytes returns the packed index data.
func (b *Buffer) IndexBytes() []byte {
	return b.indices
}

// VertexCount returns the number of vertices in the buffer, or 0 when
// no layout is set.
func (b *Buffer) VertexCount() int {
	if b.layout.VertexSize == 0 {
		return 0
	}
	return len(b.vertices) / b.layout.VertexSize
}

// AddDrawCmd appends a draw over the rest of the buffer.
func (b *Buffer) AddDrawCmd(typ DrawType) {
	b.commands = append(b.commands, DrawCommand{Type: typ, Offset: 0, Count: WholeBuffer})
}

// AddDrawCmdRange appends a draw over an explicit range.
func (b *Buffer) AddDrawCmdRange(typ DrawType, offset, count int) {
	b.commands = append(b.commands, DrawCommand{Type: typ, Offset: offset, Count: count})
}

// ClearDraws drops all draw commands.
func (b *Buffer) ClearDraws() {
	b.commands = b.commands[:0]
}

// DrawCommands returns the ordered draw command list.
func (b *Buffer) DrawCommands() []DrawCommand {
	return b.commands
}

// IsEmpty is true when the buffer holds no vertex data.
func (b *Buffer) IsEmpty() bool {
	return len(b.vertices) == 0
}

// CreateArgs carries everything the device needs to realize a geometry
// resource. ContentName and ContentHash key the upload cache.
type CreateArgs struct {
	Buffer      Buffer
	Usage       Usage
	ContentName string
	ContentHash uint64
}

// HashBytes fingerprints a byte slice with FNV-1a.
func HashBytes(data []byte) uint64 {
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}

// HashCombine folds more data into an existing hash value.
func HashCombine(seed uint64, data []byte) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(seed >> (8 * i))
	}
	h.Write(buf[:])
	h.Write(data)
	return h.Sum64()
}
