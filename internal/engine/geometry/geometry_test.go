package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBufferDrawCommands(t *testing.T) {
	var buf Buffer
	buf.SetVertexLayout(Vertex2DLayout())
	buf.UploadVertices(PackVertices2D([]Vertex2D{
		{Position: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec2{1, 1}},
	}))
	buf.AddDrawCmd(Triangles)
	buf.AddDrawCmdRange(Lines, 1, 2)

	if got := buf.VertexCount(); got != 3 {
		t.Errorf("expected 3 vertices, got %d", got)
	}
	cmds := buf.DrawCommands()
	if len(cmds) != 2 {
		t.Fatalf("expected 2 draw commands, got %d", len(cmds))
	}
	if cmds[0].Count != WholeBuffer {
		t.Errorf("expected whole-buffer sentinel, got %d", cmds[0].Count)
	}
	if cmds[1].Offset != 1 || cmds[1].Count != 2 {
		t.Errorf("unexpected ranged command %+v", cmds[1])
	}

	buf.ClearDraws()
	if len(buf.DrawCommands()) != 0 {
		t.Error("expected no draw commands after clear")
	}
}

func TestHashBytesDeterministic(t *testing.T) {
	a := HashBytes([]byte("particle-buffer"))
	b := HashBytes([]byte("particle-buffer"))
	if a != b {
		t.Error("hash of equal content differs")
	}
	if HashBytes([]byte("other")) == a {
		t.Error("hash of different content collides")
	}
}

func TestHashCombineOrderSensitive(t *testing.T) {
	a := HashCombine(HashBytes([]byte("a")), []byte("b"))
	b := HashCombine(HashBytes([]byte("b")), []byte("a"))
	if a == b {
		t.Error("combined hash should depend on order")
	}
}

func TestPackFloats(t *testing.T) {
	data := PackFloats([]float32{1, 2})
	if len(data) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(data))
	}
	// 1.0f little-endian
	if data[0] != 0 || data[1] != 0 || data[2] != 0x80 || data[3] != 0x3f {
		t.Errorf("unexpected packing of 1.0: % x", data[:4])
	}
}

func TestVertexCountNeedsLayout(t *testing.T) {
	var buf Buffer
	buf.UploadVertices(make([]byte, 64))
	if got := buf.VertexCount(); got != 0 {
		t.Errorf("expected 0 without layout, got %d", got)
	}
}
