package drawable

import (
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

func TestMain(m *testing.M) {
	logger.InitWithFileConfig("error", logger.FileConfig{}, false)
	os.Exit(m.Run())
}

func testEnv() *Environment {
	return NewEnvironment(rand.New(rand.NewSource(1)))
}

func TestShaderIDIgnoresPerFrameState(t *testing.T) {
	shape := NewSimpleShape(Circle)
	env := testEnv()
	id := shape.ShaderID(env)

	env.Model = mgl32.Translate3D(4, 5, 0)
	env.RenderPoints = true
	if got := shape.ShaderID(env); got != id {
		t.Errorf("shader id changed with per-frame state: %q vs %q", got, id)
	}

	env.InstancedDraw = true
	if got := shape.ShaderID(env); got == id {
		t.Error("instancing must select a different shader")
	}
}

func TestInstancedVertexShader(t *testing.T) {
	env := testEnv()
	env.InstancedDraw = true

	shape := NewSimpleShape(Rectangle)
	text := shape.Shader(env, device.NewNullDevice()).GetSource(shader.Production)

	if !strings.Contains(text, "#define INSTANCED_DRAW") {
		t.Error("expected instancing define")
	}
	if !strings.Contains(text, "in vec4 iaModelVecX;") {
		t.Error("expected per-instance model attribute")
	}
}

func TestShapeConstruction(t *testing.T) {
	tests := []struct {
		shape ShapeType
		style Style
		draw  geometry.DrawType
	}{
		{Rectangle, Solid, geometry.TriangleFan},
		{Rectangle, Outline, geometry.LineLoop},
		{IsoscelesTriangle, Solid, geometry.TriangleFan},
		{Circle, Solid, geometry.TriangleFan},
		{SemiCircle, Outline, geometry.LineLoop},
		{Line, Solid, geometry.Lines},
	}
	for _, test := range tests {
		s := NewSimpleShape(test.shape)
		s.Style = test.style

		var args geometry.CreateArgs
		if !s.Construct(testEnv(), device.NewNullDevice(), &args) {
			t.Fatalf("%v/%v: construction failed", test.shape, test.style)
		}
		cmds := args.Buffer.DrawCommands()
		if len(cmds) == 0 || cmds[0].Type != test.draw {
			t.Errorf("%v/%v: draw commands %v, want type %v",
				test.shape, test.style, cmds, test.draw)
		}
		if args.Buffer.VertexCount() == 0 {
			t.Errorf("%v/%v: no vertices", test.shape, test.style)
		}
		if args.ContentHash == 0 {
			t.Errorf("%v/%v: missing content hash", test.shape, test.style)
		}
	}
}

func TestShapeVerticesStayInUnitBox(t *testing.T) {
	for _, shape := range []ShapeType{Rectangle, IsoscelesTriangle, RightTriangle, Circle, SemiCircle, Parallelogram, Trapezoid} {
		s := NewSimpleShape(shape)

		var args geometry.CreateArgs
		if !s.Construct(testEnv(), device.NewNullDevice(), &args) {
			t.Fatalf("%v: construction failed", shape)
		}
		vertices, ok := triangleList(&args.Buffer)
		if !ok {
			t.Fatalf("%v: expected triangle geometry", shape)
		}
		for _, v := range vertices {
			for i := 0; i < 2; i++ {
				if v.Position[i] < 0 || v.Position[i] > 1 {
					t.Fatalf("%v: vertex %v outside unit box", shape, v.Position)
				}
			}
		}
	}
}

func TestGridGeometryID(t *testing.T) {
	grid := NewSimpleShape(Grid)
	grid.GridRows = 3
	grid.GridCols = 7
	if got := grid.GeometryID(testEnv()); got != "grid/3x7" {
		t.Errorf("geometry id = %q", got)
	}
}

func TestPolygonSubMesh(t *testing.T) {
	class := NewPolygonMeshClass("meshes/ship")
	class.SetVertices([]geometry.Vertex2D{
		{Position: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec2{1, 1}},
		{Position: mgl32.Vec2{0, 1}},
	})
	class.AddDrawCommand(geometry.DrawCommand{Type: geometry.Triangles, Offset: 0, Count: geometry.WholeBuffer})
	class.SetSubMesh("hull", []geometry.DrawCommand{{Type: geometry.Triangles, Offset: 0, Count: 3}})

	hull := NewSubMesh(class, "hull")
	var args geometry.CreateArgs
	if !hull.Construct(testEnv(), device.NewNullDevice(), &args) {
		t.Fatal("construction failed")
	}
	cmds := args.Buffer.DrawCommands()
	if len(cmds) != 1 || cmds[0].Count != 3 {
		t.Errorf("sub-mesh draw commands = %v", cmds)
	}
	if hull.GeometryID(testEnv()) != "meshes/ship/hull" {
		t.Errorf("geometry id = %q", hull.GeometryID(testEnv()))
	}
}

func TestPolygonMissingSubMeshDegrades(t *testing.T) {
	class := NewPolygonMeshClass("meshes/ship")
	class.SetVertices([]geometry.Vertex2D{{Position: mgl32.Vec2{0, 0}}})

	missing := NewSubMesh(class, "no-such-part")
	var args geometry.CreateArgs
	if !missing.Construct(testEnv(), device.NewNullDevice(), &args) {
		t.Fatal("missing sub-mesh should degrade to an empty draw, not fail")
	}
	if cmds := args.Buffer.DrawCommands(); len(cmds) != 0 {
		t.Errorf("expected empty draw, got %v", cmds)
	}
}

func TestDebugDrawableRetagsTriangles(t *testing.T) {
	debug := NewDebugDrawable(NewSimpleShape(Rectangle))

	var args geometry.CreateArgs
	if !debug.Construct(testEnv(), device.NewNullDevice(), &args) {
		t.Fatal("construction failed")
	}
	for _, cmd := range args.Buffer.DrawCommands() {
		if cmd.Type != geometry.LineLoop {
			t.Errorf("draw type %v, want LineLoop", cmd.Type)
		}
	}
	if debug.Primitive() != PrimitiveLines {
		t.Error("debug drawable must report line topology")
	}
	base := NewSimpleShape(Rectangle)
	if debug.GeometryID(testEnv()) == base.GeometryID(testEnv()) {
		t.Error("wireframe geometry must not collide with the base geometry")
	}
}

func TestTileBatchConstruction(t *testing.T) {
	batch := NewTileBatch("level-1")
	batch.AddTile(Tile{Pos: mgl32.Vec2{0, 0}, Index: 4})
	batch.AddTile(Tile{Pos: mgl32.Vec2{1, 0}, Index: 5})

	var args geometry.CreateArgs
	if !batch.Construct(testEnv(), device.NewNullDevice(), &args) {
		t.Fatal("construction failed")
	}
	if got := args.Buffer.VertexCount(); got != 12 {
		t.Errorf("vertex count = %d, want 6 per tile", got)
	}
	if args.Usage != geometry.Stream {
		t.Error("tile batches stream their geometry")
	}
}

func TestLineBatch(t *testing.T) {
	batch := NewLineBatch("guides")
	batch.AddLine(mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1})
	batch.AddLine(mgl32.Vec2{0, 1}, mgl32.Vec2{1, 0})

	var args geometry.CreateArgs
	if !batch.Construct(testEnv(), device.NewNullDevice(), &args) {
		t.Fatal("construction failed")
	}
	if got := args.Buffer.VertexCount(); got != 4 {
		t.Errorf("vertex count = %d, want 2 per segment", got)
	}
	batch.ClearLines()
	if batch.LineCount() != 0 {
		t.Error("expected empty batch after clear")
	}
}

func TestEffectDrawablePassThrough(t *testing.T) {
	shape := NewSimpleShape(Rectangle)
	effect := NewEffectDrawable(shape, "boom-1", EffectMeshExplosion, MeshExplosionArgs{})
	env := testEnv()

	if effect.ShaderID(env) != shape.ShaderID(env) {
		t.Error("disabled effect must not change the shader id")
	}
	if effect.GeometryID(env) != shape.GeometryID(env) {
		t.Error("disabled effect must not change the geometry id")
	}
}

func TestEffectDrawableEnabled(t *testing.T) {
	shape := NewSimpleShape(Rectangle)
	effect := NewEffectDrawable(shape, "boom-1", EffectMeshExplosion, MeshExplosionArgs{
		ShardLinearSpeed: 2,
	})
	effect.EnableEffect()
	env := testEnv()

	if !strings.HasPrefix(effect.ShaderID(env), "effect/") {
		t.Errorf("shader id %q must not collide with the plain shader", effect.ShaderID(env))
	}
	if !strings.Contains(effect.GeometryID(env), "/effect:boom-1") {
		t.Errorf("geometry id %q must be unique per effect instance", effect.GeometryID(env))
	}

	text := effect.Shader(env, device.NewNullDevice()).GetSource(shader.Production)
	if !strings.Contains(text, "#define USE_EFFECTS_MESH") {
		t.Error("expected effect define")
	}
	if !strings.Contains(text, "vec2 MeshEffectDisplace(vec2 position)") {
		t.Error("expected displacement function")
	}
	if !strings.Contains(text, "void VertexShaderMain()") {
		t.Error("expected merged wrapped source")
	}

	var args geometry.CreateArgs
	if !effect.Construct(env, device.NewNullDevice(), &args) {
		t.Fatal("construction failed")
	}
	layout := args.Buffer.Layout()
	if layout.VertexSize != 32 {
		t.Errorf("vertex size = %d, want 32 with shard data", layout.VertexSize)
	}
	if layout.Attributes[2].Name != "aEffectShardData" {
		t.Errorf("attributes = %v", layout.Attributes)
	}
	// a rectangle fan unrolls into 2 triangles
	if got := args.Buffer.VertexCount(); got != 6 {
		t.Errorf("vertex count = %d, want 6", got)
	}
}

func TestEffectDrawableRejectsLines(t *testing.T) {
	batch := NewLineBatch("guides")
	effect := NewEffectDrawable(batch, "boom-2", EffectMeshExplosion, MeshExplosionArgs{})
	effect.EnableEffect()

	var args geometry.CreateArgs
	if effect.Construct(testEnv(), device.NewNullDevice(), &args) {
		t.Error("expected failure for non-triangle topology")
	}
}

func TestEffectDrawableTime(t *testing.T) {
	shape := NewSimpleShape(Rectangle)
	effect := NewEffectDrawable(shape, "boom-3", EffectMeshExplosion, MeshExplosionArgs{})
	effect.EnableEffect()
	env := testEnv()

	effect.Update(env, 0.5)
	effect.Update(env, 0.25)

	var program device.ProgramState
	raster := device.DefaultRasterState()
	effect.ApplyDynamicState(env, device.NewNullDevice(), &program, &raster)
	if value, _ := program.Uniform("kEffectTime"); value != float32(0.75) {
		t.Errorf("kEffectTime = %v, want 0.75", value)
	}

	effect.Restart(env)
	effect.ApplyDynamicState(env, device.NewNullDevice(), &program, &raster)
	if value, _ := program.Uniform("kEffectTime"); value != float32(0) {
		t.Errorf("kEffectTime after restart = %v, want 0", value)
	}
}
