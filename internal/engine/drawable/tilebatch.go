package drawable

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// Tile is one cell of a tile batch, positioned on the tile grid.
type Tile struct {
	Pos mgl32.Vec2
	// Index selects the tile image inside the material's tile sheet.
	Index int
}

// TileBatch renders a batch of equally sized tiles in one draw. The
// batch is rebuilt per frame, so the geometry streams.
type TileBatch struct {
	id       string
	TileSize mgl32.Vec2
	tiles    []Tile
}

// NewTileBatch returns an empty batch with unit tile size.
func NewTileBatch(id string) *TileBatch {
	return &TileBatch{id: id, TileSize: mgl32.Vec2{1, 1}}
}

// AddTile appends one tile to the batch.
func (b *TileBatch) AddTile(tile Tile) {
	b.tiles = append(b.tiles, tile)
}

// ClearTiles drops all tiles.
func (b *TileBatch) ClearTiles() {
	b.tiles = b.tiles[:0]
}

// TileCount returns the number of tiles in the batch.
func (b *TileBatch) TileCount() int { return len(b.tiles) }

func (b *TileBatch) ShaderID(env *Environment) string {
	return "tile-batch-shader"
}

func (b *TileBatch) GeometryID(env *Environment) string {
	return "tile-batch/" + b.id
}

const tileBatchVertexShaderSrc = `
uniform mat4 kProjectionMatrix;
uniform mat4 kModelViewMatrix;
uniform vec2 kTileSize;
out vec2 vTexCoord;
out float vParticleAlpha;
out float vTileIndex;
void VertexShaderMain() {
    vec2 corner = aTexCoord * kTileSize;
    vec4 vertex = vec4(aPosition.x + corner.x, (aPosition.y + corner.y) * -1.0, 0.0, 1.0);
    vTexCoord = aTexCoord;
    vTileIndex = aData.x;
    vParticleAlpha = 1.0;
    vs_out.clip_position = kProjectionMatrix * kModelViewMatrix * vertex;
}
`

func (b *TileBatch) Shader(env *Environment, dev device.Device) *shader.ShaderSource {
	src := shader.New(shader.Vertex)
	src.SetVersion(shader.GLSL300)
	src.AddShaderName("tile-batch-shader")
	src.AddAttribute("aPosition", shader.TypeVec2f)
	src.AddAttribute("aTexCoord", shader.TypeVec2f)
	src.AddAttribute("aData", shader.TypeVec2f)
	mustLoadRawSource(src, tileBatchVertexShaderSrc)
	return src
}

func (b *TileBatch) Construct(env *Environment, dev device.Device, args *geometry.CreateArgs) bool {
	// 6 vertices per tile, position is the tile origin and the
	// texcoord corner expands it to a quad in the vertex shader
	corners := [6]mgl32.Vec2{
		{0, 0}, {0, 1}, {1, 1},
		{0, 0}, {1, 1}, {1, 0},
	}
	floats := make([]float32, 0, len(b.tiles)*6*6)
	for _, tile := range b.tiles {
		for _, corner := range corners {
			floats = append(floats,
				tile.Pos[0], tile.Pos[1],
				corner[0], corner[1],
				float32(tile.Index), 0)
		}
	}
	data := geometry.PackFloats(floats)
	args.Buffer.SetVertexLayout(geometry.VertexLayout{
		VertexSize: 24,
		Attributes: []geometry.Attribute{
			{Name: "aPosition", Index: 0, Components: 2, Offset: 0},
			{Name: "aTexCoord", Index: 1, Components: 2, Offset: 8},
			{Name: "aData", Index: 2, Components: 2, Offset: 16},
		},
	})
	args.Buffer.UploadVertices(data)
	args.Buffer.AddDrawCmd(geometry.Triangles)
	args.Usage = geometry.Stream
	args.ContentName = b.GeometryID(env)
	args.ContentHash = geometry.HashBytes(data)
	return true
}

func (b *TileBatch) ApplyDynamicState(env *Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) {
	applyTransformState(env, program)
	program.SetUniform("kTileSize", b.TileSize)
}

func (b *TileBatch) Update(env *Environment, dt float32) {}
func (b *TileBatch) Restart(env *Environment)            {}
func (b *TileBatch) IsAlive() bool                       { return true }
func (b *TileBatch) Primitive() Primitive                { return PrimitiveTriangles }
func (b *TileBatch) Usage() geometry.Usage               { return geometry.Stream }
