package drawable

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

// MeshExplosionArgs configure the explosion mesh effect.
type MeshExplosionArgs struct {
	ShardLinearSpeed            float32
	ShardLinearAcceleration     float32
	ShardRotationalSpeed        float32
	ShardRotationalAcceleration float32
}

// EffectDrawable wraps another drawable and applies a vertex mesh
// effect to its triangle geometry. The effect geometry is static, so
// every effect instance needs its own geometry id or all explosions
// would share one shard layout.
type EffectDrawable struct {
	drawable Drawable
	effectID string
	typ      EffectType
	args     MeshExplosionArgs
	enabled  bool
	time     float32

	shapeCenter mgl32.Vec2
}

// NewEffectDrawable wraps a drawable with a mesh effect. The effectID
// must be unique per effect instance.
func NewEffectDrawable(wrapped Drawable, effectID string, typ EffectType, args MeshExplosionArgs) *EffectDrawable {
	return &EffectDrawable{drawable: wrapped, effectID: effectID, typ: typ, args: args}
}

// EnableEffect starts the effect.
func (e *EffectDrawable) EnableEffect() { e.enabled = true }

// DisableEffect reverts to plain pass-through rendering.
func (e *EffectDrawable) DisableEffect() { e.enabled = false }

func (e *EffectDrawable) withEffects(env *Environment) *Environment {
	out := *env
	out.UseEffects = e.enabled
	return &out
}

func (e *EffectDrawable) ShaderID(env *Environment) string {
	id := e.drawable.ShaderID(e.withEffects(env))
	if e.enabled {
		return "effect/" + id
	}
	return id
}

func (e *EffectDrawable) GeometryID(env *Environment) string {
	if !e.enabled {
		return e.drawable.GeometryID(env)
	}
	return e.drawable.GeometryID(e.withEffects(env)) + "/effect:" + e.effectID
}

const meshEffectShaderSrc = `
in vec4 aEffectShardData;
uniform vec2 kEffectMeshCenter;
uniform float kEffectTime;
uniform int kEffectType;
uniform vec4 kEffectArgs;
vec2 MeshEffectDisplace(vec2 position) {
    if (kEffectType == MESH_EFFECT_EXPLOSION) {
        vec2 shard_center = aEffectShardData.xy;
        float shard_random = aEffectShardData.w;
        float t = kEffectTime;
        vec2 dir = normalize(shard_center - kEffectMeshCenter);
        float dist = kEffectArgs.x * t + 0.5 * kEffectArgs.y * t * t;
        float angle = (kEffectArgs.z * t + 0.5 * kEffectArgs.w * t * t) * (shard_random * 2.0 - 1.0);
        float s = sin(angle);
        float c = cos(angle);
        vec2 local = mat2(c, s, -s, c) * (position - shard_center);
        return shard_center + local + dir * dist;
    }
    return position;
}
`

func (e *EffectDrawable) Shader(env *Environment, dev device.Device) *shader.ShaderSource {
	if !e.enabled {
		return e.drawable.Shader(e.withEffects(env), dev)
	}
	src := shader.New(shader.Vertex)
	src.SetVersion(shader.GLSL300)
	src.AddDefine("USE_EFFECTS_MESH")
	src.AddDefineValue("MESH_EFFECT_EXPLOSION", int(EffectMeshExplosion))
	src.AddDebugInfo("Effects", "YES")
	mustLoadRawSource(src, meshEffectShaderSrc)
	src.Merge(e.drawable.Shader(e.withEffects(env), dev))
	return src
}

func (e *EffectDrawable) Construct(env *Environment, dev device.Device, args *geometry.CreateArgs) bool {
	if !e.enabled {
		return e.drawable.Construct(env, dev, args)
	}
	if e.drawable.Primitive() != PrimitiveTriangles {
		logger.Error("Effect mesh needs triangle topology.",
			zap.String("effect", e.effectID))
		return false
	}
	if e.typ != EffectMeshExplosion {
		panic("unhandled effect drawable type")
	}
	return e.constructExplosionMesh(env, dev, args)
}

// constructExplosionMesh rebuilds the wrapped geometry as a triangle
// list with per-shard data (shard center + random value) packed into
// an extra vertex attribute.
func (e *EffectDrawable) constructExplosionMesh(env *Environment, dev device.Device, args *geometry.CreateArgs) bool {
	var inner geometry.CreateArgs
	if !e.drawable.Construct(env, dev, &inner) {
		logger.Error("Failed to construct wrapped mesh for effect.",
			zap.String("effect", e.effectID))
		return false
	}

	vertices, ok := triangleList(&inner.Buffer)
	if !ok {
		logger.Error("Effect mesh construction needs triangle draws.",
			zap.String("effect", e.effectID))
		return false
	}

	// shape bounds give the explosion center
	min := mgl32.Vec2{float32(math.Inf(1)), float32(math.Inf(1))}
	max := mgl32.Vec2{float32(math.Inf(-1)), float32(math.Inf(-1))}
	for _, v := range vertices {
		for i := 0; i < 2; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	e.shapeCenter = min.Add(max.Sub(min).Mul(0.5))

	floats := make([]float32, 0, len(vertices)*8)
	for i := 0; i < len(vertices)/3; i++ {
		v0 := vertices[i*3+0]
		v1 := vertices[i*3+1]
		v2 := vertices[i*3+2]
		center := v0.Position.Add(v1.Position).Add(v2.Position).Mul(1.0 / 3.0)
		random := env.Rand.Float32()
		for _, v := range [3]geometry.Vertex2D{v0, v1, v2} {
			floats = append(floats,
				v.Position[0], v.Position[1],
				v.TexCoord[0], v.TexCoord[1],
				center[0], center[1], 0, random)
		}
	}
	data := geometry.PackFloats(floats)

	args.Buffer.SetVertexLayout(geometry.VertexLayout{
		VertexSize: 32,
		Attributes: []geometry.Attribute{
			{Name: "aPosition", Index: 0, Components: 2, Offset: 0},
			{Name: "aTexCoord", Index: 1, Components: 2, Offset: 8},
			{Name: "aEffectShardData", Index: 2, Components: 4, Offset: 16},
		},
	})
	args.Buffer.UploadVertices(data)
	args.Buffer.AddDrawCmd(geometry.Triangles)
	args.Usage = e.drawable.Usage()
	args.ContentHash = inner.ContentHash
	args.ContentName = "effect-mesh:" + e.effectID
	return true
}

// triangleList flattens the buffer's triangle draws into one triangle
// list. Fans are unrolled; non-triangle draws fail.
func triangleList(buf *geometry.Buffer) ([]geometry.Vertex2D, bool) {
	layout := buf.Layout()
	if layout.VertexSize < 16 {
		return nil, false
	}
	raw := buf.VertexBytes()
	count := buf.VertexCount()
	read := func(i int) geometry.Vertex2D {
		base := i * layout.VertexSize
		at := func(off int) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(raw[base+off:]))
		}
		return geometry.Vertex2D{
			Position: mgl32.Vec2{at(0), at(4)},
			TexCoord: mgl32.Vec2{at(8), at(12)},
		}
	}

	var out []geometry.Vertex2D
	for _, cmd := range buf.DrawCommands() {
		n := cmd.Count
		if n == geometry.WholeBuffer {
			n = count - cmd.Offset
		}
		switch cmd.Type {
		case geometry.Triangles:
			for i := 0; i < n; i++ {
				out = append(out, read(cmd.Offset+i))
			}
		case geometry.TriangleFan:
			pivot := read(cmd.Offset)
			for i := 1; i+1 < n; i++ {
				out = append(out, pivot, read(cmd.Offset+i), read(cmd.Offset+i+1))
			}
		default:
			return nil, false
		}
	}
	return out, true
}

func (e *EffectDrawable) ApplyDynamicState(env *Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) {
	if e.enabled {
		program.SetUniform("kEffectMeshCenter", e.shapeCenter)
		program.SetUniform("kEffectTime", e.time)
		program.SetUniform("kEffectType", int(e.typ))
		program.SetUniform("kEffectArgs", mgl32.Vec4{
			e.args.ShardLinearSpeed,
			e.args.ShardLinearAcceleration,
			e.args.ShardRotationalSpeed,
			e.args.ShardRotationalAcceleration,
		})
	}
	e.drawable.ApplyDynamicState(e.withEffects(env), dev, program, raster)
}

func (e *EffectDrawable) Update(env *Environment, dt float32) {
	if !e.enabled {
		e.drawable.Update(env, dt)
		return
	}
	e.time += dt
}

func (e *EffectDrawable) Restart(env *Environment) {
	e.time = 0
	e.drawable.Restart(env)
}

func (e *EffectDrawable) IsAlive() bool {
	if !e.enabled {
		return e.drawable.IsAlive()
	}
	return true
}

func (e *EffectDrawable) Primitive() Primitive {
	if e.enabled {
		return PrimitiveTriangles
	}
	return e.drawable.Primitive()
}

func (e *EffectDrawable) Usage() geometry.Usage {
	return e.drawable.Usage()
}
