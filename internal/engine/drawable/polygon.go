package drawable

import (
	"go.uber.org/zap"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

// PolygonMeshClass is caller-supplied polygon geometry shared by any
// number of instances. Sub-meshes map a key to the draw commands of
// one part of the mesh so an instance can draw just that part.
type PolygonMeshClass struct {
	id        string
	name      string
	vertices  []geometry.Vertex2D
	commands  []geometry.DrawCommand
	subMeshes map[string][]geometry.DrawCommand
	static    bool
}

// NewPolygonMeshClass returns an empty mesh class with the given id.
func NewPolygonMeshClass(id string) *PolygonMeshClass {
	return &PolygonMeshClass{id: id, static: true}
}

func (c *PolygonMeshClass) ID() string       { return c.id }
func (c *PolygonMeshClass) Name() string     { return c.name }
func (c *PolygonMeshClass) SetName(n string) { c.name = n }

// SetStatic marks the mesh contents as immutable, allowing static
// geometry usage.
func (c *PolygonMeshClass) SetStatic(static bool) { c.static = static }

// SetVertices replaces the mesh vertices.
func (c *PolygonMeshClass) SetVertices(vertices []geometry.Vertex2D) {
	c.vertices = vertices
}

// AddDrawCommand appends a whole-mesh draw command.
func (c *PolygonMeshClass) AddDrawCommand(cmd geometry.DrawCommand) {
	c.commands = append(c.commands, cmd)
}

// SetSubMesh names a set of draw commands so instances can select it.
func (c *PolygonMeshClass) SetSubMesh(key string, cmds []geometry.DrawCommand) {
	if c.subMeshes == nil {
		c.subMeshes = make(map[string][]geometry.DrawCommand)
	}
	c.subMeshes[key] = cmds
}

// FindSubMesh returns the draw commands of a named sub-mesh.
func (c *PolygonMeshClass) FindSubMesh(key string) ([]geometry.DrawCommand, bool) {
	cmds, ok := c.subMeshes[key]
	return cmds, ok
}

func (c *PolygonMeshClass) contentHash() uint64 {
	return geometry.HashBytes(geometry.PackVertices2D(c.vertices))
}

// PolygonMesh is a drawable instance of a PolygonMeshClass, optionally
// restricted to one sub-mesh.
type PolygonMesh struct {
	class      *PolygonMeshClass
	subMeshKey string
	// latched so a missing sub-mesh key warns once per instance, not
	// once per frame
	subMeshError logger.Once
}

// NewPolygonMesh returns an instance drawing the whole mesh.
func NewPolygonMesh(class *PolygonMeshClass) *PolygonMesh {
	return &PolygonMesh{class: class}
}

// NewSubMesh returns an instance drawing one named sub-mesh.
func NewSubMesh(class *PolygonMeshClass, key string) *PolygonMesh {
	return &PolygonMesh{class: class, subMeshKey: key}
}

func (m *PolygonMesh) ShaderID(env *Environment) string {
	return simple2DShaderID(env)
}

func (m *PolygonMesh) GeometryID(env *Environment) string {
	if m.subMeshKey != "" {
		return m.class.id + "/" + m.subMeshKey
	}
	return m.class.id
}

func (m *PolygonMesh) Shader(env *Environment, dev device.Device) *shader.ShaderSource {
	return simple2DVertexShader(env)
}

func (m *PolygonMesh) Construct(env *Environment, dev device.Device, args *geometry.CreateArgs) bool {
	commands := m.class.commands
	if m.subMeshKey != "" {
		sub, ok := m.class.FindSubMesh(m.subMeshKey)
		if !ok {
			// degrade to an empty draw rather than fail the frame
			m.subMeshError.Warn("No such sub-mesh in polygon mesh.",
				zap.String("mesh", m.class.id),
				zap.String("key", m.subMeshKey))
			commands = nil
		} else {
			commands = sub
		}
	}

	data := geometry.PackVertices2D(m.class.vertices)
	args.Buffer.SetVertexLayout(geometry.Vertex2DLayout())
	args.Buffer.UploadVertices(data)
	for _, cmd := range commands {
		args.Buffer.AddDrawCmdRange(cmd.Type, cmd.Offset, cmd.Count)
	}
	args.Usage = m.Usage()
	args.ContentName = m.GeometryID(env)
	args.ContentHash = m.class.contentHash()
	return true
}

func (m *PolygonMesh) ApplyDynamicState(env *Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) {
	applyTransformState(env, program)
}

func (m *PolygonMesh) Update(env *Environment, dt float32) {}
func (m *PolygonMesh) Restart(env *Environment)            {}
func (m *PolygonMesh) IsAlive() bool                       { return true }
func (m *PolygonMesh) Primitive() Primitive                { return PrimitiveTriangles }

func (m *PolygonMesh) Usage() geometry.Usage {
	if m.class.static {
		return geometry.Static
	}
	return geometry.Dynamic
}
