package drawable

import (
	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/shader"
)

// DebugDrawable wraps another drawable and renders its triangle
// geometry as line loops instead, giving a wireframe view of whatever
// the wrapped drawable produces.
type DebugDrawable struct {
	drawable  Drawable
	LineWidth float32
}

// NewDebugDrawable wraps a drawable for wireframe rendering.
func NewDebugDrawable(wrapped Drawable) *DebugDrawable {
	return &DebugDrawable{drawable: wrapped, LineWidth: 1}
}

func (d *DebugDrawable) ShaderID(env *Environment) string {
	return d.drawable.ShaderID(env)
}

func (d *DebugDrawable) GeometryID(env *Environment) string {
	return d.drawable.GeometryID(env) + "/wireframe"
}

func (d *DebugDrawable) Shader(env *Environment, dev device.Device) *shader.ShaderSource {
	return d.drawable.Shader(env, dev)
}

func (d *DebugDrawable) Construct(env *Environment, dev device.Device, args *geometry.CreateArgs) bool {
	if !d.drawable.Construct(env, dev, args) {
		return false
	}
	// re-tag triangle draws as line loops over the same vertices
	cmds := args.Buffer.DrawCommands()
	retagged := make([]geometry.DrawCommand, len(cmds))
	for i, cmd := range cmds {
		switch cmd.Type {
		case geometry.Triangles, geometry.TriangleFan:
			cmd.Type = geometry.LineLoop
		}
		retagged[i] = cmd
	}
	args.Buffer.ClearDraws()
	for _, cmd := range retagged {
		args.Buffer.AddDrawCmdRange(cmd.Type, cmd.Offset, cmd.Count)
	}
	args.ContentName = d.GeometryID(env)
	return true
}

func (d *DebugDrawable) ApplyDynamicState(env *Environment, dev device.Device, program *device.ProgramState, raster *device.RasterState) {
	d.drawable.ApplyDynamicState(env, dev, program, raster)
	raster.LineWidth = d.LineWidth
}

func (d *DebugDrawable) Update(env *Environment, dt float32) { d.drawable.Update(env, dt) }
func (d *DebugDrawable) Restart(env *Environment)            { d.drawable.Restart(env) }
func (d *DebugDrawable) IsAlive() bool                       { return d.drawable.IsAlive() }
func (d *DebugDrawable) Primitive() Primitive                { return PrimitiveLines }
func (d *DebugDrawable) Usage() geometry.Usage               { return d.drawable.Usage() }
