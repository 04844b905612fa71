// Package renderer turns scene layer lists into device submissions:
// per-layer stencil-masked passes into an offscreen multisampled
// target, then a composite blit with an optional bloom post-process.
// Programs and geometry are memoized on the device through the shader
// and geometry cache ids the drawables and materials provide.
package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/ember-gfx/ember/internal/engine/device"
	"github.com/ember-gfx/ember/internal/engine/drawable"
	"github.com/ember-gfx/ember/internal/engine/geometry"
	"github.com/ember-gfx/ember/internal/engine/material"
	"github.com/ember-gfx/ember/internal/engine/program"
	"github.com/ember-gfx/ember/internal/engine/shader"
	"github.com/ember-gfx/ember/internal/logger"
)

// DrawShape is one renderable item of a layer list.
type DrawShape struct {
	Transform mgl32.Mat4
	Drawable  drawable.Drawable
	Material  material.Material
}

// painter realizes single draws. It finds or builds the program and
// geometry resources and collects the per-draw bindings before
// submitting.
type painter struct {
	dev device.Device
	// static uniform bindings per program, captured at build time
	statics map[string]*device.ProgramState
}

func newPainter(dev device.Device) *painter {
	return &painter{dev: dev, statics: make(map[string]*device.ProgramState)}
}

// paint submits one shape under one policy. Returns false when the
// draw was skipped; the failure was logged by whoever detected it.
func (p *painter) paint(env *drawable.Environment, policy program.Program, shape DrawShape, state device.State, fbo device.Framebuffer) bool {
	env.Model = shape.Transform
	env.RenderPoints = shape.Drawable.Primitive() == drawable.PrimitivePoints

	prog := p.findOrBuildProgram(env, policy, shape)
	if prog == nil {
		return false
	}
	geom, ok := p.findOrUploadGeometry(env, shape.Drawable)
	if !ok {
		return false
	}
	if len(geom.DrawCommands()) == 0 {
		// an empty draw, legitimately nothing to submit
		return true
	}

	var binds device.ProgramState
	if static := p.statics[prog.Name()]; static != nil {
		binds = static.Clone()
	}
	raster := device.DefaultRasterState()
	if !shape.Material.ApplyDynamicState(env, p.dev, &binds, &raster) {
		return false
	}
	shape.Drawable.ApplyDynamicState(env, p.dev, &binds, &raster)
	policy.ApplyDynamicState(p.dev, &binds)

	state.Raster = raster
	p.dev.Draw(prog, &binds, geom, state, fbo)
	return true
}

func (p *painter) findOrBuildProgram(env *drawable.Environment, policy program.Program, shape DrawShape) device.Program {
	name := policy.DrawableShaderID(env, shape.Drawable) + "/" +
		policy.MaterialShaderID(env, shape.Material)

	if prog := p.dev.FindProgram(name); prog != nil {
		// a cached invalid program failed to build before; do not
		// retry every frame
		if !prog.IsValid() {
			return nil
		}
		return prog
	}

	vertex := policy.DrawableShader(env, shape.Drawable, p.dev)
	fragment := policy.MaterialShader(env, shape.Material, p.dev)
	if vertex.IsEmpty() || fragment.IsEmpty() {
		return nil
	}

	prog := p.dev.MakeProgram(name)
	if err := prog.Build(vertex.GetSource(shader.Production), fragment.GetSource(shader.Production)); err != nil {
		logger.Error("Failed to build shader program.",
			zap.String("program", name), zap.Error(err))
		return nil
	}

	static := &device.ProgramState{}
	shape.Material.ApplyStaticState(env, p.dev, static)
	p.statics[name] = static
	return prog
}

func (p *painter) findOrUploadGeometry(env *drawable.Environment, dr drawable.Drawable) (device.Geometry, bool) {
	id := dr.GeometryID(env)
	geom := p.dev.FindGeometry(id)

	// stream geometry is rebuilt every frame; in editing mode static
	// content may have changed and gets hash-checked
	rebuild := geom == nil || dr.Usage() == geometry.Stream || env.EditingMode
	if !rebuild {
		return geom, true
	}

	var args geometry.CreateArgs
	if !dr.Construct(env, p.dev, &args) {
		return nil, false
	}
	if args.ContentHash == 0 {
		args.ContentHash = geometry.HashBytes(args.Buffer.VertexBytes())
	}
	if geom != nil && dr.Usage() != geometry.Stream && geom.ContentHash() == args.ContentHash {
		return geom, true
	}

	geom = p.dev.MakeGeometry(id)
	geom.Upload(args)
	return geom, true
}
