package particle

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Primitive selects how each particle rasterizes.
type Primitive int

const (
	// Point renders one point per particle, sized by the particle
	// point size.
	Point Primitive = iota
	// FullLine renders a line through the particle position extending
	// half the point size in both directions of travel.
	FullLine
	// PartialLineBackward renders the trailing half of the line.
	PartialLineBackward
	// PartialLineForward renders the leading half of the line.
	PartialLineForward
)

// EmitterShape is the shape of the spawn area.
type EmitterShape int

const (
	// EmitRectangle spawns inside the emitter rectangle.
	EmitRectangle EmitterShape = iota
	// EmitCircle spawns inside the circle inscribed in the emitter
	// rectangle.
	EmitCircle
)

// Placement positions new particles relative to the emitter shape.
type Placement int

const (
	PlaceInside Placement = iota
	PlaceEdge
	PlaceOutside
	PlaceCenter
)

// Direction selects the initial travel direction of new particles.
type Direction int

const (
	// DirOutwards travels from the emitter center through the spawn
	// position.
	DirOutwards Direction = iota
	// DirInwards travels from the spawn position towards the center.
	DirInwards
	// DirSector travels at a random angle within the direction sector.
	DirSector
)

// CoordinateSpace is the space the simulation runs in.
type CoordinateSpace int

const (
	// SpaceLocal simulates relative to a local origin; positions are
	// normalized against the simulation bounds and transformed by the
	// model matrix when rendering. Boundary policies apply.
	SpaceLocal CoordinateSpace = iota
	// SpaceGlobal simulates directly in world space with no boundaries.
	SpaceGlobal
)

// Motion is the per-particle integration model.
type Motion int

const (
	MotionLinear Motion = iota
	// MotionProjectile adds gravity to the velocity every step.
	MotionProjectile
)

// SpawnPolicy controls when new particles spawn.
type SpawnPolicy int

const (
	// SpawnOnce bursts the initial count and never spawns again.
	SpawnOnce SpawnPolicy = iota
	// SpawnMaintain tops the simulation back up to the target count
	// every update.
	SpawnMaintain
	// SpawnContinuous spawns NumParticles per second, accumulating
	// fractional spawns across updates.
	SpawnContinuous
	// SpawnCommand spawns only on an explicit Emit call.
	SpawnCommand
)

// BoundaryPolicy decides what happens to a particle at the simulation
// boundary. Only applies in local coordinate space.
type BoundaryPolicy int

const (
	// BoundaryClamp pins the particle to the boundary.
	BoundaryClamp BoundaryPolicy = iota
	// BoundaryWrap wraps around to the opposite side.
	BoundaryWrap
	// BoundaryKill removes the particle.
	BoundaryKill
	// BoundaryReflect mirrors the velocity about the violated boundary
	// plane and clamps the position back inside.
	BoundaryReflect
)

// Params is the engine configuration. The JSON field names are stable
// wire identifiers.
type Params struct {
	Primitive Primitive       `json:"primitive"`
	Direction Direction       `json:"direction"`
	Placement Placement       `json:"placement"`
	Shape     EmitterShape    `json:"shape"`
	Space     CoordinateSpace `json:"coordinate_space"`
	Motion    Motion          `json:"motion"`
	Mode      SpawnPolicy     `json:"mode"`
	Boundary  BoundaryPolicy  `json:"boundary"`

	// Delay before the first emission.
	Delay float32 `json:"delay"`
	// MinTime and MaxTime bound the simulation lifetime regardless of
	// particle counts.
	MinTime float32 `json:"min_time"`
	MaxTime float32 `json:"max_time"`
	// NumParticles is a count for Once/Maintain/Command and a
	// per-second rate for Continuous.
	NumParticles float32 `json:"num_particles"`
	// Particle lifetimes are randomized between min and max.
	MinLifetime float32 `json:"min_lifetime"`
	MaxLifetime float32 `json:"max_lifetime"`
	// Simulation bounds for local space.
	MaxXPos float32 `json:"max_xpos"`
	MaxYPos float32 `json:"max_ypos"`
	// The emitter rectangle, normalized against the simulation bounds.
	InitRectX      float32 `json:"init_rect_xpos"`
	InitRectY      float32 `json:"init_rect_ypos"`
	InitRectWidth  float32 `json:"init_rect_width"`
	InitRectHeight float32 `json:"init_rect_height"`
	// Initial velocities are randomized between min and max.
	MinVelocity float32 `json:"min_velocity"`
	MaxVelocity float32 `json:"max_velocity"`
	// The direction sector for DirSector.
	SectorStartAngle float32 `json:"direction_sector_start_angle"`
	SectorSize       float32 `json:"direction_sector_size"`
	// Initial point sizes and alphas are randomized between min and max.
	MinPointSize float32 `json:"min_point_size"`
	MaxPointSize float32 `json:"max_point_size"`
	MinAlpha     float32 `json:"min_alpha"`
	MaxAlpha     float32 `json:"max_alpha"`
	// Rates of change applied every update.
	GrowthOverTime float32 `json:"growth_over_time"`
	GrowthOverDist float32 `json:"growth_over_dist"`
	AlphaOverTime  float32 `json:"alpha_over_time"`
	AlphaOverDist  float32 `json:"alpha_over_dist"`
	// Gravity for projectile motion.
	Gravity mgl32.Vec2 `json:"gravity"`
}

// DefaultParams returns the parameter defaults.
func DefaultParams() Params {
	return Params{
		Primitive:        Point,
		Direction:        DirSector,
		Placement:        PlaceInside,
		Shape:            EmitRectangle,
		Space:            SpaceLocal,
		Motion:           MotionLinear,
		Mode:             SpawnMaintain,
		Boundary:         BoundaryClamp,
		MaxTime:          math.MaxFloat32,
		NumParticles:     100,
		MaxLifetime:      math.MaxFloat32,
		MaxXPos:          1,
		MaxYPos:          1,
		InitRectWidth:    1,
		InitRectHeight:   1,
		MinVelocity:      1,
		MaxVelocity:      1,
		SectorSize:       2 * math.Pi,
		MinPointSize:     1,
		MaxPointSize:     1,
		MinAlpha:         1,
		MaxAlpha:         1,
		Gravity:          mgl32.Vec2{0, 1},
	}
}

// enumText maps enum values to their stable wire names.
func enumText[T ~int](value T, names []string, kind string) ([]byte, error) {
	if int(value) < 0 || int(value) >= len(names) {
		return nil, fmt.Errorf("invalid particle %s value %d", kind, value)
	}
	return []byte(names[int(value)]), nil
}

func enumValue[T ~int](out *T, text []byte, names []string, kind string) error {
	for i, name := range names {
		if name == string(text) {
			*out = T(i)
			return nil
		}
	}
	return fmt.Errorf("unknown particle %s %q", kind, text)
}

var (
	primitiveNames = []string{"point", "full_line", "partial_line_backward", "partial_line_forward"}
	shapeNames     = []string{"rectangle", "circle"}
	placementNames = []string{"inside", "edge", "outside", "center"}
	directionNames = []string{"outwards", "inwards", "sector"}
	spaceNames     = []string{"local", "global"}
	motionNames    = []string{"linear", "projectile"}
	modeNames      = []string{"once", "maintain", "continuous", "command"}
	boundaryNames  = []string{"clamp", "wrap", "kill", "reflect"}
)

func (v Primitive) MarshalText() ([]byte, error) { return enumText(v, primitiveNames, "primitive") }
func (v *Primitive) UnmarshalText(text []byte) error {
	return enumValue(v, text, primitiveNames, "primitive")
}

func (v EmitterShape) MarshalText() ([]byte, error) { return enumText(v, shapeNames, "emitter shape") }
func (v *EmitterShape) UnmarshalText(text []byte) error {
	return enumValue(v, text, shapeNames, "emitter shape")
}

func (v Placement) MarshalText() ([]byte, error) { return enumText(v, placementNames, "placement") }
func (v *Placement) UnmarshalText(text []byte) error {
	return enumValue(v, text, placementNames, "placement")
}

func (v Direction) MarshalText() ([]byte, error) { return enumText(v, directionNames, "direction") }
func (v *Direction) UnmarshalText(text []byte) error {
	return enumValue(v, text, directionNames, "direction")
}

func (v CoordinateSpace) MarshalText() ([]byte, error) {
	return enumText(v, spaceNames, "coordinate space")
}
func (v *CoordinateSpace) UnmarshalText(text []byte) error {
	return enumValue(v, text, spaceNames, "coordinate space")
}

func (v Motion) MarshalText() ([]byte, error) { return enumText(v, motionNames, "motion") }
func (v *Motion) UnmarshalText(text []byte) error {
	return enumValue(v, text, motionNames, "motion")
}

func (v SpawnPolicy) MarshalText() ([]byte, error) { return enumText(v, modeNames, "spawn policy") }
func (v *SpawnPolicy) UnmarshalText(text []byte) error {
	return enumValue(v, text, modeNames, "spawn policy")
}

func (v BoundaryPolicy) MarshalText() ([]byte, error) {
	return enumText(v, boundaryNames, "boundary policy")
}
func (v *BoundaryPolicy) UnmarshalText(text []byte) error {
	return enumValue(v, text, boundaryNames, "boundary policy")
}
