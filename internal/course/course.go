// Package course provides authored course data for tiltcart: ordered areas
// with obstacles, mechanisms, collectibles, and checkpoints. Course data is
// loaded once at session setup and immutable thereafter; this package
// depends on core but never on the simulation.
package course

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tiltcart/internal/core"
)

// Known surface type names. The simulation maps these onto its friction
// and grip tables; validation rejects anything else.
var SurfaceNames = []string{"normal", "slippery", "sticky", "bouncy", "rough", "metal"}

// Known obstacle kinds.
const (
	ObstacleBlock  = "block"  // Solid wall/floor piece
	ObstacleSpike  = "spike"  // Hazard, fatal on contact
	ObstacleBumper = "bumper" // High-restitution pad, never fatal
)

// Known mechanism types.
const (
	MechGear       = "gear"
	MechLift       = "lift"
	MechJoystick   = "joystick_gear"
	MechLauncher   = "launcher"
	MechFan        = "fan"
	MechAutoRotate = "auto_rotate"
	MechConveyor   = "conveyor"
)

// Known control bindings for mechanisms.
const (
	BindAuto       = "auto"
	BindButtonA    = "button_a"
	BindButtonB    = "button_b"
	BindLeftStick  = "left_stick"
	BindRightStick = "right_stick"
	BindBlow       = "blow"
)

// Spawn is a respawn anchor: a position plus a cart rotation in degrees.
type Spawn struct {
	Pos   core.Vec2
	Angle float64
}

// Obstacle is one static course piece.
type Obstacle struct {
	Kind    string // block, spike, bumper
	Pos     core.Vec2
	W, H    float64
	Angle   float64 // Degrees
	Surface string  // One of SurfaceNames; empty means normal
	Fatal   bool    // Forced-fatal flag on top of kind
}

// Placement positions one mechanism inside an area. Cfg carries partial
// overrides of the per-type defaults; zero values fall back to the
// defaults in the gameplay config.
type Placement struct {
	Type string
	ID   string
	Pos  core.Vec2
	Cfg  MechOverrides
}

// MechOverrides are the authored per-instance mechanism parameters. A zero
// value means "use the type default".
type MechOverrides struct {
	Binding string

	// Gears and auto-rotators
	MinAngle        float64
	MaxAngle        float64
	RotateRate      float64 // Degrees per second
	ReturnRate      float64
	ReturnToNeutral bool
	TargetAngle     float64
	TriggerRadius   float64
	TriggerOnce     bool
	ResetTicks      int

	// Lifts and fans
	LiftHeight     float64
	LiftSpeed      float64
	HoldToMaintain bool
	FallSpeed      float64

	// Launchers
	ChargeTicks   int
	MinCharge     float64
	ImpulseMin    float64
	ImpulseMax    float64
	Direction     float64 // Degrees; 0 = +X, -90 = straight up
	CooldownTicks int

	// Conveyors
	BeltSpeed float64 // Signed; negative runs the belt leftward

	// Platform size
	W, H float64
}

// Collectible is one pickup.
type Collectible struct {
	ID   string
	Kind string // coin, gem, life
	Pos  core.Vec2
}

// Checkpoint is the sensor region and respawn anchor of one area.
type Checkpoint struct {
	Pos   core.Vec2
	Angle float64 // Respawn rotation in degrees
	W, H  float64 // Sensor size; zeroes get defaults at load
}

// Area is one rectangular sub-region of the course.
type Area struct {
	Name            string
	Bounds          core.FRect
	Zoom            float64 // 0 = default
	TransitionTicks int     // 0 = default camera transition duration
	Obstacles       []Obstacle
	Mechanisms      []Placement
	Collectibles    []Collectible
	Checkpoint      Checkpoint
}

// Course is a complete authored course.
type Course struct {
	ID    string
	Name  string
	Start Spawn
	Areas []Area
}

// FinalArea returns the index of the last area, whose checkpoint completes
// the course.
func (c *Course) FinalArea() int {
	return len(c.Areas) - 1
}

// Built-in course registry. Courses register themselves in init functions
// so the CLI can list and start them without any files on disk.
var (
	mu       sync.RWMutex
	builtins = make(map[string]*Course)
)

// Register adds a built-in course. Panics on duplicate IDs, which would be
// an authoring bug.
func Register(c *Course) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := builtins[c.ID]; exists {
		panic(fmt.Sprintf("course: %q already registered", c.ID))
	}
	builtins[c.ID] = c
}

// Get returns a built-in course by ID.
func Get(id string) (*Course, error) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("course: unknown course %q", id)
	}
	return c, nil
}

// List returns all built-in courses sorted by ID.
func List() []*Course {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]*Course, 0, len(builtins))
	for _, c := range builtins {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
