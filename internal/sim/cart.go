package sim

import (
	"math"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/physics"
)

// cartGroup is the collision filter group shared by the chassis and both
// wheels so the composite never collides with itself.
const cartGroup = 1

// CartState is the derived view of the cart, recomputed from the physics
// bodies every tick. Nothing here is authoritative; the bodies are.
type CartState struct {
	Pos             core.Vec2
	Velocity        core.Vec2
	Angle           float64 // Degrees from upright, normalized to (-180, 180]
	AngularVelocity float64 // Degrees per second
	Grounded        bool
	Surface         SurfaceType
	OnMechanism     string // Mechanism ID under a wheel, or ""
	Wheels          [2]WheelState
}

// Speed returns the cart's linear speed.
func (s *CartState) Speed() float64 {
	return s.Velocity.Length()
}

// Cart is the player composite: one chassis box and two wheel circles
// joined by pivot axles, all in the same collision group.
type Cart struct {
	world *physics.World
	cfg   config.CartConfig
	grip  config.GripConfig

	chassis *physics.Body
	wheels  [2]*physics.Body

	surfaces *SurfaceTable
	surface  SurfaceType

	// Shapes currently touching each cart part, maintained from the
	// drained contact events. Index 0/1 are the wheels, 2 is the chassis.
	touching [3]map[*physics.Shape]struct{}

	state CartState
}

// NewCart builds the composite at the given spawn. The wheels hang below
// the chassis at the configured offsets and are pinned with pivot joints,
// so they roll freely and tilt force transfers through friction.
func NewCart(world *physics.World, surfaces *SurfaceTable, cartCfg config.CartConfig, gripCfg config.GripConfig, spawn course.Spawn) *Cart {
	c := &Cart{
		world:    world,
		cfg:      cartCfg,
		grip:     gripCfg,
		surfaces: surfaces,
		surface:  SurfaceNormal,
	}
	for i := range c.touching {
		c.touching[i] = make(map[*physics.Shape]struct{})
	}

	mat := surfaces.Material(SurfaceNormal)
	c.chassis = world.AddBox(spawn.Pos, cartCfg.ChassisW, cartCfg.ChassisH, cartCfg.ChassisMass, mat, physics.KindChassis, cartGroup)

	for i, off := range c.wheelOffsets() {
		wp := spawn.Pos.Add(off)
		c.wheels[i] = world.AddCircle(wp, cartCfg.WheelRadius, cartCfg.WheelMass, mat, physics.KindWheel, cartGroup)
		world.AttachPivot(c.chassis, c.wheels[i], wp)
	}

	c.ResetPosition(spawn.Pos.X, spawn.Pos.Y, spawn.Angle)
	c.state.Wheels[0].Grip = 1
	c.state.Wheels[1].Grip = 1
	return c
}

// wheelOffsets returns the unrotated axle offsets relative to the chassis
// center, left wheel first.
func (c *Cart) wheelOffsets() [2]core.Vec2 {
	return [2]core.Vec2{
		{X: -c.cfg.WheelOffsetX, Y: c.cfg.WheelOffsetY},
		{X: c.cfg.WheelOffsetX, Y: c.cfg.WheelOffsetY},
	}
}

// ResetPosition teleports the composite to a pose, recomputing wheel
// placement from the chassis rotation and zeroing all velocities. The
// relative geometry after reset is identical to a fresh build, so pivot
// joints wake up with no stored error.
func (c *Cart) ResetPosition(x, y, angleDeg float64) {
	rad := core.DegToRad(angleDeg)
	pos := core.Vec2{X: x, Y: y}

	c.chassis.SetPosition(pos)
	c.chassis.SetAngle(rad)
	c.chassis.SetVelocity(core.Vec2{})
	c.chassis.SetAngularVelocity(0)

	for i, off := range c.wheelOffsets() {
		c.wheels[i].SetPosition(pos.Add(off.Rotate(rad)))
		c.wheels[i].SetAngle(rad)
		c.wheels[i].SetVelocity(core.Vec2{})
		c.wheels[i].SetAngularVelocity(0)
	}
}

// ApplyTilt drives the cart from the sampled tilt input. The horizontal
// component becomes a force on the chassis scaled by average wheel grip;
// beyond the soft speed cap, force in the same direction stops.
func (c *Cart) ApplyTilt(tilt core.TiltVector) {
	fx := tilt.X * c.cfg.TiltForce * c.averageGrip()
	if fx == 0 {
		return
	}

	vx := c.chassis.Velocity().X
	if (fx > 0 && vx >= c.cfg.MaxSpeed) || (fx < 0 && vx <= -c.cfg.MaxSpeed) {
		return
	}
	c.chassis.ApplyForce(core.Vec2{X: fx})
}

func (c *Cart) averageGrip() float64 {
	g := 0.0
	n := 0
	for i := range c.state.Wheels {
		if c.state.Wheels[i].Contact {
			g += c.state.Wheels[i].Grip
			n++
		}
	}
	if n == 0 {
		// Airborne: no grip scaling, tilt still nudges the cart a little
		return 0.35
	}
	return g / float64(n)
}

// partIndex maps one of the cart's shapes to its touching-set slot, or -1
// for shapes that are not part of the cart.
func (c *Cart) partIndex(s *physics.Shape) int {
	for i, w := range c.wheels {
		if s.Body() == w {
			return i
		}
	}
	if s.Body() == c.chassis {
		return 2
	}
	return -1
}

// Owns reports whether the shape belongs to the cart composite.
func (c *Cart) Owns(s *physics.Shape) bool {
	return c.partIndex(s) >= 0
}

// HandleContact updates the touching bookkeeping from one drained
// collision event where side A is a cart shape.
func (c *Cart) HandleContact(ev physics.ContactEvent) {
	i := c.partIndex(ev.A)
	if i < 0 {
		return
	}
	if ev.Begin {
		c.touching[i][ev.B] = struct{}{}
	} else {
		delete(c.touching[i], ev.B)
	}
}

// ForgetShape drops a removed shape from the touching sets. Called when
// course geometry (a collected pickup, a torn-down sensor) leaves the
// world without a separate event.
func (c *Cart) ForgetShape(s *physics.Shape) {
	for i := range c.touching {
		delete(c.touching[i], s)
	}
}

// TouchingHazard reports whether any cart part is currently in contact
// with a fatal shape. Hazard contact is level-triggered: resting on a
// spike kills the moment invincibility runs out, not only on first touch.
func (c *Cart) TouchingHazard() (core.Vec2, bool) {
	for i := range c.touching {
		for s := range c.touching[i] {
			if tag, ok := s.Tag.(*terrainTag); ok && tag.Fatal {
				return c.chassis.Position(), true
			}
		}
	}
	return core.Vec2{}, false
}

// UpdateState recomputes the derived cart state from the physics bodies
// and the touching sets, then advances the per-wheel grip model. It also
// reapplies surface materials to the wheels when the contacted surface
// changes.
func (c *Cart) UpdateState(dt float64) {
	c.state.Pos = c.chassis.Position()
	c.state.Velocity = c.chassis.Velocity()
	c.state.Angle = core.NormalizeAngle(core.RadToDeg(c.chassis.Angle()))
	c.state.AngularVelocity = core.RadToDeg(c.chassis.AngularVelocity())

	speed := c.state.Speed()
	grounded := false
	surface := c.surface
	mech := ""

	for i := range c.wheels {
		w := &c.state.Wheels[i]
		w.AngularVelocity = c.wheels[i].AngularVelocity()
		w.Contact = false

		for s := range c.touching[i] {
			switch s.Kind() {
			case physics.KindTerrain, physics.KindPlatform, physics.KindBumper:
				w.Contact = true
				grounded = true
				if tag, ok := s.Tag.(*terrainTag); ok {
					w.Surface = tag.Surface
					surface = tag.Surface
					if tag.MechID != "" {
						mech = tag.MechID
					}
				}
			}
		}

		updateGrip(w, speed, c.cfg.WheelRadius, c.surfaces.Params(w.Surface).StaticFriction, c.grip, dt)
	}

	c.state.Grounded = grounded
	c.state.Surface = surface
	c.state.OnMechanism = mech

	if surface != c.surface {
		c.surface = surface
		c.applySurface(surface)
	}
}

// applySurface pushes the contacted surface's material onto the wheel
// shapes so solver friction follows the ground under the cart.
func (c *Cart) applySurface(s SurfaceType) {
	mat := c.surfaces.Material(s)
	for _, w := range c.wheels {
		for _, shape := range w.Shapes() {
			shape.SetMaterial(mat)
		}
	}
}

// State returns the last derived cart state.
func (c *Cart) State() *CartState {
	return &c.state
}

// Chassis exposes the chassis body for mechanisms that act on the cart
// directly (launch impulses, fan force).
func (c *Cart) Chassis() *physics.Body {
	return c.chassis
}

// Launch applies an instantaneous impulse to the chassis, used by launcher
// mechanisms.
func (c *Cart) Launch(impulse float64, directionDeg float64) {
	rad := core.DegToRad(directionDeg)
	c.chassis.ApplyImpulse(core.Vec2{X: math.Cos(rad) * impulse, Y: math.Sin(rad) * impulse})
}

// Remove tears the composite out of the physics world.
func (c *Cart) Remove() {
	for _, w := range c.wheels {
		c.world.Remove(w)
	}
	c.world.Remove(c.chassis)
}
