// Package physics wraps the Chipmunk2D rigid-body solver
// (github.com/jakecoffman/cp) behind a small adapter: body creation and
// removal, constraint management, fixed-substep stepping, and a drained
// per-tick collision event stream. Nothing outside this package touches
// solver internals beyond the primitives exposed here.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tiltcart/internal/core"
)

// Kind classifies a shape for collision handling. It maps directly onto
// the solver's collision types.
type Kind uint

const (
	KindNone Kind = iota
	KindChassis
	KindWheel
	KindTerrain
	KindHazard
	KindBumper
	KindSensor
	KindPlatform
)

// Material bundles the surface parameters applied to a shape.
type Material struct {
	Friction   float64
	Elasticity float64
}

// ContactEvent is one collision-begin or collision-separate notification
// drained once per tick. Normal points from A toward B; RelSpeed is the
// relative speed along the contact normal at the moment of contact.
type ContactEvent struct {
	A, B     *Shape
	Normal   core.Vec2
	RelSpeed float64
	Begin    bool
}

// World owns the cp.Space and the fixed-substep stepping discipline. One
// logical tick calls Step once; the world divides it into the configured
// substep count rather than tracking wall-clock deltas, so a degraded
// frame rate never alters simulation speed.
type World struct {
	space    *cp.Space
	substeps int
	tickDt   float64

	events      []ContactEvent
	bodies      map[*Body]struct{}
	constraints []constraintRecord
	handled     map[cp.CollisionType]bool
}

// constraintRecord pairs a solver constraint with the body handles it
// joins. The solver does not expose a constraint's bodies, so Remove
// matches against this record instead.
type constraintRecord struct {
	joint *cp.Constraint
	a, b  *Body
}

// NewWorld creates a physics world with the given gravity (world units per
// second squared, +Y down) stepped at tickRate logical ticks per second
// with the given substep count per tick.
func NewWorld(gravity core.Vec2, tickRate, substeps int) *World {
	if tickRate <= 0 {
		tickRate = 60
	}
	if substeps <= 0 {
		substeps = 4
	}

	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{X: gravity.X, Y: gravity.Y})

	w := &World{
		space:    space,
		substeps: substeps,
		tickDt:   1.0 / float64(tickRate),
		bodies:   make(map[*Body]struct{}),
		handled:  make(map[cp.CollisionType]bool),
	}

	// Collision events are only interesting where the cart is a
	// participant: chassis, wheels, and sensor overlaps.
	w.watch(KindChassis)
	w.watch(KindWheel)

	return w
}

// watch registers wildcard begin/separate handlers for one collision type.
func (w *World) watch(kind Kind) {
	ct := cp.CollisionType(kind)
	if w.handled[ct] {
		return
	}
	w.handled[ct] = true

	handler := w.space.NewWildcardCollisionHandler(ct)
	handler.UserData = w

	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		world, ok := userData.(*World)
		if !ok {
			return true
		}
		world.record(arb, true)
		return true
	}
	handler.SeparateFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		world, ok := userData.(*World)
		if !ok {
			return
		}
		world.record(arb, false)
	}
}

// record appends a contact event from an arbiter. Arbiters between two
// cart shapes are filtered out at shape creation, so each event has at
// most one cart-side participant.
func (w *World) record(arb *cp.Arbiter, begin bool) {
	sa, sb := arb.Shapes()
	wa, _ := sa.UserData.(*Shape)
	wb, _ := sb.UserData.(*Shape)
	if wa == nil || wb == nil {
		return
	}

	n := arb.Normal()
	normal := core.V(n.X, n.Y)

	rel := wa.body.Velocity().Sub(wb.body.Velocity())
	speed := rel.Dot(normal)
	if speed < 0 {
		speed = -speed
	}

	w.events = append(w.events, ContactEvent{
		A:        wa,
		B:        wb,
		Normal:   normal,
		RelSpeed: speed,
		Begin:    begin,
	})
}

// Step advances the world by one logical tick, split into the configured
// substep count. Collision events accumulate during the step and stay
// queued until Drain.
func (w *World) Step() {
	dt := w.tickDt / float64(w.substeps)
	for i := 0; i < w.substeps; i++ {
		w.space.Step(dt)
	}
}

// Drain returns all collision events recorded since the last drain and
// clears the queue. Called exactly once per tick, after Step.
func (w *World) Drain() []ContactEvent {
	out := w.events
	w.events = nil
	return out
}

// TickDt returns the logical tick duration in seconds.
func (w *World) TickDt() float64 {
	return w.tickDt
}

// AddBox creates a dynamic box body centered at pos.
func (w *World) AddBox(pos core.Vec2, width, height, mass float64, mat Material, kind Kind, group uint) *Body {
	cb := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
	cb.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	w.space.AddBody(cb)

	shape := cp.NewBox(cb, width, height, 0)
	w.finishShape(shape, mat, kind, group)

	return w.track(cb, shape, kind)
}

// AddCircle creates a dynamic circle body centered at pos.
func (w *World) AddCircle(pos core.Vec2, radius, mass float64, mat Material, kind Kind, group uint) *Body {
	cb := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	cb.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	w.space.AddBody(cb)

	shape := cp.NewCircle(cb, radius, cp.Vector{})
	w.finishShape(shape, mat, kind, group)

	return w.track(cb, shape, kind)
}

// AddStaticBox creates an immovable box centered at pos, rotated by
// angleRad. Each obstacle gets its own static body so authored rotation
// works per shape.
func (w *World) AddStaticBox(pos core.Vec2, width, height, angleRad float64, mat Material, kind Kind) *Body {
	cb := cp.NewStaticBody()
	cb.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	cb.SetAngle(angleRad)
	w.space.AddBody(cb)

	shape := cp.NewBox(cb, width, height, 0)
	w.finishShape(shape, mat, kind, 0)

	return w.track(cb, shape, kind)
}

// AddKinematicBox creates a solver-driven platform body: infinite mass,
// moved by setting velocities so contacting bodies are carried along.
func (w *World) AddKinematicBox(pos core.Vec2, width, height float64, mat Material, kind Kind) *Body {
	cb := cp.NewKinematicBody()
	cb.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	w.space.AddBody(cb)

	shape := cp.NewBox(cb, width, height, 0)
	w.finishShape(shape, mat, kind, 0)

	return w.track(cb, shape, kind)
}

// AddSensorBox creates a non-colliding region that still reports
// begin/separate events. Used for checkpoints and collectibles.
func (w *World) AddSensorBox(pos core.Vec2, width, height float64) *Body {
	cb := cp.NewStaticBody()
	cb.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	w.space.AddBody(cb)

	shape := cp.NewBox(cb, width, height, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(cp.CollisionType(KindSensor))
	w.space.AddShape(shape)

	return w.track(cb, shape, KindSensor)
}

func (w *World) finishShape(shape *cp.Shape, mat Material, kind Kind, group uint) {
	shape.SetFriction(mat.Friction)
	shape.SetElasticity(mat.Elasticity)
	shape.SetCollisionType(cp.CollisionType(kind))
	if group != 0 {
		shape.SetFilter(cp.NewShapeFilter(group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	}
	w.space.AddShape(shape)
}

func (w *World) track(cb *cp.Body, shape *cp.Shape, kind Kind) *Body {
	b := &Body{cb: cb, world: w}
	s := &Shape{shape: shape, body: b, kind: kind}
	shape.UserData = s
	b.shapes = append(b.shapes, s)
	w.bodies[b] = struct{}{}
	return b
}

// AttachPivot joins two bodies at a world-space anchor with a pivot joint.
// The joint is stiff but slightly damped via its error bias so teleports
// do not whip the constrained pair.
func (w *World) AttachPivot(a, b *Body, worldAnchor core.Vec2) {
	joint := cp.NewPivotJoint(a.cb, b.cb, cp.Vector{X: worldAnchor.X, Y: worldAnchor.Y})
	joint.SetErrorBias(math.Pow(1.0-0.15, 60))
	w.space.AddConstraint(joint)
	w.constraints = append(w.constraints, constraintRecord{joint: joint, a: a, b: b})
}

// Remove detaches a body, its shapes, and any constraints touching it
// from the world. Synchronous; safe to call during teardown.
func (w *World) Remove(b *Body) {
	if b == nil {
		return
	}
	if _, ok := w.bodies[b]; !ok {
		return
	}

	kept := w.constraints[:0]
	for _, rec := range w.constraints {
		if rec.a == b || rec.b == b {
			w.space.RemoveConstraint(rec.joint)
			continue
		}
		kept = append(kept, rec)
	}
	w.constraints = kept

	for _, s := range b.shapes {
		w.space.RemoveShape(s.shape)
	}
	w.space.RemoveBody(b.cb)
	delete(w.bodies, b)
}

// Close releases all bodies and constraints synchronously. The world must
// not be stepped afterwards.
func (w *World) Close() {
	for _, rec := range w.constraints {
		w.space.RemoveConstraint(rec.joint)
	}
	w.constraints = nil

	for b := range w.bodies {
		for _, s := range b.shapes {
			w.space.RemoveShape(s.shape)
		}
		w.space.RemoveBody(b.cb)
	}
	w.bodies = make(map[*Body]struct{})
	w.events = nil
}
