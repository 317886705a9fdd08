package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/tiltcart/internal/core"
)

// Body is an opaque handle to one rigid body. The owning entity (cart
// model, mechanism, course obstacle) holds the handle; nothing else keeps
// long-lived references.
type Body struct {
	cb     *cp.Body
	world  *World
	shapes []*Shape
}

// Shape is one collision shape attached to a body. Tag carries
// caller-defined data (surface type, obstacle flags, checkpoint index)
// that the adapter treats as opaque.
type Shape struct {
	shape *cp.Shape
	body  *Body
	kind  Kind
	Tag   any
}

// Body returns the owning body of a shape.
func (s *Shape) Body() *Body {
	return s.body
}

// Kind returns the collision kind the shape was created with. The kind is
// recorded on the handle at creation; the solver keeps its own copy as the
// collision type but offers no way to read it back.
func (s *Shape) Kind() Kind {
	return s.kind
}

// SetSurfaceVelocity sets the shape's surface velocity, the tangential
// bias conveyors use to drag resting bodies along the belt.
func (s *Shape) SetSurfaceVelocity(v core.Vec2) {
	s.shape.SetSurfaceV(cp.Vector{X: v.X, Y: v.Y})
}

// SetMaterial updates friction and restitution on the shape. Called when
// the cart begins touching a new surface body.
func (s *Shape) SetMaterial(mat Material) {
	s.shape.SetFriction(mat.Friction)
	s.shape.SetElasticity(mat.Elasticity)
}

// Shapes returns the body's shape handles.
func (b *Body) Shapes() []*Shape {
	return b.shapes
}

// Position returns the body's center position.
func (b *Body) Position() core.Vec2 {
	p := b.cb.Position()
	return core.V(p.X, p.Y)
}

// SetPosition teleports the body. Velocities are untouched; callers that
// teleport composites must reset every sub-body consistently.
func (b *Body) SetPosition(p core.Vec2) {
	b.cb.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

// Velocity returns the body's linear velocity.
func (b *Body) Velocity() core.Vec2 {
	v := b.cb.Velocity()
	return core.V(v.X, v.Y)
}

// SetVelocity sets the body's linear velocity.
func (b *Body) SetVelocity(v core.Vec2) {
	b.cb.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

// Angle returns the body's rotation in radians.
func (b *Body) Angle() float64 {
	return b.cb.Angle()
}

// SetAngle sets the body's rotation in radians.
func (b *Body) SetAngle(rad float64) {
	b.cb.SetAngle(rad)
}

// AngularVelocity returns the body's angular velocity in radians per
// second.
func (b *Body) AngularVelocity() float64 {
	return b.cb.AngularVelocity()
}

// SetAngularVelocity sets the body's angular velocity in radians per
// second.
func (b *Body) SetAngularVelocity(w float64) {
	b.cb.SetAngularVelocity(w)
}

// ApplyImpulse applies an impulse at the body's center of gravity.
func (b *Body) ApplyImpulse(imp core.Vec2) {
	b.cb.ApplyImpulseAtWorldPoint(cp.Vector{X: imp.X, Y: imp.Y}, b.cb.Position())
}

// ApplyForce applies a continuous force at the body's center of gravity
// for the current step.
func (b *Body) ApplyForce(f core.Vec2) {
	b.cb.ApplyForceAtWorldPoint(cp.Vector{X: f.X, Y: f.Y}, b.cb.Position())
}

// Mass returns the body's mass.
func (b *Body) Mass() float64 {
	return b.cb.Mass()
}
