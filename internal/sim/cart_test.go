package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/physics"
)

func buildCart(t *testing.T, spawn course.Spawn) (*Cart, *physics.World, config.Config) {
	t.Helper()
	cfg := config.DefaultConfig()
	world := physics.NewWorld(core.V(0, cfg.Physics.GravityY), 60, cfg.Physics.Substeps)
	t.Cleanup(world.Close)
	cart := NewCart(world, NewSurfaceTable(cfg.Surfaces), cfg.Cart, cfg.Grip, spawn)
	return cart, world, cfg
}

func TestResetPositionRestoresGeometry(t *testing.T) {
	spawn := course.Spawn{Pos: core.V(100, 100)}
	cart, world, _ := buildCart(t, spawn)

	// Knock the composite around first.
	cart.Chassis().ApplyImpulse(core.V(2000, -500))
	for i := 0; i < 30; i++ {
		world.Step()
	}

	cart.ResetPosition(300, 200, 20)
	cart.UpdateState(world.TickDt())
	st := cart.State()

	if st.Pos != core.V(300, 200) {
		t.Fatalf("pos = %v, want (300,200)", st.Pos)
	}
	if math.Abs(st.Angle-20) > 1e-6 {
		t.Fatalf("angle = %f, want 20", st.Angle)
	}
	if st.Velocity != core.V(0, 0) || st.AngularVelocity != 0 {
		t.Fatalf("reset should zero velocities, got v=%v w=%f", st.Velocity, st.AngularVelocity)
	}
}

func TestResetPositionRotatesWheelOffsets(t *testing.T) {
	spawn := course.Spawn{Pos: core.V(100, 100)}
	cart, _, cfg := buildCart(t, spawn)

	cart.ResetPosition(0, 0, 90)

	// At 90 degrees the left wheel's (-ox, +oy) offset rotates onto
	// (-oy, -ox).
	want := core.V(-cfg.Cart.WheelOffsetY, -cfg.Cart.WheelOffsetX)
	got := cart.wheels[0].Position()
	if got.Sub(want).Length() > 1e-6 {
		t.Fatalf("left wheel at %v after 90 degree reset, want %v", got, want)
	}
}

func TestCompositeDoesNotSelfCollide(t *testing.T) {
	spawn := course.Spawn{Pos: core.V(100, 100)}
	cart, world, _ := buildCart(t, spawn)

	// Free fall: if chassis and wheels collided with each other the
	// events queue would fill with internal contacts.
	for i := 0; i < 60; i++ {
		world.Step()
	}
	for _, ev := range world.Drain() {
		if cart.Owns(ev.A) && cart.Owns(ev.B) {
			t.Fatalf("internal contact between cart parts: %+v", ev)
		}
	}
}

func TestTiltForceRespectsSpeedCap(t *testing.T) {
	spawn := course.Spawn{Pos: core.V(100, 100)}
	cart, _, cfg := buildCart(t, spawn)

	// Force the state to grounded full grip so ApplyTilt is at strength.
	cart.state.Wheels[0] = WheelState{Contact: true, Grip: 1}
	cart.state.Wheels[1] = WheelState{Contact: true, Grip: 1}

	cart.Chassis().SetVelocity(core.V(cfg.Cart.MaxSpeed+1, 0))
	before := cart.Chassis().Velocity().X
	cart.ApplyTilt(core.TiltVector{X: 1})
	// No force applied past the cap; velocity untouched until the solver
	// runs, and no pending force either.
	if cart.Chassis().Velocity().X != before {
		t.Fatalf("velocity changed at the cap: %f", cart.Chassis().Velocity().X)
	}
}
