package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/physics"
)

// mechWorld builds a zero-gravity world so mechanism motion is isolated
// from falling bodies.
func mechWorld() (*physics.World, *SurfaceTable, config.Config) {
	cfg := config.DefaultConfig()
	world := physics.NewWorld(core.V(0, 0), 60, cfg.Physics.Substeps)
	return world, NewSurfaceTable(cfg.Surfaces), cfg
}

func buildMech(t *testing.T, typ string, over course.MechOverrides) (*Mechanism, *physics.World, float64) {
	t.Helper()
	world, surfaces, cfg := mechWorld()
	t.Cleanup(world.Close)
	m := newMechanism(course.Placement{
		Type: typ,
		ID:   "m1",
		Pos:  core.V(300, 300),
		Cfg:  over,
	}, cfg.Mechanisms, surfaces, world)
	return m, world, world.TickDt()
}

func TestResolveParamsOverrides(t *testing.T) {
	def := config.DefaultConfig().Mechanisms

	p := resolveParams(MechGear, course.MechOverrides{}, def)
	if p.maxAngle != def.GearMaxAngle || p.rotateRate != def.GearRate {
		t.Fatalf("zero overrides should fall back to defaults, got %+v", p)
	}
	if p.binding != course.BindButtonA {
		t.Fatalf("gear default binding = %q, want button_a", p.binding)
	}

	p = resolveParams(MechGear, course.MechOverrides{MaxAngle: 45, Binding: course.BindButtonB}, def)
	if p.maxAngle != 45 || p.binding != course.BindButtonB {
		t.Fatalf("overrides should win, got %+v", p)
	}

	p = resolveParams(MechFan, course.MechOverrides{}, def)
	if p.binding != course.BindBlow {
		t.Fatalf("fan default binding = %q, want blow", p.binding)
	}
}

func TestGearRotatesWhileHeldAndStopsAtMax(t *testing.T) {
	m, world, dt := buildMech(t, course.MechGear, course.MechOverrides{MaxAngle: 60, RotateRate: 90})

	held := core.InputSnapshot{ButtonA: true}
	for i := 0; i < 120; i++ {
		m.Step(uint64(i), held, nil, dt)
		world.Step()
	}
	if math.Abs(m.Angle-60) > 2 {
		t.Fatalf("angle = %f after 2s at 90 deg/s, want ~60 (max)", m.Angle)
	}
	if m.Angle > 61 {
		t.Fatalf("angle %f overshot the max", m.Angle)
	}

	// Settled at max: no residual oscillation around the target.
	settled := m.Angle
	for i := 120; i < 180; i++ {
		m.Step(uint64(i), held, nil, dt)
		world.Step()
	}
	if math.Abs(m.Angle-settled) > 1e-6 {
		t.Fatalf("angle drifted from %f to %f while parked at max", settled, m.Angle)
	}
}

func TestGearReturnsToNeutralOnRelease(t *testing.T) {
	m, world, dt := buildMech(t, course.MechGear, course.MechOverrides{
		MaxAngle: 60, RotateRate: 120, ReturnRate: 120, ReturnToNeutral: true,
	})

	held := core.InputSnapshot{ButtonA: true}
	for i := 0; i < 60; i++ {
		m.Step(uint64(i), held, nil, dt)
		world.Step()
	}
	peak := m.Angle
	if peak < 30 {
		t.Fatalf("angle = %f after holding, want substantial rotation", peak)
	}

	for i := 60; i < 180; i++ {
		m.Step(uint64(i), core.InputSnapshot{}, nil, dt)
		world.Step()
	}
	if math.Abs(m.Angle) > 2 {
		t.Fatalf("angle = %f after release, want return to neutral", m.Angle)
	}
	if m.State != MechIdle {
		t.Fatalf("state = %v at rest, want idle", m.State)
	}
}

func TestJoystickGearTracksDeflection(t *testing.T) {
	m, world, dt := buildMech(t, course.MechJoystick, course.MechOverrides{
		MaxAngle: 90, RotateRate: 360, Binding: course.BindLeftStick,
	})

	in := core.InputSnapshot{LeftStick: core.Joystick{Angle: 0, Magnitude: 0.5}}
	for i := 0; i < 120; i++ {
		m.Step(uint64(i), in, nil, dt)
		world.Step()
	}
	// Half deflection along +X tracks to half of max.
	if math.Abs(m.Angle-45) > 3 {
		t.Fatalf("angle = %f at half deflection, want ~45", m.Angle)
	}
}

func TestLiftLatchesWithoutHoldToMaintain(t *testing.T) {
	m, world, dt := buildMech(t, course.MechLift, course.MechOverrides{
		LiftHeight: 100, LiftSpeed: 100,
	})

	held := core.InputSnapshot{ButtonA: true}
	for i := 0; i < 30; i++ {
		m.Step(uint64(i), held, nil, dt)
		world.Step()
	}
	reached := m.Lift
	if reached <= 0.3 {
		t.Fatalf("lift = %f after half a second, want progress", reached)
	}

	// Released, no hold-to-maintain: parks where it is.
	for i := 30; i < 90; i++ {
		m.Step(uint64(i), core.InputSnapshot{}, nil, dt)
		world.Step()
	}
	if m.Lift != reached {
		t.Fatalf("lift moved from %f to %f after release; latching lift should park", reached, m.Lift)
	}
}

func TestLiftSinksWithHoldToMaintain(t *testing.T) {
	m, world, dt := buildMech(t, course.MechLift, course.MechOverrides{
		LiftHeight: 100, LiftSpeed: 100, FallSpeed: 200, HoldToMaintain: true,
	})

	held := core.InputSnapshot{ButtonA: true}
	for i := 0; i < 60; i++ {
		m.Step(uint64(i), held, nil, dt)
		world.Step()
	}
	if m.Lift < 0.9 {
		t.Fatalf("lift = %f after a full second, want ~1", m.Lift)
	}

	for i := 60; i < 120; i++ {
		m.Step(uint64(i), core.InputSnapshot{}, nil, dt)
		world.Step()
	}
	if m.Lift != 0 {
		t.Fatalf("lift = %f after release, want 0", m.Lift)
	}
	// Body returned to its origin height.
	if math.Abs(m.Body().Position().Y-300) > 2 {
		t.Fatalf("body y = %f, want back at origin", m.Body().Position().Y)
	}
}

func TestLauncherChargeReleaseCooldown(t *testing.T) {
	m, _, dt := buildMech(t, course.MechLauncher, course.MechOverrides{
		ChargeTicks: 30, MinCharge: 0.3, CooldownTicks: 60,
	})

	held := core.InputSnapshot{ButtonA: true}
	for i := 0; i < 30; i++ {
		m.Step(uint64(i), held, nil, dt)
	}
	if m.Charge < 0.99 {
		t.Fatalf("charge = %f after full hold, want ~1", m.Charge)
	}

	m.Step(30, core.InputSnapshot{}, nil, dt)
	if m.State != MechCooldown {
		t.Fatalf("state = %v after firing, want cooldown", m.State)
	}

	// During cooldown holding does not recharge.
	m.Step(40, held, nil, dt)
	if m.Charge != 0 || m.State != MechCooldown {
		t.Fatalf("charging during cooldown: charge=%f state=%v", m.Charge, m.State)
	}

	// Past the cooldown charging works again.
	m.Step(91, held, nil, dt)
	if m.Charge == 0 {
		t.Fatal("launcher should rearm after cooldown")
	}
}

func TestLauncherBelowMinChargeDoesNotFire(t *testing.T) {
	m, _, dt := buildMech(t, course.MechLauncher, course.MechOverrides{
		ChargeTicks: 100, MinCharge: 0.5,
	})

	m.Step(0, core.InputSnapshot{ButtonA: true}, nil, dt)
	m.Step(1, core.InputSnapshot{}, nil, dt)
	if m.State == MechCooldown {
		t.Fatal("release below min charge must not fire")
	}
	if m.Charge != 0 {
		t.Fatalf("charge = %f, want reset to 0", m.Charge)
	}
}

func TestFanPlatformRisesAndSinks(t *testing.T) {
	m, world, dt := buildMech(t, course.MechFan, course.MechOverrides{LiftHeight: 140})

	blow := core.InputSnapshot{Blow: true}
	for i := 0; i < 300; i++ {
		m.Step(uint64(i), blow, nil, dt)
		world.Step()
	}
	if m.FanLevel != 1 {
		t.Fatalf("fan level = %f after sustained blow, want 1", m.FanLevel)
	}
	if m.State != MechActive {
		t.Fatalf("state = %v, want active", m.State)
	}
	// The platform body itself climbs the full travel height.
	if y := m.Body().Position().Y; math.Abs(y-(300-140)) > 2 {
		t.Fatalf("body y = %f at full lift level, want ~160", y)
	}

	for i := 300; i < 900; i++ {
		m.Step(uint64(i), core.InputSnapshot{}, nil, dt)
		world.Step()
	}
	if m.FanLevel != 0 {
		t.Fatalf("fan level = %f after decay, want 0", m.FanLevel)
	}
	if m.State != MechIdle {
		t.Fatalf("state = %v at rest, want idle", m.State)
	}
	if y := m.Body().Position().Y; math.Abs(y-300) > 2 {
		t.Fatalf("body y = %f after winding down, want back at origin", y)
	}
}

func TestAutoRotateIgnoresDistantCart(t *testing.T) {
	m, world, dt := buildMech(t, course.MechAutoRotate, course.MechOverrides{
		TargetAngle: 90, TriggerRadius: 50,
	})

	for i := 0; i < 60; i++ {
		m.Step(uint64(i), core.InputSnapshot{}, nil, dt)
		world.Step()
	}
	if m.State != MechIdle || m.Angle != 0 {
		t.Fatalf("untriggered rotator moved: state=%v angle=%f", m.State, m.Angle)
	}
}

func TestConveyorAlwaysActive(t *testing.T) {
	m, _, dt := buildMech(t, course.MechConveyor, course.MechOverrides{BeltSpeed: 120})

	if m.State != MechActive {
		t.Fatalf("conveyor state = %v, want active from build", m.State)
	}
	m.Step(0, core.InputSnapshot{}, nil, dt)
	if m.State != MechActive || m.Progress() != 1 {
		t.Fatalf("conveyor should stay active, state=%v progress=%f", m.State, m.Progress())
	}
}
