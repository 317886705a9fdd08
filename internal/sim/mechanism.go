package sim

import (
	"math"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
	"github.com/vovakirdan/tiltcart/internal/physics"
)

// MechKind enumerates the mechanism types. The set is closed: the session
// dispatches on it with a switch, and course validation rejects unknown
// names before a session ever sees them.
type MechKind int

const (
	MechGear MechKind = iota
	MechLift
	MechJoystickGear
	MechLauncher
	MechFan
	MechAutoRotate
	MechConveyor
)

// String returns the course-data name of the mechanism type.
func (k MechKind) String() string {
	switch k {
	case MechGear:
		return course.MechGear
	case MechLift:
		return course.MechLift
	case MechJoystickGear:
		return course.MechJoystick
	case MechLauncher:
		return course.MechLauncher
	case MechFan:
		return course.MechFan
	case MechAutoRotate:
		return course.MechAutoRotate
	default:
		return course.MechConveyor
	}
}

func mechKindFromName(name string) MechKind {
	switch name {
	case course.MechGear:
		return MechGear
	case course.MechLift:
		return MechLift
	case course.MechJoystick:
		return MechJoystickGear
	case course.MechLauncher:
		return MechLauncher
	case course.MechFan:
		return MechFan
	case course.MechAutoRotate:
		return MechAutoRotate
	default:
		return MechConveyor
	}
}

// MechState is the coarse mechanism phase surfaced to rendering.
type MechState int

const (
	MechIdle MechState = iota
	MechActive
	MechTransitioning
	MechReturning
	MechCooldown
)

// mechParams are the resolved per-instance parameters: type defaults
// merged with the authored overrides.
type mechParams struct {
	binding string
	w, h    float64

	minAngle, maxAngle float64
	rotateRate         float64
	returnRate         float64
	returnToNeutral    bool

	targetAngle   float64
	triggerRadius float64
	triggerOnce   bool
	resetTicks    int

	liftHeight     float64
	liftSpeed      float64
	fallSpeed      float64
	holdToMaintain bool

	chargeTicks   int
	minCharge     float64
	impulseMin    float64
	impulseMax    float64
	direction     float64
	cooldownTicks int

	fanLiftSpeed float64
	fanFallSpeed float64

	beltSpeed float64
	deadzone  float64
}

func resolveParams(kind MechKind, o course.MechOverrides, def config.MechConfig) mechParams {
	pick := func(v, fallback float64) float64 {
		if v != 0 {
			return v
		}
		return fallback
	}
	pickInt := func(v, fallback int) int {
		if v != 0 {
			return v
		}
		return fallback
	}

	p := mechParams{
		binding:         o.Binding,
		w:               pick(o.W, def.PlatformW),
		h:               pick(o.H, def.PlatformH),
		minAngle:        o.MinAngle,
		maxAngle:        pick(o.MaxAngle, def.GearMaxAngle),
		rotateRate:      pick(o.RotateRate, def.GearRate),
		returnRate:      pick(o.ReturnRate, def.GearReturnRate),
		returnToNeutral: o.ReturnToNeutral,
		targetAngle:     o.TargetAngle,
		triggerRadius:   o.TriggerRadius,
		triggerOnce:     o.TriggerOnce,
		resetTicks:      pickInt(o.ResetTicks, def.AutoResetTicks),
		liftHeight:      pick(o.LiftHeight, def.LiftHeight),
		liftSpeed:       pick(o.LiftSpeed, def.LiftSpeed),
		fallSpeed:       pick(o.FallSpeed, def.LiftSpeed),
		holdToMaintain:  o.HoldToMaintain,
		chargeTicks:     pickInt(o.ChargeTicks, def.LaunchCharge),
		minCharge:       pick(o.MinCharge, def.LaunchMinCharge),
		impulseMin:      pick(o.ImpulseMin, def.LaunchImpulseMin),
		impulseMax:      pick(o.ImpulseMax, def.LaunchImpulseMax),
		direction:       o.Direction,
		cooldownTicks:   pickInt(o.CooldownTicks, def.LaunchCooldown),
		fanLiftSpeed:    def.FanLiftSpeed,
		fanFallSpeed:    def.FanFallSpeed,
		beltSpeed:       pick(o.BeltSpeed, def.BeltSpeed),
		deadzone:        def.Deadzone,
	}

	if p.binding == "" {
		switch kind {
		case MechFan:
			p.binding = course.BindBlow
		case MechAutoRotate, MechConveyor:
			p.binding = course.BindAuto
		case MechJoystickGear:
			p.binding = course.BindLeftStick
		default:
			p.binding = course.BindButtonA
		}
	}
	if kind == MechAutoRotate {
		if p.triggerRadius == 0 {
			p.triggerRadius = 80
		}
		if p.targetAngle == 0 {
			p.targetAngle = 90
		}
		p.rotateRate = pick(o.RotateRate, def.AutoRotateRate)
	}
	if kind == MechLauncher && p.direction == 0 {
		p.direction = -90 // Straight up
	}
	return p
}

// Mechanism is one interactive course element: a kinematic platform body
// plus a per-type state machine. Kinematic bodies are moved by setting
// velocities rather than positions, so the solver carries the cart with
// the surface it stands on.
type Mechanism struct {
	ID     string
	Kind   MechKind
	Origin core.Vec2

	p    mechParams
	body *physics.Body

	State    MechState
	Angle    float64 // Degrees; gears and rotators
	Lift     float64 // 0..1; lifts
	Charge   float64 // 0..1; launchers
	FanLevel float64 // 0..1; fans

	charging      bool
	cooldownUntil uint64
	triggered     bool
	resetAt       uint64
}

// newMechanism builds the mechanism and its kinematic body.
func newMechanism(pl course.Placement, def config.MechConfig, surfaces *SurfaceTable, world *physics.World) *Mechanism {
	kind := mechKindFromName(pl.Type)
	m := &Mechanism{
		ID:     pl.ID,
		Kind:   kind,
		Origin: pl.Pos,
		p:      resolveParams(kind, pl.Cfg, def),
	}

	surface := SurfaceMetal
	if kind == MechConveyor {
		surface = SurfaceNormal
	}
	mat := surfaces.Material(surface)

	m.body = world.AddKinematicBox(pl.Pos, m.p.w, m.p.h, mat, physics.KindPlatform)
	tag := &terrainTag{Surface: surface, MechID: m.ID}
	for _, s := range m.body.Shapes() {
		s.Tag = tag
	}

	if kind == MechConveyor {
		m.State = MechActive
		for _, s := range m.body.Shapes() {
			s.SetSurfaceVelocity(core.Vec2{X: -m.p.beltSpeed})
		}
	}
	return m
}

// control reads the mechanism's bound input as a signed magnitude in
// [-1, 1].
func (m *Mechanism) control(in core.InputSnapshot) float64 {
	switch m.p.binding {
	case course.BindButtonA:
		if in.ButtonA {
			return 1
		}
	case course.BindButtonB:
		if in.ButtonB {
			return 1
		}
	case course.BindLeftStick:
		if in.LeftStick.Active(m.p.deadzone) {
			return clampUnit(in.LeftStick.Vector().X)
		}
	case course.BindRightStick:
		if in.RightStick.Active(m.p.deadzone) {
			return clampUnit(in.RightStick.Vector().X)
		}
	case course.BindBlow:
		if in.Blow {
			return 1
		}
	}
	return 0
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Step advances the mechanism one tick. now is the session tick counter;
// every timing window here is measured against it, never wall clock.
func (m *Mechanism) Step(now uint64, in core.InputSnapshot, cart *Cart, dt float64) {
	switch m.Kind {
	case MechGear:
		m.stepGear(in, dt, false)
	case MechJoystickGear:
		m.stepGear(in, dt, true)
	case MechLift:
		m.stepLift(in, dt)
	case MechLauncher:
		m.stepLauncher(now, in, cart)
	case MechFan:
		m.stepFan(in, dt)
	case MechAutoRotate:
		m.stepAutoRotate(now, cart, dt)
	case MechConveyor:
		// Belt velocity is constant; nothing to advance.
	}
}

// stepGear drives a rotating platform toward a target angle. Plain gears
// rotate toward max while the button is held; joystick gears track the
// stick deflection proportionally across the min/max range.
func (m *Mechanism) stepGear(in core.InputSnapshot, dt float64, proportional bool) {
	ctl := m.control(in)

	target := m.Angle
	rate := m.p.rotateRate
	active := ctl != 0

	switch {
	case active && proportional:
		if ctl >= 0 {
			target = ctl * m.p.maxAngle
		} else {
			target = -ctl * m.p.minAngle // minAngle is negative territory
		}
	case active:
		target = m.p.maxAngle
	case m.p.returnToNeutral:
		target = 0
		rate = m.p.returnRate
	}

	moved := m.rotateToward(target, rate, dt)
	switch {
	case active && moved:
		m.State = MechActive
	case !active && moved:
		m.State = MechReturning
	case active:
		m.State = MechActive
	default:
		m.State = MechIdle
	}
}

// rotateToward advances Angle toward target at rate deg/s by setting the
// body's angular velocity. The body angle is synced first so the decision
// sees the rotation the solver integrated last tick. Returns true if still
// moving.
func (m *Mechanism) rotateToward(target, rate, dt float64) bool {
	m.syncAngle()

	diff := target - m.Angle
	if math.Abs(diff) < 1e-3 {
		m.body.SetAngularVelocity(0)
		return false
	}

	step := rate * dt
	if math.Abs(diff) <= step {
		// Close out exactly on target this tick
		m.body.SetAngularVelocity(core.DegToRad(diff / dt))
	} else {
		m.body.SetAngularVelocity(core.DegToRad(math.Copysign(rate, diff)))
	}
	return true
}

// syncAngle mirrors the body's integrated angle back into the state.
func (m *Mechanism) syncAngle() {
	m.Angle = core.RadToDeg(m.body.Angle())
}

// stepLift raises a platform while its control is held. Hold-to-maintain
// lifts sink as soon as the control releases; latching lifts park at
// whatever height they reached.
func (m *Mechanism) stepLift(in core.InputSnapshot, dt float64) {
	active := m.control(in) != 0

	switch {
	case active && m.Lift < 1:
		m.Lift += m.p.liftSpeed / m.p.liftHeight * dt
		m.State = MechActive
	case !active && m.p.holdToMaintain && m.Lift > 0:
		m.Lift -= m.p.fallSpeed / m.p.liftHeight * dt
		m.State = MechReturning
	case active:
		m.State = MechActive
	default:
		m.State = MechIdle
	}
	m.Lift = clamp01(m.Lift)

	// Velocity toward the desired height; the solver integrates the body
	// and carries anything resting on it.
	desiredY := m.Origin.Y - m.p.liftHeight*m.Lift
	m.body.SetVelocity(core.Vec2{Y: (desiredY - m.body.Position().Y) / dt})
}

// stepLauncher charges while held and fires on release. The impulse only
// lands if the cart is on the launcher pad at release; firing starts a
// cooldown during which charging is ignored.
func (m *Mechanism) stepLauncher(now uint64, in core.InputSnapshot, cart *Cart) {
	if now < m.cooldownUntil {
		m.State = MechCooldown
		m.Charge = 0
		m.charging = false
		return
	}

	held := m.control(in) != 0
	switch {
	case held:
		m.charging = true
		m.Charge += 1 / float64(m.p.chargeTicks)
		m.Charge = clamp01(m.Charge)
		m.State = MechTransitioning
	case m.charging:
		// Release edge
		m.charging = false
		if m.Charge >= m.p.minCharge {
			if cart != nil && cart.State().OnMechanism == m.ID {
				impulse := core.Lerp(m.p.impulseMin, m.p.impulseMax, m.Charge)
				cart.Launch(impulse, m.p.direction)
			}
			m.cooldownUntil = now + uint64(m.p.cooldownTicks)
			m.State = MechCooldown
		} else {
			m.State = MechIdle
		}
		m.Charge = 0
	default:
		m.State = MechIdle
	}
}

// stepFan raises the fan platform while the blow signal holds and sinks it
// at the slower descent speed when it stops. The platform body is driven
// like the lift's, so the solver carries a cart riding it.
func (m *Mechanism) stepFan(in core.InputSnapshot, dt float64) {
	if m.control(in) != 0 {
		m.FanLevel += m.p.fanLiftSpeed * dt
		m.State = MechActive
	} else {
		m.FanLevel -= m.p.fanFallSpeed * dt
		if m.FanLevel <= 0 {
			m.State = MechIdle
		} else {
			m.State = MechReturning
		}
	}
	m.FanLevel = clamp01(m.FanLevel)

	desiredY := m.Origin.Y - m.p.liftHeight*m.FanLevel
	m.body.SetVelocity(core.Vec2{Y: (desiredY - m.body.Position().Y) / dt})
}

// stepAutoRotate waits for the cart to come inside the trigger radius,
// rotates to its target angle, and after the reset delay rotates back.
// Trigger-once rotators stay at the target forever.
func (m *Mechanism) stepAutoRotate(now uint64, cart *Cart, dt float64) {
	if !m.triggered {
		if cart != nil && cart.State().Pos.DistanceTo(m.Origin) <= m.p.triggerRadius {
			m.triggered = true
			m.resetAt = 0
			m.State = MechTransitioning
		} else {
			m.State = MechIdle
			m.body.SetAngularVelocity(0)
			return
		}
	}

	if m.resetAt == 0 {
		// Rotating toward target.
		if m.rotateToward(m.p.targetAngle, m.p.rotateRate, dt) {
			m.State = MechTransitioning
			return
		}
		if m.p.triggerOnce {
			m.State = MechIdle
			return
		}
		m.resetAt = now + uint64(m.p.resetTicks)
		m.State = MechActive
		return
	}

	if now < m.resetAt {
		m.State = MechActive
		m.body.SetAngularVelocity(0)
		return
	}

	// Returning to rest, then rearm.
	if m.rotateToward(0, m.p.rotateRate, dt) {
		m.State = MechReturning
		return
	}
	m.triggered = false
	m.resetAt = 0
	m.State = MechIdle
}

// Progress reports the mechanism's normalized activation for rendering.
func (m *Mechanism) Progress() float64 {
	switch m.Kind {
	case MechGear, MechJoystickGear:
		if m.p.maxAngle == 0 {
			return 0
		}
		return clamp01(math.Abs(m.Angle) / m.p.maxAngle)
	case MechLift:
		return m.Lift
	case MechLauncher:
		return m.Charge
	case MechFan:
		return m.FanLevel
	case MechAutoRotate:
		if m.p.targetAngle == 0 {
			return 0
		}
		return clamp01(math.Abs(m.Angle / m.p.targetAngle))
	default:
		return 1
	}
}

// Body exposes the platform body for rendering.
func (m *Mechanism) Body() *physics.Body {
	return m.body
}

// Size returns the platform dimensions.
func (m *Mechanism) Size() (w, h float64) {
	return m.p.w, m.p.h
}

// Reset restores the mechanism to its built state.
func (m *Mechanism) Reset() {
	m.Angle = 0
	m.Lift = 0
	m.Charge = 0
	m.FanLevel = 0
	m.charging = false
	m.cooldownUntil = 0
	m.triggered = false
	m.resetAt = 0
	m.State = MechIdle
	if m.Kind == MechConveyor {
		m.State = MechActive
	}
	m.body.SetPosition(m.Origin)
	m.body.SetAngle(0)
	m.body.SetVelocity(core.Vec2{})
	m.body.SetAngularVelocity(0)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
