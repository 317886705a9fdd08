package sim

import (
	"math"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
)

// CrashKind classifies why the cart crashed.
type CrashKind int

const (
	CrashNone CrashKind = iota
	CrashWall
	CrashFloor
	CrashFlip
	CrashHazard
	CrashFall
	CrashStuck
)

// String returns the stable reason name recorded in events and run rows.
func (k CrashKind) String() string {
	switch k {
	case CrashWall:
		return "wall_impact"
	case CrashFloor:
		return "floor_impact"
	case CrashFlip:
		return "flip"
	case CrashHazard:
		return "hazard"
	case CrashFall:
		return "fall"
	case CrashStuck:
		return "stuck"
	default:
		return "none"
	}
}

// Verdict is the classifier's output for one tick. Kind CrashNone means
// the cart survives the tick.
type Verdict struct {
	Kind    CrashKind
	Pos     core.Vec2
	Surface SurfaceType
}

// Impact is one solid collision-begin against the cart, reduced to what
// the classifier needs. The session builds these from drained physics
// events; tests build them directly.
type Impact struct {
	Surface SurfaceType
	Fatal   bool
	Bumper  bool
	Speed   float64   // Relative speed along the contact normal
	Normal  core.Vec2 // From the cart toward the other shape
	Pos     core.Vec2
}

// floorNormalY is the |normal.Y| cutoff separating floor impacts from
// wall impacts.
const floorNormalY = 0.7

// Classifier decides crashes. It is stateless per evaluation: all
// persisted inputs (flip timer, stuck timer) live in LivesState, so a
// snapshot restore reproduces classification exactly.
type Classifier struct {
	cfg      config.CrashConfig
	surfaces *SurfaceTable
}

// NewClassifier builds a classifier over the configured thresholds.
func NewClassifier(cfg config.CrashConfig, surfaces *SurfaceTable) *Classifier {
	return &Classifier{cfg: cfg, surfaces: surfaces}
}

// Evaluate classifies the tick. floorY is the bottom of the cart's
// current area. bounces collects bumper contacts, which notify but never
// crash. While the cart is invincible every verdict is suppressed, but
// flip and stuck timers still advance so invincibility cannot be used to
// reset them.
func (c *Classifier) Evaluate(now uint64, impacts []Impact, cart *CartState, lives *LivesState, floorY float64) (Verdict, []core.Vec2) {
	var bounces []core.Vec2

	verdict := Verdict{Kind: CrashNone, Pos: cart.Pos, Surface: cart.Surface}
	decide := func(kind CrashKind, pos core.Vec2, surf SurfaceType) {
		if verdict.Kind == CrashNone {
			verdict = Verdict{Kind: kind, Pos: pos, Surface: surf}
		}
	}

	// Contact-driven verdicts, in precedence order: hazards beat bumpers
	// beat speed impacts.
	for _, im := range impacts {
		if im.Fatal {
			decide(CrashHazard, im.Pos, im.Surface)
		}
	}
	for _, im := range impacts {
		if im.Bumper && !im.Fatal {
			bounces = append(bounces, im.Pos)
		}
	}
	for _, im := range impacts {
		if im.Fatal || im.Bumper {
			continue
		}
		limit := c.cfg.ImpactThreshold * c.surfaces.ImpactScale(im.Surface)
		if im.Speed > limit {
			if math.Abs(im.Normal.Y) > floorNormalY {
				decide(CrashFloor, im.Pos, im.Surface)
			} else {
				decide(CrashWall, im.Pos, im.Surface)
			}
		}
	}

	// Orientation. The flip timer persists in LivesState and only runs
	// while the flip condition holds continuously.
	tilt := math.Abs(cart.Angle)
	spin := math.Abs(cart.AngularVelocity)
	flipped := tilt >= c.cfg.RecoverableAngle

	if flipped && !lives.Flipped {
		lives.Flipped = true
		lives.FlippedSince = now
	} else if !flipped && lives.Flipped {
		lives.Flipped = false
		lives.FlippedSince = 0
	}

	switch {
	case tilt >= c.cfg.HardFlipAngle:
		decide(CrashFlip, cart.Pos, cart.Surface)
	case tilt >= c.cfg.RecoverableAngle*c.cfg.DangerZone && spin > c.cfg.SpinThreshold:
		decide(CrashFlip, cart.Pos, cart.Surface)
	case lives.Flipped && now-lives.FlippedSince >= uint64(c.cfg.FlipTimeoutTicks):
		decide(CrashFlip, cart.Pos, cart.Surface)
	}

	// Fall line.
	if cart.Pos.Y > floorY+c.cfg.FallMargin {
		decide(CrashFall, cart.Pos, cart.Surface)
	}

	// Stuck. The timer needs both near-zero speed and ground contact;
	// drifting through the air slowly is not stuck.
	if cart.Grounded && cart.Speed() < c.cfg.StuckSpeed {
		if !lives.Stuck {
			lives.Stuck = true
			lives.StuckSince = now
		} else if now-lives.StuckSince >= uint64(c.cfg.StuckTicks) {
			decide(CrashStuck, cart.Pos, cart.Surface)
		}
	} else {
		lives.Stuck = false
		lives.StuckSince = 0
	}

	if lives.IsInvincible(now) {
		verdict.Kind = CrashNone
	}
	return verdict, bounces
}
