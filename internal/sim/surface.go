// Package sim implements the tiltcart simulation core: the cart composite,
// surface grip, crash classification, lives and respawn, checkpoints,
// mechanisms, and area/camera tracking, all advanced by a single
// synchronous Step per rendered frame.
package sim

import (
	"math"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/physics"
)

// SurfaceType identifies one of the six named course surfaces.
type SurfaceType int

const (
	SurfaceNormal SurfaceType = iota
	SurfaceSlippery
	SurfaceSticky
	SurfaceBouncy
	SurfaceRough
	SurfaceMetal
)

// String returns the course-data name of the surface.
func (t SurfaceType) String() string {
	switch t {
	case SurfaceSlippery:
		return "slippery"
	case SurfaceSticky:
		return "sticky"
	case SurfaceBouncy:
		return "bouncy"
	case SurfaceRough:
		return "rough"
	case SurfaceMetal:
		return "metal"
	default:
		return "normal"
	}
}

// SurfaceFromName maps a course-data surface name to its type. Unknown or
// empty names fall back to normal.
func SurfaceFromName(name string) SurfaceType {
	switch name {
	case "slippery":
		return SurfaceSlippery
	case "sticky":
		return SurfaceSticky
	case "bouncy":
		return SurfaceBouncy
	case "rough":
		return SurfaceRough
	case "metal":
		return SurfaceMetal
	default:
		return SurfaceNormal
	}
}

// SurfaceTable resolves surface types to their tuned parameters.
type SurfaceTable struct {
	cfg config.SurfacesConfig
}

// NewSurfaceTable wraps the configured surface parameters.
func NewSurfaceTable(cfg config.SurfacesConfig) *SurfaceTable {
	return &SurfaceTable{cfg: cfg}
}

// Params returns the tuning row for a surface type.
func (t *SurfaceTable) Params(s SurfaceType) config.SurfaceParams {
	switch s {
	case SurfaceSlippery:
		return t.cfg.Slippery
	case SurfaceSticky:
		return t.cfg.Sticky
	case SurfaceBouncy:
		return t.cfg.Bouncy
	case SurfaceRough:
		return t.cfg.Rough
	case SurfaceMetal:
		return t.cfg.Metal
	default:
		return t.cfg.Normal
	}
}

// Material returns the solver material for a surface type.
func (t *SurfaceTable) Material(s SurfaceType) physics.Material {
	p := t.Params(s)
	return physics.Material{Friction: p.Friction, Elasticity: p.Restitution}
}

// ImpactScale returns the crash-threshold multiplier for impacts against
// the surface. Bouncy surfaces never produce impact crashes, so their
// scale is infinite.
func (t *SurfaceTable) ImpactScale(s SurfaceType) float64 {
	p := t.Params(s)
	if p.ImpactScale <= 0 {
		return math.Inf(1)
	}
	return p.ImpactScale
}

// WheelState is the per-wheel derived state, fully recomputed every tick
// and never persisted.
type WheelState struct {
	AngularVelocity float64 // Rad/s from the physics body
	Slip            bool
	Grip            float64 // 0..1
	Surface         SurfaceType
	Contact         bool
}

// updateGrip advances one wheel's slip/grip state. Slip is detected by
// comparing the wheel's actual angular velocity against the angular
// velocity implied by the cart's linear speed; the surface's static
// friction scales how much mismatch the contact holds before breaking
// loose. Slip drops grip instantly to the configured scale; recovery is
// linear over time.
func updateGrip(w *WheelState, cartSpeed, wheelRadius, staticFriction float64, cfg config.GripConfig, dt float64) {
	if !w.Contact {
		w.Slip = false
		// Airborne wheels keep their grip value; it only matters on contact
		return
	}

	implied := cartSpeed / wheelRadius
	mismatch := math.Abs(math.Abs(w.AngularVelocity) - math.Abs(implied))

	if mismatch > cfg.SlipThreshold*staticFriction {
		w.Slip = true
		if w.Grip > cfg.SlipGripScale {
			w.Grip = cfg.SlipGripScale
		}
		return
	}

	w.Slip = false
	w.Grip += cfg.RecoveryRate * dt
	if w.Grip > 1 {
		w.Grip = 1
	}
}
