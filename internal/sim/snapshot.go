package sim

import (
	"sort"

	"github.com/vovakirdan/tiltcart/internal/core"
)

// MechSnapshot is one mechanism's observable state.
type MechSnapshot struct {
	ID       string
	Kind     MechKind
	State    MechState
	Angle    float64
	Progress float64
	Pos      core.Vec2
}

// Snapshot is the full observable session state at one tick. Two sessions
// built from the same course, config, and input sequence produce equal
// snapshots at every tick; the determinism tests compare them directly.
type Snapshot struct {
	Tick     uint64
	Score    int
	Complete bool
	Paused   bool

	CartPos      core.Vec2
	CartVelocity core.Vec2
	CartAngle    float64
	CartSpin     float64
	Grounded     bool
	Surface      SurfaceType

	Lives           int
	Deaths          int
	Crashed         bool
	CrashReason     CrashKind
	RespawnPhase    RespawnPhase
	FadeOpacity     float64
	InvincibleUntil uint64

	Area        int
	CameraZoom  float64
	Checkpoints int

	Collected  []string
	Mechanisms []MechSnapshot
}

// Snapshot captures the session's observable state.
func (s *Session) Snapshot() Snapshot {
	cart := s.cart.State()
	ls := s.lives.State()

	snap := Snapshot{
		Tick:     s.tick,
		Score:    s.score,
		Complete: s.complete,
		Paused:   s.paused,

		CartPos:      cart.Pos,
		CartVelocity: cart.Velocity,
		CartAngle:    cart.Angle,
		CartSpin:     cart.AngularVelocity,
		Grounded:     cart.Grounded,
		Surface:      cart.Surface,

		Lives:           ls.Current,
		Deaths:          ls.Deaths,
		Crashed:         ls.Crashed,
		CrashReason:     ls.CrashReason,
		RespawnPhase:    ls.Respawn.Phase,
		FadeOpacity:     ls.Respawn.FadeOpacity,
		InvincibleUntil: ls.InvincibleUntil,

		Area:        s.areas.Current(),
		CameraZoom:  s.areas.Camera().Zoom,
		Checkpoints: s.checks.Count(),
	}

	for id, p := range s.pickups {
		if p.collected {
			snap.Collected = append(snap.Collected, id)
		}
	}
	sort.Strings(snap.Collected)

	for _, m := range s.mechs {
		snap.Mechanisms = append(snap.Mechanisms, MechSnapshot{
			ID:       m.ID,
			Kind:     m.Kind,
			State:    m.State,
			Angle:    m.Angle,
			Progress: m.Progress(),
			Pos:      m.body.Position(),
		})
	}
	sort.Slice(snap.Mechanisms, func(i, j int) bool {
		return snap.Mechanisms[i].ID < snap.Mechanisms[j].ID
	})
	return snap
}
