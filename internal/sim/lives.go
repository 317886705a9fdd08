package sim

import (
	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
)

// RespawnPhase tracks where the cart is inside the respawn sequence.
type RespawnPhase int

const (
	RespawnNone RespawnPhase = iota
	RespawnFadeOut
	RespawnFadeIn
)

// RespawnState is the in-flight respawn animation. FadeOpacity is 1 while
// playing normally, falls to 0 over the first half of the respawn window,
// and rises back to 1 over the second half; the teleport happens at the
// midpoint while the screen is dark.
type RespawnState struct {
	Phase       RespawnPhase
	StartTick   uint64
	FadeOpacity float64
	Teleported  bool
}

// LivesState is the authoritative session survival state. It also carries
// the flip and stuck timers so the classifier itself stays stateless.
type LivesState struct {
	Current int
	Max     int
	Deaths  int

	Crashed     bool
	CrashReason CrashKind
	CrashPos    core.Vec2

	InvincibleUntil uint64 // Tick; 0 = not invincible

	Flipped      bool
	FlippedSince uint64
	Stuck        bool
	StuckSince   uint64

	Respawn  RespawnState
	GameOver bool

	NextLifeAt int // Score threshold for the next bonus life
}

// IsInvincible reports whether post-respawn invincibility is active at the
// given tick.
func (s *LivesState) IsInvincible(now uint64) bool {
	return now < s.InvincibleUntil
}

// Respawning reports whether a fade sequence is in flight.
func (s *LivesState) Respawning() bool {
	return s.Respawn.Phase != RespawnNone
}

// LivesMachine advances the lives state: crash intake, the two-phase fade
// respawn, invincibility expiry, and bonus-life awards.
type LivesMachine struct {
	cfg   config.LivesConfig
	score config.ScoreConfig
	state LivesState
}

// NewLivesMachine starts a fresh session at the configured life count.
func NewLivesMachine(cfg config.LivesConfig, score config.ScoreConfig) *LivesMachine {
	m := &LivesMachine{cfg: cfg, score: score}
	m.Reset()
	return m
}

// Reset restores the machine to session start.
func (m *LivesMachine) Reset() {
	m.state = LivesState{
		Current:    m.cfg.Start,
		Max:        m.cfg.Max,
		NextLifeAt: m.score.LifeForNext,
		Respawn:    RespawnState{FadeOpacity: 1},
	}
}

// State returns the live state for inspection. Callers must not mutate it
// outside the classifier's timer fields.
func (m *LivesMachine) State() *LivesState {
	return &m.state
}

// TriggerCrash consumes a verdict. A crash while one is already being
// processed, or after game over, is ignored; each verdict costs exactly
// one life. Returns true if the crash was accepted.
func (m *LivesMachine) TriggerCrash(now uint64, v Verdict, q *core.EventQueue) bool {
	if v.Kind == CrashNone || m.state.Crashed || m.state.GameOver {
		return false
	}

	m.state.Crashed = true
	m.state.CrashReason = v.Kind
	m.state.CrashPos = v.Pos
	m.state.Current--
	m.state.Deaths++
	m.state.Flipped = false
	m.state.FlippedSince = 0
	m.state.Stuck = false
	m.state.StuckSince = 0

	q.Emit(core.Event{Kind: core.EventCrash, Tick: now, Pos: v.Pos, Reason: v.Kind.String(), Lives: m.state.Current})

	if m.state.Current <= 0 {
		m.state.GameOver = true
		q.Emit(core.Event{Kind: core.EventGameOver, Tick: now, Pos: v.Pos, Reason: v.Kind.String()})
		return true
	}

	m.state.Respawn = RespawnState{Phase: RespawnFadeOut, StartTick: now, FadeOpacity: 1}
	return true
}

// Step advances the respawn fade and invincibility expiry. teleport is
// called exactly once per respawn, at the fade midpoint, to move the cart
// to its anchor.
func (m *LivesMachine) Step(now uint64, anchor course.Spawn, teleport func(course.Spawn), q *core.EventQueue) {
	s := &m.state

	if s.InvincibleUntil != 0 && now >= s.InvincibleUntil {
		s.InvincibleUntil = 0
		q.Emit(core.Event{Kind: core.EventInvincibilityEnd, Tick: now})
	}

	if s.Respawn.Phase == RespawnNone {
		return
	}

	half := uint64(m.cfg.RespawnTicks / 2)
	if half == 0 {
		half = 1
	}
	elapsed := now - s.Respawn.StartTick
	progress := float64(elapsed) / float64(half)
	if progress > 1 {
		progress = 1
	}

	switch s.Respawn.Phase {
	case RespawnFadeOut:
		s.Respawn.FadeOpacity = 1 - progress
		if elapsed >= half {
			teleport(anchor)
			s.Respawn.Teleported = true
			q.Emit(core.Event{Kind: core.EventRespawnTeleport, Tick: now, Pos: anchor.Pos})
			s.Respawn.Phase = RespawnFadeIn
			s.Respawn.StartTick = now
			s.Respawn.FadeOpacity = 0
		}
	case RespawnFadeIn:
		s.Respawn.FadeOpacity = progress
		if elapsed >= half {
			s.Respawn = RespawnState{FadeOpacity: 1}
			s.Crashed = false
			s.CrashReason = CrashNone
			s.InvincibleUntil = now + uint64(m.cfg.InvincibilityTicks)
			q.Emit(core.Event{Kind: core.EventRespawnComplete, Tick: now, Pos: anchor.Pos, Lives: s.Current})
		}
	}
}

// AwardLife grants one bonus life, capped at the maximum. reason is
// recorded on the event ("pickup" or "score").
func (m *LivesMachine) AwardLife(now uint64, reason string, q *core.EventQueue) bool {
	if m.state.Current >= m.state.Max {
		return false
	}
	m.state.Current++
	q.Emit(core.Event{Kind: core.EventBonusLife, Tick: now, Reason: reason, Lives: m.state.Current})
	return true
}

// CheckScore awards bonus lives for every score threshold crossed. The
// threshold advances even when the cart is at max lives, so banked score
// never converts retroactively.
func (m *LivesMachine) CheckScore(now uint64, score int, q *core.EventQueue) {
	for score >= m.state.NextLifeAt {
		m.AwardLife(now, "score", q)
		m.state.NextLifeAt += m.score.LifeForNext
	}
}
