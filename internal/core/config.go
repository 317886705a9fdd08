package core

// RuntimeConfig contains configuration passed to a session at creation.
// The platform uses it to adapt to screen size and for deterministic
// simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultRuntimeConfig returns a RuntimeConfig with sensible defaults.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// SessionState is the coarse state a session reports to the platform after
// each tick.
type SessionState struct {
	Score    int
	Lives    int
	GameOver bool // Zero lives; no further ticks mutate lives
	Complete bool // Final checkpoint reached
	Paused   bool
}

// StepResult is returned after each simulation tick: the coarse state plus
// the events emitted during the tick, already drained in order.
type StepResult struct {
	State  SessionState
	Events []Event
}
