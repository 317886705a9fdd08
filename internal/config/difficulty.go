package config

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset; unknown strings return empty,
// which means "leave the config untouched".
func ParsePreset(s string) DifficultyPreset {
	switch s {
	case "easy":
		return DifficultyEasy
	case "normal":
		return DifficultyNormal
	case "hard":
		return DifficultyHard
	case "fixed":
		return DifficultyFixed
	default:
		return ""
	}
}

// ApplyPreset modifies a loaded config for a difficulty preset. Easy gives
// more lives and a more forgiving crash threshold; hard tightens both.
// Fixed leaves the config exactly as loaded.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Lives.Start = cfg.Lives.Max
		cfg.Crash.ImpactThreshold *= 1.25
		cfg.Lives.InvincibilityTicks = cfg.Lives.InvincibilityTicks * 3 / 2
		cfg.Crash.StuckTicks = cfg.Crash.StuckTicks * 3 / 2
	case DifficultyHard:
		if cfg.Lives.Start > 2 {
			cfg.Lives.Start = 2
		}
		cfg.Crash.ImpactThreshold *= 0.85
		cfg.Lives.InvincibilityTicks = cfg.Lives.InvincibilityTicks / 2
	case DifficultyNormal, DifficultyFixed, "":
		// Config as loaded
	}
}
