package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML Config
	if err := yaml.Unmarshal(defaultYAML, &fromYAML); err != nil {
		t.Fatalf("Embedded default YAML does not parse: %v", err)
	}

	hard := DefaultConfig()
	if fromYAML != hard {
		t.Errorf("Embedded defaults diverge from DefaultConfig():\nyaml: %+v\ncode: %+v", fromYAML, hard)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	custom := `
lives:
  start: 1
  max: 2
  respawn_ticks: 30
  invincibility_ticks: 60
`
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Lives.Start != 1 || cfg.Lives.Max != 2 {
		t.Errorf("Custom lives config not applied: %+v", cfg.Lives)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing explicit path")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultConfig()

	easy := DefaultConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Lives.Start != easy.Lives.Max {
		t.Errorf("Easy preset should start at max lives, got %d/%d", easy.Lives.Start, easy.Lives.Max)
	}
	if easy.Crash.ImpactThreshold <= base.Crash.ImpactThreshold {
		t.Error("Easy preset should raise the crash threshold")
	}

	hard := DefaultConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Lives.Start >= base.Lives.Start {
		t.Error("Hard preset should reduce starting lives")
	}
	if hard.Crash.ImpactThreshold >= base.Crash.ImpactThreshold {
		t.Error("Hard preset should lower the crash threshold")
	}

	fixed := DefaultConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed != base {
		t.Error("Fixed preset must leave the config untouched")
	}
}
