package course

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
id: test-loop
name: Test Loop
start:
  x: 100
  y: 400
areas:
  - name: Only
    bounds: {x: 0, y: 0, w: 960, h: 540}
    obstacles:
      - {kind: block, x: 480, y: 520, w: 960, h: 40}
      - {kind: spike, x: 300, y: 490, w: 60, h: 20}
      - {kind: bumper, x: 600, y: 490, w: 40, h: 20, surface: bouncy}
    mechanisms:
      - type: conveyor
        id: belt
        x: 700
        y: 470
        config: {belt_speed: 80, w: 160, h: 16}
    collectibles:
      - {kind: coin, x: 400, y: 440}
    checkpoint: {x: 900, y: 430}
`

func TestParseYAML(t *testing.T) {
	c, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}

	if c.ID != "test-loop" {
		t.Errorf("ID = %q, want test-loop", c.ID)
	}
	if len(c.Areas) != 1 {
		t.Fatalf("Expected 1 area, got %d", len(c.Areas))
	}

	a := c.Areas[0]
	if len(a.Obstacles) != 3 {
		t.Errorf("Expected 3 obstacles, got %d", len(a.Obstacles))
	}
	if a.Obstacles[2].Surface != "bouncy" {
		t.Errorf("Bumper surface = %q, want bouncy", a.Obstacles[2].Surface)
	}
	if len(a.Mechanisms) != 1 || a.Mechanisms[0].Cfg.BeltSpeed != 80 {
		t.Errorf("Conveyor override not parsed: %+v", a.Mechanisms)
	}

	// Checkpoint sensor size defaults applied
	if a.Checkpoint.W <= 0 || a.Checkpoint.H <= 0 {
		t.Errorf("Checkpoint size defaults missing: %+v", a.Checkpoint)
	}

	// Auto-generated collectible IDs
	if a.Collectibles[0].ID == "" {
		t.Error("Collectible ID was not generated")
	}
}

func TestParseYAMLRejectsBadCourse(t *testing.T) {
	bad := `
id: broken
start: {x: 5000, y: 5000}
areas:
  - bounds: {x: 0, y: 0, w: 960, h: 540}
    checkpoint: {x: 100, y: 100}
`
	if _, err := ParseYAML([]byte(bad)); err == nil {
		t.Error("Expected validation error for start outside first area")
	}

	unknownKind := `
id: broken2
start: {x: 100, y: 100}
areas:
  - bounds: {x: 0, y: 0, w: 960, h: 540}
    obstacles:
      - {kind: lava, x: 10, y: 10, w: 10, h: 10}
    checkpoint: {x: 100, y: 100}
`
	if _, err := ParseYAML([]byte(unknownKind)); err == nil {
		t.Error("Expected validation error for unknown obstacle kind")
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	// Invalid files are skipped, not fatal
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("id: incomplete"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644); err != nil {
		t.Fatal(err)
	}

	courses, err := NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("Expected 1 valid course, got %d", len(courses))
	}
	if courses[0].ID != "test-loop" {
		t.Errorf("Loaded course ID = %q", courses[0].ID)
	}
}

func TestBuiltinCoursesAreValid(t *testing.T) {
	all := List()
	if len(all) < 2 {
		t.Fatalf("Expected at least 2 built-in courses, got %d", len(all))
	}

	for _, c := range all {
		if err := Validate(c); err != nil {
			t.Errorf("Built-in course %s fails validation: %v", c.ID, err)
		}
	}
}

func TestResolvePrefersDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "c.yaml"), []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Resolve("test-loop", dir)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if c.Name != "Test Loop" {
		t.Errorf("Resolved wrong course: %q", c.Name)
	}

	// Built-in fallback
	if _, err := Resolve("rolling-hills", dir); err != nil {
		t.Errorf("Resolve() did not fall back to built-ins: %v", err)
	}

	if _, err := Resolve("nope", dir); err == nil {
		t.Error("Resolve() should fail for unknown course")
	}
}
