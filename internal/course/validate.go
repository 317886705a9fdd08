package course

import "fmt"

var validObstacleKinds = map[string]bool{
	ObstacleBlock:  true,
	ObstacleSpike:  true,
	ObstacleBumper: true,
}

var validMechTypes = map[string]bool{
	MechGear:       true,
	MechLift:       true,
	MechJoystick:   true,
	MechLauncher:   true,
	MechFan:        true,
	MechAutoRotate: true,
	MechConveyor:   true,
}

var validBindings = map[string]bool{
	"":             true, // Empty means the type default
	BindAuto:       true,
	BindButtonA:    true,
	BindButtonB:    true,
	BindLeftStick:  true,
	BindRightStick: true,
	BindBlow:       true,
}

var validSurfaces = func() map[string]bool {
	m := map[string]bool{"": true}
	for _, s := range SurfaceNames {
		m[s] = true
	}
	return m
}()

var validCollectibles = map[string]bool{
	"coin": true,
	"gem":  true,
	"life": true,
}

// Validate checks a course for authoring errors. Setup-time validation is
// the place to catch these; the simulation degrades missing pieces to
// per-tick no-ops rather than halting, so silent breakage in shipped data
// would otherwise go unnoticed.
func Validate(c *Course) error {
	if c.ID == "" {
		return fmt.Errorf("course: missing id")
	}
	if len(c.Areas) == 0 {
		return fmt.Errorf("course %s: no areas", c.ID)
	}

	for i, a := range c.Areas {
		if a.Bounds.W <= 0 || a.Bounds.H <= 0 {
			return fmt.Errorf("course %s: area %d has empty bounds", c.ID, i)
		}
		if !a.Bounds.Contains(a.Checkpoint.Pos) {
			return fmt.Errorf("course %s: area %d checkpoint outside bounds", c.ID, i)
		}

		for j, o := range a.Obstacles {
			if !validObstacleKinds[o.Kind] {
				return fmt.Errorf("course %s: area %d obstacle %d: unknown kind %q", c.ID, i, j, o.Kind)
			}
			if !validSurfaces[o.Surface] {
				return fmt.Errorf("course %s: area %d obstacle %d: unknown surface %q", c.ID, i, j, o.Surface)
			}
			if o.W <= 0 || o.H <= 0 {
				return fmt.Errorf("course %s: area %d obstacle %d: empty size", c.ID, i, j)
			}
		}

		seen := make(map[string]bool)
		for j, m := range a.Mechanisms {
			if !validMechTypes[m.Type] {
				return fmt.Errorf("course %s: area %d mechanism %d: unknown type %q", c.ID, i, j, m.Type)
			}
			if !validBindings[m.Cfg.Binding] {
				return fmt.Errorf("course %s: area %d mechanism %d: unknown binding %q", c.ID, i, j, m.Cfg.Binding)
			}
			if m.ID == "" {
				return fmt.Errorf("course %s: area %d mechanism %d: missing id", c.ID, i, j)
			}
			if seen[m.ID] {
				return fmt.Errorf("course %s: area %d: duplicate mechanism id %q", c.ID, i, m.ID)
			}
			seen[m.ID] = true
		}

		for j, k := range a.Collectibles {
			if !validCollectibles[k.Kind] {
				return fmt.Errorf("course %s: area %d collectible %d: unknown kind %q", c.ID, i, j, k.Kind)
			}
		}
	}

	if !c.Areas[0].Bounds.Contains(c.Start.Pos) {
		return fmt.Errorf("course %s: start position outside first area", c.ID)
	}

	return nil
}
