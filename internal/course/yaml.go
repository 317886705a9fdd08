package course

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tiltcart/internal/core"
)

// yamlCourse is the on-disk course structure.
type yamlCourse struct {
	ID    string     `yaml:"id"`
	Name  string     `yaml:"name"`
	Start yamlSpawn  `yaml:"start"`
	Areas []yamlArea `yaml:"areas"`
}

type yamlSpawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle,omitempty"`
}

type yamlArea struct {
	Name            string            `yaml:"name,omitempty"`
	Bounds          yamlRect          `yaml:"bounds"`
	Zoom            float64           `yaml:"zoom,omitempty"`
	TransitionTicks int               `yaml:"transition_ticks,omitempty"`
	Obstacles       []yamlObstacle    `yaml:"obstacles,omitempty"`
	Mechanisms      []yamlPlacement   `yaml:"mechanisms,omitempty"`
	Collectibles    []yamlCollectible `yaml:"collectibles,omitempty"`
	Checkpoint      yamlCheckpoint    `yaml:"checkpoint"`
}

type yamlRect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlObstacle struct {
	Kind    string  `yaml:"kind"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	W       float64 `yaml:"w"`
	H       float64 `yaml:"h"`
	Angle   float64 `yaml:"angle,omitempty"`
	Surface string  `yaml:"surface,omitempty"`
	Fatal   bool    `yaml:"fatal,omitempty"`
}

type yamlPlacement struct {
	Type string   `yaml:"type"`
	ID   string   `yaml:"id,omitempty"`
	X    float64  `yaml:"x"`
	Y    float64  `yaml:"y"`
	Cfg  yamlMech `yaml:"config,omitempty"`
}

type yamlMech struct {
	Binding         string  `yaml:"binding,omitempty"`
	MinAngle        float64 `yaml:"min_angle,omitempty"`
	MaxAngle        float64 `yaml:"max_angle,omitempty"`
	RotateRate      float64 `yaml:"rotate_rate,omitempty"`
	ReturnRate      float64 `yaml:"return_rate,omitempty"`
	ReturnToNeutral bool    `yaml:"return_to_neutral,omitempty"`
	TargetAngle     float64 `yaml:"target_angle,omitempty"`
	TriggerRadius   float64 `yaml:"trigger_radius,omitempty"`
	TriggerOnce     bool    `yaml:"trigger_once,omitempty"`
	ResetTicks      int     `yaml:"reset_ticks,omitempty"`
	LiftHeight      float64 `yaml:"lift_height,omitempty"`
	LiftSpeed       float64 `yaml:"lift_speed,omitempty"`
	HoldToMaintain  bool    `yaml:"hold_to_maintain,omitempty"`
	FallSpeed       float64 `yaml:"fall_speed,omitempty"`
	ChargeTicks     int     `yaml:"charge_ticks,omitempty"`
	MinCharge       float64 `yaml:"min_charge,omitempty"`
	ImpulseMin      float64 `yaml:"impulse_min,omitempty"`
	ImpulseMax      float64 `yaml:"impulse_max,omitempty"`
	Direction       float64 `yaml:"direction,omitempty"`
	CooldownTicks   int     `yaml:"cooldown_ticks,omitempty"`
	BeltSpeed       float64 `yaml:"belt_speed,omitempty"`
	W               float64 `yaml:"w,omitempty"`
	H               float64 `yaml:"h,omitempty"`
}

type yamlCollectible struct {
	ID   string  `yaml:"id,omitempty"`
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type yamlCheckpoint struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle,omitempty"`
	W     float64 `yaml:"w,omitempty"`
	H     float64 `yaml:"h,omitempty"`
}

// Default checkpoint sensor size when the course file leaves it out.
const (
	defaultCheckpointW = 40
	defaultCheckpointH = 80
)

// ParseYAML parses one course file. The result is validated before being
// returned; malformed courses fail at load time, not mid-session.
func ParseYAML(data []byte) (*Course, error) {
	var yc yamlCourse
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("course: yaml unmarshal: %w", err)
	}

	c := &Course{
		ID:    yc.ID,
		Name:  yc.Name,
		Start: Spawn{Pos: core.V(yc.Start.X, yc.Start.Y), Angle: yc.Start.Angle},
	}

	for _, ya := range yc.Areas {
		area := Area{
			Name:            ya.Name,
			Bounds:          core.NewFRect(ya.Bounds.X, ya.Bounds.Y, ya.Bounds.W, ya.Bounds.H),
			Zoom:            ya.Zoom,
			TransitionTicks: ya.TransitionTicks,
		}

		for _, yo := range ya.Obstacles {
			area.Obstacles = append(area.Obstacles, Obstacle{
				Kind:    yo.Kind,
				Pos:     core.V(yo.X, yo.Y),
				W:       yo.W,
				H:       yo.H,
				Angle:   yo.Angle,
				Surface: yo.Surface,
				Fatal:   yo.Fatal,
			})
		}

		for i, yp := range ya.Mechanisms {
			id := yp.ID
			if id == "" {
				id = fmt.Sprintf("%s-%s-%d", yc.ID, yp.Type, i)
			}
			area.Mechanisms = append(area.Mechanisms, Placement{
				Type: yp.Type,
				ID:   id,
				Pos:  core.V(yp.X, yp.Y),
				Cfg: MechOverrides{
					Binding:         yp.Cfg.Binding,
					MinAngle:        yp.Cfg.MinAngle,
					MaxAngle:        yp.Cfg.MaxAngle,
					RotateRate:      yp.Cfg.RotateRate,
					ReturnRate:      yp.Cfg.ReturnRate,
					ReturnToNeutral: yp.Cfg.ReturnToNeutral,
					TargetAngle:     yp.Cfg.TargetAngle,
					TriggerRadius:   yp.Cfg.TriggerRadius,
					TriggerOnce:     yp.Cfg.TriggerOnce,
					ResetTicks:      yp.Cfg.ResetTicks,
					LiftHeight:      yp.Cfg.LiftHeight,
					LiftSpeed:       yp.Cfg.LiftSpeed,
					HoldToMaintain:  yp.Cfg.HoldToMaintain,
					FallSpeed:       yp.Cfg.FallSpeed,
					ChargeTicks:     yp.Cfg.ChargeTicks,
					MinCharge:       yp.Cfg.MinCharge,
					ImpulseMin:      yp.Cfg.ImpulseMin,
					ImpulseMax:      yp.Cfg.ImpulseMax,
					Direction:       yp.Cfg.Direction,
					CooldownTicks:   yp.Cfg.CooldownTicks,
					BeltSpeed:       yp.Cfg.BeltSpeed,
					W:               yp.Cfg.W,
					H:               yp.Cfg.H,
				},
			})
		}

		for i, yk := range ya.Collectibles {
			id := yk.ID
			if id == "" {
				id = fmt.Sprintf("%s-%s-%d", yc.ID, yk.Kind, i)
			}
			area.Collectibles = append(area.Collectibles, Collectible{
				ID:   id,
				Kind: yk.Kind,
				Pos:  core.V(yk.X, yk.Y),
			})
		}

		cp := Checkpoint{
			Pos:   core.V(ya.Checkpoint.X, ya.Checkpoint.Y),
			Angle: ya.Checkpoint.Angle,
			W:     ya.Checkpoint.W,
			H:     ya.Checkpoint.H,
		}
		if cp.W <= 0 {
			cp.W = defaultCheckpointW
		}
		if cp.H <= 0 {
			cp.H = defaultCheckpointH
		}
		area.Checkpoint = cp

		c.Areas = append(c.Areas, area)
	}

	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}
