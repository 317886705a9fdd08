package course

import "github.com/vovakirdan/tiltcart/internal/core"

// Built-in courses so the game runs with no course files on disk. Course
// space: world units roughly match screen pixels at zoom 1; +Y is down,
// floors sit near y=500 in each 960x540 area.

func init() {
	Register(rollingHills())
	Register(gearWorks())
}

func rollingHills() *Course {
	return &Course{
		ID:    "rolling-hills",
		Name:  "Rolling Hills",
		Start: Spawn{Pos: core.V(100, 440)},
		Areas: []Area{
			{
				Name:   "Meadow",
				Bounds: core.NewFRect(0, 0, 960, 540),
				Obstacles: []Obstacle{
					{Kind: ObstacleBlock, Pos: core.V(480, 520), W: 960, H: 40},
					{Kind: ObstacleBlock, Pos: core.V(300, 470), W: 160, H: 20, Angle: -8, Surface: "rough"},
					{Kind: ObstacleSpike, Pos: core.V(560, 492), W: 60, H: 16},
					{Kind: ObstacleBlock, Pos: core.V(10, 270), W: 20, H: 540},
				},
				Mechanisms: []Placement{
					{Type: MechConveyor, ID: "belt-1", Pos: core.V(660, 480),
						Cfg: MechOverrides{BeltSpeed: 90, W: 180, H: 16}},
					{Type: MechGear, ID: "gear-1", Pos: core.V(840, 430),
						Cfg: MechOverrides{Binding: BindButtonA, MaxAngle: 45, W: 140, H: 14, ReturnToNeutral: true}},
				},
				Collectibles: []Collectible{
					{ID: "rh-c1", Kind: "coin", Pos: core.V(320, 430)},
					{ID: "rh-c2", Kind: "coin", Pos: core.V(660, 440)},
				},
				Checkpoint: Checkpoint{Pos: core.V(900, 440), W: 40, H: 120},
			},
			{
				Name:   "Quarry",
				Bounds: core.NewFRect(960, 0, 960, 540),
				Zoom:   0.9,
				Obstacles: []Obstacle{
					{Kind: ObstacleBlock, Pos: core.V(1200, 520), W: 480, H: 40, Surface: "slippery"},
					{Kind: ObstacleBumper, Pos: core.V(1500, 500), W: 60, H: 24},
					{Kind: ObstacleBlock, Pos: core.V(1800, 520), W: 240, H: 40, Surface: "metal"},
					{Kind: ObstacleSpike, Pos: core.V(1620, 530), W: 200, H: 20},
				},
				Mechanisms: []Placement{
					{Type: MechLift, ID: "lift-1", Pos: core.V(1440, 500),
						Cfg: MechOverrides{Binding: BindButtonB, LiftHeight: 160, W: 120, H: 16, HoldToMaintain: true}},
					{Type: MechFan, ID: "fan-1", Pos: core.V(1650, 500),
						Cfg: MechOverrides{Binding: BindBlow, LiftHeight: 200, W: 120, H: 16}},
				},
				Collectibles: []Collectible{
					{ID: "rh-c3", Kind: "gem", Pos: core.V(1440, 320)},
					{ID: "rh-c4", Kind: "life", Pos: core.V(1650, 280)},
				},
				Checkpoint: Checkpoint{Pos: core.V(1880, 440), W: 40, H: 120},
			},
			{
				Name:   "Summit",
				Bounds: core.NewFRect(1920, 0, 960, 540),
				Obstacles: []Obstacle{
					{Kind: ObstacleBlock, Pos: core.V(2160, 520), W: 480, H: 40},
					{Kind: ObstacleBlock, Pos: core.V(2700, 400), W: 360, H: 30, Surface: "sticky"},
					{Kind: ObstacleBlock, Pos: core.V(2870, 270), W: 20, H: 540},
				},
				Mechanisms: []Placement{
					{Type: MechLauncher, ID: "launch-1", Pos: core.V(2360, 490),
						Cfg: MechOverrides{Binding: BindButtonA, Direction: -60, W: 80, H: 20}},
					{Type: MechJoystick, ID: "jgear-1", Pos: core.V(2550, 430),
						Cfg: MechOverrides{Binding: BindLeftStick, MinAngle: -60, MaxAngle: 60, W: 150, H: 14}},
					{Type: MechAutoRotate, ID: "arot-1", Pos: core.V(2700, 360),
						Cfg: MechOverrides{TargetAngle: 90, TriggerRadius: 120, TriggerOnce: true, W: 130, H: 14}},
				},
				Collectibles: []Collectible{
					{ID: "rh-c5", Kind: "gem", Pos: core.V(2550, 360)},
				},
				Checkpoint: Checkpoint{Pos: core.V(2780, 330), W: 40, H: 120},
			},
		},
	}
}

func gearWorks() *Course {
	return &Course{
		ID:    "gear-works",
		Name:  "Gear Works",
		Start: Spawn{Pos: core.V(120, 420)},
		Areas: []Area{
			{
				Name:   "Intake",
				Bounds: core.NewFRect(0, 0, 960, 540),
				Obstacles: []Obstacle{
					{Kind: ObstacleBlock, Pos: core.V(480, 500), W: 960, H: 40, Surface: "metal"},
					{Kind: ObstacleSpike, Pos: core.V(480, 470), W: 80, H: 20},
					{Kind: ObstacleBumper, Pos: core.V(700, 470), W: 50, H: 20},
				},
				Mechanisms: []Placement{
					{Type: MechGear, ID: "gw-gear-1", Pos: core.V(350, 420),
						Cfg: MechOverrides{Binding: BindRightStick, MinAngle: -30, MaxAngle: 30, W: 160, H: 14}},
					{Type: MechConveyor, ID: "gw-belt-1", Pos: core.V(820, 460),
						Cfg: MechOverrides{BeltSpeed: -70, W: 200, H: 16}},
				},
				Collectibles: []Collectible{
					{ID: "gw-c1", Kind: "coin", Pos: core.V(350, 360)},
					{ID: "gw-c2", Kind: "coin", Pos: core.V(700, 420)},
				},
				Checkpoint: Checkpoint{Pos: core.V(900, 420), W: 40, H: 120},
			},
			{
				Name:            "Press Hall",
				Bounds:          core.NewFRect(960, 0, 960, 540),
				Zoom:            1.1,
				TransitionTicks: 90,
				Obstacles: []Obstacle{
					{Kind: ObstacleBlock, Pos: core.V(1440, 500), W: 960, H: 40, Surface: "metal"},
					{Kind: ObstacleBlock, Pos: core.V(1900, 260), W: 20, H: 520},
				},
				Mechanisms: []Placement{
					{Type: MechLift, ID: "gw-lift-1", Pos: core.V(1250, 470),
						Cfg: MechOverrides{Binding: BindButtonA, LiftHeight: 140, W: 110, H: 16}},
					{Type: MechLauncher, ID: "gw-launch-1", Pos: core.V(1550, 470),
						Cfg: MechOverrides{Binding: BindButtonB, Direction: -75, W: 80, H: 20}},
				},
				Collectibles: []Collectible{
					{ID: "gw-c3", Kind: "gem", Pos: core.V(1550, 360)},
				},
				Checkpoint: Checkpoint{Pos: core.V(1840, 420), W: 40, H: 120},
			},
		},
	}
}
