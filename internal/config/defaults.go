package config

import (
	_ "embed"
)

//go:embed defaults/tiltcart.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default tuning, used when neither a
// custom config nor the embedded YAML is usable. Values mirror
// defaults/tiltcart.yaml.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			GravityY: 900,
			Substeps: 4,
		},
		Cart: CartConfig{
			ChassisW:     46,
			ChassisH:     20,
			ChassisMass:  5,
			WheelRadius:  10,
			WheelMass:    1,
			WheelOffsetX: 16,
			WheelOffsetY: 12,
			TiltForce:    1800,
			MaxSpeed:     420,
		},
		Grip: GripConfig{
			SlipThreshold: 3.0,
			SlipGripScale: 0.5,
			RecoveryRate:  1.5,
		},
		Surfaces: SurfacesConfig{
			Normal:   SurfaceParams{Friction: 0.8, StaticFriction: 0.9, Restitution: 0.1, ImpactScale: 1.0},
			Slippery: SurfaceParams{Friction: 0.1, StaticFriction: 0.15, Restitution: 0.05, ImpactScale: 1.25},
			Sticky:   SurfaceParams{Friction: 1.6, StaticFriction: 1.8, Restitution: 0.0, ImpactScale: 0.75},
			Bouncy:   SurfaceParams{Friction: 0.6, StaticFriction: 0.7, Restitution: 0.95, ImpactScale: 0},
			Rough:    SurfaceParams{Friction: 1.1, StaticFriction: 1.3, Restitution: 0.05, ImpactScale: 0.9},
			Metal:    SurfaceParams{Friction: 0.4, StaticFriction: 0.5, Restitution: 0.2, ImpactScale: 1.1},
		},
		Crash: CrashConfig{
			ImpactThreshold:  320,
			HardFlipAngle:    150,
			RecoverableAngle: 105,
			DangerZone:       0.8,
			SpinThreshold:    360,
			FlipTimeoutTicks: 180,
			StuckSpeed:       6,
			StuckTicks:       300,
			FallMargin:       220,
		},
		Lives: LivesConfig{
			Start:              3,
			Max:                5,
			RespawnTicks:       90,
			InvincibilityTicks: 150,
		},
		Score: ScoreConfig{
			Coin:        10,
			Gem:         50,
			LifeForNext: 500,
		},
		Camera: CameraConfig{
			TransitionTicks: 60,
			DefaultZoom:     1.0,
			EdgeThreshold:   60,
		},
		Mechanisms: MechConfig{
			Deadzone:         0.15,
			PlatformW:        120,
			PlatformH:        16,
			GearRate:         90,
			GearReturnRate:   140,
			GearMaxAngle:     60,
			LiftSpeed:        80,
			LiftHeight:       140,
			FanLiftSpeed:     0.8,
			FanFallSpeed:     0.35,
			LaunchCharge:     60,
			LaunchMinCharge:  0.25,
			LaunchImpulseMin: 900,
			LaunchImpulseMax: 2600,
			LaunchCooldown:   90,
			AutoRotateRate:   60,
			AutoResetTicks:   240,
			BeltSpeed:        80,
		},
	}
}
