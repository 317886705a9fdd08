// Package config provides YAML-based gameplay tuning and difficulty
// presets for tiltcart. All simulation constants that playtesting touches
// live here; the simulation never hardcodes them.
package config

// Config contains the complete gameplay tuning.
type Config struct {
	Physics    PhysicsConfig  `yaml:"physics"`
	Cart       CartConfig     `yaml:"cart"`
	Grip       GripConfig     `yaml:"grip"`
	Surfaces   SurfacesConfig `yaml:"surfaces"`
	Crash      CrashConfig    `yaml:"crash"`
	Lives      LivesConfig    `yaml:"lives"`
	Camera     CameraConfig   `yaml:"camera"`
	Mechanisms MechConfig     `yaml:"mechanisms"`
	Score      ScoreConfig    `yaml:"score"`
}

// PhysicsConfig tunes the rigid-body world.
type PhysicsConfig struct {
	GravityY float64 `yaml:"gravity_y"` // World units per second squared, +down
	Substeps int     `yaml:"substeps"`  // Solver substeps per simulation tick
}

// CartConfig defines the cart composite and its tilt response.
type CartConfig struct {
	ChassisW     float64 `yaml:"chassis_w"`
	ChassisH     float64 `yaml:"chassis_h"`
	ChassisMass  float64 `yaml:"chassis_mass"`
	WheelRadius  float64 `yaml:"wheel_radius"`
	WheelMass    float64 `yaml:"wheel_mass"`
	WheelOffsetX float64 `yaml:"wheel_offset_x"` // Axle distance from chassis center
	WheelOffsetY float64 `yaml:"wheel_offset_y"` // Below chassis center, +down
	TiltForce    float64 `yaml:"tilt_force"`     // Horizontal force at full tilt
	MaxSpeed     float64 `yaml:"max_speed"`      // Soft cap on horizontal speed
}

// GripConfig tunes wheel slip detection and recovery. Loss is instant,
// recovery is gradual; the asymmetry makes surface transitions feel abrupt
// but forgiving.
type GripConfig struct {
	SlipThreshold float64 `yaml:"slip_threshold"` // Rad/s mismatch before slip flags
	SlipGripScale float64 `yaml:"slip_grip_scale"`
	RecoveryRate  float64 `yaml:"recovery_rate"` // Grip per second while not slipping
}

// SurfaceParams is one row of the surface material table.
type SurfaceParams struct {
	Friction       float64 `yaml:"friction"`
	StaticFriction float64 `yaml:"static_friction"`
	Restitution    float64 `yaml:"restitution"`
	ImpactScale    float64 `yaml:"impact_scale"` // Crash-threshold multiplier
}

// SurfacesConfig holds the six named surface types.
type SurfacesConfig struct {
	Normal   SurfaceParams `yaml:"normal"`
	Slippery SurfaceParams `yaml:"slippery"`
	Sticky   SurfaceParams `yaml:"sticky"`
	Bouncy   SurfaceParams `yaml:"bouncy"`
	Rough    SurfaceParams `yaml:"rough"`
	Metal    SurfaceParams `yaml:"metal"`
}

// CrashConfig tunes the crash classifier.
type CrashConfig struct {
	ImpactThreshold  float64 `yaml:"impact_threshold"`   // Base crash speed, scaled per surface
	HardFlipAngle    float64 `yaml:"hard_flip_angle"`    // Degrees from upright; beyond = crash
	RecoverableAngle float64 `yaml:"recoverable_angle"`  // Flip-timer territory below this
	DangerZone       float64 `yaml:"danger_zone"`        // Fraction of recoverable angle
	SpinThreshold    float64 `yaml:"spin_threshold"`     // Deg/s; fast spin in danger zone crashes
	FlipTimeoutTicks int     `yaml:"flip_timeout_ticks"` // Continuous flip before forced crash
	StuckSpeed       float64 `yaml:"stuck_speed"`        // Below this counts as stuck
	StuckTicks       int     `yaml:"stuck_ticks"`        // Stuck window before crash
	FallMargin       float64 `yaml:"fall_margin"`        // Below area bottom + margin = fall
}

// LivesConfig tunes the lives and respawn machine.
type LivesConfig struct {
	Start              int `yaml:"start"`
	Max                int `yaml:"max"`
	RespawnTicks       int `yaml:"respawn_ticks"` // Full fade-out + fade-in duration
	InvincibilityTicks int `yaml:"invincibility_ticks"`
}

// ScoreConfig tunes collectible values and the extra-life threshold.
type ScoreConfig struct {
	Coin        int `yaml:"coin"`
	Gem         int `yaml:"gem"`
	LifeForNext int `yaml:"life_for_next"` // Score step per bonus life
}

// CameraConfig tunes area transitions.
type CameraConfig struct {
	TransitionTicks int     `yaml:"transition_ticks"`
	DefaultZoom     float64 `yaml:"default_zoom"`
	EdgeThreshold   float64 `yaml:"edge_threshold"` // Boundary-proximity query distance
}

// MechConfig carries per-type mechanism defaults that authored placements
// override per instance.
type MechConfig struct {
	Deadzone         float64 `yaml:"deadzone"` // Joystick deflection floor
	PlatformW        float64 `yaml:"platform_w"`
	PlatformH        float64 `yaml:"platform_h"`
	GearRate         float64 `yaml:"gear_rate"` // Degrees per second
	GearReturnRate   float64 `yaml:"gear_return_rate"`
	GearMaxAngle     float64 `yaml:"gear_max_angle"`
	LiftSpeed        float64 `yaml:"lift_speed"` // Units per second
	LiftHeight       float64 `yaml:"lift_height"`
	FanLiftSpeed     float64 `yaml:"fan_lift_speed"` // Lift level per second
	FanFallSpeed     float64 `yaml:"fan_fall_speed"`
	LaunchCharge     int     `yaml:"launch_charge_ticks"`
	LaunchMinCharge  float64 `yaml:"launch_min_charge"`
	LaunchImpulseMin float64 `yaml:"launch_impulse_min"`
	LaunchImpulseMax float64 `yaml:"launch_impulse_max"`
	LaunchCooldown   int     `yaml:"launch_cooldown_ticks"`
	AutoRotateRate   float64 `yaml:"auto_rotate_rate"`
	AutoResetTicks   int     `yaml:"auto_reset_ticks"`
	BeltSpeed        float64 `yaml:"belt_speed"`
}
