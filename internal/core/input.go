package core

// TiltVector is a pre-filtered accelerometer reading. The platform layer is
// responsible for sampling and smoothing; the simulation applies no further
// filtering to these values.
type TiltVector struct {
	X, Y  float64 // Normalized tilt, each in [-1, 1]
	Pitch float64 // Raw pitch in degrees
	Roll  float64 // Raw roll in degrees
}

// TiltSource supplies one tilt reading per tick. Injected into the platform
// rather than shared as a global so multiple sessions (and tests) never
// fight over mutable state.
type TiltSource interface {
	Sample() TiltVector
}

// Joystick is a polar on-screen joystick reading.
type Joystick struct {
	Angle     float64 // Direction in degrees
	Magnitude float64 // Deflection in [0, 1]
}

// Active reports whether the stick is deflected beyond the deadzone.
func (j Joystick) Active(deadzone float64) bool {
	return j.Magnitude > deadzone
}

// Vector returns the stick deflection as a cartesian vector.
func (j Joystick) Vector() Vec2 {
	return V(1, 0).Rotate(DegToRad(j.Angle)).Scale(j.Magnitude)
}

// InputSnapshot is the immutable per-tick input state consumed by the
// simulation. Everything in it is already debounced and smoothed by the
// platform layer.
type InputSnapshot struct {
	Tilt TiltVector

	// ButtonA and ButtonB are the two on-screen action buttons.
	ButtonA bool
	ButtonB bool

	// LeftStick and RightStick are the two on-screen joysticks.
	LeftStick  Joystick
	RightStick Joystick

	// Blow is the sustained microphone "blow" signal.
	Blow bool

	// Meta actions handled by the session itself rather than a mechanism.
	Pause   bool
	Restart bool
}
