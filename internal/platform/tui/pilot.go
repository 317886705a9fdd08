package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tiltcart/internal/core"
)

// Hold window and smoothing for keyboard-synthesized controls. Terminals
// deliver key repeats, not key-up events, so a control counts as held
// while repeats keep arriving within the window.
const (
	holdWindowTicks = 8
	tiltRiseRate    = 0.12 // Tilt change per tick toward the held direction
	tiltFallRate    = 0.08 // Tilt decay per tick once released
)

// heldKey tracks the last tick a binding's repeat arrived.
type heldKey struct {
	until uint64
}

func (h *heldKey) press(now uint64) {
	h.until = now + holdWindowTicks
}

func (h *heldKey) held(now uint64) bool {
	return now < h.until
}

// KeyboardPilot synthesizes the simulation's tilt-and-touch input from
// terminal keys. Tilt ramps toward the held direction and decays back to
// level, which approximates the analog feel of a real accelerometer; the
// smoothing happens here because the simulation applies none of its own.
type KeyboardPilot struct {
	keys PlayKeyMap
	now  uint64

	tilt float64

	left, right           heldKey
	buttonA, buttonB      heldKey
	stickLeft, stickRight heldKey
	blow                  heldKey

	pause, restart heldKey
}

// NewKeyboardPilot creates a pilot with the given bindings.
func NewKeyboardPilot(keys PlayKeyMap) *KeyboardPilot {
	return &KeyboardPilot{keys: keys}
}

// HandleKey feeds one key message into the pilot. Quit is reported to the
// caller; everything else updates hold state.
func (p *KeyboardPilot) HandleKey(msg tea.KeyMsg) (quit bool) {
	switch {
	case key.Matches(msg, p.keys.Quit):
		return true
	case key.Matches(msg, p.keys.TiltLeft):
		p.left.press(p.now)
	case key.Matches(msg, p.keys.TiltRight):
		p.right.press(p.now)
	case key.Matches(msg, p.keys.ButtonA):
		p.buttonA.press(p.now)
	case key.Matches(msg, p.keys.ButtonB):
		p.buttonB.press(p.now)
	case key.Matches(msg, p.keys.StickLeft):
		p.stickLeft.press(p.now)
	case key.Matches(msg, p.keys.StickRight):
		p.stickRight.press(p.now)
	case key.Matches(msg, p.keys.Blow):
		p.blow.press(p.now)
	case key.Matches(msg, p.keys.Pause):
		p.pause.press(p.now)
	case key.Matches(msg, p.keys.Restart):
		p.restart.press(p.now)
	}
	return false
}

// Snapshot advances the pilot one tick and returns the synthesized input.
func (p *KeyboardPilot) Snapshot() core.InputSnapshot {
	p.now++

	target := 0.0
	if p.left.held(p.now) {
		target -= 1
	}
	if p.right.held(p.now) {
		target += 1
	}
	p.tilt = approach(p.tilt, target)

	var leftStick, rightStick core.Joystick
	switch {
	case p.stickLeft.held(p.now):
		leftStick = core.Joystick{Angle: 180, Magnitude: 1}
	case p.stickRight.held(p.now):
		leftStick = core.Joystick{Angle: 0, Magnitude: 1}
	}

	in := core.InputSnapshot{
		Tilt:       core.TiltVector{X: p.tilt, Roll: p.tilt * 45},
		ButtonA:    p.buttonA.held(p.now),
		ButtonB:    p.buttonB.held(p.now),
		LeftStick:  leftStick,
		RightStick: rightStick,
		Blow:       p.blow.held(p.now),
		Pause:      p.pause.held(p.now),
		Restart:    p.restart.held(p.now),
	}
	return in
}

// Tilt returns the current synthesized tilt for HUD display.
func (p *KeyboardPilot) Tilt() float64 {
	return p.tilt
}

func approach(v, target float64) float64 {
	rate := tiltFallRate
	if target != 0 {
		rate = tiltRiseRate
	}
	switch {
	case v < target-rate:
		return v + rate
	case v > target+rate:
		return v - rate
	default:
		return target
	}
}
