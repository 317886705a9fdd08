package core

import (
	"math"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{180, 180},
		{181, -179},
		{-180, 180},
		{350, -10},
		{-350, 10},
		{720, 0},
		{540, 180},
	}

	for _, c := range cases {
		got := NormalizeAngle(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestVec2Rotate(t *testing.T) {
	v := V(1, 0).Rotate(DegToRad(90))
	if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("Rotate 90 deg: got (%v,%v), want (0,1)", v.X, v.Y)
	}

	// Rotating forward then back must round-trip
	orig := V(3, -4)
	back := orig.Rotate(DegToRad(37)).Rotate(DegToRad(-37))
	if math.Abs(back.X-orig.X) > 1e-9 || math.Abs(back.Y-orig.Y) > 1e-9 {
		t.Errorf("Rotate round-trip: got (%v,%v), want (%v,%v)", back.X, back.Y, orig.X, orig.Y)
	}
}

func TestEaseOutCubic(t *testing.T) {
	if got := EaseOutCubic(0); got != 0 {
		t.Errorf("EaseOutCubic(0) = %v, want 0", got)
	}
	if got := EaseOutCubic(1); got != 1 {
		t.Errorf("EaseOutCubic(1) = %v, want 1", got)
	}

	// Decelerating: first half covers more than half the distance
	if got := EaseOutCubic(0.5); got <= 0.5 {
		t.Errorf("EaseOutCubic(0.5) = %v, want > 0.5", got)
	}

	// Monotonic
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("EaseOutCubic not monotonic at t=%v", float64(i)/100)
		}
		prev = v
	}
}

func TestFRectContains(t *testing.T) {
	r := NewFRect(10, 20, 100, 50)

	if !r.Contains(V(10, 20)) {
		t.Error("Top-left corner should be contained")
	}
	if r.Contains(V(110, 70)) {
		t.Error("Bottom-right corner should be exclusive")
	}
	if !r.Contains(V(60, 45)) {
		t.Error("Center should be contained")
	}
	if r.Contains(V(9.999, 45)) {
		t.Error("Point left of rect should not be contained")
	}
}

func TestFRectOverlapsHorizontally(t *testing.T) {
	a := NewFRect(0, 0, 100, 50)
	b := NewFRect(90, 200, 100, 50) // Far below but sharing x-extent
	c := NewFRect(200, 0, 50, 50)

	if !a.OverlapsHorizontally(b) {
		t.Error("a and b share horizontal extent")
	}
	if a.OverlapsHorizontally(c) {
		t.Error("a and c do not share horizontal extent")
	}
}

func TestLerpVec(t *testing.T) {
	a := V(0, 0)
	b := V(10, -20)

	mid := LerpVec(a, b, 0.5)
	if mid.X != 5 || mid.Y != -10 {
		t.Errorf("LerpVec midpoint = (%v,%v), want (5,-10)", mid.X, mid.Y)
	}
	if got := LerpVec(a, b, 0); got != a {
		t.Errorf("LerpVec(0) = %v, want %v", got, a)
	}
	if got := LerpVec(a, b, 1); got != b {
		t.Errorf("LerpVec(1) = %v, want %v", got, b)
	}
}
