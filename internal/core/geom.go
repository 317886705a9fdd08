// Package core provides fundamental types and utilities shared by the
// simulation and the platform layers. It contains no external dependencies
// (especially no Bubble Tea and no physics engine) to keep game logic pure
// and testable.
package core

import "math"

// Vec2 is a 2D vector in world units. The simulation uses a screen-style
// coordinate system: +X right, +Y down, angles in degrees clockwise.
type Vec2 struct {
	X, Y float64
}

// V is a shorthand constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns the vector multiplied by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Normalize returns a unit-length copy of the vector, or the zero vector
// if the input has zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns the vector rotated by the given angle in radians.
func (v Vec2) Rotate(rad float64) Vec2 {
	sin, cos := math.Sincos(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// DistanceTo returns the distance between two points.
func (v Vec2) DistanceTo(o Vec2) float64 {
	return v.Sub(o).Length()
}

// FRect is an axis-aligned rectangle in world units.
type FRect struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewFRect creates a rectangle from its top-left corner and size.
func NewFRect(x, y, w, h float64) FRect {
	return FRect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r FRect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r FRect) Bottom() float64 {
	return r.Y + r.H
}

// Contains reports whether the point lies inside the rectangle.
func (r FRect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r FRect) Center() Vec2 {
	return Vec2{r.X + r.W/2, r.Y + r.H/2}
}

// OverlapsHorizontally reports whether two rectangles share any horizontal
// extent, regardless of their vertical placement. Used for adjacent-area
// lookups where course data keeps neighbouring bounds closely touching.
func (r FRect) OverlapsHorizontally(o FRect) bool {
	return r.X < o.Right() && o.X < r.Right()
}

// Lerp linearly interpolates between a and b by t in [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec linearly interpolates between two points by t in [0,1].
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// EaseOutCubic maps t in [0,1] onto a decelerating curve 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// NormalizeAngle wraps an angle in degrees into the half-open range
// (-180, 180]. Used for "distance from upright" comparisons where 350
// degrees must read as -10.
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// Rect is an axis-aligned rectangle in screen cells, used by the render
// surface. World-space code uses FRect instead.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new cell rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
