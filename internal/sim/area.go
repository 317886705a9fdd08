package sim

import (
	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
)

// CameraState is the view the renderer should show: interpolated bounds
// and zoom, plus transition progress for effects.
type CameraState struct {
	Bounds        core.FRect
	Zoom          float64
	Transitioning bool
	Progress      float64
}

// EdgeProximity reports which area edges the cart is close to.
type EdgeProximity struct {
	Left, Right, Top, Bottom bool
}

// Any reports whether the cart is near any edge.
func (e EdgeProximity) Any() bool {
	return e.Left || e.Right || e.Top || e.Bottom
}

// AreaTracker watches which course area contains the cart and eases the
// camera between area framings. Crossing a boundary starts an
// ease-out-cubic interpolation of both bounds and zoom; a crossing during
// a transition restarts it from the current interpolated framing, so the
// camera never jumps.
type AreaTracker struct {
	areas []course.Area
	cfg   config.CameraConfig

	current int
	cam     CameraState

	fromBounds core.FRect
	fromZoom   float64
	toBounds   core.FRect
	toZoom     float64
	transStart uint64
	transTicks int
	moving     bool
}

// NewAreaTracker starts the camera framed on the area containing the
// course spawn.
func NewAreaTracker(c *course.Course, cfg config.CameraConfig) *AreaTracker {
	t := &AreaTracker{areas: c.Areas, cfg: cfg}
	t.current = t.containing(c.Start.Pos)
	if t.current < 0 {
		t.current = 0
	}
	t.snapTo(t.current)
	return t
}

func (t *AreaTracker) zoomOf(i int) float64 {
	if z := t.areas[i].Zoom; z != 0 {
		return z
	}
	return t.cfg.DefaultZoom
}

func (t *AreaTracker) ticksOf(i int) int {
	if n := t.areas[i].TransitionTicks; n != 0 {
		return n
	}
	return t.cfg.TransitionTicks
}

func (t *AreaTracker) snapTo(i int) {
	t.cam = CameraState{Bounds: t.areas[i].Bounds, Zoom: t.zoomOf(i)}
	t.moving = false
}

// containing returns the first area whose bounds contain the point, or -1.
func (t *AreaTracker) containing(p core.Vec2) int {
	for i := range t.areas {
		if t.areas[i].Bounds.Contains(p) {
			return i
		}
	}
	return -1
}

// Update re-resolves the cart's containing area and advances any camera
// transition. A position outside every area (mid-fall, mid-launch) keeps
// the previous area.
func (t *AreaTracker) Update(now uint64, cartPos core.Vec2, q *core.EventQueue) {
	if i := t.containing(cartPos); i >= 0 && i != t.current {
		t.fromBounds = t.cam.Bounds
		t.fromZoom = t.cam.Zoom
		t.toBounds = t.areas[i].Bounds
		t.toZoom = t.zoomOf(i)
		t.transStart = now
		t.transTicks = t.ticksOf(i)
		t.moving = true
		t.current = i
		q.Emit(core.Event{Kind: core.EventAreaChange, Tick: now, Pos: cartPos, Index: i})
	}

	if !t.moving {
		return
	}

	p := float64(now-t.transStart) / float64(t.transTicks)
	if p >= 1 {
		t.snapTo(t.current)
		t.cam.Progress = 1
		return
	}

	e := core.EaseOutCubic(p)
	t.cam.Bounds = core.FRect{
		X: core.Lerp(t.fromBounds.X, t.toBounds.X, e),
		Y: core.Lerp(t.fromBounds.Y, t.toBounds.Y, e),
		W: core.Lerp(t.fromBounds.W, t.toBounds.W, e),
		H: core.Lerp(t.fromBounds.H, t.toBounds.H, e),
	}
	t.cam.Zoom = core.Lerp(t.fromZoom, t.toZoom, e)
	t.cam.Transitioning = true
	t.cam.Progress = p
}

// Current returns the index of the area containing the cart.
func (t *AreaTracker) Current() int {
	return t.current
}

// Camera returns the interpolated camera framing.
func (t *AreaTracker) Camera() CameraState {
	return t.cam
}

// NearEdge reports which edges of the current area the position is within
// the configured threshold of. The renderer uses it for transition hints.
func (t *AreaTracker) NearEdge(p core.Vec2) EdgeProximity {
	b := t.areas[t.current].Bounds
	d := t.cfg.EdgeThreshold
	return EdgeProximity{
		Left:   p.X-b.X < d,
		Right:  b.X+b.W-p.X < d,
		Top:    p.Y-b.Y < d,
		Bottom: b.Y+b.H-p.Y < d,
	}
}

// Adjacent lists the areas that share a boundary with the given area:
// course-order neighbors plus any area whose bounds touch it.
func (t *AreaTracker) Adjacent(i int) []int {
	var out []int
	for j := range t.areas {
		if j == i {
			continue
		}
		if j == i-1 || j == i+1 || borders(t.areas[i].Bounds, t.areas[j].Bounds) {
			out = append(out, j)
		}
	}
	return out
}

// borders reports whether two area rectangles touch or overlap.
func borders(a, b core.FRect) bool {
	return a.X <= b.X+b.W && b.X <= a.X+a.W && a.Y <= b.Y+b.H && b.Y <= a.Y+a.H
}

// Reset snaps the camera back to the area containing the spawn.
func (t *AreaTracker) Reset(spawn core.Vec2) {
	t.current = t.containing(spawn)
	if t.current < 0 {
		t.current = 0
	}
	t.snapTo(t.current)
	t.cam.Progress = 0
}

// FloorY returns the bottom edge of the current area, the reference line
// for fall crashes.
func (t *AreaTracker) FloorY() float64 {
	b := t.areas[t.current].Bounds
	return b.Y + b.H
}
