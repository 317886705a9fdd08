package sim

import (
	"github.com/vovakirdan/tiltcart/internal/core"
	"github.com/vovakirdan/tiltcart/internal/course"
)

// Checkpoints tracks per-area checkpoint activation and the current
// respawn anchor. Activation is idempotent: a checkpoint activates at
// most once, and the anchor follows the most recently activated
// checkpoint.
type Checkpoints struct {
	anchors   []course.Spawn
	activated []bool
	reachedAt []uint64 // Tick of first activation, valid when activated
	lastIndex int      // Most recently activated index, -1 before the first
	anchor    course.Spawn
	start     course.Spawn
}

// NewCheckpoints builds the tracker from a course. The respawn anchor
// starts at the course spawn until the first checkpoint activates.
func NewCheckpoints(c *course.Course) *Checkpoints {
	cp := &Checkpoints{
		anchors:   make([]course.Spawn, len(c.Areas)),
		activated: make([]bool, len(c.Areas)),
		reachedAt: make([]uint64, len(c.Areas)),
		lastIndex: -1,
		anchor:    c.Start,
		start:     c.Start,
	}
	for i, a := range c.Areas {
		cp.anchors[i] = course.Spawn{Pos: a.Checkpoint.Pos, Angle: a.Checkpoint.Angle}
	}
	return cp
}

// Activate marks the checkpoint of one area reached. Re-entering an
// already-activated checkpoint is a no-op; a first activation always
// moves the anchor to that checkpoint's pose, even when an area further
// along was reached earlier. Returns true on first activation.
func (cp *Checkpoints) Activate(area int, now uint64, q *core.EventQueue) bool {
	if area < 0 || area >= len(cp.anchors) || cp.activated[area] {
		return false
	}
	cp.activated[area] = true
	cp.reachedAt[area] = now
	cp.lastIndex = area
	cp.anchor = cp.anchors[area]
	q.Emit(core.Event{Kind: core.EventCheckpoint, Tick: now, Pos: cp.anchors[area].Pos, Index: area})
	return true
}

// Activated reports whether an area's checkpoint has been reached.
func (cp *Checkpoints) Activated(area int) bool {
	return area >= 0 && area < len(cp.activated) && cp.activated[area]
}

// Count returns how many checkpoints have been activated.
func (cp *Checkpoints) Count() int {
	n := 0
	for _, a := range cp.activated {
		if a {
			n++
		}
	}
	return n
}

// Progress returns activated checkpoints as a fraction of the total.
func (cp *Checkpoints) Progress() float64 {
	if len(cp.activated) == 0 {
		return 0
	}
	return float64(cp.Count()) / float64(len(cp.activated))
}

// Unreached lists the areas whose checkpoints are still pending, in
// course order.
func (cp *Checkpoints) Unreached() []int {
	var out []int
	for i, a := range cp.activated {
		if !a {
			out = append(out, i)
		}
	}
	return out
}

// Anchor returns the current respawn pose.
func (cp *Checkpoints) Anchor() course.Spawn {
	return cp.anchor
}

// Reset clears all activations and moves the anchor back to the course
// spawn.
func (cp *Checkpoints) Reset() {
	for i := range cp.activated {
		cp.activated[i] = false
		cp.reachedAt[i] = 0
	}
	cp.lastIndex = -1
	cp.anchor = cp.start
}
