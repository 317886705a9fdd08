package sim

import (
	"testing"

	"github.com/vovakirdan/tiltcart/internal/config"
	"github.com/vovakirdan/tiltcart/internal/core"
)

func testTracker() *AreaTracker {
	return NewAreaTracker(threeAreaCourse(), config.DefaultConfig().Camera)
}

func TestAreaStartsAtSpawn(t *testing.T) {
	tr := testTracker()
	if tr.Current() != 0 {
		t.Fatalf("current = %d, want 0", tr.Current())
	}
	cam := tr.Camera()
	if cam.Bounds.X != 0 || cam.Bounds.W != 960 {
		t.Fatalf("camera should frame area 0, got %+v", cam.Bounds)
	}
}

func TestAreaCrossingStartsTransition(t *testing.T) {
	tr := testTracker()
	q := &core.EventQueue{}
	ticks := config.DefaultConfig().Camera.TransitionTicks

	// Cart crosses into area 1.
	tr.Update(100, core.V(1000, 200), q)
	if tr.Current() != 1 {
		t.Fatalf("current = %d, want 1", tr.Current())
	}
	ev := findEvent(q.Drain(), core.EventAreaChange)
	if ev == nil || ev.Index != 1 {
		t.Fatalf("expected area change event for index 1, got %+v", ev)
	}

	cam := tr.Camera()
	if !cam.Transitioning {
		t.Fatal("crossing should start a camera transition")
	}
	if cam.Bounds.X >= 960 {
		t.Fatal("camera should still be interpolating, not snapped")
	}

	// Ease-out: early progress covers more ground than late progress.
	tr.Update(100+uint64(ticks)/4, core.V(1000, 200), q)
	early := tr.Camera().Bounds.X
	if early <= 0 {
		t.Fatal("camera should have moved by a quarter of the window")
	}
	if early < 960*core.EaseOutCubic(0.25)-1 || early > 960*core.EaseOutCubic(0.25)+1 {
		t.Fatalf("camera x = %f, want ease-out-cubic pacing", early)
	}

	// Past the window the camera snaps to the new framing.
	tr.Update(100+uint64(ticks), core.V(1000, 200), q)
	cam = tr.Camera()
	if cam.Transitioning {
		t.Fatal("transition should be finished")
	}
	if cam.Bounds.X != 960 {
		t.Fatalf("camera x = %f, want 960", cam.Bounds.X)
	}
}

func TestAreaOutsideEveryBoundsKeepsPrevious(t *testing.T) {
	tr := testTracker()
	q := &core.EventQueue{}

	tr.Update(1, core.V(500, 5000), q) // Mid-fall, below every area
	if tr.Current() != 0 {
		t.Fatalf("falling outside all areas should keep the previous area, got %d", tr.Current())
	}
	if len(q.Drain()) != 0 {
		t.Fatal("no events for an out-of-bounds position")
	}
}

func TestNearEdge(t *testing.T) {
	tr := testTracker()
	d := config.DefaultConfig().Camera.EdgeThreshold

	e := tr.NearEdge(core.V(960-d/2, 270))
	if !e.Right || e.Left || e.Top || e.Bottom {
		t.Fatalf("expected right edge only, got %+v", e)
	}

	e = tr.NearEdge(core.V(480, 270))
	if e.Any() {
		t.Fatalf("area center should be near no edge, got %+v", e)
	}
}

func TestAdjacentAreas(t *testing.T) {
	tr := testTracker()

	adj := tr.Adjacent(1)
	if len(adj) != 2 || adj[0] != 0 || adj[1] != 2 {
		t.Fatalf("adjacent(1) = %v, want [0 2]", adj)
	}

	adj = tr.Adjacent(0)
	found := false
	for _, i := range adj {
		if i == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("adjacent(0) = %v, should include 1", adj)
	}
}
