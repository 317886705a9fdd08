package physics

import (
	"testing"

	"github.com/vovakirdan/tiltcart/internal/core"
)

const gravityY = 900.0

func TestGravityPullsDynamicBodyDown(t *testing.T) {
	w := NewWorld(core.V(0, gravityY), 60, 4)
	defer w.Close()

	box := w.AddBox(core.V(0, 0), 20, 10, 1, Material{Friction: 0.5}, KindChassis, 0)

	for i := 0; i < 30; i++ {
		w.Step()
	}

	if box.Position().Y <= 0 {
		t.Errorf("Body did not fall: y = %v", box.Position().Y)
	}
	if box.Velocity().Y <= 0 {
		t.Errorf("Body has no downward velocity: vy = %v", box.Velocity().Y)
	}
}

func TestStaticFloorStopsFall(t *testing.T) {
	w := NewWorld(core.V(0, gravityY), 60, 4)
	defer w.Close()

	w.AddStaticBox(core.V(0, 100), 400, 20, 0, Material{Friction: 0.9}, KindTerrain)
	ball := w.AddCircle(core.V(0, 0), 10, 1, Material{Friction: 0.9}, KindWheel, 0)

	for i := 0; i < 300; i++ {
		w.Step()
	}

	// Resting on the floor top (floor top edge at y=90, ball radius 10)
	if y := ball.Position().Y; y > 85 {
		t.Errorf("Ball fell through floor: y = %v", y)
	}
	if v := ball.Velocity().Length(); v > 5 {
		t.Errorf("Ball still moving at rest: speed = %v", v)
	}
}

func TestContactEventsDrained(t *testing.T) {
	w := NewWorld(core.V(0, gravityY), 60, 4)
	defer w.Close()

	w.AddStaticBox(core.V(0, 100), 400, 20, 0, Material{Friction: 0.9}, KindTerrain)
	w.AddBox(core.V(0, 0), 20, 10, 1, Material{Friction: 0.9}, KindChassis, 0)

	var sawBegin bool
	for i := 0; i < 300 && !sawBegin; i++ {
		w.Step()
		for _, ev := range w.Drain() {
			if ev.Begin {
				sawBegin = true
				if ev.A.Kind() != KindChassis && ev.B.Kind() != KindChassis {
					t.Errorf("Contact event missing chassis participant: %v vs %v", ev.A.Kind(), ev.B.Kind())
				}
			}
		}
	}

	if !sawBegin {
		t.Fatal("No collision-begin event recorded for falling box")
	}

	// Drain clears the queue
	if len(w.Drain()) != 0 {
		t.Error("Second drain returned stale events")
	}
}

func TestSensorReportsWithoutBlocking(t *testing.T) {
	w := NewWorld(core.V(0, gravityY), 60, 4)
	defer w.Close()

	w.AddSensorBox(core.V(0, 50), 100, 100)
	box := w.AddBox(core.V(0, 0), 20, 10, 1, Material{Friction: 0.5}, KindChassis, 0)

	var sawSensor bool
	for i := 0; i < 120; i++ {
		w.Step()
		for _, ev := range w.Drain() {
			if ev.A.Kind() == KindSensor || ev.B.Kind() == KindSensor {
				sawSensor = true
			}
		}
	}

	if !sawSensor {
		t.Error("Sensor overlap produced no event")
	}
	// The sensor must not have stopped the box
	if box.Position().Y < 40 {
		t.Errorf("Sensor blocked the box: y = %v", box.Position().Y)
	}
}

func TestGroupFilterSuppressesSelfCollision(t *testing.T) {
	w := NewWorld(core.V(0, 0), 60, 4)
	defer w.Close()

	// Two overlapping bodies in the same group never collide
	a := w.AddBox(core.V(0, 0), 20, 20, 1, Material{}, KindChassis, 7)
	b := w.AddCircle(core.V(5, 0), 10, 1, Material{}, KindWheel, 7)

	for i := 0; i < 60; i++ {
		w.Step()
	}
	for _, ev := range w.Drain() {
		t.Errorf("Unexpected contact between grouped shapes: %v vs %v", ev.A.Kind(), ev.B.Kind())
	}

	_ = a
	_ = b
}

func TestShapeKindRecordedAtCreation(t *testing.T) {
	w := NewWorld(core.V(0, gravityY), 60, 4)
	defer w.Close()

	cases := []struct {
		name string
		body *Body
		want Kind
	}{
		{"box", w.AddBox(core.V(0, 0), 20, 10, 1, Material{}, KindChassis, 0), KindChassis},
		{"circle", w.AddCircle(core.V(50, 0), 10, 1, Material{}, KindWheel, 0), KindWheel},
		{"static", w.AddStaticBox(core.V(100, 0), 40, 10, 0, Material{}, KindHazard), KindHazard},
		{"kinematic", w.AddKinematicBox(core.V(150, 0), 40, 10, Material{}, KindPlatform), KindPlatform},
		{"sensor", w.AddSensorBox(core.V(200, 0), 40, 40), KindSensor},
	}

	for _, tc := range cases {
		if got := tc.body.Shapes()[0].Kind(); got != tc.want {
			t.Errorf("%s shape kind = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRemoveKeepsUnrelatedConstraints(t *testing.T) {
	w := NewWorld(core.V(0, gravityY), 60, 4)
	defer w.Close()

	a1 := w.AddBox(core.V(0, 0), 20, 10, 1, Material{}, KindChassis, 3)
	b1 := w.AddCircle(core.V(0, 10), 5, 1, Material{}, KindWheel, 3)
	w.AttachPivot(a1, b1, core.V(0, 10))

	a2 := w.AddBox(core.V(100, 0), 20, 10, 1, Material{}, KindChassis, 4)
	b2 := w.AddCircle(core.V(100, 10), 5, 1, Material{}, KindWheel, 4)
	w.AttachPivot(a2, b2, core.V(100, 10))

	w.Remove(b1)
	w.Remove(a1)

	if len(w.constraints) != 1 {
		t.Fatalf("constraints after removal = %d, want 1", len(w.constraints))
	}
	if rec := w.constraints[0]; rec.a != a2 || rec.b != b2 {
		t.Error("Surviving constraint does not join the untouched pair")
	}

	// The surviving joint still carries its pair through a step
	for i := 0; i < 30; i++ {
		w.Step()
	}
	if d := a2.Position().Sub(b2.Position()).Length(); d > 30 {
		t.Errorf("Jointed pair separated after unrelated removal: distance = %v", d)
	}
}

func TestRemoveBodyDropsConstraints(t *testing.T) {
	w := NewWorld(core.V(0, gravityY), 60, 4)
	defer w.Close()

	a := w.AddBox(core.V(0, 0), 20, 10, 1, Material{}, KindChassis, 3)
	b := w.AddCircle(core.V(0, 10), 5, 1, Material{}, KindWheel, 3)
	w.AttachPivot(a, b, core.V(0, 10))

	w.Remove(b)
	w.Remove(a)

	// Stepping an emptied world must not panic
	for i := 0; i < 10; i++ {
		w.Step()
	}
}
