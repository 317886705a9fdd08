package sim

import (
	"math"
	"testing"

	"github.com/vovakirdan/tiltcart/internal/config"
)

func TestSurfaceNameRoundTrip(t *testing.T) {
	for _, s := range []SurfaceType{SurfaceNormal, SurfaceSlippery, SurfaceSticky, SurfaceBouncy, SurfaceRough, SurfaceMetal} {
		if got := SurfaceFromName(s.String()); got != s {
			t.Errorf("round trip %v -> %q -> %v", s, s.String(), got)
		}
	}
	if SurfaceFromName("lava") != SurfaceNormal {
		t.Error("unknown surface should fall back to normal")
	}
	if SurfaceFromName("") != SurfaceNormal {
		t.Error("empty surface should fall back to normal")
	}
}

func TestBouncyImpactScaleInfinite(t *testing.T) {
	table := NewSurfaceTable(config.DefaultConfig().Surfaces)
	if !math.IsInf(table.ImpactScale(SurfaceBouncy), 1) {
		t.Fatalf("bouncy scale = %f, want +Inf", table.ImpactScale(SurfaceBouncy))
	}
	if table.ImpactScale(SurfaceNormal) != 1 {
		t.Fatalf("normal scale = %f, want 1", table.ImpactScale(SurfaceNormal))
	}
}

func TestGripLossInstantRecoveryGradual(t *testing.T) {
	cfg := config.DefaultConfig().Grip
	dt := 1.0 / 60

	w := WheelState{Contact: true, Grip: 1}

	// Big mismatch between wheel spin and cart speed: instant loss.
	w.AngularVelocity = 50
	updateGrip(&w, 0, 10, 1, cfg, dt)
	if !w.Slip {
		t.Fatal("large spin mismatch should flag slip")
	}
	if w.Grip != cfg.SlipGripScale {
		t.Fatalf("grip = %f on slip, want instant drop to %f", w.Grip, cfg.SlipGripScale)
	}

	// Mismatch gone: grip climbs back linearly, not instantly.
	w.AngularVelocity = 0
	updateGrip(&w, 0, 10, 1, cfg, dt)
	if w.Slip {
		t.Fatal("matched speeds should clear slip")
	}
	want := cfg.SlipGripScale + cfg.RecoveryRate*dt
	if math.Abs(w.Grip-want) > 1e-9 {
		t.Fatalf("grip = %f after one tick of recovery, want %f", w.Grip, want)
	}

	// Full recovery caps at 1.
	for i := 0; i < 600; i++ {
		updateGrip(&w, 0, 10, 1, cfg, dt)
	}
	if w.Grip != 1 {
		t.Fatalf("grip = %f after long recovery, want 1", w.Grip)
	}
}

func TestStaticFrictionScalesSlipThreshold(t *testing.T) {
	def := config.DefaultConfig()
	cfg := def.Grip
	table := NewSurfaceTable(def.Surfaces)
	dt := 1.0 / 60

	// A mismatch between the base threshold scaled by slippery and by
	// sticky static friction: breaks loose on ice, holds on tar.
	w := WheelState{Contact: true, Grip: 1, AngularVelocity: 2.0}

	updateGrip(&w, 0, 10, table.Params(SurfaceSlippery).StaticFriction, cfg, dt)
	if !w.Slip {
		t.Fatal("slippery surface should break loose at this mismatch")
	}

	w = WheelState{Contact: true, Grip: 1, AngularVelocity: 2.0}
	updateGrip(&w, 0, 10, table.Params(SurfaceSticky).StaticFriction, cfg, dt)
	if w.Slip {
		t.Fatal("sticky surface should hold at this mismatch")
	}
	if w.Grip != 1 {
		t.Fatalf("grip = %f, holding contact should not cost grip", w.Grip)
	}
}

func TestGripIgnoredAirborne(t *testing.T) {
	cfg := config.DefaultConfig().Grip
	w := WheelState{Contact: false, Grip: 0.7, AngularVelocity: 100}

	updateGrip(&w, 0, 10, 1, cfg, 1.0/60)
	if w.Slip {
		t.Fatal("airborne wheels never slip")
	}
	if w.Grip != 0.7 {
		t.Fatalf("grip = %f, airborne grip should hold", w.Grip)
	}
}
