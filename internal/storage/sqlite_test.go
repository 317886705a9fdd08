package storage

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndBestRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunEntry{
		{CourseID: "rolling-hills", Completed: true, Ticks: 5400, Deaths: 1, Checkpoints: 3, Score: 320},
		{CourseID: "rolling-hills", Completed: false, Ticks: 1200, Deaths: 3, Checkpoints: 1, Score: 90},
		{CourseID: "rolling-hills", Completed: true, Ticks: 7200, Deaths: 0, Checkpoints: 3, Score: 510},
		{CourseID: "gear-works", Completed: true, Ticks: 3000, Deaths: 0, Checkpoints: 2, Score: 200},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	best, err := store.BestRuns("rolling-hills", 10)
	if err != nil {
		t.Fatalf("BestRuns failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("got %d runs, want 3", len(best))
	}
	// Completed runs first, highest score first.
	if best[0].Score != 510 || best[1].Score != 320 {
		t.Errorf("order wrong: %d, %d", best[0].Score, best[1].Score)
	}
	if !best[0].Completed {
		t.Error("completed run should rank first")
	}
	if best[2].Score != 90 || best[2].Completed {
		t.Errorf("incomplete run should rank last, got %+v", best[2])
	}
}

func TestBestRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveRun(RunEntry{CourseID: "c", Score: i * 10}); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	best, err := store.BestRuns("c", 5)
	if err != nil {
		t.Fatalf("BestRuns failed: %v", err)
	}
	if len(best) != 5 {
		t.Fatalf("got %d runs, want 5", len(best))
	}

	// Zero limit falls back to the default of 10.
	best, err = store.BestRuns("c", 0)
	if err != nil {
		t.Fatalf("BestRuns failed: %v", err)
	}
	if len(best) != 10 {
		t.Fatalf("got %d runs with default limit, want 10", len(best))
	}
}

func TestFastestRun(t *testing.T) {
	store := openTestStore(t)

	if run, err := store.FastestRun("empty"); err != nil || run != nil {
		t.Fatalf("empty course: run=%v err=%v, want nil/nil", run, err)
	}

	store.SaveRun(RunEntry{CourseID: "c", Completed: false, Ticks: 100})
	store.SaveRun(RunEntry{CourseID: "c", Completed: true, Ticks: 9000})
	store.SaveRun(RunEntry{CourseID: "c", Completed: true, Ticks: 4500})

	run, err := store.FastestRun("c")
	if err != nil {
		t.Fatalf("FastestRun failed: %v", err)
	}
	if run == nil || run.Ticks != 4500 {
		t.Fatalf("fastest = %+v, want 4500 ticks", run)
	}
}

func TestBestScore(t *testing.T) {
	store := openTestStore(t)

	score, err := store.BestScore("none")
	if err != nil {
		t.Fatalf("BestScore failed: %v", err)
	}
	if score != 0 {
		t.Fatalf("empty course best = %d, want 0", score)
	}

	store.SaveRun(RunEntry{CourseID: "c", Score: 100})
	store.SaveRun(RunEntry{CourseID: "c", Score: 250})

	score, err = store.BestScore("c")
	if err != nil {
		t.Fatalf("BestScore failed: %v", err)
	}
	if score != 250 {
		t.Fatalf("best = %d, want 250", score)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunEntry{CourseID: "a", Score: 1})
	store.SaveRun(RunEntry{CourseID: "b", Score: 2})

	if err := store.ClearRuns("a"); err != nil {
		t.Fatalf("ClearRuns failed: %v", err)
	}

	runs, _ := store.BestRuns("a", 10)
	if len(runs) != 0 {
		t.Fatalf("course a still has %d runs", len(runs))
	}
	runs, _ = store.BestRuns("b", 10)
	if len(runs) != 1 {
		t.Fatalf("course b should be untouched, has %d runs", len(runs))
	}
}
