package progression

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

func def(pt models.ProgressionType) models.ExerciseDef {
	return models.ExerciseDef{
		ID:              "e",
		Name:            "E",
		StartWeight:     40,
		MinimumWeight:   20,
		RepRange:        [2]int{5, 8},
		Increment:       2.5,
		Unit:            models.UnitKg,
		Sets:            5,
		ProgressionType: pt,
		Active:          true,
	}
}

// TestScenarioRep walks the four-session rep scenario: reps up, weight up,
// a free miss, then a weight cut because reps are already at the floor.
func TestScenarioRep(t *testing.T) {
	d := def(models.ProgressionRep)
	st := models.NewProgress(d)

	steps := []struct {
		status     models.SessionStatus
		wantWeight float64
		wantReps   int
		wantFails  int
		wantChange string
	}{
		{models.StatusCompleted, 40, 6, 0, "E: 5 → 6 reps"},
		{models.StatusCompleted, 42.5, 5, 0, "E: 40kg → 42.5kg (5 reps)"},
		{models.StatusFailed, 42.5, 5, 1, "E: Failed (1/2)"},
		{models.StatusFailed, 40, 5, 0, "E: Failed (2/2) - 42.5kg → 40kg"},
	}
	for i, s := range steps {
		var change string
		st, change = Apply(d, st, s.status, i+1)
		if st.CurrentWeight != s.wantWeight {
			t.Errorf("session %d: weight = %v, want %v", i+1, st.CurrentWeight, s.wantWeight)
		}
		if st.TargetReps != s.wantReps {
			t.Errorf("session %d: reps = %d, want %d", i+1, st.TargetReps, s.wantReps)
		}
		if st.FailCount != s.wantFails {
			t.Errorf("session %d: failCount = %d, want %d", i+1, st.FailCount, s.wantFails)
		}
		if change != s.wantChange {
			t.Errorf("session %d: change = %q, want %q", i+1, change, s.wantChange)
		}
	}
}

// TestRepCycleIgnoresRangeWidth verifies the rep cycle is a fixed two-state
// alternation regardless of how wide the range is.
func TestRepCycleIgnoresRangeWidth(t *testing.T) {
	d := def(models.ProgressionRep)
	d.RepRange = [2]int{5, 15}
	st := models.NewProgress(d)

	st, _ = Apply(d, st, models.StatusCompleted, 1)
	if st.TargetReps != 6 || st.ProgressionPhase != models.PhaseWeight {
		t.Fatalf("after first success reps=%d phase=%s, want 6 weight", st.TargetReps, st.ProgressionPhase)
	}
	st, _ = Apply(d, st, models.StatusCompleted, 2)
	if st.TargetReps != 5 || st.CurrentWeight != 42.5 || st.ProgressionPhase != models.PhaseReps {
		t.Fatalf("after second success reps=%d weight=%v phase=%s, want 5 42.5 reps", st.TargetReps, st.CurrentWeight, st.ProgressionPhase)
	}
	if st.LastWeightIncrease != 2 {
		t.Errorf("lastWeightIncrease = %d, want 2", st.LastWeightIncrease)
	}
}

// TestRepFailureDropsRepsBeforeWeight verifies the reps buffer: a deload at
// elevated reps costs reps, not weight.
func TestRepFailureDropsRepsBeforeWeight(t *testing.T) {
	d := def(models.ProgressionRep)
	st := models.NewProgress(d)
	st.TargetReps = 6
	st.ProgressionPhase = models.PhaseWeight

	st, _ = Apply(d, st, models.StatusFailed, 1)
	st, change := Apply(d, st, models.StatusFailed, 2)
	if st.TargetReps != 5 || st.CurrentWeight != 40 {
		t.Errorf("reps=%d weight=%v, want 5 40", st.TargetReps, st.CurrentWeight)
	}
	if st.ProgressionPhase != models.PhaseReps {
		t.Errorf("phase = %s, want reps", st.ProgressionPhase)
	}
	if want := "E: Failed (2/2) - 6 → 5 reps"; change != want {
		t.Errorf("change = %q, want %q", change, want)
	}
}

// TestSimpleFailureStreak verifies that only every second consecutive failure
// cuts weight, by exactly one increment, and resets the counter.
func TestSimpleFailureStreak(t *testing.T) {
	d := def(models.ProgressionSimple)
	st := models.NewProgress(d)

	want := []float64{40, 37.5, 37.5, 35, 35, 32.5}
	for i, w := range want {
		st, _ = Apply(d, st, models.StatusFailed, i+1)
		if st.CurrentWeight != w {
			t.Errorf("failure %d: weight = %v, want %v", i+1, st.CurrentWeight, w)
		}
		wantFails := (i + 1) % 2
		if st.FailCount != wantFails {
			t.Errorf("failure %d: failCount = %d, want %d", i+1, st.FailCount, wantFails)
		}
	}
}

// TestWeightNeverBelowFloor verifies long failure streaks stop at the
// minimum weight and report it.
func TestWeightNeverBelowFloor(t *testing.T) {
	for _, pt := range []models.ProgressionType{models.ProgressionSimple, models.ProgressionRep} {
		d := def(pt)
		d.MinimumWeight = 35
		st := models.NewProgress(d)

		var change string
		for i := 0; i < 20; i++ {
			st, change = Apply(d, st, models.StatusFailed, i+1)
			if st.CurrentWeight < d.MinimumWeight {
				t.Fatalf("%s: weight %v dropped below floor %v", pt, st.CurrentWeight, d.MinimumWeight)
			}
		}
		if st.CurrentWeight != 35 {
			t.Errorf("%s: weight = %v, want 35", pt, st.CurrentWeight)
		}
		if want := "E: Failed (2/2) - already at minimum weight (35kg)"; change != want {
			t.Errorf("%s: change = %q, want %q", pt, change, want)
		}
	}
}

// TestFloorDefaultsToStartWeight verifies that a definition loaded without a
// minimum weight never deloads below its start weight.
func TestFloorDefaultsToStartWeight(t *testing.T) {
	start := 40.0
	d := models.CompleteExercise(models.ExerciseRecord{
		Name:        "E",
		StartWeight: &start,
		ProgressionType: func() *models.ProgressionType {
			p := models.ProgressionSimple
			return &p
		}(),
	})
	st := models.NewProgress(d)
	st, _ = Apply(d, st, models.StatusFailed, 1)
	st, _ = Apply(d, st, models.StatusFailed, 2)
	if st.CurrentWeight != 40 {
		t.Errorf("weight = %v, want 40", st.CurrentWeight)
	}
}

// TestNoneProgression verifies none-type exercises only count failures and
// never move weight or reps.
func TestNoneProgression(t *testing.T) {
	d := def(models.ProgressionNone)
	st := models.NewProgress(d)

	var change string
	for i := 1; i <= 5; i++ {
		st, change = Apply(d, st, models.StatusFailed, i)
		if st.FailCount != i {
			t.Errorf("failure %d: failCount = %d, want %d", i, st.FailCount, i)
		}
	}
	if change != "E: Failed (5)" {
		t.Errorf("change = %q, want %q", change, "E: Failed (5)")
	}
	if st.CurrentWeight != 40 || st.TargetReps != 5 {
		t.Errorf("weight=%v reps=%d, want 40 5", st.CurrentWeight, st.TargetReps)
	}

	st, change = Apply(d, st, models.StatusCompleted, 6)
	if st.FailCount != 0 {
		t.Errorf("failCount after success = %d, want 0", st.FailCount)
	}
	if change != "E: Completed" {
		t.Errorf("change = %q, want %q", change, "E: Completed")
	}
	if st.CurrentWeight != 40 || st.TargetReps != 5 {
		t.Errorf("weight=%v reps=%d after success, want 40 5", st.CurrentWeight, st.TargetReps)
	}
}

// TestSimpleSuccess verifies a simple success adds one increment and marks
// the weight as new for this session.
func TestSimpleSuccess(t *testing.T) {
	d := def(models.ProgressionSimple)
	st := models.NewProgress(d)
	st.FailCount = 1

	st, change := Apply(d, st, models.StatusCompleted, 7)
	if st.CurrentWeight != 42.5 {
		t.Errorf("weight = %v, want 42.5", st.CurrentWeight)
	}
	if st.FailCount != 0 {
		t.Errorf("failCount = %d, want 0", st.FailCount)
	}
	if st.LastWeightIncrease != 7 {
		t.Errorf("lastWeightIncrease = %d, want 7", st.LastWeightIncrease)
	}
	if st.PreviousWeight != 40 {
		t.Errorf("previousWeight = %v, want 40", st.PreviousWeight)
	}
	if want := "E: 40kg → 42.5kg"; change != want {
		t.Errorf("change = %q, want %q", change, want)
	}
}

// TestIncompleteLeavesStateAlone verifies that pending and missing statuses
// change nothing except the working counters.
func TestIncompleteLeavesStateAlone(t *testing.T) {
	d := def(models.ProgressionSimple)
	st := models.NewProgress(d)
	st.FailCount = 1
	st.CurrentSet = 3
	st.CompletedSets = 2

	for _, status := range []models.SessionStatus{models.StatusPending, ""} {
		got, change := Apply(d, st, status, 9)
		if change != "E: Incomplete" {
			t.Errorf("status %q: change = %q, want %q", status, change, "E: Incomplete")
		}
		if got.FailCount != 1 || got.CurrentWeight != 40 || got.TargetReps != 5 {
			t.Errorf("status %q: state mutated: %+v", status, got)
		}
		if got.CurrentSet != 1 || got.CompletedSets != 0 || got.LastSession != 9 {
			t.Errorf("status %q: counters = (%d, %d, %d), want (1, 0, 9)", status, got.CurrentSet, got.CompletedSets, got.LastSession)
		}
	}
}

// TestFractionalIncrementsStayClean verifies repeated small increments do not
// accumulate float noise in the displayed weight.
func TestFractionalIncrementsStayClean(t *testing.T) {
	d := def(models.ProgressionSimple)
	d.Increment = 0.1
	st := models.NewProgress(d)
	st.CurrentWeight = 0.2

	st, change := Apply(d, st, models.StatusCompleted, 1)
	if st.CurrentWeight != 0.3 {
		t.Errorf("weight = %v, want 0.3", st.CurrentWeight)
	}
	if want := "E: 0.2kg → 0.3kg"; change != want {
		t.Errorf("change = %q, want %q", change, want)
	}
}
