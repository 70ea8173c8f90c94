package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

// TestRenameExerciseKeepsState verifies a rename changes the display name
// in every workout while progression stays attached to the ID.
func TestRenameExerciseKeepsState(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, seededStore(t))
	mustStart(t, tr, "Day A")
	completeExercise(t, tr, "e")
	tr.End(ctx, true)

	if err := tr.RenameExercise(ctx, "n", "Bike"); err != nil {
		t.Fatalf("RenameExercise: %v", err)
	}
	for _, w := range tr.Workouts() {
		for _, ex := range w.Exercises {
			if ex.ID == "n" && ex.Name != "Bike" {
				t.Errorf("%s still lists %q", w.Name, ex.Name)
			}
		}
	}

	if err := tr.RenameExercise(ctx, "e", "Bench"); err != nil {
		t.Fatalf("RenameExercise: %v", err)
	}
	ev, _ := tr.Exercise("e")
	if ev.Definition.Name != "Bench" || ev.Progress.TargetReps != 6 {
		t.Errorf("renamed exercise = %s at %d reps, want Bench at 6", ev.Definition.Name, ev.Progress.TargetReps)
	}

	var verr *models.ValidationError
	if err := tr.RenameExercise(ctx, "e", "S"); !errors.As(err, &verr) {
		t.Errorf("duplicate rename error = %v, want ValidationError", err)
	}
	if err := tr.RenameExercise(ctx, "missing", "X"); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("unknown rename error = %v, want ErrExerciseNotFound", err)
	}
}

// TestUpdateExerciseField verifies accepted edits apply everywhere and
// rejected edits leave the definition untouched.
func TestUpdateExerciseField(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, seededStore(t))

	def, err := tr.UpdateExerciseField(ctx, "n", models.FieldSets, "3")
	if err != nil {
		t.Fatalf("UpdateExerciseField: %v", err)
	}
	if def.Sets != 3 {
		t.Errorf("sets = %d, want 3", def.Sets)
	}
	for _, w := range tr.Workouts() {
		for _, ex := range w.Exercises {
			if ex.ID == "n" && ex.Sets != 3 {
				t.Errorf("%s copy has %d sets, want 3", w.Name, ex.Sets)
			}
		}
	}

	bad := []struct{ field, value string }{
		{models.FieldSets, "11"},
		{models.FieldIncrement, "0"},
		{models.FieldMinimumWeight, "50"},
		{models.FieldRepMax, "5"},
		{models.FieldUnit, "stone"},
		{models.FieldStartWeight, "heavy"},
	}
	for _, tt := range bad {
		_, err := tr.UpdateExerciseField(ctx, "e", tt.field, tt.value)
		var verr *models.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s=%q error = %v, want ValidationError", tt.field, tt.value, err)
		}
	}
	ev, _ := tr.Exercise("e")
	if ev.Definition != testCatalog().Workouts[0].Exercises[0] {
		t.Errorf("definition changed by rejected edits: %+v", ev.Definition)
	}
}

// TestUpdateExerciseFieldClampsProgress verifies raising the bounds pulls
// the current progression up to them.
func TestUpdateExerciseFieldClampsProgress(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, seededStore(t))

	if _, err := tr.UpdateExerciseField(ctx, "e", models.FieldMinimumWeight, "40"); err != nil {
		t.Fatalf("minimumWeight: %v", err)
	}
	if _, err := tr.UpdateExerciseField(ctx, "e", models.FieldRepMax, "10"); err != nil {
		t.Fatalf("repMax: %v", err)
	}
	if _, err := tr.UpdateExerciseField(ctx, "e", models.FieldRepMin, "7"); err != nil {
		t.Fatalf("repMin: %v", err)
	}
	ev, _ := tr.Exercise("e")
	if ev.Progress.CurrentWeight != 40 || ev.Progress.TargetReps != 7 {
		t.Errorf("progress = %v/%d, want 40/7", ev.Progress.CurrentWeight, ev.Progress.TargetReps)
	}
}

// TestAddExercise verifies new exercises get fresh IDs and that adding an
// existing ID shares the exercise.
func TestAddExercise(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, seededStore(t))

	def, err := tr.AddExercise(ctx, "Day B", models.ExerciseDef{
		Name: "Row", StartWeight: 50, MinimumWeight: 20, RepRange: [2]int{5, 8},
		Increment: 2.5, Unit: models.UnitKg, Sets: 5, ProgressionType: models.ProgressionRep, Active: true,
	})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	if def.ID == "" {
		t.Error("new exercise has no ID")
	}
	ev, err := tr.Exercise(def.ID)
	if err != nil || ev.Progress.CurrentWeight != 50 {
		t.Errorf("Exercise(new) = %+v, %v", ev.Progress, err)
	}

	shared, err := tr.AddExercise(ctx, "Day B", models.ExerciseDef{ID: "e"})
	if err != nil {
		t.Fatalf("AddExercise shared: %v", err)
	}
	if shared.Name != "E" || shared.Sets != 3 {
		t.Errorf("shared = %+v, want the existing E", shared)
	}
	if _, err := tr.AddExercise(ctx, "Day B", models.ExerciseDef{ID: "e"}); err == nil {
		t.Error("adding the same exercise twice succeeded")
	}

	_, err = tr.AddExercise(ctx, "Day B", models.ExerciseDef{
		Name: "Flat", StartWeight: 10, RepRange: [2]int{5, 5},
		Increment: 1, Unit: models.UnitKg, Sets: 3, ProgressionType: models.ProgressionRep,
	})
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("degenerate rep range error = %v, want ValidationError", err)
	}
}

// TestWorkoutEdits covers add, rename, move and remove of workouts.
func TestWorkoutEdits(t *testing.T) {
	ctx := context.Background()
	tr := newTracker(t, seededStore(t))

	if err := tr.AddWorkout(ctx, "  Day C "); err != nil {
		t.Fatalf("AddWorkout: %v", err)
	}
	var verr *models.ValidationError
	if err := tr.AddWorkout(ctx, "Day C"); !errors.As(err, &verr) {
		t.Errorf("duplicate AddWorkout error = %v, want ValidationError", err)
	}
	if err := tr.AddWorkout(ctx, "   "); !errors.As(err, &verr) {
		t.Errorf("blank AddWorkout error = %v, want ValidationError", err)
	}

	if err := tr.MoveWorkout(ctx, "Day C", 0); err != nil {
		t.Fatalf("MoveWorkout: %v", err)
	}
	if err := tr.MoveWorkout(ctx, "Day C", 3); !errors.As(err, &verr) {
		t.Errorf("out of range MoveWorkout error = %v, want ValidationError", err)
	}

	mustStart(t, tr, "Day A")
	if err := tr.RenameWorkout(ctx, "Day A", "Push"); err != nil {
		t.Fatalf("RenameWorkout: %v", err)
	}
	if cur := tr.View().Current; cur == nil || cur.Name != "Push" {
		t.Errorf("current workout = %+v, want Push", cur)
	}
	if err := tr.RemoveWorkout(ctx, "Push"); !errors.Is(err, ErrWorkoutInProgress) {
		t.Errorf("RemoveWorkout in progress error = %v, want ErrWorkoutInProgress", err)
	}

	var names []string
	for _, w := range tr.View().Workouts {
		names = append(names, w.Name)
	}
	want := []string{"Day C", "Push", "Day B"}
	if len(names) != len(want) {
		t.Fatalf("workouts = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("workouts = %v, want %v", names, want)
			break
		}
	}

	if err := tr.RemoveWorkout(ctx, "Day C"); err != nil {
		t.Fatalf("RemoveWorkout: %v", err)
	}
	if err := tr.RemoveWorkout(ctx, "Day C"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Errorf("second RemoveWorkout error = %v, want ErrWorkoutNotFound", err)
	}
}
