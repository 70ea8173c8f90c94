package models

import (
	"encoding/json"
	"testing"
)

// TestExerciseDefaultsApplied verifies that a minimal stored record gets the
// documented defaults, most importantly sets=5 when absent.
func TestExerciseDefaultsApplied(t *testing.T) {
	var def ExerciseDef
	if err := json.Unmarshal([]byte(`{"name":" Squat ","startWeight":60}`), &def); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if def.Name != "Squat" {
		t.Errorf("name = %q, want %q", def.Name, "Squat")
	}
	if def.Sets != DefaultSets {
		t.Errorf("sets = %d, want %d", def.Sets, DefaultSets)
	}
	if def.MinimumWeight != 60 {
		t.Errorf("minimumWeight = %v, want 60 (falls back to startWeight)", def.MinimumWeight)
	}
	if def.Unit != UnitKg {
		t.Errorf("unit = %q, want kg", def.Unit)
	}
	if def.ProgressionType != ProgressionNone {
		t.Errorf("progressionType = %q, want none", def.ProgressionType)
	}
	if !def.Active {
		t.Error("active = false, want true")
	}
	if def.ID != ExerciseIDFor("Squat") {
		t.Errorf("id = %q, want name-derived id", def.ID)
	}
}

// TestExplicitZeroMinimumKept verifies that minimumWeight 0 is a real floor
// rather than being treated as missing.
func TestExplicitZeroMinimumKept(t *testing.T) {
	var def ExerciseDef
	if err := json.Unmarshal([]byte(`{"name":"Calf raises","startWeight":7.5,"minimumWeight":0}`), &def); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if def.MinimumWeight != 0 {
		t.Errorf("minimumWeight = %v, want 0", def.MinimumWeight)
	}
}

// TestExerciseIDStable verifies that name-derived IDs are deterministic and
// an explicit ID always wins.
func TestExerciseIDStable(t *testing.T) {
	if ExerciseIDFor("Row") != ExerciseIDFor("Row") {
		t.Error("ExerciseIDFor is not deterministic")
	}
	if ExerciseIDFor("Row") == ExerciseIDFor("Rows") {
		t.Error("different names produced the same id")
	}

	var def ExerciseDef
	if err := json.Unmarshal([]byte(`{"id":"abc","name":"Row"}`), &def); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if def.ID != "abc" {
		t.Errorf("id = %q, want %q", def.ID, "abc")
	}
}

// TestBadEnumsFallBack verifies that unknown units and progression types in
// stored data fall back to defaults instead of failing the load.
func TestBadEnumsFallBack(t *testing.T) {
	var def ExerciseDef
	data := `{"name":"X","unit":"stone","progressionType":"linear","sets":0,"increment":-1,"repRange":[9,3]}`
	if err := json.Unmarshal([]byte(data), &def); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if def.Unit != UnitKg {
		t.Errorf("unit = %q, want kg", def.Unit)
	}
	if def.ProgressionType != ProgressionNone {
		t.Errorf("progressionType = %q, want none", def.ProgressionType)
	}
	if def.Sets != DefaultSets {
		t.Errorf("sets = %d, want %d", def.Sets, DefaultSets)
	}
	if def.Increment != DefaultIncrement {
		t.Errorf("increment = %v, want %v", def.Increment, DefaultIncrement)
	}
	if def.RepRange != [2]int{9, 9} {
		t.Errorf("repRange = %v, want [9 9]", def.RepRange)
	}
}

// TestWorkoutActiveDefault verifies that workouts without an active flag load
// as active and an explicit false is preserved.
func TestWorkoutActiveDefault(t *testing.T) {
	var c Catalog
	data := `{"workouts":[{"name":"A","exercises":[{"name":"x"}]},{"name":"B","active":false}]}`
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !c.Workouts[0].Active {
		t.Error("workout A active = false, want true")
	}
	if c.Workouts[1].Active {
		t.Error("workout B active = true, want false")
	}
	if c.Workouts[1].Exercises == nil {
		t.Error("workout B exercises = nil, want empty slice")
	}
}

// TestCompleteProgressFillsMissing verifies the progress default step uses the
// definition for weight and reps and keeps fields that are present.
func TestCompleteProgressFillsMissing(t *testing.T) {
	def := CompleteExercise(ExerciseRecord{Name: "Press", StartWeight: floatPtr(30), RepRange: []int{5, 10}})

	var r ProgressRecord
	if err := json.Unmarshal([]byte(`{"currentWeight":35,"failCount":1}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	st := CompleteProgress(r, def)
	if st.CurrentWeight != 35 {
		t.Errorf("currentWeight = %v, want 35", st.CurrentWeight)
	}
	if st.TargetReps != 5 {
		t.Errorf("targetReps = %d, want 5", st.TargetReps)
	}
	if st.FailCount != 1 {
		t.Errorf("failCount = %d, want 1", st.FailCount)
	}
	if st.ProgressionPhase != PhaseReps {
		t.Errorf("phase = %q, want reps", st.ProgressionPhase)
	}
	if st.CurrentSet != 1 || st.CompletedSets != 0 {
		t.Errorf("sets = (%d, %d), want (1, 0)", st.CurrentSet, st.CompletedSets)
	}
	if st.PreviousWeight != 35 {
		t.Errorf("previousWeight = %v, want 35", st.PreviousWeight)
	}
}

// TestDefaultCatalogSharedExercise verifies that the exercise listed in two
// default workouts resolves to a single id and so a single progression state.
func TestDefaultCatalogSharedExercise(t *testing.T) {
	c := DefaultCatalog()
	push := c.Workouts[c.FindWorkout("Push + Calfs")]
	pull := c.Workouts[c.FindWorkout("Pull + Glutes")]
	a := push.Exercises[len(push.Exercises)-1]
	b := pull.Exercises[len(pull.Exercises)-1]
	if a.ID != b.ID {
		t.Errorf("cross trainer ids differ: %q vs %q", a.ID, b.ID)
	}
	for _, w := range c.Workouts {
		for _, ex := range w.Exercises {
			if err := Validate(ex); err != nil {
				t.Errorf("default exercise %q invalid: %v", ex.Name, err)
			}
		}
	}
}

// TestDefaultCalfRaisesFloor verifies the default calf raises deload no lower
// than their start weight.
func TestDefaultCalfRaisesFloor(t *testing.T) {
	c := DefaultCatalog()
	def, ok := c.FindExercise(ExerciseIDFor("Calf raises"))
	if !ok {
		t.Fatal("Calf raises missing from default catalog")
	}
	if def.MinimumWeight != 7.5 {
		t.Errorf("minimumWeight = %v, want 7.5", def.MinimumWeight)
	}
}
