package models

import (
	"errors"
	"testing"
)

func sampleDef() ExerciseDef {
	return ExerciseDef{
		ID:              "e1",
		Name:            "Bench",
		StartWeight:     40,
		MinimumWeight:   20,
		RepRange:        [2]int{5, 8},
		Increment:       2.5,
		Unit:            UnitKg,
		Sets:            5,
		ProgressionType: ProgressionRep,
		Active:          true,
	}
}

// TestApplyFieldAccepts verifies well-formed edits update exactly one field.
func TestApplyFieldAccepts(t *testing.T) {
	cases := []struct {
		field, value string
		check        func(ExerciseDef) bool
	}{
		{FieldStartWeight, "42.5", func(d ExerciseDef) bool { return d.StartWeight == 42.5 }},
		{FieldMinimumWeight, "0", func(d ExerciseDef) bool { return d.MinimumWeight == 0 }},
		{FieldIncrement, "5", func(d ExerciseDef) bool { return d.Increment == 5 }},
		{FieldRepMin, "6", func(d ExerciseDef) bool { return d.RepRange[0] == 6 }},
		{FieldRepMax, "12", func(d ExerciseDef) bool { return d.RepRange[1] == 12 }},
		{FieldSets, "10", func(d ExerciseDef) bool { return d.Sets == 10 }},
		{FieldUnit, "level", func(d ExerciseDef) bool { return d.Unit == UnitLevel }},
		{FieldProgressionType, "simple", func(d ExerciseDef) bool { return d.ProgressionType == ProgressionSimple }},
		{FieldActive, "false", func(d ExerciseDef) bool { return !d.Active }},
	}
	for _, tc := range cases {
		got, err := ApplyField(sampleDef(), tc.field, tc.value)
		if err != nil {
			t.Errorf("ApplyField(%s, %q): unexpected error %v", tc.field, tc.value, err)
			continue
		}
		if !tc.check(got) {
			t.Errorf("ApplyField(%s, %q) = %+v, field not applied", tc.field, tc.value, got)
		}
	}
}

// TestApplyFieldRejects verifies each class of invalid edit is refused with a
// ValidationError naming the field.
func TestApplyFieldRejects(t *testing.T) {
	cases := []struct {
		field, value string
	}{
		{FieldStartWeight, "heavy"},
		{FieldStartWeight, "10"}, // below minimum 20
		{FieldMinimumWeight, "50"},
		{FieldIncrement, "0"},
		{FieldRepMin, "9"},
		{FieldRepMin, "0"},
		{FieldRepMax, "4"},
		{FieldRepMax, "5"}, // degenerate range for rep progression
		{FieldSets, "0"},
		{FieldSets, "11"},
		{FieldSets, "three"},
		{FieldUnit, "stone"},
		{FieldProgressionType, "linear"},
		{FieldActive, "maybe"},
		{"name", "x"},
	}
	for _, tc := range cases {
		_, err := ApplyField(sampleDef(), tc.field, tc.value)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("ApplyField(%s, %q) error = %v, want ValidationError", tc.field, tc.value, err)
		}
	}
}

// TestDegenerateRangeAllowedForSimple verifies that min == max reps is only
// refused for rep progression.
func TestDegenerateRangeAllowedForSimple(t *testing.T) {
	def := sampleDef()
	def.ProgressionType = ProgressionSimple
	if _, err := ApplyField(def, FieldRepMax, "5"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestCleanName verifies trimming and empty-name rejection.
func TestCleanName(t *testing.T) {
	got, err := CleanName("name", "  Legs  ")
	if err != nil || got != "Legs" {
		t.Errorf("CleanName = (%q, %v), want (%q, nil)", got, err, "Legs")
	}
	if _, err := CleanName("name", "   "); err == nil {
		t.Error("expected error for blank name")
	}
}

// TestCheckRecord verifies only present fields are checked: an empty record
// passes, and a bad value is reported under its own field.
func TestCheckRecord(t *testing.T) {
	if err := CheckRecord(ExerciseRecord{Name: "Row"}); err != nil {
		t.Fatalf("empty record: %v", err)
	}

	sets := 0
	unit := Unit("stone")
	tests := []struct {
		rec   ExerciseRecord
		field string
	}{
		{ExerciseRecord{Sets: &sets}, FieldSets},
		{ExerciseRecord{Unit: &unit}, FieldUnit},
		{ExerciseRecord{RepRange: []int{8, 5}}, FieldRepMax},
		{ExerciseRecord{RepRange: []int{0, 5}}, FieldRepMin},
	}
	for _, tt := range tests {
		err := CheckRecord(tt.rec)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != tt.field {
			t.Errorf("CheckRecord(%+v) = %v, want %s error", tt.rec, err, tt.field)
		}
	}
}
