package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError reports why an edit was rejected. State is untouched when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Editable exercise fields accepted by ApplyField.
const (
	FieldStartWeight     = "startWeight"
	FieldMinimumWeight   = "minimumWeight"
	FieldIncrement       = "increment"
	FieldRepMin          = "repMin"
	FieldRepMax          = "repMax"
	FieldSets            = "sets"
	FieldUnit            = "unit"
	FieldProgressionType = "progressionType"
	FieldActive          = "active"
)

// CleanName trims a display name and rejects empty ones.
func CleanName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid(field, "name cannot be empty")
	}
	return name, nil
}

func parseWeight(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid(field, "%q is not a number", value)
	}
	if v < 0 {
		return 0, invalid(field, "must not be negative")
	}
	return v, nil
}

func parseCount(field, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, invalid(field, "%q is not a whole number", value)
	}
	return v, nil
}

// ApplyField returns def with one field replaced by the parsed value. The
// result is checked with Validate before it is returned.
func ApplyField(def ExerciseDef, field, value string) (ExerciseDef, error) {
	switch field {
	case FieldStartWeight:
		v, err := parseWeight(field, value)
		if err != nil {
			return def, err
		}
		def.StartWeight = v
	case FieldMinimumWeight:
		v, err := parseWeight(field, value)
		if err != nil {
			return def, err
		}
		def.MinimumWeight = v
	case FieldIncrement:
		v, err := parseWeight(field, value)
		if err != nil {
			return def, err
		}
		def.Increment = v
	case FieldRepMin:
		v, err := parseCount(field, value)
		if err != nil {
			return def, err
		}
		def.RepRange[0] = v
	case FieldRepMax:
		v, err := parseCount(field, value)
		if err != nil {
			return def, err
		}
		def.RepRange[1] = v
	case FieldSets:
		v, err := parseCount(field, value)
		if err != nil {
			return def, err
		}
		def.Sets = v
	case FieldUnit:
		u := Unit(strings.TrimSpace(value))
		if !u.Valid() {
			return def, invalid(field, "unknown unit %q", value)
		}
		def.Unit = u
	case FieldProgressionType:
		p := ProgressionType(strings.TrimSpace(value))
		if !p.Valid() {
			return def, invalid(field, "unknown progression type %q", value)
		}
		def.ProgressionType = p
	case FieldActive:
		v, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return def, invalid(field, "%q is not a boolean", value)
		}
		def.Active = v
	default:
		return def, invalid(field, "field is not editable")
	}

	if err := Validate(def); err != nil {
		return def, err
	}
	return def, nil
}

// Validate checks an exercise definition produced by an edit.
func Validate(def ExerciseDef) error {
	if strings.TrimSpace(def.Name) == "" {
		return invalid("name", "name cannot be empty")
	}
	if def.StartWeight < 0 {
		return invalid(FieldStartWeight, "must not be negative")
	}
	if def.MinimumWeight < 0 {
		return invalid(FieldMinimumWeight, "must not be negative")
	}
	if def.MinimumWeight > def.StartWeight {
		return invalid(FieldMinimumWeight, "minimum weight %v exceeds start weight %v", def.MinimumWeight, def.StartWeight)
	}
	if def.Increment <= 0 {
		return invalid(FieldIncrement, "must be greater than zero")
	}
	if def.RepRange[0] < 1 {
		return invalid(FieldRepMin, "must be at least 1")
	}
	if def.RepRange[0] > def.RepRange[1] {
		return invalid(FieldRepMax, "min reps %d exceed max reps %d", def.RepRange[0], def.RepRange[1])
	}
	if def.ProgressionType == ProgressionRep && def.RepRange[0] == def.RepRange[1] {
		return invalid(FieldRepMax, "rep progression needs max reps above min reps")
	}
	if def.Sets < 1 || def.Sets > MaxSets {
		return invalid(FieldSets, "must be between 1 and %d", MaxSets)
	}
	if !def.Unit.Valid() {
		return invalid(FieldUnit, "unknown unit %q", def.Unit)
	}
	if !def.ProgressionType.Valid() {
		return invalid(FieldProgressionType, "unknown progression type %q", def.ProgressionType)
	}
	return nil
}

// CheckRecord rejects fields that are present in r but invalid, before
// CompleteExercise would replace them with defaults. Absent fields pass.
func CheckRecord(r ExerciseRecord) error {
	if r.StartWeight != nil && *r.StartWeight < 0 {
		return invalid(FieldStartWeight, "must not be negative")
	}
	if r.MinimumWeight != nil && *r.MinimumWeight < 0 {
		return invalid(FieldMinimumWeight, "must not be negative")
	}
	if r.Increment != nil && *r.Increment <= 0 {
		return invalid(FieldIncrement, "must be greater than zero")
	}
	if r.RepRange != nil {
		if len(r.RepRange) != 2 {
			return invalid("repRange", "needs exactly two values, got %d", len(r.RepRange))
		}
		if r.RepRange[0] < 1 {
			return invalid(FieldRepMin, "must be at least 1")
		}
		if r.RepRange[0] > r.RepRange[1] {
			return invalid(FieldRepMax, "min reps %d exceed max reps %d", r.RepRange[0], r.RepRange[1])
		}
	}
	if r.Sets != nil && (*r.Sets < 1 || *r.Sets > MaxSets) {
		return invalid(FieldSets, "must be between 1 and %d", MaxSets)
	}
	if r.Unit != nil && !r.Unit.Valid() {
		return invalid(FieldUnit, "unknown unit %q", *r.Unit)
	}
	if r.ProgressionType != nil && !r.ProgressionType.Valid() {
		return invalid(FieldProgressionType, "unknown progression type %q", *r.ProgressionType)
	}
	return nil
}
