package models

import (
	"encoding/json"
	"strings"
)

// ExerciseRecord is an exercise as found in stored or imported JSON, where
// any field may be missing. CompleteExercise turns it into an ExerciseDef.
type ExerciseRecord struct {
	ID              *string          `json:"id"`
	Name            string           `json:"name"`
	StartWeight     *float64         `json:"startWeight"`
	MinimumWeight   *float64         `json:"minimumWeight"`
	RepRange        []int            `json:"repRange"`
	Increment       *float64         `json:"increment"`
	Unit            *Unit            `json:"unit"`
	Sets            *int             `json:"sets"`
	ProgressionType *ProgressionType `json:"progressionType"`
	Active          *bool            `json:"active"`
}

// CompleteExercise applies the documented defaults to a partial record.
func CompleteExercise(r ExerciseRecord) ExerciseDef {
	def := ExerciseDef{
		Name:            strings.TrimSpace(r.Name),
		RepRange:        [2]int{DefaultRepLow, DefaultRepHigh},
		Increment:       DefaultIncrement,
		Unit:            UnitKg,
		Sets:            DefaultSets,
		ProgressionType: ProgressionNone,
		Active:          true,
	}

	if r.ID != nil && *r.ID != "" {
		def.ID = *r.ID
	} else {
		def.ID = ExerciseIDFor(def.Name)
	}
	if r.StartWeight != nil {
		def.StartWeight = *r.StartWeight
	}
	// An absent minimum floors at the start weight; an explicit 0 is kept.
	def.MinimumWeight = def.StartWeight
	if r.MinimumWeight != nil {
		def.MinimumWeight = *r.MinimumWeight
	}
	switch len(r.RepRange) {
	case 0:
	case 1:
		def.RepRange = [2]int{r.RepRange[0], r.RepRange[0]}
	default:
		def.RepRange = [2]int{r.RepRange[0], r.RepRange[1]}
	}
	if def.RepRange[1] < def.RepRange[0] {
		def.RepRange[1] = def.RepRange[0]
	}
	if r.Increment != nil && *r.Increment > 0 {
		def.Increment = *r.Increment
	}
	if r.Unit != nil && r.Unit.Valid() {
		def.Unit = *r.Unit
	}
	if r.Sets != nil && *r.Sets > 0 {
		def.Sets = *r.Sets
	}
	if r.ProgressionType != nil && r.ProgressionType.Valid() {
		def.ProgressionType = *r.ProgressionType
	}
	if r.Active != nil {
		def.Active = *r.Active
	}
	return def
}

// UnmarshalJSON decodes a possibly partial record and fills defaults.
func (e *ExerciseDef) UnmarshalJSON(data []byte) error {
	var r ExerciseRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*e = CompleteExercise(r)
	return nil
}

type workoutRecord struct {
	Name      string        `json:"name"`
	Exercises []ExerciseDef `json:"exercises"`
	Active    *bool         `json:"active"`
}

// UnmarshalJSON decodes a workout; a missing active flag means active.
func (w *Workout) UnmarshalJSON(data []byte) error {
	var r workoutRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*w = Workout{
		Name:      strings.TrimSpace(r.Name),
		Exercises: r.Exercises,
		Active:    true,
	}
	if w.Exercises == nil {
		w.Exercises = []ExerciseDef{}
	}
	if r.Active != nil {
		w.Active = *r.Active
	}
	return nil
}

// ProgressRecord is a stored progression state with optional fields.
type ProgressRecord struct {
	CurrentWeight      *float64 `json:"currentWeight"`
	TargetReps         *int     `json:"targetReps"`
	FailCount          *int     `json:"failCount"`
	ProgressionPhase   *Phase   `json:"progressionPhase"`
	LastWeightIncrease *int     `json:"lastWeightIncrease"`
	PreviousWeight     *float64 `json:"previousWeight"`
	PreviousReps       *int     `json:"previousReps"`
	CurrentSet         *int     `json:"currentSet"`
	CompletedSets      *int     `json:"completedSets"`
	LastSession        *int     `json:"lastSession"`
}

// CompleteProgress fills the fields missing from r using the exercise definition.
func CompleteProgress(r ProgressRecord, def ExerciseDef) ProgressState {
	st := NewProgress(def)
	if r.CurrentWeight != nil {
		st.CurrentWeight = *r.CurrentWeight
	}
	if r.TargetReps != nil {
		st.TargetReps = *r.TargetReps
	}
	if r.FailCount != nil && *r.FailCount >= 0 {
		st.FailCount = *r.FailCount
	}
	if r.ProgressionPhase != nil && (*r.ProgressionPhase == PhaseReps || *r.ProgressionPhase == PhaseWeight) {
		st.ProgressionPhase = *r.ProgressionPhase
	}
	if r.LastWeightIncrease != nil {
		st.LastWeightIncrease = *r.LastWeightIncrease
	}
	st.PreviousWeight = st.CurrentWeight
	if r.PreviousWeight != nil {
		st.PreviousWeight = *r.PreviousWeight
	}
	st.PreviousReps = st.TargetReps
	if r.PreviousReps != nil {
		st.PreviousReps = *r.PreviousReps
	}
	if r.CurrentSet != nil && *r.CurrentSet > 0 {
		st.CurrentSet = *r.CurrentSet
	}
	if r.CompletedSets != nil && *r.CompletedSets >= 0 {
		st.CompletedSets = *r.CompletedSets
	}
	if r.LastSession != nil {
		st.LastSession = *r.LastSession
	}
	return st
}
