package models

import (
	"github.com/google/uuid"
)

// Unit is a display unit. No conversion happens between units.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitLb    Unit = "lb"
	UnitMin   Unit = "m"
	UnitPlate Unit = "pl"
	UnitLevel Unit = "level"
)

// Units lists the accepted display units in menu order.
var Units = []Unit{UnitKg, UnitLb, UnitMin, UnitPlate, UnitLevel}

// Valid reports whether u is one of the fixed units.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// ProgressionType selects the state-machine variant applied at commit.
type ProgressionType string

const (
	ProgressionNone   ProgressionType = "none"
	ProgressionSimple ProgressionType = "simple"
	ProgressionRep    ProgressionType = "rep"
)

// Valid reports whether p is a known progression type.
func (p ProgressionType) Valid() bool {
	switch p {
	case ProgressionNone, ProgressionSimple, ProgressionRep:
		return true
	}
	return false
}

// Defaults applied to exercise records that omit a field.
const (
	DefaultSets      = 5
	DefaultIncrement = 2.5
	DefaultRepLow    = 5
	DefaultRepHigh   = 8
	MaxSets          = 10
)

// ExerciseDef is a catalog entry describing one trainable movement.
type ExerciseDef struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	StartWeight     float64         `json:"startWeight"`
	MinimumWeight   float64         `json:"minimumWeight"`
	RepRange        [2]int          `json:"repRange"`
	Increment       float64         `json:"increment"`
	Unit            Unit            `json:"unit"`
	Sets            int             `json:"sets"`
	ProgressionType ProgressionType `json:"progressionType"`
	Active          bool            `json:"active"`
}

// Workout is a named, ordered list of exercises.
type Workout struct {
	Name      string        `json:"name"`
	Exercises []ExerciseDef `json:"exercises"`
	Active    bool          `json:"active"`
}

// Catalog is the editable set of workouts. Order is display order.
type Catalog struct {
	Workouts []Workout `json:"workouts"`
}

// catalogNamespace seeds name-derived exercise IDs.
var catalogNamespace = uuid.MustParse("6f1c8e2a-4b7d-5e90-a3c1-2d8f4b6e9a17")

// ExerciseIDFor returns the deterministic ID for an exercise that was created
// without one. Two records with the same name map to the same ID.
func ExerciseIDFor(name string) string {
	return uuid.NewSHA1(catalogNamespace, []byte(name)).String()
}

// NewExerciseID returns a fresh random exercise ID.
func NewExerciseID() string {
	return uuid.NewString()
}

// FindExercise returns the first exercise with the given ID across all workouts.
func (c *Catalog) FindExercise(id string) (ExerciseDef, bool) {
	for _, w := range c.Workouts {
		for _, ex := range w.Exercises {
			if ex.ID == id {
				return ex, true
			}
		}
	}
	return ExerciseDef{}, false
}

// FindWorkout returns the index of the named workout, or -1.
func (c *Catalog) FindWorkout(name string) int {
	for i, w := range c.Workouts {
		if w.Name == name {
			return i
		}
	}
	return -1
}

// ExerciseIndex returns the index of the exercise with the given ID, or -1.
func (w *Workout) ExerciseIndex(id string) int {
	for i, ex := range w.Exercises {
		if ex.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	out := Catalog{Workouts: make([]Workout, len(c.Workouts))}
	for i, w := range c.Workouts {
		out.Workouts[i] = w.Clone()
	}
	return out
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	w.Exercises = append([]ExerciseDef(nil), w.Exercises...)
	return w
}

func floatPtr(v float64) *float64 { return &v }

// DefaultCatalog returns the catalog a fresh install starts with.
func DefaultCatalog() Catalog {
	rec := func(name string, start float64, minimum *float64, low, high int, inc float64, unit Unit, sets int, pt ProgressionType) ExerciseDef {
		return CompleteExercise(ExerciseRecord{
			Name:            name,
			StartWeight:     &start,
			MinimumWeight:   minimum,
			RepRange:        []int{low, high},
			Increment:       &inc,
			Unit:            &unit,
			Sets:            &sets,
			ProgressionType: &pt,
		})
	}

	return Catalog{Workouts: []Workout{
		{
			Name:   "Push + Calfs",
			Active: true,
			Exercises: []ExerciseDef{
				rec("Shoulder press", 30, floatPtr(10), 5, 10, 2.5, UnitKg, 5, ProgressionRep),
				rec("Pectoral machine", 40, floatPtr(15), 5, 8, 2.5, UnitKg, 5, ProgressionRep),
				rec("Chest incline", 40, floatPtr(15), 5, 8, 2.5, UnitKg, 5, ProgressionRep),
				rec("Tricep pulldowns", 20, floatPtr(5), 5, 8, 2.5, UnitKg, 5, ProgressionRep),
				rec("Calf raises", 7.5, nil, 8, 10, 2.5, UnitKg, 5, ProgressionSimple),
				rec("Cross trainer", 10, floatPtr(5), 10, 15, 1, UnitMin, 1, ProgressionNone),
			},
		},
		{
			Name:   "Pull + Glutes",
			Active: true,
			Exercises: []ExerciseDef{
				rec("Vertical traction machine", 50, floatPtr(20), 5, 8, 2.5, UnitKg, 5, ProgressionRep),
				rec("Seated row", 50, floatPtr(20), 5, 8, 2.5, UnitKg, 5, ProgressionRep),
				rec("Upper back machine", 30, floatPtr(10), 5, 8, 2.5, UnitKg, 5, ProgressionRep),
				rec("Biceps on cable", 25, floatPtr(5), 5, 6, 2.5, UnitKg, 5, ProgressionRep),
				rec("Hip abduction machine", 89, floatPtr(40), 5, 8, 2.5, UnitKg, 5, ProgressionRep),
				rec("Cross trainer", 10, floatPtr(5), 10, 15, 1, UnitMin, 1, ProgressionNone),
			},
		},
		{
			Name:   "Cardio Day",
			Active: true,
			Exercises: []ExerciseDef{
				rec("Run or swim", 60, floatPtr(30), 60, 90, 5, UnitMin, 1, ProgressionNone),
			},
		},
	}}
}
