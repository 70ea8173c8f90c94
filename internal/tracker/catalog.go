package tracker

import (
	"context"
	"fmt"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

func duplicate(field, name string) error {
	return &models.ValidationError{Field: field, Reason: fmt.Sprintf("%q already exists", name)}
}

func (t *Tracker) workoutIndex(name string) (int, error) {
	i := t.catalog.FindWorkout(name)
	if i < 0 {
		return -1, ErrWorkoutNotFound
	}
	return i, nil
}

func checkPosition(to, n int) error {
	if to < 0 || to >= n {
		return &models.ValidationError{Field: "position", Reason: fmt.Sprintf("must be between 0 and %d", n-1)}
	}
	return nil
}

// AddWorkout appends an empty, active workout.
func (t *Tracker) AddWorkout(ctx context.Context, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	name, err := models.CleanName("name", name)
	if err != nil {
		return err
	}
	if t.catalog.FindWorkout(name) >= 0 {
		return duplicate("name", name)
	}
	t.catalog.Workouts = append(t.catalog.Workouts, models.Workout{Name: name, Active: true, Exercises: []models.ExerciseDef{}})
	return t.persist(ctx)
}

// RenameWorkout changes a workout's display name, following the rename into
// the workout in progress and the saved incomplete workout.
func (t *Tracker) RenameWorkout(ctx context.Context, oldName, newName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.workoutIndex(oldName)
	if err != nil {
		return err
	}
	newName, err = models.CleanName("name", newName)
	if err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	if t.catalog.FindWorkout(newName) >= 0 {
		return duplicate("name", newName)
	}

	t.catalog.Workouts[i].Name = newName
	if t.current != nil && t.current.workout.Name == oldName {
		t.current.workout.Name = newName
	}
	if t.snapshot != nil && t.snapshot.WorkoutName == oldName {
		snap := *t.snapshot
		snap.WorkoutName = newName
		if err := t.writeJSON(ctx, storage.KeyIncomplete, snap); err != nil {
			return err
		}
		t.snapshot = &snap
	}
	return t.persist(ctx)
}

// RemoveWorkout deletes a workout from the catalog. Progression state of its
// exercises is kept.
func (t *Tracker) RemoveWorkout(ctx context.Context, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.workoutIndex(name)
	if err != nil {
		return err
	}
	if t.current != nil && t.current.workout.Name == name {
		return ErrWorkoutInProgress
	}
	t.catalog.Workouts = append(t.catalog.Workouts[:i], t.catalog.Workouts[i+1:]...)
	if t.snapshot != nil && t.snapshot.WorkoutName == name {
		if err := t.dropSnapshot(ctx); err != nil {
			return err
		}
	}
	return t.persist(ctx)
}

// MoveWorkout moves a workout to position to in the display order.
func (t *Tracker) MoveWorkout(ctx context.Context, name string, to int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.workoutIndex(name)
	if err != nil {
		return err
	}
	if err := checkPosition(to, len(t.catalog.Workouts)); err != nil {
		return err
	}
	t.catalog.Workouts = moveItem(t.catalog.Workouts, i, to)
	return t.persist(ctx)
}

// SetWorkoutActive shows or hides a workout from selection.
func (t *Tracker) SetWorkoutActive(ctx context.Context, name string, active bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.workoutIndex(name)
	if err != nil {
		return err
	}
	t.catalog.Workouts[i].Active = active
	return t.persist(ctx)
}

// AddExercise appends an exercise to a workout. A def whose ID already exists
// in the catalog adds that same exercise, sharing its progression state;
// otherwise the def is validated and given a fresh ID.
func (t *Tracker) AddExercise(ctx context.Context, workout string, def models.ExerciseDef) (models.ExerciseDef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.workoutIndex(workout)
	if err != nil {
		return models.ExerciseDef{}, err
	}

	if existing, ok := t.catalog.FindExercise(def.ID); ok && def.ID != "" {
		def = existing
	} else {
		def.ID = models.NewExerciseID()
		def.Name, err = models.CleanName("name", def.Name)
		if err != nil {
			return models.ExerciseDef{}, err
		}
		if err := models.Validate(def); err != nil {
			return models.ExerciseDef{}, err
		}
	}

	w := &t.catalog.Workouts[i]
	if w.ExerciseIndex(def.ID) >= 0 {
		return models.ExerciseDef{}, duplicate("id", def.Name)
	}
	for _, ex := range w.Exercises {
		if ex.Name == def.Name {
			return models.ExerciseDef{}, duplicate("name", def.Name)
		}
	}

	w.Exercises = append(w.Exercises, def)
	t.ensureProgress(def)
	return def, t.persist(ctx)
}

// RenameExercise changes an exercise's display name everywhere it appears.
// Its ID, and so its progression state, stays the same.
func (t *Tracker) RenameExercise(ctx context.Context, id, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.catalog.FindExercise(id); !ok {
		return ErrExerciseNotFound
	}
	name, err := models.CleanName("name", name)
	if err != nil {
		return err
	}
	for _, w := range t.catalog.Workouts {
		if w.ExerciseIndex(id) < 0 {
			continue
		}
		for _, ex := range w.Exercises {
			if ex.ID != id && ex.Name == name {
				return duplicate("name", name)
			}
		}
	}

	t.updateExercise(id, func(d *models.ExerciseDef) { d.Name = name })
	return t.persist(ctx)
}

// RemoveExercise takes an exercise out of one workout. Its progression state
// is kept so re-adding it resumes where it left off.
func (t *Tracker) RemoveExercise(ctx context.Context, workout, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.workoutIndex(workout)
	if err != nil {
		return err
	}
	w := &t.catalog.Workouts[i]
	j := w.ExerciseIndex(id)
	if j < 0 {
		return ErrExerciseNotFound
	}
	w.Exercises = append(w.Exercises[:j], w.Exercises[j+1:]...)
	return t.persist(ctx)
}

// MoveExercise moves an exercise to position to within its workout.
func (t *Tracker) MoveExercise(ctx context.Context, workout, id string, to int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, err := t.workoutIndex(workout)
	if err != nil {
		return err
	}
	w := &t.catalog.Workouts[i]
	j := w.ExerciseIndex(id)
	if j < 0 {
		return ErrExerciseNotFound
	}
	if err := checkPosition(to, len(w.Exercises)); err != nil {
		return err
	}
	w.Exercises = moveItem(w.Exercises, j, to)
	return t.persist(ctx)
}

// UpdateExerciseField edits one field of an exercise from its string form.
// Invalid input is rejected with a *models.ValidationError and nothing changes.
// The exercise's progression state is pulled back inside the new bounds.
func (t *Tracker) UpdateExerciseField(ctx context.Context, id, field, value string) (models.ExerciseDef, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	def, ok := t.catalog.FindExercise(id)
	if !ok {
		return models.ExerciseDef{}, ErrExerciseNotFound
	}
	updated, err := models.ApplyField(def, field, value)
	if err != nil {
		return models.ExerciseDef{}, err
	}

	t.updateExercise(id, func(d *models.ExerciseDef) { *d = updated })

	st := t.ensureProgress(updated)
	if st.CurrentWeight < updated.MinimumWeight {
		st.CurrentWeight = updated.MinimumWeight
	}
	if st.TargetReps < updated.RepRange[0] {
		st.TargetReps = updated.RepRange[0]
		st.ProgressionPhase = models.PhaseReps
	}
	t.progress[id] = st

	return updated, t.persist(ctx)
}

func (t *Tracker) updateExercise(id string, fn func(*models.ExerciseDef)) {
	for wi := range t.catalog.Workouts {
		exs := t.catalog.Workouts[wi].Exercises
		for ei := range exs {
			if exs[ei].ID == id {
				fn(&exs[ei])
			}
		}
	}
}
