package tracker

import (
	"github.com/claude/liftlog/internal/models"
)

// sessionDef finds an exercise of the workout in progress.
func (t *Tracker) sessionDef(exerciseID string) (models.ExerciseDef, error) {
	if t.current == nil {
		return models.ExerciseDef{}, ErrNoWorkout
	}
	i := t.current.workout.ExerciseIndex(exerciseID)
	if i < 0 {
		return models.ExerciseDef{}, ErrExerciseNotInWorkout
	}
	return t.current.workout.Exercises[i], nil
}

func (t *Tracker) entry(exerciseID string) models.SessionEntry {
	e, ok := t.current.entries[exerciseID]
	if !ok {
		e = models.NewSessionEntry()
	}
	return e
}

// CompleteSet records one successful set. Once the exercise reaches its set
// target it is marked completed; further calls leave it unchanged.
func (t *Tracker) CompleteSet(exerciseID string) (models.SessionEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	def, err := t.sessionDef(exerciseID)
	if err != nil {
		return models.SessionEntry{}, err
	}
	e := t.entry(exerciseID)
	if e.Status == models.StatusCompleted {
		return e, nil
	}

	e.CompletedSets++
	if e.CompletedSets >= def.Sets {
		e.Status = models.StatusCompleted
	} else {
		e.CurrentSet++
	}
	t.current.entries[exerciseID] = e
	return e, nil
}

// FailSet marks the exercise failed for this session, overriding any
// progress recorded so far. Fail counters move only at commit.
func (t *Tracker) FailSet(exerciseID string) (models.SessionEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.sessionDef(exerciseID); err != nil {
		return models.SessionEntry{}, err
	}
	e := t.entry(exerciseID)
	e.Status = models.StatusFailed
	t.current.entries[exerciseID] = e
	return e, nil
}

// CompleteAll marks every exercise of the current workout completed.
func (t *Tracker) CompleteAll() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return ErrNoWorkout
	}
	for _, def := range t.current.workout.Exercises {
		t.current.entries[def.ID] = models.SessionEntry{
			Status:        models.StatusCompleted,
			CompletedSets: def.Sets,
			CurrentSet:    def.Sets,
		}
	}
	return nil
}

// IncompleteExercises returns the names of exercises with no outcome yet, in
// workout order. It is empty when no workout is in progress.
func (t *Tracker) IncompleteExercises() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.incomplete()
}

func (t *Tracker) incomplete() []string {
	names := []string{}
	if t.current == nil {
		return names
	}
	for _, def := range t.current.workout.Exercises {
		e, ok := t.current.entries[def.ID]
		if !ok || e.Status == models.StatusPending || e.Status == "" {
			names = append(names, def.Name)
		}
	}
	return names
}
