package tracker

import (
	"time"

	"github.com/claude/liftlog/internal/models"
)

// View is the read-only projection a renderer needs.
type View struct {
	SessionNumber int               `json:"sessionNumber"`
	Workouts      []WorkoutSummary  `json:"workouts"`
	Current       *CurrentWorkout   `json:"current,omitempty"`
	Incomplete    *SnapshotSummary  `json:"incompleteWorkout,omitempty"`
	RecentLogs    []models.LogEntry `json:"recentLogs"`
}

// WorkoutSummary is one catalog entry as listed for selection.
type WorkoutSummary struct {
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	Exercises int    `json:"exercises"`
}

// CurrentWorkout is the workout in progress.
type CurrentWorkout struct {
	Name       string         `json:"name"`
	Date       string         `json:"date"`
	Exercises  []ExerciseView `json:"exercises"`
	Incomplete []string       `json:"incomplete"`
}

// ExerciseView joins an exercise's definition with its progression and, during
// a workout, its session entry.
type ExerciseView struct {
	Workout    string               `json:"workout,omitempty"`
	Definition models.ExerciseDef   `json:"definition"`
	Progress   models.ProgressState `json:"progress"`
	Session    *models.SessionEntry `json:"session,omitempty"`
	// New is set when the weight was raised in the current session.
	New bool `json:"new"`
}

// SnapshotSummary describes the saved incomplete workout.
type SnapshotSummary struct {
	WorkoutName string    `json:"workoutName"`
	WorkoutDate string    `json:"workoutDate"`
	Timestamp   time.Time `json:"timestamp"`
}

// View returns a snapshot of everything needed to render the app.
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()

	v := View{
		SessionNumber: t.sessionNumber,
		Workouts:      make([]WorkoutSummary, 0, len(t.catalog.Workouts)),
		RecentLogs:    t.recentLogs(DefaultRecentLogCount),
	}
	for _, w := range t.catalog.Workouts {
		v.Workouts = append(v.Workouts, WorkoutSummary{Name: w.Name, Active: w.Active, Exercises: len(w.Exercises)})
	}

	if t.current != nil {
		cur := &CurrentWorkout{
			Name:       t.current.workout.Name,
			Date:       t.current.date,
			Incomplete: t.incomplete(),
		}
		for _, def := range t.current.workout.Exercises {
			e := t.entry(def.ID)
			cur.Exercises = append(cur.Exercises, t.exerciseView("", def, &e))
		}
		v.Current = cur
	}

	if t.snapshot != nil {
		v.Incomplete = &SnapshotSummary{
			WorkoutName: t.snapshot.WorkoutName,
			WorkoutDate: t.snapshot.WorkoutDate,
			Timestamp:   t.snapshot.Timestamp,
		}
	}
	return v
}

func (t *Tracker) exerciseView(workout string, def models.ExerciseDef, e *models.SessionEntry) ExerciseView {
	st, ok := t.progress[def.ID]
	if !ok {
		st = models.NewProgress(def)
	}
	return ExerciseView{
		Workout:    workout,
		Definition: def,
		Progress:   st,
		Session:    e,
		New:        st.LastWeightIncrease > 0 && st.LastWeightIncrease == t.sessionNumber,
	}
}

// Progress lists every exercise in catalog order with its progression state.
// An exercise shared by several workouts is listed once, under the first.
func (t *Tracker) Progress() []ExerciseView {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := []ExerciseView{}
	seen := make(map[string]bool)
	for _, w := range t.catalog.Workouts {
		for _, def := range w.Exercises {
			if seen[def.ID] {
				continue
			}
			seen[def.ID] = true
			out = append(out, t.exerciseView(w.Name, def, nil))
		}
	}
	return out
}

// Workouts returns a copy of the catalog's workouts.
func (t *Tracker) Workouts() []models.Workout {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.catalog.Clone().Workouts
}

// Exercise returns the definition and progression of one exercise.
func (t *Tracker) Exercise(id string) (ExerciseView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	def, ok := t.catalog.FindExercise(id)
	if !ok {
		return ExerciseView{}, ErrExerciseNotFound
	}
	return t.exerciseView("", def, nil), nil
}

// Logs returns up to limit log entries, newest first. limit <= 0 means all.
func (t *Tracker) Logs(limit int) []models.LogEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.recentLogs(limit)
}

func (t *Tracker) recentLogs(limit int) []models.LogEntry {
	n := len(t.logs)
	if limit > 0 && limit < n {
		n = limit
	}
	return append([]models.LogEntry{}, t.logs[:n]...)
}

// History returns up to limit of the most recent history entries, oldest
// first. An exerciseID narrows the result to one exercise.
func (t *Tracker) History(exerciseID string, limit int) []models.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := []models.HistoryEntry{}
	for _, h := range t.history {
		if exerciseID == "" || h.ExerciseID == exerciseID {
			out = append(out, h)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
