package tracker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ExportCounts summarizes an export document.
type ExportCounts struct {
	Workouts       int `json:"workouts"`
	Exercises      int `json:"exercises"`
	ExerciseStates int `json:"exerciseStates"`
	History        int `json:"history"`
	Logs           int `json:"logs"`
}

// ExportDocument is the full-state backup format.
type ExportDocument struct {
	AppVersion     string                          `json:"appVersion"`
	DataVersion    int                             `json:"dataVersion"`
	ExportedAt     time.Time                       `json:"exportedAt"`
	Counts         ExportCounts                    `json:"counts"`
	Config         models.Catalog                  `json:"config"`
	SessionNumber  int                             `json:"sessionNumber"`
	ExerciseStates map[string]models.ProgressState `json:"exerciseStates"`
	WorkoutHistory []models.HistoryEntry           `json:"workoutHistory"`
	WorkoutLogs    []models.LogEntry               `json:"workoutLogs"`
}

// importDocument is ExportDocument with every section optional so that the
// required shape can be checked.
type importDocument struct {
	Config *struct {
		Workouts *[]models.Workout `json:"workouts"`
	} `json:"config"`
	SessionNumber  *int                             `json:"sessionNumber"`
	ExerciseStates map[string]models.ProgressRecord `json:"exerciseStates"`
	WorkoutHistory []models.HistoryEntry            `json:"workoutHistory"`
	WorkoutLogs    []models.LogEntry                `json:"workoutLogs"`
}

func countExercises(c models.Catalog) int {
	seen := make(map[string]bool)
	for _, w := range c.Workouts {
		for _, ex := range w.Exercises {
			seen[ex.ID] = true
		}
	}
	return len(seen)
}

// Export returns the full state as an indented JSON document.
func (t *Tracker) Export() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	doc := ExportDocument{
		AppVersion:  AppVersion,
		DataVersion: DataVersion,
		ExportedAt:  t.clock(),
		Counts: ExportCounts{
			Workouts:       len(t.catalog.Workouts),
			Exercises:      countExercises(t.catalog),
			ExerciseStates: len(t.progress),
			History:        len(t.history),
			Logs:           len(t.logs),
		},
		Config:         t.catalog,
		SessionNumber:  t.sessionNumber,
		ExerciseStates: t.progress,
		WorkoutHistory: t.history,
		WorkoutLogs:    t.logs,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Import replaces all state with the contents of an export document. The
// document must at least carry config.workouts. The saved incomplete workout
// is dropped.
func (t *Tracker) Import(ctx context.Context, data []byte) (ExportCounts, error) {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return ExportCounts{}, &models.ValidationError{Field: "document", Reason: "not a valid export: " + err.Error()}
	}
	if doc.Config == nil || doc.Config.Workouts == nil {
		return ExportCounts{}, &models.ValidationError{Field: "config.workouts", Reason: "missing from import"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return ExportCounts{}, ErrWorkoutInProgress
	}

	catalog := models.Catalog{Workouts: *doc.Config.Workouts}
	history := doc.WorkoutHistory
	if history == nil {
		history = []models.HistoryEntry{}
	}
	logs := doc.WorkoutLogs
	if logs == nil {
		logs = []models.LogEntry{}
	}

	if err := t.dropSnapshot(ctx); err != nil {
		return ExportCounts{}, err
	}
	t.adopt(catalog, userStateRecord{SessionNumber: doc.SessionNumber, ExerciseStates: doc.ExerciseStates}, history, logs)
	if err := t.persist(ctx); err != nil {
		return ExportCounts{}, err
	}

	counts := ExportCounts{
		Workouts:       len(t.catalog.Workouts),
		Exercises:      countExercises(t.catalog),
		ExerciseStates: len(t.progress),
		History:        len(t.history),
		Logs:           len(t.logs),
	}
	t.log.Info("data imported",
		"workouts", counts.Workouts,
		"exercises", counts.Exercises,
		"history", counts.History,
		"logs", counts.Logs,
	)
	return counts, nil
}
