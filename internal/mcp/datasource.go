package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
)

// DataSource abstracts the data layer for MCP tools. Local (in-process) and
// HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Workouts(ctx context.Context) ([]models.Workout, error)
	Progress(ctx context.Context) ([]tracker.ExerciseView, error)
	WorkoutLog(ctx context.Context, limit int) ([]models.LogEntry, error)
	CurrentWorkout(ctx context.Context) (*tracker.CurrentWorkout, error)
	History(ctx context.Context, exerciseID string, limit int) ([]models.HistoryEntry, error)
}

// Local serves MCP reads straight from a Tracker.
type Local struct {
	T *tracker.Tracker
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

func (l Local) Workouts(context.Context) ([]models.Workout, error) {
	return l.T.Workouts(), nil
}

func (l Local) Progress(context.Context) ([]tracker.ExerciseView, error) {
	return l.T.Progress(), nil
}

func (l Local) WorkoutLog(_ context.Context, limit int) ([]models.LogEntry, error) {
	return l.T.Logs(limit), nil
}

func (l Local) CurrentWorkout(context.Context) (*tracker.CurrentWorkout, error) {
	return l.T.View().Current, nil
}

func (l Local) History(_ context.Context, exerciseID string, limit int) ([]models.HistoryEntry, error) {
	return l.T.History(exerciseID, limit), nil
}
