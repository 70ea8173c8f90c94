// Package tracker is the application controller. A Tracker owns the catalog,
// the per-exercise progression state, the workout in progress, history and
// logs, and flushes them to a storage.Store after every committing command.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// Version markers written next to the data.
const (
	AppVersion = "1.1.0"
	// DataVersion 2 keys progression state by exercise ID instead of name.
	DataVersion = 2
)

// Limits on the append-only lists.
const (
	MaxHistoryEntries     = 1000
	DefaultMaxLogEntries  = 500
	DefaultRecentLogCount = 5
)

// Lifecycle and lookup errors. Validation failures are *models.ValidationError.
var (
	ErrNoWorkout            = errors.New("no workout in progress")
	ErrWorkoutInProgress    = errors.New("a workout is already in progress")
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrWorkoutInactive      = errors.New("workout is inactive")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrExerciseNotInWorkout = errors.New("exercise is not part of the current workout")
	ErrNoSnapshot           = errors.New("no incomplete workout saved")
)

// Options tune a Tracker. Zero values pick the defaults.
type Options struct {
	MaxLogEntries int
	Now           func() time.Time
}

// Tracker serializes all commands with a mutex; each runs to completion
// before the next starts.
type Tracker struct {
	mu      sync.Mutex
	store   storage.Store
	log     *slog.Logger
	now     func() time.Time
	maxLogs int

	catalog       models.Catalog
	sessionNumber int
	progress      map[string]models.ProgressState
	history       []models.HistoryEntry
	logs          []models.LogEntry

	current  *activeWorkout
	snapshot *models.Snapshot
}

// activeWorkout is the workout in progress. The workout is copied at start so
// catalog edits during the session do not change the set targets.
type activeWorkout struct {
	workout models.Workout
	date    string
	entries map[string]models.SessionEntry
}

// New loads every blob from store and returns a ready Tracker. Unparseable
// blobs fall back to their defaults; only store I/O errors are returned.
func New(ctx context.Context, store storage.Store, log *slog.Logger, opts Options) (*Tracker, error) {
	t := &Tracker{
		store:   store,
		log:     log,
		now:     opts.Now,
		maxLogs: opts.MaxLogEntries,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.maxLogs <= 0 {
		t.maxLogs = DefaultMaxLogEntries
	}
	if err := t.load(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tracker) clock() time.Time {
	return t.now().UTC().Round(0)
}

func (t *Tracker) today() string {
	return t.now().Format(dateLayout)
}

// persist rewrites the catalog, user state, history and log blobs.
func (t *Tracker) persist(ctx context.Context) error {
	blobs := []struct {
		key string
		v   any
	}{
		{storage.KeyUserState, userState{SessionNumber: t.sessionNumber, ExerciseStates: t.progress}},
		{storage.KeyCatalog, t.catalog},
		{storage.KeyHistory, t.history},
		{storage.KeyLogs, t.logs},
	}
	for _, b := range blobs {
		if err := t.writeJSON(ctx, b.key, b.v); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tracker) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := t.store.Set(ctx, key, data); err != nil {
		t.log.Error("persist failed", "key", key, "error", err)
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// userState is the user_state blob.
type userState struct {
	SessionNumber  int                             `json:"sessionNumber"`
	ExerciseStates map[string]models.ProgressState `json:"exerciseStates"`
}

type userStateRecord struct {
	SessionNumber  *int                             `json:"sessionNumber"`
	ExerciseStates map[string]models.ProgressRecord `json:"exerciseStates"`
}

// buildProgress completes stored progress records against the catalog.
// Records still keyed by exercise name are moved to the exercise's ID.
// Records that match nothing are kept for history.
func buildProgress(catalog models.Catalog, records map[string]models.ProgressRecord) map[string]models.ProgressState {
	out := make(map[string]models.ProgressState, len(records))
	used := make(map[string]bool, len(records))

	for _, w := range catalog.Workouts {
		for _, def := range w.Exercises {
			if _, done := out[def.ID]; done {
				continue
			}
			rec, ok := records[def.ID]
			key := def.ID
			if !ok {
				rec, ok = records[def.Name]
				key = def.Name
			}
			if ok {
				out[def.ID] = models.CompleteProgress(rec, def)
				used[key] = true
			} else {
				out[def.ID] = models.NewProgress(def)
			}
		}
	}
	for key, rec := range records {
		if used[key] {
			continue
		}
		if _, taken := out[key]; taken {
			continue
		}
		out[key] = models.CompleteProgress(rec, models.ExerciseDef{})
	}
	return out
}

func (t *Tracker) ensureProgress(def models.ExerciseDef) models.ProgressState {
	st, ok := t.progress[def.ID]
	if !ok {
		st = models.NewProgress(def)
		t.progress[def.ID] = st
	}
	return st
}

func (t *Tracker) appendHistory(entries ...models.HistoryEntry) {
	t.history = append(t.history, entries...)
	if over := len(t.history) - MaxHistoryEntries; over > 0 {
		t.history = append([]models.HistoryEntry(nil), t.history[over:]...)
	}
}

func (t *Tracker) prependLog(entry models.LogEntry) {
	t.logs = append([]models.LogEntry{entry}, t.logs...)
	if len(t.logs) > t.maxLogs {
		t.logs = t.logs[:t.maxLogs]
	}
}
