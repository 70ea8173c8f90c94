package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/progression"
	"github.com/claude/liftlog/internal/storage"
)

const (
	dateLayout    = "2006-01-02"
	logDateLayout = "Mon 2 Jan"
)

// EndResult is returned by End. When NeedsConfirmation is set nothing was
// committed; the caller should ask and call End again with confirmed=true.
type EndResult struct {
	NeedsConfirmation bool             `json:"needsConfirmation"`
	Incomplete        []string         `json:"incomplete,omitempty"`
	Log               *models.LogEntry `json:"log,omitempty"`
}

// Start opens the named workout as a new session. Any saved incomplete
// workout is dropped.
func (t *Tracker) Start(ctx context.Context, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return ErrWorkoutInProgress
	}
	i := t.catalog.FindWorkout(name)
	if i < 0 {
		return ErrWorkoutNotFound
	}
	w := t.catalog.Workouts[i]
	if !w.Active {
		return ErrWorkoutInactive
	}

	if err := t.dropSnapshot(ctx); err != nil {
		return err
	}

	session := models.Workout{Name: w.Name, Active: true}
	for _, def := range w.Exercises {
		if !def.Active {
			continue
		}
		session.Exercises = append(session.Exercises, def)
	}

	t.sessionNumber++
	for _, def := range session.Exercises {
		st := t.ensureProgress(def)
		st.CurrentSet = 1
		st.CompletedSets = 0
		t.progress[def.ID] = st
	}

	t.current = &activeWorkout{
		workout: session,
		date:    t.today(),
		entries: make(map[string]models.SessionEntry),
	}
	t.log.Info("workout started", "workout", w.Name, "session", t.sessionNumber)
	return t.persist(ctx)
}

// SetWorkoutDate changes the date recorded for the workout in progress.
func (t *Tracker) SetWorkoutDate(date string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return ErrNoWorkout
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return &models.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", date)}
	}
	t.current.date = date
	return nil
}

// End commits the workout in progress. With incomplete exercises and
// confirmed=false it only reports them.
func (t *Tracker) End(ctx context.Context, confirmed bool) (EndResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return EndResult{}, ErrNoWorkout
	}
	if incomplete := t.incomplete(); len(incomplete) > 0 && !confirmed {
		return EndResult{NeedsConfirmation: true, Incomplete: incomplete}, nil
	}

	cur := t.current
	session := t.sessionNumber
	now := t.clock()

	var changes []string
	var records []models.HistoryEntry
	seen := make(map[string]bool)
	for _, ex := range cur.workout.Exercises {
		if seen[ex.ID] {
			continue
		}
		seen[ex.ID] = true

		def, ok := t.catalog.FindExercise(ex.ID)
		if !ok || !def.Active {
			t.log.Warn("skipping exercise removed during session", "exercise", ex.Name, "id", ex.ID)
			continue
		}

		entry := cur.entries[ex.ID]
		before := t.ensureProgress(def)
		after, change := progression.Apply(def, before, entry.Status, session)
		t.progress[def.ID] = after
		changes = append(changes, change)

		result := entry.Status
		if result == "" {
			result = models.StatusPending
		}
		records = append(records, models.HistoryEntry{
			Timestamp:     now,
			SessionNumber: session,
			WorkoutName:   cur.workout.Name,
			ExerciseID:    def.ID,
			ExerciseName:  def.Name,
			Result:        result,
			Weight:        before.CurrentWeight,
			TargetReps:    before.TargetReps,
			Unit:          def.Unit,
		})
	}
	t.appendHistory(records...)

	var res EndResult
	if len(changes) > 0 {
		entry := models.LogEntry{
			Date:        logDate(cur.date),
			WorkoutName: cur.workout.Name,
			Changes:     changes,
			Timestamp:   now,
		}
		t.prependLog(entry)
		res.Log = &entry
	}

	if i := t.catalog.FindWorkout(cur.workout.Name); i >= 0 {
		t.catalog.Workouts = moveItem(t.catalog.Workouts, i, len(t.catalog.Workouts)-1)
	}

	t.current = nil
	t.log.Info("workout committed", "workout", cur.workout.Name, "session", session, "changes", len(changes))
	return res, t.persist(ctx)
}

func logDate(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.Format(logDateLayout)
}

// Abandon closes the workout in progress without committing. If any exercise
// shows progress the session is saved for Resume; it reports whether it was.
func (t *Tracker) Abandon(ctx context.Context) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return false, ErrNoWorkout
	}
	cur := t.current

	progress := false
	for _, e := range cur.entries {
		if e.HasProgress() {
			progress = true
			break
		}
	}
	if !progress {
		t.current = nil
		t.log.Info("workout abandoned without progress", "workout", cur.workout.Name)
		return false, nil
	}

	snap := models.Snapshot{
		WorkoutName:   cur.workout.Name,
		SessionStates: cur.entries,
		WorkoutDate:   cur.date,
		Timestamp:     t.clock(),
	}
	// The workout stays open if the snapshot cannot be written.
	if err := t.writeJSON(ctx, storage.KeyIncomplete, snap); err != nil {
		return false, err
	}
	t.current = nil
	t.snapshot = &snap
	t.log.Info("incomplete workout saved", "workout", cur.workout.Name, "exercises", len(cur.entries))
	return true, nil
}

// Resume reopens the saved incomplete workout and deletes the saved copy.
// The session number is not advanced again.
func (t *Tracker) Resume(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return ErrWorkoutInProgress
	}
	if t.snapshot == nil {
		return ErrNoSnapshot
	}
	snap := *t.snapshot

	i := t.catalog.FindWorkout(snap.WorkoutName)
	if i < 0 {
		if err := t.dropSnapshot(ctx); err != nil {
			return err
		}
		return ErrWorkoutNotFound
	}

	session := models.Workout{Name: t.catalog.Workouts[i].Name, Active: true}
	for _, def := range t.catalog.Workouts[i].Exercises {
		if def.Active {
			session.Exercises = append(session.Exercises, def)
		}
	}
	entries := make(map[string]models.SessionEntry, len(snap.SessionStates))
	for id, e := range snap.SessionStates {
		entries[id] = e
	}
	date := snap.WorkoutDate
	if date == "" {
		date = t.today()
	}

	if err := t.dropSnapshot(ctx); err != nil {
		return err
	}
	t.current = &activeWorkout{workout: session, date: date, entries: entries}
	t.log.Info("incomplete workout resumed", "workout", session.Name)
	return nil
}

// Discard drops the saved incomplete workout.
func (t *Tracker) Discard(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.snapshot == nil {
		return ErrNoSnapshot
	}
	return t.dropSnapshot(ctx)
}

func (t *Tracker) dropSnapshot(ctx context.Context) error {
	if t.snapshot == nil {
		return nil
	}
	if err := t.store.Delete(ctx, storage.KeyIncomplete); err != nil {
		return fmt.Errorf("deleting incomplete workout: %w", err)
	}
	t.snapshot = nil
	return nil
}

// Reset erases every stored blob and starts over from the default catalog.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current != nil {
		return ErrWorkoutInProgress
	}
	for _, key := range storage.AllKeys {
		if err := t.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("resetting %s: %w", key, err)
		}
	}
	t.snapshot = nil
	t.adopt(models.DefaultCatalog(), userStateRecord{}, []models.HistoryEntry{}, []models.LogEntry{})
	if err := t.writeVersions(ctx); err != nil {
		return err
	}
	t.log.Info("all data reset")
	return t.persist(ctx)
}

// moveItem moves s[from] to index to, shifting the items between.
func moveItem[T any](s []T, from, to int) []T {
	if from == to {
		return s
	}
	item := s[from]
	s = append(s[:from], s[from+1:]...)
	s = append(s[:to], append([]T{item}, s[to:]...)...)
	return s
}
