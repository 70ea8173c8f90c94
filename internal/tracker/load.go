package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// BackupKey is where an unparseable blob is copied before it is replaced.
func BackupKey(key string) string {
	return key + "_corrupt_backup"
}

// readBlob fetches key and decodes it into v. It reports found=false for a
// missing key and for a blob that fails to decode; the latter is backed up,
// logged and otherwise ignored.
func (t *Tracker) readBlob(ctx context.Context, key string, v any) (bool, error) {
	data, err := t.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.log.Warn("stored data unreadable, using defaults", "key", key, "error", err)
		if berr := t.store.Set(ctx, BackupKey(key), data); berr != nil {
			t.log.Warn("backing up unreadable data failed", "key", key, "error", berr)
		}
		return false, nil
	}
	return true, nil
}

func (t *Tracker) load(ctx context.Context) error {
	var catalog models.Catalog
	ok, err := t.readBlob(ctx, storage.KeyCatalog, &catalog)
	if err != nil {
		return err
	}
	if !ok || catalog.Workouts == nil {
		catalog = models.DefaultCatalog()
	}

	var state userStateRecord
	ok, err = t.readBlob(ctx, storage.KeyUserState, &state)
	if err != nil {
		return err
	}
	if !ok {
		state = userStateRecord{}
	}

	var history []models.HistoryEntry
	ok, err = t.readBlob(ctx, storage.KeyHistory, &history)
	if err != nil {
		return err
	}
	if !ok || history == nil {
		history = []models.HistoryEntry{}
	}

	var logs []models.LogEntry
	ok, err = t.readBlob(ctx, storage.KeyLogs, &logs)
	if err != nil {
		return err
	}
	if !ok || logs == nil {
		logs = []models.LogEntry{}
	}

	var snap models.Snapshot
	ok, err = t.readBlob(ctx, storage.KeyIncomplete, &snap)
	if err != nil {
		return err
	}
	if ok && snap.WorkoutName != "" {
		t.snapshot = &snap
	} else if err := t.store.Delete(ctx, storage.KeyIncomplete); err != nil {
		return fmt.Errorf("clearing incomplete workout: %w", err)
	}

	t.adopt(catalog, state, history, logs)

	if err := t.writeVersions(ctx); err != nil {
		return err
	}
	if err := t.persist(ctx); err != nil {
		return err
	}

	t.log.Info("state loaded",
		"workouts", len(t.catalog.Workouts),
		"session", t.sessionNumber,
		"history", len(t.history),
		"logs", len(t.logs),
		"incomplete", t.snapshot != nil,
	)
	return nil
}

// adopt replaces all long-lived state. Used by load, import and reset.
func (t *Tracker) adopt(catalog models.Catalog, state userStateRecord, history []models.HistoryEntry, logs []models.LogEntry) {
	t.catalog = catalog
	t.sessionNumber = 1
	if state.SessionNumber != nil && *state.SessionNumber > 0 {
		t.sessionNumber = *state.SessionNumber
	}
	t.progress = buildProgress(catalog, state.ExerciseStates)
	t.history = history
	if len(t.history) > MaxHistoryEntries {
		t.history = t.history[len(t.history)-MaxHistoryEntries:]
	}
	t.logs = logs
	if len(t.logs) > t.maxLogs {
		t.logs = t.logs[:t.maxLogs]
	}
}

func (t *Tracker) writeVersions(ctx context.Context) error {
	if err := t.store.Set(ctx, storage.KeyAppVersion, []byte(AppVersion)); err != nil {
		return fmt.Errorf("saving app version: %w", err)
	}
	if err := t.store.Set(ctx, storage.KeyDataVersion, []byte(strconv.Itoa(DataVersion))); err != nil {
		return fmt.Errorf("saving data version: %w", err)
	}
	return nil
}
