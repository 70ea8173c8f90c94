// Package storage persists liftlog's JSON blobs in a flat key-value store.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("key not found")

// Blob keys. Each holds one complete JSON document that is rewritten whole.
const (
	KeyCatalog     = "app_config"
	KeyUserState   = "user_state"
	KeyHistory     = "workout_history"
	KeyLogs        = "workout_logs"
	KeyIncomplete  = "incomplete_workout"
	KeyAppVersion  = "app_version"
	KeyDataVersion = "data_version"
)

// AllKeys lists every key liftlog writes.
var AllKeys = []string{KeyCatalog, KeyUserState, KeyHistory, KeyLogs, KeyIncomplete, KeyAppVersion, KeyDataVersion}

// Store is a single-writer blob store. Last full write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Supported store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open connects to the store named by driver. target is a file path for
// sqlite and a DSN for postgres; memory ignores it.
func Open(ctx context.Context, driver, target string) (Store, error) {
	switch driver {
	case DriverSQLite, "":
		s, err := OpenSQLite(target)
		if err != nil {
			return nil, err
		}
		return s, nil
	case DriverPostgres:
		p, err := NewPostgres(ctx, target)
		if err != nil {
			return nil, err
		}
		return p, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
