package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(filepath.Join(t.TempDir(), "data", "liftlog.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemory(),
	}
}

// TestStoreRoundTrip verifies Set/Get/Delete semantics shared by every
// backend: missing keys report ErrNotFound and writes replace whole values.
func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, KeyUserState); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := s.Set(ctx, KeyUserState, []byte(`{"sessionNumber":1}`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := s.Set(ctx, KeyUserState, []byte(`{"sessionNumber":2}`)); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			got, err := s.Get(ctx, KeyUserState)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `{"sessionNumber":2}` {
				t.Errorf("Get = %s, want overwritten value", got)
			}

			if err := s.Delete(ctx, KeyUserState); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if err := s.Delete(ctx, KeyUserState); err != nil {
				t.Fatalf("Delete(missing): %v", err)
			}
			if _, err := s.Get(ctx, KeyUserState); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after delete error = %v, want ErrNotFound", err)
			}
		})
	}
}

// TestSQLitePersistsAcrossOpen verifies data survives closing and reopening
// the database file.
func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "liftlog.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set(ctx, KeyLogs, []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(ctx, KeyLogs)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("Get = %s, want []", got)
	}
}

// TestSQLiteUsesWAL verifies the database file is opened in WAL mode.
func TestSQLiteUsesWAL(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "liftlog.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.db.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

// TestMemoryCopiesValues verifies callers cannot mutate stored bytes through
// the slices they pass in or get back.
func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	buf := []byte("abc")
	m.Set(ctx, "k", buf)
	buf[0] = 'x'

	got, _ := m.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("Get = %s, want abc", got)
	}
	got[0] = 'y'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("Get after mutation = %s, want abc", again)
	}
}

// TestOpenUnknownDriver verifies a clear error for unsupported drivers.
func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "redis", ""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

// TestOpenSQLiteEmptyPath verifies that an empty path is rejected rather
// than creating a database in an unexpected place.
func TestOpenSQLiteEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
