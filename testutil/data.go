// Package testutil provides shared helpers for tests that need a data
// directory on disk. Every helper works inside t.TempDir, so tests never
// touch a real data directory and clean up after themselves.
package testutil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkordes/travel-agency/internal/repo"
	"github.com/pkordes/travel-agency/seed"
)

// Logger returns a logger that discards everything. Pass it to code under
// test that requires a *slog.Logger.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WriteJSON encodes v into dir/file. Use it to lay down hand-written data
// files, including legacy or malformed shapes built from maps.
func WriteJSON(t *testing.T, dir, file string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("testutil.WriteJSON: encode %s: %v", file, err)
	}
	WriteRaw(t, dir, file, string(data))
}

// WriteRaw writes contents verbatim to dir/file.
func WriteRaw(t *testing.T, dir, file, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, file), []byte(contents), 0o644); err != nil {
		t.Fatalf("testutil.WriteRaw: %v", err)
	}
}

// ReadRecords decodes dir/file as a JSON array of generic objects so tests
// can assert on the exact persisted field names.
func ReadRecords(t *testing.T, dir, file string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		t.Fatalf("testutil.ReadRecords: %v", err)
	}
	var out []map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("testutil.ReadRecords: decode %s: %v", file, err)
	}
	return out
}

// NewStore returns an empty, unloaded DataStore rooted at a fresh temp dir.
func NewStore(t *testing.T, opts ...repo.Option) *repo.DataStore {
	t.Helper()
	opts = append([]repo.Option{repo.WithLogger(Logger())}, opts...)
	store, err := repo.New(t.TempDir(), opts...)
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	return store
}

// NewSeededStore returns a DataStore loaded from the embedded sample dataset.
func NewSeededStore(t *testing.T, opts ...repo.Option) *repo.DataStore {
	t.Helper()
	store := NewStore(t, opts...)
	ctx := context.Background()
	if _, err := store.Bootstrap(ctx, seed.FS); err != nil {
		t.Fatalf("testutil.NewSeededStore: bootstrap: %v", err)
	}
	if err := store.Load(ctx); err != nil {
		t.Fatalf("testutil.NewSeededStore: load: %v", err)
	}
	return store
}
