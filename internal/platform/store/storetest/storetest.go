// Package storetest opens throwaway stores for package tests
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"unirank/internal/platform/store"

	"github.com/rs/zerolog"
)

// SQLite opens a store on a fresh database file under t.TempDir and closes it on cleanup
func SQLite(t *testing.T) *store.Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "unirank.db") + "?_pragma=busy_timeout(5000)"
	s, err := store.Open(context.Background(), store.Config{
		Driver: store.DriverSQLite,
		SQLite: store.SQLiteConfig{URL: dsn, SlowQueryMs: -1},
	}, store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}
