package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"unirank/internal/platform/testkit"
)

func TestOpen_EmptyURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "  "}, nil); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestOpen_TempFile(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "unirank.db") + "?_pragma=busy_timeout(5000)"
	db, err := Open(context.Background(), Config{URL: dsn, SlowMs: 250}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if db.SlowMs != 250 {
		t.Fatalf("SlowMs = %d", db.SlowMs)
	}
	var one int
	if err := db.DB.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("select 1: %v %d", err, one)
	}
}

func TestOpen_MemoryPinsSingleConn(t *testing.T) {
	db, err := Open(context.Background(), Config{URL: "file::memory:", MaxConns: 8}, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	if got := db.DB.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("MaxOpenConnections = %d, want 1", got)
	}
}

func TestOpen_DriverError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openDB, func(string, string) (*sql.DB, error) {
		return nil, errors.New("no driver")
	})
	if _, err := Open(context.Background(), Config{URL: "file:x.db"}, nil); err == nil {
		t.Fatalf("expected open error")
	}
}

func TestClose_NilSafe(t *testing.T) {
	var d *DB
	if err := d.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}
}
