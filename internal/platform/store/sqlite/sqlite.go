// Package sqlite provides an embedded SQLite client over database/sql with optional query tracing
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"unirank/internal/platform/store/trace"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Config configures the sqlite handle
type Config struct {
	URL      string
	MaxConns int
	SlowMs   int
}

// DB is a sqlite handle with optional tracer
type DB struct {
	DB     *sql.DB
	Tracer trace.QueryTracer
	SlowMs int
}

var openDB = sql.Open

// Open opens the database, pings it and applies the connection pragmas
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("sqlite: url must not be empty")
	}

	db, err := openDB("sqlite", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 4
	}
	// every connection to :memory: is its own database
	if strings.Contains(cfg.URL, ":memory:") || strings.Contains(cfg.URL, "mode=memory") {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	_, _ = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	_, _ = db.ExecContext(ctx, "PRAGMA journal_mode = WAL")

	return &DB{DB: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the handle
func (d *DB) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}
