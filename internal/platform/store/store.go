// Package store opens the relational and key/value backends the services share
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unirank/internal/platform/logger"
)

// Store holds the opened backends. SQL or KV is nil when its backend is not configured
type Store struct {
	Log logger.Logger
	SQL TxRunner
	KV  KV
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set; callers must Close it
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a statement changed
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements against the database or an open transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner commits fn's work when it returns nil and rolls it back otherwise
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// KV stores bytes under keys with an expiry; Get reports ok=false on a miss
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Close() error
}

// Pinger reports whether a backend answers
type Pinger interface{ Ping(context.Context) error }

// Open connects the backends cfg enables. A failure closes whatever was already opened
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	var err error
	switch cfg.Driver {
	case DriverNone:
	case DriverPostgres:
		s.SQL, err = openPG(ctx, cfg, s)
	case DriverSQLite:
		s.SQL, err = openSQLite(ctx, cfg, s)
	default:
		err = fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Redis.Enabled {
		if s.KV, err = openRedis(ctx, cfg); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}
	return s, nil
}

// Guard pings every opened backend and joins the failures
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	if p, ok := s.SQL.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", DialectOf(s.SQL), err))
		}
	}
	if p, ok := s.KV.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close closes the opened backends and joins their errors
func (s *Store) Close(context.Context) error {
	var errs []error
	if s.KV != nil {
		errs = append(errs, s.KV.Close())
	}
	if c, ok := s.SQL.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
