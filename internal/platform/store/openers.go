package store

import (
	"context"
	"fmt"
	"time"

	"unirank/internal/platform/store/pg"
	"unirank/internal/platform/store/sqlite"
	"unirank/internal/platform/store/trace"

	"github.com/redis/go-redis/v9"
)

// openPG opens the pool and publishes the adapter only once the server answers
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer trace.QueryTracer
	if cfg.PG.LogSQL {
		tracer = trace.Tracer(s.Log, string(DialectPostgres))
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}

	err = waitReady(ctx, cfg.PG.ConnectRetries, cfg.PG.PingTimeout, p.Pool.Ping)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return newPGAdapter(p), nil
}

// waitReady pings until it succeeds, doubling the pause between attempts up to 2s
// attempts <= 0 means 20 and timeout <= 0 means 3s per ping
func waitReady(ctx context.Context, attempts int, timeout time.Duration, ping func(context.Context) error) error {
	if attempts <= 0 {
		attempts = 20
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pause := 150 * time.Millisecond
	var last error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
		pause = min(2*pause, 2*time.Second)
	}
	return fmt.Errorf("not ready after %d attempts: %w", attempts, last)
}

// openSQLite opens the embedded database and wraps it with the sqlite adapter
func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer trace.QueryTracer
	if cfg.SQLite.LogSQL {
		tracer = trace.Tracer(s.Log, string(DialectSQLite))
	}

	url := cfg.SQLite.URL
	if url == "" {
		url = DefaultSQLiteURL
	}
	db, err := sqlite.Open(ctx, sqlite.Config{
		URL:      url,
		MaxConns: cfg.SQLite.MaxConns,
		SlowMs:   cfg.SQLite.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}
	return newSQLiteAdapter(db), nil
}

// openRedis parses the url and waits for the server like openPG does
func openRedis(ctx context.Context, cfg Config) (KV, error) {
	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	client := redis.NewClient(opt)

	ping := func(ctx context.Context) error { return client.Ping(ctx).Err() }
	if err := waitReady(ctx, cfg.Redis.ConnectRetries, 5*time.Second, ping); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	return newRedisAdapter(client), nil
}
