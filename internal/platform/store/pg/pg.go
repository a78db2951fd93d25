// Package pg opens the pgx connection pool behind the postgres store
package pg

import (
	"context"
	"fmt"
	"strings"

	"unirank/internal/platform/store/trace"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	AppName  string // application_name unless the URL already sets one
	MaxConns int32
	SlowMs   int
}

// PG is the pool plus the tracer its adapter reports to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer trace.QueryTracer
	SlowMs int
}

var newPool = pgxpool.NewWithConfig

// Open parses the URL and builds the pool. It does not wait for the server
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*PG, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("pg: url must not be empty")
	}
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	params := pcfg.ConnConfig.RuntimeParams
	if _, set := params["application_name"]; !set && cfg.AppName != "" {
		params["application_name"] = cfg.AppName
	}

	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}
	return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the pool; safe on nil
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
