// Package domain holds the loader contracts shared by its repo, service and callers
package domain

import (
	"context"

	"unirank/internal/core/normalize"
	"unirank/internal/core/ranking"
)

// LoaderPort is the write path other modules call
type LoaderPort interface {
	// Load inserts drafts in one transaction, replacing the scoped cohort first
	Load(ctx context.Context, drafts []normalize.Draft, scope Scope) (Summary, error)

	// Clear deletes every record and returns how many went
	Clear(ctx context.Context) (int64, error)

	// ReplaceCohort fetches the remote sheet and reloads year from it
	ReplaceCohort(ctx context.Context, year int) (Summary, error)
}

// Invalidator is told after every committed write
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Repo is the persistence surface the loader writes through
type Repo interface {
	EnsureSchema(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteYear(ctx context.Context, year int) (int64, error)

	// InsertIsolated inserts d under a savepoint. ok=false means the row was refused
	// and rolled back alone; err means the transaction itself is unusable
	InsertIsolated(ctx context.Context, d normalize.Draft) (ok bool, err error)

	// InsertRecord writes a seed record keeping its rank
	InsertRecord(ctx context.Context, r ranking.Record) error
}
