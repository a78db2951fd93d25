// Package service implements the loader write path
package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"unirank/internal/adapters/ingest/tabular"
	"unirank/internal/core/normalize"
	"unirank/internal/core/ranking"
	"unirank/internal/modkit/repokit"
	"unirank/internal/modkit/scope"
	perr "unirank/internal/platform/errors"
	"unirank/internal/platform/logger"
	"unirank/internal/services/loader/domain"

	"github.com/google/uuid"
)

// SourceKey is the scope key callers set to name where a batch came from
const SourceKey = "import_source"

// a batch whose transaction hits lock contention is rerun from scratch
const (
	loadAttempts = 3
	retryPause   = 200 * time.Millisecond
)

// Service defines the loader service contract
type Service interface {
	domain.LoaderPort
	EnsureSchema(ctx context.Context) error
	Seed(ctx context.Context, records []ranking.Record) (int, error)
}

// Config wires the optional collaborators
type Config struct {
	Normalizer  *normalize.Normalizer
	Fetcher     tabular.Fetcher
	RemoteURL   string
	Invalidator domain.Invalidator
}

// Svc implements Service
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[domain.Repo]
	cfg    Config
	newID  func() string
}

// New constructs the loader service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], cfg Config) *Svc {
	if db == nil {
		panic("loader.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("loader.Service requires a non nil Repo binder")
	}
	if cfg.Normalizer == nil {
		cfg.Normalizer = normalize.New()
	}
	return &Svc{db: db, binder: binder, cfg: cfg, newID: uuid.NewString}
}

// EnsureSchema creates the universities table for the active dialect
func (s *Svc) EnsureSchema(ctx context.Context) error {
	return perr.FromStore(s.binder.Bind(s.db).EnsureSchema(ctx), "ensure schema")
}

// Load runs the batch in one transaction. A year scope deletes that cohort first;
// rows with a blank university or a failing insert are counted and skipped.
// A transaction lost to contention is retried whole, up to loadAttempts times
func (s *Svc) Load(ctx context.Context, drafts []normalize.Draft, sc domain.Scope) (domain.Summary, error) {
	sum := domain.Summary{TotalCount: len(drafts), BatchID: s.newID()}
	log := s.batchLog(ctx, sum.BatchID)

	runner := s.db
	if sc.Year != nil {
		year := *sc.Year
		runner = repokit.WithBeginHooks(s.db, func(ctx context.Context, q repokit.Queryer) error {
			n, err := s.binder.Bind(q).DeleteYear(ctx, year)
			if err != nil {
				return perr.FromStoref(err, "delete cohort %d", year)
			}
			sum.Deleted = n
			return nil
		})
	}

	load := func(q repokit.Queryer) error {
		sum.SuccessCount, sum.ErrorCount = 0, 0
		repo := s.binder.Bind(q)
		for i, d := range drafts {
			if strings.TrimSpace(d.University) == "" {
				sum.ErrorCount++
				log.Debug().Int("row", i+1).Msg("row rejected: university is required")
				continue
			}
			ok, err := repo.InsertIsolated(ctx, d)
			if err != nil {
				return perr.FromStoref(err, "insert row %d", i+1)
			}
			if !ok {
				sum.ErrorCount++
				continue
			}
			sum.SuccessCount++
		}
		return nil
	}

	var err error
	for attempt := 1; ; attempt++ {
		err = runner.Tx(ctx, load)
		if err == nil || attempt == loadAttempts || !perr.Retryable(err) {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("load contended, retrying")
		select {
		case <-ctx.Done():
			return domain.Summary{}, perr.FromStore(ctx.Err(), "load universities")
		case <-time.After(time.Duration(attempt) * retryPause):
		}
	}
	if err != nil {
		log.Error().Err(err).Msg("load aborted")
		return domain.Summary{}, perr.FromStore(err, "load universities")
	}

	s.invalidate(ctx)
	ev := log.Info().
		Int("success", sum.SuccessCount).
		Int("errors", sum.ErrorCount).
		Int("total", sum.TotalCount)
	if sc.Year != nil {
		ev = ev.Int("year", *sc.Year).Int64("deleted", sum.Deleted)
	}
	ev.Msg("load committed")
	return sum, nil
}

// Clear deletes every record
func (s *Svc) Clear(ctx context.Context) (int64, error) {
	n, err := s.binder.Bind(s.db).DeleteAll(ctx)
	if err != nil {
		return 0, perr.FromStore(err, "delete universities")
	}
	s.invalidate(ctx)
	logger.C(ctx).Info().Str("component", "loader").Int64("deleted", n).Msg("all records cleared")
	return n, nil
}

// ReplaceCohort fetches the configured remote CSV and reloads year from it
func (s *Svc) ReplaceCohort(ctx context.Context, year int) (domain.Summary, error) {
	if s.cfg.Fetcher == nil || s.cfg.RemoteURL == "" {
		return domain.Summary{}, perr.Unavailablef("remote import is not configured")
	}
	ctx = scope.With(ctx, SourceKey, "cohort:"+strconv.Itoa(year))

	body, err := s.cfg.Fetcher.Fetch(ctx, s.cfg.RemoteURL)
	if err != nil {
		return domain.Summary{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "fetch remote sheet")
	}
	defer func() { _ = body.Close() }()

	res, err := tabular.DecodeCSV(body)
	if err != nil {
		return domain.Summary{}, DecodeErr(err)
	}
	if res.Skipped > 0 {
		logger.C(ctx).Warn().Str("component", "loader").Int("skipped", res.Skipped).Msg("remote sheet had malformed lines")
	}

	drafts := s.cfg.Normalizer.WithYear(year).Batch(res.Rows)
	return s.Load(ctx, drafts, domain.YearScope(year))
}

// Seed inserts records when the table is empty and reports how many were written
func (s *Svc) Seed(ctx context.Context, records []ranking.Record) (int, error) {
	written := 0
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		repo := s.binder.Bind(q)
		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		for _, r := range records {
			if err := repo.InsertRecord(ctx, r); err != nil {
				return err
			}
			written++
		}
		return nil
	})
	if err != nil {
		return 0, perr.FromStore(err, "seed universities")
	}
	if written > 0 {
		s.invalidate(ctx)
		logger.C(ctx).Info().Str("component", "loader").Int("records", written).Msg("seeded empty store")
	}
	return written, nil
}

// DecodeErr maps a tabular decode failure onto the project error taxonomy
func DecodeErr(err error) error {
	var de *tabular.DecodeError
	if errors.As(err, &de) {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, de.Reason)
	}
	return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "unreadable sheet")
}

func (s *Svc) invalidate(ctx context.Context) {
	if s.cfg.Invalidator == nil {
		return
	}
	if err := s.cfg.Invalidator.Invalidate(ctx); err != nil {
		logger.C(ctx).Warn().Err(err).Str("component", "loader").Msg("cache invalidation failed")
	}
}

func (s *Svc) batchLog(ctx context.Context, batch string) logger.Logger {
	lc := logger.C(ctx).With().Str("component", "loader").Str("batch_id", batch)
	if src, ok := scope.Get(ctx, SourceKey); ok {
		lc = lc.Str("source", src)
	}
	return lc.Logger()
}
