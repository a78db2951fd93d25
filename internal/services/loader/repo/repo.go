// Package repo provides sql access for the loader; statements run unchanged on postgres and sqlite
package repo

import (
	"context"
	"strings"

	"unirank/internal/core/normalize"
	"unirank/internal/core/ranking"
	"unirank/internal/modkit/repokit"
	"unirank/internal/platform/logger"
	"unirank/internal/platform/store"
	"unirank/internal/services/loader/domain"
)

type (
	// SQL is a binder for domain.Repo
	SQL     struct{}
	queries struct{ q repokit.Queryer }
)

// NewSQL returns a binder for domain.Repo
func NewSQL() repokit.Binder[domain.Repo] { return SQL{} }

// Bind implements repokit.Binder
func (SQL) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

const pgSchema = `
CREATE TABLE IF NOT EXISTS universities (
	id            BIGSERIAL PRIMARY KEY,
	rank          INTEGER,
	university    TEXT NOT NULL,
	country       TEXT,
	research      DOUBLE PRECISION DEFAULT 0,
	reputation    DOUBLE PRECISION DEFAULT 0,
	employment    DOUBLE PRECISION DEFAULT 0,
	international DOUBLE PRECISION DEFAULT 0,
	total_score   DOUBLE PRECISION DEFAULT 0,
	star_rating   TEXT,
	year          INTEGER
);
CREATE INDEX IF NOT EXISTS universities_year_idx ON universities (year)
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS universities (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	rank          INTEGER,
	university    TEXT NOT NULL,
	country       TEXT,
	research      REAL DEFAULT 0,
	reputation    REAL DEFAULT 0,
	employment    REAL DEFAULT 0,
	international REAL DEFAULT 0,
	total_score   REAL DEFAULT 0,
	star_rating   TEXT,
	year          INTEGER
);
CREATE INDEX IF NOT EXISTS universities_year_idx ON universities (year)
`

const insertSQL = `
INSERT INTO universities (
	rank, university, country, research, reputation,
	employment, international, total_score, star_rating, year
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

// schema returns the DDL statements for the dialect behind q
func schema(q repokit.Queryer) []string {
	ddl := pgSchema
	if repokit.Dialect(q) == store.DialectSQLite {
		ddl = sqliteSchema
	}
	var out []string
	for stmt := range strings.SplitSeq(ddl, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *queries) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema(r.q) {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	return store.Scalar[int64](ctx, r.q, `SELECT COUNT(*) FROM universities`)
}

func (r *queries) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM universities`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *queries) DeleteYear(ctx context.Context, year int) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM universities WHERE year = $1`, year)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *queries) InsertIsolated(ctx context.Context, d normalize.Draft) (bool, error) {
	if _, err := r.q.Exec(ctx, `SAVEPOINT load_row`); err != nil {
		return false, err
	}
	_, ierr := r.q.Exec(ctx, insertSQL,
		d.Rank, d.University, d.Country,
		d.Research, d.Reputation, d.Employment, d.International, d.TotalScore,
		d.StarRating, d.Year,
	)
	if ierr != nil {
		logger.C(ctx).Debug().Err(ierr).Str("university", d.University).Int("year", d.Year).Msg("row rejected")
		if _, err := r.q.Exec(ctx, `ROLLBACK TO SAVEPOINT load_row`); err != nil {
			return false, err
		}
	}
	if _, err := r.q.Exec(ctx, `RELEASE SAVEPOINT load_row`); err != nil {
		return false, err
	}
	return ierr == nil, nil
}

func (r *queries) InsertRecord(ctx context.Context, rec ranking.Record) error {
	_, err := r.q.Exec(ctx, insertSQL,
		rec.Rank, rec.University, rec.Country,
		rec.Research, rec.Reputation, rec.Employment, rec.International, rec.TotalScore,
		rec.StarRating, rec.Year,
	)
	return err
}
