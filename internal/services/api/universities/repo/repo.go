// Package repo provides sql reads for the universities record source
package repo

import (
	"context"

	"unirank/internal/core/ranking"
	"unirank/internal/modkit/repokit"
	"unirank/internal/platform/store"
)

// Repo is the minimal persistence surface for reads
type Repo interface {
	All(ctx context.Context) ([]ranking.Record, error)
}

type (
	// SQL is a binder for Repo; the statement is portable across postgres and sqlite
	SQL     struct{}
	queries struct{ q repokit.Queryer }
)

// NewSQL returns a binder for Repo
func NewSQL() repokit.Binder[Repo] { return SQL{} }

// Bind wires a Queryer to the repo
func (SQL) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) All(ctx context.Context) ([]ranking.Record, error) {
	const sql = `
select id, rank, university, coalesce(country, ''),
	coalesce(research, 0), coalesce(reputation, 0), coalesce(employment, 0),
	coalesce(international, 0), coalesce(total_score, 0),
	coalesce(star_rating, ''), coalesce(year, 0)
from universities
order by id
`
	out, err := store.Many(ctx, r.q, scanRecord, sql)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []ranking.Record{}
	}
	return out, nil
}

func scanRecord(row store.Row) (ranking.Record, error) {
	var rec ranking.Record
	err := row.Scan(
		&rec.ID, &rec.Rank, &rec.University, &rec.Country,
		&rec.Research, &rec.Reputation, &rec.Employment,
		&rec.International, &rec.TotalScore,
		&rec.StarRating, &rec.Year,
	)
	return rec, err
}

// NewSource exposes the table as a ranking.Source
func NewSource(db repokit.Queryer, binder repokit.Binder[Repo]) ranking.Source {
	return ranking.SourceFunc(func(ctx context.Context) ([]ranking.Record, error) {
		return binder.Bind(db).All(ctx)
	})
}
