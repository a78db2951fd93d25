package store_test

import (
	"context"
	"errors"
	"testing"

	"unirank/internal/platform/store"
	"unirank/internal/platform/store/storetest"
)

type ranked struct {
	Name string
	Rank int
}

func scanRanked(r store.Row) (ranked, error) {
	var v ranked
	err := r.Scan(&v.Name, &v.Rank)
	return v, err
}

func rankings(t *testing.T) store.TxRunner {
	t.Helper()
	db := storetest.SQLite(t).SQL
	ctx := context.Background()
	if _, err := db.Exec(ctx, `CREATE TABLE ranks (name TEXT NOT NULL, rank INTEGER NOT NULL)`); err != nil {
		t.Fatalf("ddl: %v", err)
	}
	for i, n := range []string{"Alpha University", "Beta College", "Gamma Institute"} {
		if _, err := db.Exec(ctx, `INSERT INTO ranks (name, rank) VALUES ($1, $2)`, n, i+1); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return db
}

func TestScalar(t *testing.T) {
	db := rankings(t)
	ctx := context.Background()

	n, err := store.Scalar[int64](ctx, db, `SELECT COUNT(*) FROM ranks`)
	if err != nil || n != 3 {
		t.Fatalf("count = %d err = %v", n, err)
	}
	name, err := store.Scalar[string](ctx, db, `SELECT name FROM ranks WHERE rank = $1`, 2)
	if err != nil || name != "Beta College" {
		t.Fatalf("name = %q err = %v", name, err)
	}
	if _, err := store.Scalar[string](ctx, db, `SELECT name FROM ranks WHERE rank = $1`, 9); err == nil {
		t.Fatalf("expected no rows error")
	}
}

func TestMany(t *testing.T) {
	db := rankings(t)
	ctx := context.Background()

	got, err := store.Many(ctx, db, scanRanked, `SELECT name, rank FROM ranks WHERE rank >= $1 ORDER BY rank DESC`, 2)
	if err != nil {
		t.Fatalf("many: %v", err)
	}
	if len(got) != 2 || got[0] != (ranked{"Gamma Institute", 3}) || got[1] != (ranked{"Beta College", 2}) {
		t.Fatalf("rows = %+v", got)
	}

	none, err := store.Many(ctx, db, scanRanked, `SELECT name, rank FROM ranks WHERE rank > 10`)
	if err != nil || none != nil {
		t.Fatalf("empty = %+v err = %v", none, err)
	}

	if _, err := store.Many(ctx, db, scanRanked, `SELECT name, rank FROM missing`); err == nil {
		t.Fatalf("expected query error")
	}

	boom := errors.New("bad row")
	_, err = store.Many(ctx, db, func(store.Row) (ranked, error) { return ranked{}, boom }, `SELECT name, rank FROM ranks`)
	if !errors.Is(err, boom) {
		t.Fatalf("scan error = %v", err)
	}
}
