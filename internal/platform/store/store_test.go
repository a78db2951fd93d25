package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func openTempSQLite(t *testing.T, log zerolog.Logger, logSQL bool) *Store {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "store.db") + "?_pragma=busy_timeout(5000)"
	s, err := Open(context.Background(), Config{
		Driver: DriverSQLite,
		SQLite: SQLiteConfig{URL: dsn, LogSQL: logSQL},
	}, WithLogger(log))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestOpen_SQLite_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempSQLite(t, zerolog.Nop(), false)

	if s.SQL == nil || s.KV != nil {
		t.Fatalf("unexpected seams SQL=%T KV=%T", s.SQL, s.KV)
	}
	if d := DialectOf(s.SQL); d != DialectSQLite {
		t.Fatalf("dialect = %q", d)
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("guard: %v", err)
	}

	if _, err := s.SQL.Exec(ctx, `CREATE TABLE u (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, year INTEGER)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	tag, err := s.SQL.Exec(ctx, `INSERT INTO u (name, year) VALUES ($1, $2), ($3, $2)`, "MIT", 2025, "Oxford")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if tag.RowsAffected() != 2 {
		t.Fatalf("rows affected = %d", tag.RowsAffected())
	}

	n, err := Scalar[int](ctx, s.SQL, `SELECT count(*) FROM u WHERE year = $1`, 2025)
	if err != nil || n != 2 {
		t.Fatalf("count = %d err=%v", n, err)
	}

	names, err := Many(ctx, s.SQL, func(r Row) (string, error) {
		var v string
		err := r.Scan(&v)
		return v, err
	}, `SELECT name FROM u ORDER BY id`)
	if err != nil {
		t.Fatalf("many: %v", err)
	}
	if strings.Join(names, ",") != "MIT,Oxford" {
		t.Fatalf("names = %v", names)
	}
}

func TestSQLite_TxRollbackAndSavepoint(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openTempSQLite(t, zerolog.Nop(), false)
	if _, err := s.SQL.Exec(ctx, `CREATE TABLE u (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	err := s.SQL.Tx(ctx, func(q RowQuerier) error {
		if DialectOf(q) != DialectSQLite {
			t.Errorf("tx querier lost its dialect")
		}
		if _, err := q.Exec(ctx, `INSERT INTO u (name) VALUES ($1)`, "gone"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("tx err = %v", err)
	}

	err = s.SQL.Tx(ctx, func(q RowQuerier) error {
		for _, name := range []any{"MIT", nil, "Oxford"} {
			if _, err := q.Exec(ctx, "SAVEPOINT row_insert"); err != nil {
				return err
			}
			if _, err := q.Exec(ctx, `INSERT INTO u (name) VALUES ($1)`, name); err != nil {
				if _, err := q.Exec(ctx, "ROLLBACK TO SAVEPOINT row_insert"); err != nil {
					return err
				}
			}
			if _, err := q.Exec(ctx, "RELEASE SAVEPOINT row_insert"); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("savepoint tx: %v", err)
	}

	n, err := Scalar[int](ctx, s.SQL, `SELECT count(*) FROM u`)
	if err != nil || n != 2 {
		t.Fatalf("count = %d err=%v, want 2 (rolled back tx row must be absent)", n, err)
	}
}

func TestSQLite_TracerLogsStatements(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := openTempSQLite(t, zerolog.New(&buf), true)

	var one int
	if err := s.SQL.QueryRow(context.Background(), "SELECT   1").Scan(&one); err != nil {
		t.Fatalf("select: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"message":"sqlite query"`) || !strings.Contains(out, `"sql":"SELECT 1"`) {
		t.Fatalf("expected traced query, got %s", out)
	}
}

func TestOpen_Rejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"unknown driver", Config{Driver: "oracle"}, "unknown driver"},
		{"bad postgres url", Config{Driver: DriverPostgres, PG: PGConfig{URL: "://bad", MaxConns: 1}}, ""},
		{"bad redis url", Config{Redis: RedisConfig{Enabled: true, URL: "not-a-url"}}, "redis"},
	}
	for _, c := range cases {
		s, err := Open(context.Background(), c.cfg, WithLogger(zerolog.Nop()))
		if err == nil || s != nil {
			t.Fatalf("%s: store=%v err=%v", c.name, s, err)
		}
		if !strings.Contains(err.Error(), c.want) {
			t.Fatalf("%s: err %q missing %q", c.name, err, c.want)
		}
	}
}

func TestDialectOf_DefaultsToPostgres(t *testing.T) {
	t.Parallel()

	if DialectOf(struct{}{}) != DialectPostgres {
		t.Fatalf("foreign value should default to postgres")
	}
}
