package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"unirank/internal/platform/store"

	"github.com/rs/zerolog"
)

const sheet = "Rank,University,Country,Total_Score\n1,Alpha U,France,90\n2,Beta U,Spain,80\n"

func sqliteEnv(t *testing.T) string {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "refresh.db") + "?_pragma=busy_timeout(5000)"
	t.Setenv("SERVICE_STORE_DRIVER", "sqlite")
	t.Setenv("SERVICE_STORE_DBURL", dsn)
	t.Setenv("SERVICE_REDIS_URL", "")
	t.Setenv("CORE_IMPORT_REMOTE_URL", "")
	return dsn
}

func TestRun_ExitCodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sheet.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sheet))
	}))
	defer srv.Close()

	cases := []struct {
		name string
		args []string
		code int
	}{
		{"refreshed", []string{"-year=2024", "-url=" + srv.URL + "/sheet.csv"}, 0},
		{"remote missing", []string{"-year=2024", "-url=" + srv.URL + "/gone.csv"}, 1},
		{"bad flag", []string{"-timeout=soon"}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sqliteEnv(t)
			if got := run(tc.args); got != tc.code {
				t.Fatalf("run(%v) = %d, want %d", tc.args, got, tc.code)
			}
		})
	}
}

func TestRun_ClosesStoreOnFailure(t *testing.T) {
	dsn := sqliteEnv(t)
	if got := run([]string{"-url=http://127.0.0.1:1/none.csv", "-timeout=5s"}); got != 1 {
		t.Fatalf("run = %d, want 1", got)
	}

	// the file is free again once run returns
	st, err := store.Open(context.Background(), store.Config{
		Driver: store.DriverSQLite,
		SQLite: store.SQLiteConfig{URL: dsn, SlowQueryMs: -1},
	}, store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = st.Close(context.Background()) }()
	n, err := store.Scalar[int64](context.Background(), st.SQL, "SELECT COUNT(*) FROM universities")
	if err != nil || n != 0 {
		t.Fatalf("rows = %d err = %v, want an empty cohort table", n, err)
	}
}
