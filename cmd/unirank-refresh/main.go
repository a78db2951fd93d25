// Command unirank-refresh replaces one ranking year from the published remote sheet and exits
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"unirank/internal/core/ranking"
	"unirank/internal/modkit"
	"unirank/internal/modkit/module"
	"unirank/internal/platform/config"
	"unirank/internal/platform/logger"
	"unirank/internal/platform/store"

	loadermod "unirank/internal/services/loader/module"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:]))
}

// run refreshes one cohort and reports the process exit code; deferred cleanup
// has finished by the time it returns
func run(args []string) int {
	fs := flag.NewFlagSet("unirank-refresh", flag.ContinueOnError)
	var (
		fYear = fs.Int("year", time.Now().Year(), "ranking year to replace")
		fURL  = fs.String("url", "", "override CORE_IMPORT_REMOTE_URL")
		fTO   = fs.Duration("timeout", 2*time.Minute, "overall deadline")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *fURL != "" {
		_ = os.Setenv("CORE_IMPORT_REMOTE_URL", *fURL)
	}

	root := config.New()
	l := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), *fTO)
	defer cancel()

	st, err := store.Open(ctx, store.FromConfig(root, "unirank-refresh"), store.WithLogger(*l))
	if err != nil {
		l.Error().Err(err).Msg("store.Open failed")
		return 1
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// every backend must answer, redis included, before the cohort is replaced
	if err := st.Guard(ctx); err != nil {
		l.Error().Err(err).Msg("backend check failed")
		return 1
	}

	deps := modkit.Deps{Cfg: root, SQL: st.SQL, KV: st.KV, Log: *l}

	// a shared redis cache must not keep serving the replaced cohort. Without redis
	// each API process memoizes in memory, out of reach from here, until its TTL lapses
	var inv ranking.Cache
	if st.KV != nil {
		inv = st.KV
	} else {
		l.Warn().Msg("no redis configured; running API processes serve their cached cohort until CORE_CACHE_TTL expires")
	}
	lm := loadermod.New(deps, modkit.WithPorts(loadermod.Injected{Invalidator: cacheDropper{inv}}))
	loader := module.MustPortsOf[loadermod.Ports](lm).Loader

	if err := loader.EnsureSchema(ctx); err != nil {
		l.Error().Err(err).Msg("schema bootstrap failed")
		return 1
	}
	sum, err := loader.ReplaceCohort(ctx, *fYear)
	if err != nil {
		l.Error().Err(err).Int("year", *fYear).Msg("cohort refresh failed")
		return 1
	}
	l.Info().Int("year", *fYear).Int("success", sum.SuccessCount).Int("errors", sum.ErrorCount).
		Int64("deleted", sum.Deleted).Str("batch_id", sum.BatchID).Msg("cohort refreshed")
	return 0
}

// cacheDropper deletes the cached record set the API memoizes
type cacheDropper struct{ c ranking.Cache }

func (d cacheDropper) Invalidate(ctx context.Context) error {
	if d.c == nil {
		return nil
	}
	return d.c.Del(ctx, ranking.DefaultCacheKey)
}
