// @title         unirank API
// @version       1.0.0
// @description   University rankings listing and import pipeline

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unirank/internal/core/ranking"
	"unirank/internal/modkit/module"
	"unirank/internal/platform/config"
	"unirank/internal/platform/logger"
	phttp "unirank/internal/platform/net/http"
	"unirank/internal/platform/store"

	"unirank/internal/services/api"
	loadermod "unirank/internal/services/loader/module"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := api.FromConfig(root)
	opts.Logger = l

	// memory mode needs no database at all
	if opts.Source != api.SourceMemory {
		st, err := store.Open(ctx, store.FromConfig(root, "unirank-api"), store.WithLogger(*l))
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		opts.Store = st
	}

	// http server (reads CORE_API_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(srv.Router(), opts)

	// store mode registers the loader alongside the API modules
	if ports, ok := module.PortsAs[loadermod.Ports](loadermod.ModuleName); ok {
		if err := ports.Loader.EnsureSchema(ctx); err != nil {
			l.Panic().Err(err).Msg("schema bootstrap failed")
		}
		if loadermod.FromConfig(root).Seed {
			n, err := ports.Loader.Seed(ctx, ranking.Seed())
			if err != nil {
				l.Panic().Err(err).Msg("seed failed")
			}
			if n > 0 {
				l.Info().Int("records", n).Msg("empty store seeded")
			}
		}
		if err := ports.Scheduler.Start(); err != nil {
			l.Panic().Err(err).Msg("refresh schedule rejected")
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			ports.Scheduler.Stop(sctx)
		}()
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	// run
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
