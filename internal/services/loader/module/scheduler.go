package module

import (
	"context"
	"time"

	"unirank/internal/platform/logger"
	"unirank/internal/services/loader/domain"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic cohort refresh
type Scheduler struct {
	loader  domain.LoaderPort
	spec    string
	year    int
	timeout time.Duration
	now     func() time.Time
	c       *cron.Cron
}

// NewScheduler builds a scheduler from o; it does nothing until Start
func NewScheduler(loader domain.LoaderPort, o Options) *Scheduler {
	return &Scheduler{
		loader:  loader,
		spec:    o.RefreshCron,
		year:    o.RefreshYear,
		timeout: 2*o.FetchTimeout + time.Minute,
		now:     time.Now,
	}
}

// Enabled reports whether a schedule is configured
func (s *Scheduler) Enabled() bool { return s != nil && s.spec != "" }

// Start registers the refresh job and starts the cron loop; a disabled scheduler is a no-op
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		return nil
	}
	cl := cronLogger{l: *logger.Named("loader.cron")}
	s.c = cron.New(
		cron.WithSeconds(),
		cron.WithLocation(time.UTC),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	if _, err := s.c.AddFunc(s.spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return err
	}
	s.c.Start()
	logger.Named("loader.cron").Info().Str("schedule", s.spec).Int("year", s.cohort()).Msg("cohort refresh scheduled")
	return nil
}

// Stop halts the loop and waits for a running refresh up to ctx
func (s *Scheduler) Stop(ctx context.Context) {
	if s == nil || s.c == nil {
		return
	}
	select {
	case <-s.c.Stop().Done():
	case <-ctx.Done():
	}
}

// RunOnce performs one refresh of the configured cohort
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	year := s.cohort()
	log := logger.Named("loader.cron")
	sum, err := s.loader.ReplaceCohort(ctx, year)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("scheduled cohort refresh failed")
		return
	}
	log.Info().
		Int("year", year).
		Str("batch_id", sum.BatchID).
		Int("success", sum.SuccessCount).
		Int("errors", sum.ErrorCount).
		Msg("scheduled cohort refresh done")
}

func (s *Scheduler) cohort() int {
	if s.year > 0 {
		return s.year
	}
	return s.now().Year()
}

// cronLogger adapts zerolog to cron.Logger
type cronLogger struct{ l logger.Logger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debug().Fields(kv).Msg(msg)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Error().Err(err).Fields(kv).Msg(msg)
}
