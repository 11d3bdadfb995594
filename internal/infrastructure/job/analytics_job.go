// Package job holds the periodic background jobs and their scheduler.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const analyticsJobTimeout = 30 * time.Second

// AnalyticsRefresher recomputes and caches the admin analytics summary.
type AnalyticsRefresher interface {
	RefreshAnalytics(ctx context.Context) error
}

// AnalyticsWarmJob keeps the analytics cache warm so dashboard reads rarely
// pay for the aggregation.
type AnalyticsWarmJob struct {
	refresher AnalyticsRefresher
	log       zerolog.Logger
}

func NewAnalyticsWarmJob(refresher AnalyticsRefresher, log zerolog.Logger) *AnalyticsWarmJob {
	return &AnalyticsWarmJob{refresher: refresher, log: log}
}

// Run implements cron.Job.
func (j *AnalyticsWarmJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), analyticsJobTimeout)
	defer cancel()

	start := time.Now()
	if err := j.refresher.RefreshAnalytics(ctx); err != nil {
		j.log.Warn().Err(err).Msg("analytics warm job failed")
		return
	}
	j.log.Debug().Dur("took", time.Since(start)).Msg("analytics cache refreshed")
}

// Scheduler wraps a cron instance.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

func NewScheduler(log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cronLogger{log}))),
		log:  log,
	}
}

// Add registers job under spec, e.g. "@every 5m".
func (s *Scheduler) Add(spec string, job cron.Job) error {
	if _, err := s.cron.AddJob(spec, job); err != nil {
		return fmt.Errorf("schedule %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for running jobs up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out with jobs still running")
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
