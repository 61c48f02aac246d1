package syncer

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs fn every interval until the returned stop func is called.
type Scheduler interface {
	Every(interval time.Duration, fn func()) (stop func())
}

// CronScheduler schedules on a dedicated cron instance per call. Cron runs
// on whole seconds, so Every rounds the interval with Effective first.
type CronScheduler struct {
	logger cron.Logger
}

func NewCronScheduler(logger cron.Logger) *CronScheduler {
	if logger == nil {
		logger = cron.DiscardLogger
	}
	return &CronScheduler{logger: logger}
}

// Effective rounds interval to the nearest whole second, at least one second.
// cron.Every on its own would drop the fraction, turning 2.9s into 2s.
func (s *CronScheduler) Effective(interval time.Duration) time.Duration {
	rounded := interval.Round(time.Second)
	if rounded < time.Second {
		rounded = time.Second
	}
	return rounded
}

func (s *CronScheduler) Every(interval time.Duration, fn func()) func() {
	c := cron.New(
		cron.WithLogger(s.logger),
		cron.WithChain(cron.Recover(s.logger), cron.SkipIfStillRunning(s.logger)),
	)
	c.Schedule(cron.Every(s.Effective(interval)), cron.FuncJob(fn))
	c.Start()
	// Stop does not wait for a running job
	return func() { c.Stop() }
}
