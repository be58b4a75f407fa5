// Package scheduler triggers the session expiry sweep on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work. It takes no arguments: everything it
// needs is captured when it is built.
type Job func()

// Scheduler runs registered jobs on their cron specs.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger
}

// New creates a scheduler. Specs accept the standard five-field syntax and
// descriptors such as "@every 5m" or "@hourly".
func New(logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.PrintfLogger(logger))),
		logger: logger,
	}
}

// Add registers job on spec. Runs may overlap if a job outlasts its interval.
func (s *Scheduler) Add(spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SweepJob adapts a sweep runner to a Job, logging its outcome.
func SweepJob(ctx context.Context, run func(context.Context) error, logger *log.Logger) Job {
	return func() {
		if err := run(ctx); err != nil && logger != nil {
			logger.Printf("scheduled sweep failed: %v", err)
		}
	}
}
