// Package scheduler wires up the cron jobs that drive the monitor: the
// recurring monitoring cycle and the once-daily rollup.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vicpaltor/job-monitor-whatsapp/internal/model"
)

// CycleRunner runs one full scrape → dedup → notify pass.
type CycleRunner interface {
	RunCycle(ctx context.Context) ([]model.StoredPosting, error)
}

// RollupReporter emits the daily summary for a given day.
type RollupReporter interface {
	Run(ctx context.Context, day time.Time) (model.Summary, error)
}

// RollupLog exposes when the last rollup was recorded, for catch-up after a
// restart.
type RollupLog interface {
	LastRollupAt(ctx context.Context) (*time.Time, error)
}

// Scheduler wraps robfig/cron and manages both triggers. At most one
// monitoring cycle runs at a time: a tick that fires while a cycle is still
// running is delayed until it finishes rather than run concurrently or
// dropped. The rollup job is read-only and may overlap a cycle freely.
type Scheduler struct {
	cron         *cron.Cron
	cycleJob     cron.Job // DelayIfStillRunning-wrapped; every cycle start goes through it
	runner       CycleRunner
	reporter     RollupReporter
	rollupLog    RollupLog
	interval     time.Duration
	rollupHour   int
	rollupMinute int
}

// New creates a Scheduler firing the cycle every interval and the rollup
// daily at rollupHour:rollupMinute local time.
func New(runner CycleRunner, reporter RollupReporter, rollupLog RollupLog, interval time.Duration, rollupHour, rollupMinute int) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithLocation(time.Local)),
		runner:       runner,
		reporter:     reporter,
		rollupLog:    rollupLog,
		interval:     interval,
		rollupHour:   rollupHour,
		rollupMinute: rollupMinute,
	}
}

// Start registers both jobs and starts the scheduler. An immediate first
// cycle runs on startup so the monitor does not sit idle until the first
// tick, and a rollup missed while the process was down fires late.
func (s *Scheduler) Start(ctx context.Context) error {
	cycleSpec := fmt.Sprintf("@every %s", s.interval)
	s.cycleJob = cron.NewChain(cron.DelayIfStillRunning(cron.DefaultLogger)).
		Then(cron.FuncJob(func() { s.runCycle(ctx) }))
	if _, err := s.cron.AddJob(cycleSpec, s.cycleJob); err != nil {
		return fmt.Errorf("register cycle job: %w", err)
	}

	rollupSpec := fmt.Sprintf("%d %d * * *", s.rollupMinute, s.rollupHour)
	if _, err := s.cron.AddFunc(rollupSpec, func() { s.runRollup(ctx) }); err != nil {
		return fmt.Errorf("register rollup job: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Started — cycle %s, rollup %s", cycleSpec, rollupSpec)

	// The startup cycle runs through the same chained job as the cron
	// entry, so it holds the same serialization as every later tick.
	go s.cycleJob.Run()
	go s.catchUpRollup(ctx)

	return nil
}

// Stop stops firing new jobs. The in-flight cycle, if any, is abandoned to
// its context; the store's durability, not the scheduler, protects against
// partial cycles.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Stopped")
}

// runCycle executes one monitoring cycle. A failed cycle is logged and the
// scheduler simply waits for the next trigger.
func (s *Scheduler) runCycle(ctx context.Context) {
	if _, err := s.runner.RunCycle(ctx); err != nil {
		log.Printf("[scheduler] Cycle failed: %v — waiting for next trigger", err)
	}
}

func (s *Scheduler) runRollup(ctx context.Context) {
	if _, err := s.reporter.Run(ctx, time.Now()); err != nil {
		log.Printf("[scheduler] Rollup failed: %v", err)
	}
}

// catchUpRollup fires today's rollup late when the process was down at the
// scheduled instant. Detection: we are past today's rollup time and the
// activity log holds no rollup recorded today.
func (s *Scheduler) catchUpRollup(ctx context.Context) {
	last, err := s.rollupLog.LastRollupAt(ctx)
	if err != nil {
		log.Printf("[scheduler] Could not check last rollup: %v", err)
		return
	}
	if !rollupMissed(time.Now(), s.rollupHour, s.rollupMinute, last) {
		return
	}
	log.Println("[scheduler] Today's rollup was missed — firing late")
	s.runRollup(ctx)
}

// rollupMissed reports whether today's rollup should fire late: now is past
// today's scheduled time and last (the most recent recorded rollup, nil if
// none) predates today.
func rollupMissed(now time.Time, hour, minute int, last *time.Time) bool {
	due := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if now.Before(due) {
		return false
	}
	if last == nil {
		return true
	}
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return last.Before(todayStart)
}
