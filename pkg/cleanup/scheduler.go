package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Runner runs one cleanup pass. *Job implements it.
type Runner interface {
	Run(ctx context.Context) (*Report, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context) (*Report, error)

// Run calls f(ctx).
func (f RunnerFunc) Run(ctx context.Context) (*Report, error) {
	return f(ctx)
}

// Scheduler runs cleanup passes on a cron schedule for deployments without an
// external cron. A pass is skipped if the previous one is still running.
type Scheduler struct {
	runner   Runner
	schedule string
	cron     *cron.Cron
	entry    cron.EntryID
	mu       sync.Mutex
	running  bool
}

// NewScheduler creates a scheduler for runner. schedule is a standard 5-field
// cron expression; an empty schedule makes Start a no-op.
func NewScheduler(runner Runner, schedule string) *Scheduler {
	cronLogger := slogCronLogger{}

	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	return &Scheduler{
		runner:   runner,
		schedule: schedule,
		cron:     c,
	}
}

// schedulerLogger returns the current default logger. It is looked up on
// every use so a logger installed after a config reload takes effect.
func schedulerLogger() *slog.Logger {
	return slog.Default().With("component", "cleanup.scheduler")
}

// Start begins the scheduled passes.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
//   - "@daily"       - Once a day at midnight
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		schedulerLogger().Info("cleanup schedule not configured, skipping scheduler")
		return nil
	}
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	entry, err := s.cron.AddFunc(s.schedule, func() {
		s.runPass(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}
	s.entry = entry

	s.cron.Start()
	s.running = true

	schedulerLogger().Info("cleanup scheduler started", "schedule", s.schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runPass executes one scheduled pass. Failures are logged by the job itself.
func (s *Scheduler) runPass(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	schedulerLogger().Debug("starting scheduled cleanup")

	report, err := s.runner.Run(ctx)
	if err != nil {
		schedulerLogger().Debug("scheduled cleanup failed", "error", err)
		return
	}

	schedulerLogger().Debug("scheduled cleanup completed",
		"expired", report.Expired,
		"records_removed", report.RecordsRemoved,
	)
}

// RunNow runs one pass immediately and waits for it. Once the scheduler is
// started the pass goes through the same chain as scheduled passes, so it is
// skipped while another pass is running and ticks are skipped while it runs;
// it then uses the context given to Start. Before Start, or without a
// schedule, it runs the pass directly with ctx.
func (s *Scheduler) RunNow(ctx context.Context) {
	s.mu.Lock()
	var job cron.Job
	if s.running {
		job = s.cron.Entry(s.entry).WrappedJob
	}
	s.mu.Unlock()

	if job == nil {
		s.runPass(ctx)
		return
	}
	job.Run()
}

// Stop stops the scheduler and waits for a running pass to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		schedulerLogger().Info("cleanup scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled pass, or nil if nothing is scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}

// slogCronLogger adapts slog to cron.Logger.
type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	schedulerLogger().Debug(msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	schedulerLogger().Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}
