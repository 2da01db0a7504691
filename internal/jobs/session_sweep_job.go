package jobs

import (
	"context"
	"log/slog"
	"time"

	"brillante/internal/core/application/usecases/commands"
	"brillante/internal/core/ports"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultSweepSchedule runs the sweep at the top of every minute.
	DefaultSweepSchedule = "0 * * * * *"

	sweepLockKey = "jobs:session-sweep"
	sweepLockTTL = 30 * time.Second
)

// staleSessionExpirer is satisfied by commands.ExpireStaleSessionsCommandHandler.
type staleSessionExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleSessionsCommand) (int, error)
}

// SessionSweepJob periodically closes sessions whose heartbeat is older than the session
// TTL. Only the replica holding the sweep lock does the work on each tick.
type SessionSweepJob struct {
	handler  staleSessionExpirer
	locker   ports.Locker
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSessionSweepJob creates the sweep job. An empty schedule falls back to
// DefaultSweepSchedule; schedules use the six-field (with seconds) cron format.
func NewSessionSweepJob(
	handler staleSessionExpirer,
	locker ports.Locker,
	schedule string,
	logger *slog.Logger,
) *SessionSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &SessionSweepJob{
		handler:  handler,
		locker:   locker,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

// Start registers the sweep with the scheduler and starts it.
func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep if the lock can be taken.
func (j *SessionSweepJob) RunOnce(ctx context.Context) {
	unlock, ok, err := j.locker.TryLock(ctx, sweepLockKey, sweepLockTTL)
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep lock failed", "error", err)
		return
	}
	if !ok {
		j.logger.DebugContext(ctx, "Session sweep skipped, another replica holds the lock")
		return
	}
	defer func() {
		if unlockErr := unlock(ctx); unlockErr != nil {
			j.logger.WarnContext(ctx, "Session sweep unlock failed", "error", unlockErr)
		}
	}()

	closed, err := j.handler.Handle(ctx, commands.NewExpireStaleSessionsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Session sweep failed", "error", err)
		return
	}
	if closed > 0 {
		j.logger.InfoContext(ctx, "Expired stale sessions", "count", closed)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
