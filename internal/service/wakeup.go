package service

import (
	"context"
	"time"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// LockTTLSeconds bounds how long a crashed lease holder can block other
// workers from re-arming the wake-up timer.
const LockTTLSeconds = 300

// safetyWakeupDelay is the fallback interval when no batch is pending or
// the earliest-time lookup fails.
const safetyWakeupDelay = time.Hour

// WakeupScheduler keeps exactly one wake-up timer armed, pointing at the
// earliest pending batch. It runs at the end of every invocation under the
// scheduler lease, so only one worker touches the timer at a time.
type WakeupScheduler struct {
	lock   domain.SchedulerLock
	store  domain.StoreGateway
	timer  domain.WakeupTimer
	logger logger.Logger

	now func() time.Time
}

// NewWakeupScheduler creates the scheduler step.
func NewWakeupScheduler(lock domain.SchedulerLock, store domain.StoreGateway, timer domain.WakeupTimer, log logger.Logger) *WakeupScheduler {
	return &WakeupScheduler{
		lock:   lock,
		store:  store,
		timer:  timer,
		logger: log,
		now:    time.Now,
	}
}

// Run arms the timer under the lease. Losing the lease race is normal and
// silent; timer failures are logged but never fail the invocation.
func (s *WakeupScheduler) Run(ctx context.Context) {
	acquired, err := s.lock.TryAcquire(ctx, LockTTLSeconds)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Scheduler lock error")
		return
	}
	if !acquired {
		s.logger.Debug("Scheduler lock held elsewhere, skipping wake-up update")
		return
	}
	defer func() {
		if _, err := s.lock.Release(ctx); err != nil {
			s.logger.WithField("error", err.Error()).Error("Failed to release scheduler lock")
		}
	}()

	now := s.now().UTC()
	target := now.Add(safetyWakeupDelay)

	earliest, err := s.store.GetEarliestPendingBatchTime(ctx)
	switch {
	case err != nil:
		s.logger.WithField("error", err.Error()).Warn("Failed to fetch earliest pending batch time, arming safety wake-up")
	case earliest == nil:
		s.logger.Debug("No pending batches, arming safety wake-up")
	default:
		target = earliest.UTC()
	}

	// The timer fires with minute precision, so a target whose minute has
	// already begun encodes an instant that never fires. Push such targets
	// (and anything in the past) one minute out.
	if !target.Truncate(time.Minute).After(now) {
		target = now.Add(time.Minute)
	}

	if err := s.timer.Arm(ctx, target); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"target": target.Format(time.RFC3339),
			"error":  err.Error(),
		}).Error("Failed to arm wake-up timer")
		return
	}

	s.logger.WithField("target", target.Format(time.RFC3339)).Info("Wake-up timer armed")
}
