package supabase

import (
	"context"
)

// Lock is the TTL-bounded scheduler lock backed by PostgREST functions. It
// implements domain.SchedulerLock.
type Lock struct {
	client   *Client
	workerID string
}

// NewSchedulerLock creates the lock handle for this worker.
func NewSchedulerLock(client *Client, workerID string) *Lock {
	return &Lock{client: client, workerID: workerID}
}

// TryAcquire attempts to take the lock for ttlSeconds. A refusal is not an
// error: false means another live worker holds it.
func (l *Lock) TryAcquire(ctx context.Context, ttlSeconds int) (bool, error) {
	var acquired bool
	err := l.client.rpc(ctx, "acquire_scheduler_lock", map[string]interface{}{
		"p_worker_id":   l.workerID,
		"p_ttl_seconds": ttlSeconds,
	}, &acquired)
	if err != nil {
		l.client.logger.WithField("error", err.Error()).Error("Failed to acquire scheduler lock")
		return false, nil
	}
	return acquired, nil
}

// Release gives the lock back. Only the holder's release succeeds; an
// expired or stolen lock returns false.
func (l *Lock) Release(ctx context.Context) (bool, error) {
	var released bool
	err := l.client.rpc(ctx, "release_scheduler_lock", map[string]interface{}{
		"p_worker_id": l.workerID,
	}, &released)
	if err != nil {
		l.client.logger.WithField("error", err.Error()).Error("Failed to release scheduler lock")
		return false, nil
	}
	return released, nil
}
