package supabase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/borls/collection-email-worker/internal/domain"
)

// UpdateBatchStatus writes the batch status in execution_batches.
func (c *Client) UpdateBatchStatus(ctx context.Context, batchID, status string) error {
	u := c.restURL("execution_batches?id=eq." + batchID)

	if err := c.write(ctx, http.MethodPatch, u, map[string]interface{}{"status": status}); err != nil {
		return fmt.Errorf("failed to update batch status: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"batch_id": batchID,
		"status":   status,
	}).Info("Updated batch status")
	return nil
}

// GetBatchRetryCount reads the pickup counter for a batch. A batch without a
// queue bookkeeping row counts as zero.
func (c *Client) GetBatchRetryCount(ctx context.Context, batchID string) (int, error) {
	u := c.restURL("batch_queue_messages?batch_id=eq." + batchID + "&select=retry_count")

	var rows []struct {
		RetryCount int `json:"retry_count"`
	}
	if err := c.getJSON(ctx, u, "", &rows); err != nil {
		return 0, fmt.Errorf("failed to fetch retry count: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].RetryCount, nil
}

// IncrementBatchRetryCount bumps the pickup counter and returns the new
// value. Read and write are separate requests; concurrent pickups of the
// same batch are already excluded by queue visibility.
func (c *Client) IncrementBatchRetryCount(ctx context.Context, batchID string) (int, error) {
	current, err := c.GetBatchRetryCount(ctx, batchID)
	if err != nil {
		return 0, err
	}
	newCount := current + 1

	u := c.restURL("batch_queue_messages?batch_id=eq." + batchID)
	if err := c.write(ctx, http.MethodPatch, u, map[string]interface{}{"retry_count": newCount}); err != nil {
		return 0, fmt.Errorf("failed to increment retry count: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"batch_id":    batchID,
		"retry_count": newCount,
	}).Info("Incremented batch retry count")
	return newCount, nil
}

// MarkBatchAsDLQ parks a poisoned batch: the queue bookkeeping row gets
// status dlq with the error and timestamp, and the batch row is updated to
// match. The second write is best effort.
func (c *Client) MarkBatchAsDLQ(ctx context.Context, batchID, errorMessage string) error {
	u := c.restURL("batch_queue_messages?batch_id=eq." + batchID)
	body := map[string]interface{}{
		"status":        domain.BatchStatusDLQ,
		"error_message": errorMessage,
		"dlq_at":        time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.write(ctx, http.MethodPatch, u, body); err != nil {
		return fmt.Errorf("failed to mark batch as DLQ: %w", err)
	}

	batchURL := c.restURL("execution_batches?id=eq." + batchID)
	batchBody := map[string]interface{}{
		"status":        domain.BatchStatusDLQ,
		"error_message": errorMessage,
	}
	if err := c.write(ctx, http.MethodPatch, batchURL, batchBody); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"batch_id": batchID,
			"error":    err.Error(),
		}).Error("Failed to update execution_batches DLQ status")
	}

	c.logger.WithFields(map[string]interface{}{
		"batch_id": batchID,
		"error":    errorMessage,
	}).Warn("Batch moved to DLQ")
	return nil
}

// GetEarliestPendingBatchTime returns the scheduled time of the next pending
// batch across all executions, or nil when nothing is pending.
func (c *Client) GetEarliestPendingBatchTime(ctx context.Context) (*time.Time, error) {
	var raw *string
	if err := c.rpc(ctx, "get_earliest_pending_batch_time", map[string]interface{}{}, &raw); err != nil {
		return nil, err
	}
	if raw == nil || *raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid earliest pending batch time %q: %w", *raw, err)
	}
	return &t, nil
}
