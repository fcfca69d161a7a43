package supabase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/borls/collection-email-worker/internal/domain"
)

// GetExecution fetches one collection execution by id.
func (c *Client) GetExecution(ctx context.Context, executionID string) (*domain.Execution, error) {
	url := c.restURL("collection_executions?id=eq." + executionID + "&select=*")

	var executions []*domain.Execution
	if err := c.getJSON(ctx, url, "", &executions); err != nil {
		return nil, fmt.Errorf("failed to fetch execution: %w", err)
	}
	if len(executions) == 0 {
		return nil, domain.ErrExecutionNotFound
	}

	c.logger.WithFields(map[string]interface{}{
		"execution_id":   executions[0].ID,
		"attachment_ids": executions[0].AttachmentIDs,
	}).Debug("Fetched execution")

	return executions[0], nil
}

// UpdateExecutionStatus moves the execution to the given status and stamps
// completed_at.
func (c *Client) UpdateExecutionStatus(ctx context.Context, executionID, status string) error {
	url := c.restURL("collection_executions?id=eq." + executionID)

	body := map[string]interface{}{
		"status":       status,
		"completed_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := c.write(ctx, http.MethodPatch, url, body); err != nil {
		return fmt.Errorf("failed to update execution status: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"execution_id": executionID,
		"status":       status,
	}).Info("Updated execution status")
	return nil
}

// GetExecutionBatches lists every batch of an execution.
func (c *Client) GetExecutionBatches(ctx context.Context, executionID string) ([]*domain.Batch, error) {
	url := c.restURL("execution_batches?execution_id=eq." + executionID)

	var batches []*domain.Batch
	if err := c.getJSON(ctx, url, "", &batches); err != nil {
		return nil, fmt.Errorf("failed to fetch batches: %w", err)
	}
	return batches, nil
}
