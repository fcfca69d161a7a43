package supabase

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// CreateDeliveryEvent records one provider delivery notification against a
// recipient in collection_events.
func (c *Client) CreateDeliveryEvent(ctx context.Context, clientID, executionID, eventType string, eventData map[string]interface{}) error {
	body := map[string]interface{}{
		"client_id":    clientID,
		"execution_id": executionID,
		"event_type":   eventType,
		"event_data":   eventData,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	}

	if err := c.write(ctx, http.MethodPost, c.restURL("collection_events"), body); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// IncrementExecutionCounter bumps one of the per-execution delivery counters
// (emails_sent, emails_delivered, emails_opened, emails_bounced,
// emails_failed). Unknown counters are ignored; failures are logged and
// swallowed, the counters are informational.
func (c *Client) IncrementExecutionCounter(ctx context.Context, executionID, counter string) {
	switch counter {
	case "emails_sent", "emails_delivered", "emails_opened", "emails_bounced", "emails_failed":
	default:
		return
	}

	err := c.rpc(ctx, "increment_execution_counter", map[string]interface{}{
		"p_execution_id": executionID,
		"p_column":       counter,
	}, nil)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"execution_id": executionID,
			"counter":      counter,
			"error":        err.Error(),
		}).Warn("Failed to increment execution counter")
	}
}
