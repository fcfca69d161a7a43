package supabase

import (
	"context"
	"net/http"
	"time"
)

// ExecutionLogger appends batch lifecycle events to execution_audit_logs.
// It implements domain.AuditLogger.
type ExecutionLogger struct {
	client   *Client
	workerID string
}

// NewExecutionLogger creates an audit logger stamping every event with the
// given worker id.
func NewExecutionLogger(client *Client, workerID string) *ExecutionLogger {
	return &ExecutionLogger{client: client, workerID: workerID}
}

// LogEvent appends one audit row. The append is advisory: an HTTP failure
// is reported to the caller so it can be logged, but callers never fail a
// batch over it.
func (l *ExecutionLogger) LogEvent(ctx context.Context, executionID, batchID, event string, details map[string]interface{}) error {
	if details == nil {
		details = map[string]interface{}{}
	}

	body := map[string]interface{}{
		"execution_id": executionID,
		"event":        event,
		"worker_id":    l.workerID,
		"details":      details,
		"created_at":   time.Now().UTC().Format(time.RFC3339),
	}
	if batchID != "" {
		body["batch_id"] = batchID
	} else {
		body["batch_id"] = nil
	}

	return l.client.write(ctx, http.MethodPost, l.client.restURL("execution_audit_logs"), body)
}
