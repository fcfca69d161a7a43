package domain

import "context"

// Audit events recorded per execution/batch in execution_audit_logs.
const (
	AuditEventEnqueued   = "ENQUEUED"
	AuditEventPickedUp   = "PICKED_UP"
	AuditEventDeferred   = "DEFERRED"
	AuditEventProcessing = "PROCESSING"
	AuditEventCompleted  = "COMPLETED"
	AuditEventFailed     = "FAILED"
	AuditEventDLQSent    = "DLQ_SENT"
)

// AuditLogger appends lifecycle events for a batch. Append failures are
// reported to the worker's log but never fail the invocation.
type AuditLogger interface {
	LogEvent(ctx context.Context, executionID string, batchID string, event string, details map[string]interface{}) error
}
