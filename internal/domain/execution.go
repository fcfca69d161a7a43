package domain

// Execution statuses. The worker only ever writes "completed"; "paused" is
// observed as a circuit breaker and the rest are set by the control plane
// that created the execution.
const (
	ExecutionStatusPending   = "pending"
	ExecutionStatusRunning   = "running"
	ExecutionStatusPaused    = "paused"
	ExecutionStatusCompleted = "completed"
	ExecutionStatusFailed    = "failed"
)

// Execution is one collection campaign dispatching emails to many recipients.
type Execution struct {
	ID              string   `json:"id"`
	BusinessID      string   `json:"business_id"`
	Status          string   `json:"status"`
	EmailTemplateID *string  `json:"email_template_id"`
	ExecutionMode   string   `json:"execution_mode"`
	AttachmentIDs   []string `json:"attachment_ids"`
}

// IsTerminal reports whether the execution already finished and batches for
// it should be acknowledged without processing.
func (e *Execution) IsTerminal() bool {
	return e.Status == ExecutionStatusCompleted || e.Status == ExecutionStatusFailed
}
