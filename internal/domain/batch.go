package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Batch statuses as stored in execution_batches.
const (
	BatchStatusPending   = "pending"
	BatchStatusCompleted = "completed"
	BatchStatusDLQ       = "dlq"
)

// MaxBatchRetries is the number of pickups after which a batch is moved to
// the DLQ instead of being processed again.
const MaxBatchRetries = 3

// MaxVisibilityExtension is the SQS ceiling for a visibility change, in
// seconds (12 hours). Batches scheduled further out are re-deferred on each
// redelivery until their target time is within reach.
const MaxVisibilityExtension = 43200

// ReservedVisibility is the per-message visibility reservation used for
// receive and for the pause gate, in seconds.
const ReservedVisibility = 300

// Batch is a shard of an execution's recipients, stored in execution_batches.
type Batch struct {
	ID           string  `json:"id"`
	ExecutionID  string  `json:"execution_id"`
	BatchNumber  int     `json:"batch_number"`
	Status       string  `json:"status"`
	TotalClients int     `json:"total_clients"`
	ScheduledFor *string `json:"scheduled_for"`
	ErrorMessage *string `json:"error_message"`
}

// BatchMessage is the queue wire format for one batch.
type BatchMessage struct {
	BatchID      string   `json:"batch_id"`
	ExecutionID  string   `json:"execution_id"`
	BusinessID   string   `json:"business_id"`
	BatchNumber  int      `json:"batch_number"`
	ClientIDs    []string `json:"client_ids"`
	TotalClients int      `json:"total_clients"`
	ScheduledFor string   `json:"scheduled_for,omitempty"`
}

// ParseBatchMessage decodes a queue message body.
func ParseBatchMessage(body string) (*BatchMessage, error) {
	var msg BatchMessage
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return nil, fmt.Errorf("invalid batch message body: %w", err)
	}
	if msg.BatchID == "" || msg.ExecutionID == "" {
		return nil, fmt.Errorf("batch message missing batch_id or execution_id")
	}
	return &msg, nil
}

// ScheduledTime parses scheduled_for, when present, as RFC3339.
func (m *BatchMessage) ScheduledTime() (time.Time, bool, error) {
	if m.ScheduledFor == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(time.RFC3339, m.ScheduledFor)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid scheduled_for %q: %w", m.ScheduledFor, err)
	}
	return t, true, nil
}

// QueueMessage is one received queue delivery: the decoded body plus the
// receipt handle needed to delete or re-defer it.
type QueueMessage struct {
	MessageID     string
	ReceiptHandle string
	Body          string
}
