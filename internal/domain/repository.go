package domain

import (
	"context"
	"errors"
	"time"
)

//go:generate mockgen -destination mocks/mock_store_gateway.go -package mocks github.com/borls/collection-email-worker/internal/domain StoreGateway
//go:generate mockgen -destination mocks/mock_queue_gateway.go -package mocks github.com/borls/collection-email-worker/internal/domain QueueGateway

var (
	// ErrExecutionNotFound is returned when the execution row does not exist.
	ErrExecutionNotFound = errors.New("execution not found")
	// ErrTemplateNotFound is returned when the template row does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrClientNotFound is returned when a recipient lookup matches nothing.
	ErrClientNotFound = errors.New("client not found")
)

// StoreGateway is the typed access layer over the external store. All calls
// are at-most-once on the wire; status updates and counter increments are
// idempotent at the semantic layer.
type StoreGateway interface {
	GetExecution(ctx context.Context, executionID string) (*Execution, error)
	GetClientsByIDs(ctx context.Context, clientIDs []string) ([]*Client, error)
	GetPendingClients(ctx context.Context, executionID string) ([]*Client, error)
	GetAttachments(ctx context.Context, ids []string) ([]Attachment, error)
	GetTemplate(ctx context.Context, templateID string) (*EmailTemplate, error)
	GetBlacklistedEmails(ctx context.Context, businessID string) (map[string]struct{}, error)
	GetCustomerEmail(ctx context.Context, customerID string) (string, error)
	GetBusinessName(ctx context.Context, businessID string) string

	UpdateClientStatus(ctx context.Context, clientID string, status string, customData map[string]interface{}) error
	UpdateBatchStatus(ctx context.Context, batchID string, status string) error
	GetExecutionBatches(ctx context.Context, executionID string) ([]*Batch, error)
	UpdateExecutionStatus(ctx context.Context, executionID string, status string) error

	GetBatchRetryCount(ctx context.Context, batchID string) (int, error)
	IncrementBatchRetryCount(ctx context.Context, batchID string) (int, error)
	MarkBatchAsDLQ(ctx context.Context, batchID string, errorMessage string) error

	GetEarliestPendingBatchTime(ctx context.Context) (*time.Time, error)
}

// QueueGateway receives, acknowledges and re-defers batch messages.
type QueueGateway interface {
	// ReceiveBatchMessages long-polls the queue, reserving visibility for
	// each returned message.
	ReceiveBatchMessages(ctx context.Context) ([]QueueMessage, error)
	// DeleteMessage acknowledges a message so it is never redelivered.
	DeleteMessage(ctx context.Context, receiptHandle string) error
	// ExtendVisibility postpones redelivery by the given number of seconds,
	// capped at the queue's 12-hour ceiling.
	ExtendVisibility(ctx context.Context, receiptHandle string, seconds int) error
}

// SchedulerLock is the TTL-bounded single-writer token guarding the wake-up
// timer. The store enforces expiry, so a crashed holder blocks other workers
// for at most the TTL.
type SchedulerLock interface {
	TryAcquire(ctx context.Context, ttlSeconds int) (bool, error)
	Release(ctx context.Context) (bool, error)
}

// WakeupTimer arms the one-shot trigger that re-invokes the worker. Arm
// overwrites any previously armed time.
type WakeupTimer interface {
	Arm(ctx context.Context, at time.Time) error
}
