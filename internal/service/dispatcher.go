package service

import (
	"context"
	"time"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// InvocationResult is the worker's exit contract. Per-message failures are
// counted, never surfaced as an invocation error.
type InvocationResult struct {
	Status    string `json:"status"`
	WorkerID  string `json:"worker_id"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// Dispatcher is the per-invocation controller: it gates each delivered
// batch message through deferral, retry and pause checks, runs the
// processor, and settles the message against the queue. Every invocation
// ends with the wake-up scheduler, whatever happened before.
type Dispatcher struct {
	queue     domain.QueueGateway
	store     domain.StoreGateway
	audit     domain.AuditLogger
	processor *BatchProcessor
	wakeup    *WakeupScheduler
	workerID  string
	logger    logger.Logger

	now func() time.Time
}

// NewDispatcher creates the controller for one invocation's worker id.
func NewDispatcher(
	queue domain.QueueGateway,
	store domain.StoreGateway,
	audit domain.AuditLogger,
	processor *BatchProcessor,
	wakeup *WakeupScheduler,
	workerID string,
	log logger.Logger,
) *Dispatcher {
	return &Dispatcher{
		queue:     queue,
		store:     store,
		audit:     audit,
		processor: processor,
		wakeup:    wakeup,
		workerID:  workerID,
		logger:    log,
		now:       time.Now,
	}
}

// HandleQueueMessages processes a queue-delivered message set.
func (d *Dispatcher) HandleQueueMessages(ctx context.Context, messages []domain.QueueMessage) *InvocationResult {
	result := &InvocationResult{Status: "ok", WorkerID: d.workerID}

	for _, msg := range messages {
		if d.processMessage(ctx, msg) {
			result.Processed++
		} else {
			result.Failed++
		}
	}

	d.wakeup.Run(ctx)
	return result
}

// HandleControl serves a wake_up or start_execution control event by
// actively polling the queue for work.
func (d *Dispatcher) HandleControl(ctx context.Context, action string) *InvocationResult {
	d.logger.WithField("action", action).Info("Control event received, polling queue")

	messages, err := d.queue.ReceiveBatchMessages(ctx)
	if err != nil {
		d.logger.WithField("error", err.Error()).Error("Failed to poll queue")
		d.wakeup.Run(ctx)
		return &InvocationResult{Status: "ok", WorkerID: d.workerID}
	}

	return d.HandleQueueMessages(ctx, messages)
}

// processMessage runs the per-message algorithm. The return is true unless
// the batch genuinely failed this pickup.
func (d *Dispatcher) processMessage(ctx context.Context, msg domain.QueueMessage) bool {
	batch, err := domain.ParseBatchMessage(msg.Body)
	if err != nil {
		// Leave the message alone; visibility will lapse and redeliver.
		d.logger.WithFields(map[string]interface{}{
			"message_id": msg.MessageID,
			"error":      err.Error(),
		}).Error("Unparseable batch message, leaving on queue")
		return false
	}

	log := d.logger.WithFields(map[string]interface{}{
		"batch_id":     batch.BatchID,
		"execution_id": batch.ExecutionID,
	})

	if deferred := d.deferIfScheduled(ctx, msg, batch); deferred {
		return true
	}

	d.logEvent(ctx, batch, domain.AuditEventPickedUp, map[string]interface{}{
		"batch_number":  batch.BatchNumber,
		"total_clients": batch.TotalClients,
	})

	retryCount, err := d.store.GetBatchRetryCount(ctx, batch.BatchID)
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to read retry count, leaving message for redelivery")
		return false
	}
	if retryCount >= domain.MaxBatchRetries {
		d.sendToDLQ(ctx, msg, batch, "Exceeded maximum retry attempts", map[string]interface{}{
			"retry_count": retryCount,
			"reason":      "Exceeded maximum retry attempts",
		})
		return true
	}

	retryCount, err = d.store.IncrementBatchRetryCount(ctx, batch.BatchID)
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to increment retry count, leaving message for redelivery")
		return false
	}

	execution, err := d.store.GetExecution(ctx, batch.ExecutionID)
	if err != nil {
		log.WithField("error", err.Error()).Error("Failed to load execution, leaving message for redelivery")
		return false
	}
	if execution.Status == domain.ExecutionStatusPaused {
		log.Info("Execution paused, re-deferring batch")
		if err := d.queue.ExtendVisibility(ctx, msg.ReceiptHandle, domain.ReservedVisibility); err != nil {
			log.WithField("error", err.Error()).Error("Failed to extend visibility for paused execution")
		}
		return true
	}

	d.logEvent(ctx, batch, domain.AuditEventProcessing, map[string]interface{}{
		"retry_count": retryCount,
	})

	processed, err := d.processor.Process(ctx, batch)
	if err != nil {
		log.WithField("error", err.Error()).Error("Batch processing failed")
		if retryCount >= domain.MaxBatchRetries {
			d.sendToDLQ(ctx, msg, batch, err.Error(), map[string]interface{}{
				"error":  err.Error(),
				"reason": "Failed after maximum retries",
			})
			return true
		}
		d.logEvent(ctx, batch, domain.AuditEventFailed, map[string]interface{}{
			"error":       err.Error(),
			"retry_count": retryCount,
			"will_retry":  true,
		})
		return false
	}

	if !processed {
		// Terminal execution: the batch is moot. The message is left for
		// the queue's dead-letter policy to reap.
		return true
	}

	if err := d.queue.DeleteMessage(ctx, msg.ReceiptHandle); err != nil {
		log.WithField("error", err.Error()).Error("Failed to delete completed batch message")
	}
	d.logEvent(ctx, batch, domain.AuditEventCompleted, map[string]interface{}{
		"retry_count": retryCount,
	})
	log.Info("Batch completed")
	return true
}

// deferIfScheduled re-defers a batch scheduled for the future, up to the
// queue's 12-hour visibility ceiling per hop. Returns true when the message
// was deferred (or its schedule was unreadable).
func (d *Dispatcher) deferIfScheduled(ctx context.Context, msg domain.QueueMessage, batch *domain.BatchMessage) bool {
	scheduled, ok, err := batch.ScheduledTime()
	if err != nil {
		d.logger.WithFields(map[string]interface{}{
			"batch_id": batch.BatchID,
			"error":    err.Error(),
		}).Warn("Invalid scheduled_for, processing immediately")
		return false
	}
	if !ok {
		return false
	}

	delay := int(scheduled.Sub(d.now()).Seconds())
	if delay <= 0 {
		return false
	}
	if delay > domain.MaxVisibilityExtension {
		delay = domain.MaxVisibilityExtension
	}

	if err := d.queue.ExtendVisibility(ctx, msg.ReceiptHandle, delay); err != nil {
		d.logger.WithFields(map[string]interface{}{
			"batch_id": batch.BatchID,
			"error":    err.Error(),
		}).Error("Failed to defer scheduled batch")
		return true
	}

	d.logEvent(ctx, batch, domain.AuditEventDeferred, map[string]interface{}{
		"delay_seconds": delay,
		"scheduled_for": batch.ScheduledFor,
	})
	d.logger.WithFields(map[string]interface{}{
		"batch_id":      batch.BatchID,
		"delay_seconds": delay,
	}).Info("Batch deferred until its scheduled time")
	return true
}

func (d *Dispatcher) sendToDLQ(ctx context.Context, msg domain.QueueMessage, batch *domain.BatchMessage, errorMessage string, details map[string]interface{}) {
	if err := d.store.MarkBatchAsDLQ(ctx, batch.BatchID, errorMessage); err != nil {
		d.logger.WithFields(map[string]interface{}{
			"batch_id": batch.BatchID,
			"error":    err.Error(),
		}).Error("Failed to mark batch as DLQ")
	}
	d.logEvent(ctx, batch, domain.AuditEventDLQSent, details)
	if err := d.queue.DeleteMessage(ctx, msg.ReceiptHandle); err != nil {
		d.logger.WithFields(map[string]interface{}{
			"batch_id": batch.BatchID,
			"error":    err.Error(),
		}).Error("Failed to delete DLQ'd batch message")
	}
}

func (d *Dispatcher) logEvent(ctx context.Context, batch *domain.BatchMessage, event string, details map[string]interface{}) {
	if err := d.audit.LogEvent(ctx, batch.ExecutionID, batch.BatchID, event, details); err != nil {
		d.logger.WithFields(map[string]interface{}{
			"batch_id": batch.BatchID,
			"event":    event,
			"error":    err.Error(),
		}).Warn("Failed to append audit event")
	}
}
