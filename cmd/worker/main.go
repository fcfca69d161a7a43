// The worker consumes batch messages from the dispatch queue, sends the
// collection emails for each batch and keeps the wake-up timer armed. It
// also accepts control events ({"action": "wake_up"|"start_execution"})
// that make it poll the queue on demand.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/scheduler"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/google/uuid"

	"github.com/borls/collection-email-worker/config"
	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/internal/repository/supabase"
	"github.com/borls/collection-email-worker/internal/service"
	"github.com/borls/collection-email-worker/pkg/logger"
)

type controlEvent struct {
	Action string `json:"action"`
}

type handler struct {
	dispatcher *service.Dispatcher
	logger     logger.Logger
}

func newHandler() (*handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	log.WithFields(map[string]interface{}{
		"version":  cfg.Version,
		"env":      cfg.Environment,
		"provider": cfg.Email.Provider,
	}).Info("Worker starting")

	sess := session.Must(session.NewSession(aws.NewConfig().WithRegion(cfg.Email.AWSRegion)))

	store := supabase.NewClient(http.DefaultClient, cfg.Supabase.URL, cfg.Supabase.SecretKey, log).
		WithAttachmentLimits(cfg.Attachment.MaxBytes, cfg.Attachment.MaxCount)

	workerID := "worker-" + uuid.NewString()[:8]
	audit := supabase.NewExecutionLogger(store, workerID)
	lock := supabase.NewSchedulerLock(store, workerID)

	queue := service.NewSQSGateway(sqs.New(sess), cfg.Queue.BatchQueueURL, log)
	timer := service.NewEventBridgeTimer(scheduler.New(sess),
		cfg.Scheduler.ScheduleName, cfg.Scheduler.WorkerARN, cfg.Scheduler.RoleARN, log)

	provider := service.NewEmailProvider(cfg, http.DefaultClient, ses.New(sess), log)
	processor := service.NewBatchProcessor(store, provider, cfg.Email.FromEmail, cfg.IsDev(), log)
	wakeup := service.NewWakeupScheduler(lock, store, timer, log)

	return &handler{
		dispatcher: service.NewDispatcher(queue, store, audit, processor, wakeup, workerID, log),
		logger:     log,
	}, nil
}

// Handle routes the raw invocation payload: a queue-delivered record set or
// a control event. Anything else fails the invocation so the host retries.
func (h *handler) Handle(ctx context.Context, raw json.RawMessage) (*service.InvocationResult, error) {
	var sqsEvent events.SQSEvent
	if err := json.Unmarshal(raw, &sqsEvent); err == nil && len(sqsEvent.Records) > 0 {
		h.logger.WithField("count", len(sqsEvent.Records)).Info("Queue event received")
		messages := make([]domain.QueueMessage, 0, len(sqsEvent.Records))
		for _, r := range sqsEvent.Records {
			messages = append(messages, domain.QueueMessage{
				MessageID:     r.MessageId,
				ReceiptHandle: r.ReceiptHandle,
				Body:          r.Body,
			})
		}
		return h.dispatcher.HandleQueueMessages(ctx, messages), nil
	}

	var control controlEvent
	if err := json.Unmarshal(raw, &control); err == nil && control.Action != "" {
		return h.dispatcher.HandleControl(ctx, control.Action), nil
	}

	return nil, fmt.Errorf("unrecognized event format")
}

func main() {
	h, err := newHandler()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize worker: %v\n", err)
		os.Exit(1)
	}
	lambda.Start(h.Handle)
}
