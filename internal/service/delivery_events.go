package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/tidwall/gjson"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// DeliveryEventStore is the store surface the delivery-event handler needs.
// Implemented by the Supabase client.
type DeliveryEventStore interface {
	FindClientByMessageID(ctx context.Context, messageID string) (clientID, executionID string, err error)
	CreateDeliveryEvent(ctx context.Context, clientID, executionID, eventType string, eventData map[string]interface{}) error
	UpdateClientStatus(ctx context.Context, clientID, status string, customData map[string]interface{}) error
	IncrementExecutionCounter(ctx context.Context, executionID, counter string)
}

// executionCounterForEvent maps a delivery event to the per-execution
// counter it bumps.
var executionCounterForEvent = map[string]string{
	domain.DeliveryEventSend:     "emails_sent",
	domain.DeliveryEventDelivery: "emails_delivered",
	domain.DeliveryEventOpen:     "emails_opened",
	domain.DeliveryEventBounce:   "emails_bounced",
	domain.DeliveryEventReject:   "emails_failed",
}

// DeliveryEventProcessor reconciles provider delivery notifications (SES
// via SNS) back onto recipients: it records each event and moves the
// recipient status accordingly.
type DeliveryEventProcessor struct {
	store  DeliveryEventStore
	logger logger.Logger
}

// NewDeliveryEventProcessor creates the processor.
func NewDeliveryEventProcessor(store DeliveryEventStore, log logger.Logger) *DeliveryEventProcessor {
	return &DeliveryEventProcessor{store: store, logger: log}
}

// DeliveryEventResult is the handler's exit contract.
type DeliveryEventResult struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Errors    int    `json:"errors"`
}

// HandleSNSEvent processes every record of an SNS delivery. Per-record
// failures are counted, never surfaced as an invocation error.
func (p *DeliveryEventProcessor) HandleSNSEvent(ctx context.Context, event events.SNSEvent) *DeliveryEventResult {
	result := &DeliveryEventResult{Message: "Events processed"}

	for _, record := range event.Records {
		if err := p.processMessage(ctx, record.SNS.Message); err != nil {
			if errors.Is(err, domain.ErrClientNotFound) {
				p.logger.WithField("error", err.Error()).Warn("Delivery event matched no recipient")
				continue
			}
			p.logger.WithField("error", err.Error()).Error("Failed to process delivery event")
			result.Errors++
			continue
		}
		result.Processed++
	}

	p.logger.WithFields(map[string]interface{}{
		"processed": result.Processed,
		"errors":    result.Errors,
	}).Info("Delivery events processed")
	return result
}

// processMessage handles one SES notification JSON document.
func (p *DeliveryEventProcessor) processMessage(ctx context.Context, message string) error {
	if !gjson.Valid(message) {
		return fmt.Errorf("invalid delivery event payload")
	}

	parsed := gjson.Parse(message)
	eventType := parsed.Get("eventType").String()
	if eventType == "" {
		eventType = parsed.Get("notificationType").String()
	}
	messageID := parsed.Get("mail.messageId").String()
	if eventType == "" || messageID == "" {
		return fmt.Errorf("delivery event missing eventType or mail.messageId")
	}

	clientID, executionID, err := p.store.FindClientByMessageID(ctx, messageID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return fmt.Errorf("message %s: %w", messageID, err)
		}
		return fmt.Errorf("client lookup for message %s failed: %w", messageID, err)
	}

	p.logger.WithFields(map[string]interface{}{
		"event_type":   eventType,
		"message_id":   messageID,
		"client_id":    clientID,
		"execution_id": executionID,
	}).Info("Processing delivery event")

	var eventData map[string]interface{}
	if err := json.Unmarshal([]byte(message), &eventData); err != nil {
		eventData = map[string]interface{}{"raw": message}
	}
	if err := p.store.CreateDeliveryEvent(ctx, clientID, executionID, eventType, eventData); err != nil {
		p.logger.WithFields(map[string]interface{}{
			"client_id": clientID,
			"error":     err.Error(),
		}).Error("Failed to record delivery event")
	}

	if counter, ok := executionCounterForEvent[eventType]; ok {
		p.store.IncrementExecutionCounter(ctx, executionID, counter)
	}

	status, move := domain.ClientStatusForEvent(eventType)
	if !move {
		if eventType != domain.DeliveryEventSend {
			p.logger.WithField("event_type", eventType).Warn("Unhandled delivery event type")
		}
		return nil
	}

	var details map[string]interface{}
	if eventType == domain.DeliveryEventBounce {
		details = map[string]interface{}{
			"bounce_type":     parsed.Get("bounce.bounceType").String(),
			"bounce_sub_type": parsed.Get("bounce.bounceSubType").String(),
		}
	}

	if err := p.store.UpdateClientStatus(ctx, clientID, status, details); err != nil {
		return fmt.Errorf("failed to update recipient %s: %w", clientID, err)
	}
	return nil
}
