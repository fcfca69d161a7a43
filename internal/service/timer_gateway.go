package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/scheduler"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// wakeupPayload is forwarded verbatim to the worker when the timer fires.
const wakeupPayload = `{"action": "wake_up"}`

// EventBridgeTimer implements domain.WakeupTimer as a named one-shot
// EventBridge schedule. Arm overwrites: the scheduler rejects
// create-if-exists, so the schedule is deleted first, then recreated.
type EventBridgeTimer struct {
	client       domain.SchedulerClient
	scheduleName string
	targetARN    string
	roleARN      string
	logger       logger.Logger
}

// NewEventBridgeTimer creates the wake-up timer gateway.
func NewEventBridgeTimer(client domain.SchedulerClient, scheduleName, targetARN, roleARN string, log logger.Logger) *EventBridgeTimer {
	return &EventBridgeTimer{
		client:       client,
		scheduleName: scheduleName,
		targetARN:    targetARN,
		roleARN:      roleARN,
		logger:       log,
	}
}

// Arm points the wake-up schedule at the given time, minute precision, UTC.
// The schedule self-deletes after firing so a stale one-shot can never fire
// twice.
func (t *EventBridgeTimer) Arm(ctx context.Context, at time.Time) error {
	_, err := t.client.DeleteScheduleWithContext(ctx, &scheduler.DeleteScheduleInput{
		Name: aws.String(t.scheduleName),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); !ok || aerr.Code() != scheduler.ErrCodeResourceNotFoundException {
			return fmt.Errorf("failed to delete schedule: %w", err)
		}
	}

	expression := cronExpression(at.UTC())

	_, err = t.client.CreateScheduleWithContext(ctx, &scheduler.CreateScheduleInput{
		Name:                       aws.String(t.scheduleName),
		ScheduleExpression:         aws.String(expression),
		ScheduleExpressionTimezone: aws.String("UTC"),
		ActionAfterCompletion:      aws.String(scheduler.ActionAfterCompletionDelete),
		FlexibleTimeWindow: &scheduler.FlexibleTimeWindow{
			Mode: aws.String(scheduler.FlexibleTimeWindowModeOff),
		},
		Target: &scheduler.Target{
			Arn:     aws.String(t.targetARN),
			RoleArn: aws.String(t.roleARN),
			Input:   aws.String(wakeupPayload),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	t.logger.WithFields(map[string]interface{}{
		"schedule":   t.scheduleName,
		"expression": expression,
	}).Info("Armed wake-up timer")
	return nil
}

// cronExpression encodes a UTC instant as a one-shot cron to the minute:
// cron(M H D MO ? Y).
func cronExpression(at time.Time) string {
	return fmt.Sprintf("cron(%d %d %d %d ? %d)",
		at.Minute(), at.Hour(), at.Day(), int(at.Month()), at.Year())
}

var _ domain.WakeupTimer = (*EventBridgeTimer)(nil)
