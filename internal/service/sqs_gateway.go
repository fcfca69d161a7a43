package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/sqs"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// SQSGateway implements domain.QueueGateway over the batch queue.
type SQSGateway struct {
	client   domain.SQSClient
	queueURL string
	logger   logger.Logger
}

// NewSQSGateway creates the queue gateway for the given queue URL.
func NewSQSGateway(client domain.SQSClient, queueURL string, log logger.Logger) *SQSGateway {
	return &SQSGateway{
		client:   client,
		queueURL: queueURL,
		logger:   log,
	}
}

// ReceiveBatchMessages long-polls for up to 10 messages, reserving 300
// seconds of visibility for each.
func (g *SQSGateway) ReceiveBatchMessages(ctx context.Context) ([]domain.QueueMessage, error) {
	out, err := g.client.ReceiveMessageWithContext(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(g.queueURL),
		MaxNumberOfMessages: aws.Int64(10),
		WaitTimeSeconds:     aws.Int64(5),
		VisibilityTimeout:   aws.Int64(domain.ReservedVisibility),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to receive messages: %w", err)
	}

	messages := make([]domain.QueueMessage, 0, len(out.Messages))
	for _, m := range out.Messages {
		messages = append(messages, domain.QueueMessage{
			MessageID:     aws.StringValue(m.MessageId),
			ReceiptHandle: aws.StringValue(m.ReceiptHandle),
			Body:          aws.StringValue(m.Body),
		})
	}

	g.logger.WithField("count", len(messages)).Debug("Received queue messages")
	return messages, nil
}

// DeleteMessage acknowledges a message.
func (g *SQSGateway) DeleteMessage(ctx context.Context, receiptHandle string) error {
	_, err := g.client.DeleteMessageWithContext(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(g.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return nil
}

// ExtendVisibility postpones redelivery by the given number of seconds,
// clamped to the queue's 12-hour ceiling.
func (g *SQSGateway) ExtendVisibility(ctx context.Context, receiptHandle string, seconds int) error {
	if seconds > domain.MaxVisibilityExtension {
		seconds = domain.MaxVisibilityExtension
	}
	if seconds < 0 {
		seconds = 0
	}

	_, err := g.client.ChangeMessageVisibilityWithContext(ctx, &sqs.ChangeMessageVisibilityInput{
		QueueUrl:          aws.String(g.queueURL),
		ReceiptHandle:     aws.String(receiptHandle),
		VisibilityTimeout: aws.Int64(int64(seconds)),
	})
	if err != nil {
		return fmt.Errorf("failed to change message visibility: %w", err)
	}
	return nil
}
