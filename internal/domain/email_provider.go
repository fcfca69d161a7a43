package domain

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/scheduler"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/sqs"
)

//go:generate mockgen -destination mocks/mock_email_provider.go -package mocks github.com/borls/collection-email-worker/internal/domain EmailProvider
//go:generate mockgen -destination mocks/mock_http_client.go -package mocks github.com/borls/collection-email-worker/internal/domain HTTPClient
//go:generate mockgen -destination mocks/mock_ses_client.go -package mocks github.com/borls/collection-email-worker/internal/domain SESClient

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SESClient defines the interface for the AWS SES operations the worker uses
type SESClient interface {
	SendRawEmailWithContext(ctx aws.Context, input *ses.SendRawEmailInput, opts ...request.Option) (*ses.SendRawEmailOutput, error)
}

// SQSClient defines the interface for the AWS SQS operations the worker uses
type SQSClient interface {
	ReceiveMessageWithContext(ctx aws.Context, input *sqs.ReceiveMessageInput, opts ...request.Option) (*sqs.ReceiveMessageOutput, error)
	DeleteMessageWithContext(ctx aws.Context, input *sqs.DeleteMessageInput, opts ...request.Option) (*sqs.DeleteMessageOutput, error)
	ChangeMessageVisibilityWithContext(ctx aws.Context, input *sqs.ChangeMessageVisibilityInput, opts ...request.Option) (*sqs.ChangeMessageVisibilityOutput, error)
}

// SchedulerClient defines the interface for the EventBridge Scheduler
// operations the worker uses
type SchedulerClient interface {
	CreateScheduleWithContext(ctx aws.Context, input *scheduler.CreateScheduleInput, opts ...request.Option) (*scheduler.CreateScheduleOutput, error)
	DeleteScheduleWithContext(ctx aws.Context, input *scheduler.DeleteScheduleInput, opts ...request.Option) (*scheduler.DeleteScheduleOutput, error)
}

// EmailMessage carries everything a provider needs to deliver one email.
type EmailMessage struct {
	To          []string
	Subject     string
	HTMLBody    string
	TextBody    string
	From        string
	Attachments []Attachment
	ClientID    string
	ExecutionID string
	MessageID   string
}

// SendResult is the provider's acknowledgement. MessageID is the provider's
// own id and becomes the lookup key for delivery-event reconciliation.
type SendResult struct {
	MessageID string
	Provider  string
	Metadata  map[string]interface{}
}

// EmailProvider is the pluggable delivery contract. Implementations must be
// safe for sequential reuse across batches within one invocation.
type EmailProvider interface {
	SendEmail(ctx context.Context, message EmailMessage) (*SendResult, error)
	ProviderName() string
}
