package service

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

type fakeSQSClient struct {
	receiveInput    *sqs.ReceiveMessageInput
	receiveOutput   *sqs.ReceiveMessageOutput
	deleteInput     *sqs.DeleteMessageInput
	visibilityInput *sqs.ChangeMessageVisibilityInput
}

func (f *fakeSQSClient) ReceiveMessageWithContext(_ aws.Context, input *sqs.ReceiveMessageInput, _ ...request.Option) (*sqs.ReceiveMessageOutput, error) {
	f.receiveInput = input
	if f.receiveOutput != nil {
		return f.receiveOutput, nil
	}
	return &sqs.ReceiveMessageOutput{}, nil
}

func (f *fakeSQSClient) DeleteMessageWithContext(_ aws.Context, input *sqs.DeleteMessageInput, _ ...request.Option) (*sqs.DeleteMessageOutput, error) {
	f.deleteInput = input
	return &sqs.DeleteMessageOutput{}, nil
}

func (f *fakeSQSClient) ChangeMessageVisibilityWithContext(_ aws.Context, input *sqs.ChangeMessageVisibilityInput, _ ...request.Option) (*sqs.ChangeMessageVisibilityOutput, error) {
	f.visibilityInput = input
	return &sqs.ChangeMessageVisibilityOutput{}, nil
}

const testQueueURL = "https://sqs.us-east-1.amazonaws.com/123/batch-queue"

func TestReceiveBatchMessages(t *testing.T) {
	client := &fakeSQSClient{
		receiveOutput: &sqs.ReceiveMessageOutput{
			Messages: []*sqs.Message{{
				MessageId:     aws.String("m-1"),
				ReceiptHandle: aws.String("rh-1"),
				Body:          aws.String(`{"batch_id":"b-1"}`),
			}},
		},
	}
	gateway := NewSQSGateway(client, testQueueURL, logger.NewTestLogger(t))

	messages, err := gateway.ReceiveBatchMessages(context.Background())
	require.NoError(t, err)

	require.Len(t, messages, 1)
	assert.Equal(t, domain.QueueMessage{
		MessageID:     "m-1",
		ReceiptHandle: "rh-1",
		Body:          `{"batch_id":"b-1"}`,
	}, messages[0])

	assert.Equal(t, testQueueURL, aws.StringValue(client.receiveInput.QueueUrl))
	assert.Equal(t, int64(10), aws.Int64Value(client.receiveInput.MaxNumberOfMessages))
	assert.Equal(t, int64(5), aws.Int64Value(client.receiveInput.WaitTimeSeconds))
	assert.Equal(t, int64(domain.ReservedVisibility), aws.Int64Value(client.receiveInput.VisibilityTimeout))
}

func TestDeleteMessage(t *testing.T) {
	client := &fakeSQSClient{}
	gateway := NewSQSGateway(client, testQueueURL, logger.NewTestLogger(t))

	require.NoError(t, gateway.DeleteMessage(context.Background(), "rh-1"))
	assert.Equal(t, "rh-1", aws.StringValue(client.deleteInput.ReceiptHandle))
	assert.Equal(t, testQueueURL, aws.StringValue(client.deleteInput.QueueUrl))
}

func TestExtendVisibilityClampsToCeiling(t *testing.T) {
	tests := []struct {
		name    string
		seconds int
		want    int64
	}{
		{"in range", 3600, 3600},
		{"above ceiling", 100000, domain.MaxVisibilityExtension},
		{"negative", -5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := &fakeSQSClient{}
			gateway := NewSQSGateway(client, testQueueURL, logger.NewTestLogger(t))

			require.NoError(t, gateway.ExtendVisibility(context.Background(), "rh-1", tc.seconds))
			assert.Equal(t, tc.want, aws.Int64Value(client.visibilityInput.VisibilityTimeout))
		})
	}
}
