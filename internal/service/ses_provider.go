package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/wneessen/go-mail"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// SESProvider delivers through AWS SES as a raw MIME submission, so
// attachments ride along and the configuration set can stamp open and
// delivery tracking on the message.
type SESProvider struct {
	client           domain.SESClient
	configurationSet string
	logger           logger.Logger
}

// NewSESProvider creates the SES adapter. configurationSet may be empty to
// send without tracking.
func NewSESProvider(client domain.SESClient, configurationSet string, log logger.Logger) *SESProvider {
	return &SESProvider{
		client:           client,
		configurationSet: configurationSet,
		logger:           log,
	}
}

// ProviderName identifies this adapter in logs and send results.
func (p *SESProvider) ProviderName() string {
	return "ses"
}

// SendEmail builds the multipart message and submits it. The returned
// message id is SES's own and keys later delivery-event reconciliation.
func (p *SESProvider) SendEmail(ctx context.Context, message domain.EmailMessage) (*domain.SendResult, error) {
	raw, err := buildRawMessage(message)
	if err != nil {
		return nil, err
	}

	input := &ses.SendRawEmailInput{
		RawMessage: &ses.RawMessage{Data: raw},
	}
	if p.configurationSet != "" {
		input.ConfigurationSetName = aws.String(p.configurationSet)
	}

	out, err := p.client.SendRawEmailWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("ses send failed: %w", err)
	}

	messageID := aws.StringValue(out.MessageId)
	p.logger.WithFields(map[string]interface{}{
		"message_id": messageID,
		"client_id":  message.ClientID,
	}).Info("Email sent via SES")

	return &domain.SendResult{
		MessageID: messageID,
		Provider:  p.ProviderName(),
	}, nil
}

// buildRawMessage assembles the multipart/mixed MIME body: plain text and
// HTML alternatives plus any downloaded attachments. Attachments whose
// download failed (empty data) are skipped.
func buildRawMessage(message domain.EmailMessage) ([]byte, error) {
	to := validAddresses(message.To)
	if len(to) == 0 {
		return nil, fmt.Errorf("no valid recipient address")
	}

	msg := mail.NewMsg()
	if err := msg.From(message.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", message.From, err)
	}
	if err := msg.To(to...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(mail.TypeTextPlain, message.TextBody)
	msg.AddAlternativeString(mail.TypeTextHTML, message.HTMLBody)

	for _, att := range message.Attachments {
		if len(att.Data) == 0 {
			continue
		}
		if err := msg.AttachReader(att.Name, bytes.NewReader(att.Data),
			mail.WithFileContentType(mail.ContentType(att.ContentType()))); err != nil {
			return nil, fmt.Errorf("failed to attach %q: %w", att.Name, err)
		}
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to build raw message: %w", err)
	}
	return buf.Bytes(), nil
}

// validAddresses drops syntactically invalid recipients.
func validAddresses(addresses []string) []string {
	var out []string
	for _, addr := range addresses {
		if govalidator.IsEmail(addr) {
			out = append(out, addr)
		}
	}
	return out
}

var _ domain.EmailProvider = (*SESProvider)(nil)
