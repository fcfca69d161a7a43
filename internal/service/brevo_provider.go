package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// BrevoProvider delivers through Brevo's transactional API
// (POST /v3/smtp/email), JSON with base64 attachments.
type BrevoProvider struct {
	httpClient domain.HTTPClient
	apiURL     string
	apiKey     string
	logger     logger.Logger
}

// NewBrevoProvider creates the Brevo adapter.
func NewBrevoProvider(httpClient domain.HTTPClient, apiURL, apiKey string, log logger.Logger) *BrevoProvider {
	return &BrevoProvider{
		httpClient: httpClient,
		apiURL:     apiURL,
		apiKey:     apiKey,
		logger:     log,
	}
}

type brevoSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoAttachment struct {
	Content string `json:"content"` // base64
	Name    string `json:"name"`
}

type brevoEmailRequest struct {
	Sender      brevoSender       `json:"sender"`
	To          []brevoRecipient  `json:"to"`
	Subject     string            `json:"subject"`
	HTMLContent string            `json:"htmlContent"`
	TextContent string            `json:"textContent,omitempty"`
	Attachment  []brevoAttachment `json:"attachment,omitempty"`
}

type brevoEmailResponse struct {
	MessageID string `json:"messageId"`
}

// ProviderName identifies this adapter in logs and send results.
func (p *BrevoProvider) ProviderName() string {
	return "brevo"
}

// SendEmail posts the transactional email request and returns Brevo's
// message id.
func (p *BrevoProvider) SendEmail(ctx context.Context, message domain.EmailMessage) (*domain.SendResult, error) {
	to := validAddresses(message.To)
	if len(to) == 0 {
		return nil, fmt.Errorf("no valid recipient address")
	}

	recipients := make([]brevoRecipient, 0, len(to))
	for _, addr := range to {
		recipients = append(recipients, brevoRecipient{Email: addr})
	}

	var attachments []brevoAttachment
	for _, att := range message.Attachments {
		if len(att.Data) == 0 {
			continue
		}
		attachments = append(attachments, brevoAttachment{
			Content: base64.StdEncoding.EncodeToString(att.Data),
			Name:    att.Name,
		})
	}

	reqBody := brevoEmailRequest{
		Sender:      parseSender(message.From),
		To:          recipients,
		Subject:     message.Subject,
		HTMLContent: message.HTMLBody,
		TextContent: message.TextBody,
		Attachment:  attachments,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal brevo request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create brevo request: %w", err)
	}
	req.Header.Set("api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brevo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("brevo API error: %d - %s", resp.StatusCode, string(body))
	}

	var brevoResp brevoEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&brevoResp); err != nil {
		return nil, fmt.Errorf("failed to decode brevo response: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"message_id": brevoResp.MessageID,
		"client_id":  message.ClientID,
	}).Info("Email sent via Brevo")

	return &domain.SendResult{
		MessageID: brevoResp.MessageID,
		Provider:  p.ProviderName(),
	}, nil
}

// parseSender splits "Name <addr>" into its parts; a bare address is used
// as both name and address.
func parseSender(from string) brevoSender {
	start := strings.Index(from, "<")
	end := strings.Index(from, ">")
	if start >= 0 && end > start {
		return brevoSender{
			Name:  strings.TrimSpace(from[:start]),
			Email: strings.TrimSpace(from[start+1 : end]),
		}
	}
	return brevoSender{Name: from, Email: from}
}

var _ domain.EmailProvider = (*BrevoProvider)(nil)
