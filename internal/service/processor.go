package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
	"github.com/borls/collection-email-worker/pkg/render"
)

// plainTextBody is the text/plain alternative in every outgoing email.
const plainTextBody = "Por favor habilite HTML para ver este correo."

// fallbackFullName is used when a recipient has no full_name on file.
const fallbackFullName = "Cliente"

// BatchProcessor dispatches one batch of recipients: resolves addresses,
// renders the template per recipient and hands the result to the provider.
// Per-recipient failures are recorded on the recipient and never abort the
// batch.
type BatchProcessor struct {
	store     domain.StoreGateway
	provider  domain.EmailProvider
	fromEmail string
	isDev     bool
	logger    logger.Logger

	sleep func(time.Duration)
}

// NewBatchProcessor creates the processor. isDev enables the one-second
// inter-recipient throttle.
func NewBatchProcessor(store domain.StoreGateway, provider domain.EmailProvider, fromEmail string, isDev bool, log logger.Logger) *BatchProcessor {
	return &BatchProcessor{
		store:     store,
		provider:  provider,
		fromEmail: fromEmail,
		isDev:     isDev,
		logger:    log,
		sleep:     time.Sleep,
	}
}

// Process runs one batch to completion: recipients are handled sequentially,
// then the batch is marked completed and the execution-completion check
// fires. The processed return is false when the execution already finished
// and the batch was skipped untouched.
func (p *BatchProcessor) Process(ctx context.Context, msg *domain.BatchMessage) (bool, error) {
	execution, err := p.store.GetExecution(ctx, msg.ExecutionID)
	if err != nil {
		return false, err
	}
	if execution.IsTerminal() {
		p.logger.WithFields(map[string]interface{}{
			"execution_id": execution.ID,
			"status":       execution.Status,
			"batch_id":     msg.BatchID,
		}).Info("Execution already finished, skipping batch")
		return false, nil
	}

	// A message without explicit ids covers whatever recipients of the
	// execution are still pending.
	var clients []*domain.Client
	if len(msg.ClientIDs) > 0 {
		clients, err = p.store.GetClientsByIDs(ctx, msg.ClientIDs)
	} else {
		clients, err = p.store.GetPendingClients(ctx, msg.ExecutionID)
	}
	if err != nil {
		return false, err
	}

	var attachments []domain.Attachment
	if len(execution.AttachmentIDs) > 0 {
		attachments, err = p.store.GetAttachments(ctx, execution.AttachmentIDs)
		if err != nil {
			p.logger.WithField("error", err.Error()).Warn("Failed to load attachments, sending without them")
			attachments = nil
		}
	}

	blacklist, err := p.store.GetBlacklistedEmails(ctx, execution.BusinessID)
	if err != nil {
		p.logger.WithField("error", err.Error()).Warn("Failed to load blacklist, proceeding without it")
		blacklist = map[string]struct{}{}
	}

	businessName := p.store.GetBusinessName(ctx, execution.BusinessID)
	from := fmt.Sprintf("%s <%s>", businessName, p.fromEmail)

	templates := map[string]*domain.EmailTemplate{}

	dispatched := 0
	for _, client := range clients {
		if p.isDev && dispatched > 0 {
			p.sleep(time.Second)
		}
		if client.Status != domain.ClientStatusPending {
			p.logger.WithFields(map[string]interface{}{
				"client_id": client.ID,
				"status":    client.Status,
			}).Debug("Recipient already dispatched, skipping")
			continue
		}
		p.processClient(ctx, execution, client, attachments, blacklist, from, templates)
		dispatched++
	}

	if err := p.store.UpdateBatchStatus(ctx, msg.BatchID, domain.BatchStatusCompleted); err != nil {
		return false, err
	}

	p.checkExecutionCompletion(ctx, msg.ExecutionID)
	return true, nil
}

func (p *BatchProcessor) processClient(
	ctx context.Context,
	execution *domain.Execution,
	client *domain.Client,
	attachments []domain.Attachment,
	blacklist map[string]struct{},
	from string,
	templates map[string]*domain.EmailTemplate,
) {
	templateID := client.TemplateID(execution)

	emails := p.resolveEmails(ctx, client)
	if len(emails) == 0 {
		p.markFailed(ctx, client, templateID, map[string]interface{}{
			"error": "no emails",
		})
		return
	}

	filtered := filterBlacklisted(emails, blacklist)
	if len(filtered) == 0 {
		p.markFailed(ctx, client, templateID, map[string]interface{}{
			"error":      "all addresses blacklisted",
			"error_type": "blacklisted_emails",
		})
		return
	}

	if templateID == "" {
		p.markFailed(ctx, client, templateID, map[string]interface{}{
			"error":      "no template configured",
			"error_type": "missing_template",
		})
		return
	}

	template, ok := templates[templateID]
	if !ok {
		var err error
		template, err = p.store.GetTemplate(ctx, templateID)
		if err != nil {
			p.markFailed(ctx, client, templateID, map[string]interface{}{
				"error":      err.Error(),
				"error_type": "template_fetch_failed",
			})
			return
		}
		templates[templateID] = template
	}

	result, err := p.provider.SendEmail(ctx, domain.EmailMessage{
		To:          filtered,
		Subject:     template.Subject,
		HTMLBody:    p.renderBody(template, client),
		TextBody:    plainTextBody,
		From:        from,
		Attachments: attachments,
		ClientID:    client.ID,
		ExecutionID: execution.ID,
	})
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"client_id": client.ID,
			"error":     err.Error(),
		}).Error("Provider send failed")
		p.markFailed(ctx, client, templateID, map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	data := cloneCustomData(client.CustomData)
	data["message_id"] = result.MessageID
	data["email_sent_at"] = time.Now().UTC().Format(time.RFC3339)
	data["template_id"] = templateID
	if client.ThresholdID != nil && *client.ThresholdID != "" {
		data["threshold_id"] = *client.ThresholdID
	}
	if err := p.store.UpdateClientStatus(ctx, client.ID, domain.ClientStatusSent, data); err != nil {
		p.logger.WithFields(map[string]interface{}{
			"client_id": client.ID,
			"error":     err.Error(),
		}).Error("Failed to record sent status")
	}
}

// resolveEmails prefers custom_data.email; recipients imported without one
// fall back to the customer record. The found address is kept in memory
// only.
func (p *BatchProcessor) resolveEmails(ctx context.Context, client *domain.Client) []string {
	if emails := client.Emails(); len(emails) > 0 {
		return emails
	}
	if client.CustomerID == nil || *client.CustomerID == "" {
		return nil
	}

	email, err := p.store.GetCustomerEmail(ctx, *client.CustomerID)
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"client_id":   client.ID,
			"customer_id": *client.CustomerID,
			"error":       err.Error(),
		}).Warn("Failed to resolve customer email")
		return nil
	}
	if email == "" {
		return nil
	}

	client.SetEmail(email)
	return client.Emails()
}

// renderBody runs the rendering pipeline for one recipient. A render error
// degrades to the two-token fallback; a CSS inlining error degrades to the
// un-inlined document.
func (p *BatchProcessor) renderBody(template *domain.EmailTemplate, client *domain.Client) string {
	data := cloneCustomData(client.CustomData)

	invoices := make([]map[string]interface{}, 0, len(client.Invoices))
	for _, inv := range client.Invoices {
		formatted := make(map[string]interface{}, len(inv))
		for k, v := range inv {
			formatted[k] = v
		}
		if amount, ok := formatted["amount_due"]; ok {
			formatted["amount_due"] = render.FormatCurrency(render.ToFloat(amount))
		}
		invoices = append(invoices, formatted)
	}
	data["invoices"] = invoices

	data["total_amount_due"] = render.FormatCurrency(render.ToFloat(data["total_amount_due"]))

	if name, _ := data["full_name"].(string); name == "" {
		data["full_name"] = fallbackFullName
	}

	rendered, err := render.Render(template.Content, data)
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"client_id": client.ID,
			"error":     err.Error(),
		}).Error("Template render failed, using fallback body")
		name := client.FullName()
		if name == "" {
			name = fallbackFullName
		}
		return render.Fallback(template.Content, name, client.AmountDue())
	}

	html := render.FixEmptyParagraphs(rendered)
	html = render.PreserveLineBreaks(html)
	html = render.EnhanceInvoiceTables(html)
	html = render.WrapWithStyles(html)

	inlined, err := render.InlineCSS(html)
	if err != nil {
		p.logger.WithField("error", err.Error()).Warn("CSS inlining failed, sending un-inlined HTML")
		return html
	}
	return inlined
}

func (p *BatchProcessor) markFailed(ctx context.Context, client *domain.Client, templateID string, details map[string]interface{}) {
	data := cloneCustomData(client.CustomData)
	for k, v := range details {
		data[k] = v
	}
	if templateID != "" {
		data["template_id"] = templateID
	}
	if err := p.store.UpdateClientStatus(ctx, client.ID, domain.ClientStatusFailed, data); err != nil {
		p.logger.WithFields(map[string]interface{}{
			"client_id": client.ID,
			"error":     err.Error(),
		}).Error("Failed to record failed status")
	}
}

// checkExecutionCompletion marks the execution completed once every batch
// is. DLQ'd batches keep the execution open on purpose: any failure stays
// visible. Re-writing completed over completed is a no-op, so concurrent
// checks from two workers are safe.
func (p *BatchProcessor) checkExecutionCompletion(ctx context.Context, executionID string) {
	batches, err := p.store.GetExecutionBatches(ctx, executionID)
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"execution_id": executionID,
			"error":        err.Error(),
		}).Error("Failed to check execution batches")
		return
	}

	completed := 0
	for _, b := range batches {
		if b.Status == domain.BatchStatusCompleted {
			completed++
		}
	}
	if completed < len(batches) {
		p.logger.WithFields(map[string]interface{}{
			"execution_id": executionID,
			"completed":    completed,
			"total":        len(batches),
		}).Info("Execution still has batches in flight")
		return
	}

	if err := p.store.UpdateExecutionStatus(ctx, executionID, domain.ExecutionStatusCompleted); err != nil {
		p.logger.WithFields(map[string]interface{}{
			"execution_id": executionID,
			"error":        err.Error(),
		}).Error("Failed to mark execution completed")
		return
	}
	p.logger.WithField("execution_id", executionID).Info("Execution completed")
}

func filterBlacklisted(emails []string, blacklist map[string]struct{}) []string {
	var out []string
	for _, email := range emails {
		if _, blocked := blacklist[strings.ToLower(email)]; !blocked {
			out = append(out, email)
		}
	}
	return out
}

func cloneCustomData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data)+4)
	for k, v := range data {
		out[k] = v
	}
	return out
}
