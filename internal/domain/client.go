package domain

import (
	"strings"
)

// Client (recipient) statuses in collection_clients. The dispatch path writes
// sent/failed; delivered, opened, bounced and complained are reconciled from
// provider delivery events.
const (
	ClientStatusPending    = "pending"
	ClientStatusSent       = "sent"
	ClientStatusFailed     = "failed"
	ClientStatusDelivered  = "delivered"
	ClientStatusOpened     = "opened"
	ClientStatusBounced    = "bounced"
	ClientStatusComplained = "complained"
)

// Client is one email target of an execution. CustomData is a free-form
// mapping carrying the rendering context (email, full_name, amounts) and, once
// dispatched, the delivery outcome (message_id, email_sent_at, error).
type Client struct {
	ID              string                   `json:"id"`
	ExecutionID     string                   `json:"execution_id"`
	Status          string                   `json:"status"`
	CustomData      map[string]interface{}   `json:"custom_data"`
	Invoices        []map[string]interface{} `json:"invoices"`
	EmailTemplateID *string                  `json:"email_template_id"`
	CustomerID      *string                  `json:"customer_id"`
	ThresholdID     *string                  `json:"threshold_id"`
}

// Emails returns the recipient addresses carried in custom_data. A string
// value may hold several addresses separated by commas or semicolons; a list
// value is flattened. Addresses are trimmed, empty entries dropped.
func (c *Client) Emails() []string {
	if c.CustomData == nil {
		return nil
	}
	switch v := c.CustomData["email"].(type) {
	case string:
		return splitEmails(v)
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, splitEmails(s)...)
			}
		}
		return out
	}
	return nil
}

func splitEmails(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SetEmail stores a resolved address in the in-memory custom data. It is
// never persisted back from the dispatch path.
func (c *Client) SetEmail(email string) {
	if c.CustomData == nil {
		c.CustomData = map[string]interface{}{}
	}
	c.CustomData["email"] = email
}

// FullName returns custom_data.full_name when present.
func (c *Client) FullName() string {
	if c.CustomData == nil {
		return ""
	}
	if s, ok := c.CustomData["full_name"].(string); ok {
		return s
	}
	return ""
}

// AmountDue returns custom_data.total_amount_due as a float, zero when absent.
func (c *Client) AmountDue() float64 {
	if c.CustomData == nil {
		return 0
	}
	if f, ok := c.CustomData["total_amount_due"].(float64); ok {
		return f
	}
	return 0
}

// TemplateID resolves the template for this client: a per-client override
// beats the execution default. Empty when neither is set.
func (c *Client) TemplateID(execution *Execution) string {
	if c.EmailTemplateID != nil && *c.EmailTemplateID != "" {
		return *c.EmailTemplateID
	}
	if execution != nil && execution.EmailTemplateID != nil {
		return *execution.EmailTemplateID
	}
	return ""
}
