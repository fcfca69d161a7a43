package supabase

import (
	"context"
	"fmt"

	"github.com/borls/collection-email-worker/internal/domain"
)

// GetTemplate fetches a template as a single object. The HTML body is
// preferred; templates authored before the rich editor only carry
// content_plain.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*domain.EmailTemplate, error) {
	u := c.restURL("collection_templates?id=eq." + templateID + "&select=id,subject,content_html,content_plain")

	var row struct {
		ID           string  `json:"id"`
		Subject      string  `json:"subject"`
		ContentHTML  *string `json:"content_html"`
		ContentPlain *string `json:"content_plain"`
	}
	if err := c.getJSON(ctx, u, "application/vnd.pgrst.object+json", &row); err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	if row.ID == "" {
		return nil, domain.ErrTemplateNotFound
	}

	content := ""
	switch {
	case row.ContentHTML != nil && *row.ContentHTML != "":
		content = *row.ContentHTML
	case row.ContentPlain != nil:
		content = *row.ContentPlain
	}

	return &domain.EmailTemplate{
		ID:      row.ID,
		Subject: row.Subject,
		Content: content,
	}, nil
}
