package supabase

import (
	"context"
	"strings"
)

// DefaultBusinessName is used in the email sender name when the business
// cannot be resolved.
const DefaultBusinessName = "APEX"

// GetBusinessName returns the display name for a business. Lookup failures
// degrade to the platform name instead of failing the batch.
func (c *Client) GetBusinessName(ctx context.Context, businessID string) string {
	u := c.restURL("businesses?id=eq." + businessID + "&select=name")

	var rows []struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, u, "", &rows); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"business_id": businessID,
			"error":       err.Error(),
		}).Error("Failed to fetch business name")
		return DefaultBusinessName
	}
	if len(rows) == 0 || rows[0].Name == "" {
		return DefaultBusinessName
	}
	return rows[0].Name
}

// GetBlacklistedEmails returns the suppressed addresses for a business as a
// lowercased set.
func (c *Client) GetBlacklistedEmails(ctx context.Context, businessID string) (map[string]struct{}, error) {
	u := c.restURL("email_blacklist?business_id=eq." + businessID + "&select=email")

	var rows []struct {
		Email string `json:"email"`
	}
	if err := c.getJSON(ctx, u, "", &rows); err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if row.Email != "" {
			set[strings.ToLower(row.Email)] = struct{}{}
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"business_id": businessID,
		"count":       len(set),
	}).Debug("Fetched blacklisted emails")
	return set, nil
}
