package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/borls/collection-email-worker/internal/domain"
)

// GetClientsByIDs fetches the given recipients. An empty id list short
// circuits to an empty result without a round trip.
func (c *Client) GetClientsByIDs(ctx context.Context, clientIDs []string) ([]*domain.Client, error) {
	if len(clientIDs) == 0 {
		return nil, nil
	}

	u := c.restURL("collection_clients?id=in.(" + strings.Join(clientIDs, ",") + ")&select=*")

	var clients []*domain.Client
	if err := c.getJSON(ctx, u, "", &clients); err != nil {
		return nil, fmt.Errorf("failed to fetch clients by ids: %w", err)
	}
	return clients, nil
}

// GetPendingClients lists the recipients of an execution still waiting for
// dispatch.
func (c *Client) GetPendingClients(ctx context.Context, executionID string) ([]*domain.Client, error) {
	u := c.restURL("collection_clients?execution_id=eq." + executionID + "&status=eq.pending&select=*")

	var clients []*domain.Client
	if err := c.getJSON(ctx, u, "", &clients); err != nil {
		return nil, fmt.Errorf("failed to fetch clients: %w", err)
	}
	return clients, nil
}

// UpdateClientStatus writes the recipient status and, when customData is
// non-nil, replaces custom_data wholesale.
func (c *Client) UpdateClientStatus(ctx context.Context, clientID, status string, customData map[string]interface{}) error {
	u := c.restURL("collection_clients?id=eq." + clientID)

	body := map[string]interface{}{"status": status}
	if customData != nil {
		body["custom_data"] = customData
	}

	if err := c.write(ctx, http.MethodPatch, u, body); err != nil {
		return fmt.Errorf("failed to update client status: %w", err)
	}
	return nil
}

// GetCustomerEmail resolves a recipient's address from the customers table.
// Returns an empty string when the customer has none on file.
func (c *Client) GetCustomerEmail(ctx context.Context, customerID string) (string, error) {
	u := c.restURL("customers?id=eq." + customerID + "&select=email")

	var rows []struct {
		Email *string `json:"email"`
	}
	if err := c.getJSON(ctx, u, "", &rows); err != nil {
		return "", fmt.Errorf("failed to fetch customer email: %w", err)
	}
	if len(rows) == 0 || rows[0].Email == nil {
		return "", nil
	}
	return *rows[0].Email, nil
}

// FindClientByMessageID locates the recipient a provider delivery event
// refers to, by the message id recorded at send time. Returns
// ErrClientNotFound when no recipient matches.
func (c *Client) FindClientByMessageID(ctx context.Context, messageID string) (clientID, executionID string, err error) {
	u := c.restURL("collection_clients?custom_data->>message_id=eq." + url.QueryEscape(messageID) + "&select=id,execution_id")

	var rows []struct {
		ID          string `json:"id"`
		ExecutionID string `json:"execution_id"`
	}
	if err := c.getJSON(ctx, u, "", &rows); err != nil {
		return "", "", fmt.Errorf("failed to search client by message id: %w", err)
	}
	if len(rows) == 0 {
		return "", "", domain.ErrClientNotFound
	}
	return rows[0].ID, rows[0].ExecutionID, nil
}
