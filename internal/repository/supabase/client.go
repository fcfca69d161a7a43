// Package supabase implements the store gateway over the Supabase REST and
// storage APIs. All access uses the service key, so PostgREST row security
// is bypassed; filters in the query string are the only scoping.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/borls/collection-email-worker/internal/domain"
	"github.com/borls/collection-email-worker/pkg/logger"
)

// Client is the shared REST transport for the store gateway, the audit
// logger and the scheduler lock.
type Client struct {
	httpClient domain.HTTPClient
	baseURL    string
	apiKey     string
	logger     logger.Logger

	maxAttachmentBytes int64
	maxAttachmentCount int
}

// NewClient creates a Supabase REST client for the given project URL and
// service key.
func NewClient(httpClient domain.HTTPClient, baseURL, apiKey string, log logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     log,
	}
}

func (c *Client) restURL(pathAndQuery string) string {
	return c.baseURL + "/rest/v1/" + pathAndQuery
}

func (c *Client) newRequest(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// getJSON performs a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, url string, accept string, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// write performs a PATCH or POST with Prefer: return=minimal and discards
// the response body.
func (c *Client) write(ctx context.Context, method, url string, body interface{}) error {
	req, err := c.newRequest(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// rpc calls a PostgREST function and decodes its scalar or JSON result
// into out when out is non-nil.
func (c *Client) rpc(ctx context.Context, name string, args interface{}, out interface{}) error {
	req, err := c.newRequest(ctx, http.MethodPost, c.restURL("rpc/"+name), args)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %s failed: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("rpc %s: unexpected status %d", name, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("rpc %s: failed to decode result: %w", name, err)
	}
	return nil
}
