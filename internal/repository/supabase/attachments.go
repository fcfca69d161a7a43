package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/borls/collection-email-worker/internal/domain"
)

// WithAttachmentLimits caps attachment downloads: at most maxCount files,
// each at most maxBytes. Zero disables the respective cap.
func (c *Client) WithAttachmentLimits(maxBytes int64, maxCount int) *Client {
	c.maxAttachmentBytes = maxBytes
	c.maxAttachmentCount = maxCount
	return c
}

// GetAttachments fetches attachment records and downloads their object bytes
// from storage concurrently. A failed or oversize download leaves that
// attachment's Data empty rather than failing the batch; providers skip
// empty attachments.
func (c *Client) GetAttachments(ctx context.Context, ids []string) ([]domain.Attachment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	u := c.restURL("collection_attachments?id=in.(" + strings.Join(ids, ",") + ")&select=*")

	var attachments []domain.Attachment
	if err := c.getJSON(ctx, u, "", &attachments); err != nil {
		return nil, fmt.Errorf("failed to fetch attachments: %w", err)
	}

	if c.maxAttachmentCount > 0 && len(attachments) > c.maxAttachmentCount {
		c.logger.WithFields(map[string]interface{}{
			"found": len(attachments),
			"limit": c.maxAttachmentCount,
		}).Warn("Too many attachments, truncating")
		attachments = attachments[:c.maxAttachmentCount]
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range attachments {
		att := &attachments[i]
		g.Go(func() error {
			data, err := c.downloadObject(gctx, att.StorageBucket, att.StoragePath)
			if err != nil {
				c.logger.WithFields(map[string]interface{}{
					"attachment": att.Name,
					"error":      err.Error(),
				}).Error("Failed to download attachment")
				return nil
			}
			att.Data = data
			c.logger.WithFields(map[string]interface{}{
				"attachment": att.Name,
				"bytes":      len(data),
			}).Debug("Downloaded attachment")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return attachments, nil
}

func (c *Client) downloadObject(ctx context.Context, bucket, path string) ([]byte, error) {
	u := c.baseURL + "/storage/v1/object/authenticated/" + bucket + "/" + path

	req, err := c.newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if c.maxAttachmentBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxAttachmentBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	if c.maxAttachmentBytes > 0 && int64(len(data)) > c.maxAttachmentBytes {
		return nil, fmt.Errorf("object exceeds %d byte limit", c.maxAttachmentBytes)
	}
	return data, nil
}
