package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/site"
)

// SiteClient is the outbound transport to one remote importer. Both pushes
// carry the site's shared secret in X-API-Key; the timeout is generous
// because content batches can reference heavy media the remote downloads
// inline.
type SiteClient interface {
	PushConfig(ctx context.Context, target *site.SyncSite, fields []schema.FieldConfigDoc) error
	PushContent(ctx context.Context, target *site.SyncSite, items []ItemDoc) (*SyncResponse, error)
}

type SiteClientImpl struct {
	HttpClient *http.Client
}

func NewSiteClient(cfg *config.Config) SiteClient {
	return &SiteClientImpl{
		HttpClient: &http.Client{
			Timeout: time.Duration(cfg.SitePushTimeout) * time.Second,
		},
	}
}

func (c *SiteClientImpl) PushConfig(ctx context.Context, target *site.SyncSite, fields []schema.FieldConfigDoc) error {
	var out ConfigResponse
	if err := c.post(ctx, target, "/sync/v1/config", fields, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("remote rejected field config: %s", out.Error)
	}
	return nil
}

func (c *SiteClientImpl) PushContent(ctx context.Context, target *site.SyncSite, items []ItemDoc) (*SyncResponse, error) {
	var out SyncResponse
	if err := c.post(ctx, target, "/sync/v1/sync", items, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SiteClientImpl) post(ctx context.Context, target *site.SyncSite, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", target.BaseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Yacht-CMS-Sync")
	req.Header.Set("X-API-Key", target.APIKey)

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push to %s failed: %w", target.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("push to %s returned status %d: %s", target.Name, resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from %s: %w", target.Name, err)
	}
	return nil
}
