package site

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

type SiteService interface {
	CreateSite(ctx context.Context, site *SyncSite) error
	GetSite(ctx context.Context, id string) (*SyncSite, error)
	ListSites(ctx context.Context) ([]SyncSite, error)
	ListActiveSites(ctx context.Context) ([]SyncSite, error)
	UpdateSite(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteSite(ctx context.Context, id string) error
	RecordSyncResult(ctx context.Context, id string, result string) error
}

// StatusCleaner removes a deleted site's per-item sync state. The sync
// feature implements it; wired through an fx adapter in main.
type StatusCleaner interface {
	CleanupSite(ctx context.Context, siteID string) error
}

type SiteServiceImpl struct {
	Repo    SiteRepository
	Cleaner StatusCleaner
}

func NewSiteService(repo SiteRepository, cleaner StatusCleaner) SiteService {
	return &SiteServiceImpl{Repo: repo, Cleaner: cleaner}
}

func (s *SiteServiceImpl) CreateSite(ctx context.Context, site *SyncSite) error {
	if site.Name == "" {
		return errors.New("site name is required")
	}
	if site.APIKey == "" {
		return errors.New("site API key is required")
	}
	if _, err := url.ParseRequestURI(site.BaseURL); err != nil {
		return errors.New("site base URL is invalid")
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")

	return s.Repo.Create(ctx, site)
}

func (s *SiteServiceImpl) GetSite(ctx context.Context, id string) (*SyncSite, error) {
	return s.Repo.Get(ctx, id)
}

func (s *SiteServiceImpl) ListSites(ctx context.Context) ([]SyncSite, error) {
	return s.Repo.List(ctx)
}

func (s *SiteServiceImpl) ListActiveSites(ctx context.Context) ([]SyncSite, error) {
	return s.Repo.ListActive(ctx)
}

func (s *SiteServiceImpl) UpdateSite(ctx context.Context, id string, updates map[string]interface{}) error {
	if raw, ok := updates["base_url"].(string); ok {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return errors.New("site base URL is invalid")
		}
		updates["base_url"] = strings.TrimRight(raw, "/")
	}
	return s.Repo.Update(ctx, id, updates)
}

// DeleteSite removes the site and cascades its sync state: stale status
// rows for a gone site would otherwise pollute the dirty counts forever.
func (s *SiteServiceImpl) DeleteSite(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.Cleaner != nil {
		return s.Cleaner.CleanupSite(ctx, id)
	}
	return nil
}

// RecordSyncResult stamps the outcome of the latest push onto the site row.
func (s *SiteServiceImpl) RecordSyncResult(ctx context.Context, id string, result string) error {
	return s.Repo.Update(ctx, id, map[string]interface{}{
		"last_sync_at": time.Now(),
		"last_result":  result,
	})
}
