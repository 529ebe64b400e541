package sync

import (
	"context"
	"fmt"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/site"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DirtyTracker consumes content mutation events and marks the item pending
// for every active site. It implements content.SyncTrigger.
type DirtyTracker interface {
	OnContentMutated(ctx context.Context, kind common_models.ContentKind, id string) error
}

type DirtyTrackerImpl struct {
	StatusRepo SyncStatusRepository
	SiteRepo   site.SiteRepository
	Logger     *zap.Logger
}

func NewDirtyTracker(statusRepo SyncStatusRepository, siteRepo site.SiteRepository, logger *zap.Logger) DirtyTracker {
	return &DirtyTrackerImpl{
		StatusRepo: statusRepo,
		SiteRepo:   siteRepo,
		Logger:     logger,
	}
}

// OnContentMutated upserts one pending row per active site. Repeated calls
// for the same mutation are harmless: the upsert keys on (site, kind, item).
func (t *DirtyTrackerImpl) OnContentMutated(ctx context.Context, kind common_models.ContentKind, id string) error {
	contentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid content id %q: %w", id, err)
	}

	sites, err := t.SiteRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active sites: %w", err)
	}
	if len(sites) == 0 {
		return nil
	}

	siteIDs := make([]primitive.ObjectID, 0, len(sites))
	for _, s := range sites {
		siteIDs = append(siteIDs, s.ID)
	}

	if err := t.StatusRepo.MarkPendingForSites(ctx, siteIDs, kind, contentID); err != nil {
		return fmt.Errorf("failed to mark pending: %w", err)
	}

	t.Logger.Debug("content marked pending for sync",
		zap.String("kind", string(kind)),
		zap.String("id", id),
		zap.Int("sites", len(siteIDs)),
	)
	return nil
}

// StatusCleaner cascades a site deletion into the status collection. It
// implements site.StatusCleaner.
type StatusCleaner struct {
	Repo SyncStatusRepository
}

func NewStatusCleaner(repo SyncStatusRepository) *StatusCleaner {
	return &StatusCleaner{Repo: repo}
}

func (c *StatusCleaner) CleanupSite(ctx context.Context, siteID string) error {
	oid, err := primitive.ObjectIDFromHex(siteID)
	if err != nil {
		return fmt.Errorf("invalid site id %q: %w", siteID, err)
	}
	return c.Repo.DeleteForSite(ctx, oid)
}
