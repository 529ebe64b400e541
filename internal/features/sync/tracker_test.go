package sync

import (
	"context"
	"testing"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/site"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeSiteRepo struct {
	site.SiteRepository
	active []site.SyncSite
}

func (f *fakeSiteRepo) ListActive(ctx context.Context) ([]site.SyncSite, error) {
	return f.active, nil
}

type pendingCall struct {
	siteIDs   []primitive.ObjectID
	kind      common_models.ContentKind
	contentID primitive.ObjectID
}

type fakeStatusRepo struct {
	SyncStatusRepository
	pendingCalls []pendingCall
	statuses     map[string]*SyncStatus
	synced       []string
	failed       []string
	cleanedSites []primitive.ObjectID
}

func (f *fakeStatusRepo) DeleteForSite(ctx context.Context, siteID primitive.ObjectID) error {
	f.cleanedSites = append(f.cleanedSites, siteID)
	return nil
}

func (f *fakeStatusRepo) MarkPendingForSites(ctx context.Context, siteIDs []primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID) error {
	f.pendingCalls = append(f.pendingCalls, pendingCall{siteIDs: siteIDs, kind: kind, contentID: contentID})
	return nil
}

func (f *fakeStatusRepo) MarkSynced(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID, contentHash string) error {
	f.synced = append(f.synced, contentID.Hex())
	return nil
}

func (f *fakeStatusRepo) MarkFailed(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID, errMsg string) error {
	f.failed = append(f.failed, contentID.Hex())
	return nil
}

func (f *fakeStatusRepo) Get(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID) (*SyncStatus, error) {
	if f.statuses == nil {
		return nil, nil
	}
	return f.statuses[contentID.Hex()], nil
}

func TestDirtyTrackerMarksAllActiveSites(t *testing.T) {
	siteA := site.SyncSite{ID: primitive.NewObjectID(), Name: "A"}
	siteB := site.SyncSite{ID: primitive.NewObjectID(), Name: "B"}
	statusRepo := &fakeStatusRepo{}
	tracker := NewDirtyTracker(statusRepo, &fakeSiteRepo{active: []site.SyncSite{siteA, siteB}}, zap.NewNop())

	contentID := primitive.NewObjectID()
	if err := tracker.OnContentMutated(context.Background(), common_models.ContentKindYacht, contentID.Hex()); err != nil {
		t.Fatalf("OnContentMutated: %v", err)
	}

	if len(statusRepo.pendingCalls) != 1 {
		t.Fatalf("pending calls = %d, want 1", len(statusRepo.pendingCalls))
	}
	call := statusRepo.pendingCalls[0]
	if len(call.siteIDs) != 2 {
		t.Errorf("marked %d sites, want 2", len(call.siteIDs))
	}
	if call.kind != common_models.ContentKindYacht || call.contentID != contentID {
		t.Errorf("marked wrong item: %s %s", call.kind, call.contentID.Hex())
	}
}

func TestDirtyTrackerNoActiveSites(t *testing.T) {
	statusRepo := &fakeStatusRepo{}
	tracker := NewDirtyTracker(statusRepo, &fakeSiteRepo{}, zap.NewNop())

	if err := tracker.OnContentMutated(context.Background(), common_models.ContentKindNews, primitive.NewObjectID().Hex()); err != nil {
		t.Fatalf("OnContentMutated: %v", err)
	}
	if len(statusRepo.pendingCalls) != 0 {
		t.Errorf("pending calls = %d, want 0", len(statusRepo.pendingCalls))
	}
}

func TestStatusCleanerCascadesSiteDeletion(t *testing.T) {
	statusRepo := &fakeStatusRepo{}
	cleaner := NewStatusCleaner(statusRepo)

	siteID := primitive.NewObjectID()
	if err := cleaner.CleanupSite(context.Background(), siteID.Hex()); err != nil {
		t.Fatalf("CleanupSite: %v", err)
	}
	if len(statusRepo.cleanedSites) != 1 || statusRepo.cleanedSites[0] != siteID {
		t.Errorf("cleaned sites = %v, want [%s]", statusRepo.cleanedSites, siteID.Hex())
	}

	if err := cleaner.CleanupSite(context.Background(), "bogus"); err == nil {
		t.Error("expected error for malformed site id")
	}
}

func TestDirtyTrackerRejectsInvalidID(t *testing.T) {
	tracker := NewDirtyTracker(&fakeStatusRepo{}, &fakeSiteRepo{}, zap.NewNop())

	if err := tracker.OnContentMutated(context.Background(), common_models.ContentKindYacht, "not-an-id"); err == nil {
		t.Error("expected error for malformed content id")
	}
}
