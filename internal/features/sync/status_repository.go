package sync

import (
	"context"
	"time"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SyncStatusRepository interface {
	MarkPendingForSites(ctx context.Context, siteIDs []primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID) error
	MarkSynced(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID, contentHash string) error
	MarkFailed(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID, errMsg string) error
	Get(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID) (*SyncStatus, error)
	ListBySite(ctx context.Context, siteID primitive.ObjectID, status Status, limit int64) ([]SyncStatus, error)
	CountByStatus(ctx context.Context, siteID primitive.ObjectID, status Status) (int64, error)
	DeleteForSite(ctx context.Context, siteID primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type SyncStatusRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSyncStatusRepository(db *database.MongodbDB) SyncStatusRepository {
	return &SyncStatusRepositoryImpl{
		collection: db.DB.Collection("sync_statuses"),
	}
}

func (r *SyncStatusRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "site_id", Value: 1},
			{Key: "content_kind", Value: 1},
			{Key: "content_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// MarkPendingForSites upserts a pending row per site. The content hash is
// deliberately left alone: it only changes on a successful push.
func (r *SyncStatusRepositoryImpl) MarkPendingForSites(ctx context.Context, siteIDs []primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID) error {
	if len(siteIDs) == 0 {
		return nil
	}

	now := time.Now()
	writes := make([]mongo.WriteModel, 0, len(siteIDs))
	for _, siteID := range siteIDs {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{
				"site_id":      siteID,
				"content_kind": kind,
				"content_id":   contentID,
			}).
			SetUpdate(bson.M{
				"$set": bson.M{
					"status":        StatusPending,
					"error_message": "",
					"updated_at":    now,
				},
			}).
			SetUpsert(true))
	}

	_, err := r.collection.BulkWrite(ctx, writes)
	return err
}

func (r *SyncStatusRepositoryImpl) MarkSynced(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID, contentHash string) error {
	now := time.Now()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"site_id": siteID, "content_kind": kind, "content_id": contentID},
		bson.M{"$set": bson.M{
			"status":         StatusSynced,
			"content_hash":   contentHash,
			"last_synced_at": now,
			"error_message":  "",
			"updated_at":     now,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *SyncStatusRepositoryImpl) MarkFailed(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID, errMsg string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"site_id": siteID, "content_kind": kind, "content_id": contentID},
		bson.M{"$set": bson.M{
			"status":        StatusFailed,
			"error_message": errMsg,
			"updated_at":    time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *SyncStatusRepositoryImpl) Get(ctx context.Context, siteID primitive.ObjectID, kind common_models.ContentKind, contentID primitive.ObjectID) (*SyncStatus, error) {
	var status SyncStatus
	err := r.collection.FindOne(ctx, bson.M{
		"site_id":      siteID,
		"content_kind": kind,
		"content_id":   contentID,
	}).Decode(&status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *SyncStatusRepositoryImpl) ListBySite(ctx context.Context, siteID primitive.ObjectID, status Status, limit int64) ([]SyncStatus, error) {
	filter := bson.M{"site_id": siteID}
	if status != "" {
		filter["status"] = status
	}
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var statuses []SyncStatus
	if err = cursor.All(ctx, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *SyncStatusRepositoryImpl) CountByStatus(ctx context.Context, siteID primitive.ObjectID, status Status) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"site_id": siteID, "status": status})
}

// DeleteForSite cascades when a site is deleted.
func (r *SyncStatusRepositoryImpl) DeleteForSite(ctx context.Context, siteID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"site_id": siteID})
	return err
}
