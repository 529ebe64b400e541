package sync

import (
	"context"
	"time"

	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProgressStore keeps the ephemeral per-run progress records. Rows expire
// through a TTL index so stale runs vanish after the configured window;
// readers treat a missing record as "not started".
type ProgressStore interface {
	Init(ctx context.Context, token string, total int) error
	SetCurrentSite(ctx context.Context, token, siteName string) error
	AppendResult(ctx context.Context, token string, result SiteResult, progress int) error
	Complete(ctx context.Context, token string) error
	Get(ctx context.Context, token string) (*SyncProgress, error)
	EnsureIndexes(ctx context.Context) error
}

type ProgressStoreImpl struct {
	collection *mongo.Collection
	ttl        time.Duration
}

func NewProgressStore(db *database.MongodbDB, cfg *config.Config) ProgressStore {
	return &ProgressStoreImpl{
		collection: db.DB.Collection("sync_progress"),
		ttl:        time.Duration(cfg.ProgressTTL) * time.Second,
	}
}

func (s *ProgressStoreImpl) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(s.ttl.Seconds())),
	})
	return err
}

func (s *ProgressStoreImpl) Init(ctx context.Context, token string, total int) error {
	record := SyncProgress{
		Token:     token,
		Progress:  0,
		Total:     total,
		Results:   []SiteResult{},
		UpdatedAt: time.Now(),
	}

	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"token": token},
		record,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *ProgressStoreImpl) SetCurrentSite(ctx context.Context, token, siteName string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{
			"current_site": siteName,
			"updated_at":   time.Now(),
		}},
	)
	return err
}

// AppendResult records one site's outcome. Results and progress only grow.
func (s *ProgressStoreImpl) AppendResult(ctx context.Context, token string, result SiteResult, progress int) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{
			"$push": bson.M{"results": result},
			"$max":  bson.M{"progress": progress},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	return err
}

func (s *ProgressStoreImpl) Complete(ctx context.Context, token string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{
			"completed":    true,
			"progress":     100,
			"current_site": "",
			"updated_at":   time.Now(),
		}},
	)
	return err
}

// Get returns a default-empty record for unknown or expired tokens.
func (s *ProgressStoreImpl) Get(ctx context.Context, token string) (*SyncProgress, error) {
	var record SyncProgress
	err := s.collection.FindOne(ctx, bson.M{"token": token}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return &SyncProgress{Token: token, Results: []SiteResult{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}
