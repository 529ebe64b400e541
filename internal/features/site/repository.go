package site

import (
	"context"
	"time"

	"go-yacht-cms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SiteRepository interface {
	Create(ctx context.Context, site *SyncSite) error
	Get(ctx context.Context, id string) (*SyncSite, error)
	List(ctx context.Context) ([]SyncSite, error)
	ListActive(ctx context.Context) ([]SyncSite, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type SiteRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSiteRepository(db *database.MongodbDB) SiteRepository {
	return &SiteRepositoryImpl{
		collection: db.DB.Collection("sync_sites"),
	}
}

func (r *SiteRepositoryImpl) Create(ctx context.Context, site *SyncSite) error {
	if site.ID.IsZero() {
		site.ID = primitive.NewObjectID()
	}
	site.CreatedAt = time.Now()
	site.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, site)
	return err
}

func (r *SiteRepositoryImpl) Get(ctx context.Context, id string) (*SyncSite, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var site SyncSite
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&site)
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *SiteRepositoryImpl) List(ctx context.Context) ([]SyncSite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sites []SyncSite
	if err = cursor.All(ctx, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// ListActive returns the sync targets in configured priority order.
func (r *SiteRepositoryImpl) ListActive(ctx context.Context) ([]SyncSite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sites []SyncSite
	if err = cursor.All(ctx, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *SiteRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	updates["updated_at"] = time.Now()
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	return err
}

func (r *SiteRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
