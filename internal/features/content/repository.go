package content

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

type ContentRepository interface {
	Create(ctx context.Context, item *ContentItem) error
	Get(ctx context.Context, kind common_models.ContentKind, id string) (*ContentItem, error)
	List(ctx context.Context, kind common_models.ContentKind, filter bson.M, limit, offset int64) ([]ContentItem, error)
	Count(ctx context.Context, kind common_models.ContentKind, filter bson.M) (int64, error)
	ListPublished(ctx context.Context, kind common_models.ContentKind, brandIDs []primitive.ObjectID) ([]ContentItem, error)
	ListDeleted(ctx context.Context, kind common_models.ContentKind) ([]ContentItem, error)
	Update(ctx context.Context, item *ContentItem) error
	MarkDeleted(ctx context.Context, kind common_models.ContentKind, id string) error
}

type ContentRepositoryImpl struct {
	collection *mongo.Collection
}

func NewContentRepository(db *database.MongodbDB) ContentRepository {
	return &ContentRepositoryImpl{
		collection: db.DB.Collection("content_items"),
	}
}

func (r *ContentRepositoryImpl) Create(ctx context.Context, item *ContentItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, item)
	return err
}

func (r *ContentRepositoryImpl) Get(ctx context.Context, kind common_models.ContentKind, id string) (*ContentItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var item ContentItem
	err = r.collection.FindOne(ctx, bson.M{"_id": oid, "kind": kind}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ContentRepositoryImpl) List(ctx context.Context, kind common_models.ContentKind, filter bson.M, limit, offset int64) ([]ContentItem, error) {
	query := bson.M{"kind": kind, "deleted": bson.M{"$ne": true}}
	for k, v := range filter {
		query[k] = v
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContentRepositoryImpl) Count(ctx context.Context, kind common_models.ContentKind, filter bson.M) (int64, error) {
	query := bson.M{"kind": kind, "deleted": bson.M{"$ne": true}}
	for k, v := range filter {
		query[k] = v
	}
	return r.collection.CountDocuments(ctx, query)
}

// ListPublished returns the items eligible for a push. A non-empty brandIDs
// narrows yachts to the site's brand restriction.
func (r *ContentRepositoryImpl) ListPublished(ctx context.Context, kind common_models.ContentKind, brandIDs []primitive.ObjectID) ([]ContentItem, error) {
	query := bson.M{
		"kind":    kind,
		"state":   common_models.ContentStatePublished,
		"deleted": bson.M{"$ne": true},
	}
	if len(brandIDs) > 0 {
		query["brand_id"] = bson.M{"$in": brandIDs}
	}

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContentRepositoryImpl) ListDeleted(ctx context.Context, kind common_models.ContentKind) ([]ContentItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"kind": kind, "deleted": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ContentItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ContentRepositoryImpl) Update(ctx context.Context, item *ContentItem) error {
	item.UpdatedAt = time.Now()

	filter := bson.M{"_id": item.ID, "kind": item.Kind}
	_, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": item})
	return err
}

func (r *ContentRepositoryImpl) MarkDeleted(ctx context.Context, kind common_models.ContentKind, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "kind": kind},
		bson.M{"$set": bson.M{"deleted": true, "updated_at": time.Now()}},
	)
	return err
}
