package media

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

type MediaRepository interface {
	Save(ctx context.Context, file *MediaFile) error
	FindByCollection(ctx context.Context, kind common_models.ContentKind, itemID, collection string) ([]*MediaFile, error)
	FindByItem(ctx context.Context, kind common_models.ContentKind, itemID string) ([]*MediaFile, error)
	Delete(ctx context.Context, id string) error
}

type MediaRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMediaRepository(db *database.MongodbDB) MediaRepository {
	return &MediaRepositoryImpl{
		collection: db.DB.Collection("media_files"),
	}
}

func (r *MediaRepositoryImpl) Save(ctx context.Context, file *MediaFile) error {
	if file.ID.IsZero() {
		file.ID = primitive.NewObjectID()
	}
	file.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, file)
	return err
}

func (r *MediaRepositoryImpl) FindByCollection(ctx context.Context, kind common_models.ContentKind, itemID, collection string) ([]*MediaFile, error) {
	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"item_kind":  kind,
		"item_id":    oid,
		"collection": collection,
	}
	opts := options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []*MediaFile
	if err = cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *MediaRepositoryImpl) FindByItem(ctx context.Context, kind common_models.ContentKind, itemID string) ([]*MediaFile, error) {
	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "collection", Value: 1},
		{Key: "sort_order", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"item_kind": kind, "item_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var files []*MediaFile
	if err = cursor.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *MediaRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
