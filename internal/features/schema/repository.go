package schema

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

type FieldSchemaRepository interface {
	Create(ctx context.Context, field *FieldSchema) error
	Get(ctx context.Context, id string) (*FieldSchema, error)
	FindByKey(ctx context.Context, kind common_models.ContentKind, key string) (*FieldSchema, error)
	ListByKind(ctx context.Context, kind common_models.ContentKind) ([]FieldSchema, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type FieldSchemaRepositoryImpl struct {
	collection *mongo.Collection
}

func NewFieldSchemaRepository(db *database.MongodbDB) FieldSchemaRepository {
	return &FieldSchemaRepositoryImpl{
		collection: db.DB.Collection("field_schemas"),
	}
}

func (r *FieldSchemaRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_kind", Value: 1},
			{Key: "key", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *FieldSchemaRepositoryImpl) Create(ctx context.Context, field *FieldSchema) error {
	if field.ID.IsZero() {
		field.ID = primitive.NewObjectID()
	}
	field.CreatedAt = time.Now()
	field.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, field)
	return err
}

func (r *FieldSchemaRepositoryImpl) Get(ctx context.Context, id string) (*FieldSchema, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var field FieldSchema
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&field)
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *FieldSchemaRepositoryImpl) FindByKey(ctx context.Context, kind common_models.ContentKind, key string) (*FieldSchema, error) {
	var field FieldSchema
	err := r.collection.FindOne(ctx, bson.M{"entity_kind": kind, "key": key}).Decode(&field)
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (r *FieldSchemaRepositoryImpl) ListByKind(ctx context.Context, kind common_models.ContentKind) ([]FieldSchema, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "group", Value: 1},
		{Key: "order", Value: 1},
	})
	cursor, err := r.collection.Find(ctx, bson.M{"entity_kind": kind}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var fields []FieldSchema
	if err = cursor.All(ctx, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *FieldSchemaRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	updates["updated_at"] = time.Now()
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	return err
}

func (r *FieldSchemaRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
