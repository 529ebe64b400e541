package language

import (
	"context"
	"time"

	"go-yacht-cms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LanguageRepository interface {
	Create(ctx context.Context, lang *Language) error
	Get(ctx context.Context, id string) (*Language, error)
	FindByCode(ctx context.Context, code string) (*Language, error)
	List(ctx context.Context) ([]Language, error)
	ListActive(ctx context.Context) ([]Language, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type LanguageRepositoryImpl struct {
	collection *mongo.Collection
}

func NewLanguageRepository(db *database.MongodbDB) LanguageRepository {
	return &LanguageRepositoryImpl{
		collection: db.DB.Collection("languages"),
	}
}

func (r *LanguageRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *LanguageRepositoryImpl) Create(ctx context.Context, lang *Language) error {
	if lang.ID.IsZero() {
		lang.ID = primitive.NewObjectID()
	}
	lang.CreatedAt = time.Now()
	lang.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lang)
	return err
}

func (r *LanguageRepositoryImpl) Get(ctx context.Context, id string) (*Language, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var lang Language
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&lang)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

func (r *LanguageRepositoryImpl) FindByCode(ctx context.Context, code string) (*Language, error) {
	var lang Language
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&lang)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

func (r *LanguageRepositoryImpl) List(ctx context.Context) ([]Language, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var langs []Language
	if err = cursor.All(ctx, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

func (r *LanguageRepositoryImpl) ListActive(ctx context.Context) ([]Language, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var langs []Language
	if err = cursor.All(ctx, &langs); err != nil {
		return nil, err
	}
	return langs, nil
}

func (r *LanguageRepositoryImpl) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	updates["updated_at"] = time.Now()
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	return err
}

func (r *LanguageRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
