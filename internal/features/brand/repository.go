package brand

import (
	"context"
	"time"

	"go-yacht-cms/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BrandRepository interface {
	CreateBrand(ctx context.Context, b *Brand) error
	GetBrand(ctx context.Context, id string) (*Brand, error)
	ListBrands(ctx context.Context) ([]Brand, error)
	DeleteBrand(ctx context.Context, id string) error
	CreateModel(ctx context.Context, m *Model) error
	GetModel(ctx context.Context, id string) (*Model, error)
	ListModels(ctx context.Context, brandID string) ([]Model, error)
	DeleteModel(ctx context.Context, id string) error
}

type BrandRepositoryImpl struct {
	brands *mongo.Collection
	models *mongo.Collection
}

func NewBrandRepository(db *database.MongodbDB) BrandRepository {
	return &BrandRepositoryImpl{
		brands: db.DB.Collection("brands"),
		models: db.DB.Collection("yacht_models"),
	}
}

func (r *BrandRepositoryImpl) CreateBrand(ctx context.Context, b *Brand) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()

	_, err := r.brands.InsertOne(ctx, b)
	return err
}

func (r *BrandRepositoryImpl) GetBrand(ctx context.Context, id string) (*Brand, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var b Brand
	err = r.brands.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BrandRepositoryImpl) ListBrands(ctx context.Context) ([]Brand, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.brands.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var brands []Brand
	if err = cursor.All(ctx, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *BrandRepositoryImpl) DeleteBrand(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	if _, err := r.models.DeleteMany(ctx, bson.M{"brand_id": oid}); err != nil {
		return err
	}
	_, err = r.brands.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *BrandRepositoryImpl) CreateModel(ctx context.Context, m *Model) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()

	_, err := r.models.InsertOne(ctx, m)
	return err
}

func (r *BrandRepositoryImpl) GetModel(ctx context.Context, id string) (*Model, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var m Model
	err = r.models.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *BrandRepositoryImpl) ListModels(ctx context.Context, brandID string) ([]Model, error) {
	filter := bson.M{}
	if brandID != "" {
		oid, err := primitive.ObjectIDFromHex(brandID)
		if err != nil {
			return nil, err
		}
		filter["brand_id"] = oid
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.models.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var models []Model
	if err = cursor.All(ctx, &models); err != nil {
		return nil, err
	}
	return models, nil
}

func (r *BrandRepositoryImpl) DeleteModel(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.models.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
