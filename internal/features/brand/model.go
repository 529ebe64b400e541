package brand

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand is a yacht manufacturer. Slug is always derived from the name so
// remote taxonomy terms stay stable.
type Brand struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Model is a yacht model belonging to a brand.
type Model struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BrandID   primitive.ObjectID `json:"brand_id" bson:"brand_id"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Ref is the denormalized snapshot embedded in sync payloads.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
