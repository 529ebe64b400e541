package language

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Language is a configured translation target. The default language is the
// canonical one: its text is what editors type and what option labels fall
// back to.
type Language struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code"` // ISO code, e.g. "en", "sl"
	Name      string             `json:"name" bson:"name"`
	IsDefault bool               `json:"is_default" bson:"is_default"`
	IsActive  bool               `json:"is_active" bson:"is_active"`
	Order     int                `json:"order" bson:"order"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
