package content

import (
	"context"
	"time"

	common_models "go-yacht-cms/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentItem is a catalog entity (yacht or news post): a typed core plus an
// open custom field bag whose shape the field schema registry declares.
// A custom field value is either a scalar or a per-language map.
type ContentItem struct {
	ID          primitive.ObjectID         `json:"id" bson:"_id,omitempty"`
	Kind        common_models.ContentKind  `json:"kind" bson:"kind"`
	State       common_models.ContentState `json:"state" bson:"state"`
	Title       map[string]string          `json:"title" bson:"title"` // lang code -> text
	Description map[string]string          `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64                    `json:"price,omitempty" bson:"price,omitempty"`
	BrandID     primitive.ObjectID         `json:"brand_id,omitempty" bson:"brand_id,omitempty"`
	ModelID     primitive.ObjectID         `json:"model_id,omitempty" bson:"model_id,omitempty"`

	CustomFields map[string]interface{} `json:"custom_fields,omitempty" bson:"custom_fields,omitempty"`

	// Deleted items stay visible to the sync subsystem so the delete can
	// propagate to every remote site.
	Deleted   bool      `json:"deleted,omitempty" bson:"deleted,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// SyncTrigger is notified after every successful content commit. The sync
// feature's dirty tracker implements it; wired through an fx adapter in main.
type SyncTrigger interface {
	OnContentMutated(ctx context.Context, kind common_models.ContentKind, id string) error
}
