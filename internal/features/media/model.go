package media

import (
	"time"

	common_models "go-yacht-cms/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaFile is one attachment of a content item, grouped by named collection
// (the collection matches an image/gallery/file field key). Only URLs are
// tracked here; storage and conversion live elsewhere.
type MediaFile struct {
	ID         primitive.ObjectID        `json:"id" bson:"_id,omitempty"`
	ItemKind   common_models.ContentKind `json:"item_kind" bson:"item_kind"`
	ItemID     primitive.ObjectID        `json:"item_id" bson:"item_id"`
	Collection string                    `json:"collection" bson:"collection"`
	URL        string                    `json:"url" bson:"url"`
	SortOrder  int                       `json:"sort_order" bson:"sort_order"`
	CreatedAt  time.Time                 `json:"created_at" bson:"created_at"`
}
