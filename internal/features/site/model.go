package site

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncSite is one remote WordPress target. Deactivating a site excludes it
// from future runs without deleting its sync history.
type SyncSite struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	BaseURL     string               `json:"base_url" bson:"base_url"`
	APIKey      string               `json:"api_key,omitempty" bson:"api_key"`
	IsActive    bool                 `json:"is_active" bson:"is_active"`
	Priority    int                  `json:"priority" bson:"priority"`
	Languages   []string             `json:"languages,omitempty" bson:"languages,omitempty"`     // supported language subset, empty = all
	BrandFilter []primitive.ObjectID `json:"brand_filter,omitempty" bson:"brand_filter,omitempty"` // restrict yachts to these brands
	LastSyncAt  time.Time            `json:"last_sync_at" bson:"last_sync_at"`
	LastResult  string               `json:"last_result,omitempty" bson:"last_result,omitempty"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}
