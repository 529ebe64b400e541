package sync

import (
	"time"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/brand"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSynced  Status = "synced"
	StatusFailed  Status = "failed"
)

// SyncStatus is the consistency record: exactly one row per (site, kind,
// item). ContentHash is the fingerprint of the payload as of the last
// successful push and is never touched when a row goes pending, so dirty
// counts reflect true staleness.
type SyncStatus struct {
	ID           primitive.ObjectID        `json:"id" bson:"_id,omitempty"`
	SiteID       primitive.ObjectID        `json:"site_id" bson:"site_id"`
	ContentKind  common_models.ContentKind `json:"content_kind" bson:"content_kind"`
	ContentID    primitive.ObjectID        `json:"content_id" bson:"content_id"`
	Status       Status                    `json:"status" bson:"status"`
	ContentHash  string                    `json:"content_hash,omitempty" bson:"content_hash,omitempty"`
	LastSyncedAt time.Time                 `json:"last_synced_at,omitempty" bson:"last_synced_at,omitempty"`
	ErrorMessage string                    `json:"error_message,omitempty" bson:"error_message,omitempty"`
	UpdatedAt    time.Time                 `json:"updated_at" bson:"updated_at"`
}

// SiteResult is one site's outcome within a run.
type SiteResult struct {
	Site    string `json:"site" bson:"site"`
	Success bool   `json:"success" bson:"success"`
	Message string `json:"message,omitempty" bson:"message,omitempty"`
}

// SyncProgress is the ephemeral run record polled by the UI. Progress and
// Results only grow during a run; Completed marks the terminal state. Rows
// expire via a TTL index on UpdatedAt.
type SyncProgress struct {
	Token       string       `json:"token" bson:"token"`
	Progress    int          `json:"progress" bson:"progress"` // 0-100
	CurrentSite string       `json:"current_site,omitempty" bson:"current_site,omitempty"`
	Completed   bool         `json:"completed" bson:"completed"`
	Total       int          `json:"total" bson:"total"`
	Results     []SiteResult `json:"results" bson:"results"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// TranslationDoc is the per-language slice of an item payload.
type TranslationDoc struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	Price        float64                `json:"price,omitempty"`
	CustomFields map[string]interface{} `json:"custom_fields"`
}

// ItemDoc is the site-ready document pushed to a remote importer. ExternalID
// is the deterministic "<kind>-<id>" the remote matches on; it must be
// stable across repeated pushes.
type ItemDoc struct {
	ExternalID   string                    `json:"external_id"`
	Kind         string                    `json:"kind"`
	Slug         string                    `json:"slug,omitempty"`
	Deleted      bool                      `json:"deleted,omitempty"`
	Translations map[string]TranslationDoc `json:"translations"`
	Media        map[string]interface{}    `json:"media"` // collection -> URL or ordered []URL
	Brand        *brand.Ref                `json:"brand,omitempty"`
	Model        *brand.Ref                `json:"model,omitempty"`
}

// ConfigResponse is the remote answer to a field configuration push.
type ConfigResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// ItemResult is the remote outcome for one pushed item.
type ItemResult struct {
	ExternalID string `json:"external_id"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}

// SyncResponse is the remote answer to a content batch push.
type SyncResponse struct {
	Imported int          `json:"imported"`
	Failed   int          `json:"failed"`
	Results  []ItemResult `json:"results"`
}

// StatusSummary is the per-site dirty count surfaced to the admin dashboard.
type StatusSummary struct {
	SiteID  string `json:"site_id"`
	Site    string `json:"site"`
	Pending int64  `json:"pending"`
	Synced  int64  `json:"synced"`
	Failed  int64  `json:"failed"`
}
