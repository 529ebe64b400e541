package models

import "time"

type ContextKey string

const (
	UserClaimsKey ContextKey = "user_claims"
)

// ContentKind tags a catalog entity type
type ContentKind string

const (
	ContentKindYacht ContentKind = "yacht"
	ContentKindNews  ContentKind = "news"
)

func (k ContentKind) Valid() bool {
	return k == ContentKindYacht || k == ContentKindNews
}

// ContentState is the lifecycle state of a catalog item
type ContentState string

const (
	ContentStateDraft     ContentState = "draft"
	ContentStatePublished ContentState = "published"
)

// Log is the row shape the async zap tee writes into the logs collection
type Log struct {
	Message      string    `bson:"message"`
	Caller       string    `bson:"caller,omitempty"`
	Site         string    `bson:"site,omitempty"`
	RunToken     string    `bson:"run_token,omitempty"`
	LogLevelId   int       `bson:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}
