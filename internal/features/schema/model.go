package schema

import (
	"time"

	common_models "go-yacht-cms/internal/common/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextArea FieldType = "textarea"
	FieldTypeRichText FieldType = "richtext"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeImage    FieldType = "image"
	FieldTypeGallery  FieldType = "gallery"
	FieldTypeRepeater FieldType = "repeater"
	FieldTypeFile     FieldType = "file"
)

func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeTextArea, FieldTypeRichText, FieldTypeNumber,
		FieldTypeDate, FieldTypeSelect, FieldTypeCheckbox, FieldTypeImage,
		FieldTypeGallery, FieldTypeRepeater, FieldTypeFile:
		return true
	}
	return false
}

// IsMedia reports whether values of this type resolve from the media store
// instead of the stored custom field bag.
func (t FieldType) IsMedia() bool {
	return t == FieldTypeImage || t == FieldTypeGallery || t == FieldTypeFile
}

// FieldOption is one choice of a select/checkbox field. Labels carries the
// per-language label used when the field syncs as a taxonomy term; Label is
// the canonical (default language) one.
type FieldOption struct {
	Value  string            `json:"value" bson:"value"`
	Label  string            `json:"label" bson:"label"`
	Labels map[string]string `json:"labels,omitempty" bson:"labels,omitempty"`
}

// FieldSchema declares one custom field of an entity kind. (entity_kind, key)
// is unique. The sync subsystem only reads these.
type FieldSchema struct {
	ID             primitive.ObjectID        `json:"id" bson:"_id,omitempty"`
	EntityKind     common_models.ContentKind `json:"entity_kind" bson:"entity_kind"`
	Key            string                    `json:"key" bson:"key"`
	Label          string                    `json:"label" bson:"label"`
	Type           FieldType                 `json:"type" bson:"type"`
	Group          string                    `json:"group,omitempty" bson:"group,omitempty"`
	Order          int                       `json:"order" bson:"order"`
	Required       bool                      `json:"required" bson:"required"`
	Multilingual   bool                      `json:"multilingual" bson:"multilingual"`
	SyncAsTaxonomy bool                      `json:"sync_as_taxonomy" bson:"sync_as_taxonomy"`
	Options        []FieldOption             `json:"options,omitempty" bson:"options,omitempty"`
	CreatedAt      time.Time                 `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at" bson:"updated_at"`
}

// FieldConfigDoc is the wire descriptor pushed to a remote site before
// content so it can (re)register its dynamic fields.
type FieldConfigDoc struct {
	FieldKey       string        `json:"field_key"`
	FieldType      string        `json:"field_type"`
	Label          string        `json:"label"`
	Group          string        `json:"group,omitempty"`
	IsRequired     bool          `json:"is_required"`
	IsMultilingual bool          `json:"is_multilingual"`
	Options        []FieldOption `json:"options,omitempty"`
}
