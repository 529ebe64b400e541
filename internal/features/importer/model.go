package importer

import "time"

// ImportedPost is a row in the importer's posts table. ExternalID is the
// identity pushed by the master; LegacyExternalID survives from an older
// sync generation and still participates in lookups so historical rows keep
// matching.
type ImportedPost struct {
	ID               int64     `json:"id"`
	ExternalID       string    `json:"external_id"`
	LegacyExternalID string    `json:"legacy_external_id,omitempty"`
	Kind             string    `json:"kind"`
	Slug             string    `json:"slug"`
	Deleted          bool      `json:"deleted"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RegisteredField is a dynamic field definition the master announced via a
// config push. Content pushes for unknown keys are still stored; the
// registry only drives rendering.
type RegisteredField struct {
	FieldKey       string `json:"field_key"`
	FieldType      string `json:"field_type"`
	Label          string `json:"label"`
	Group          string `json:"group,omitempty"`
	IsMultilingual bool   `json:"is_multilingual"`
}

// Taxonomy names used for brand and model term assignments.
const (
	TaxonomyBrand = "brand"
	TaxonomyModel = "model"
)
