package schema

import (
	"context"
	"errors"
	"fmt"

	common_models "go-yacht-cms/internal/common/models"
)

type FieldSchemaService interface {
	CreateField(ctx context.Context, field *FieldSchema) error
	GetField(ctx context.Context, id string) (*FieldSchema, error)
	ListFields(ctx context.Context, kind common_models.ContentKind) ([]FieldSchema, error)
	UpdateField(ctx context.Context, id string, updates map[string]interface{}) error
	DeleteField(ctx context.Context, id string) error
	BuildFieldConfig(ctx context.Context, kind common_models.ContentKind) ([]FieldConfigDoc, error)
}

type FieldSchemaServiceImpl struct {
	Repo FieldSchemaRepository
}

func NewFieldSchemaService(repo FieldSchemaRepository) FieldSchemaService {
	return &FieldSchemaServiceImpl{Repo: repo}
}

func (s *FieldSchemaServiceImpl) CreateField(ctx context.Context, field *FieldSchema) error {
	if field.Key == "" || field.Label == "" {
		return errors.New("field key and label are required")
	}
	if !field.EntityKind.Valid() {
		return fmt.Errorf("unknown entity kind: %s", field.EntityKind)
	}
	if !field.Type.Valid() {
		return fmt.Errorf("unknown field type: %s", field.Type)
	}
	if field.SyncAsTaxonomy && field.Type != FieldTypeSelect && field.Type != FieldTypeCheckbox {
		return errors.New("only select and checkbox fields can sync as taxonomy")
	}

	if _, err := s.Repo.FindByKey(ctx, field.EntityKind, field.Key); err == nil {
		return errors.New("field with this key already exists for the entity kind")
	}

	return s.Repo.Create(ctx, field)
}

func (s *FieldSchemaServiceImpl) GetField(ctx context.Context, id string) (*FieldSchema, error) {
	return s.Repo.Get(ctx, id)
}

func (s *FieldSchemaServiceImpl) ListFields(ctx context.Context, kind common_models.ContentKind) ([]FieldSchema, error) {
	return s.Repo.ListByKind(ctx, kind)
}

func (s *FieldSchemaServiceImpl) UpdateField(ctx context.Context, id string, updates map[string]interface{}) error {
	// Key and kind are immutable once records reference them
	delete(updates, "key")
	delete(updates, "entity_kind")
	return s.Repo.Update(ctx, id, updates)
}

func (s *FieldSchemaServiceImpl) DeleteField(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// BuildFieldConfig shapes the registry into the wire descriptors a remote
// site needs to register its dynamic fields. Pushed before every content
// batch.
func (s *FieldSchemaServiceImpl) BuildFieldConfig(ctx context.Context, kind common_models.ContentKind) ([]FieldConfigDoc, error) {
	fields, err := s.Repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, err
	}

	docs := make([]FieldConfigDoc, 0, len(fields))
	for _, f := range fields {
		docs = append(docs, FieldConfigDoc{
			FieldKey:       f.Key,
			FieldType:      string(f.Type),
			Label:          f.Label,
			Group:          f.Group,
			IsRequired:     f.Required,
			IsMultilingual: f.Multilingual,
			Options:        f.Options,
		})
	}
	return docs, nil
}
