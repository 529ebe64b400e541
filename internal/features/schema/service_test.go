package schema

import (
	"context"
	"errors"
	"testing"

	common_models "go-yacht-cms/internal/common/models"
)

type fakeFieldRepo struct {
	FieldSchemaRepository
	existing map[string]*FieldSchema
	created  []*FieldSchema
	updates  map[string]interface{}
}

func (f *fakeFieldRepo) FindByKey(ctx context.Context, kind common_models.ContentKind, key string) (*FieldSchema, error) {
	if field, ok := f.existing[key]; ok {
		return field, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeFieldRepo) Create(ctx context.Context, field *FieldSchema) error {
	f.created = append(f.created, field)
	return nil
}

func (f *fakeFieldRepo) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	f.updates = updates
	return nil
}

func (f *fakeFieldRepo) ListByKind(ctx context.Context, kind common_models.ContentKind) ([]FieldSchema, error) {
	var out []FieldSchema
	for _, field := range f.existing {
		out = append(out, *field)
	}
	return out, nil
}

func TestCreateFieldValidation(t *testing.T) {
	tests := []struct {
		name    string
		field   FieldSchema
		wantErr bool
	}{
		{
			name:  "valid text field",
			field: FieldSchema{EntityKind: common_models.ContentKindYacht, Key: "length", Label: "Length", Type: FieldTypeNumber},
		},
		{
			name:    "missing key",
			field:   FieldSchema{EntityKind: common_models.ContentKindYacht, Label: "Length", Type: FieldTypeNumber},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			field:   FieldSchema{EntityKind: "boat", Key: "length", Label: "Length", Type: FieldTypeNumber},
			wantErr: true,
		},
		{
			name:    "unknown type",
			field:   FieldSchema{EntityKind: common_models.ContentKindYacht, Key: "length", Label: "Length", Type: "slider"},
			wantErr: true,
		},
		{
			name:    "taxonomy on text field",
			field:   FieldSchema{EntityKind: common_models.ContentKindYacht, Key: "notes", Label: "Notes", Type: FieldTypeText, SyncAsTaxonomy: true},
			wantErr: true,
		},
		{
			name:  "taxonomy on select field",
			field: FieldSchema{EntityKind: common_models.ContentKindYacht, Key: "fuel", Label: "Fuel", Type: FieldTypeSelect, SyncAsTaxonomy: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFieldSchemaService(&fakeFieldRepo{})
			err := svc.CreateField(context.Background(), &tt.field)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateField() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateFieldRejectsDuplicateKey(t *testing.T) {
	repo := &fakeFieldRepo{existing: map[string]*FieldSchema{
		"length": {Key: "length"},
	}}
	svc := NewFieldSchemaService(repo)

	err := svc.CreateField(context.Background(), &FieldSchema{
		EntityKind: common_models.ContentKindYacht, Key: "length", Label: "Length", Type: FieldTypeNumber,
	})
	if err == nil {
		t.Error("expected duplicate key error")
	}
}

func TestUpdateFieldStripsImmutableKeys(t *testing.T) {
	repo := &fakeFieldRepo{}
	svc := NewFieldSchemaService(repo)

	err := svc.UpdateField(context.Background(), "abc", map[string]interface{}{
		"key":         "renamed",
		"entity_kind": "news",
		"label":       "New Label",
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, ok := repo.updates["key"]; ok {
		t.Error("key must not be updatable")
	}
	if _, ok := repo.updates["entity_kind"]; ok {
		t.Error("entity_kind must not be updatable")
	}
	if repo.updates["label"] != "New Label" {
		t.Errorf("label update lost: %v", repo.updates)
	}
}

func TestBuildFieldConfig(t *testing.T) {
	repo := &fakeFieldRepo{existing: map[string]*FieldSchema{
		"fuel": {
			Key: "fuel", Label: "Fuel", Type: FieldTypeSelect, Multilingual: false, Required: true,
			Options: []FieldOption{{Value: "diesel", Label: "Diesel"}},
		},
	}}
	svc := NewFieldSchemaService(repo)

	docs, err := svc.BuildFieldConfig(context.Background(), common_models.ContentKindYacht)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("docs = %d, want 1", len(docs))
	}
	doc := docs[0]
	if doc.FieldKey != "fuel" || doc.FieldType != "select" || !doc.IsRequired {
		t.Errorf("unexpected config doc: %+v", doc)
	}
	if len(doc.Options) != 1 || doc.Options[0].Value != "diesel" {
		t.Errorf("options not carried: %+v", doc.Options)
	}
}
