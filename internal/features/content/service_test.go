package content

import (
	"context"
	"errors"
	"testing"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/schema"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeContentRepo struct {
	ContentRepository
	created *ContentItem
	deleted string
}

func (f *fakeContentRepo) Create(ctx context.Context, item *ContentItem) error {
	f.created = item
	return nil
}

func (f *fakeContentRepo) Update(ctx context.Context, item *ContentItem) error { return nil }

func (f *fakeContentRepo) MarkDeleted(ctx context.Context, kind common_models.ContentKind, id string) error {
	f.deleted = id
	return nil
}

type fakeSchemaRepo struct {
	schema.FieldSchemaRepository
	declared map[string]bool
}

func (f *fakeSchemaRepo) FindByKey(ctx context.Context, kind common_models.ContentKind, key string) (*schema.FieldSchema, error) {
	if f.declared[key] {
		return &schema.FieldSchema{Key: key}, nil
	}
	return nil, errors.New("not found")
}

type fakeTrigger struct {
	calls []string
	err   error
}

func (f *fakeTrigger) OnContentMutated(ctx context.Context, kind common_models.ContentKind, id string) error {
	f.calls = append(f.calls, string(kind)+":"+id)
	return f.err
}

func validItem() *ContentItem {
	return &ContentItem{
		Kind:  common_models.ContentKindYacht,
		State: common_models.ContentStateDraft,
		Title: map[string]string{"en": "Blue Horizon"},
	}
}

func TestCreateItemRejectsUndeclaredCustomField(t *testing.T) {
	svc := NewContentService(
		&fakeContentRepo{},
		&fakeSchemaRepo{declared: map[string]bool{"length": true}},
		&fakeTrigger{},
		zap.NewNop(),
	)

	item := validItem()
	item.CustomFields = map[string]interface{}{"length": 14, "beam": 4.5}

	if err := svc.CreateItem(context.Background(), item); err == nil {
		t.Error("expected error for undeclared custom field")
	}

	item.CustomFields = map[string]interface{}{"length": 14}
	if err := svc.CreateItem(context.Background(), item); err != nil {
		t.Errorf("declared field rejected: %v", err)
	}
}

func TestCreateItemValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContentItem)
	}{
		{"unknown kind", func(i *ContentItem) { i.Kind = "boat" }},
		{"unknown state", func(i *ContentItem) { i.State = "archived" }},
		{"empty title", func(i *ContentItem) { i.Title = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewContentService(&fakeContentRepo{}, &fakeSchemaRepo{}, &fakeTrigger{}, zap.NewNop())
			item := validItem()
			tt.mutate(item)
			if err := svc.CreateItem(context.Background(), item); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestMutationsFireSyncTrigger(t *testing.T) {
	trigger := &fakeTrigger{}
	repo := &fakeContentRepo{}
	svc := NewContentService(repo, &fakeSchemaRepo{}, trigger, zap.NewNop())

	item := validItem()
	if err := svc.CreateItem(context.Background(), item); err != nil {
		t.Fatal(err)
	}
	if len(trigger.calls) != 1 {
		t.Fatalf("trigger calls after create = %d, want 1", len(trigger.calls))
	}

	if err := svc.UpdateItem(context.Background(), item); err != nil {
		t.Fatal(err)
	}
	if len(trigger.calls) != 2 {
		t.Fatalf("trigger calls after update = %d, want 2", len(trigger.calls))
	}

	id := primitive.NewObjectID().Hex()
	if err := svc.DeleteItem(context.Background(), common_models.ContentKindYacht, id); err != nil {
		t.Fatal(err)
	}
	if len(trigger.calls) != 3 {
		t.Fatalf("trigger calls after delete = %d, want 3", len(trigger.calls))
	}
	if repo.deleted != id {
		t.Errorf("soft delete id = %q, want %q", repo.deleted, id)
	}
}

func TestTriggerFailureNeverSurfaces(t *testing.T) {
	trigger := &fakeTrigger{err: errors.New("mongo down")}
	svc := NewContentService(&fakeContentRepo{}, &fakeSchemaRepo{}, trigger, zap.NewNop())

	if err := svc.CreateItem(context.Background(), validItem()); err != nil {
		t.Errorf("trigger failure leaked to the editor: %v", err)
	}
}
