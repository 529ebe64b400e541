package content

import (
	"context"
	"errors"
	"fmt"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/schema"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ContentService interface {
	CreateItem(ctx context.Context, item *ContentItem) error
	GetItem(ctx context.Context, kind common_models.ContentKind, id string) (*ContentItem, error)
	ListItems(ctx context.Context, kind common_models.ContentKind, state string, page, limit int64) ([]ContentItem, int64, error)
	UpdateItem(ctx context.Context, item *ContentItem) error
	DeleteItem(ctx context.Context, kind common_models.ContentKind, id string) error
}

type ContentServiceImpl struct {
	Repo        ContentRepository
	SchemaRepo  schema.FieldSchemaRepository
	SyncTrigger SyncTrigger
	Logger      *zap.Logger
}

func NewContentService(repo ContentRepository, schemaRepo schema.FieldSchemaRepository, trigger SyncTrigger, logger *zap.Logger) ContentService {
	return &ContentServiceImpl{
		Repo:        repo,
		SchemaRepo:  schemaRepo,
		SyncTrigger: trigger,
		Logger:      logger,
	}
}

func (s *ContentServiceImpl) CreateItem(ctx context.Context, item *ContentItem) error {
	if err := s.validate(ctx, item); err != nil {
		return err
	}

	item.ID = primitive.NewObjectID()
	if err := s.Repo.Create(ctx, item); err != nil {
		return err
	}

	s.fireMutation(ctx, item.Kind, item.ID.Hex())
	return nil
}

func (s *ContentServiceImpl) GetItem(ctx context.Context, kind common_models.ContentKind, id string) (*ContentItem, error) {
	return s.Repo.Get(ctx, kind, id)
}

func (s *ContentServiceImpl) ListItems(ctx context.Context, kind common_models.ContentKind, state string, page, limit int64) ([]ContentItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	filter := bson.M{}
	if state != "" {
		filter["state"] = state
	}

	items, err := s.Repo.List(ctx, kind, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.Count(ctx, kind, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ContentServiceImpl) UpdateItem(ctx context.Context, item *ContentItem) error {
	if item.ID.IsZero() {
		return errors.New("item id is required")
	}
	if err := s.validate(ctx, item); err != nil {
		return err
	}

	if err := s.Repo.Update(ctx, item); err != nil {
		return err
	}

	s.fireMutation(ctx, item.Kind, item.ID.Hex())
	return nil
}

// DeleteItem soft-deletes: the row stays visible to the sync subsystem so
// the delete propagates to every remote site on the next run.
func (s *ContentServiceImpl) DeleteItem(ctx context.Context, kind common_models.ContentKind, id string) error {
	if err := s.Repo.MarkDeleted(ctx, kind, id); err != nil {
		return err
	}

	s.fireMutation(ctx, kind, id)
	return nil
}

func (s *ContentServiceImpl) validate(ctx context.Context, item *ContentItem) error {
	if !item.Kind.Valid() {
		return fmt.Errorf("unknown content kind: %s", item.Kind)
	}
	if item.State != common_models.ContentStateDraft && item.State != common_models.ContentStatePublished {
		return fmt.Errorf("unknown content state: %s", item.State)
	}
	if len(item.Title) == 0 {
		return errors.New("title is required in at least one language")
	}

	// Unknown custom field keys are rejected at save; malformed values are
	// tolerated here and coerced at payload build time.
	for key := range item.CustomFields {
		if _, err := s.SchemaRepo.FindByKey(ctx, item.Kind, key); err != nil {
			return fmt.Errorf("custom field %q is not declared for kind %s", key, item.Kind)
		}
	}
	return nil
}

// fireMutation publishes the mutation event after a successful commit.
// Dirty marking failures are logged, never surfaced to the editor.
func (s *ContentServiceImpl) fireMutation(ctx context.Context, kind common_models.ContentKind, id string) {
	if s.SyncTrigger == nil {
		return
	}
	if err := s.SyncTrigger.OnContentMutated(ctx, kind, id); err != nil {
		s.Logger.Error("failed to mark content pending for sync",
			zap.String("kind", string(kind)),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}
