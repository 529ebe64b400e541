package importer

import (
	"context"
	"fmt"
	"sort"

	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/sync"
	"go-yacht-cms/pkg/utils"

	"go.uber.org/zap"
)

// ImporterService applies pushes from a master catalog. Every operation is
// idempotent: re-pushing an unchanged batch leaves the store byte-identical.
type ImporterService interface {
	ApplyConfig(ctx context.Context, fields []schema.FieldConfigDoc) error
	ImportItems(ctx context.Context, items []sync.ItemDoc) (*sync.SyncResponse, error)
	Enabled() bool
}

type ImporterServiceImpl struct {
	Store  ImportStore
	Logger *zap.Logger
}

func NewImporterService(store ImportStore, logger *zap.Logger) ImporterService {
	return &ImporterServiceImpl{Store: store, Logger: logger}
}

func (s *ImporterServiceImpl) Enabled() bool {
	return s.Store.Enabled()
}

func (s *ImporterServiceImpl) ApplyConfig(ctx context.Context, fields []schema.FieldConfigDoc) error {
	for _, f := range fields {
		err := s.Store.RegisterField(ctx, RegisteredField{
			FieldKey:       f.FieldKey,
			FieldType:      f.FieldType,
			Label:          f.Label,
			Group:          f.Group,
			IsMultilingual: f.IsMultilingual,
		})
		if err != nil {
			return fmt.Errorf("failed to register field %s: %w", f.FieldKey, err)
		}
	}
	s.Logger.Info("field configuration applied", zap.Int("fields", len(fields)))
	return nil
}

func (s *ImporterServiceImpl) ImportItems(ctx context.Context, items []sync.ItemDoc) (*sync.SyncResponse, error) {
	resp := &sync.SyncResponse{Results: make([]sync.ItemResult, 0, len(items))}

	for i := range items {
		item := &items[i]
		if err := s.importOne(ctx, item); err != nil {
			s.Logger.Warn("item import failed",
				zap.String("external_id", item.ExternalID),
				zap.Error(err),
			)
			resp.Failed++
			resp.Results = append(resp.Results, sync.ItemResult{
				ExternalID: item.ExternalID,
				Success:    false,
				Message:    err.Error(),
			})
			continue
		}
		resp.Imported++
		resp.Results = append(resp.Results, sync.ItemResult{
			ExternalID: item.ExternalID,
			Success:    true,
		})
	}

	return resp, nil
}

func (s *ImporterServiceImpl) importOne(ctx context.Context, item *sync.ItemDoc) error {
	existing, err := s.Store.FindPost(ctx, item.ExternalID, item.Slug)
	if err != nil {
		return err
	}

	if item.Deleted {
		if existing == nil {
			// Never imported here; nothing to tombstone.
			return nil
		}
		return s.Store.MarkPostDeleted(ctx, existing.ID)
	}

	post := &ImportedPost{
		ExternalID: item.ExternalID,
		Kind:       item.Kind,
		Slug:       item.Slug,
	}

	var postID int64
	if existing != nil {
		post.ID = existing.ID
		if err := s.Store.UpdatePost(ctx, post); err != nil {
			return err
		}
		postID = existing.ID
	} else {
		postID, err = s.Store.UpsertPost(ctx, post)
		if err != nil {
			return err
		}
	}

	if err := s.applyTranslations(ctx, postID, item); err != nil {
		return err
	}
	if err := s.applyMedia(ctx, postID, item); err != nil {
		return err
	}
	if err := s.applyTerms(ctx, postID, item); err != nil {
		return err
	}
	return nil
}

// applyTranslations stores every translated field under a locale-prefixed
// meta key. Empty strings are written, not skipped: a cleared repeater slot
// must overwrite the stale remote value.
func (s *ImporterServiceImpl) applyTranslations(ctx context.Context, postID int64, item *sync.ItemDoc) error {
	for locale, tr := range item.Translations {
		if err := s.Store.SetMeta(ctx, postID, locale+"_title", tr.Title); err != nil {
			return err
		}
		if err := s.Store.SetMeta(ctx, postID, locale+"_description", tr.Description); err != nil {
			return err
		}
		if tr.Price > 0 {
			if err := s.Store.SetMeta(ctx, postID, locale+"_price", fmt.Sprintf("%g", tr.Price)); err != nil {
				return err
			}
		}

		keys := make([]string, 0, len(tr.CustomFields))
		for k := range tr.CustomFields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if err := s.Store.SetMeta(ctx, postID, locale+"_"+key, metaValue(tr.CustomFields[key])); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyMedia imports each media collection, deduplicating attachments by
// source URL and preserving the pushed order in the id list.
func (s *ImporterServiceImpl) applyMedia(ctx context.Context, postID int64, item *sync.ItemDoc) error {
	collections := make([]string, 0, len(item.Media))
	for name := range item.Media {
		collections = append(collections, name)
	}
	sort.Strings(collections)

	for _, name := range collections {
		urls := mediaURLs(item.Media[name])

		ids := ""
		for _, u := range urls {
			id, err := s.Store.FindOrCreateAttachment(ctx, u)
			if err != nil {
				return err
			}
			if ids != "" {
				ids += ","
			}
			ids += fmt.Sprintf("%d", id)
		}

		if err := s.Store.SetMeta(ctx, postID, "_media_"+name, ids); err != nil {
			return err
		}
	}
	return nil
}

// applyTerms resolves brand and model terms by exact name and reassigns them
// on every push, so a brand removed upstream disappears here too.
func (s *ImporterServiceImpl) applyTerms(ctx context.Context, postID int64, item *sync.ItemDoc) error {
	assign := func(taxonomy, name, slug string) error {
		if name == "" {
			return s.Store.ReplaceTermAssignments(ctx, postID, taxonomy, nil)
		}
		if slug == "" {
			slug = utils.Slugify(name)
		}
		termID, err := s.Store.FindOrCreateTerm(ctx, taxonomy, name, slug)
		if err != nil {
			return err
		}
		return s.Store.ReplaceTermAssignments(ctx, postID, taxonomy, []int64{termID})
	}

	brandName, brandSlug := "", ""
	if item.Brand != nil {
		brandName, brandSlug = item.Brand.Name, item.Brand.Slug
	}
	if err := assign(TaxonomyBrand, brandName, brandSlug); err != nil {
		return err
	}

	modelName, modelSlug := "", ""
	if item.Model != nil {
		modelName, modelSlug = item.Model.Name, item.Model.Slug
	}
	return assign(TaxonomyModel, modelName, modelSlug)
}

func metaValue(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		out := ""
		for i, one := range v {
			if i > 0 {
				out += ","
			}
			out += one
		}
		return out
	case []interface{}:
		out := ""
		for i, one := range v {
			if i > 0 {
				out += ","
			}
			out += fmt.Sprintf("%v", one)
		}
		return out
	case float64:
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func mediaURLs(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []interface{}:
		var out []string
		for _, one := range v {
			if s, ok := one.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
