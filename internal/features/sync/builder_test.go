package sync

import (
	"context"
	"testing"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/features/brand"
	"go-yacht-cms/internal/features/content"
	"go-yacht-cms/internal/features/language"
	"go-yacht-cms/internal/features/media"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/translator"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeMediaService struct {
	media.MediaService
	urls map[string][]string
}

func (f *fakeMediaService) GetMediaURLs(ctx context.Context, kind common_models.ContentKind, itemID, collection string) ([]string, error) {
	return f.urls[collection], nil
}

func (f *fakeMediaService) GetFirstMediaURL(ctx context.Context, kind common_models.ContentKind, itemID, collection string) (string, error) {
	if urls := f.urls[collection]; len(urls) > 0 {
		return urls[0], nil
	}
	return "", nil
}

type fakeBrandService struct {
	brand.BrandService
	brandRef *brand.Ref
	modelRef *brand.Ref
}

func (f *fakeBrandService) BrandRef(ctx context.Context, id string) *brand.Ref { return f.brandRef }
func (f *fakeBrandService) ModelRef(ctx context.Context, id string) *brand.Ref { return f.modelRef }

func newTestBuilder(urls map[string][]string) PayloadBuilder {
	return NewPayloadBuilder(
		&fakeMediaService{urls: urls},
		&fakeBrandService{},
		translator.Noop{},
		zap.NewNop(),
	)
}

func testLanguages() []language.Language {
	return []language.Language{
		{Code: "en", Name: "English", IsDefault: true},
		{Code: "sl", Name: "Slovenščina"},
	}
}

func TestBuildExternalIDDeterministic(t *testing.T) {
	id := primitive.NewObjectID()
	item := &content.ContentItem{
		ID:    id,
		Kind:  common_models.ContentKindYacht,
		Title: map[string]string{"en": "Blue Horizon"},
	}

	builder := newTestBuilder(nil)
	first := builder.Build(context.Background(), item, nil, testLanguages())
	second := builder.Build(context.Background(), item, nil, testLanguages())

	want := "yacht-" + id.Hex()
	if first.ExternalID != want {
		t.Errorf("external id = %q, want %q", first.ExternalID, want)
	}
	if first.ExternalID != second.ExternalID {
		t.Errorf("external id not stable across builds: %q vs %q", first.ExternalID, second.ExternalID)
	}
	if HashItemDoc(first) != HashItemDoc(second) {
		t.Error("hash differs for identical input")
	}
	if first.Slug != "blue-horizon" {
		t.Errorf("slug = %q, want %q", first.Slug, "blue-horizon")
	}
}

func TestBuildHashChangesWithContent(t *testing.T) {
	id := primitive.NewObjectID()
	builder := newTestBuilder(nil)

	a := builder.Build(context.Background(), &content.ContentItem{
		ID: id, Kind: common_models.ContentKindYacht,
		Title: map[string]string{"en": "Blue Horizon"},
	}, nil, testLanguages())
	b := builder.Build(context.Background(), &content.ContentItem{
		ID: id, Kind: common_models.ContentKindYacht,
		Title: map[string]string{"en": "Blue Horizon II"},
	}, nil, testLanguages())

	if HashItemDoc(a) == HashItemDoc(b) {
		t.Error("hash did not change after title edit")
	}
}

func TestBuildRepeaterFlattening(t *testing.T) {
	fields := []schema.FieldSchema{
		{EntityKind: common_models.ContentKindYacht, Key: "video_url", Type: schema.FieldTypeRepeater},
	}

	tests := []struct {
		name string
		rows []interface{}
		want map[string]string
	}{
		{
			name: "five rows cap at three",
			rows: []interface{}{
				map[string]interface{}{"url": "https://v/1"},
				map[string]interface{}{"url": "https://v/2"},
				map[string]interface{}{"url": "https://v/3"},
				map[string]interface{}{"url": "https://v/4"},
				map[string]interface{}{"url": "https://v/5"},
			},
			want: map[string]string{
				"video_url_1": "https://v/1",
				"video_url_2": "https://v/2",
				"video_url_3": "https://v/3",
			},
		},
		{
			name: "single row clears trailing slots",
			rows: []interface{}{
				map[string]interface{}{"url": "https://v/1"},
			},
			want: map[string]string{
				"video_url_1": "https://v/1",
				"video_url_2": "",
				"video_url_3": "",
			},
		},
		{
			name: "nil value clears every slot",
			rows: nil,
			want: map[string]string{
				"video_url_1": "",
				"video_url_2": "",
				"video_url_3": "",
			},
		},
		{
			name: "scalar rows pass through",
			rows: []interface{}{"https://v/a", "https://v/b"},
			want: map[string]string{
				"video_url_1": "https://v/a",
				"video_url_2": "https://v/b",
				"video_url_3": "",
			},
		},
	}

	builder := newTestBuilder(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &content.ContentItem{
				ID:    primitive.NewObjectID(),
				Kind:  common_models.ContentKindYacht,
				Title: map[string]string{"en": "Test"},
				CustomFields: map[string]interface{}{
					"video_url": tt.rows,
				},
			}
			if tt.rows == nil {
				item.CustomFields = nil
			}

			doc := builder.Build(context.Background(), item, fields, testLanguages())
			cf := doc.Translations["en"].CustomFields

			for key, want := range tt.want {
				got, ok := cf[key]
				if !ok {
					t.Errorf("key %q missing from custom fields", key)
					continue
				}
				if got != want {
					t.Errorf("%s = %v, want %q", key, got, want)
				}
			}
			if _, ok := cf["video_url"]; ok {
				t.Error("raw repeater key should not appear in payload")
			}
		})
	}
}

func TestBuildTaxonomyLabelLocalization(t *testing.T) {
	fields := []schema.FieldSchema{
		{
			EntityKind: common_models.ContentKindYacht, Key: "fuel_type",
			Type: schema.FieldTypeSelect, SyncAsTaxonomy: true,
			Options: []schema.FieldOption{
				{Value: "diesel", Label: "Diesel", Labels: map[string]string{"sl": "Dizel"}},
				{Value: "petrol", Label: "Petrol"},
			},
		},
	}
	builder := newTestBuilder(nil)

	item := &content.ContentItem{
		ID:    primitive.NewObjectID(),
		Kind:  common_models.ContentKindYacht,
		Title: map[string]string{"en": "Test"},
		CustomFields: map[string]interface{}{
			"fuel_type": "diesel",
		},
	}

	doc := builder.Build(context.Background(), item, fields, testLanguages())

	if got := doc.Translations["en"].CustomFields["fuel_type"]; got != "Diesel" {
		t.Errorf("default language label = %v, want Diesel", got)
	}
	if got := doc.Translations["sl"].CustomFields["fuel_type"]; got != "Dizel" {
		t.Errorf("localized label = %v, want Dizel", got)
	}

	// Missing localized label falls back to the canonical one.
	item.CustomFields["fuel_type"] = "petrol"
	doc = builder.Build(context.Background(), item, fields, testLanguages())
	if got := doc.Translations["sl"].CustomFields["fuel_type"]; got != "Petrol" {
		t.Errorf("fallback label = %v, want Petrol", got)
	}
}

func TestBuildMissingLanguageAndMalformedValues(t *testing.T) {
	fields := []schema.FieldSchema{
		{EntityKind: common_models.ContentKindYacht, Key: "notes", Type: schema.FieldTypeText, Multilingual: true},
		{EntityKind: common_models.ContentKindYacht, Key: "length", Type: schema.FieldTypeNumber},
	}
	builder := newTestBuilder(nil)

	item := &content.ContentItem{
		ID:    primitive.NewObjectID(),
		Kind:  common_models.ContentKindYacht,
		Title: map[string]string{"en": "Test"},
		CustomFields: map[string]interface{}{
			"notes":  map[string]interface{}{"en": "fresh paint"},
			"length": map[string]interface{}{"bogus": true},
		},
	}

	doc := builder.Build(context.Background(), item, fields, testLanguages())

	if got := doc.Translations["sl"].Title; got != "" {
		t.Errorf("missing title = %q, want empty", got)
	}
	if got := doc.Translations["sl"].CustomFields["notes"]; got != "" {
		t.Errorf("missing language value = %v, want empty", got)
	}
	if got := doc.Translations["en"].CustomFields["length"]; got != "" {
		t.Errorf("malformed value = %v, want empty", got)
	}
}

func TestBuildMediaResolvesLive(t *testing.T) {
	fields := []schema.FieldSchema{
		{EntityKind: common_models.ContentKindYacht, Key: "main_image", Type: schema.FieldTypeImage},
		{EntityKind: common_models.ContentKindYacht, Key: "gallery", Type: schema.FieldTypeGallery},
	}
	urls := map[string][]string{
		"main_image": {"https://cdn/main.jpg"},
		"gallery":    {"https://cdn/a.jpg", "https://cdn/b.jpg"},
	}
	builder := newTestBuilder(urls)

	item := &content.ContentItem{
		ID:    primitive.NewObjectID(),
		Kind:  common_models.ContentKindYacht,
		Title: map[string]string{"en": "Test"},
		// A stale scalar must never leak into the payload.
		CustomFields: map[string]interface{}{
			"main_image": "https://cdn/stale.jpg",
		},
	}

	doc := builder.Build(context.Background(), item, fields, testLanguages())

	if got := doc.Media["main_image"]; got != "https://cdn/main.jpg" {
		t.Errorf("main_image = %v, want live URL", got)
	}
	gallery, ok := doc.Media["gallery"].([]string)
	if !ok || len(gallery) != 2 || gallery[0] != "https://cdn/a.jpg" {
		t.Errorf("gallery = %v, want ordered live URLs", doc.Media["gallery"])
	}
	if got := doc.Translations["en"].CustomFields["main_image"]; got != "https://cdn/main.jpg" {
		t.Errorf("custom field main_image = %v, want live URL", got)
	}
}
