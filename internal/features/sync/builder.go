package sync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"go-yacht-cms/internal/features/brand"
	"go-yacht-cms/internal/features/content"
	"go-yacht-cms/internal/features/language"
	"go-yacht-cms/internal/features/media"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/translator"
	"go-yacht-cms/pkg/utils"

	"go.uber.org/zap"
)

// RepeaterSlots is the fixed number of flattened repeater keys. Rows beyond
// it are dropped; missing rows clear their slot to "" so stale remote values
// cannot survive a shrink.
const RepeaterSlots = 3

// PayloadBuilder shapes a content item into the site-ready ItemDoc.
// Transformation never fails: malformed values degrade to empty strings.
type PayloadBuilder interface {
	Build(ctx context.Context, item *content.ContentItem, fields []schema.FieldSchema, langs []language.Language) *ItemDoc
}

type PayloadBuilderImpl struct {
	MediaService media.MediaService
	BrandService brand.BrandService
	Translator   translator.Translator
	Logger       *zap.Logger
}

func NewPayloadBuilder(mediaService media.MediaService, brandService brand.BrandService, tr translator.Translator, logger *zap.Logger) PayloadBuilder {
	return &PayloadBuilderImpl{
		MediaService: mediaService,
		BrandService: brandService,
		Translator:   tr,
		Logger:       logger,
	}
}

// ExternalID derives the stable remote identity. It must stay a pure
// function of kind and id: remote upserts match on it.
func ExternalID(kind, id string) string {
	return fmt.Sprintf("%s-%s", kind, id)
}

// HashItemDoc fingerprints a payload. Recorded on successful push only.
func HashItemDoc(doc *ItemDoc) string {
	raw, err := json.Marshal(doc)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

func (b *PayloadBuilderImpl) Build(ctx context.Context, item *content.ContentItem, fields []schema.FieldSchema, langs []language.Language) *ItemDoc {
	itemID := item.ID.Hex()
	defaultLang := defaultLangCode(langs)

	doc := &ItemDoc{
		ExternalID:   ExternalID(string(item.Kind), itemID),
		Kind:         string(item.Kind),
		Slug:         utils.Slugify(item.Title[defaultLang]),
		Deleted:      item.Deleted,
		Translations: make(map[string]TranslationDoc, len(langs)),
		Media:        map[string]interface{}{},
	}

	if !item.BrandID.IsZero() {
		doc.Brand = b.BrandService.BrandRef(ctx, item.BrandID.Hex())
	}
	if !item.ModelID.IsZero() {
		doc.Model = b.BrandService.ModelRef(ctx, item.ModelID.Hex())
	}

	// Media resolves live from the store, once per field, never from any
	// cached scalar in the custom field bag.
	mediaValues := map[string]interface{}{}
	for _, f := range fields {
		if !f.Type.IsMedia() {
			continue
		}
		switch f.Type {
		case schema.FieldTypeGallery:
			urls, err := b.MediaService.GetMediaURLs(ctx, item.Kind, itemID, f.Key)
			if err != nil {
				b.logDegraded(item, f.Key, err)
				urls = []string{}
			}
			mediaValues[f.Key] = urls
			doc.Media[f.Key] = urls
		case schema.FieldTypeImage:
			url, err := b.MediaService.GetFirstMediaURL(ctx, item.Kind, itemID, f.Key)
			if err != nil {
				b.logDegraded(item, f.Key, err)
				url = ""
			}
			mediaValues[f.Key] = url
			doc.Media[f.Key] = url
		case schema.FieldTypeFile:
			url, err := b.MediaService.GetFirstMediaURL(ctx, item.Kind, itemID, f.Key)
			if err != nil {
				b.logDegraded(item, f.Key, err)
				url = ""
			}
			mediaValues[f.Key] = url
		}
	}

	for _, lang := range langs {
		doc.Translations[lang.Code] = TranslationDoc{
			Title:        b.localizedText(ctx, item.Title, lang.Code, defaultLang),
			Description:  b.localizedText(ctx, item.Description, lang.Code, defaultLang),
			Price:        item.Price,
			CustomFields: b.buildCustomFields(item, fields, mediaValues, lang.Code, defaultLang),
		}
	}

	return doc
}

func (b *PayloadBuilderImpl) buildCustomFields(item *content.ContentItem, fields []schema.FieldSchema, mediaValues map[string]interface{}, langCode, defaultLang string) map[string]interface{} {
	cf := map[string]interface{}{}

	for _, f := range fields {
		if f.Type.IsMedia() {
			cf[f.Key] = mediaValues[f.Key]
			continue
		}

		raw := localizeValue(item.CustomFields[f.Key], f.Multilingual, langCode)

		switch {
		case f.Type == schema.FieldTypeRepeater:
			flattenRepeater(cf, f.Key, raw)
		case f.SyncAsTaxonomy:
			cf[f.Key] = taxonomyLabel(f, raw, langCode, defaultLang)
		default:
			cf[f.Key] = coerceString(raw)
		}
	}

	return cf
}

// localizedText returns the item's text for a language, empty when absent.
// With a translator configured, a missing row is filled from the default
// language; a failed translation is logged and skipped.
func (b *PayloadBuilderImpl) localizedText(ctx context.Context, values map[string]string, langCode, defaultLang string) string {
	if v, ok := values[langCode]; ok && v != "" {
		return v
	}
	if langCode == defaultLang {
		return ""
	}

	source := values[defaultLang]
	if source == "" || b.Translator == nil {
		return ""
	}

	translated, err := b.Translator.Translate(ctx, source, langCode, defaultLang)
	if err != nil {
		b.Logger.Warn("translation failed, leaving text empty",
			zap.String("lang", langCode),
			zap.Error(err),
		)
		return ""
	}
	return translated
}

func (b *PayloadBuilderImpl) logDegraded(item *content.ContentItem, key string, err error) {
	b.Logger.Warn("media lookup failed, degrading field to empty",
		zap.String("kind", string(item.Kind)),
		zap.String("id", item.ID.Hex()),
		zap.String("field", key),
		zap.Error(err),
	)
}

// localizeValue narrows a multilingual value (a per-language map) to one
// language. Scalars pass through unchanged.
func localizeValue(raw interface{}, multilingual bool, langCode string) interface{} {
	if !multilingual {
		return raw
	}
	byLang, ok := raw.(map[string]interface{})
	if !ok {
		return raw
	}
	return byLang[langCode]
}

// flattenRepeater writes exactly RepeaterSlots numbered keys. Each present
// row contributes its "url" property or first scalar value; absent rows
// clear the slot explicitly.
func flattenRepeater(cf map[string]interface{}, key string, raw interface{}) {
	rows, _ := raw.([]interface{})

	for i := 0; i < RepeaterSlots; i++ {
		slot := fmt.Sprintf("%s_%d", key, i+1)
		if i < len(rows) {
			cf[slot] = repeaterRowValue(rows[i])
		} else {
			cf[slot] = ""
		}
	}
}

func repeaterRowValue(row interface{}) string {
	switch v := row.(type) {
	case map[string]interface{}:
		if url, ok := v["url"].(string); ok {
			return url
		}
		// No url property: take the first value by sorted key for a
		// deterministic pick
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := coerceString(v[k]); s != "" {
				return s
			}
		}
		return ""
	default:
		return coerceString(row)
	}
}

// taxonomyLabel resolves an option value to its localized label. The default
// language gets the canonical label; other languages look up the per-language
// option metadata and fall back to canonical when the translation is missing.
func taxonomyLabel(f schema.FieldSchema, raw interface{}, langCode, defaultLang string) interface{} {
	switch v := raw.(type) {
	case []interface{}:
		labels := make([]string, 0, len(v))
		for _, one := range v {
			labels = append(labels, optionLabel(f, coerceString(one), langCode, defaultLang))
		}
		return labels
	default:
		value := coerceString(raw)
		if value == "" {
			return ""
		}
		return optionLabel(f, value, langCode, defaultLang)
	}
}

func optionLabel(f schema.FieldSchema, value, langCode, defaultLang string) string {
	for _, opt := range f.Options {
		if opt.Value != value {
			continue
		}
		if langCode != defaultLang {
			if localized, ok := opt.Labels[langCode]; ok && localized != "" {
				return localized
			}
		}
		return opt.Label
	}
	// Unknown option: keep the stored value so the remote term is at least
	// recognizable
	return value
}

// coerceString flattens any scalar to a string; malformed values become ""
// instead of erroring.
func coerceString(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return trimFloat(v)
	case float32:
		return trimFloat(float64(v))
	case int:
		return fmt.Sprintf("%d", v)
	case int32:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	default:
		return ""
	}
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func defaultLangCode(langs []language.Language) string {
	for _, l := range langs {
		if l.IsDefault {
			return l.Code
		}
	}
	if len(langs) > 0 {
		return langs[0].Code
	}
	return ""
}
