package main

import (
	"context"

	common_models "go-yacht-cms/internal/common/models"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/database"
	"go-yacht-cms/internal/features/brand"
	"go-yacht-cms/internal/features/language"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Seed loads the baseline languages, field schemas and demo brands a fresh
// installation needs before the first sync run.
func Seed(
	lc fx.Lifecycle,
	languageService language.LanguageService,
	schemaService schema.FieldSchemaService,
	brandService brand.BrandService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Starting database seeding...")

				seedLanguages(ctx, languageService, logger)
				seedFields(ctx, schemaService, logger)
				seedBrands(ctx, brandService, logger)

				logger.Info("Seeding finished")
			}()
			return nil
		},
	})
}

func seedLanguages(ctx context.Context, svc language.LanguageService, logger *zap.Logger) {
	langs := []language.Language{
		{Code: "en", Name: "English", IsDefault: true, IsActive: true, Order: 1},
		{Code: "sl", Name: "Slovenščina", IsActive: true, Order: 2},
		{Code: "de", Name: "Deutsch", IsActive: true, Order: 3},
		{Code: "it", Name: "Italiano", IsActive: true, Order: 4},
	}

	for i := range langs {
		if err := svc.CreateLanguage(ctx, &langs[i]); err != nil {
			logger.Warn("language seed skipped", zap.String("code", langs[i].Code), zap.Error(err))
		}
	}
}

func seedFields(ctx context.Context, svc schema.FieldSchemaService, logger *zap.Logger) {
	fields := []schema.FieldSchema{
		{
			EntityKind: common_models.ContentKindYacht, Key: "description", Label: "Description",
			Type: schema.FieldTypeRichText, Group: "general", Order: 1, Multilingual: true,
		},
		{
			EntityKind: common_models.ContentKindYacht, Key: "length", Label: "Length (m)",
			Type: schema.FieldTypeNumber, Group: "specs", Order: 2,
		},
		{
			EntityKind: common_models.ContentKindYacht, Key: "cabins", Label: "Cabins",
			Type: schema.FieldTypeNumber, Group: "specs", Order: 3,
		},
		{
			EntityKind: common_models.ContentKindYacht, Key: "fuel_type", Label: "Fuel type",
			Type: schema.FieldTypeSelect, Group: "specs", Order: 4, SyncAsTaxonomy: true,
			Options: []schema.FieldOption{
				{Value: "diesel", Label: "Diesel", Labels: map[string]string{"sl": "Dizel", "de": "Diesel", "it": "Diesel"}},
				{Value: "petrol", Label: "Petrol", Labels: map[string]string{"sl": "Bencin", "de": "Benzin", "it": "Benzina"}},
				{Value: "electric", Label: "Electric", Labels: map[string]string{"sl": "Električni", "de": "Elektrisch", "it": "Elettrico"}},
			},
		},
		{
			EntityKind: common_models.ContentKindYacht, Key: "video_url", Label: "Videos",
			Type: schema.FieldTypeRepeater, Group: "media", Order: 5,
		},
		{
			EntityKind: common_models.ContentKindYacht, Key: "main_image", Label: "Main image",
			Type: schema.FieldTypeImage, Group: "media", Order: 6,
		},
		{
			EntityKind: common_models.ContentKindYacht, Key: "gallery", Label: "Gallery",
			Type: schema.FieldTypeGallery, Group: "media", Order: 7,
		},
		{
			EntityKind: common_models.ContentKindNews, Key: "excerpt", Label: "Excerpt",
			Type: schema.FieldTypeTextArea, Group: "general", Order: 1, Multilingual: true,
		},
		{
			EntityKind: common_models.ContentKindNews, Key: "body", Label: "Body",
			Type: schema.FieldTypeRichText, Group: "general", Order: 2, Multilingual: true,
		},
		{
			EntityKind: common_models.ContentKindNews, Key: "cover", Label: "Cover image",
			Type: schema.FieldTypeImage, Group: "media", Order: 3,
		},
	}

	for i := range fields {
		if err := svc.CreateField(ctx, &fields[i]); err != nil {
			logger.Warn("field seed skipped", zap.String("key", fields[i].Key), zap.Error(err))
		}
	}
}

func seedBrands(ctx context.Context, svc brand.BrandService, logger *zap.Logger) {
	brands := map[string][]string{
		"Beneteau":  {"Oceanis 46.1", "First 36"},
		"Jeanneau":  {"Sun Odyssey 410", "Merry Fisher 895"},
		"Bavaria":   {"C42", "SR41"},
	}

	for name, models := range brands {
		b := &brand.Brand{Name: name}
		if err := svc.CreateBrand(ctx, b); err != nil {
			logger.Warn("brand seed skipped", zap.String("brand", name), zap.Error(err))
			continue
		}
		for _, modelName := range models {
			m := &brand.Model{BrandID: b.ID, Name: modelName}
			if err := svc.CreateModel(ctx, m); err != nil {
				logger.Warn("model seed skipped", zap.String("model", modelName), zap.Error(err))
			}
		}
	}
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,

			language.NewLanguageRepository,
			schema.NewFieldSchemaRepository,
			brand.NewBrandRepository,

			language.NewLanguageService,
			schema.NewFieldSchemaService,
			brand.NewBrandService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
