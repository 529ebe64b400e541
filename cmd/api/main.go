package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/database"
	"go-yacht-cms/internal/features/brand"
	"go-yacht-cms/internal/features/content"
	"go-yacht-cms/internal/features/importer"
	"go-yacht-cms/internal/features/language"
	"go-yacht-cms/internal/features/media"
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/site"
	"go-yacht-cms/internal/features/sync"
	"go-yacht-cms/internal/features/translator"
	"go-yacht-cms/internal/logger"
	"go-yacht-cms/internal/middleware"
	"go-yacht-cms/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	utils.SetSecret(cfg.JWTSecret)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	languageRepo language.LanguageRepository,
	schemaRepo schema.FieldSchemaRepository,
	statusRepo sync.SyncStatusRepository,
	progressStore sync.ProgressStore,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := languageRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure language indexes: %v", err)
				}
				if err := schemaRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure field schema indexes: %v", err)
				}
				if err := statusRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure sync status indexes: %v", err)
				}
				if err := progressStore.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure sync progress indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Repository
			language.NewLanguageRepository,
			schema.NewFieldSchemaRepository,
			brand.NewBrandRepository,
			media.NewMediaRepository,
			content.NewContentRepository,
			site.NewSiteRepository,
			sync.NewSyncStatusRepository,
			sync.NewProgressStore,
			importer.NewImportStore,

			language.NewLanguageService,
			schema.NewFieldSchemaService,
			brand.NewBrandService,
			media.NewMediaService,
			content.NewContentService,
			site.NewSiteService,
			translator.NewTranslator,
			sync.NewSiteClient,
			sync.NewPayloadBuilder,
			sync.NewDirtyTracker,
			sync.NewStatusCleaner,
			sync.NewSyncService,
			importer.NewImporterService,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(t sync.DirtyTracker) content.SyncTrigger { return t },
			func(c *sync.StatusCleaner) site.StatusCleaner { return c },

			// Initialize Controller
			language.NewLanguageController,
			schema.NewFieldSchemaController,
			brand.NewBrandController,
			media.NewMediaController,
			content.NewContentController,
			site.NewSiteController,
			sync.NewSyncController,
			importer.NewImporterController,

			// Initialize API Routes
			AsRoute(language.NewLanguageApi),
			AsRoute(schema.NewFieldSchemaApi),
			AsRoute(brand.NewBrandApi),
			AsRoute(media.NewMediaApi),
			AsRoute(content.NewContentApi),
			AsRoute(site.NewSiteApi),
			AsRoute(sync.NewSyncApi),
			AsRoute(importer.NewImporterApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			sync.NewScheduler,
			InitializeIndexes,
		),
	)

	app.Run()
}
