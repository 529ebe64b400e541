package importer

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ImporterApi struct {
	controller *ImporterController
	config     *config.Config
}

func NewImporterApi(controller *ImporterController, config *config.Config) api.Route {
	return &ImporterApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers the inbound sync surface. It authenticates with the shared
// X-API-Key secret, not admin JWTs, because the caller is another CMS.
func (h *ImporterApi) Setup(app *fiber.App) {
	group := app.Group("/sync/v1", middleware.APIKeyMiddleware(h.config.ImportAPIKey))

	group.Post("/config", h.controller.ImportConfig)
	group.Post("/sync", h.controller.ImportContent)
}
