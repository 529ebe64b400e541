package media

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MediaApi struct {
	controller *MediaController
	config     *config.Config
}

func NewMediaApi(controller *MediaController, config *config.Config) api.Route {
	return &MediaApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all media routes
func (h *MediaApi) Setup(app *fiber.App) {
	group := app.Group("/api/media", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.RegisterMedia)
	group.Get("/:kind/:itemId", h.controller.ListForItem)
	group.Delete("/:id", h.controller.DeleteMedia)
}
