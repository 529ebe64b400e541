package content

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ContentApi struct {
	controller *ContentController
	config     *config.Config
}

func NewContentApi(controller *ContentController, config *config.Config) api.Route {
	return &ContentApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all content routes
func (h *ContentApi) Setup(app *fiber.App) {
	group := app.Group("/api/content", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/:kind", h.controller.CreateItem)
	group.Get("/:kind", h.controller.ListItems)
	group.Get("/:kind/:id", h.controller.GetItem)
	group.Put("/:kind/:id", h.controller.UpdateItem)
	group.Delete("/:kind/:id", h.controller.DeleteItem)
}
