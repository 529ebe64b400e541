package schema

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type FieldSchemaApi struct {
	controller *FieldSchemaController
	config     *config.Config
}

func NewFieldSchemaApi(controller *FieldSchemaController, config *config.Config) api.Route {
	return &FieldSchemaApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all field schema routes
func (h *FieldSchemaApi) Setup(app *fiber.App) {
	group := app.Group("/api/schema", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/fields", h.controller.CreateField)
	group.Get("/fields/:kind", h.controller.ListFields)
	group.Get("/fields/id/:id", h.controller.GetField)
	group.Put("/fields/id/:id", h.controller.UpdateField)
	group.Delete("/fields/id/:id", h.controller.DeleteField)
}
