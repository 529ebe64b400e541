package brand

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type BrandApi struct {
	controller *BrandController
	config     *config.Config
}

func NewBrandApi(controller *BrandController, config *config.Config) api.Route {
	return &BrandApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all brand/model routes
func (h *BrandApi) Setup(app *fiber.App) {
	group := app.Group("/api/brands", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreateBrand)
	group.Get("/", h.controller.ListBrands)
	group.Delete("/:id", h.controller.DeleteBrand)

	group.Post("/models", h.controller.CreateModel)
	group.Get("/models", h.controller.ListModels)
	group.Delete("/models/:id", h.controller.DeleteModel)
}
