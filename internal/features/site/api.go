package site

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SiteApi struct {
	controller *SiteController
	config     *config.Config
}

func NewSiteApi(controller *SiteController, config *config.Config) api.Route {
	return &SiteApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all site routes
func (h *SiteApi) Setup(app *fiber.App) {
	group := app.Group("/api/sites", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreateSite)
	group.Get("/", h.controller.ListSites)
	group.Get("/:id", h.controller.GetSite)
	group.Put("/:id", h.controller.UpdateSite)
	group.Delete("/:id", h.controller.DeleteSite)
}
