package language

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type LanguageApi struct {
	controller *LanguageController
	config     *config.Config
}

func NewLanguageApi(controller *LanguageController, config *config.Config) api.Route {
	return &LanguageApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all language routes
func (h *LanguageApi) Setup(app *fiber.App) {
	group := app.Group("/api/languages", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", h.controller.CreateLanguage)
	group.Get("/", h.controller.ListLanguages)
	group.Put("/:id", h.controller.UpdateLanguage)
	group.Delete("/:id", h.controller.DeleteLanguage)
}
