package sync

import (
	"go-yacht-cms/internal/common/api"
	"go-yacht-cms/internal/config"
	"go-yacht-cms/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type SyncApi struct {
	controller *SyncController
	config     *config.Config
}

func NewSyncApi(controller *SyncController, config *config.Config) api.Route {
	return &SyncApi{
		controller: controller,
		config:     config,
	}
}

// Setup registers all sync routes
func (h *SyncApi) Setup(app *fiber.App) {
	group := app.Group("/api/sync", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/run", h.controller.RunSync)
	group.Post("/run/:siteId", h.controller.RunSiteSync)
	group.Get("/progress/:token", h.controller.GetProgress)
	group.Get("/status", h.controller.ListStatus)
	group.Get("/status/summary", h.controller.StatusSummary)

	// Websocket upgrade for live progress; the token identifies the run.
	group.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	group.Get("/ws/:token", websocket.New(h.controller.StreamProgress))
}
