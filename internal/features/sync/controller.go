package sync

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type SyncController struct {
	Service SyncService
}

func NewSyncController(service SyncService) *SyncController {
	return &SyncController{Service: service}
}

// RunSync starts a run over every active site and hands back the token the
// client polls (or streams) progress with.
func (ctrl *SyncController) RunSync(c *fiber.Ctx) error {
	token, err := ctrl.Service.StartRun(c.Context(), "")
	if err != nil {
		return runError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Sync run started",
		"token":   token,
	})
}

// RunSiteSync starts a run restricted to one site.
func (ctrl *SyncController) RunSiteSync(c *fiber.Ctx) error {
	token, err := ctrl.Service.StartRun(c.Context(), c.Params("siteId"))
	if err != nil {
		return runError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Sync run started",
		"token":   token,
	})
}

func runError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrRunInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (ctrl *SyncController) GetProgress(c *fiber.Ctx) error {
	progress, err := ctrl.Service.GetProgress(c.Context(), c.Params("token"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(progress)
}

func (ctrl *SyncController) ListStatus(c *fiber.Ctx) error {
	siteID := c.Query("site_id")
	if siteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "site_id query parameter is required",
		})
	}

	statuses, err := ctrl.Service.ListStatus(c.Context(), siteID, Status(c.Query("status")), int64(c.QueryInt("limit", 100)))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": statuses,
	})
}

func (ctrl *SyncController) StatusSummary(c *fiber.Ctx) error {
	summary, err := ctrl.Service.StatusSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": summary,
	})
}

// StreamProgress pushes the progress record over a websocket until the run
// completes, so admin UIs avoid polling.
func (ctrl *SyncController) StreamProgress(conn *websocket.Conn) {
	token := conn.Params("token")
	defer conn.Close()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for range ticker.C {
		progress, err := ctrl.Service.GetProgress(context.Background(), token)
		if err != nil {
			_ = conn.WriteJSON(fiber.Map{"error": err.Error()})
			return
		}
		if err := conn.WriteJSON(progress); err != nil {
			return
		}
		if progress.Completed {
			return
		}
	}
}
