package importer

import (
	"go-yacht-cms/internal/features/schema"
	"go-yacht-cms/internal/features/sync"

	"github.com/gofiber/fiber/v2"
)

type ImporterController struct {
	Service ImporterService
}

func NewImporterController(service ImporterService) *ImporterController {
	return &ImporterController{Service: service}
}

func (ctrl *ImporterController) ImportConfig(c *fiber.Ctx) error {
	if !ctrl.Service.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(sync.ConfigResponse{
			Success: false,
			Error:   ErrStoreDisabled.Error(),
		})
	}

	var fields []schema.FieldConfigDoc
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(sync.ConfigResponse{
			Success: false,
			Error:   "invalid request body",
		})
	}

	if err := ctrl.Service.ApplyConfig(c.Context(), fields); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(sync.ConfigResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(sync.ConfigResponse{Success: true})
}

func (ctrl *ImporterController) ImportContent(c *fiber.Ctx) error {
	if !ctrl.Service.Enabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": ErrStoreDisabled.Error(),
		})
	}

	var items []sync.ItemDoc
	if err := c.BodyParser(&items); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	resp, err := ctrl.Service.ImportItems(c.Context(), items)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(resp)
}
