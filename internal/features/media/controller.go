package media

import (
	common_models "go-yacht-cms/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type MediaController struct {
	Service MediaService
}

func NewMediaController(service MediaService) *MediaController {
	return &MediaController{Service: service}
}

func (ctrl *MediaController) RegisterMedia(c *fiber.Ctx) error {
	var file MediaFile
	if err := c.BodyParser(&file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.RegisterMedia(c.Context(), &file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Media registered successfully",
		"data":    file,
	})
}

func (ctrl *MediaController) ListForItem(c *fiber.Ctx) error {
	kind := common_models.ContentKind(c.Params("kind"))
	if !kind.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown item kind",
		})
	}

	files, err := ctrl.Service.ListForItem(c.Context(), kind, c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": files,
	})
}

func (ctrl *MediaController) DeleteMedia(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteMedia(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Media deleted successfully",
	})
}
