package content

import (
	common_models "go-yacht-cms/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type ContentController struct {
	Service ContentService
}

func NewContentController(service ContentService) *ContentController {
	return &ContentController{Service: service}
}

func (ctrl *ContentController) CreateItem(c *fiber.Ctx) error {
	var item ContentItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	item.Kind = common_models.ContentKind(c.Params("kind"))

	if err := ctrl.Service.CreateItem(c.Context(), &item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Content item created successfully",
		"data":    item,
	})
}

func (ctrl *ContentController) GetItem(c *fiber.Ctx) error {
	kind := common_models.ContentKind(c.Params("kind"))

	item, err := ctrl.Service.GetItem(c.Context(), kind, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(item)
}

func (ctrl *ContentController) ListItems(c *fiber.Ctx) error {
	kind := common_models.ContentKind(c.Params("kind"))
	if !kind.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown content kind",
		})
	}

	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 50))

	items, total, err := ctrl.Service.ListItems(c.Context(), kind, c.Query("state"), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data":  items,
		"total": total,
		"page":  page,
	})
}

func (ctrl *ContentController) UpdateItem(c *fiber.Ctx) error {
	kind := common_models.ContentKind(c.Params("kind"))

	existing, err := ctrl.Service.GetItem(c.Context(), kind, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var item ContentItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	item.ID = existing.ID
	item.Kind = kind
	item.CreatedAt = existing.CreatedAt

	if err := ctrl.Service.UpdateItem(c.Context(), &item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Content item updated successfully",
		"data":    item,
	})
}

func (ctrl *ContentController) DeleteItem(c *fiber.Ctx) error {
	kind := common_models.ContentKind(c.Params("kind"))

	if err := ctrl.Service.DeleteItem(c.Context(), kind, c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Content item deleted successfully",
	})
}
