package schema

import (
	common_models "go-yacht-cms/internal/common/models"

	"github.com/gofiber/fiber/v2"
)

type FieldSchemaController struct {
	Service FieldSchemaService
}

func NewFieldSchemaController(service FieldSchemaService) *FieldSchemaController {
	return &FieldSchemaController{Service: service}
}

func (ctrl *FieldSchemaController) CreateField(c *fiber.Ctx) error {
	var field FieldSchema
	if err := c.BodyParser(&field); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.CreateField(c.Context(), &field); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Field created successfully",
		"data":    field,
	})
}

func (ctrl *FieldSchemaController) ListFields(c *fiber.Ctx) error {
	kind := common_models.ContentKind(c.Params("kind"))
	if !kind.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown entity kind",
		})
	}

	fields, err := ctrl.Service.ListFields(c.Context(), kind)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": fields,
	})
}

func (ctrl *FieldSchemaController) GetField(c *fiber.Ctx) error {
	id := c.Params("id")

	field, err := ctrl.Service.GetField(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(field)
}

func (ctrl *FieldSchemaController) UpdateField(c *fiber.Ctx) error {
	id := c.Params("id")

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.UpdateField(c.Context(), id, updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Field updated successfully",
	})
}

func (ctrl *FieldSchemaController) DeleteField(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.Service.DeleteField(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Field deleted successfully",
	})
}
