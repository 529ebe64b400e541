package language

import (
	"github.com/gofiber/fiber/v2"
)

type LanguageController struct {
	Service LanguageService
}

func NewLanguageController(service LanguageService) *LanguageController {
	return &LanguageController{Service: service}
}

func (ctrl *LanguageController) CreateLanguage(c *fiber.Ctx) error {
	var lang Language
	if err := c.BodyParser(&lang); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.CreateLanguage(c.Context(), &lang); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Language created successfully",
		"data":    lang,
	})
}

func (ctrl *LanguageController) ListLanguages(c *fiber.Ctx) error {
	langs, err := ctrl.Service.ListLanguages(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": langs,
	})
}

func (ctrl *LanguageController) UpdateLanguage(c *fiber.Ctx) error {
	id := c.Params("id")

	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.UpdateLanguage(c.Context(), id, updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Language updated successfully",
	})
}

func (ctrl *LanguageController) DeleteLanguage(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := ctrl.Service.DeleteLanguage(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Language deleted successfully",
	})
}
