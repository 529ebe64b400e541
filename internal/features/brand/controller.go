package brand

import (
	"github.com/gofiber/fiber/v2"
)

type BrandController struct {
	Service BrandService
}

func NewBrandController(service BrandService) *BrandController {
	return &BrandController{Service: service}
}

func (ctrl *BrandController) CreateBrand(c *fiber.Ctx) error {
	var b Brand
	if err := c.BodyParser(&b); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.CreateBrand(c.Context(), &b); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Brand created successfully",
		"data":    b,
	})
}

func (ctrl *BrandController) ListBrands(c *fiber.Ctx) error {
	brands, err := ctrl.Service.ListBrands(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": brands,
	})
}

func (ctrl *BrandController) DeleteBrand(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteBrand(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Brand deleted successfully",
	})
}

func (ctrl *BrandController) CreateModel(c *fiber.Ctx) error {
	var m Model
	if err := c.BodyParser(&m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.CreateModel(c.Context(), &m); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Model created successfully",
		"data":    m,
	})
}

func (ctrl *BrandController) ListModels(c *fiber.Ctx) error {
	models, err := ctrl.Service.ListModels(c.Context(), c.Query("brand_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": models,
	})
}

func (ctrl *BrandController) DeleteModel(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteModel(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Model deleted successfully",
	})
}
