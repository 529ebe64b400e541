package site

import (
	"github.com/gofiber/fiber/v2"
)

type SiteController struct {
	Service SiteService
}

func NewSiteController(service SiteService) *SiteController {
	return &SiteController{Service: service}
}

func (ctrl *SiteController) CreateSite(c *fiber.Ctx) error {
	var s SyncSite
	if err := c.BodyParser(&s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.CreateSite(c.Context(), &s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Site created successfully",
		"data":    s,
	})
}

func (ctrl *SiteController) ListSites(c *fiber.Ctx) error {
	sites, err := ctrl.Service.ListSites(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"data": sites,
	})
}

func (ctrl *SiteController) GetSite(c *fiber.Ctx) error {
	s, err := ctrl.Service.GetSite(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(s)
}

func (ctrl *SiteController) UpdateSite(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := ctrl.Service.UpdateSite(c.Context(), c.Params("id"), updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Site updated successfully",
	})
}

func (ctrl *SiteController) DeleteSite(c *fiber.Ctx) error {
	if err := ctrl.Service.DeleteSite(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Site deleted successfully",
	})
}
