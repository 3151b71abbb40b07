package handlers

import (
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// Check is GET /api/v1/availability?productId=.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Query("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "VALIDATION",
			"message": "missing or invalid productId",
		})
	}
	avail, err := h.Inv.CheckAvailability(id)
	if err != nil {
		return failJSON(c, "api.availability.fail", err)
	}
	return c.JSON(avail)
}
