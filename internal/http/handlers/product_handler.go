package handlers

import (
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return message(c, fiber.StatusNotFound, "This item is no longer available")
	}
	p, err := h.Catalog.Find(id)
	if err != nil {
		return fail(c, "product.view.fail", err, map[string]any{"product_id": id})
	}
	data := fiber.Map{"P": p, "Avail": services.Availability(p)}
	if sess := session(c); sess != nil {
		if l, ok := sess.Cart.Line(id); ok {
			data["InCart"] = l.Quantity
		}
	}
	return render(c, "product", data)
}
