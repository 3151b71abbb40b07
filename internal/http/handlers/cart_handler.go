package handlers

import (
	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// page renders the cart. A non-empty errMsg is shown above the lines.
func (h *CartHandler) page(c *fiber.Ctx, status int, errMsg string) error {
	sess := session(c)
	c.Status(status)
	return render(c, "cart", fiber.Map{
		"Lines":   sess.Cart.Lines(),
		"Summary": h.Cart.Summary(&sess.Cart),
		"Err":     errMsg,
	})
}

// mutationFailed logs a rejected cart change and shows it on the cart page.
func (h *CartHandler) mutationFailed(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	if !services.IsUserError(err) {
		applog.Error(c, action, err, fields)
		return err
	}
	applog.Info(c, action, errFields(err, fields))
	return h.page(c, statusFor(err), userMessage(err))
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, "")
}

// Add is POST /cart: productId, qty.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return message(c, fiber.StatusBadRequest, "missing productId")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		return h.mutationFailed(c, "cart.add.fail", domain.Invalid("quantity", "quantity must be a whole number from 1 to 10000"), nil)
	}
	sess := session(c)
	line, err := h.Cart.AddItem(&sess.Cart, id, qty)
	if err != nil {
		return h.mutationFailed(c, "cart.add.fail", err, map[string]any{"product_id": id, "qty": qty})
	}
	applog.Info(c, "cart.add", map[string]any{"product_id": id, "qty": qty, "line_qty": line.Quantity})
	return c.Redirect("/cart")
}

// Qty is POST /cart/qty: productId, delta (+1 / -1 from the cart buttons).
func (h *CartHandler) Qty(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return message(c, fiber.StatusBadRequest, "missing productId")
	}
	delta := validate.Delta(c.FormValue("delta"))
	sess := session(c)
	line, err := h.Cart.ChangeQuantity(&sess.Cart, id, delta)
	if err != nil {
		return h.mutationFailed(c, "cart.qty.fail", err, map[string]any{"product_id": id, "delta": delta})
	}
	applog.Info(c, "cart.qty", map[string]any{"product_id": id, "delta": delta, "line_qty": line.Quantity})
	return c.Redirect("/cart")
}

// Remove is POST /cart/remove: productId.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return message(c, fiber.StatusBadRequest, "missing productId")
	}
	sess := session(c)
	if h.Cart.RemoveItem(&sess.Cart, id) {
		applog.Info(c, "cart.remove", map[string]any{"product_id": id})
	}
	return c.Redirect("/cart")
}

// API is GET /api/v1/cart.
func (h *CartHandler) API(c *fiber.Ctx) error {
	sess := session(c)
	sum := h.Cart.Summary(&sess.Cart)
	return c.JSON(fiber.Map{
		"lines":    sess.Cart.Lines(),
		"count":    sess.Cart.Count(),
		"subtotal": sum.Subtotal.StringFixed(2),
		"tax":      sum.Tax.StringFixed(2),
		"total":    sum.Total.StringFixed(2),
	})
}
