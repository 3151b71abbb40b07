package handlers

import (
	"errors"
	"strings"

	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Auth  *services.AuthService
}

func (h *OrderHandler) form(c *fiber.Ctx, status int, info services.CustomerInfo, err error) error {
	sess := session(c)
	data := fiber.Map{
		"Lines":   sess.Cart.Lines(),
		"Summary": h.Cart.Summary(&sess.Cart),
		"Info":    info,
	}
	if err != nil {
		data["Err"] = userMessage(err)
		var de *domain.Error
		if errors.As(err, &de) {
			data["Field"] = de.Field
		}
	}
	c.Status(status)
	return render(c, "checkout", data)
}

// Checkout is GET /checkout.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	if session(c).Cart.Len() == 0 {
		return c.Redirect("/cart")
	}
	return h.form(c, fiber.StatusOK, services.CustomerInfo{}, nil)
}

// Place is POST /orders.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sess := session(c)
	info := services.CustomerInfo{
		Name:    c.FormValue("name"),
		Email:   c.FormValue("email"),
		Phone:   c.FormValue("phone"),
		Address: c.FormValue("address"),
	}
	order, cust, err := h.Order.Checkout(&sess.Cart, info)
	if err != nil {
		switch domain.KindOf(err) {
		case domain.KindInternal:
			applog.Error(c, "order.place.fail", err, nil)
			return err
		case domain.KindValidation:
			applog.Security(c, "validation.fail", errFields(err, nil))
		default:
			applog.Info(c, "order.place.fail", errFields(err, nil))
		}
		if domain.KindOf(err) == domain.KindEmptyCart {
			return message(c, statusFor(err), "Your cart is empty")
		}
		return h.form(c, statusFor(err), info, err)
	}
	sess.Remember(order.ID)
	applog.Audit(c, "order.place", map[string]any{
		"order_id":    order.ID,
		"customer_id": cust.ID,
		"items":       len(order.Items),
		"total":       order.Total.StringFixed(2),
	})
	return c.Redirect("/order/" + order.ID)
}

// View is GET /order/:id. The order is shown to the session that placed it,
// to an admin, or to a visitor who supplies the matching ?email=.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, ok := validate.OrderID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Order not found")
	}
	o, err := h.Order.FindByID(oid)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return message(c, fiber.StatusNotFound, "Order not found")
		}
		applog.Error(c, "order.view.fail", err, map[string]any{"order_id": oid})
		return err
	}
	sess := session(c)
	email := strings.TrimSpace(c.Query("email"))
	allowed := sess.Placed(oid) || h.Auth.IsAdmin(sess) ||
		(email != "" && strings.EqualFold(email, o.CustomerEmail))
	if !allowed {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return message(c, fiber.StatusNotFound, "Order not found")
	}
	return render(c, "order", fiber.Map{"Order": o, "Email": email, "Fresh": sess.Placed(oid)})
}

// MyOrders is GET /my-orders?email=.
func (h *OrderHandler) MyOrders(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("email"))
	if raw == "" {
		return render(c, "my_orders", fiber.Map{})
	}
	email, ok := validate.Email(raw)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		c.Status(fiber.StatusBadRequest)
		return render(c, "my_orders", fiber.Map{"Email": raw, "Err": "please enter a valid email address"})
	}
	orders, err := h.Order.FindByEmail(email)
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return err
	}
	return render(c, "my_orders", fiber.Map{"Email": email, "Orders": orders, "Searched": true})
}

// API is GET /api/v1/orders?email=.
func (h *OrderHandler) API(c *fiber.Ctx) error {
	email, ok := validate.Email(c.Query("email"))
	if !ok {
		return failJSON(c, "api.orders.fail", domain.Invalid("email", "please enter a valid email address"))
	}
	orders, err := h.Order.FindByEmail(email)
	if err != nil {
		return failJSON(c, "api.orders.fail", err)
	}
	return c.JSON(orders)
}
