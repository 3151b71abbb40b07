package handlers

import (
	"strings"

	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Admin   *services.AdminService
	Catalog *services.CatalogService
	Inv     *services.InventoryService
}

// productInput reads the product form. Unparsable numbers become validation
// errors here; range checks are left to the catalog.
func productInput(c *fiber.Ctx) (services.ProductInput, error) {
	in := services.ProductInput{
		Name:        c.FormValue("name"),
		Category:    c.FormValue("category"),
		Description: c.FormValue("description"),
		Glyph:       c.FormValue("glyph"),
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return in, domain.Invalid("price", "price must be a number")
	}
	stock, ok := validate.Stock(c.FormValue("stock"))
	if !ok {
		return in, domain.Invalid("stock", "stock must be a whole number")
	}
	in.Price, in.Stock = price, stock
	return in, nil
}

// dashboard renders GET /admin; a non-nil err is shown over the add form.
func (h *AdminHandler) dashboard(c *fiber.Ctx, status int, err error) error {
	sess := session(c)
	stats, serr := h.Admin.Stats(sess)
	if serr != nil {
		return fail(c, "admin.stats.fail", serr, nil)
	}
	ps, perr := h.Catalog.List()
	if perr != nil {
		return fail(c, "admin.products.list.fail", perr, nil)
	}
	low, lerr := h.Inv.LowStock()
	if lerr != nil {
		return fail(c, "admin.inventory.low.fail", lerr, nil)
	}
	units, uerr := h.Inv.Units()
	if uerr != nil {
		return fail(c, "admin.inventory.units.fail", uerr, nil)
	}
	data := fiber.Map{"Stats": stats, "Products": rows(ps), "LowStock": low, "Units": units}
	if err != nil {
		data["Err"] = userMessage(err)
	}
	c.Status(status)
	return render(c, "admin_dashboard", data)
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return h.dashboard(c, fiber.StatusOK, nil)
}

// POST /admin/products
func (h *AdminHandler) AddProduct(c *fiber.Ctx) error {
	in, err := productInput(c)
	if err == nil {
		var p domain.Product
		p, err = h.Admin.AddProduct(session(c), in)
		if err == nil {
			applog.Audit(c, "admin.products.add", map[string]any{"product_id": p.ID, "name": p.Name, "stock": p.Stock})
			return c.Redirect("/admin")
		}
	}
	if domain.KindOf(err) == domain.KindValidation {
		applog.Security(c, "validation.fail", errFields(err, nil))
		return h.dashboard(c, fiber.StatusBadRequest, err)
	}
	return fail(c, "admin.products.add.fail", err, nil)
}

// GET /admin/products/:id
func (h *AdminHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.Find(id)
	if err != nil {
		return fail(c, "admin.products.edit.fail", err, map[string]any{"product_id": id})
	}
	return render(c, "admin_product_edit", fiber.Map{"P": p})
}

// POST /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Product not found")
	}
	in, err := productInput(c)
	if err == nil {
		_, err = h.Admin.UpdateProduct(session(c), id, in)
		if err == nil {
			applog.Audit(c, "admin.products.update", map[string]any{"product_id": id, "price": in.Price.String(), "stock": in.Stock})
			return c.Redirect("/admin")
		}
	}
	if domain.KindOf(err) == domain.KindValidation {
		applog.Security(c, "validation.fail", errFields(err, map[string]any{"product_id": id}))
		c.Status(fiber.StatusBadRequest)
		p := domain.Product{ID: id, Name: in.Name, Price: in.Price, Category: in.Category,
			Description: in.Description, Stock: in.Stock, Glyph: in.Glyph}
		return render(c, "admin_product_edit", fiber.Map{"P": p, "Err": userMessage(err)})
	}
	return fail(c, "admin.products.update.fail", err, map[string]any{"product_id": id})
}

// POST /admin/products/:id/delete
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Product not found")
	}
	if err := h.Admin.DeleteProduct(session(c), id); err != nil {
		return fail(c, "admin.products.delete.fail", err, map[string]any{"product_id": id})
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/admin")
}

// GET /admin/orders?q=
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	q := validate.Q(c.Query("q"))
	ords, err := h.Admin.Orders(session(c), q)
	if err != nil {
		return fail(c, "admin.orders.list.fail", err, nil)
	}
	return render(c, "admin_orders", fiber.Map{"Orders": ords, "Q": q, "Statuses": domain.Statuses})
}

// GET /admin/orders/:id
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	id, ok := validate.OrderID(c.Params("id"))
	if !ok {
		return message(c, fiber.StatusNotFound, "Order not found")
	}
	o, cust, err := h.Admin.OrderDetail(session(c), id)
	if err != nil {
		return fail(c, "admin.orders.view.fail", err, map[string]any{"order_id": id})
	}
	return render(c, "admin_order", fiber.Map{"Order": o, "Customer": cust, "Statuses": domain.Statuses})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, ok := validate.OrderID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return message(c, fiber.StatusNotFound, "Order not found")
	}
	status := strings.TrimSpace(c.FormValue("status"))
	if err := h.Admin.UpdateStatus(session(c), id, status); err != nil {
		return fail(c, "admin.orders.update.fail", err, map[string]any{"order_id": id, "status": status})
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	back := c.FormValue("back")
	if back != "detail" {
		return c.Redirect("/admin/orders")
	}
	return c.Redirect("/admin/orders/" + id)
}
