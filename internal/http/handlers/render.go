package handlers

import (
	"bazaar/internal/domain"

	"github.com/gofiber/fiber/v2"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if sess := session(c); sess != nil {
		data["CartCount"] = sess.Cart.Count()
		data["Admin"] = sess.IsAdmin()
	}
	data["Categories"] = domain.Categories
	// Locals is filled by the CSRF middleware; the cookie is the fallback for
	// the first request of a session.
	tok, _ := c.Locals("csrf").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data)
}

// message renders the plain notice page with the given status.
func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("message", fiber.Map{"Message": msg})
}
