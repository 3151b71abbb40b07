package handlers

import (
	"bazaar/internal/log"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if h.Auth.IsAdmin(session(c)) {
		return c.Redirect("/admin")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sess := session(c)
	username := c.FormValue("username")
	pass := c.FormValue("password")

	if err := h.Auth.Login(sess, username, pass); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"username": username})
		c.Status(fiber.StatusUnauthorized)
		return render(c, "login", fiber.Map{"Err": "Invalid username or password", "Username": username})
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect("/admin")
}

// Logout drops the admin flag; the cart stays with the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess := session(c)
	h.Auth.Logout(sess)
	log.Audit(c, "auth.logout", nil)
	return c.Redirect("/")
}
