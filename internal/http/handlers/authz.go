package handlers

import (
	applog "bazaar/internal/log"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

const sessionCookie = "sid"

// WithSession resolves the shopper's session from the sid cookie, issuing a
// new one when the cookie is missing or unknown, and holds the session lock
// for the rest of the request.
func WithSession(store *services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sessionCookie)
		sess := store.Ensure(sid)
		if sess.ID != sid {
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
				Secure:   false, // enable true behind TLS
			})
		}
		c.Locals("session", sess)
		sess.Lock()
		defer sess.Unlock()
		return c.Next()
	}
}

func session(c *fiber.Ctx) *services.Session {
	sess, _ := c.Locals("session").(*services.Session)
	return sess
}

// RequireAdmin lets only sessions that passed the admin login through. Page
// loads are sent to the login form; anything else gets a 401.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := session(c)
		if auth.IsAdmin(sess) {
			return c.Next()
		}
		applog.Security(c, "access.denied.admin", nil)
		if c.Method() == fiber.MethodGet {
			return c.Redirect("/login")
		}
		return message(c, fiber.StatusUnauthorized, "Please log in as admin")
	}
}
