package handlers

import (
	"errors"
	"strings"
	"time"

	applog "bazaar/internal/log"
	"bazaar/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// ErrorHandler logs err and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code, msg = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	if rerr := c.Status(code).Render("message", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// Options tunes the parts of the app tests need to change.
type Options struct {
	// AccessLog enables the per-request access log line.
	AccessLog bool
	// RateLimit is the per-IP request budget per minute; 0 means 120.
	RateLimit int
	// LoginLimit is the per-IP login attempt budget per 10 minutes; 0 means 5.
	LoginLimit int
}

// NewApp builds the storefront with its middleware and routes.
func NewApp(d *Deps, opt Options) *fiber.App {
	if opt.RateLimit == 0 {
		opt.RateLimit = 120
	}
	if opt.LoginLimit == 0 {
		opt.LoginLimit = 5
	}

	app := fiber.New(fiber.Config{
		Views:        web.Engine(),
		ErrorHandler: ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	if opt.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        opt.RateLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return message(c, fiber.StatusTooManyRequests, "Too many requests. Please slow down.")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ContextKey:     "csrf",
		Next: func(c *fiber.Ctx) bool {
			// the JSON API is read-only
			return strings.HasPrefix(c.Path(), "/api/")
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"err": err.Error()})
			return message(c, fiber.StatusForbidden, "Security check failed. Please refresh and try again.")
		},
	}))
	app.Use(WithSession(d.Sessions))

	// ---------- Routes ----------
	// Public pages
	app.Get("/", d.CategoryHandler.Home)
	app.Get("/search", limiter.New(limiter.Config{Max: 30, Expiration: time.Minute}), d.SearchHandler.Search)
	app.Get("/product/:id", d.ProductHandler.Detail)

	// Cart & orders
	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/qty", d.CartHandler.Qty)
	app.Post("/cart/remove", d.CartHandler.Remove)
	app.Get("/checkout", d.OrderHandler.Checkout)
	app.Post("/orders", d.OrderHandler.Place)
	app.Get("/order/:id", d.OrderHandler.View)
	app.Get("/my-orders", d.OrderHandler.MyOrders)

	// API
	api := app.Group("/api/v1")
	api.Get("/products", d.SearchHandler.API)
	api.Get("/availability", limiter.New(limiter.Config{
		Max:        15,
		Expiration: 30 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|avail"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.availability.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "RATE_LIMIT", "message": "rate limit exceeded, retry soon"})
		},
	}), d.InventoryHandler.Check)
	api.Get("/cart", d.CartHandler.API)
	api.Get("/orders", d.OrderHandler.API)

	// Auth routes (login throttled)
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        opt.LoginLimit,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/logout", d.AuthHandler.Logout)

	// Admin
	adminH := d.AdminHandler
	admin := app.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/", adminH.Dashboard)
	admin.Post("/products", adminH.AddProduct)
	admin.Get("/products/:id", adminH.EditForm)
	admin.Post("/products/:id", adminH.UpdateProduct)
	admin.Post("/products/:id/delete", adminH.DeleteProduct)
	admin.Get("/orders", adminH.OrdersPage)
	admin.Get("/orders/:id", adminH.OrderDetail)
	admin.Post("/orders/:id/status", adminH.UpdateOrderStatus)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return message(c, fiber.StatusNotFound, "Page not found")
	})

	return app
}
