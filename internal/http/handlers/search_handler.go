package handlers

import (
	"bazaar/internal/domain"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// Search backs the header search box; it renders the home grid with the hits.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := validate.Q(c.Query("q"))
	category := c.Query("category", domain.AllCategories)
	ps, err := h.Catalog.Search(q, category)
	if err != nil {
		return fail(c, "catalog.search.fail", err, map[string]any{"q": q})
	}
	counts, err := h.Catalog.CategoryCounts()
	if err != nil {
		return fail(c, "catalog.categories.fail", err, nil)
	}
	return render(c, "home", fiber.Map{
		"Products": rows(ps),
		"Counts":   counts,
		"Q":        q,
		"Category": category,
		"Searched": true,
	})
}

// API is GET /api/v1/products: the same query as JSON.
func (h *SearchHandler) API(c *fiber.Ctx) error {
	ps, err := h.Catalog.Search(validate.Q(c.Query("q")), c.Query("category", domain.AllCategories))
	if err != nil {
		return failJSON(c, "api.products.fail", err)
	}
	return c.JSON(ps)
}
