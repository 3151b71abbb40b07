package handlers

import (
	"bazaar/internal/domain"
	"bazaar/internal/services"
	"bazaar/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// productRow is a catalog entry plus its stock label.
type productRow struct {
	domain.Product
	Avail string
}

func rows(ps []domain.Product) []productRow {
	out := make([]productRow, 0, len(ps))
	for _, p := range ps {
		out = append(out, productRow{Product: p, Avail: services.Availability(p).Status})
	}
	return out
}

// Home lists the catalog, optionally filtered by ?q= and ?category=.
func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	q := validate.Q(c.Query("q"))
	category := c.Query("category", domain.AllCategories)
	ps, err := h.Catalog.Search(q, category)
	if err != nil {
		return fail(c, "catalog.list.fail", err, nil)
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
	})
}
