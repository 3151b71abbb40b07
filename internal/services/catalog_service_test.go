package services_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bazaar/internal/domain"
	"bazaar/internal/services"
)

func teaInput() services.ProductInput {
	return services.ProductInput{
		Name:        "Masala Chai",
		Price:       dec("210"),
		Category:    "Beverages",
		Stock:       12,
		Description: "Loose-leaf spiced tea, 250g",
		Glyph:       "🍵",
	}
}

func TestCatalog_AddAssignsMonotonicIDs(t *testing.T) {
	f := newFixture(t)

	p, err := f.catalog.AddProduct(teaInput())
	require.NoError(t, err)
	assert.EqualValues(t, 7, p.ID)

	require.NoError(t, f.catalog.DeleteProduct(p.ID))

	q, err := f.catalog.AddProduct(teaInput())
	require.NoError(t, err)
	assert.EqualValues(t, 8, q.ID, "deleted ids are never reused")
}

func TestCatalog_AddValidation(t *testing.T) {
	f := newFixture(t)

	cases := map[string]func(*services.ProductInput){
		"name":        func(in *services.ProductInput) { in.Name = "  " },
		"price":       func(in *services.ProductInput) { in.Price = dec("0") },
		"category":    func(in *services.ProductInput) { in.Category = "Toys" },
		"stock":       func(in *services.ProductInput) { in.Stock = -1 },
		"description": func(in *services.ProductInput) { in.Description = "" },
		"glyph":       func(in *services.ProductInput) { in.Glyph = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := teaInput()
			mutate(&in)
			_, err := f.catalog.AddProduct(in)
			require.ErrorIs(t, err, domain.ErrValidation)
			var de *domain.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, field, de.Field)
		})
	}

	n, err := f.catalog.List()
	require.NoError(t, err)
	assert.Len(t, n, 6)
}

func TestCatalog_UpdateAndDelete(t *testing.T) {
	f := newFixture(t)

	in := teaInput()
	in.Name = "Basmati Rice"
	in.Category = "Grains"
	p, err := f.catalog.UpdateProduct(1, in)
	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice", p.Name)

	got, err := f.catalog.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice", got.Name)
	assert.True(t, dec("210").Equal(got.Price))
	assert.Equal(t, 12, got.Stock)

	_, err = f.catalog.UpdateProduct(99, teaInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.catalog.DeleteProduct(1))
	_, err = f.catalog.Find(1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.catalog.DeleteProduct(1), domain.ErrNotFound)
}

func TestCatalog_DecrementStock(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.catalog.DecrementStock(6, 5))
	assert.Equal(t, 10, f.stock(t, 6))

	err := f.catalog.DecrementStock(6, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, f.stock(t, 6), "failed decrement leaves stock unchanged")

	require.NoError(t, f.catalog.DecrementStock(6, 10))
	assert.Equal(t, 0, f.stock(t, 6))

	assert.ErrorIs(t, f.catalog.DecrementStock(42, 1), domain.ErrNotFound)
	assert.ErrorIs(t, f.catalog.DecrementStock(1, -1), domain.ErrValidation)
}

func TestCatalog_Search(t *testing.T) {
	f := newFixture(t)

	names := func(ps []domain.Product) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	got, err := f.catalog.Search("RICE", "All")
	require.NoError(t, err)
	assert.Equal(t, []string{"Organic Rice"}, names(got))

	got, err = f.catalog.Search("", "Oils")
	require.NoError(t, err)
	assert.Equal(t, []string{"Palm Oil"}, names(got))

	got, err = f.catalog.Search("o", "Seafood")
	require.NoError(t, err)
	assert.Equal(t, []string{}, names(got))

	got, err = f.catalog.Search("", "")
	require.NoError(t, err)
	assert.Len(t, got, 6)

	got, err = f.catalog.Search("%", "All")
	require.NoError(t, err)
	assert.Empty(t, got, "LIKE wildcards are matched literally")
}

func TestCatalog_CategoryCounts(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.DeleteProduct(6))
	_, err := f.catalog.AddProduct(teaInput())
	require.NoError(t, err)

	counts, err := f.catalog.CategoryCounts()
	require.NoError(t, err)
	require.Len(t, counts, len(domain.Categories))
	got := map[string]int{}
	for _, c := range counts {
		got[c.Name] = c.Products
	}
	assert.Equal(t, 2, got["Beverages"])
	assert.Equal(t, 0, got["Seafood"])
	assert.Equal(t, 1, got["Grains"])
}
