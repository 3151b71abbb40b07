package repos

import (
	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type InventoryRepo struct{ db *sqlx.DB }

func NewInventoryRepo(db *sqlx.DB) *InventoryRepo { return &InventoryRepo{db: db} }

// LowStock lists products with fewer than threshold units, emptiest first.
func (r *InventoryRepo) LowStock(threshold int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		WHERE stock < ?
		ORDER BY stock, id
	`, threshold)
	return out, err
}

// Units is the total number of units on hand across the catalog.
func (r *InventoryRepo) Units() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(stock), 0) FROM products`)
	return n, err
}
