package repos

import (
	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Counts returns every category that has at least one product, by name.
func (r *CategoryRepo) Counts() ([]domain.CategoryCount, error) {
	var out []domain.CategoryCount
	err := r.db.Select(&out, `
		SELECT category AS name, COUNT(*) AS products
		FROM products
		GROUP BY category
		ORDER BY category
	`)
	return out, err
}
