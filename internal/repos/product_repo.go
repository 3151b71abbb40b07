package repos

import (
	"database/sql"
	"errors"
	"strings"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct {
	db *sqlx.DB
	q  DBTX
}

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db, q: db} }

// WithTx returns a repo whose statements run inside tx.
func (r *ProductRepo) WithTx(tx *sqlx.Tx) *ProductRepo { return &ProductRepo{db: r.db, q: tx} }

const productCols = `id, name, price, category, description, stock, glyph`

// Create inserts p and sets its freshly assigned ID.
func (r *ProductRepo) Create(p *domain.Product) error {
	res, err := r.q.Exec(`
		INSERT INTO products(name, price, category, description, stock, glyph)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.Name, p.Price, p.Category, p.Description, p.Stock, p.Glyph)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Update replaces every mutable field. Returns sql.ErrNoRows if p.ID is unknown.
func (r *ProductRepo) Update(p domain.Product) error {
	res, err := r.q.Exec(`
		UPDATE products
		SET name = ?, price = ?, category = ?, description = ?, stock = ?, glyph = ?
		WHERE id = ?
	`, p.Name, p.Price, p.Category, p.Description, p.Stock, p.Glyph, p.ID)
	return oneRow(res, err)
}

// Delete removes the product permanently. Returns sql.ErrNoRows if unknown.
func (r *ProductRepo) Delete(id int64) error {
	res, err := r.q.Exec(`DELETE FROM products WHERE id = ?`, id)
	return oneRow(res, err)
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.q.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.q.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

// Search matches term as a case-insensitive substring of the name. An empty
// category or "All" disables the category filter.
func (r *ProductRepo) Search(term, category string) ([]domain.Product, error) {
	where := `1 = 1`
	args := []any{}
	if term = strings.TrimSpace(term); term != "" {
		where += ` AND instr(LOWER(name), ?) > 0`
		args = append(args, strings.ToLower(term))
	}
	if category != "" && category != domain.AllCategories {
		where += ` AND category = ?`
		args = append(args, category)
	}
	out := []domain.Product{}
	err := r.q.Select(&out, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY id`, args...)
	return out, err
}

// Stock returns current stock; sql.ErrNoRows if the product is unknown.
func (r *ProductRepo) Stock(id int64) (int, error) {
	var n int
	err := r.q.Get(&n, `SELECT stock FROM products WHERE id = ?`, id)
	return n, err
}

// Decrement subtracts by units in one guarded statement; stock never goes negative.
func (r *ProductRepo) Decrement(id int64, by int) error {
	res, err := r.q.Exec(`
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND stock >= ?
	`, by, id, by)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	have, err := r.Stock(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundf("product %d not found", id)
	}
	if err != nil {
		return err
	}
	return domain.InsufficientStockf("insufficient stock for product %d (need %d, have %d)", id, by, have)
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.q.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}

func oneRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
