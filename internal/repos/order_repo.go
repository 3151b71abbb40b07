package repos

import (
	"fmt"
	"strings"
	"time"

	"bazaar/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct {
	db *sqlx.DB
	q  DBTX
}

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db, q: db} }

// WithTx returns a repo whose statements run inside tx.
func (r *OrderRepo) WithTx(tx *sqlx.Tx) *OrderRepo { return &OrderRepo{db: r.db, q: tx} }

// Begin starts the transaction checkout runs in.
func (r *OrderRepo) Begin() (*sqlx.Tx, error) { return r.db.Beginx() }

type customerRow struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	Address      string `db:"address"`
	RegisteredAt string `db:"registered_at"`
}

func (c customerRow) toDomain() domain.Customer {
	return domain.Customer{
		ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address,
		RegisteredAt: parseTS(c.RegisteredAt),
	}
}

type orderRow struct {
	ID            string          `db:"id"`
	CustomerID    int64           `db:"customer_id"`
	CustomerName  string          `db:"customer_name"`
	CustomerEmail string          `db:"customer_email"`
	OrderedAt     string          `db:"ordered_at"`
	Status        string          `db:"status"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	Tax           decimal.Decimal `db:"tax"`
	Total         decimal.Decimal `db:"total"`
}

func (o orderRow) toDomain() domain.Order {
	return domain.Order{
		ID: o.ID, CustomerID: o.CustomerID, CustomerName: o.CustomerName, CustomerEmail: o.CustomerEmail,
		OrderedAt: parseTS(o.OrderedAt), Status: domain.Status(o.Status),
		Subtotal: o.Subtotal, Tax: o.Tax, Total: o.Total,
	}
}

type orderItemRow struct {
	ID              int64           `db:"id"`
	OrderID         string          `db:"order_id"`
	ProductID       int64           `db:"product_id"`
	ProductName     string          `db:"product_name"`
	Quantity        int             `db:"quantity"`
	PriceAtPurchase decimal.Decimal `db:"price_at_purchase"`
}

func parseTS(s string) time.Time {
	t, err := time.Parse(tsLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

const orderCols = `id, customer_id, customer_name, customer_email, ordered_at, status, subtotal, tax, total`

// ---------- Writes (checkout) ----------

// CreateCustomer inserts c and sets its ID.
func (r *OrderRepo) CreateCustomer(c *domain.Customer) error {
	res, err := r.q.Exec(`
		INSERT INTO customers(name, email, phone, address, registered_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.Name, c.Email, c.Phone, c.Address, c.RegisteredAt.UTC().Format(tsLayout))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// Exists reports whether an order id is taken.
func (r *OrderRepo) Exists(id string) (bool, error) {
	var n int
	if err := r.q.Get(&n, `SELECT COUNT(*) FROM orders WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts the order header.
func (r *OrderRepo) Create(o domain.Order) error {
	_, err := r.q.Exec(`
		INSERT INTO orders(`+orderCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.ID, o.CustomerID, o.CustomerName, o.CustomerEmail, o.OrderedAt.UTC().Format(tsLayout),
		string(o.Status), o.Subtotal, o.Tax, o.Total)
	return err
}

// InsertItem inserts one line and sets its ID. Items are never updated afterwards.
func (r *OrderRepo) InsertItem(it *domain.OrderItem) error {
	res, err := r.q.Exec(`
		INSERT INTO order_items(order_id, product_id, product_name, quantity, price_at_purchase)
		VALUES (?, ?, ?, ?, ?)
	`, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.PriceAtPurchase)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

// UpdateStatus overwrites the status. Returns sql.ErrNoRows if the order is unknown.
func (r *OrderRepo) UpdateStatus(id string, status domain.Status) error {
	res, err := r.q.Exec(`UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	return oneRow(res, err)
}

// ---------- Reads ----------

// Get loads an order with its items; sql.ErrNoRows if unknown.
func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var row orderRow
	if err := r.q.Get(&row, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id); err != nil {
		return domain.Order{}, err
	}
	o := row.toDomain()
	items, err := r.Items(id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load items for %s: %w", id, err)
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) Items(orderID string) ([]domain.OrderItem, error) {
	var rows []orderItemRow
	if err := r.q.Select(&rows, `
		SELECT id, order_id, product_id, product_name, quantity, price_at_purchase
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID); err != nil {
		return nil, err
	}
	out := make([]domain.OrderItem, 0, len(rows))
	for _, it := range rows {
		out = append(out, domain.OrderItem(it))
	}
	return out, nil
}

func (r *OrderRepo) Customer(id int64) (domain.Customer, error) {
	var row customerRow
	if err := r.q.Get(&row, `
		SELECT id, name, email, phone, address, registered_at FROM customers WHERE id = ?
	`, id); err != nil {
		return domain.Customer{}, err
	}
	return row.toDomain(), nil
}

// List returns every order in insertion order.
func (r *OrderRepo) List() ([]domain.Order, error) {
	return r.selectOrders(`SELECT `+orderCols+` FROM orders ORDER BY rowid`)
}

// ByEmail matches the denormalized email case-insensitively, in insertion order.
func (r *OrderRepo) ByEmail(email string) ([]domain.Order, error) {
	return r.selectOrders(`
		SELECT `+orderCols+` FROM orders
		WHERE LOWER(customer_email) = ?
		ORDER BY rowid
	`, strings.ToLower(strings.TrimSpace(email)))
}

// Search matches term as a case-insensitive substring of the id or customer name.
func (r *OrderRepo) Search(term string) ([]domain.Order, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r.List()
	}
	return r.selectOrders(`
		SELECT `+orderCols+` FROM orders
		WHERE instr(LOWER(id), ?) > 0 OR instr(LOWER(customer_name), ?) > 0
		ORDER BY rowid
	`, term, term)
}

func (r *OrderRepo) selectOrders(query string, args ...any) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.q.Select(&rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Revenue sums order totals. Totals are stored as exact decimal text, so the
// sum is done here rather than in SQL floating point.
func (r *OrderRepo) Revenue() (int, decimal.Decimal, error) {
	var totals []decimal.Decimal
	if err := r.q.Select(&totals, `SELECT total FROM orders`); err != nil {
		return 0, decimal.Zero, err
	}
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return len(totals), sum, nil
}
