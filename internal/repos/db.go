package repos

import (
	"database/sql"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	Get(dest any, query string, args ...any) error
	Select(dest any, query string, args ...any) error
	Exec(query string, args ...any) (sql.Result, error)
}

const tsLayout = time.RFC3339Nano

// OpenDB opens the store. With the default ":memory:" DSN the data lives only
// as long as the process. The pool is pinned to a single connection: every
// new connection to ":memory:" would otherwise see its own empty database.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT NOT NULL,
  stock INTEGER NOT NULL CHECK (stock >= 0),
  glyph TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);

-- Ledger
CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  address TEXT NOT NULL,
  registered_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id INTEGER NOT NULL REFERENCES customers(id),
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  ordered_at TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'Pending'
    CHECK (status IN ('Pending','Confirmed','Shipped','Delivered')),
  subtotal TEXT NOT NULL,
  tax TEXT NOT NULL,
  total TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_email ON orders(LOWER(customer_email));

-- product_id carries no foreign key: products may be deleted, items keep their snapshot.
CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id INTEGER NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  price_at_purchase TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);

CREATE TRIGGER IF NOT EXISTS order_items_frozen
BEFORE UPDATE ON order_items
BEGIN
  SELECT RAISE(ABORT, 'order items are immutable');
END;
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var seq int
	if err := db.Get(&seq, `SELECT COUNT(*) FROM sqlite_sequence WHERE name = 'products'`); err != nil {
		return err
	}
	if seq > 0 {
		// catalog was emptied by an admin, not freshly created
		return nil
	}

	log.Println("[seed] inserting demo catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price,category,description,stock,glyph) VALUES
	  (1,'Organic Rice','450','Grains','High-quality organic basmati rice, 5kg pack',50,'🍚'),
	  (2,'Palm Oil','320','Oils','Pure refined palm oil, 2L bottle',30,'🥫'),
	  (3,'Coconut Milk','85','Beverages','Freshly extracted coconut milk, 1L',45,'🥥'),
	  (4,'Spice Mix','150','Spices','Traditional masala blend, 200g',60,'🌶️'),
	  (5,'Jaggery','180','Sweeteners','Organic jaggery blocks, 1kg',25,'🍯'),
	  (6,'Dried Fish','420','Seafood','Premium dried fish, 500g pack',15,'🐟')`)
	return tx.Commit()
}
