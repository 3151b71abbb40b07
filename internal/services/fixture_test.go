package services_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"bazaar/internal/pricing"
	"bazaar/internal/repos"
	"bazaar/internal/services"
)

type fixture struct {
	db      *sqlx.DB
	catalog *services.CatalogService
	inv     *services.InventoryService
	carts   *services.CartService
	orders  *services.OrderService
	auth    *services.AuthService
	admin   *services.AdminService
	clock   time.Time
}

// newFixture opens a private in-memory store seeded with the demo catalog
// (Organic Rice id=1 price=450 stock=50 ... Dried Fish id=6 price=420 stock=15).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	calc := pricing.NewCalculator(pricing.DefaultRate)

	f := &fixture{db: db, clock: time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)}
	f.catalog = services.NewCatalogService(prodRepo, repos.NewCategoryRepo(db))
	f.inv = services.NewInventoryService(f.catalog, repos.NewInventoryRepo(db))
	f.carts = services.NewCartService(f.catalog, calc)
	f.orders = services.NewOrderService(orderRepo, prodRepo, calc)
	f.orders.Now = func() time.Time { return f.clock }
	f.auth = services.NewAuthService("admin", mustHash(t, "password123"))
	f.admin = services.NewAdminService(f.auth, f.catalog, f.orders)
	return f
}

func (f *fixture) stock(t *testing.T, id int64) int {
	t.Helper()
	p, err := f.catalog.Find(id)
	if err != nil {
		t.Fatal(err)
	}
	return p.Stock
}

func (f *fixture) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := f.db.Get(&n, `SELECT COUNT(*) FROM `+table); err != nil {
		t.Fatal(err)
	}
	return n
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func validCustomer() services.CustomerInfo {
	return services.CustomerInfo{
		Name:    "Asha Menon",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Address: "12 Beach Road, Kochi",
	}
}

func mustHash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}
