package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories is the fixed set a product may belong to.
var Categories = []string{"Grains", "Oils", "Beverages", "Spices", "Sweeteners", "Seafood"}

// AllCategories is the search sentinel meaning "no category filter".
const AllCategories = "All"

// IsCategory reports whether s is one of Categories (case-sensitive).
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Category    string          `db:"category" json:"category"`
	Description string          `db:"description" json:"description"`
	Stock       int             `db:"stock" json:"stock"`
	Glyph       string          `db:"glyph" json:"glyph"`
}

// CartLine snapshots the product as it was at the last successful cart mutation.
type CartLine struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Glyph     string          `json:"glyph"`
	MaxStock  int             `json:"maxStock"`
	Quantity  int             `json:"quantity"`
}

// LineTotal is price x quantity, unrounded.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Customer struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	RegisteredAt time.Time `json:"registrationDate"`
}

type Order struct {
	ID            string          `json:"id"`
	CustomerID    int64           `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	OrderedAt     time.Time       `json:"orderDate"`
	Status        Status          `json:"status"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"totalAmount"`
	Items         []OrderItem     `json:"items,omitempty"`
}

type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         string          `json:"orderId"`
	ProductID       int64           `json:"productId"`
	ProductName     string          `json:"productName"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

// LineTotal is the frozen unit price times quantity.
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.PriceAtPurchase.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Stats backs the admin dashboard.
type Stats struct {
	Products int             `json:"totalProducts"`
	Orders   int             `json:"totalOrders"`
	Revenue  decimal.Decimal `json:"totalRevenue"`
}

// Availability is the shopper-facing stock label for a product.
type Availability struct {
	ProductID int64  `json:"productId"`
	Status    string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty       int    `json:"qty"`
}

// CategoryCount is a category with the number of products filed under it.
type CategoryCount struct {
	Name     string `db:"name" json:"name"`
	Products int    `db:"products" json:"products"`
}
