package services

import (
	"errors"
	"fmt"

	"bazaar/internal/domain"
	"bazaar/internal/pricing"
)

// Cart is one shopper's unconfirmed selection, one line per product.
type Cart struct {
	lines []domain.CartLine
}

func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Line(productID int64) (domain.CartLine, bool) {
	if i := c.index(productID); i >= 0 {
		return c.lines[i], true
	}
	return domain.CartLine{}, false
}

func (c *Cart) Len() int { return len(c.lines) }

// Count is the total number of units, shown on the cart badge.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Clear() { c.lines = nil }

func (c *Cart) index(productID int64) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) remove(productID int64) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return true
}

// MaxLineQty bounds a single add so quantity arithmetic stays far from overflow.
const MaxLineQty = 10000

// CartService applies cart mutations against live catalog stock.
type CartService struct {
	Catalog *CatalogService
	Calc    pricing.Calculator
}

func NewCartService(catalog *CatalogService, calc pricing.Calculator) *CartService {
	return &CartService{Catalog: catalog, Calc: calc}
}

// AddItem adds qty units of a product, creating the line if needed. The
// resulting quantity may not exceed live stock.
func (s *CartService) AddItem(cart *Cart, productID int64, qty int) (domain.CartLine, error) {
	if qty < 1 || qty > MaxLineQty {
		return domain.CartLine{}, domain.Invalid("quantity", fmt.Sprintf("quantity must be between 1 and %d", MaxLineQty))
	}
	p, err := s.Catalog.Find(productID)
	if err != nil {
		return domain.CartLine{}, err
	}
	if p.Stock == 0 {
		return domain.CartLine{}, domain.StockExceededf("%s is out of stock", p.Name)
	}

	if i := cart.index(productID); i >= 0 {
		l := &cart.lines[i]
		if qty > p.Stock-l.Quantity {
			return *l, domain.StockExceededf("cannot add more than available stock (%d)", p.Stock)
		}
		l.Quantity += qty
		l.MaxStock = p.Stock
		return *l, nil
	}

	if qty > p.Stock {
		return domain.CartLine{}, domain.StockExceededf("cannot add more than available stock (%d)", p.Stock)
	}
	l := domain.CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Glyph:     p.Glyph,
		MaxStock:  p.Stock,
		Quantity:  qty,
	}
	cart.lines = append(cart.lines, l)
	return l, nil
}

// ChangeQuantity adjusts a line by delta. A result of zero or less removes the
// line, reported as a zero-quantity line.
func (s *CartService) ChangeQuantity(cart *Cart, productID int64, delta int) (domain.CartLine, error) {
	i := cart.index(productID)
	if i < 0 {
		return domain.CartLine{}, domain.NotFoundf("product %d is not in the cart", productID)
	}
	l := &cart.lines[i]
	if delta <= -l.Quantity {
		cart.remove(productID)
		return domain.CartLine{ProductID: productID}, nil
	}

	p, err := s.Catalog.Find(productID)
	if err != nil {
		return *l, err
	}
	if delta > p.Stock-l.Quantity {
		return *l, domain.StockExceededf("cannot exceed available stock (%d)", p.Stock)
	}
	l.Quantity += delta
	l.MaxStock = p.Stock
	return *l, nil
}

// RemoveItem drops the line; unknown products are ignored.
func (s *CartService) RemoveItem(cart *Cart, productID int64) bool {
	return cart.remove(productID)
}

// Summary prices the cart with the shared calculator. Lines whose product has
// since been deleted still count at their snapshot price.
func (s *CartService) Summary(cart *Cart) pricing.Summary {
	return s.Calc.Calculate(pricingLines(cart.lines))
}

func pricingLines(lines []domain.CartLine) []pricing.Line {
	out := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, pricing.Line{Price: l.Price, Quantity: l.Quantity})
	}
	return out
}

// IsUserError reports whether err is a recoverable shopper-facing failure
// rather than an internal one.
func IsUserError(err error) bool {
	var de *domain.Error
	return errors.As(err, &de) && de.Kind != domain.KindInternal
}
