package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bazaar/internal/domain"
	"bazaar/internal/pricing"
	"bazaar/internal/repos"
	"bazaar/internal/validate"
)

// CustomerInfo is what the shopper types into the checkout form.
type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Validate normalizes the fields and reports the first one that fails.
func (ci *CustomerInfo) Validate() error {
	var ok bool
	if ci.Name, ok = validate.Required(ci.Name); !ok {
		return domain.Invalid("name", "please enter your name")
	}
	if ci.Email, ok = validate.Email(ci.Email); !ok {
		return domain.Invalid("email", "please enter a valid email address")
	}
	if ci.Phone, ok = validate.Phone(ci.Phone); !ok {
		return domain.Invalid("phone", "please enter a valid 10-digit phone number")
	}
	if ci.Address, ok = validate.Required(ci.Address); !ok {
		return domain.Invalid("address", "please enter your address")
	}
	return nil
}

type OrderService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
	Calc   pricing.Calculator
	Now    func() time.Time
}

func NewOrderService(orders *repos.OrderRepo, prods *repos.ProductRepo, calc pricing.Calculator) *OrderService {
	return &OrderService{Orders: orders, Prods: prods, Calc: calc, Now: time.Now}
}

// Checkout turns the cart into an order. Stock for every line is checked
// first, then decremented, then the customer, order and items are written;
// all of it in one transaction, so a failure at any step leaves stock and the
// ledger untouched. The cart is cleared only on success.
func (s *OrderService) Checkout(cart *Cart, info CustomerInfo) (domain.Order, domain.Customer, error) {
	if err := info.Validate(); err != nil {
		return domain.Order{}, domain.Customer{}, err
	}
	lines := cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, domain.Customer{}, domain.EmptyCart()
	}

	need := make(map[int64]int, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, seen := need[l.ProductID]; !seen {
			ids = append(ids, l.ProductID)
		}
		need[l.ProductID] += l.Quantity
	}

	tx, err := s.Orders.Begin()
	if err != nil {
		return domain.Order{}, domain.Customer{}, fmt.Errorf("begin checkout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()
	prods := s.Prods.WithTx(tx)
	orders := s.Orders.WithTx(tx)

	// validate
	for _, id := range ids {
		have, err := prods.Stock(id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.Customer{}, domain.NotFoundf("product %d is no longer available", id)
		}
		if err != nil {
			return domain.Order{}, domain.Customer{}, fmt.Errorf("read stock for %d: %w", id, err)
		}
		if need[id] > have {
			return domain.Order{}, domain.Customer{}, domain.InsufficientStockf(
				"insufficient stock for product %d (need %d, have %d)", id, need[id], have)
		}
	}

	// commit
	for _, id := range ids {
		if err := prods.Decrement(id, need[id]); err != nil {
			return domain.Order{}, domain.Customer{}, err
		}
	}

	now := s.now()
	cust := domain.Customer{
		Name: info.Name, Email: info.Email, Phone: info.Phone, Address: info.Address,
		RegisteredAt: now,
	}
	if err := orders.CreateCustomer(&cust); err != nil {
		return domain.Order{}, domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	orderID, err := nextOrderID(orders, now)
	if err != nil {
		return domain.Order{}, domain.Customer{}, err
	}
	sum := s.Calc.Calculate(pricingLines(lines))
	order := domain.Order{
		ID:            orderID,
		CustomerID:    cust.ID,
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		OrderedAt:     now,
		Status:        domain.StatusPending,
		Subtotal:      sum.Subtotal,
		Tax:           sum.Tax,
		Total:         sum.Total,
	}
	if err := orders.Create(order); err != nil {
		return domain.Order{}, domain.Customer{}, fmt.Errorf("create order: %w", err)
	}
	for _, l := range lines {
		it := domain.OrderItem{
			OrderID:         orderID,
			ProductID:       l.ProductID,
			ProductName:     l.Name,
			Quantity:        l.Quantity,
			PriceAtPurchase: l.Price,
		}
		if err := orders.InsertItem(&it); err != nil {
			return domain.Order{}, domain.Customer{}, fmt.Errorf("insert item: %w", err)
		}
		order.Items = append(order.Items, it)
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, domain.Customer{}, fmt.Errorf("commit checkout: %w", err)
	}
	cart.Clear()
	return order, cust, nil
}

// nextOrderID is "ORD" + the checkout time in milliseconds, bumped until unused.
func nextOrderID(orders *repos.OrderRepo, at time.Time) (string, error) {
	ms := at.UnixMilli()
	for {
		id := "ORD" + strconv.FormatInt(ms, 10)
		taken, err := orders.Exists(id)
		if err != nil {
			return "", fmt.Errorf("check order id: %w", err)
		}
		if !taken {
			return id, nil
		}
		ms++
	}
}

func (s *OrderService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// UpdateStatus sets any of the four statuses regardless of the current one.
func (s *OrderService) UpdateStatus(orderID, status string) error {
	st, ok := domain.ParseStatus(status)
	if !ok {
		return domain.Invalid("status", fmt.Sprintf("unknown order status %q", status))
	}
	if err := s.Orders.UpdateStatus(orderID, st); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("order %s not found", orderID)
		}
		return fmt.Errorf("update status of %s: %w", orderID, err)
	}
	return nil
}

func (s *OrderService) FindByID(orderID string) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.NotFoundf("order %s not found", orderID)
	}
	return o, err
}

func (s *OrderService) FindByEmail(email string) ([]domain.Order, error) {
	return s.Orders.ByEmail(email)
}

func (s *OrderService) Search(term string) ([]domain.Order, error) {
	return s.Orders.Search(term)
}

func (s *OrderService) Customer(id int64) (domain.Customer, error) {
	c, err := s.Orders.Customer(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, domain.NotFoundf("customer %d not found", id)
	}
	return c, err
}

// Stats is the admin dashboard summary.
func (s *OrderService) Stats() (domain.Stats, error) {
	products, err := s.Prods.Count()
	if err != nil {
		return domain.Stats{}, err
	}
	orders, revenue, err := s.Orders.Revenue()
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.Stats{Products: products, Orders: orders, Revenue: revenue}, nil
}
