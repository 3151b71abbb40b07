package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bazaar/internal/domain"
	"bazaar/internal/repos"

	"github.com/shopspring/decimal"
)

// ProductInput carries every mutable product field for add and update.
type ProductInput struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Stock       int
	Description string
	Glyph       string
}

// Validate trims the text fields and reports the first invalid one.
func (in *ProductInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Glyph = strings.TrimSpace(in.Glyph)
	in.Category = strings.TrimSpace(in.Category)
	switch {
	case in.Name == "":
		return domain.Invalid("name", "product name is required")
	case !in.Price.IsPositive():
		return domain.Invalid("price", "price must be greater than zero")
	case !domain.IsCategory(in.Category):
		return domain.Invalid("category", fmt.Sprintf("unknown category %q", in.Category))
	case in.Stock < 0:
		return domain.Invalid("stock", "stock cannot be negative")
	case in.Description == "":
		return domain.Invalid("description", "description is required")
	case in.Glyph == "":
		return domain.Invalid("glyph", "display glyph is required")
	}
	return nil
}

func (in ProductInput) product(id int64) domain.Product {
	return domain.Product{
		ID: id, Name: in.Name, Price: in.Price, Category: in.Category,
		Description: in.Description, Stock: in.Stock, Glyph: in.Glyph,
	}
}

type CatalogService struct {
	Prods *repos.ProductRepo
	Cats  *repos.CategoryRepo
}

func NewCatalogService(prods *repos.ProductRepo, cats *repos.CategoryRepo) *CatalogService {
	return &CatalogService{Prods: prods, Cats: cats}
}

func (s *CatalogService) AddProduct(in ProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	p := in.product(0)
	if err := s.Prods.Create(&p); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *CatalogService) UpdateProduct(id int64, in ProductInput) (domain.Product, error) {
	if err := in.Validate(); err != nil {
		return domain.Product{}, err
	}
	p := in.product(id)
	if err := s.Prods.Update(p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.NotFoundf("product %d not found", id)
		}
		return domain.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return p, nil
}

// DeleteProduct removes the product. Orders keep their item snapshots; cart
// lines pointing at it are left for the cart to tolerate.
func (s *CatalogService) DeleteProduct(id int64) error {
	if err := s.Prods.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundf("product %d not found", id)
		}
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

func (s *CatalogService) DecrementStock(id int64, amount int) error {
	if amount < 0 {
		return domain.Invalid("amount", "amount cannot be negative")
	}
	return s.Prods.Decrement(id, amount)
}

func (s *CatalogService) Find(id int64) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.NotFoundf("product %d not found", id)
	}
	return p, err
}

func (s *CatalogService) Search(term, category string) ([]domain.Product, error) {
	return s.Prods.Search(term, category)
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) Categories() []string {
	return domain.Categories
}

// CategoryCounts pairs every category with its product count, empty ones included.
func (s *CatalogService) CategoryCounts() ([]domain.CategoryCount, error) {
	have, err := s.Cats.Counts()
	if err != nil {
		return nil, err
	}
	n := make(map[string]int, len(have))
	for _, c := range have {
		n[c.Name] = c.Products
	}
	out := make([]domain.CategoryCount, 0, len(domain.Categories))
	for _, name := range domain.Categories {
		out = append(out, domain.CategoryCount{Name: name, Products: n[name]})
	}
	return out, nil
}
