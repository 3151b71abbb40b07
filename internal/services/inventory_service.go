package services

import (
	"bazaar/internal/domain"
	"bazaar/internal/repos"
)

// LowStockThreshold is the stock level below which a product shows as low.
const LowStockThreshold = 10

type InventoryService struct {
	Catalog *CatalogService
	Inv     *repos.InventoryRepo
}

func NewInventoryService(catalog *CatalogService, inv *repos.InventoryRepo) *InventoryService {
	return &InventoryService{Catalog: catalog, Inv: inv}
}

// CheckAvailability converts stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *InventoryService) CheckAvailability(productID int64) (domain.Availability, error) {
	p, err := s.Catalog.Find(productID)
	if err != nil {
		return domain.Availability{}, err
	}
	return Availability(p), nil
}

func Availability(p domain.Product) domain.Availability {
	status := "OUT_OF_STOCK"
	switch {
	case p.Stock >= LowStockThreshold:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{ProductID: p.ID, Status: status, Qty: p.Stock}
}

// LowStock lists products below the low-stock threshold, out-of-stock first.
func (s *InventoryService) LowStock() ([]domain.Availability, error) {
	ps, err := s.Inv.LowStock(LowStockThreshold)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Availability, 0, len(ps))
	for _, p := range ps {
		out = append(out, Availability(p))
	}
	return out, nil
}

// Units is the total stock on hand.
func (s *InventoryService) Units() (int, error) {
	return s.Inv.Units()
}
