package services

import (
	"bazaar/internal/domain"
)

// AdminService exposes catalog and ledger mutations only to admin sessions.
type AdminService struct {
	Auth    *AuthService
	Catalog *CatalogService
	Ledger  *OrderService
}

func NewAdminService(auth *AuthService, catalog *CatalogService, orders *OrderService) *AdminService {
	return &AdminService{Auth: auth, Catalog: catalog, Ledger: orders}
}

func (s *AdminService) AddProduct(sess *Session, in ProductInput) (domain.Product, error) {
	if err := s.Auth.Require(sess); err != nil {
		return domain.Product{}, err
	}
	return s.Catalog.AddProduct(in)
}

func (s *AdminService) UpdateProduct(sess *Session, id int64, in ProductInput) (domain.Product, error) {
	if err := s.Auth.Require(sess); err != nil {
		return domain.Product{}, err
	}
	return s.Catalog.UpdateProduct(id, in)
}

func (s *AdminService) DeleteProduct(sess *Session, id int64) error {
	if err := s.Auth.Require(sess); err != nil {
		return err
	}
	return s.Catalog.DeleteProduct(id)
}

func (s *AdminService) UpdateStatus(sess *Session, orderID, status string) error {
	if err := s.Auth.Require(sess); err != nil {
		return err
	}
	return s.Ledger.UpdateStatus(orderID, status)
}

func (s *AdminService) Orders(sess *Session, term string) ([]domain.Order, error) {
	if err := s.Auth.Require(sess); err != nil {
		return nil, err
	}
	return s.Ledger.Search(term)
}

// OrderDetail returns the order with its items and the customer it was placed by.
func (s *AdminService) OrderDetail(sess *Session, orderID string) (domain.Order, domain.Customer, error) {
	if err := s.Auth.Require(sess); err != nil {
		return domain.Order{}, domain.Customer{}, err
	}
	o, err := s.Ledger.FindByID(orderID)
	if err != nil {
		return domain.Order{}, domain.Customer{}, err
	}
	c, err := s.Ledger.Customer(o.CustomerID)
	if err != nil {
		return domain.Order{}, domain.Customer{}, err
	}
	return o, c, nil
}

func (s *AdminService) Stats(sess *Session) (domain.Stats, error) {
	if err := s.Auth.Require(sess); err != nil {
		return domain.Stats{}, err
	}
	return s.Ledger.Stats()
}
