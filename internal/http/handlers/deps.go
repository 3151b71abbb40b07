package handlers

import (
	"bazaar/internal/config"
	"bazaar/internal/pricing"
	"bazaar/internal/repos"
	"bazaar/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Sessions *services.SessionStore
	Auth     *services.AuthService

	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	OrderHandler     *OrderHandler
	AuthHandler      *AuthHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	invRepo := repos.NewInventoryRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	calc := pricing.NewCalculator(cfg.TaxRate)
	authSvc := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash)
	catalogSvc := services.NewCatalogService(prodRepo, catRepo)
	invSvc := services.NewInventoryService(catalogSvc, invRepo)
	cartSvc := services.NewCartService(catalogSvc, calc)
	orderSvc := services.NewOrderService(orderRepo, prodRepo, calc)
	adminSvc := services.NewAdminService(authSvc, catalogSvc, orderSvc)
	sessions := services.NewSessionStore()
	if cfg.SessionIdle > 0 {
		sessions.IdleTimeout = cfg.SessionIdle
	}

	return &Deps{
		Sessions: sessions,
		Auth:     authSvc,

		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		OrderHandler:     &OrderHandler{Cart: cartSvc, Order: orderSvc, Auth: authSvc},
		AuthHandler:      &AuthHandler{Auth: authSvc},
		AdminHandler:     &AdminHandler{Admin: adminSvc, Catalog: catalogSvc, Inv: invSvc},
	}
}
