package handlers

import (
	"github.com/jmoiron/sqlx"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/identity"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	DB     *sqlx.DB
	Issuer *identity.Issuer

	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler

	// Requests per minute per IP, and login attempts per 10 minutes.
	RateLimit  int
	LoginLimit int
}

func NewDeps(db *sqlx.DB, cfg config.Config, creds services.Credentials, pub events.Publisher) *Deps {
	custRepo := repos.NewCustomerRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(custRepo, creds)
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo, repos.NewTxRunner(db), pub)

	iss := identity.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)

	return &Deps{
		DB:             db,
		Issuer:         iss,
		AuthHandler:    &AuthHandler{Auth: authSvc, Issuer: iss},
		CatalogHandler: &CatalogHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc},
		RateLimit:      60,
		LoginLimit:     5,
	}
}
