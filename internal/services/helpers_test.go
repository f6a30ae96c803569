package services_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type shop struct {
	db      *sqlx.DB
	auth    *services.AuthService
	catalog *services.CatalogService
	cart    *services.CartService
	orders  *services.OrderService
	events  *recorder
}

type recorder struct {
	events.Nop
	got []events.OrderPlaced
}

func (r *recorder) PublishOrderPlaced(_ context.Context, e events.OrderPlaced) error {
	r.got = append(r.got, e)
	return nil
}

func newShop(t *testing.T, db *sqlx.DB) *shop {
	t.Helper()
	prods := repos.NewProductRepo(db)
	carts := repos.NewCartRepo(db)
	rec := &recorder{}
	return &shop{
		db:      db,
		auth:    services.NewAuthService(repos.NewCustomerRepo(db), services.PlainCredentials{}),
		catalog: services.NewCatalogService(prods),
		cart:    services.NewCartService(carts, prods),
		orders:  services.NewOrderService(carts, repos.NewOrderRepo(db), repos.NewTxRunner(db), rec),
		events:  rec,
	}
}

func memShop(t *testing.T) *shop {
	t.Helper()
	db, err := repos.OpenDB(repos.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return newShop(t, db)
}

func (s *shop) product(t *testing.T, name, price, category string) int64 {
	t.Helper()
	id, err := repos.NewProductRepo(s.db).Insert(context.Background(), domain.Product{
		Name: name, Price: decimal.RequireFromString(price), Image: "img/" + name + ".jpg", Category: category,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (s *shop) customer(t *testing.T, email string) domain.Identity {
	t.Helper()
	id, err := s.auth.Register(context.Background(), services.Registration{
		Email: email, Name: "Customer " + email, Password: "secret", Confirm: "secret",
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return domain.Identity{CustomerID: id}
}

func (s *shop) count(t *testing.T, query string, args ...any) int {
	t.Helper()
	var n int
	if err := s.db.Get(&n, query, args...); err != nil {
		t.Fatal(err)
	}
	return n
}
