package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"storefront/internal/config"
	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
	"storefront/internal/services"
)

const testPassword = "Passw0rd!"

type testApp struct {
	app  *fiber.App
	db   *sqlx.DB
	deps *handlers.Deps
}

// newTestApp wires the real routes over an in-memory database. tune may
// adjust limits before the app is built.
func newTestApp(t *testing.T, tune func(d *handlers.Deps)) *testApp {
	t.Helper()
	db, err := repos.OpenDB(repos.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	deps := handlers.NewDeps(db, cfg, services.PlainCredentials{}, events.Nop{})
	deps.RateLimit = 1000
	deps.LoginLimit = 100
	if tune != nil {
		tune(deps)
	}
	return &testApp{app: handlers.NewApp(deps), db: db, deps: deps}
}

func (a *testApp) product(t *testing.T, name, price, category string) int64 {
	t.Helper()
	id, err := repos.NewProductRepo(a.db).Insert(context.Background(), domain.Product{
		Name: name, Price: decimal.RequireFromString(price), Image: "img/" + name + ".jpg", Category: category,
	})
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	return id
}

// do sends body as JSON (when non-nil) with an optional bearer token and
// decodes a JSON response into a map.
func (a *testApp) do(t *testing.T, method, path string, body any, token string) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

func (a *testApp) signup(t *testing.T, email string) {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/signup", map[string]string{
		"email":            email,
		"customer_name":    "Customer " + email,
		"contactno":        "555-0100",
		"customer_address": "1 Main St",
		"password1":        testPassword,
		"password2":        testPassword,
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup %s: status %d body=%v", email, resp.StatusCode, body)
	}
}

func (a *testApp) login(t *testing.T, email string) string {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/login", map[string]string{"email": email, "password": testPassword}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d body=%v", email, resp.StatusCode, body)
	}
	tok, _ := body["token"].(string)
	if tok == "" {
		t.Fatalf("login %s: no token in %v", email, body)
	}
	return tok
}

func (a *testApp) customer(t *testing.T, email string) string {
	t.Helper()
	a.signup(t, email)
	return a.login(t, email)
}

func cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
