package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

func TestOrderFlow_SignupCartCheckout(t *testing.T) {
	s := memShop(t)
	ctx := context.Background()
	p1 := s.product(t, "Shirt", "10", "clothing")
	p2 := s.product(t, "Belt", "5", "accessories")

	s.customer(t, "a@b.com")
	id, ok, err := s.auth.Authenticate(ctx, "a@b.com", "secret")
	if err != nil || !ok {
		t.Fatalf("login: %v %v", ok, err)
	}
	me := domain.Identity{CustomerID: id}

	for _, pid := range []int64{p1, p2} {
		if err := s.cart.AddProduct(ctx, me, pid); err != nil {
			t.Fatal(err)
		}
	}
	cv, err := s.cart.ViewCart(ctx, me)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Lines) != 2 || !cv.Total.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("bad cart view: %+v", cv)
	}

	if err := s.cart.RemoveProduct(ctx, me, p1); err != nil {
		t.Fatal(err)
	}
	cv, _ = s.cart.ViewCart(ctx, me)
	if len(cv.Lines) != 1 || !cv.Total.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("bad cart after remove: %+v", cv)
	}
	cartID, _ := s.cart.GetOrCreateCart(ctx, me)

	oid, err := s.orders.Checkout(ctx, me, "X", "card")
	if err != nil {
		t.Fatal(err)
	}
	if oid == 0 {
		t.Fatal("no order id")
	}

	cv, _ = s.cart.ViewCart(ctx, me)
	if len(cv.Lines) != 0 || !cv.Total.IsZero() {
		t.Fatalf("cart not cleared: %+v", cv)
	}
	if again, _ := s.cart.GetOrCreateCart(ctx, me); again != cartID {
		t.Fatalf("cart row should be reused, had %d now %d", cartID, again)
	}

	orders, err := s.orders.ListOrders(ctx, me)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 {
		t.Fatalf("want 1 order, got %+v", orders)
	}
	o := orders[0]
	if o.ID != oid || o.DeliveryAddress != "X" || o.Payment != "card" || o.CustomerName != "Customer a@b.com" {
		t.Fatalf("unexpected order view: %+v", o)
	}

	if len(s.events.got) != 1 {
		t.Fatalf("want 1 published event, got %d", len(s.events.got))
	}
	e := s.events.got[0]
	if e.OrderID != oid || len(e.ProductIDs) != 1 || e.ProductIDs[0] != p2 || !e.Total.Equal(decimal.NewFromInt(5)) {
		t.Fatalf("unexpected event: %+v", e)
	}
}

func TestCheckout_AtomicWhenClearFails(t *testing.T) {
	s := memShop(t)
	ctx := context.Background()
	me := s.customer(t, "a@b.com")
	for _, p := range []string{"10", "5"} {
		if err := s.cart.AddProduct(ctx, me, s.product(t, "P"+p, p, "misc")); err != nil {
			t.Fatal(err)
		}
	}

	// make the second statement of checkout fail after the order insert ran
	s.db.MustExec(`CREATE TRIGGER fail_clear BEFORE DELETE ON cart_products
	  BEGIN SELECT RAISE(ABORT, 'clear failed'); END`)

	_, err := s.orders.Checkout(ctx, me, "X", "card")
	if !errors.Is(err, domain.ErrTransaction) {
		t.Fatalf("want ErrTransaction, got %v", err)
	}
	if n := s.count(t, `SELECT COUNT(*) FROM orders`); n != 0 {
		t.Fatalf("order persisted without clearing the cart: %d", n)
	}
	cv, _ := s.cart.ViewCart(ctx, me)
	if len(cv.Lines) != 2 {
		t.Fatalf("cart changed by failed checkout: %+v", cv.Lines)
	}
	if len(s.events.got) != 0 {
		t.Fatal("event published for a rolled back order")
	}

	s.db.MustExec(`DROP TRIGGER fail_clear`)
	if _, err := s.orders.Checkout(ctx, me, "X", "card"); err != nil {
		t.Fatalf("checkout after recovery: %v", err)
	}
	if n := s.count(t, `SELECT COUNT(*) FROM orders`); n != 1 {
		t.Fatalf("want 1 order, got %d", n)
	}
}

func TestCheckout_Validation(t *testing.T) {
	s := memShop(t)
	ctx := context.Background()
	me := s.customer(t, "a@b.com")

	cases := []struct{ addr, pay, field string }{
		{"", "card", "delivery_address"},
		{"   ", "card", "delivery_address"},
		{"X", "", "payment_method"},
	}
	for _, tc := range cases {
		_, err := s.orders.Checkout(ctx, me, tc.addr, tc.pay)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) || ve.Field != tc.field {
			t.Fatalf("Checkout(%q,%q): want %s ValidationError, got %v", tc.addr, tc.pay, tc.field, err)
		}
	}
	if n := s.count(t, `SELECT COUNT(*) FROM orders`); n != 0 {
		t.Fatalf("invalid checkouts created %d orders", n)
	}
}

func TestListOrders_NewestFirstAndScoped(t *testing.T) {
	s := memShop(t)
	ctx := context.Background()
	alice := s.customer(t, "alice@b.com")
	bob := s.customer(t, "bob@b.com")

	clock := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s.orders.Now = func() time.Time { return clock }

	first, err := s.orders.Checkout(ctx, alice, "Home", "card")
	if err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(time.Hour)
	second, err := s.orders.Checkout(ctx, alice, "Office", "cash")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.orders.Checkout(ctx, bob, "Elsewhere", "card"); err != nil {
		t.Fatal(err)
	}

	orders, err := s.orders.ListOrders(ctx, alice)
	if err != nil {
		t.Fatal(err)
	}
	if len(orders) != 2 {
		t.Fatalf("alice should see only her 2 orders, got %+v", orders)
	}
	if orders[0].ID != second || orders[1].ID != first {
		t.Fatalf("want newest first, got %+v", orders)
	}
	if orders[0].Date != "2026-10-16 10:00:00.000000" {
		t.Fatalf("unexpected stored date %q", orders[0].Date)
	}
}
