package services_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

func TestCatalog(t *testing.T) {
	s := memShop(t)
	ctx := context.Background()
	me := s.customer(t, "a@b.com")
	shirt := s.product(t, "Shirt", "10", "clothing")
	s.product(t, "Belt", "5", "accessories")
	s.product(t, "Jeans", "40", "clothing")

	all, err := s.catalog.ListProducts(ctx, me, "")
	if err != nil || len(all) != 3 {
		t.Fatalf("all products: %d %v", len(all), err)
	}
	clothing, err := s.catalog.ListProducts(ctx, me, "clothing")
	if err != nil || len(clothing) != 2 {
		t.Fatalf("clothing: %d %v", len(clothing), err)
	}
	for _, p := range clothing {
		if p.Category != "clothing" {
			t.Fatalf("filter leaked %+v", p)
		}
	}
	none, err := s.catalog.ListProducts(ctx, me, "garden")
	if err != nil || len(none) != 0 {
		t.Fatalf("unknown category: %d %v", len(none), err)
	}

	cats, err := s.catalog.ListCategories(ctx, me)
	if err != nil || len(cats) != 2 || cats[0] != "accessories" || cats[1] != "clothing" {
		t.Fatalf("categories: %v %v", cats, err)
	}

	p, err := s.catalog.Product(ctx, me, shirt)
	if err != nil || p.Name != "Shirt" {
		t.Fatalf("product: %+v %v", p, err)
	}
	if _, err := s.catalog.Product(ctx, me, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
