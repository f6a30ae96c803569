package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// GetOrCreateCart returns the caller's cart, creating it on first use. The
// unique customer_id on cart decides concurrent creates; the loser reads
// the winner's row.
func (s *CartService) GetOrCreateCart(ctx context.Context, ident domain.Identity) (int64, error) {
	if err := authorize(ident); err != nil {
		return 0, err
	}
	id, err := s.Carts.CartID(ctx, ident.CustomerID)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	id, st, err := s.Carts.Create(ctx, ident.CustomerID)
	switch st {
	case repos.Inserted:
		return id, nil
	case repos.Duplicate:
		return s.Carts.CartID(ctx, ident.CustomerID)
	case repos.MissingReference:
		return 0, fmt.Errorf("customer %d: %w", ident.CustomerID, domain.ErrNotFound)
	}
	return 0, err
}

// AddProduct puts one line for productID in the caller's cart. Stock is
// not touched.
func (s *CartService) AddProduct(ctx context.Context, ident domain.Identity, productID int64) error {
	if err := authorize(ident); err != nil {
		return err
	}
	if _, err := s.Prods.Get(ctx, productID); err != nil {
		return err
	}
	cartID, err := s.GetOrCreateCart(ctx, ident)
	if err != nil {
		return err
	}

	st, err := s.Carts.AddLine(ctx, cartID, productID)
	switch st {
	case repos.Inserted:
		return nil
	case repos.Duplicate:
		return fmt.Errorf("product %d: %w", productID, domain.ErrAlreadyInCart)
	case repos.MissingReference:
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}
	return err
}

// RemoveProduct drops productID from the caller's cart. Removing a product
// that is not in the cart succeeds.
func (s *CartService) RemoveProduct(ctx context.Context, ident domain.Identity, productID int64) error {
	if err := authorize(ident); err != nil {
		return err
	}
	_, err := s.Carts.RemoveLine(ctx, ident.CustomerID, productID)
	return err
}

type CartView struct {
	Lines []domain.CartLineView `json:"lines"`
	Total decimal.Decimal       `json:"total"`
}

// ViewCart returns the caller's lines and their total. The total adds up
// each line's grouped price, which is the unit price while a product can
// only appear once per cart.
func (s *CartService) ViewCart(ctx context.Context, ident domain.Identity) (CartView, error) {
	if err := authorize(ident); err != nil {
		return CartView{}, err
	}
	lines, err := s.Carts.Lines(ctx, ident.CustomerID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal)
	}
	return CartView{Lines: lines, Total: total}, nil
}
