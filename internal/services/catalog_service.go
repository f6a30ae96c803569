package services

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// ListProducts returns the catalog, filtered by category when one is given.
func (s *CatalogService) ListProducts(ctx context.Context, ident domain.Identity, category string) ([]domain.Product, error) {
	if err := authorize(ident); err != nil {
		return nil, err
	}
	return s.Prods.List(ctx, category)
}

func (s *CatalogService) ListCategories(ctx context.Context, ident domain.Identity) ([]string, error) {
	if err := authorize(ident); err != nil {
		return nil, err
	}
	return s.Prods.Categories(ctx)
}

func (s *CatalogService) Product(ctx context.Context, ident domain.Identity, id int64) (domain.Product, error) {
	if err := authorize(ident); err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(ctx, id)
}
