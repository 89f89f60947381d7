package catalog

import (
	"context"
	"fmt"
	"net/url"

	pkgerrors "github.com/rukkie/storefront/pkg/errors"
	"github.com/rukkie/storefront/pkg/types"
)

const productsResource = "/api/products/"

// Gateway is the slice of the API client the catalog reads through.
type Gateway interface {
	GetInto(ctx context.Context, resource string, dest any) error
}

// Service reads the product catalog. All queries go straight to the backend;
// nothing is cached client-side so price and stock stay fresh.
type Service struct {
	gateway Gateway
}

// NewService builds a catalog reader.
func NewService(gateway Gateway) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	return &Service{gateway: gateway}, nil
}

// List returns the full catalog.
func (s *Service) List(ctx context.Context) ([]types.Product, error) {
	return s.list(ctx, productsResource)
}

// Featured returns the products flagged for the landing page.
func (s *Service) Featured(ctx context.Context) ([]types.Product, error) {
	return s.list(ctx, productsResource+"?featured=true")
}

// ByCategory returns the products in a category.
func (s *Service) ByCategory(ctx context.Context, slug string) ([]types.Product, error) {
	return s.list(ctx, productsResource+"?category="+url.QueryEscape(slug))
}

// BySlug resolves a single product by its slug.
func (s *Service) BySlug(ctx context.Context, slug string) (types.Product, error) {
	var product types.Product
	resource := fmt.Sprintf("%sslug/%s/", productsResource, url.PathEscape(slug))
	if err := s.gateway.GetInto(ctx, resource, &product); err != nil {
		return types.Product{}, err
	}
	return product, nil
}

// Product resolves a single product by id. The backend keys detail lookups
// by slug, so this scans the listing.
func (s *Service) Product(ctx context.Context, id string) (types.Product, error) {
	products, err := s.list(ctx, productsResource)
	if err != nil {
		return types.Product{}, err
	}
	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}
	return types.Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found.")
}

func (s *Service) list(ctx context.Context, resource string) ([]types.Product, error) {
	var products []types.Product
	if err := s.gateway.GetInto(ctx, resource, &products); err != nil {
		return nil, err
	}
	return products, nil
}
