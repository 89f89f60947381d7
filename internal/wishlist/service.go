package wishlist

import (
	"context"
	"fmt"

	"github.com/rukkie/storefront/pkg/types"
)

const (
	wishlistResource = "/api/wishlist/"
	addResource      = "/api/wishlist/add/"
	removeResource   = "/api/wishlist/remove/"
	clearResource    = "/api/wishlist/clear/"
)

// Gateway is the slice of the API client the wishlist depends on.
type Gateway interface {
	GetInto(ctx context.Context, resource string, dest any) error
	PostInto(ctx context.Context, resource string, body, dest any) error
	Post(ctx context.Context, resource string, body any) (map[string]any, error)
}

// ProductLoader hydrates guest wishlist entries, which are stored as bare
// product ids.
type ProductLoader interface {
	Product(ctx context.Context, id string) (types.Product, error)
}

// Session identifies whose wishlist an operation targets. Signed-in accounts
// live on the backend; guests live in the guest store until they sign in.
type Session struct {
	Authenticated bool
	GuestID       string
}

type wishlistPayload struct {
	Products []types.Product `json:"products"`
}

// Service keeps the account wishlist on the backend and the guest wishlist
// in the guest store, behind one operation surface.
type Service struct {
	gateway  Gateway
	guests   *GuestStore
	products ProductLoader
}

// NewService builds a wishlist service over both backends.
func NewService(gateway Gateway, guests *GuestStore, products ProductLoader) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if guests == nil {
		return nil, fmt.Errorf("guest store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &Service{gateway: gateway, guests: guests, products: products}, nil
}

// Items returns the wishlist contents for the session. Guest entries that no
// longer resolve to a catalog product are dropped from the result.
func (s *Service) Items(ctx context.Context, sess Session) ([]types.Product, error) {
	if sess.Authenticated {
		var payload wishlistPayload
		if err := s.gateway.GetInto(ctx, wishlistResource, &payload); err != nil {
			return nil, err
		}
		return payload.Products, nil
	}

	ids, err := s.guests.List(ctx, sess.GuestID)
	if err != nil {
		return nil, err
	}
	products := make([]types.Product, 0, len(ids))
	for _, id := range ids {
		product, err := s.products.Product(ctx, id)
		if err != nil {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

// Add puts a product on the wishlist.
func (s *Service) Add(ctx context.Context, sess Session, productID string) error {
	if sess.Authenticated {
		var payload wishlistPayload
		return s.gateway.PostInto(ctx, addResource, map[string]any{"product_id": productID}, &payload)
	}
	return s.guests.Add(ctx, sess.GuestID, productID)
}

// Remove takes a product off the wishlist. Removing an absent product is a
// no-op for both backends.
func (s *Service) Remove(ctx context.Context, sess Session, productID string) error {
	if sess.Authenticated {
		var payload wishlistPayload
		return s.gateway.PostInto(ctx, removeResource, map[string]any{"product_id": productID}, &payload)
	}
	return s.guests.Remove(ctx, sess.GuestID, productID)
}

// Contains reports whether the product is on the wishlist.
func (s *Service) Contains(ctx context.Context, sess Session, productID string) (bool, error) {
	if sess.Authenticated {
		var payload wishlistPayload
		if err := s.gateway.GetInto(ctx, wishlistResource, &payload); err != nil {
			return false, err
		}
		for _, product := range payload.Products {
			if product.ID == productID {
				return true, nil
			}
		}
		return false, nil
	}
	return s.guests.Contains(ctx, sess.GuestID, productID)
}

// Clear empties the wishlist.
func (s *Service) Clear(ctx context.Context, sess Session) error {
	if sess.Authenticated {
		_, err := s.gateway.Post(ctx, clearResource, map[string]any{})
		return err
	}
	return s.guests.Clear(ctx, sess.GuestID)
}
