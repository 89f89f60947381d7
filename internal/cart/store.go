package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/rukkie/storefront/pkg/types"
)

const (
	cartResource   = "/api/cart/"
	addResource    = "/api/cart/add/"
	removeResource = "/api/cart/remove/"
	updateResource = "/api/cart/update/"
	clearResource  = "/api/cart/clear/"
)

// Gateway is the slice of the API client the cart store depends on.
type Gateway interface {
	GetInto(ctx context.Context, resource string, dest any) error
	Post(ctx context.Context, resource string, body any) (map[string]any, error)
}

// Store keeps a local snapshot of the server-side cart. The server is the
// source of truth; every mutation round-trips and the snapshot is replaced
// wholesale from the response. Concurrent mutations are not serialized
// against each other, the last refresh to land wins.
type Store struct {
	gateway Gateway

	mu    sync.RWMutex
	items []types.CartItem
}

// NewStore builds a cart store backed by the provided gateway.
func NewStore(gateway Gateway) (*Store, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	return &Store{gateway: gateway}, nil
}

// Refresh replaces the local snapshot with the server cart.
func (s *Store) Refresh(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

func (s *Store) refresh(ctx context.Context) (types.CartPayload, error) {
	payload, err := s.fetch(ctx)
	if err != nil {
		return types.CartPayload{}, err
	}
	s.replace(payload.CartItems())
	return payload, nil
}

func (s *Store) fetch(ctx context.Context) (types.CartPayload, error) {
	var payload types.CartPayload
	if err := s.gateway.GetInto(ctx, cartResource, &payload); err != nil {
		return types.CartPayload{}, err
	}
	return payload, nil
}

// AddToCart adds quantity units of the product and refreshes the snapshot.
// Quantities below one are treated as one.
func (s *Store) AddToCart(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	body := map[string]any{"product_id": productID, "quantity": quantity}
	if _, err := s.gateway.Post(ctx, addResource, body); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// RemoveFromCart removes the line holding the product. The backend keys
// removal by line-item id, so the current cart is fetched first to resolve
// it. A product no longer present means another session already changed the
// cart; the fresh snapshot is kept and no error is returned.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) error {
	payload, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	line, ok := payload.LineForProduct(productID)
	if !ok {
		s.replace(payload.CartItems())
		return nil
	}
	if _, err := s.gateway.Post(ctx, removeResource, map[string]any{"item_id": line.ID}); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// UpdateQuantity sets the quantity for the product's line. A quantity below
// one removes the line instead.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveFromCart(ctx, productID)
	}
	payload, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	line, ok := payload.LineForProduct(productID)
	if !ok {
		s.replace(payload.CartItems())
		return nil
	}
	body := map[string]any{"item_id": line.ID, "quantity": quantity}
	if _, err := s.gateway.Post(ctx, updateResource, body); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// ClearCart empties the server cart, then the local snapshot.
func (s *Store) ClearCart(ctx context.Context) error {
	if _, err := s.gateway.Post(ctx, clearResource, map[string]any{}); err != nil {
		return err
	}
	s.replace(nil)
	return nil
}

// Items returns a copy of the current snapshot.
func (s *Store) Items() []types.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]types.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// GetCartTotal sums price times quantity across the snapshot.
func (s *Store) GetCartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// GetCartCount sums quantities across the snapshot.
func (s *Store) GetCartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) replace(items []types.CartItem) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}
