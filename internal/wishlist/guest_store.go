package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/rukkie/storefront/pkg/config"
)

// SetStore is the slice of the redis client the guest store depends on.
type SetStore interface {
	SetAdd(ctx context.Context, key string, members ...any) error
	SetRemove(ctx context.Context, key string, members ...any) error
	SetMembers(ctx context.Context, key string) ([]string, error)
	SetContains(ctx context.Context, key string, member any) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	GuestWishlistKey(guestID string) string
}

// GuestStore holds wishlists for visitors without an account, keyed by a
// cookie-scoped guest id. Entries expire after the configured TTL so
// abandoned sessions clean themselves up.
type GuestStore struct {
	store SetStore
	ttl   time.Duration
}

// NewGuestStore builds a guest wishlist store.
func NewGuestStore(store SetStore, cfg config.WishlistConfig) (*GuestStore, error) {
	if store == nil {
		return nil, fmt.Errorf("set store required")
	}
	return &GuestStore{store: store, ttl: cfg.GuestTTL}, nil
}

// Add records a product id and refreshes the wishlist TTL.
func (g *GuestStore) Add(ctx context.Context, guestID, productID string) error {
	key := g.store.GuestWishlistKey(guestID)
	if err := g.store.SetAdd(ctx, key, productID); err != nil {
		return err
	}
	if g.ttl > 0 {
		return g.store.Expire(ctx, key, g.ttl)
	}
	return nil
}

// Remove drops a product id.
func (g *GuestStore) Remove(ctx context.Context, guestID, productID string) error {
	return g.store.SetRemove(ctx, g.store.GuestWishlistKey(guestID), productID)
}

// List returns the stored product ids.
func (g *GuestStore) List(ctx context.Context, guestID string) ([]string, error) {
	return g.store.SetMembers(ctx, g.store.GuestWishlistKey(guestID))
}

// Contains reports whether a product id is stored.
func (g *GuestStore) Contains(ctx context.Context, guestID, productID string) (bool, error) {
	return g.store.SetContains(ctx, g.store.GuestWishlistKey(guestID), productID)
}

// Clear removes the guest's wishlist entirely.
func (g *GuestStore) Clear(ctx context.Context, guestID string) error {
	return g.store.Del(ctx, g.store.GuestWishlistKey(guestID))
}
