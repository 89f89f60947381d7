package account

import (
	"context"
	"fmt"

	"github.com/rukkie/storefront/pkg/types"
)

const (
	addressesResource = "/api/account/addresses/"
	ordersResource    = "/api/orders/"
)

// Gateway is the slice of the API client the account reads through.
type Gateway interface {
	GetInto(ctx context.Context, resource string, dest any) error
}

// Service reads account-owned resources. These are prefetches for forms;
// callers may fall back to an empty list when a call fails.
type Service struct {
	gateway Gateway
}

// NewService builds an account reader.
func NewService(gateway Gateway) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	return &Service{gateway: gateway}, nil
}

// ListAddresses returns the saved addresses available at checkout.
func (s *Service) ListAddresses(ctx context.Context) ([]types.AddressRecord, error) {
	var addresses []types.AddressRecord
	if err := s.gateway.GetInto(ctx, addressesResource, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// ListOrders returns the account's order history.
func (s *Service) ListOrders(ctx context.Context) ([]types.Order, error) {
	var orders []types.Order
	if err := s.gateway.GetInto(ctx, ordersResource, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
