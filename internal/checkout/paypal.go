package checkout

import (
	"context"
	"fmt"
	"strings"

	pkgerrors "github.com/rukkie/storefront/pkg/errors"
)

const (
	paypalConfigResource  = "/api/paypal/config/"
	paypalCreateResource  = "/api/paypal/create-order/"
	paypalCaptureResource = "/api/paypal/capture-order/"

	defaultPayPalCurrency = "USD"
)

// PayPalGateway is the slice of the API client the embedded flow depends on.
type PayPalGateway interface {
	Get(ctx context.Context, resource string) (map[string]any, error)
	Post(ctx context.Context, resource string, body any) (map[string]any, error)
}

// CartClearer empties the cart once a capture succeeds.
type CartClearer interface {
	ClearCart(ctx context.Context) error
}

// PendingOrders is the pending-order slice of the orchestrator the embedded
// flow settles against.
type PendingOrders interface {
	ClearPendingOrder()
}

// PayPalConfig is the backend-provided configuration the in-page payment
// component is initialized with.
type PayPalConfig struct {
	ClientID string
	Currency string
}

// PayPalFlow drives the embedded payment path: the order already exists
// (EmbeddedOutcome), and the provider-side order is created and captured
// in-page instead of via redirect.
type PayPalFlow struct {
	gateway PayPalGateway
	cart    CartClearer
	pending PendingOrders
}

// NewPayPalFlow builds the embedded payment flow. The cart and pending-order
// tracker are settled on capture.
func NewPayPalFlow(gateway PayPalGateway, cart CartClearer, pending PendingOrders) (*PayPalFlow, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart required")
	}
	if pending == nil {
		return nil, fmt.Errorf("pending order tracker required")
	}
	return &PayPalFlow{gateway: gateway, cart: cart, pending: pending}, nil
}

// Config fetches the client id and currency. A blank client id means the
// backend has no credentials configured and the flow cannot start.
func (f *PayPalFlow) Config(ctx context.Context) (PayPalConfig, error) {
	resp, err := f.gateway.Get(ctx, paypalConfigResource)
	if err != nil {
		return PayPalConfig{}, err
	}
	clientID := strings.TrimSpace(stringField(resp, "client_id"))
	if clientID == "" {
		return PayPalConfig{}, pkgerrors.New(pkgerrors.CodeAPI, "PayPal is not configured.")
	}
	currency := strings.ToUpper(strings.TrimSpace(stringField(resp, "currency")))
	if currency == "" {
		currency = defaultPayPalCurrency
	}
	return PayPalConfig{ClientID: clientID, Currency: currency}, nil
}

// CreateOrder asks the backend to open a provider-side order for the tracked
// checkout order and returns its provider id.
func (f *PayPalFlow) CreateOrder(ctx context.Context, orderID int64, currency string) (string, error) {
	if currency == "" {
		currency = defaultPayPalCurrency
	}
	resp, err := f.gateway.Post(ctx, paypalCreateResource, map[string]any{
		"order_id": orderID,
		"currency": currency,
	})
	if err != nil {
		return "", err
	}
	providerOrderID := strings.TrimSpace(stringField(resp, "orderID"))
	if providerOrderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeAPI, "Unable to create PayPal order.")
	}
	return providerOrderID, nil
}

// CaptureOrder settles an approved provider order. On success the cart is
// cleared and the pending order stops being tracked.
func (f *PayPalFlow) CaptureOrder(ctx context.Context, orderID int64, providerOrderID string) (map[string]any, error) {
	providerOrderID = strings.TrimSpace(providerOrderID)
	if providerOrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Missing PayPal order ID.")
	}
	resp, err := f.gateway.Post(ctx, paypalCaptureResource, map[string]any{
		"order_id":        orderID,
		"paypal_order_id": providerOrderID,
	})
	if err != nil {
		return nil, err
	}
	if err := f.cart.ClearCart(ctx); err != nil {
		return nil, err
	}
	f.pending.ClearPendingOrder()
	return resp, nil
}

func stringField(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}
