package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/rukkie/storefront/pkg/enums"
	pkgerrors "github.com/rukkie/storefront/pkg/errors"
	"github.com/rukkie/storefront/pkg/types"
)

const (
	checkoutResource          = "/api/checkout/"
	flutterwaveCreateResource = "/api/payments/flutterwave/create/"
	stripeCreateResource      = "/api/payments/stripe/create/"
)

// Gateway is the slice of the API client the orchestrator depends on.
type Gateway interface {
	Post(ctx context.Context, resource string, body any) (map[string]any, error)
}

// CartSource exposes the cart snapshot the empty-cart guard reads.
type CartSource interface {
	Items() []types.CartItem
}

// Outcome is the dispatch result of a checkout submission. Exactly one
// concrete type is returned per payment method so callers switch
// exhaustively instead of inspecting flags.
type Outcome interface {
	isOutcome()
}

// RedirectOutcome means the buyer must be sent to a provider-hosted page.
type RedirectOutcome struct {
	OrderID int64
	URL     string
}

// EmbeddedOutcome means the order exists and an in-page payment component
// takes over; the caller stays on the checkout view.
type EmbeddedOutcome struct {
	OrderID int64
}

// ImmediateOutcome means order creation alone completes the flow.
type ImmediateOutcome struct {
	OrderID int64
}

func (RedirectOutcome) isOutcome()  {}
func (EmbeddedOutcome) isOutcome()  {}
func (ImmediateOutcome) isOutcome() {}

// Service turns a cart plus address selection into a backend order and
// routes to the chosen payment path.
type Service struct {
	gateway  Gateway
	cart     CartSource
	validate *validator.Validate
	origin   string

	mu      sync.Mutex
	pending int64 // order awaiting embedded payment, zero when none
}

// NewService builds a checkout orchestrator. The origin is baked into the
// provider redirect URLs so the landing page can reconcile the return.
func NewService(gateway Gateway, cart CartSource, origin string) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart source required")
	}
	trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("public origin required")
	}
	return &Service{
		gateway:  gateway,
		cart:     cart,
		validate: validator.New(),
		origin:   trimmed,
	}, nil
}

// PendingOrder reports the order created for the embedded payment flow that
// has not been paid yet. At most one is tracked at a time.
func (s *Service) PendingOrder() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending, s.pending != 0
}

// SelectPaymentMethod records a payment method change. Moving away from the
// embedded provider abandons the tracked pending order.
func (s *Service) SelectPaymentMethod(method string) {
	provider, err := enums.ParsePaymentProvider(method)
	if err != nil || provider != enums.PaymentProviderPayPal {
		s.ClearPendingOrder()
	}
}

// ClearPendingOrder drops the tracked pending order, typically after the
// embedded payment is captured.
func (s *Service) ClearPendingOrder() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = 0
}

// Submit creates the order and dispatches on the payment method. Partial
// state on failure is left to the backend; no client-side rollback happens
// after the order is created.
func (s *Service) Submit(ctx context.Context, input Input) (Outcome, error) {
	if len(s.cart.Items()) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Your cart is empty.")
	}
	if provider, err := enums.ParsePaymentProvider(input.PaymentMethod); err == nil && provider == enums.PaymentProviderPayPal {
		if _, ok := s.PendingOrder(); ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "An order is already awaiting payment. Complete the card payment to finish checkout.")
		}
	}

	payload, err := input.buildPayload(s.validate)
	if err != nil {
		return nil, err
	}

	resp, err := s.gateway.Post(ctx, checkoutResource, payload)
	if err != nil {
		return nil, err
	}
	orderID := numericID(resp["id"])
	if orderID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeAPI, "Unable to create order.")
	}

	provider, parseErr := enums.ParsePaymentProvider(input.PaymentMethod)
	if parseErr != nil {
		return ImmediateOutcome{OrderID: orderID}, nil
	}

	switch provider {
	case enums.PaymentProviderFlutterwave:
		url, err := s.createRedirect(ctx, flutterwaveCreateResource, orderID, s.successReturnURL(provider, orderID), "link")
		if err != nil {
			return nil, err
		}
		return RedirectOutcome{OrderID: orderID, URL: url}, nil
	case enums.PaymentProviderStripe:
		url, err := s.createRedirect(ctx, stripeCreateResource, orderID, s.origin+"/", "checkout_url")
		if err != nil {
			return nil, err
		}
		return RedirectOutcome{OrderID: orderID, URL: url}, nil
	case enums.PaymentProviderPayPal:
		s.mu.Lock()
		s.pending = orderID
		s.mu.Unlock()
		return EmbeddedOutcome{OrderID: orderID}, nil
	default:
		return ImmediateOutcome{OrderID: orderID}, nil
	}
}

func (s *Service) createRedirect(ctx context.Context, resource string, orderID int64, redirectURL, linkField string) (string, error) {
	resp, err := s.gateway.Post(ctx, resource, map[string]any{
		"order_id":     orderID,
		"redirect_url": redirectURL,
	})
	if err != nil {
		return "", err
	}
	link, _ := resp[linkField].(string)
	if strings.TrimSpace(link) == "" {
		return "", pkgerrors.New(pkgerrors.CodeAPI, "The payment provider did not return a checkout link. Please try again.")
	}
	return link, nil
}

func (s *Service) successReturnURL(provider enums.PaymentProvider, orderID int64) string {
	return fmt.Sprintf("%s/?payment=success&provider=%s&order=%d", s.origin, provider, orderID)
}

func numericID(raw any) int64 {
	switch v := raw.(type) {
	case float64:
		return int64(v)
	case int:
		return int64(v)
	case int64:
		return v
	case string:
		if parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return parsed
		}
	}
	return 0
}
