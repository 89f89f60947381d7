package reconcile

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rukkie/storefront/pkg/config"
	"github.com/rukkie/storefront/pkg/enums"
	"github.com/rukkie/storefront/pkg/metrics"
)

const (
	trackResource              = "/api/orders/track/"
	stripeConfirmResource      = "/api/payments/stripe/confirm/"
	flutterwaveConfirmResource = "/api/payments/flutterwave/confirm/"
	paypalConfirmResource      = "/api/payments/paypal/confirm/"
)

// Messages surfaced to the buyer for each reconciliation outcome.
const (
	MsgCancelled      = "Payment was cancelled. Your cart has been kept."
	MsgProviderFailed = "Flutterwave payment was not successful. Your cart has been kept."
	MsgConfirmed      = "Payment confirmed and cart updated."
	MsgConfirmPending = "Payment is being confirmed. Cart will be kept until payment is successful."
	MsgProcessing     = "Payment is being processed. Cart is kept until confirmation is complete."
	MsgCheckAccount   = "Payment return received. Check your order status in your account."
)

// Status classifies how a provider return was resolved.
type Status string

const (
	// StatusNone means no payment marker was present.
	StatusNone Status = "none"
	// StatusCancelled means the buyer backed out at the provider.
	StatusCancelled Status = "cancelled"
	// StatusFailed means the provider reported a non-successful payment.
	StatusFailed Status = "failed"
	// StatusSkipped means the markers were malformed; the URL is cleaned
	// without touching the cart.
	StatusSkipped Status = "skipped"
	// StatusConfirmed means polling observed a paid order and the cart was
	// refreshed.
	StatusConfirmed Status = "confirmed"
	// StatusProcessing means polling exhausted its attempts; the cart is
	// deliberately kept.
	StatusProcessing Status = "processing"
	// StatusUnknown means confirm or polling hit an unexpected failure.
	StatusUnknown Status = "unknown"
)

// Result is the terminal state of one reconciliation pass.
type Result struct {
	Status        Status
	Message       string
	ConfirmFailed bool
}

// Gateway is the slice of the API client the flow depends on.
type Gateway interface {
	Get(ctx context.Context, resource string) (map[string]any, error)
	Post(ctx context.Context, resource string, body any) (map[string]any, error)
}

// CartRefresher re-syncs the cart snapshot after a confirmed payment.
type CartRefresher interface {
	Refresh(ctx context.Context) error
}

// Flow interprets a provider return and decides the cart's fate. Payment
// confirmation may land asynchronously via a backend webhook, so the order
// status is polled for a bounded window instead of checked once.
type Flow struct {
	gateway  Gateway
	cart     CartRefresher
	metrics  *metrics.ReconcileMetrics
	attempts int
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures optional flow behavior.
type Option func(*Flow)

// WithMetrics attaches reconciliation outcome metrics.
func WithMetrics(m *metrics.ReconcileMetrics) Option {
	return func(f *Flow) {
		f.metrics = m
	}
}

// WithSleep overrides the pause between poll attempts.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(f *Flow) {
		if sleep != nil {
			f.sleep = sleep
		}
	}
}

// NewFlow builds a reconciliation flow bounded by the configured poll policy.
func NewFlow(gateway Gateway, cart CartRefresher, cfg config.ReconcileConfig, opts ...Option) (*Flow, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway required")
	}
	if cart == nil {
		return nil, fmt.Errorf("cart refresher required")
	}
	if cfg.PollAttempts < 1 {
		return nil, fmt.Errorf("poll attempts must be at least 1")
	}
	flow := &Flow{
		gateway:  gateway,
		cart:     cart,
		attempts: cfg.PollAttempts,
		interval: cfg.PollInterval,
		sleep:    sleepWithContext,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(flow)
		}
	}
	return flow, nil
}

// Process runs the decision ladder over the parsed markers. Whatever the
// result, the caller must strip the markers from the URL afterwards.
func (f *Flow) Process(ctx context.Context, ret Return) Result {
	result := f.process(ctx, ret)
	if result.Status != StatusNone {
		f.metrics.IncOutcome(ret.Provider, string(result.Status))
	}
	return result
}

func (f *Flow) process(ctx context.Context, ret Return) Result {
	if !ret.Present() {
		return Result{Status: StatusNone}
	}
	if ret.Payment == string(enums.PaymentStateCancelled) {
		return Result{Status: StatusCancelled, Message: MsgCancelled}
	}
	if ret.Provider == string(enums.PaymentProviderFlutterwave) &&
		ret.FlutterwaveStatus != "" && !flutterwaveSucceeded(ret.FlutterwaveStatus) {
		return Result{Status: StatusFailed, Message: MsgProviderFailed}
	}
	if ret.Payment != string(enums.PaymentStateSuccess) || ret.OrderID == "" {
		return Result{Status: StatusSkipped}
	}

	// A failed confirm is tolerated; the backend webhook may already have
	// marked the order paid.
	confirmFailed := f.confirm(ctx, ret)

	paid, err := f.waitUntilPaid(ctx, ret.OrderID)
	if err != nil {
		return Result{Status: StatusUnknown, Message: MsgCheckAccount, ConfirmFailed: confirmFailed}
	}
	if paid {
		if err := f.cart.Refresh(ctx); err != nil {
			return Result{Status: StatusUnknown, Message: MsgCheckAccount, ConfirmFailed: confirmFailed}
		}
		return Result{Status: StatusConfirmed, Message: MsgConfirmed, ConfirmFailed: confirmFailed}
	}
	message := MsgProcessing
	if confirmFailed {
		message = MsgConfirmPending
	}
	return Result{Status: StatusProcessing, Message: message, ConfirmFailed: confirmFailed}
}

func (f *Flow) confirm(ctx context.Context, ret Return) bool {
	var (
		resource string
		body     map[string]any
	)
	switch ret.Provider {
	case string(enums.PaymentProviderStripe):
		if ret.StripeSessionID == "" {
			return false
		}
		resource = stripeConfirmResource
		body = map[string]any{
			"order_id":   ret.OrderID,
			"session_id": ret.StripeSessionID,
		}
	case string(enums.PaymentProviderFlutterwave):
		resource = flutterwaveConfirmResource
		body = map[string]any{
			"order_id":       ret.OrderID,
			"transaction_id": ret.FlutterwaveTransactionID,
			"tx_ref":         ret.FlutterwaveTxRef,
			"status":         ret.FlutterwaveStatus,
		}
	case string(enums.PaymentProviderPayPal):
		resource = paypalConfirmResource
		body = map[string]any{
			"order_id":   ret.OrderID,
			"payment_id": ret.PayPalPaymentID,
			"payer_id":   ret.PayPalPayerID,
		}
	default:
		return false
	}
	if _, err := f.gateway.Post(ctx, resource, body); err != nil {
		return true
	}
	return false
}

func (f *Flow) waitUntilPaid(ctx context.Context, orderID string) (bool, error) {
	resource := trackResource + "?order_id=" + url.QueryEscape(orderID)
	for attempt := 0; attempt < f.attempts; attempt++ {
		if attempt > 0 {
			if err := f.sleep(ctx, f.interval); err != nil {
				return false, err
			}
		}
		payload, err := f.gateway.Get(ctx, resource)
		if err != nil {
			return false, err
		}
		raw, _ := payload["status"].(string)
		status, err := enums.ParseOrderStatus(strings.ToLower(raw))
		if err == nil && status.IsPaid() {
			return true, nil
		}
	}
	return false, nil
}

func flutterwaveSucceeded(status string) bool {
	return status == "successful" || status == "completed"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
