package reconcile

import (
	"net/url"
	"strings"
)

// Return carries the query markers a payment provider appends when sending
// the buyer back to the storefront. Alternate spellings some providers use
// are folded into the canonical fields at parse time.
type Return struct {
	Payment                  string
	Provider                 string
	OrderID                  string
	StripeSessionID          string
	FlutterwaveStatus        string
	FlutterwaveTransactionID string
	FlutterwaveTxRef         string
	PayPalPaymentID          string
	PayPalPayerID            string
}

// Present reports whether the query carried a payment marker at all.
func (r Return) Present() bool {
	return r.Payment != ""
}

// ParseReturn reads the provider return markers from a query string.
func ParseReturn(query url.Values) Return {
	return Return{
		Payment:                  strings.ToLower(query.Get("payment")),
		Provider:                 strings.ToLower(query.Get("provider")),
		OrderID:                  query.Get("order"),
		StripeSessionID:          query.Get("session_id"),
		FlutterwaveStatus:        strings.ToLower(query.Get("status")),
		FlutterwaveTransactionID: firstOf(query, "transaction_id", "transactionId"),
		FlutterwaveTxRef:         query.Get("tx_ref"),
		PayPalPaymentID:          firstOf(query, "payment_id", "paymentId"),
		PayPalPayerID:            firstOf(query, "payer_id", "PayerID"),
	}
}

func firstOf(query url.Values, keys ...string) string {
	for _, key := range keys {
		if value := query.Get(key); value != "" {
			return value
		}
	}
	return ""
}

var markerParams = []string{
	"payment",
	"provider",
	"order",
	"session_id",
	"status",
	"transaction_id",
	"transactionId",
	"tx_ref",
	"payment_id",
	"paymentId",
	"payer_id",
	"PayerID",
}

// StripMarkers removes the payment markers from a query string so a reload
// of the resulting URL cannot re-trigger reconciliation. Applying it to an
// already-stripped query is a no-op.
func StripMarkers(query url.Values) url.Values {
	cleaned := url.Values{}
	for key, values := range query {
		if isMarker(key) {
			continue
		}
		cleaned[key] = values
	}
	return cleaned
}

func isMarker(key string) bool {
	for _, marker := range markerParams {
		if key == marker {
			return true
		}
	}
	return false
}
