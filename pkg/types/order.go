package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rukkie/storefront/pkg/enums"
)

// Order is the backend order as read by the client. Only status and the
// transactions sequence change after creation, and only server-side.
type Order struct {
	ID              int64             `json:"id"`
	OrderNumber     string            `json:"order_number"`
	Status          enums.OrderStatus `json:"status"`
	ShippingAddress *AddressRecord    `json:"shipping_address,omitempty"`
	BillingAddress  *AddressRecord    `json:"billing_address,omitempty"`
	Total           decimal.Decimal   `json:"total"`
	Transactions    []PaymentRecord   `json:"transactions,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// PaymentRecord is one provider transaction attached to an order.
// Append-only from the client's perspective.
type PaymentRecord struct {
	ID                    int64                 `json:"id"`
	Provider              enums.PaymentProvider `json:"provider"`
	ProviderTransactionID string                `json:"provider_transaction_id"`
	Amount                decimal.Decimal       `json:"amount"`
	Success               bool                  `json:"success"`
	CreatedAt             time.Time             `json:"created_at"`
}

// OrderTrack is the projection returned by the order tracking endpoint.
type OrderTrack struct {
	Status enums.OrderStatus `json:"status"`
	Items  []CartItem        `json:"items"`
}
