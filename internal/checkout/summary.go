package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rukkie/storefront/pkg/config"
)

// Pricing holds the storefront's display-side pricing policy. The backend
// computes the charged amounts independently; these figures feed the order
// summary shown before submission.
type Pricing struct {
	freeShippingOver decimal.Decimal
	standardShipping decimal.Decimal
	taxRate          decimal.Decimal
}

// NewPricing parses the configured policy values.
func NewPricing(cfg config.CheckoutConfig) (Pricing, error) {
	freeOver, err := decimal.NewFromString(cfg.FreeShippingOver)
	if err != nil {
		return Pricing{}, fmt.Errorf("parsing free shipping threshold: %w", err)
	}
	standard, err := decimal.NewFromString(cfg.StandardShipping)
	if err != nil {
		return Pricing{}, fmt.Errorf("parsing standard shipping rate: %w", err)
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return Pricing{}, fmt.Errorf("parsing tax rate: %w", err)
	}
	return Pricing{
		freeShippingOver: freeOver,
		standardShipping: standard,
		taxRate:          taxRate,
	}, nil
}

// Summary is the pre-submission order breakdown.
type Summary struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Summarize computes the breakdown for a subtotal. Shipping is free strictly
// above the threshold; tax applies to the subtotal only.
func (p Pricing) Summarize(subtotal decimal.Decimal) Summary {
	shipping := p.standardShipping
	if subtotal.GreaterThan(p.freeShippingOver) {
		shipping = decimal.Zero
	}
	tax := subtotal.Mul(p.taxRate)
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal.Add(shipping).Add(tax),
	}
}
