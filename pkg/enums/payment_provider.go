package enums

import "fmt"

// PaymentProvider identifies the payment rail chosen at checkout.
type PaymentProvider string

const (
	PaymentProviderFlutterwave PaymentProvider = "flutterwave"
	PaymentProviderPayPal      PaymentProvider = "paypal"
	PaymentProviderStripe      PaymentProvider = "stripe"
)

var validPaymentProviders = []PaymentProvider{
	PaymentProviderFlutterwave,
	PaymentProviderPayPal,
	PaymentProviderStripe,
}

// String implements fmt.Stringer.
func (p PaymentProvider) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentProvider.
func (p PaymentProvider) IsValid() bool {
	for _, candidate := range validPaymentProviders {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsRedirect reports whether the provider requires a full navigation away to
// a hosted checkout page. PayPal renders in-page instead.
func (p PaymentProvider) IsRedirect() bool {
	return p == PaymentProviderFlutterwave || p == PaymentProviderStripe
}

// ParsePaymentProvider converts raw input into a PaymentProvider.
func ParsePaymentProvider(value string) (PaymentProvider, error) {
	for _, candidate := range validPaymentProviders {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment provider %q", value)
}
