package enums

import "fmt"

// ShippingMode selects between a saved address reference and a freshly
// entered inline address.
type ShippingMode string

const (
	ShippingModeSaved ShippingMode = "saved"
	ShippingModeNew   ShippingMode = "new"
)

// IsValid reports whether the value is a known ShippingMode.
func (m ShippingMode) IsValid() bool {
	return m == ShippingModeSaved || m == ShippingModeNew
}

// String implements fmt.Stringer.
func (m ShippingMode) String() string {
	return string(m)
}

// ParseShippingMode converts raw input into a ShippingMode.
func ParseShippingMode(value string) (ShippingMode, error) {
	switch ShippingMode(value) {
	case ShippingModeSaved, ShippingModeNew:
		return ShippingMode(value), nil
	}
	return "", fmt.Errorf("invalid shipping mode %q", value)
}

// BillingMode selects how the billing address is derived.
type BillingMode string

const (
	BillingModeSameAsShipping BillingMode = "same_as_shipping"
	BillingModeSaved          BillingMode = "saved"
)

// IsValid reports whether the value is a known BillingMode.
func (m BillingMode) IsValid() bool {
	return m == BillingModeSameAsShipping || m == BillingModeSaved
}

// String implements fmt.Stringer.
func (m BillingMode) String() string {
	return string(m)
}
