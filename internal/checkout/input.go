package checkout

import (
	"github.com/go-playground/validator/v10"

	"github.com/rukkie/storefront/pkg/enums"
	pkgerrors "github.com/rukkie/storefront/pkg/errors"
	"github.com/rukkie/storefront/pkg/types"
)

// Input is everything the orchestrator needs to create an order. Exactly one
// shipping representation is used, selected by ShippingMode; billing either
// mirrors shipping or references a saved address.
type Input struct {
	ContactEmail      string `validate:"required,email"`
	ShippingMode      enums.ShippingMode
	ShippingAddressID int64
	ShippingAddress   *types.Address
	BillingMode       enums.BillingMode
	BillingAddressID  int64
	PaymentMethod     string
}

// buildPayload applies the address selection rules and returns the order
// creation body. Validation failures are client-side errors raised before
// any network call.
func (i Input) buildPayload(validate *validator.Validate) (map[string]any, error) {
	if err := validate.Struct(i); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "A valid contact email is required.")
	}

	payload := map[string]any{
		"shipping_method": nil,
		"contact_email":   i.ContactEmail,
	}

	switch i.ShippingMode {
	case enums.ShippingModeSaved:
		if i.ShippingAddressID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Select a saved shipping address.")
		}
		payload["shipping_address_id"] = i.ShippingAddressID
	case enums.ShippingModeNew:
		if i.ShippingAddress == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Enter a shipping address.")
		}
		if err := validate.Struct(i.ShippingAddress); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Complete the shipping address fields.")
		}
		payload["shipping_address"] = *i.ShippingAddress
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Select a shipping address option.")
	}

	switch i.BillingMode {
	case enums.BillingModeSameAsShipping:
		if i.ShippingMode == enums.ShippingModeSaved {
			payload["billing_address_id"] = i.ShippingAddressID
		} else {
			payload["billing_address"] = *i.ShippingAddress
		}
	case enums.BillingModeSaved:
		if i.BillingAddressID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Select a saved billing address.")
		}
		payload["billing_address_id"] = i.BillingAddressID
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Select a billing address option.")
	}

	return payload, nil
}
