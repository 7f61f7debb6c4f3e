package order

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
)

// ShippingAddress is copied onto the order at placement time.
type ShippingAddress struct {
	Name    string
	Street  string
	City    string
	State   string
	Zip     string
	Country string
	Phone   string
	Email   string
}

// Validate requires name, street, city, zip and country. State, phone and
// email are optional.
func (a ShippingAddress) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"shippingAddress.name", a.Name},
		{"shippingAddress.street", a.Street},
		{"shippingAddress.city", a.City},
		{"shippingAddress.zip", a.Zip},
		{"shippingAddress.country", a.Country},
	}

	var err error
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError(f.name))
		}
	}
	return err
}

// PaymentInfo records what the payment processor reported when the order was
// placed. It is written once and never changed here.
type PaymentInfo struct {
	Method        string
	TransactionID string
	Status        string
}

// Validate requires a payment method.
func (p PaymentInfo) Validate() error {
	if strings.TrimSpace(p.Method) == "" {
		return errs.NewValueIsRequiredError("paymentInfo.method")
	}
	return nil
}
