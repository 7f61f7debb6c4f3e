package order

import (
	"fmt"
	"slices"

	"storefront/internal/pkg/errs"
)

// Status is the order's position in its fulfillment lifecycle.
//
// The happy path is
//
//	pending -> confirmed -> processing -> shipped -> out_for_delivery -> delivered
//
// with on_hold as a parking state before shipping, payment_failed as a detour
// from pending, and returned/refunded after delivery. refunded and cancelled are
// terminal. The authoritative edge list is the transitions table.
type Status int

const (
	// Unknown catches uninitialized values and is never persisted.
	Unknown Status = iota
	Pending
	Confirmed
	OnHold
	Processing
	Shipped
	OutForDelivery
	Delivered
	Returned
	Refunded
	Cancelled
	PaymentFailed
)

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "pending",
		Confirmed:      "confirmed",
		OnHold:         "on_hold",
		Processing:     "processing",
		Shipped:        "shipped",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Returned:       "returned",
		Refunded:       "refunded",
		Cancelled:      "cancelled",
		PaymentFailed:  "payment_failed",
	}
}

// AllStatuses returns every registered status in declaration order.
func AllStatuses() []Status {
	out := make([]Status, 0, len(getValidStatusStrings()))
	for s := range getValidStatusStrings() {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// ParseStatus converts the persisted or wire representation ("out_for_delivery")
// into a Status. Unregistered values fail with ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %w", ErrInvalidStatus,
		errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s)))
}

// Validate reports whether s is a member of the registry.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name stored in the orders.status column.
func (s Status) String() string {
	if str, ok := getValidStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}
