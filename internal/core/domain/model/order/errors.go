package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStatus is returned when a proposed status is not registered.
	ErrInvalidStatus = errors.New("Invalid status")

	// ErrForbidden is returned when the actor may not perform the mutation,
	// either for lack of role or lack of ownership.
	ErrForbidden = errors.New("Forbidden")

	// ErrAlreadyCancelled is returned when an owner cancels an order that is
	// already in Cancelled status. It is reported instead of an illegal
	// transition so the client gets a specific message.
	ErrAlreadyCancelled = errors.New("Order is already cancelled")
)

// IllegalTransitionError names both ends of a transition missing from the table.
type IllegalTransitionError struct {
	From Status
	To   Status
}

// NewIllegalTransitionError reports that from -> to is not an edge of the
// transition table.
func NewIllegalTransitionError(from, to Status) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

// Error renders the message returned to API clients verbatim.
func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("Invalid status transition. Cannot change from %q to %q", e.From.String(), e.To.String())
}

// NotCancellableError is returned when an owner tries to cancel an order that
// has left the pending/confirmed window.
type NotCancellableError struct {
	Status Status
}

func (e *NotCancellableError) Error() string {
	return fmt.Sprintf(
		"Order cannot be cancelled. Current status: %s. Only orders with status %q or %q can be cancelled.",
		e.Status, Pending, Confirmed,
	)
}
