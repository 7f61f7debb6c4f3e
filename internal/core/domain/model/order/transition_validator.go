package order

import (
	"fmt"

	"storefront/internal/core/domain/model/identity"
)

// userCancellable is the narrower set of states an owner may cancel from.
var userCancellable = map[Status]bool{
	Pending:   true,
	Confirmed: true,
}

// ValidateTransition decides whether role may move an order from current to
// proposed. It has no side effects.
//
// Order managers (admin, superadmin) may take any edge of the transition table,
// and re-submitting the current status is accepted as a no-op. Users may only
// cancel, and only from pending or confirmed.
func ValidateTransition(current, proposed Status, role identity.Role) error {
	if err := proposed.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStatus, err)
	}

	switch role {
	case identity.RoleAdmin, identity.RoleSuperadmin:
		return validateManagerTransition(current, proposed)
	case identity.RoleUser:
		return validateOwnerTransition(current, proposed)
	case identity.RoleUnknown:
		return ErrForbidden
	}

	return ErrForbidden
}

func validateManagerTransition(current, proposed Status) error {
	if current == proposed {
		return nil
	}
	if !current.CanTransitionTo(proposed) {
		return NewIllegalTransitionError(current, proposed)
	}
	return nil
}

func validateOwnerTransition(current, proposed Status) error {
	if proposed != Cancelled {
		return ErrForbidden
	}
	if current == Cancelled {
		return ErrAlreadyCancelled
	}
	if !userCancellable[current] {
		return &NotCancellableError{Status: current}
	}
	if !current.CanTransitionTo(proposed) {
		return NewIllegalTransitionError(current, proposed)
	}
	return nil
}
