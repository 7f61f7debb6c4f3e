// Package identity models the caller of an operation: who they are and which
// role the identity provider granted them.
package identity

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
)

// Role is the closed set of roles the identity provider can assign.
type Role int

const (
	// RoleUnknown catches uninitialized values and unknown claims.
	RoleUnknown Role = iota
	RoleUser
	RoleAdmin
	RoleSuperadmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUser:       "user",
		RoleAdmin:      "admin",
		RoleSuperadmin: "superadmin",
	}
}

// ParseRole maps the identity provider's role claim onto Role.
// Matching is case-insensitive; anything else is rejected.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for r, str := range getRoleStrings() {
		if str == needle {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Validate rejects RoleUnknown and any value outside the role set.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the claim spelling of the role, or "unknown".
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// CanManageOrders reports whether the role may use the admin order mutation path.
func (r Role) CanManageOrders() bool {
	switch r {
	case RoleAdmin, RoleSuperadmin:
		return true
	case RoleUser, RoleUnknown:
		return false
	}
	return false
}

// ActorType is the role class stored in changed_by_type on history entries.
type ActorType string

const (
	// Values of order_history.changed_by_type.
	ActorTypeUser       ActorType = "user"
	ActorTypeAdmin      ActorType = "admin"
	ActorTypeSuperadmin ActorType = "superadmin"
)

// ActorType returns superadmin only for RoleSuperadmin; other order managers
// are recorded as admin and everyone else as user.
func (r Role) ActorType() ActorType {
	switch r {
	case RoleSuperadmin:
		return ActorTypeSuperadmin
	case RoleAdmin:
		return ActorTypeAdmin
	case RoleUser, RoleUnknown:
		return ActorTypeUser
	}
	return ActorTypeUser
}

// ParseActorType converts a stored changed_by_type value back into an
// ActorType.
//
// Returns:
//   - the ActorType for "user", "admin" or "superadmin"
//   - a ValueIsInvalidError for anything else, matching is exact
func ParseActorType(s string) (ActorType, error) {
	switch t := ActorType(s); t {
	case ActorTypeUser, ActorTypeAdmin, ActorTypeSuperadmin:
		return t, nil
	}
	return "", errs.NewValueIsInvalidErrorWithCause("changed_by_type", fmt.Errorf("%q is not a known actor type", s))
}
