package identity

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

// ErrActorIsNotConstructed is returned for an Actor not built by NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated caller performing an operation.
type Actor struct {
	id    kernel.UUID
	email string
	role  Role

	guard guard.ConstructorGuard
}

// NewActor builds the caller from verified token claims. The id and role are
// required; the email is optional and trimmed.
func NewActor(id kernel.UUID, email string, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:    id,
		email: strings.TrimSpace(email),
		role:  role,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the actor was built by NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the caller's user id.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Email returns the caller's email, or an empty string.
func (a Actor) Email() string {
	return a.email
}

// Role returns the caller's role.
func (a Actor) Role() Role {
	return a.role
}

// Contact identifies the actor in audit metadata: the email, or the id when no
// email was supplied by the identity provider.
func (a Actor) Contact() string {
	if a.email != "" {
		return a.email
	}
	return a.id.String()
}
