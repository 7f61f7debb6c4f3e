package commands

import (
	"errors"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand is an admin request to change an order's status, tracking
// number and/or notes. Nil fields are left untouched.
//
// Example:
//
//	status := "shipped"
//	tracking := "1Z999AA10123456784"
//	cmd, err := NewUpdateOrderCommand(orderID, &status, &tracking, nil, admin)
//	if err != nil {
//	    return err // order.ErrInvalidStatus for an unknown status
//	}
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	update  order.AdminUpdate
	actor   identity.Actor

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand validates the identifiers and parses status against
// the registry, so an unknown status fails before any lookup.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	status *string,
	trackingNumber *string,
	notes *string,
	actor identity.Actor,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		update: order.AdminUpdate{
			TrackingNumber: trackingNumber,
			Notes:          notes,
		},
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStatus(status),
		cmd.setActor(actor),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c UpdateOrderCommand) Update() order.AdminUpdate {
	return c.update
}

func (c UpdateOrderCommand) Actor() identity.Actor {
	return c.actor
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setStatus(raw *string) error {
	if raw == nil {
		return nil
	}
	status, err := order.ParseStatus(*raw)
	if err != nil {
		return err
	}
	c.update.Status = &status
	return nil
}

func (c *UpdateOrderCommand) setActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
