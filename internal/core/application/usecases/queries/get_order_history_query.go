package queries

import (
	"errors"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
	"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
)

// GetOrderHistoryQuery lists an order's audit trail, oldest first.
type GetOrderHistoryQuery struct {
	orderID kernel.UUID
	actor   identity.Actor

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(orderID kernel.UUID, actor identity.Actor) (GetOrderHistoryQuery, error) {
	if err := errors.Join(orderID.Validate(), actor.Validate()); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) OrderID() kernel.UUID  { return q.orderID }
func (q GetOrderHistoryQuery) Actor() identity.Actor { return q.actor }
