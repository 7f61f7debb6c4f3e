package commands

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/order"
)

// PlaceOrderCommandHandler persists a new order in pending status with totals
// computed by the configured pricing.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    order.Pricing
	clock      func() time.Time
}

func NewPlaceOrderCommandHandler(uowFactory OrderUoWFactory, pricing order.Pricing) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		clock:      time.Now,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Owner().ID(),
		cmd.Items(),
		cmd.ShippingAddress(),
		cmd.PaymentInfo(),
		h.pricing,
		h.clock(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
