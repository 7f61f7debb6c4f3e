package commands

import (
	"errors"
	"fmt"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderItem is the checkout's view of one cart line.
type PlaceOrderItem struct {
	ProductID kernel.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Image     string
}

// PlaceOrderCommand records a checkout whose payment the processor has
// already handled. The caller becomes the order's owner.
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	owner   identity.Actor
	items   []order.LineItem
	address order.ShippingAddress
	payment order.PaymentInfo

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	orderID kernel.UUID,
	owner identity.Actor,
	items []PlaceOrderItem,
	address order.ShippingAddress,
	payment order.PaymentInfo,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		address: address,
		payment: payment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		owner.Validate(),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.owner = owner
	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID                   { return c.orderID }
func (c PlaceOrderCommand) Owner() identity.Actor                  { return c.owner }
func (c PlaceOrderCommand) Items() []order.LineItem                { return c.items }
func (c PlaceOrderCommand) ShippingAddress() order.ShippingAddress { return c.address }
func (c PlaceOrderCommand) PaymentInfo() order.PaymentInfo         { return c.payment }

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	lineItems := make([]order.LineItem, 0, len(items))
	for i, it := range items {
		li, err := order.NewLineItem(it.ProductID, it.Name, it.UnitPrice, it.Quantity, it.Image)
		if err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
		lineItems = append(lineItems, li)
	}

	c.items = lineItems
	return nil
}
