package order

import (
	"errors"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	minQuantity = 1
	maxQuantity = 999
)

// ErrLineItemIsNotConstructed is returned for a LineItem not built by NewLineItem.
var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a point-in-time snapshot of a purchased product. It does not
// follow later catalog edits.
type LineItem struct {
	productID kernel.UUID
	name      string
	unitPrice decimal.Decimal
	quantity  int
	image     string

	guard guard.ConstructorGuard
}

// NewLineItem snapshots a product into an order line.
//
// Parameters:
//   - productID: catalog id of the product
//   - name: product name at purchase time, trimmed and required
//   - unitPrice: price per unit, must not be negative
//   - quantity: between 1 and 999
//   - image: optional image reference
//
// Returns a joined error naming every invalid field.
func NewLineItem(productID kernel.UUID, name string, unitPrice decimal.Decimal, quantity int, image string) (LineItem, error) {
	item := LineItem{
		image: strings.TrimSpace(image),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return LineItem{}, err
	}

	return item, nil
}

// Validate ensures the item was built by NewLineItem.
func (i LineItem) Validate() error {
	return i.guard.Validate(ErrLineItemIsNotConstructed)
}

// ProductID returns the catalog id of the purchased product.
func (i LineItem) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name at purchase time.
func (i LineItem) Name() string {
	return i.name
}

// UnitPrice returns the price per unit at purchase time.
func (i LineItem) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Quantity returns the number of units purchased.
func (i LineItem) Quantity() int {
	return i.quantity
}

// Image returns the image reference, or an empty string.
func (i LineItem) Image() string {
	return i.image
}

// LineTotal is unit price times quantity.
func (i LineItem) LineTotal() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

func (i *LineItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	i.productID = id
	return nil
}

func (i *LineItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsOutOfRangeError("unitPrice", price.String(), 0, "unbounded")
	}
	i.unitPrice = price
	return nil
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < minQuantity || quantity > maxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, minQuantity, maxQuantity)
	}
	i.quantity = quantity
	return nil
}
