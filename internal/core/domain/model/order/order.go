package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// DefaultCancellationReason is stored when an owner cancels without a reason.
const DefaultCancellationReason = "Cancelled by user"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a customer's placed purchase.
//
// Invariants:
//   - status is always a registered Status
//   - status only changes through ApplyAdminUpdate or Cancel, both of which
//     run ValidateTransition first
//   - line items, totals, shipping address and payment info are fixed at placement
//   - cancellation fields are set only by Cancel
type Order struct {
	id      kernel.UUID
	number  string
	userID  kernel.UUID
	status  Status
	items   []LineItem
	totals  Totals
	address ShippingAddress
	payment PaymentInfo

	trackingNumber *string
	notes          *string

	cancelledBy        *kernel.UUID
	cancelledAt        *time.Time
	cancellationReason *string

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder places a new order in Pending status. Totals are computed once from
// items using pricing and never recomputed.
//
// Example:
//
//	item, _ := order.NewLineItem(productID, "Desk Lamp", decimal.RequireFromString("24.50"), 2, "")
//	o, err := order.NewOrder(kernel.NewUUID(), userID, []order.LineItem{item}, address, payment, pricing, time.Now())
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []LineItem,
	address ShippingAddress,
	payment PaymentInfo,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		validateUserID(userID),
		validateItems(items),
		address.Validate(),
		payment.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}

	now = now.UTC()
	return &Order{
		id:        id,
		number:    fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), id.Short()),
		userID:    userID,
		status:    Pending,
		items:     slices.Clone(items),
		totals:    pricing.Quote(items),
		address:   address,
		payment:   payment,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Snapshot is the full persisted state of an Order.
type Snapshot struct {
	ID                 kernel.UUID
	Number             string
	UserID             kernel.UUID
	Status             Status
	Items              []LineItem
	Totals             Totals
	ShippingAddress    ShippingAddress
	PaymentInfo        PaymentInfo
	TrackingNumber     *string
	Notes              *string
	CancelledBy        *kernel.UUID
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreOrder rebuilds an Order from storage. Only structural checks are
// applied; totals are trusted as stored.
func RestoreOrder(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		validateUserID(s.UserID),
		s.Status.Validate(),
		validateNumber(s.Number),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:                 s.ID,
		number:             s.Number,
		userID:             s.UserID,
		status:             s.Status,
		items:              slices.Clone(s.Items),
		totals:             s.Totals,
		address:            s.ShippingAddress,
		payment:            s.PaymentInfo,
		trackingNumber:     s.TrackingNumber,
		notes:              s.Notes,
		cancelledBy:        s.CancelledBy,
		cancelledAt:        s.CancelledAt,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// Snapshot exports the current state for persistence and read models.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:                 o.id,
		Number:             o.number,
		UserID:             o.userID,
		Status:             o.status,
		Items:              slices.Clone(o.items),
		Totals:             o.totals,
		ShippingAddress:    o.address,
		PaymentInfo:        o.payment,
		TrackingNumber:     o.trackingNumber,
		Notes:              o.notes,
		CancelledBy:        o.cancelledBy,
		CancelledAt:        o.cancelledAt,
		CancellationReason: o.cancellationReason,
		CreatedAt:          o.createdAt,
		UpdatedAt:          o.updatedAt,
	}
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number, e.g. ORD-20260118-1A2B3C4D.
func (o *Order) Number() string {
	return o.number
}

// UserID returns the id of the customer who placed the order.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the purchased line items.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Totals returns the amounts fixed at placement.
func (o *Order) Totals() Totals {
	return o.totals
}

// ShippingAddress returns the address captured at placement.
func (o *Order) ShippingAddress() ShippingAddress {
	return o.address
}

// PaymentInfo returns the payment details captured at placement.
func (o *Order) PaymentInfo() PaymentInfo {
	return o.payment
}

// TrackingNumber returns the carrier tracking number.
// Returns nil until an admin sets one.
func (o *Order) TrackingNumber() *string {
	return o.trackingNumber
}

// Notes returns the admin notes, or nil when there are none.
func (o *Order) Notes() *string {
	return o.notes
}

// CancelledBy returns the id of the user who cancelled the order.
// Returns nil unless the order was cancelled through Cancel.
func (o *Order) CancelledBy() *kernel.UUID {
	return o.cancelledBy
}

// CancelledAt returns when the owner cancelled the order, or nil.
func (o *Order) CancelledAt() *time.Time {
	return o.cancelledAt
}

// CancellationReason returns the owner's reason, or nil when not cancelled.
func (o *Order) CancellationReason() *string {
	return o.cancellationReason
}

// CreatedAt returns the placement time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last accepted mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsOwnedBy reports whether userID placed the order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.userID.IsEqual(userID)
}

// AdminUpdate carries the optional fields of an admin mutation. A nil field is
// left untouched; an empty string for TrackingNumber or Notes clears the value.
type AdminUpdate struct {
	Status         *Status
	TrackingNumber *string
	Notes          *string
}

// Change describes the effect of a successful mutation.
type Change struct {
	PreviousStatus        Status
	Status                Status
	StatusChanged         bool
	TrackingNumberChanged bool
	NotesChanged          bool
}

// ApplyAdminUpdate validates and applies update on behalf of an order manager.
// The status transition is checked before anything is written, so a rejected
// update leaves the order untouched.
func (o *Order) ApplyAdminUpdate(update AdminUpdate, actor identity.Actor, at time.Time) (Change, error) {
	if err := actor.Validate(); err != nil {
		return Change{}, err
	}
	if !actor.Role().CanManageOrders() {
		return Change{}, ErrForbidden
	}

	change := Change{PreviousStatus: o.status, Status: o.status}

	if update.Status != nil {
		if err := ValidateTransition(o.status, *update.Status, actor.Role()); err != nil {
			return Change{}, err
		}
		change.Status = *update.Status
		change.StatusChanged = change.Status != change.PreviousStatus
	}

	var tracking, notes *string
	if update.TrackingNumber != nil {
		tracking = normalize(*update.TrackingNumber)
		change.TrackingNumberChanged = !equalOptional(o.trackingNumber, tracking)
	}
	if update.Notes != nil {
		notes = normalize(*update.Notes)
		change.NotesChanged = !equalOptional(o.notes, notes)
	}

	o.status = change.Status
	if update.TrackingNumber != nil {
		o.trackingNumber = tracking
	}
	if update.Notes != nil {
		o.notes = notes
	}
	o.updatedAt = at.UTC()

	return change, nil
}

// Cancel moves the order to Cancelled on behalf of its owner. Only pending and
// confirmed orders qualify; a blank reason becomes DefaultCancellationReason.
func (o *Order) Cancel(actor identity.Actor, reason string, at time.Time) (Change, error) {
	if err := actor.Validate(); err != nil {
		return Change{}, err
	}
	if !o.IsOwnedBy(actor.ID()) {
		return Change{}, ErrForbidden
	}
	if err := ValidateTransition(o.status, Cancelled, identity.RoleUser); err != nil {
		return Change{}, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultCancellationReason
	}

	at = at.UTC()
	cancelledBy := actor.ID()
	change := Change{PreviousStatus: o.status, Status: Cancelled, StatusChanged: true}

	o.status = Cancelled
	o.cancelledBy = &cancelledBy
	o.cancelledAt = &at
	o.cancellationReason = &reason
	o.updatedAt = at

	return change, nil
}

func validateUserID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("userId", err)
	}
	return nil
}

func validateNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	return nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// normalize maps a blank value to nil and keeps anything else as given.
func normalize(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
