package order

import (
	"errors"
	"maps"
	"time"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry was not
// created through NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New("HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry is one immutable audit record of an accepted change to an
// order's status, tracking number or cancellation. Entries are appended and
// never updated or deleted.
type HistoryEntry struct {
	id             kernel.UUID
	orderID        kernel.UUID
	status         Status
	previousStatus Status
	trackingNumber *string
	notes          *string
	changedBy      kernel.UUID
	changedByType  identity.ActorType
	metadata       map[string]any
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// HistoryRecord holds the fields of a HistoryEntry. ID and CreatedAt are
// assigned by NewHistoryEntry and only read by RestoreHistoryEntry.
type HistoryRecord struct {
	ID             kernel.UUID
	OrderID        kernel.UUID
	Status         Status
	PreviousStatus Status
	TrackingNumber *string
	Notes          *string
	ChangedBy      kernel.UUID
	ChangedByType  identity.ActorType
	Metadata       map[string]any
	CreatedAt      time.Time
}

// NewHistoryEntry creates a history entry for a change accepted at at.
//
// The entry gets a fresh ID and a UTC creation time; the ID and CreatedAt
// fields of r are ignored.
//
// Returns:
//   - the entry on success
//   - a joined validation error when the order id, either status, the actor
//     id or the actor type is invalid
//
// Example:
//
//	entry, err := order.NewHistoryEntry(order.HistoryRecord{
//	    OrderID:        o.ID(),
//	    Status:         order.Shipped,
//	    PreviousStatus: order.Processing,
//	    ChangedBy:      actor.ID(),
//	    ChangedByType:  actor.Role().ActorType(),
//	}, time.Now())
func NewHistoryEntry(r HistoryRecord, at time.Time) (*HistoryEntry, error) {
	r.ID = kernel.NewUUID()
	r.CreatedAt = at.UTC()
	return RestoreHistoryEntry(r)
}

// RestoreHistoryEntry rebuilds an entry read from storage, keeping its stored
// ID and CreatedAt. It applies the same field checks as NewHistoryEntry; the
// stored status pair is not checked against the transition table, which is
// the history auditor's job.
func RestoreHistoryEntry(r HistoryRecord) (*HistoryEntry, error) {
	_, typeErr := identity.ParseActorType(string(r.ChangedByType))
	if err := errors.Join(
		r.ID.Validate(),
		r.OrderID.Validate(),
		r.Status.Validate(),
		r.PreviousStatus.Validate(),
		r.ChangedBy.Validate(),
		typeErr,
	); err != nil {
		return nil, err
	}

	return &HistoryEntry{
		id:             r.ID,
		orderID:        r.OrderID,
		status:         r.Status,
		previousStatus: r.PreviousStatus,
		trackingNumber: r.TrackingNumber,
		notes:          r.Notes,
		changedBy:      r.ChangedBy,
		changedByType:  r.ChangedByType,
		metadata:       maps.Clone(r.Metadata),
		createdAt:      r.CreatedAt,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was built by NewHistoryEntry or
// RestoreHistoryEntry.
//
// Returns:
//   - nil for a constructed entry
//   - ErrHistoryEntryIsNotConstructed for a nil or zero-value entry
func (h *HistoryEntry) Validate() error {
	if h == nil {
		return ErrHistoryEntryIsNotConstructed
	}
	return h.guard.Validate(ErrHistoryEntryIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (h *HistoryEntry) ID() kernel.UUID {
	return h.id
}

// OrderID returns the order the entry belongs to.
func (h *HistoryEntry) OrderID() kernel.UUID {
	return h.orderID
}

// Status returns the status after the change.
func (h *HistoryEntry) Status() Status {
	return h.status
}

// PreviousStatus returns the status before the change. It equals Status for
// tracking-number updates.
func (h *HistoryEntry) PreviousStatus() Status {
	return h.previousStatus
}

// TrackingNumber returns the tracking number recorded with the change, if any.
func (h *HistoryEntry) TrackingNumber() *string {
	return h.trackingNumber
}

// Notes returns the admin notes recorded with the change, if any.
func (h *HistoryEntry) Notes() *string {
	return h.notes
}

// ChangedBy returns the id of the actor who made the change.
func (h *HistoryEntry) ChangedBy() kernel.UUID {
	return h.changedBy
}

// ChangedByType returns the role class of the actor who made the change.
func (h *HistoryEntry) ChangedByType() identity.ActorType {
	return h.changedByType
}

// Metadata returns a copy of the free-form details stored with the entry.
func (h *HistoryEntry) Metadata() map[string]any {
	return maps.Clone(h.metadata)
}

// CreatedAt returns the writer's clock reading when the change was accepted.
func (h *HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

// IsStatusChange reports whether the entry records a move between statuses
// rather than a tracking-number update.
func (h *HistoryEntry) IsStatusChange() bool {
	return h.status != h.previousStatus
}
