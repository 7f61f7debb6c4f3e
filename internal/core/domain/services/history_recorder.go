package services

import (
	"time"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/order"
)

// Metadata keys and action values written to order_history.metadata.
const (
	MetadataAction             = "action"
	MetadataUpdatedBy          = "updated_by"
	MetadataAdminUpdate        = "admin_update"
	MetadataCancelledBy        = "cancelled_by"
	MetadataCancellationReason = "cancellation_reason"

	ActionStatusUpdated         = "status_updated"
	ActionTrackingNumberUpdated = "tracking_number_updated"
	ActionUserCancellation      = "user_cancellation"
)

// HistoryRecorder builds the audit entry for an accepted mutation. It does not
// persist anything; callers append the entry in the same unit of work as the
// order update.
type HistoryRecorder struct{}

func NewHistoryRecorder() HistoryRecorder {
	return HistoryRecorder{}
}

// ForAdminUpdate returns the entry for an admin mutation, or nil when the
// change only touched notes (or nothing). A status change takes precedence
// over a tracking-number change made in the same call.
func (HistoryRecorder) ForAdminUpdate(
	o *order.Order,
	change order.Change,
	actor identity.Actor,
	at time.Time,
) (*order.HistoryEntry, error) {
	switch {
	case change.StatusChanged:
		return order.NewHistoryEntry(order.HistoryRecord{
			OrderID:        o.ID(),
			Status:         change.Status,
			PreviousStatus: change.PreviousStatus,
			TrackingNumber: o.TrackingNumber(),
			Notes:          o.Notes(),
			ChangedBy:      actor.ID(),
			ChangedByType:  actor.Role().ActorType(),
			Metadata: map[string]any{
				MetadataAction:      ActionStatusUpdated,
				MetadataUpdatedBy:   actor.Contact(),
				MetadataAdminUpdate: true,
			},
		}, at)
	case change.TrackingNumberChanged:
		return order.NewHistoryEntry(order.HistoryRecord{
			OrderID:        o.ID(),
			Status:         o.Status(),
			PreviousStatus: o.Status(),
			TrackingNumber: o.TrackingNumber(),
			ChangedBy:      actor.ID(),
			ChangedByType:  actor.Role().ActorType(),
			Metadata: map[string]any{
				MetadataAction:      ActionTrackingNumberUpdated,
				MetadataUpdatedBy:   actor.Contact(),
				MetadataAdminUpdate: true,
			},
		}, at)
	default:
		return nil, nil
	}
}

// ForCancellation returns the single entry written when an owner cancels.
func (HistoryRecorder) ForCancellation(
	o *order.Order,
	change order.Change,
	actor identity.Actor,
	at time.Time,
) (*order.HistoryEntry, error) {
	var reason string
	if r := o.CancellationReason(); r != nil {
		reason = *r
	}

	return order.NewHistoryEntry(order.HistoryRecord{
		OrderID:        o.ID(),
		Status:         change.Status,
		PreviousStatus: change.PreviousStatus,
		TrackingNumber: o.TrackingNumber(),
		Notes:          o.CancellationReason(),
		ChangedBy:      actor.ID(),
		ChangedByType:  identity.ActorTypeUser,
		Metadata: map[string]any{
			MetadataAction:             ActionUserCancellation,
			MetadataCancellationReason: reason,
			MetadataCancelledBy:        actor.Contact(),
		},
	}, at)
}
