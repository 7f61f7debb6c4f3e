package ports

import (
	"context"
	"time"
)

// OrderStatusChangedEvent is emitted after a committed status change.
type OrderStatusChangedEvent struct {
	OrderID        string    `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status"`
	TrackingNumber *string   `json:"tracking_number,omitempty"`
	ChangedBy      string    `json:"changed_by"`
	ChangedByType  string    `json:"changed_by_type"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// OrderEventPublisher delivers change notifications to downstream consumers
// (emails, warehouse). Publishing happens after commit and is best effort.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChangedEvent) error
}
