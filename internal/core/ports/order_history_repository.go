package ports

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderHistoryRepository is append-only: entries are never updated or deleted.
type OrderHistoryRepository interface {
	Add(ctx context.Context, entry *order.HistoryEntry) error

	// ListByOrder returns the entries of one order in creation order.
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.HistoryEntry, error)
}
