package ports

import (
	"context"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a newly placed order.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a mutated order only if the stored status still equals
	// expected. A lost race yields an errs.VersionIsInvalidError and nothing
	// is written.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order by id, or errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListUpdatedAfter returns up to limit orders positioned strictly after
	// cursor in (updated_at, id) order whose updated_at is not later than until,
	// oldest first.
	ListUpdatedAfter(ctx context.Context, cursor UpdateCursor, until time.Time, limit int) ([]*order.Order, error)
}

// UpdateCursor is a keyset position over (updated_at, id). The zero OrderID
// sorts before every order updated at UpdatedAt.
type UpdateCursor struct {
	UpdatedAt time.Time
	OrderID   kernel.UUID
}
