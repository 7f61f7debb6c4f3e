package ports

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/kernel"
)

// ErrOrderLocked is returned when another mutation holds the order's lock and
// it could not be acquired before the context or wait budget ran out.
var ErrOrderLocked = errors.New("order is being modified by another request")

// OrderLocker serializes mutations of a single order across requests.
type OrderLocker interface {
	// Lock blocks until the lock for orderID is held. The returned func
	// releases it and is safe to call once.
	Lock(ctx context.Context, orderID kernel.UUID) (unlock func(), err error)
}
