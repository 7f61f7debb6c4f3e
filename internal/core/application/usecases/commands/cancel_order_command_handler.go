package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

const OrderCancelledMessage = "Order cancelled successfully"

// CancelOrderResult is what an owner gets back: the order plus an
// acknowledgment, as opposed to the bare order of the admin path.
type CancelOrderResult struct {
	Order   *order.Order
	Message string
}

// CancelOrderCommandHandler runs the owner-facing cancellation. It shares the
// locking and transactional history of UpdateOrderCommandHandler but only ever
// writes the cancelled status.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	publisher  ports.OrderEventPublisher
	recorder   services.HistoryRecorder
	clock      func() time.Time
	logger     *slog.Logger
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisher,
		recorder:   services.NewHistoryRecorder(),
		clock:      time.Now,
		logger:     logger.With("component", "cancel_order_handler"),
	}
}

// Handle cancels the order. Failures in order of precedence: not found,
// order.ErrForbidden for non-owners, order.ErrAlreadyCancelled,
// *order.NotCancellableError.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelOrderResult{}, err
	}

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return CancelOrderResult{}, err
	}

	expected := o.Status()
	now := h.clock()

	change, err := o.Cancel(cmd.Actor(), cmd.Reason(), now)
	if err != nil {
		return CancelOrderResult{}, err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return CancelOrderResult{}, fmt.Errorf("cancel order %s: %w", o.ID(), err)
	}

	entry, err := h.recorder.ForCancellation(o, change, cmd.Actor(), now)
	if err != nil {
		return CancelOrderResult{}, err
	}
	if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
		return CancelOrderResult{}, fmt.Errorf("record history for order %s: %w", o.ID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return CancelOrderResult{}, err
	}

	publishStatusChanged(ctx, h.publisher, h.logger, o, entry)

	return CancelOrderResult{Order: o, Message: OrderCancelledMessage}, nil
}
