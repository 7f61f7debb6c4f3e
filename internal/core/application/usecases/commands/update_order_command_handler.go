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

// UpdateOrderCommandHandler applies admin mutations.
//
// The order is locked, re-read with a row lock, mutated through the aggregate,
// written with a compare-and-swap on the status it was read with, and its
// history entry is appended in the same transaction.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     ports.OrderLocker
	publisher  ports.OrderEventPublisher
	recorder   services.HistoryRecorder
	clock      func() time.Time
	logger     *slog.Logger
}

func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	locker ports.OrderLocker,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		publisher:  publisher,
		recorder:   services.NewHistoryRecorder(),
		clock:      time.Now,
		logger:     logger.With("component", "update_order_handler"),
	}
}

// Handle returns the updated order. Validation errors (order.ErrForbidden,
// order.ErrInvalidStatus, *order.IllegalTransitionError) are returned before
// anything is written.
func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	actor := cmd.Actor()
	if !actor.Role().CanManageOrders() {
		return nil, order.ErrForbidden
	}

	unlock, err := h.locker.Lock(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	expected := o.Status()
	now := h.clock()

	change, err := o.ApplyAdminUpdate(cmd.Update(), actor, now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o, expected); err != nil {
		return nil, fmt.Errorf("update order %s: %w", o.ID(), err)
	}

	entry, err := h.recorder.ForAdminUpdate(o, change, actor, now)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		if err = uow.OrderHistoryRepository().Add(ctx, entry); err != nil {
			return nil, fmt.Errorf("record history for order %s: %w", o.ID(), err)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if change.StatusChanged && entry != nil {
		publishStatusChanged(ctx, h.publisher, h.logger, o, entry)
	}

	return o, nil
}

func publishStatusChanged(
	ctx context.Context,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
	o *order.Order,
	entry *order.HistoryEntry,
) {
	event := ports.OrderStatusChangedEvent{
		OrderID:        o.ID().String(),
		OrderNumber:    o.Number(),
		UserID:         o.UserID().String(),
		Status:         entry.Status().String(),
		PreviousStatus: entry.PreviousStatus().String(),
		TrackingNumber: o.TrackingNumber(),
		ChangedBy:      entry.ChangedBy().String(),
		ChangedByType:  string(entry.ChangedByType()),
		OccurredAt:     entry.CreatedAt(),
	}

	if err := publisher.PublishStatusChanged(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish order status change",
			"order_id", event.OrderID, "status", event.Status, "error", err)
	}
}
