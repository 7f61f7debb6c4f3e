package commands

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// HistoryViolation is an order whose audit trail does not replay to its
// stored status.
type HistoryViolation struct {
	OrderID kernel.UUID
	Err     error
}

// AuditHistoryResult reports one audit batch. Watermark is the position of
// the last order checked, or the command's cursor when nothing was checked;
// the next batch continues from it.
type AuditHistoryResult struct {
	Checked    int
	Violations []HistoryViolation
	Watermark  ports.UpdateCursor
	Exhausted  bool
}

// AuditHistoryCommandHandler replays the history of recently updated orders
// inside one read-only transaction. It never writes.
type AuditHistoryCommandHandler struct {
	uowFactory OrderUoWFactory
	auditor    services.HistoryAuditor
}

func NewAuditHistoryCommandHandler(uowFactory OrderUoWFactory) AuditHistoryCommandHandler {
	return AuditHistoryCommandHandler{
		uowFactory: uowFactory,
		auditor:    services.NewHistoryAuditor(),
	}
}

func (h *AuditHistoryCommandHandler) Handle(ctx context.Context, cmd AuditHistoryCommand) (AuditHistoryResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuditHistoryResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AuditHistoryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().ListUpdatedAfter(ctx, cmd.After(), cmd.Until(), cmd.Limit())
	if err != nil {
		return AuditHistoryResult{}, err
	}

	result := AuditHistoryResult{
		Watermark: cmd.After(),
		Exhausted: len(orders) < cmd.Limit(),
	}
	for _, o := range orders {
		entries, err := uow.OrderHistoryRepository().ListByOrder(ctx, o.ID())
		if err != nil {
			return AuditHistoryResult{}, err
		}

		if verr := h.auditor.Verify(o, entries); verr != nil {
			result.Violations = append(result.Violations, HistoryViolation{OrderID: o.ID(), Err: verr})
		}
		result.Checked++
		result.Watermark = ports.UpdateCursor{UpdatedAt: o.UpdatedAt(), OrderID: o.ID()}
	}

	return result, nil
}
