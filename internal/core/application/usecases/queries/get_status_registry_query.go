package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"
)

// StatusView describes one registered status and where it may go next.
type StatusView struct {
	Status             order.Status
	AllowedTransitions []order.Status
	Terminal           bool
}

// GetStatusRegistryQueryHandler serves the static transition table so clients
// can render only legal choices.
type GetStatusRegistryQueryHandler struct{}

func NewGetStatusRegistryQueryHandler() GetStatusRegistryQueryHandler {
	return GetStatusRegistryQueryHandler{}
}

func (GetStatusRegistryQueryHandler) Handle(_ context.Context) []StatusView {
	statuses := order.AllStatuses()
	views := make([]StatusView, 0, len(statuses))
	for _, s := range statuses {
		views = append(views, StatusView{
			Status:             s,
			AllowedTransitions: s.AllowedTransitions(),
			Terminal:           s.IsTerminal(),
		})
	}
	return views
}
