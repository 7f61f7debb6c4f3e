package queries

import (
	"context"

	"storefront/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Actor().Role().CanManageOrders() {
		return nil, order.ErrForbidden
	}

	db := h.db.WithContext(ctx).Table("orders")
	if statuses := query.Statuses(); len(statuses) > 0 {
		names := make([]string, 0, len(statuses))
		for _, s := range statuses {
			names = append(names, s.String())
		}
		db = db.Where("status = ANY(?)", pq.Array(names))
	}

	var rows []orderRow
	err := db.Order("created_at DESC").Order("id").
		Limit(query.Limit()).
		Offset(query.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(rows))
	for _, row := range rows {
		v, err := row.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	return views, nil
}
