package queries

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db}
}

// Handle applies the same access rule as GetOrderQueryHandler. An order
// without changes yields an empty, non-nil slice.
func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var owner struct{ UserID uuid.UUID }
	err := db.Table("orders").Select("user_id").Where("id = ?", query.OrderID().Bytes()).Take(&owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}
	if !canRead(query.Actor(), owner.UserID) {
		return nil, order.ErrForbidden
	}

	var rows []historyRow
	err = db.Table("order_history").
		Where("order_id = ?", query.OrderID().Bytes()).
		Order("seq ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntryView, 0, len(rows))
	for _, row := range rows {
		entry, err := row.toView()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
