// Package historyrepo stores the append-only order_history table.
package historyrepo

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderHistoryDTO is one row of order_history. Rows are only ever inserted.
// Seq is assigned by the database and orders an order's entries; created_at
// comes from the writing host's clock and is informational.
type OrderHistoryDTO struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Seq            int64             `gorm:"type:bigserial;autoIncrement;not null;index:idx_order_history_order_seq,priority:2"`
	OrderID        uuid.UUID         `gorm:"type:uuid;index:idx_order_history_order_seq,priority:1;not null"`
	Status         string            `gorm:"type:varchar(32);not null"`
	PreviousStatus string            `gorm:"type:varchar(32);not null"`
	TrackingNumber *string           `gorm:"type:varchar(128)"`
	Notes          *string           `gorm:"type:text"`
	ChangedBy      uuid.UUID         `gorm:"type:uuid;not null"`
	ChangedByType  string            `gorm:"type:varchar(16);not null"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime:false;not null"`
}

func (OrderHistoryDTO) TableName() string {
	return "order_history"
}

func fromDomain(entry *order.HistoryEntry) OrderHistoryDTO {
	return OrderHistoryDTO{
		ID:             entry.ID().Bytes(),
		OrderID:        entry.OrderID().Bytes(),
		Status:         entry.Status().String(),
		PreviousStatus: entry.PreviousStatus().String(),
		TrackingNumber: entry.TrackingNumber(),
		Notes:          entry.Notes(),
		ChangedBy:      entry.ChangedBy().Bytes(),
		ChangedByType:  string(entry.ChangedByType()),
		Metadata:       datatypes.JSONMap(entry.Metadata()),
		CreatedAt:      entry.CreatedAt(),
	}
}

func toDomain(dto OrderHistoryDTO) (*order.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	changedBy, err := kernel.UUIDFromBytes(dto.ChangedBy[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", id, err)
	}
	previous, err := order.ParseStatus(dto.PreviousStatus)
	if err != nil {
		return nil, fmt.Errorf("history %s previous: %w", id, err)
	}
	changedByType, err := identity.ParseActorType(dto.ChangedByType)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", id, err)
	}

	return order.RestoreHistoryEntry(order.HistoryRecord{
		ID:             id,
		OrderID:        orderID,
		Status:         status,
		PreviousStatus: previous,
		TrackingNumber: dto.TrackingNumber,
		Notes:          dto.Notes,
		ChangedBy:      changedBy,
		ChangedByType:  changedByType,
		Metadata:       dto.Metadata,
		CreatedAt:      dto.CreatedAt.UTC(),
	})
}
