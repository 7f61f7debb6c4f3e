// Package orderrepo maps order aggregates to the orders table. Line items,
// shipping address and payment info are stored as JSONB columns; money is
// stored as decimal(10,2).
package orderrepo

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderDTO is the row layout of the orders table. Timestamps are owned by the
// domain, so GORM's automatic time tracking is switched off.
type OrderDTO struct {
	ID                 uuid.UUID                              `gorm:"type:uuid;primaryKey"`
	OrderNumber        string                                 `gorm:"type:varchar(32);uniqueIndex;not null"`
	UserID             uuid.UUID                              `gorm:"type:uuid;index;not null"`
	Status             string                                 `gorm:"type:varchar(32);index;not null"`
	Items              datatypes.JSONType[[]LineItemDTO]      `gorm:"not null"`
	Subtotal           decimal.Decimal                        `gorm:"type:decimal(10,2);not null"`
	ShippingCost       decimal.Decimal                        `gorm:"type:decimal(10,2);not null"`
	Tax                decimal.Decimal                        `gorm:"type:decimal(10,2);not null"`
	Total              decimal.Decimal                        `gorm:"type:decimal(10,2);not null"`
	ShippingAddress    datatypes.JSONType[ShippingAddressDTO] `gorm:"not null"`
	PaymentInfo        datatypes.JSONType[PaymentInfoDTO]     `gorm:"not null"`
	TrackingNumber     *string                                `gorm:"type:varchar(128)"`
	Notes              *string                                `gorm:"type:text"`
	CancelledBy        *uuid.UUID                             `gorm:"type:uuid"`
	CancelledAt        *time.Time
	CancellationReason *string   `gorm:"type:text"`
	CreatedAt          time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime:false;index;not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is one element of the items JSON array.
type LineItemDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

type ShippingAddressDTO struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type PaymentInfoDTO struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId,omitempty"`
	Status        string `json:"status,omitempty"`
}

func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()

	items := make([]LineItemDTO, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, LineItemDTO{
			ProductID: it.ProductID().String(),
			Name:      it.Name(),
			Price:     it.UnitPrice(),
			Quantity:  it.Quantity(),
			Image:     it.Image(),
		})
	}

	var cancelledBy *uuid.UUID
	if s.CancelledBy != nil {
		raw := s.CancelledBy.Bytes()
		cancelledBy = &raw
	}

	return OrderDTO{
		ID:           s.ID.Bytes(),
		OrderNumber:  s.Number,
		UserID:       s.UserID.Bytes(),
		Status:       s.Status.String(),
		Items:        datatypes.NewJSONType(items),
		Subtotal:     s.Totals.Subtotal,
		ShippingCost: s.Totals.ShippingCost,
		Tax:          s.Totals.Tax,
		Total:        s.Totals.Total,
		ShippingAddress: datatypes.NewJSONType(ShippingAddressDTO{
			Name:    s.ShippingAddress.Name,
			Street:  s.ShippingAddress.Street,
			City:    s.ShippingAddress.City,
			State:   s.ShippingAddress.State,
			Zip:     s.ShippingAddress.Zip,
			Country: s.ShippingAddress.Country,
			Phone:   s.ShippingAddress.Phone,
			Email:   s.ShippingAddress.Email,
		}),
		PaymentInfo: datatypes.NewJSONType(PaymentInfoDTO{
			Method:        s.PaymentInfo.Method,
			TransactionID: s.PaymentInfo.TransactionID,
			Status:        s.PaymentInfo.Status,
		}),
		TrackingNumber:     s.TrackingNumber,
		Notes:              s.Notes,
		CancelledBy:        cancelledBy,
		CancelledAt:        s.CancelledAt,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

// ToDomain rebuilds the aggregate from a row. It is exported for read-side
// handlers that load OrderDTO rows directly.
func ToDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, fmt.Errorf("order %s user: %w", id, err)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", id, err)
	}

	rawItems := dto.Items.Data()
	items := make([]order.LineItem, 0, len(rawItems))
	for i, it := range rawItems {
		productID, idErr := kernel.UUIDFromString(it.ProductID)
		item, itemErr := order.NewLineItem(productID, it.Name, it.Price, it.Quantity, it.Image)
		if err = errors.Join(idErr, itemErr); err != nil {
			return nil, fmt.Errorf("order %s items[%d]: %w", id, i, err)
		}
		items = append(items, item)
	}

	var cancelledBy *kernel.UUID
	if dto.CancelledBy != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CancelledBy)[:])
		if cErr != nil {
			return nil, cErr
		}
		cancelledBy = &cID
	}

	address := dto.ShippingAddress.Data()
	payment := dto.PaymentInfo.Data()

	return order.RestoreOrder(order.Snapshot{
		ID:     id,
		Number: dto.OrderNumber,
		UserID: userID,
		Status: status,
		Items:  items,
		Totals: order.Totals{
			Subtotal:     dto.Subtotal,
			ShippingCost: dto.ShippingCost,
			Tax:          dto.Tax,
			Total:        dto.Total,
		},
		ShippingAddress: order.ShippingAddress{
			Name:    address.Name,
			Street:  address.Street,
			City:    address.City,
			State:   address.State,
			Zip:     address.Zip,
			Country: address.Country,
			Phone:   address.Phone,
			Email:   address.Email,
		},
		PaymentInfo: order.PaymentInfo{
			Method:        payment.Method,
			TransactionID: payment.TransactionID,
			Status:        payment.Status,
		},
		TrackingNumber:     dto.TrackingNumber,
		Notes:              dto.Notes,
		CancelledBy:        cancelledBy,
		CancelledAt:        utcPtr(dto.CancelledAt),
		CancellationReason: dto.CancellationReason,
		CreatedAt:          dto.CreatedAt.UTC(),
		UpdatedAt:          dto.UpdatedAt.UTC(),
	})
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
