// Package queries contains the read side: handlers that load read models
// straight from the database without going through aggregates.
package queries

import (
	"fmt"
	"time"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// OrderView is the full read model of one order.
type OrderView struct {
	ID                 kernel.UUID
	OrderNumber        string
	UserID             kernel.UUID
	Status             order.Status
	Items              []LineItemView
	Subtotal           decimal.Decimal
	ShippingCost       decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
	ShippingAddress    AddressView
	PaymentInfo        PaymentView
	TrackingNumber     *string
	Notes              *string
	CancelledBy        *kernel.UUID
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type LineItemView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

type AddressView struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type PaymentView struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId,omitempty"`
	Status        string `json:"status,omitempty"`
}

// HistoryEntryView is one audit record as shown to owners and staff.
type HistoryEntryView struct {
	ID             kernel.UUID
	Status         order.Status
	PreviousStatus order.Status
	TrackingNumber *string
	Notes          *string
	ChangedBy      kernel.UUID
	ChangedByType  identity.ActorType
	Metadata       map[string]any
	CreatedAt      time.Time
}

// orderRow mirrors the orders table columns read by the query handlers.
type orderRow struct {
	ID                 uuid.UUID
	OrderNumber        string
	UserID             uuid.UUID
	Status             string
	Items              datatypes.JSONType[[]LineItemView]
	Subtotal           decimal.Decimal
	ShippingCost       decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
	ShippingAddress    datatypes.JSONType[AddressView]
	PaymentInfo        datatypes.JSONType[PaymentView]
	TrackingNumber     *string
	Notes              *string
	CancelledBy        *uuid.UUID
	CancelledAt        *time.Time
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	userID, err := kernel.UUIDFromBytes(r.UserID[:])
	if err != nil {
		return OrderView{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return OrderView{}, fmt.Errorf("order %s: %w", id, err)
	}

	var cancelledBy *kernel.UUID
	if r.CancelledBy != nil {
		c, cErr := kernel.UUIDFromBytes(r.CancelledBy[:])
		if cErr != nil {
			return OrderView{}, cErr
		}
		cancelledBy = &c
	}

	var cancelledAt *time.Time
	if r.CancelledAt != nil {
		t := r.CancelledAt.UTC()
		cancelledAt = &t
	}

	items := r.Items.Data()
	if items == nil {
		items = []LineItemView{}
	}

	return OrderView{
		ID:                 id,
		OrderNumber:        r.OrderNumber,
		UserID:             userID,
		Status:             status,
		Items:              items,
		Subtotal:           r.Subtotal,
		ShippingCost:       r.ShippingCost,
		Tax:                r.Tax,
		Total:              r.Total,
		ShippingAddress:    r.ShippingAddress.Data(),
		PaymentInfo:        r.PaymentInfo.Data(),
		TrackingNumber:     r.TrackingNumber,
		Notes:              r.Notes,
		CancelledBy:        cancelledBy,
		CancelledAt:        cancelledAt,
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}, nil
}

type historyRow struct {
	ID             uuid.UUID
	Status         string
	PreviousStatus string
	TrackingNumber *string
	Notes          *string
	ChangedBy      uuid.UUID
	ChangedByType  string
	Metadata       datatypes.JSONMap
	CreatedAt      time.Time
}

func (r historyRow) toView() (HistoryEntryView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return HistoryEntryView{}, err
	}
	changedBy, err := kernel.UUIDFromBytes(r.ChangedBy[:])
	if err != nil {
		return HistoryEntryView{}, err
	}
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return HistoryEntryView{}, err
	}
	previous, err := order.ParseStatus(r.PreviousStatus)
	if err != nil {
		return HistoryEntryView{}, err
	}
	changedByType, err := identity.ParseActorType(r.ChangedByType)
	if err != nil {
		return HistoryEntryView{}, err
	}

	metadata := map[string]any(r.Metadata)
	if metadata == nil {
		metadata = map[string]any{}
	}

	return HistoryEntryView{
		ID:             id,
		Status:         status,
		PreviousStatus: previous,
		TrackingNumber: r.TrackingNumber,
		Notes:          r.Notes,
		ChangedBy:      changedBy,
		ChangedByType:  changedByType,
		Metadata:       metadata,
		CreatedAt:      r.CreatedAt.UTC(),
	}, nil
}

// canRead lets order managers see every order and everyone else only their own.
func canRead(actor identity.Actor, owner uuid.UUID) bool {
	return actor.Role().CanManageOrders() || actor.ID().Bytes() == owner
}
