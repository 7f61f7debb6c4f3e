package http

import (
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/generated/servers"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const moneyPlaces = 2

func fromOrder(o *order.Order) servers.Order {
	s := o.Snapshot()

	items := make([]servers.LineItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = servers.LineItem{
			ProductId: it.ProductID().Bytes(),
			Name:      it.Name(),
			Price:     money(it.UnitPrice()),
			Quantity:  it.Quantity(),
			Image:     optional(it.Image()),
		}
	}

	a := s.ShippingAddress
	p := s.PaymentInfo
	return servers.Order{
		Id:           s.ID.Bytes(),
		OrderNumber:  s.Number,
		UserId:       s.UserID.Bytes(),
		Status:       servers.OrderStatus(s.Status.String()),
		Items:        items,
		Subtotal:     money(s.Totals.Subtotal),
		ShippingCost: money(s.Totals.ShippingCost),
		Tax:          money(s.Totals.Tax),
		Total:        money(s.Totals.Total),
		ShippingAddress: servers.ShippingAddress{
			Name:    a.Name,
			Street:  a.Street,
			City:    a.City,
			State:   optional(a.State),
			Zip:     a.Zip,
			Country: a.Country,
			Phone:   optional(a.Phone),
			Email:   optional(a.Email),
		},
		PaymentInfo: servers.PaymentInfo{
			Method:        p.Method,
			TransactionId: optional(p.TransactionID),
			Status:        optional(p.Status),
		},
		TrackingNumber:     s.TrackingNumber,
		Notes:              s.Notes,
		CancelledBy:        uuidPtr(s.CancelledBy),
		CancelledAt:        s.CancelledAt,
		CancellationReason: s.CancellationReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func fromOrderView(v queries.OrderView) servers.Order {
	items := make([]servers.LineItem, len(v.Items))
	for i, it := range v.Items {
		productID, _ := uuid.Parse(it.ProductID)
		items[i] = servers.LineItem{
			ProductId: productID,
			Name:      it.Name,
			Price:     money(it.Price),
			Quantity:  it.Quantity,
			Image:     optional(it.Image),
		}
	}

	a := v.ShippingAddress
	p := v.PaymentInfo
	return servers.Order{
		Id:           v.ID.Bytes(),
		OrderNumber:  v.OrderNumber,
		UserId:       v.UserID.Bytes(),
		Status:       servers.OrderStatus(v.Status.String()),
		Items:        items,
		Subtotal:     money(v.Subtotal),
		ShippingCost: money(v.ShippingCost),
		Tax:          money(v.Tax),
		Total:        money(v.Total),
		ShippingAddress: servers.ShippingAddress{
			Name:    a.Name,
			Street:  a.Street,
			City:    a.City,
			State:   optional(a.State),
			Zip:     a.Zip,
			Country: a.Country,
			Phone:   optional(a.Phone),
			Email:   optional(a.Email),
		},
		PaymentInfo: servers.PaymentInfo{
			Method:        p.Method,
			TransactionId: optional(p.TransactionID),
			Status:        optional(p.Status),
		},
		TrackingNumber:     v.TrackingNumber,
		Notes:              v.Notes,
		CancelledBy:        uuidPtr(v.CancelledBy),
		CancelledAt:        v.CancelledAt,
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

func fromHistoryView(orderID kernel.UUID, v queries.HistoryEntryView) servers.HistoryEntry {
	return servers.HistoryEntry{
		Id:             v.ID.Bytes(),
		OrderId:        orderID.Bytes(),
		Status:         servers.OrderStatus(v.Status.String()),
		PreviousStatus: servers.OrderStatus(v.PreviousStatus.String()),
		TrackingNumber: v.TrackingNumber,
		Notes:          v.Notes,
		ChangedBy:      v.ChangedBy.Bytes(),
		ChangedByType:  servers.HistoryEntryChangedByType(v.ChangedByType),
		Metadata:       v.Metadata,
		CreatedAt:      v.CreatedAt,
	}
}

func toStatusDefinition(v queries.StatusView) servers.StatusDefinition {
	allowed := make([]servers.OrderStatus, len(v.AllowedTransitions))
	for i, s := range v.AllowedTransitions {
		allowed[i] = servers.OrderStatus(s.String())
	}
	return servers.StatusDefinition{
		Status:             servers.OrderStatus(v.Status.String()),
		AllowedTransitions: allowed,
		Terminal:           v.Terminal,
	}
}

func toShippingAddress(a servers.ShippingAddress) order.ShippingAddress {
	return order.ShippingAddress{
		Name:    a.Name,
		Street:  a.Street,
		City:    a.City,
		State:   deref(a.State),
		Zip:     a.Zip,
		Country: a.Country,
		Phone:   deref(a.Phone),
		Email:   deref(a.Email),
	}
}

func toPaymentInfo(p servers.PaymentInfo) order.PaymentInfo {
	return order.PaymentInfo{
		Method:        p.Method,
		TransactionID: deref(p.TransactionId),
		Status:        deref(p.Status),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(moneyPlaces)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
