package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func testActor(t *testing.T, id kernel.UUID, role identity.Role) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(id, "someone@example.com", role)
	require.NoError(t, err)
	return a
}

func testOrder(t *testing.T, owner kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Notebook", decimal.RequireFromString("5.25"), 4, "")
	require.NoError(t, err)

	placed, err := order.NewOrder(kernel.NewUUID(), owner, []order.LineItem{item},
		order.ShippingAddress{Name: "Ann", Street: "1 Main", City: "Reno", Zip: "89501", Country: "US"},
		order.PaymentInfo{Method: "card", TransactionID: "pi_9", Status: "succeeded"},
		order.Pricing{TaxRate: decimal.RequireFromString("0.1"), ShippingFlat: decimal.NewFromInt(5)},
		time.Now().Add(-time.Hour))
	require.NoError(t, err)

	snap := placed.Snapshot()
	snap.Status = status
	o, err := order.RestoreOrder(snap)
	require.NoError(t, err)
	return o
}

func noopUnlock() {}
