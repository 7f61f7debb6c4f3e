package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "storefront/internal/adapters/in/http"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/identity"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "storefront-test"
)

type placeOrderFunc func(context.Context, commands.PlaceOrderCommand) (*order.Order, error)

func (f placeOrderFunc) Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error) {
	return f(ctx, cmd)
}

type updateOrderFunc func(context.Context, commands.UpdateOrderCommand) (*order.Order, error)

func (f updateOrderFunc) Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error) {
	return f(ctx, cmd)
}

type cancelOrderFunc func(context.Context, commands.CancelOrderCommand) (commands.CancelOrderResult, error)

func (f cancelOrderFunc) Handle(ctx context.Context, cmd commands.CancelOrderCommand) (commands.CancelOrderResult, error) {
	return f(ctx, cmd)
}

type getOrderFunc func(context.Context, queries.GetOrderQuery) (queries.OrderView, error)

func (f getOrderFunc) Handle(ctx context.Context, q queries.GetOrderQuery) (queries.OrderView, error) {
	return f(ctx, q)
}

type getHistoryFunc func(context.Context, queries.GetOrderHistoryQuery) ([]queries.HistoryEntryView, error)

func (f getHistoryFunc) Handle(ctx context.Context, q queries.GetOrderHistoryQuery) ([]queries.HistoryEntryView, error) {
	return f(ctx, q)
}

type listOrdersFunc func(context.Context, queries.ListOrdersQuery) ([]queries.OrderView, error)

func (f listOrdersFunc) Handle(ctx context.Context, q queries.ListOrdersQuery) ([]queries.OrderView, error) {
	return f(ctx, q)
}

// handlers holds the use case fakes; a nil field fails the test when called.
type handlers struct {
	place   placeOrderFunc
	update  updateOrderFunc
	cancel  cancelOrderFunc
	get     getOrderFunc
	history getHistoryFunc
	list    listOrdersFunc
}

type api struct {
	e    *echo.Echo
	auth *httpin.Authenticator
}

func newAPI(t *testing.T, h handlers) api {
	t.Helper()

	unexpected := func(name string) { t.Fatalf("unexpected call to %s", name) }
	if h.place == nil {
		h.place = func(context.Context, commands.PlaceOrderCommand) (*order.Order, error) {
			unexpected("place")
			return nil, nil
		}
	}
	if h.update == nil {
		h.update = func(context.Context, commands.UpdateOrderCommand) (*order.Order, error) {
			unexpected("update")
			return nil, nil
		}
	}
	if h.cancel == nil {
		h.cancel = func(context.Context, commands.CancelOrderCommand) (commands.CancelOrderResult, error) {
			unexpected("cancel")
			return commands.CancelOrderResult{}, nil
		}
	}
	if h.get == nil {
		h.get = func(context.Context, queries.GetOrderQuery) (queries.OrderView, error) {
			unexpected("get")
			return queries.OrderView{}, nil
		}
	}
	if h.history == nil {
		h.history = func(context.Context, queries.GetOrderHistoryQuery) ([]queries.HistoryEntryView, error) {
			unexpected("history")
			return nil, nil
		}
	}
	if h.list == nil {
		h.list = func(context.Context, queries.ListOrdersQuery) ([]queries.OrderView, error) {
			unexpected("list")
			return nil, nil
		}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(
		h.place, h.update, h.cancel, h.get, h.history, h.list,
		queries.NewGetStatusRegistryQueryHandler(),
		logger,
	)

	auth, err := httpin.NewAuthenticator(testSecret, testIssuer)
	require.NoError(t, err)

	e, err := httpin.NewRouter(server, auth, logger)
	require.NoError(t, err)

	return api{e: e, auth: auth}
}

func (a api) token(t *testing.T, actor identity.Actor) string {
	t.Helper()
	token, err := a.auth.Issue(actor, time.Hour)
	require.NoError(t, err)
	return token
}

func (a api) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func newActor(t *testing.T, role identity.Role) identity.Actor {
	t.Helper()
	a, err := identity.NewActor(kernel.NewUUID(), "someone@example.com", role)
	require.NoError(t, err)
	return a
}

func placedOrder(t *testing.T, owner kernel.UUID, status order.Status) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Desk Lamp", decimal.RequireFromString("20"), 2, "")
	require.NoError(t, err)

	placed, err := order.NewOrder(kernel.NewUUID(), owner, []order.LineItem{item},
		order.ShippingAddress{Name: "Ann", Street: "1 Main", City: "Reno", Zip: "89501", Country: "US"},
		order.PaymentInfo{Method: "card", TransactionID: "pi_1", Status: "succeeded"},
		order.Pricing{
			TaxRate:               decimal.RequireFromString("0.05"),
			ShippingFlat:          decimal.RequireFromString("4.99"),
			FreeShippingThreshold: decimal.NewFromInt(50),
		},
		time.Now().Add(-time.Hour))
	require.NoError(t, err)

	snap := placed.Snapshot()
	snap.Status = status
	o, err := order.RestoreOrder(snap)
	require.NoError(t, err)
	return o
}
