package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error)
}

type UpdateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) (commands.CancelOrderResult, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}

type GetOrderHistoryHandler interface {
	Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.HistoryEntryView, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

type StatusRegistryHandler interface {
	Handle(ctx context.Context) []queries.StatusView
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler  PlaceOrderHandler
	updateOrderHandler UpdateOrderHandler
	cancelOrderHandler CancelOrderHandler

	// Query handlers
	getOrderHandler        GetOrderHandler
	getOrderHistoryHandler GetOrderHistoryHandler
	listOrdersHandler      ListOrdersHandler
	statusRegistryHandler  StatusRegistryHandler

	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler PlaceOrderHandler,
	updateOrderHandler UpdateOrderHandler,
	cancelOrderHandler CancelOrderHandler,
	getOrderHandler GetOrderHandler,
	getOrderHistoryHandler GetOrderHistoryHandler,
	listOrdersHandler ListOrdersHandler,
	statusRegistryHandler StatusRegistryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:      placeOrderHandler,
		updateOrderHandler:     updateOrderHandler,
		cancelOrderHandler:     cancelOrderHandler,
		getOrderHandler:        getOrderHandler,
		getOrderHistoryHandler: getOrderHistoryHandler,
		listOrdersHandler:      listOrdersHandler,
		statusRegistryHandler:  statusRegistryHandler,
		logger:                 logger.With("component", "http_server"),
	}
}

// GetOrderStatuses handles GET /api/v1/order-statuses.
func (s *Server) GetOrderStatuses(ctx echo.Context) error {
	views := s.statusRegistryHandler.Handle(ctx.Request().Context())

	response := make([]servers.StatusDefinition, len(views))
	for i, v := range views {
		response[i] = toStatusDefinition(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// ListOrders handles GET /api/v1/orders - admin listing, newest first.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var statuses []string
	if params.Status != nil {
		statuses = *params.Status
	}
	limit := queries.DefaultListLimit
	if params.Limit != nil {
		limit = *params.Limit
	}
	offset := 0
	if params.Offset != nil {
		offset = *params.Offset
	}

	query, err := queries.NewListOrdersQuery(statuses, limit, offset, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, len(views))
	for i, v := range views {
		response[i] = fromOrderView(v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// PlaceOrder handles POST /api/v1/orders - the caller becomes the owner.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body servers.PlaceOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]commands.PlaceOrderItem, len(body.Items))
	for i, it := range body.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return badRequest(ctx, fmt.Sprintf("Invalid price for items[%d]", i))
		}
		productID, err := kernel.UUIDFromBytes(it.ProductId[:])
		if err != nil {
			return badRequest(ctx, fmt.Sprintf("Invalid product_id for items[%d]", i))
		}
		items[i] = commands.PlaceOrderItem{
			ProductID: productID,
			Name:      it.Name,
			UnitPrice: price,
			Quantity:  it.Quantity,
			Image:     deref(it.Image),
		}
	}

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(),
		actor,
		items,
		toShippingAddress(body.ShippingAddress),
		toPaymentInfo(body.PaymentInfo),
	)
	if err != nil {
		return s.fail(ctx, err)
	}

	placed, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, fromOrder(placed))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromOrderView(view))
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderHistoryQuery(id, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	views, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.HistoryEntry, len(views))
	for i, v := range views {
		response[i] = fromHistoryView(id, v)
	}
	return ctx.JSON(http.StatusOK, response)
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel - owner only.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.CancelOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(id, deref(body.Reason), actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.CancelOrderResponse{
		Message: result.Message,
		Order:   fromOrder(result.Order),
	})
}

// UpdateOrder handles PATCH /api/v1/admin/orders/{orderId}.
func (s *Server) UpdateOrder(ctx echo.Context, orderId servers.OrderId) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var body servers.UpdateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderCommand(id, body.Status, body.TrackingNumber, body.Notes, actor)
	if err != nil {
		return s.fail(ctx, err)
	}

	updated, err := s.updateOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromOrder(updated))
}
