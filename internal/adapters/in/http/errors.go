package http

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
	"storefront/internal/generated/servers"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgForbidden      = "Forbidden"
	msgOrderNotFound  = "Order not found"
	msgConflict       = "Order was modified concurrently, please retry"
	msgInternal       = "Internal server error"
	msgUnauthorized   = "Authentication required"
	msgInvalidToken   = "Invalid or expired token"
	msgInvalidRequest = "Invalid request"
)

// fail writes the servers.Error matching err. Anything not recognised is a
// 500 whose cause is logged but never returned to the client.
func (s *Server) fail(ctx echo.Context, err error) error {
	var (
		illegal        *order.IllegalTransitionError
		notCancellable *order.NotCancellableError
		authErr        *authError
	)

	switch {
	case errors.As(err, &authErr):
		return writeError(ctx, http.StatusUnauthorized, authErr.message)
	case errors.Is(err, order.ErrInvalidStatus):
		return badRequest(ctx, order.ErrInvalidStatus.Error())
	case errors.As(err, &illegal):
		return badRequest(ctx, illegal.Error())
	case errors.As(err, &notCancellable):
		return badRequest(ctx, notCancellable.Error())
	case errors.Is(err, order.ErrAlreadyCancelled):
		return badRequest(ctx, order.ErrAlreadyCancelled.Error())
	case errors.Is(err, order.ErrForbidden):
		return writeError(ctx, http.StatusForbidden, msgForbidden)
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(ctx, http.StatusNotFound, msgOrderNotFound)
	case errors.Is(err, errs.ErrVersionIsInvalid), errors.Is(err, ports.ErrOrderLocked):
		return writeError(ctx, http.StatusConflict, msgConflict)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, fmt.Sprintf("%s: %s", msgInvalidRequest, err))
	}

	s.logger.ErrorContext(ctx.Request().Context(), "request failed",
		"method", ctx.Request().Method,
		"path", ctx.Path(),
		"order_id", ctx.Param("orderId"),
		"error", err,
	)
	return writeError(ctx, http.StatusInternalServerError, msgInternal)
}

func badRequest(ctx echo.Context, message string) error {
	return writeError(ctx, http.StatusBadRequest, message)
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}

// HTTPErrorHandler renders errors that escape the handlers, such as router
// misses and parameter binding failures, in the same servers.Error shape.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := msgInternal

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = writeError(ctx, code, message)
}
