package http

import (
	"log/slog"
	"net/http"
	"sync"

	"storefront/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/swaggo/swag"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance: health and swagger UI are public, every
// generated API route sits behind the authenticator under servers.BaseURL.
func NewRouter(server *Server, auth *Authenticator, logger *slog.Logger) (*echo.Echo, error) {
	if err := registerSwaggerDoc(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(servers.BaseURL, auth.Middleware())
	servers.RegisterHandlers(api, server)

	return e, nil
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	logger = logger.With("component", "http_access")

	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.Log(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

type swaggerDoc struct {
	json string
}

func (d *swaggerDoc) ReadDoc() string {
	return d.json
}

var (
	swaggerOnce sync.Once
	swaggerErr  error
)

// registerSwaggerDoc publishes the embedded OpenAPI document to swag so the
// echo-swagger UI can serve it as doc.json. swag panics on a second
// registration under the same name.
func registerSwaggerDoc() error {
	swaggerOnce.Do(func() {
		doc, err := servers.GetSwagger()
		if err != nil {
			swaggerErr = err
			return
		}
		data, err := doc.MarshalJSON()
		if err != nil {
			swaggerErr = err
			return
		}
		swag.Register(swag.Name, &swaggerDoc{json: string(data)})
	})
	return swaggerErr
}
