package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/donaldgifford/part-price-tracker/internal/observability"
)

// Tracing returns Echo middleware that wraps each API request in a server
// span, continuing any trace context carried by the request headers.
func Tracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if _, skip := metricsSkipPaths[req.URL.Path]; skip {
				return next(c)
			}

			ctx := otel.GetTextMapPropagator().Extract(req.Context(), propagation.HeaderCarrier(req.Header))
			ctx, span := observability.StartHTTPSpan(ctx, req.Method, routeOf(c))
			defer span.End()

			c.SetRequest(req.WithContext(ctx))

			err := next(c)

			status := c.Response().Status
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if err != nil {
				span.RecordError(err)
			} else if status >= http.StatusInternalServerError {
				span.RecordError(&echo.HTTPError{Code: status, Message: http.StatusText(status)})
			}
			return err
		}
	}
}
