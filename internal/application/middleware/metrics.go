package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/infra/metrics"
)

// NotFoundRoute is the catch-all route template registered for unmatched requests.
const NotFoundRoute = "/*"

const notFoundLabel = "not_found"

// Metrics records request count and latency per route template, then refreshes the
// database connection gauge. Gauge failures never reach the client.
func Metrics(m *metrics.Metrics, dbGateway db.HealthDBGateway) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			m.RecordRequest(c.Request().Method, routeLabel(c), responseStatus(c, err), time.Since(start))

			if count, connErr := dbGateway.ActiveConnections(c.Request().Context()); connErr == nil {
				m.SetDBConnections(count)
			}
			return err
		}
	}
}

func routeLabel(c echo.Context) string {
	path := c.Path()
	if path == "" || path == NotFoundRoute {
		return notFoundLabel
	}
	return path
}

// responseStatus resolves the status the error handler is about to write when the
// handler returned an error instead of a response.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
