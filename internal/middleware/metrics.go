package middleware

import (
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/labstack/echo/v4"
)

// MetricsMiddleware feeds the Prometheus request collectors.
type MetricsMiddleware struct {
	server *server.Server
}

func NewMetricsMiddleware(s *server.Server) *MetricsMiddleware {
	return &MetricsMiddleware{server: s}
}

// Collect records count, latency and in-flight requests per route
// template. Unmatched paths are grouped under "unmatched" to keep label
// cardinality bounded.
func (m *MetricsMiddleware) Collect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			done := m.server.Metrics.RequestStarted()

			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			done(c.Request().Method, route, statusFromError(c, err))

			return err
		}
	}
}
