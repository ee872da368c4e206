package middleware

import (
	"time"

	"marketplace/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counts and latencies per route template.
type MetricsMiddleware struct {
	recorder service.MetricsRecorder
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(recorder service.MetricsRecorder) *MetricsMiddleware {
	return &MetricsMiddleware{recorder: recorder}
}

// Handle runs the handler, lets the error handler write the response when the
// handler fails, then records the final status code. The error is still returned
// so outer middleware can log it; the error handler ignores committed responses.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		route := c.Path()
		if route == "" {
			route = unmatchedRoute
		}
		m.recorder.RecordHTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))

		return err
	}
}
