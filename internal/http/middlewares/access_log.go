package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// AccessLog writes one line per request. Errors are rendered here so the
// logged status matches what the client received.
func AccessLog(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			requestID, _ := c.Get(RequestIDContextKey).(string)
			logger.Info("request",
				"request_id", requestID,
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"latency", time.Since(start),
			)
			return nil
		}
	}
}
