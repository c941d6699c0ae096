package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	apperrors "task-board.com/task-board/internal/errors"
)

// ErrorHandler answers with the status only. Error text stays in the log.
func ErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := apperrors.StatusCode(err)
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "path", c.Request().URL.Path, "status", status, "err", err)
		} else {
			logger.Debug("request rejected", "path", c.Request().URL.Path, "status", status, "err", err)
		}

		if err := c.NoContent(status); err != nil {
			logger.Error("failed to write error response", "err", err)
		}
	}
}
