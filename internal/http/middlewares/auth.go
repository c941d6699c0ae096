package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"task-board.com/task-board/internal/auth"
)

const AdminContextKey = "admin"

// RequireAdmin rejects the request unless its bearer token belongs to a
// configured administrator.
func RequireAdmin(guard *auth.Guard, now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := guard.Check(c.Request().Header.Get(echo.HeaderAuthorization), now())
			if err != nil {
				return err
			}
			c.Set(AdminContextKey, claims.Subject)
			return next(c)
		}
	}
}
