package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"task-board.com/task-board/internal/auth"
	middleware "task-board.com/task-board/internal/http/middlewares"
)

type RouteOptions struct {
	RateLimitPerMinute int
	CORSAllowOrigins   []string
	Logger             *log.Logger
	Now                func() time.Time
}

// Register mounts the API on e. The task routes are also served under
// /todos for clients of the older path.
func Register(e *echo.Echo, h *Handler, guard *auth.Guard, opts RouteOptions) {
	e.HTTPErrorHandler = ErrorHandler(opts.Logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(opts.Logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute))

	requireAdmin := middleware.RequireAdmin(guard, opts.Now)

	e.POST("/login", h.Login)
	for _, path := range []string{"/tasks", "/todos"} {
		e.GET(path, h.ListTasks)
		e.POST(path, h.MutateTasks, requireAdmin)
	}
}
