package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"task-board.com/task-board/internal/auth"
	httpapi "task-board.com/task-board/internal/http"
	repository "task-board.com/task-board/internal/repositories"
	"task-board.com/task-board/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Loads the administrator credentials and serves the task board API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		admins, err := loadCredentials(ctx, cfg)
		if err != nil {
			return err
		}
		logger.Info("administrators loaded", "count", admins.Len(), "path", cfg.UsersFilePath)

		if cfg.UsesDefaultSecret() {
			logger.Warn("JWT_SECRET is not set; tokens are signed with the public default secret and anyone can forge them")
		}
		tokens, err := auth.NewTokenService(cfg.JWTSecret)
		if err != nil {
			return err
		}

		backend, err := openTaskBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer backend.close()
		if backend.writer != nil {
			logger.Info("task mutations are serialized", "driver", cfg.TaskStoreDriver)
		}

		authService := services.NewAuthService(admins, tokens, logger, time.Now)
		taskService := services.NewTaskService(repository.NewTaskRepository(backend.store), logger, backend.writer)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httpapi.Register(e, httpapi.NewHandler(authService, taskService), auth.NewGuard(tokens, admins), httpapi.RouteOptions{
			RateLimitPerMinute: cfg.RateLimit,
			CORSAllowOrigins:   cfg.CORSAllowOrigins,
			Logger:             logger,
			Now:                time.Now,
		})

		errCh := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.ListenAddress, "driver", cfg.TaskStoreDriver)
			errCh <- e.Start(cfg.ListenAddress)
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
