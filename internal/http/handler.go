package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/internal/http/validators"
	"task-board.com/task-board/internal/services"
)

const operationSuccessful = "Operation successful"

type Handler struct {
	authService *services.AuthService
	taskService *services.TaskService
}

func NewHandler(authService *services.AuthService, taskService *services.TaskService) *Handler {
	return &Handler{
		authService: authService,
		taskService: taskService,
	}
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrBadRequest
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(*req.Username, *req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token})
}

func (h *Handler) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.taskService.ListTasks(c.Request().Context()))
}

func (h *Handler) MutateTasks(c echo.Context) error {
	var req dto.TaskMutationRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrBadRequest
	}
	if err := validators.ValidateTaskMutationRequest(&req); err != nil {
		return err
	}

	err := h.taskService.Apply(c.Request().Context(), services.Mutation{
		Action: *req.Action,
		Task:   req.Todo,
		ID:     req.ID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Message: operationSuccessful})
}
