package dto

import model "task-board.com/task-board/internal/models"

type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type TaskMutationRequest struct {
	Action *string     `json:"action"`
	Todo   *model.Task `json:"todo,omitempty"`
	ID     *int64      `json:"id,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
