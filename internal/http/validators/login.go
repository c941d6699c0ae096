package validators

import (
	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
)

func ValidateLoginRequest(r *dto.LoginRequest) error {
	if r.Username == nil || r.Password == nil {
		return apperrors.ErrBadRequest
	}
	return nil
}
