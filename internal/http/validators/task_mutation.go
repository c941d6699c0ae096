package validators

import (
	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
)

// ValidateTaskMutationRequest only checks the envelope; per-action
// requirements are enforced by the task service.
func ValidateTaskMutationRequest(r *dto.TaskMutationRequest) error {
	if r.Action == nil {
		return apperrors.ErrBadRequest
	}
	return nil
}
