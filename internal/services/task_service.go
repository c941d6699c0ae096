package services

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/internal/locks"
	model "task-board.com/task-board/internal/models"
	repository "task-board.com/task-board/internal/repositories"
)

const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type Mutation struct {
	Action string
	Task   *model.Task
	ID     *int64
}

// TaskService loads the task snapshot on every call; nothing is cached
// between requests. With a nil writer lock, concurrent mutations race and
// the last save wins.
type TaskService struct {
	repo   *repository.TaskRepository
	logger *log.Logger
	writer locks.WriterLock
}

func NewTaskService(repo *repository.TaskRepository, logger *log.Logger, writer locks.WriterLock) *TaskService {
	return &TaskService{
		repo:   repo,
		logger: logger,
		writer: writer,
	}
}

// ListTasks never fails: an unreadable snapshot is served as an empty list.
func (s *TaskService) ListTasks(ctx context.Context) []model.Task {
	tasks, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("serving empty task list", "err", err)
		return []model.Task{}
	}
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}

func (s *TaskService) Apply(ctx context.Context, m Mutation) error {
	if err := validateMutation(m); err != nil {
		return err
	}

	if s.writer != nil {
		if err := s.writer.Acquire(ctx); err != nil {
			s.logger.Error("failed to acquire writer lock", "action", m.Action, "err", err)
			return apperrors.ErrInternal
		}
		defer s.releaseWriter(ctx)
	}

	tasks, err := s.loadForMutation(ctx)
	if err != nil {
		return err
	}

	tasks, err = applyMutation(tasks, m)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, tasks); err != nil {
		s.logger.Error("failed to persist task snapshot", "action", m.Action, "err", err)
		return apperrors.ErrInternal
	}

	s.logger.Info("task snapshot updated", "action", m.Action, "count", len(tasks))
	return nil
}

func (s *TaskService) releaseWriter(ctx context.Context) {
	if err := s.writer.Release(context.WithoutCancel(ctx)); err != nil {
		s.logger.Error("failed to release writer lock", "err", err)
	}
}

func (s *TaskService) loadForMutation(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.repo.Load(ctx)
	switch {
	case err == nil:
		return tasks, nil
	case errors.Is(err, repository.ErrDocumentNotFound), errors.Is(err, repository.ErrCorruptSnapshot):
		s.logger.Warn("starting from empty task snapshot", "err", err)
		return nil, nil
	default:
		s.logger.Error("failed to load task snapshot", "err", err)
		return nil, apperrors.ErrInternal
	}
}

func validateMutation(m Mutation) error {
	switch m.Action {
	case ActionAdd:
		if m.Task == nil {
			return apperrors.ErrBadRequest
		}
	case ActionUpdate:
		if m.ID == nil || m.Task == nil {
			return apperrors.ErrBadRequest
		}
	case ActionDelete:
		if m.ID == nil {
			return apperrors.ErrBadRequest
		}
	default:
		return apperrors.ErrBadRequest
	}
	return nil
}

func applyMutation(tasks []model.Task, m Mutation) ([]model.Task, error) {
	switch m.Action {
	case ActionAdd:
		task := *m.Task
		id := repository.NextID(tasks)
		task.ID = &id
		return append(tasks, task), nil

	case ActionUpdate:
		for i := range tasks {
			if tasks[i].HasID(*m.ID) {
				task := *m.Task
				id := *m.ID
				task.ID = &id
				tasks[i] = task
				return tasks, nil
			}
		}
		return nil, apperrors.ErrTaskNotFound

	case ActionDelete:
		kept := tasks[:0]
		for _, t := range tasks {
			if !t.HasID(*m.ID) {
				kept = append(kept, t)
			}
		}
		return kept, nil
	}
	return nil, apperrors.ErrBadRequest
}
