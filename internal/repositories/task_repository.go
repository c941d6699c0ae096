package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	model "task-board.com/task-board/internal/models"
	"task-board.com/task-board/internal/schema"
)

var ErrCorruptSnapshot = errors.New("task snapshot is corrupt")

type TaskRepository struct {
	store DocumentStore
}

func NewTaskRepository(store DocumentStore) *TaskRepository {
	return &TaskRepository{store: store}
}

// Load returns the whole task collection. A missing snapshot yields
// ErrDocumentNotFound and an unparsable one ErrCorruptSnapshot; callers
// decide whether either is fatal.
func (r *TaskRepository) Load(ctx context.Context) ([]model.Task, error) {
	b, err := r.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	if err := schema.ValidateTasks(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}

	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task snapshot: %w", err)
	}
	if err := r.store.Write(ctx, b); err != nil {
		return fmt.Errorf("write task snapshot: %w", err)
	}
	return nil
}

// NextID is one past the largest id present, a missing id counting as 0.
// Removing the current maximum lets the next insert reuse it. An empty
// collection starts at 1.
func NextID(tasks []model.Task) int64 {
	if len(tasks) == 0 {
		return 1
	}

	maxID := int64(math.MinInt64)
	for _, t := range tasks {
		var id int64
		if t.ID != nil {
			id = *t.ID
		}
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
