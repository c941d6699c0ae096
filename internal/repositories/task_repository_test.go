package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	model "task-board.com/task-board/internal/models"
)

func int64Ptr(v int64) *int64    { return &v }
func stringPtr(v string) *string { return &v }

func TestTaskRepositoryLoadMissing(t *testing.T) {
	repo := NewTaskRepository(&memoryStore{})

	_, err := repo.Load(context.Background())
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestTaskRepositoryLoadCorrupt(t *testing.T) {
	for _, doc := range []string{``, `{`, `{"id":1}`, `[{"id":"one"}]`} {
		repo := NewTaskRepository(&memoryStore{doc: []byte(doc), present: true})

		_, err := repo.Load(context.Background())
		if !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("document %q: expected ErrCorruptSnapshot, got %v", doc, err)
		}
	}
}

func TestTaskRepositorySaveOmitsAbsentFields(t *testing.T) {
	store := &memoryStore{}
	repo := NewTaskRepository(store)

	tasks := []model.Task{
		{ID: int64Ptr(1), Task: stringPtr("buy milk")},
		{ID: int64Ptr(2), Task: stringPtr(""), Assignee: stringPtr("bob")},
	}
	if err := repo.Save(context.Background(), tasks); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	doc := string(store.doc)
	if strings.Contains(doc, "null") {
		t.Fatalf("absent fields must be omitted, got %s", doc)
	}
	if strings.Contains(doc, "completed") || strings.Contains(doc, "creator") {
		t.Fatalf("unexpected field in %s", doc)
	}
	if !strings.Contains(doc, `"task": ""`) {
		t.Fatalf("present empty string must survive, got %s", doc)
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded) != 2 || loaded[1].Task == nil || *loaded[1].Task != "" || loaded[0].Assignee != nil {
		t.Fatalf("unexpected reload result %+v", loaded)
	}
}

func TestTaskRepositorySaveEmpty(t *testing.T) {
	store := &memoryStore{}
	repo := NewTaskRepository(store)

	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if string(store.doc) != "[]" {
		t.Fatalf("expected empty array, got %s", store.doc)
	}
}

func TestTaskRepositorySaveError(t *testing.T) {
	repo := NewTaskRepository(&memoryStore{writeErr: errors.New("disk full")})

	if err := repo.Save(context.Background(), nil); err == nil {
		t.Fatal("expected save error")
	}
}

func TestNextID(t *testing.T) {
	cases := []struct {
		name  string
		tasks []model.Task
		want  int64
	}{
		{"empty", nil, 1},
		{"sequential", []model.Task{{ID: int64Ptr(1)}, {ID: int64Ptr(2)}, {ID: int64Ptr(3)}}, 4},
		{"gap", []model.Task{{ID: int64Ptr(1)}, {ID: int64Ptr(3)}}, 4},
		{"unordered", []model.Task{{ID: int64Ptr(9)}, {ID: int64Ptr(4)}}, 10},
		{"missing ids", []model.Task{{Task: stringPtr("x")}}, 1},
		{"negative", []model.Task{{ID: int64Ptr(-5)}, {ID: int64Ptr(-3)}}, -2},
		{"negative with missing id", []model.Task{{ID: int64Ptr(-5)}, {Task: stringPtr("x")}}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextID(tc.tasks); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
