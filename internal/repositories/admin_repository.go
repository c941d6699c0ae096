package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	model "task-board.com/task-board/internal/models"
	"task-board.com/task-board/internal/schema"
)

// LoadAdmins reads the administrator credential document. Unlike task
// snapshots there is no fallback: a missing or malformed document is an error.
func LoadAdmins(ctx context.Context, store DocumentStore) ([]model.AdminCredential, error) {
	b, err := store.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, fmt.Errorf("credential document: %w", err)
		}
		return nil, err
	}

	if err := schema.ValidateAdmins(b); err != nil {
		return nil, fmt.Errorf("credential document: %w", err)
	}

	var admins []model.AdminCredential
	if err := json.Unmarshal(b, &admins); err != nil {
		return nil, fmt.Errorf("decode credential document: %w", err)
	}
	return admins, nil
}
