package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "task-board.com/task-board/internal/models"
)

// SQLDocumentStore keeps a document as a single row of the snapshots table.
type SQLDocumentStore struct {
	db   *gorm.DB
	name string
}

func NewSQLDocumentStore(db *gorm.DB, name string) (*SQLDocumentStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	if err := db.AutoMigrate(&model.Snapshot{}); err != nil {
		return nil, fmt.Errorf("migrate snapshots table: %w", err)
	}
	return &SQLDocumentStore{db: db, name: name}, nil
}

func (s *SQLDocumentStore) Read(ctx context.Context) ([]byte, error) {
	var snap model.Snapshot
	err := s.db.WithContext(ctx).First(&snap, "name = ?", s.name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("query snapshot %s: %w", s.name, err)
	}
	return []byte(snap.Document), nil
}

func (s *SQLDocumentStore) Write(ctx context.Context, doc []byte) error {
	snap := &model.Snapshot{
		Name:      s.name,
		Document:  string(doc),
		UpdatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(snap).Error
	if err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", s.name, err)
	}
	return nil
}
