package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresDocumentStore struct {
	db   *sql.DB
	name string
}

func NewPostgresDocumentStore(db *sql.DB, name string) (*PostgresDocumentStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if name == "" {
		return nil, fmt.Errorf("document name is required")
	}
	s := &PostgresDocumentStore{db: db, name: name}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresDocumentStore) ensureSchema() error {
	const q = `
CREATE TABLE IF NOT EXISTS snapshots (
	name TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("ensure snapshots schema: %w", err)
	}
	return nil
}

func (s *PostgresDocumentStore) Read(ctx context.Context) ([]byte, error) {
	var doc string
	const q = `SELECT document FROM snapshots WHERE name = $1`
	if err := s.db.QueryRowContext(ctx, q, s.name).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("query snapshot %s: %w", s.name, err)
	}
	return []byte(doc), nil
}

func (s *PostgresDocumentStore) Write(ctx context.Context, doc []byte) error {
	const q = `
INSERT INTO snapshots (name, document, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (name) DO UPDATE
SET document = EXCLUDED.document,
	updated_at = NOW()`
	if _, err := s.db.ExecContext(ctx, q, s.name, string(doc)); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", s.name, err)
	}
	return nil
}
