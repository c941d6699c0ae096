package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type FileDocumentStore struct {
	path string
}

func NewFileDocumentStore(path string) (*FileDocumentStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("document file path is required")
	}
	return &FileDocumentStore{path: path}, nil
}

func (s *FileDocumentStore) Path() string {
	return s.path
}

func (s *FileDocumentStore) Read(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("read document file: %w", err)
	}
	return b, nil
}

// Write replaces the file through a rename so readers never observe a
// half-written document.
func (s *FileDocumentStore) Write(ctx context.Context, doc []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir document dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp document file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp document file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp document file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp document file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace document file: %w", err)
	}
	return nil
}
