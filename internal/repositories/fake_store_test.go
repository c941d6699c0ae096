package repository

import (
	"context"
	"sync"
)

// memoryStore is an in-memory DocumentStore for tests.
type memoryStore struct {
	mu       sync.Mutex
	doc      []byte
	present  bool
	readErr  error
	writeErr error
	writes   int
}

func (m *memoryStore) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return nil, m.readErr
	}
	if !m.present {
		return nil, ErrDocumentNotFound
	}
	return append([]byte(nil), m.doc...), nil
}

func (m *memoryStore) Write(ctx context.Context, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}
	m.doc = append([]byte(nil), doc...)
	m.present = true
	m.writes++
	return nil
}
