package repository

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

type RedisDocumentStore struct {
	client rueidis.Client
	key    string
}

func NewRedisDocumentStore(client rueidis.Client, key string) (*RedisDocumentStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if key == "" {
		return nil, fmt.Errorf("document key is required")
	}
	return &RedisDocumentStore{client: client, key: key}, nil
}

func (s *RedisDocumentStore) Read(ctx context.Context) ([]byte, error) {
	cmd := s.client.B().Get().Key(s.key).Build()
	b, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("get snapshot %s: %w", s.key, err)
	}
	return b, nil
}

func (s *RedisDocumentStore) Write(ctx context.Context, doc []byte) error {
	cmd := s.client.B().Set().Key(s.key).Value(rueidis.BinaryString(doc)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set snapshot %s: %w", s.key, err)
	}
	return nil
}
