package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisBlobStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisBlobStore stores every key as prefix+key.
func NewRedisBlobStore(rdb *redis.Client, prefix string) *RedisBlobStore {
	return &RedisBlobStore{rdb: rdb, prefix: prefix}
}

func (s *RedisBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	data, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", s.prefix+key, err)
	}
	return data, nil
}

func (s *RedisBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := s.rdb.Set(ctx, s.prefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", s.prefix+key, err)
	}
	return nil
}
