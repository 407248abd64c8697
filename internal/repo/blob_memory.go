package repo

import (
	"context"
	"slices"
	"sync"
)

// InMemoryBlobStore is an in-memory implementation of BlobStore.
type InMemoryBlobStore struct {
	mu       sync.Mutex
	blobs    map[string][]byte
	failures map[string]error
	saves    int
}

// NewInMemoryBlobStore creates a new instance of InMemoryBlobStore.
func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{
		blobs:    map[string][]byte{},
		failures: map[string]error{},
	}
}

// Load retrieves a copy of the blob stored under key.
func (s *InMemoryBlobStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok := s.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return slices.Clone(blob), nil
}

// Save stores a copy of blob under key, unless a failure was injected for it.
func (s *InMemoryBlobStore) Save(_ context.Context, key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failures[key]; err != nil {
		return err
	}
	s.blobs[key] = slices.Clone(blob)
	s.saves++
	return nil
}

// FailSaves makes every following Save on key return err. A nil err clears it.
func (s *InMemoryBlobStore) FailSaves(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failures, key)
		return
	}
	s.failures[key] = err
}

// Saves reports how many writes succeeded.
func (s *InMemoryBlobStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *InMemoryBlobStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs = map[string][]byte{}
	s.failures = map[string]error{}
	s.saves = 0
}
