package repo

import (
	"context"
	"errors"
)

// BlobStore is a last-writer-wins key/value store holding one serialized
// ledger per key.
type BlobStore interface {
	// Load returns ErrBlobNotFound when nothing was ever saved under key.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

// ErrBlobNotFound is returned when a key has no stored blob.
var ErrBlobNotFound = errors.New("blob not found")
