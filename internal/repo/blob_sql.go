package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dialect selects the SQL flavour used by SQLBlobStore.
type Dialect int

const (
	Postgres Dialect = iota
	MySQL
)

type sqlQueries struct {
	schema string
	load   string
	save   string
}

var dialectQueries = map[Dialect]sqlQueries{
	Postgres: {
		schema: `CREATE TABLE IF NOT EXISTS kv_blobs (
			blob_key   TEXT PRIMARY KEY,
			blob_value BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		load: `SELECT blob_value FROM kv_blobs WHERE blob_key = $1`,
		save: `INSERT INTO kv_blobs (blob_key, blob_value, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (blob_key) DO UPDATE SET blob_value = EXCLUDED.blob_value, updated_at = EXCLUDED.updated_at`,
	},
	MySQL: {
		schema: `CREATE TABLE IF NOT EXISTS kv_blobs (
			blob_key   VARCHAR(191) PRIMARY KEY,
			blob_value LONGBLOB NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`,
		load: `SELECT blob_value FROM kv_blobs WHERE blob_key = ?`,
		save: `INSERT INTO kv_blobs (blob_key, blob_value, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE blob_value = VALUES(blob_value), updated_at = VALUES(updated_at)`,
	},
}

// SQLBlobStore keeps blobs in the kv_blobs table of a postgres or mysql database.
type SQLBlobStore struct {
	db      *sql.DB
	queries sqlQueries
}

func NewSQLBlobStore(db *sql.DB, dialect Dialect) (*SQLBlobStore, error) {
	q, ok := dialectQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported sql dialect %d", dialect)
	}
	return &SQLBlobStore{db: db, queries: q}, nil
}

// EnsureSchema creates the kv_blobs table when missing.
func (s *SQLBlobStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.queries.schema); err != nil {
		return fmt.Errorf("failed to create kv_blobs: %w", err)
	}
	return nil
}

func (s *SQLBlobStore) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var blob []byte
	err := s.db.QueryRowContext(ctx, s.queries.load, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return blob, nil
}

func (s *SQLBlobStore) Save(ctx context.Context, key string, blob []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.queries.save, key, blob, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
