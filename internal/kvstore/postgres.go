package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier represents the minimal database operations used by PostgresStore.
// Both *pgxpool.Pool and pgxmock pools satisfy this interface.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS ecoroute_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	selectValueSQL = `SELECT value FROM ecoroute_kv WHERE key = $1`
	upsertValueSQL = `INSERT INTO ecoroute_kv (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteValueSQL = `DELETE FROM ecoroute_kv WHERE key = $1`
)

// Connection seams, replaced in tests.
//
//nolint:gochecknoglobals // test seams
var (
	newPoolFn  = pgxpool.New
	pingPoolFn = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
)

// PostgresStore keeps values in the ecoroute_kv table.
type PostgresStore struct {
	db      Querier
	closeFn func()
}

// NewPostgresStore wraps a querier. closeFn, when non-nil, is called by Close.
func NewPostgresStore(db Querier, closeFn func()) *PostgresStore {
	return &PostgresStore{db: db, closeFn: closeFn}
}

// OpenPostgres connects a pool, verifies it and creates the table if needed.
func OpenPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: postgres url not configured", ErrStorageUnavailable)
	}

	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := newPoolFn(connCtx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: postgres connect: %w", ErrStorageUnavailable, err)
	}
	if err = pingPoolFn(connCtx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: postgres ping: %w", ErrStorageUnavailable, err)
	}

	store := NewPostgresStore(pool, pool.Close)
	if err = store.EnsureSchema(connCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

// EnsureSchema creates the key-value table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("%w: creating ecoroute_kv: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}
	var value string
	err := s.db.QueryRow(ctx, selectValueSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("postgres select", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if _, err := s.db.Exec(ctx, upsertValueSQL, key, value); err != nil {
		return unavailable("postgres upsert", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	if _, err := s.db.Exec(ctx, deleteValueSQL, key); err != nil {
		return unavailable("postgres delete", key, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
