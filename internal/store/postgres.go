package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV keeps every value in one keyval table. Uploads are rare and
// values are whole-dataset blobs, so a plain upsert per write is enough.
type PostgresKV struct {
	pool *pgxpool.Pool
}

const createKeyvalTable = `
CREATE TABLE IF NOT EXISTS seller_pulse_keyval (
    key        TEXT PRIMARY KEY,
    value      JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func NewPostgresKV(ctx context.Context, pool *pgxpool.Pool) (*PostgresKV, error) {
	if _, err := pool.Exec(ctx, createKeyvalTable); err != nil {
		return nil, fmt.Errorf("create keyval table: %w", err)
	}
	return &PostgresKV{pool: pool}, nil
}

func (s *PostgresKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM seller_pulse_keyval WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (s *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO seller_pulse_keyval (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *PostgresKV) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx,
		`DELETE FROM seller_pulse_keyval WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *PostgresKV) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM seller_pulse_keyval`); err != nil {
		return fmt.Errorf("clear keyval: %w", err)
	}
	return nil
}

func (s *PostgresKV) Close() {
	s.pool.Close()
}
