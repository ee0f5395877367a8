package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/plastinin/recipefinder/internal/config"
)

// schema таблицы профилей и заказов; корзина и нормы хранятся как JSONB документа пользователя
const schema = `
CREATE TABLE IF NOT EXISTS user_profiles (
	user_id     TEXT PRIMARY KEY,
	daily_value JSONB NOT NULL DEFAULT '[]'::jsonb,
	cart        JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS orders (
	id             UUID PRIMARY KEY,
	user_id        TEXT NOT NULL,
	ordered_at     TIMESTAMPTZ NOT NULL,
	store_to_visit TEXT NOT NULL,
	items          JSONB NOT NULL,
	receipt_key    TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS orders_user_ordered_at_idx ON orders (user_id, ordered_at DESC);
`

// NewPostgresPool создаёт пул соединений к PostgreSQL
func NewPostgresPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Migrate создаёт недостающие таблицы
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
