package postgres

import (
	"context"
	"fmt"

	"formadoc/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewPool connects the verdict audit store.
func NewPool(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)

	return pool, nil
}

// InitSchema creates the audit table on startup. One table does not warrant
// a migrations tool.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS checks (
			id UUID PRIMARY KEY,
			doc_type TEXT NOT NULL,
			status TEXT NOT NULL,
			reason TEXT NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			ocr_method TEXT NOT NULL DEFAULT '',
			text_length INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL
		)`); err != nil {
		return fmt.Errorf("failed to create checks table: %w", err)
	}

	if _, err := pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS checks_created_at_idx ON checks (created_at DESC)`); err != nil {
		return fmt.Errorf("failed to create checks index: %w", err)
	}

	return nil
}
