package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/propcast/internal/common"
)

// DB manages the PostgreSQL connection pool
type DB struct {
	pool   *pgxpool.Pool
	logger arbor.ILogger
}

// ResolveURL returns the configured connection URL, falling back to DATABASE_URL
func ResolveURL(config *common.PostgresConfig) (string, error) {
	if config.URL != "" {
		return config.URL, nil
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url, nil
	}
	return "", fmt.Errorf("postgres storage requires storage.postgres.url or DATABASE_URL")
}

// NewDB opens a connection pool and verifies it with a ping
func NewDB(ctx context.Context, logger arbor.ILogger, config *common.PostgresConfig) (*DB, error) {
	url, err := ResolveURL(config)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if config.MaxConns > 0 {
		poolConfig.MaxConns = config.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	logger.Debug().
		Str("host", poolConfig.ConnConfig.Host).
		Str("database", poolConfig.ConnConfig.Database).
		Msg("PostgreSQL connection pool initialized")

	return &DB{pool: pool, logger: logger}, nil
}

// Pool returns the underlying connection pool
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// Close closes the connection pool
func (d *DB) Close() error {
	if d.pool != nil {
		d.pool.Close()
	}
	return nil
}
