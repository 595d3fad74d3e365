// Package store persists the favorites list and the stock master table.
// Both concerns have a Postgres-backed and a local-file-backed variant;
// the serving layer picks one based on whether DATABASE_URL is set.
package store

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds the connection pool from the DATABASE_URL environment
// variable. The caller owns the pool and closes it on shutdown; the
// repo types receive it by injection.
func NewPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	return pgxpool.NewWithConfig(ctx, config)
}
