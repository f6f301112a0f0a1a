// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"liftout-matching/internal/common/config"

	_ "github.com/lib/pq"
)

// Connections idle longer than this are recycled so the pool does not hold
// sockets across postgres failovers.
const pgConnMaxAge = 5 * time.Minute

// PostgresClient holds the shared connection pool. The DB field is exported
// because stores and workers take a plain *sql.DB.
type PostgresClient struct {
	DB *sql.DB
}

func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(pgConnMaxAge)
	db.SetConnMaxIdleTime(pgConnMaxAge)

	return &PostgresClient{DB: db}, nil
}

func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *PostgresClient) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

// GetDB returns the pool for callers that want the raw handle.
func (c *PostgresClient) GetDB() *sql.DB {
	return c.DB
}
