package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL container with the trades schema applied.
// Returns a cleanup function that must be called after tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	// Schema mirrors migrations/postgres/001_trades.sql.
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS trades (
			amount_lamports BIGINT           NOT NULL,
			amount_usd      DOUBLE PRECISION NOT NULL,
			is_sell         BOOLEAN          NOT NULL,
			"user"          TEXT             NOT NULL,
			timestamp       BIGINT           NOT NULL,
			tx_signature    TEXT             NOT NULL,
			log_index       BIGINT           NOT NULL,
			pool            TEXT             NOT NULL,
			fees_lamports   BIGINT           NOT NULL,
			fees_usd        DOUBLE PRECISION NOT NULL,
			quote_mint      TEXT             NOT NULL,
			base_mint       TEXT             NOT NULL,
			quote_amount    BIGINT           NOT NULL,
			base_amount     BIGINT           NOT NULL,
			PRIMARY KEY (tx_signature, log_index)
		)
	`)
	require.NoError(t, err, "failed to create trades table")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}
