package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	pgstore "pump-swap-ingestor/internal/storage/postgres"
)

// RunPostgresMigrations applies the embedded schema when the trades table
// is absent. Mirrors the ClickHouse path: pg_tables existence check, then
// a best-effort single-writer apply at startup.
func RunPostgresMigrations(ctx context.Context, pool *pgstore.Pool) error {
	needed, err := postgresNeedsMigration(ctx, pool)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if !needed {
		return nil
	}

	entries, err := fs.ReadDir(PostgresFS, "postgres")
	if err != nil {
		return fmt.Errorf("read embedded postgres migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		data, err := fs.ReadFile(PostgresFS, "postgres/"+file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}

// postgresNeedsMigration reports whether the trades table is missing.
func postgresNeedsMigration(ctx context.Context, pool *pgstore.Pool) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM pg_tables WHERE schemaname = 'public' AND tablename = 'trades')`

	var exists bool
	if err := pool.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("query pg_tables: %w", err)
	}
	return !exists, nil
}
