package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	input := `
-- leading comment
CREATE TABLE a (x UInt64)
ENGINE = MergeTree()
ORDER BY x;

-- another comment
CREATE TABLE b (y String) ENGINE = TinyLog;
`
	stmts := splitStatements(input)
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE a")
	assert.Contains(t, stmts[0], "ORDER BY x")
	assert.NotContains(t, stmts[0], "--")
	assert.Contains(t, stmts[1], "CREATE TABLE b")
}

func TestSplitStatements_NoTrailingSemicolon(t *testing.T) {
	stmts := splitStatements("SELECT 1")
	require.Len(t, stmts, 1)
	assert.Equal(t, "SELECT 1", stmts[0])
}

func TestValidateNoSemicolonInStrings(t *testing.T) {
	assert.NoError(t, validateNoSemicolonInStrings(`SELECT 'plain' FROM t;`))
	assert.NoError(t, validateNoSemicolonInStrings(`SELECT 'it''s fine' FROM t;`))
	assert.Error(t, validateNoSemicolonInStrings(`SELECT 'a;b' FROM t;`))
}

func TestEmbeddedMigrationsAreSplittable(t *testing.T) {
	data, err := ClickhouseFS.ReadFile("clickhouse/001_trades.sql")
	require.NoError(t, err)

	require.NoError(t, validateNoSemicolonInStrings(string(data)))

	stmts := splitStatements(string(data))
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS trades")
}

func TestDatabaseFromDSN(t *testing.T) {
	db, err := databaseFromDSN("clickhouse://default@localhost:9000/pump_swap_data")
	require.NoError(t, err)
	assert.Equal(t, "pump_swap_data", db)

	_, err = databaseFromDSN("clickhouse://default@localhost:9000")
	assert.Error(t, err)

	_, err = databaseFromDSN("clickhouse://default@localhost:9000/")
	assert.Error(t, err)
}
