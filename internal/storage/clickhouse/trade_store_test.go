package clickhouse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pump-swap-ingestor/internal/domain"
)

func testTrade() *domain.Trade {
	return &domain.Trade{
		AmountLamports: 2_000_000_000,
		AmountUSD:      300.00,
		IsSell:         false,
		User:           "userpubkey",
		Timestamp:      1700000000,
		TxSignature:    "sig1",
		LogIndex:       2,
		Pool:           "poolpubkey",
		FeesLamports:   6_000_000,
		FeesUSD:        0.90,
		QuoteMint:      domain.WSOLMint,
		BaseMint:       "basemint",
		QuoteAmount:    2_000_000_000,
		BaseAmount:     555_000,
	}
}

func TestTradeStore_Insert(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(conn)

	require.NoError(t, store.Insert(ctx, testTrade()))

	row := conn.QueryRow(ctx, `
		SELECT amount_lamports, amount_usd, is_sell, user, timestamp,
		       tx_signature, log_index, pool, fees_lamports, fees_usd,
		       quote_mint, base_mint, quote_amount, base_amount
		FROM trades WHERE tx_signature = 'sig1'
	`)

	var got domain.Trade
	require.NoError(t, row.Scan(
		&got.AmountLamports, &got.AmountUSD, &got.IsSell, &got.User, &got.Timestamp,
		&got.TxSignature, &got.LogIndex, &got.Pool, &got.FeesLamports, &got.FeesUSD,
		&got.QuoteMint, &got.BaseMint, &got.QuoteAmount, &got.BaseAmount,
	))
	assert.Equal(t, *testTrade(), got)
}

func TestTradeStore_InsertDuplicateAppends(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	store := NewTradeStore(conn)

	// MergeTree accepts duplicate ordering keys; the same trade twice
	// yields two rows.
	require.NoError(t, store.Insert(ctx, testTrade()))
	require.NoError(t, store.Insert(ctx, testTrade()))

	var count uint64
	require.NoError(t, conn.QueryRow(ctx,
		`SELECT count() FROM trades WHERE tx_signature = 'sig1'`).Scan(&count))
	assert.Equal(t, uint64(2), count)
}
