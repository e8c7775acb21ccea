package postgres

import (
	"context"
	"fmt"

	"pump-swap-ingestor/internal/domain"
	"pump-swap-ingestor/internal/storage"
)

// TradeStore implements storage.TradeStore using PostgreSQL.
type TradeStore struct {
	pool *Pool
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(pool *Pool) *TradeStore {
	return &TradeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TradeStore = (*TradeStore)(nil)

// Insert writes one trade row. A row with the same (tx_signature,
// log_index) is left untouched, making re-delivery after a reconnect
// harmless.
func (s *TradeStore) Insert(ctx context.Context, t *domain.Trade) error {
	query := `
		INSERT INTO trades (
			amount_lamports, amount_usd, is_sell, "user", timestamp,
			tx_signature, log_index, pool, fees_lamports, fees_usd,
			quote_mint, base_mint, quote_amount, base_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (tx_signature, log_index) DO NOTHING
	`

	_, err := s.pool.Exec(ctx, query,
		int64(t.AmountLamports), t.AmountUSD, t.IsSell, t.User, t.Timestamp,
		t.TxSignature, int64(t.LogIndex), t.Pool, int64(t.FeesLamports), t.FeesUSD,
		t.QuoteMint, t.BaseMint, int64(t.QuoteAmount), int64(t.BaseAmount),
	)
	if err != nil {
		return fmt.Errorf("insert trade: %w", err)
	}
	return nil
}
