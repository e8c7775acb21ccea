package clickhouse

import (
	"context"
	"fmt"

	"pump-swap-ingestor/internal/domain"
	"pump-swap-ingestor/internal/storage"
)

// TradeStore implements storage.TradeStore using ClickHouse.
//
// Inserts are unconditional appends: MergeTree does not enforce uniqueness,
// so duplicate (tx_signature, log_index) rows from a restart are accepted
// rather than rejected.
type TradeStore struct {
	conn *Conn
}

// NewTradeStore creates a new TradeStore.
func NewTradeStore(conn *Conn) *TradeStore {
	return &TradeStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TradeStore = (*TradeStore)(nil)

// Insert writes one trade row.
func (s *TradeStore) Insert(ctx context.Context, t *domain.Trade) error {
	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO trades (
			amount_lamports, amount_usd, is_sell, user, timestamp,
			tx_signature, log_index, pool, fees_lamports, fees_usd,
			quote_mint, base_mint, quote_amount, base_amount
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}

	err = batch.Append(
		t.AmountLamports, t.AmountUSD, t.IsSell, t.User, t.Timestamp,
		t.TxSignature, t.LogIndex, t.Pool, t.FeesLamports, t.FeesUSD,
		t.QuoteMint, t.BaseMint, t.QuoteAmount, t.BaseAmount,
	)
	if err != nil {
		return fmt.Errorf("append trade: %w", err)
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send insert: %w", err)
	}

	return nil
}
