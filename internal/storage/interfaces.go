// Package storage defines persistence interfaces for the ingestor.
package storage

import (
	"context"

	"pump-swap-ingestor/internal/domain"
)

// TradeStore provides access to the trades table.
//
// Insert is an upsert by (tx_signature, log_index): backends either append
// unconditionally (analytical stores with no uniqueness enforcement) or
// ignore conflicting rows.
type TradeStore interface {
	Insert(ctx context.Context, t *domain.Trade) error
}
