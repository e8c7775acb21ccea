// Package trades turns decoded swap events into canonical trade rows.
package trades

import (
	"context"
	"math"

	"pump-swap-ingestor/internal/domain"
)

const lamportsPerSOL = 1e9

// PoolResolver resolves a pool address to its token pair.
// Satisfied by *poolcache.Cache.
type PoolResolver interface {
	Get(ctx context.Context, pool string) (domain.PoolInfo, error)
}

// PriceSource exposes the current SOL/USD rate.
// Satisfied by *priceoracle.Oracle.
type PriceSource interface {
	Current() float64
}

// Assembler combines a decoded event with pool metadata and the oracle rate
// into a Trade. It fails only by propagating pool resolution errors.
type Assembler struct {
	pools PoolResolver
	price PriceSource
}

// NewAssembler creates an Assembler.
func NewAssembler(pools PoolResolver, price PriceSource) *Assembler {
	return &Assembler{pools: pools, price: price}
}

// Assemble builds the canonical trade row for one decoded event.
//
// The settlement side depends on the pool's quote mint: pools quoted in
// wrapped SOL settle on the quote amount, all others on the base amount.
// The rule is symmetric for buys (quote in / base out) and sells
// (quote out / base in).
func (a *Assembler) Assemble(ctx context.Context, ev *domain.SwapEvent) (*domain.Trade, error) {
	info, err := a.pools.Get(ctx, ev.Pool)
	if err != nil {
		return nil, err
	}

	lamports := ev.BaseAmount
	if info.QuoteMint == domain.WSOLMint {
		lamports = ev.QuoteAmount
	}

	price := a.price.Current()
	fees := ev.TotalFees()

	return &domain.Trade{
		AmountLamports: lamports,
		AmountUSD:      lamportsToUSD(lamports, price),
		IsSell:         ev.Kind == domain.EventSell,
		User:           ev.User,
		Timestamp:      ev.Timestamp,
		TxSignature:    ev.TxSignature,
		LogIndex:       uint32(ev.LogIndex),
		Pool:           ev.Pool,
		FeesLamports:   fees,
		FeesUSD:        lamportsToUSD(fees, price),
		QuoteMint:      info.QuoteMint,
		BaseMint:       info.BaseMint,
		QuoteAmount:    ev.QuoteAmount,
		BaseAmount:     ev.BaseAmount,
	}, nil
}

// lamportsToUSD converts a lamport amount at the given rate, rounded to two
// decimal places half away from zero.
func lamportsToUSD(lamports uint64, price float64) float64 {
	usd := float64(lamports) / lamportsPerSOL * price
	return math.Round(usd*100) / 100
}
