package domain

// EventKind distinguishes the two swap directions the AMM program emits.
type EventKind int

const (
	EventBuy EventKind = iota
	EventSell
)

// String returns the lowercase name of the event kind.
func (k EventKind) String() string {
	if k == EventSell {
		return "sell"
	}
	return "buy"
}

// SwapEvent is a single decoded Buy or Sell event from the program's logs.
// Amounts are in the smallest unit of the respective token. All fields are
// set once by the decoder and never mutated afterwards.
type SwapEvent struct {
	Kind EventKind

	Pool      string // pool address, base58
	User      string // user address, base58
	Timestamp int64  // unix seconds, from the event payload

	// QuoteAmount is quote_amount_in for buys and quote_amount_out for sells.
	QuoteAmount uint64
	// BaseAmount is base_amount_out for buys and base_amount_in for sells.
	BaseAmount uint64

	ProtocolFee    uint64
	LPFee          uint64
	CoinCreatorFee uint64

	TxSignature string
	LogIndex    int // position of the originating line within the message
}

// TotalFees returns the sum of the three fee components in smallest units.
func (e *SwapEvent) TotalFees() uint64 {
	return e.ProtocolFee + e.LPFee + e.CoinCreatorFee
}
