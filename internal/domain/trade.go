package domain

// Trade is the canonical output row written to the trades table.
// It is produced once by the assembler per recognized swap event and
// consumed exactly once by the persistence sink. Primary identity for
// storage is (TxSignature, LogIndex).
type Trade struct {
	// AmountLamports is the settlement-side amount in smallest units.
	AmountLamports uint64
	// AmountUSD is AmountLamports converted at the oracle rate, rounded
	// to 2 decimal places.
	AmountUSD float64

	IsSell    bool
	User      string
	Timestamp int64 // unix seconds

	TxSignature string
	LogIndex    uint32

	Pool string

	// FeesLamports is the sum of protocol, LP and creator fees.
	FeesLamports uint64
	FeesUSD      float64

	QuoteMint string
	BaseMint  string

	// Raw event amounts, smallest units.
	QuoteAmount uint64
	BaseAmount  uint64
}
