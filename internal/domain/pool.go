package domain

// WSOLMint is the Wrapped SOL mint address.
const WSOLMint = "So11111111111111111111111111111111111111112"

// PoolInfo identifies the token pair of one AMM pool.
// Pools are immutable for the process lifetime: once cached, an entry is
// never updated or evicted.
type PoolInfo struct {
	BaseMint  string // base token mint, base58
	QuoteMint string // quote token mint, base58
}
