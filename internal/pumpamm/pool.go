package pumpamm

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"pump-swap-ingestor/internal/domain"
)

// Pool account layout after the 8-byte account discriminator:
// pool_bump (u8), index (u16), creator (32), base_mint (32), quote_mint (32).
// Fields past quote_mint exist on chain but are not needed here.
const poolAccountMinLen = discriminatorLen + 1 + 2 + 32 + 32 + 32

// ErrMalformedAccount is returned when fetched pool account bytes are too
// short to carry the discriminator and the mint pair.
var ErrMalformedAccount = errors.New("malformed pool account data")

// DecodePoolAccount extracts the base and quote mint addresses from raw
// pool account bytes.
func DecodePoolAccount(raw []byte) (*domain.PoolInfo, error) {
	if len(raw) < discriminatorLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrMalformedAccount, len(raw))
	}
	if len(raw) < poolAccountMinLen {
		return nil, fmt.Errorf("%w: got %d bytes, want at least %d",
			ErrMalformedAccount, len(raw), poolAccountMinLen)
	}

	// Skip discriminator, bump and index; creator precedes the mints.
	base := discriminatorLen + 1 + 2 + 32
	return &domain.PoolInfo{
		BaseMint:  base58.Encode(raw[base : base+32]),
		QuoteMint: base58.Encode(raw[base+32 : base+64]),
	}, nil
}
