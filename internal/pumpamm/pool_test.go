package pumpamm

import (
	"errors"
	"testing"

	"github.com/mr-tron/base58"
)

// encodePoolAccount builds pool account bytes with the given mints and
// optional trailing bytes past the fields this codec reads.
func encodePoolAccount(baseMint, quoteMint [32]byte, extra int) []byte {
	raw := make([]byte, poolAccountMinLen+extra)
	off := discriminatorLen + 1 + 2 + 32
	copy(raw[off:off+32], baseMint[:])
	copy(raw[off+32:off+64], quoteMint[:])
	return raw
}

func TestDecodePoolAccount(t *testing.T) {
	var baseMint, quoteMint [32]byte
	for i := range baseMint {
		baseMint[i] = byte(i)
		quoteMint[i] = byte(255 - i)
	}

	for _, extra := range []int{0, 64} {
		info, err := DecodePoolAccount(encodePoolAccount(baseMint, quoteMint, extra))
		if err != nil {
			t.Fatalf("extra %d: DecodePoolAccount: %v", extra, err)
		}
		if info.BaseMint != base58.Encode(baseMint[:]) {
			t.Errorf("extra %d: base mint mismatch: %s", extra, info.BaseMint)
		}
		if info.QuoteMint != base58.Encode(quoteMint[:]) {
			t.Errorf("extra %d: quote mint mismatch: %s", extra, info.QuoteMint)
		}
	}
}

func TestDecodePoolAccount_TooShort(t *testing.T) {
	for _, length := range []int{0, 7, 8, poolAccountMinLen - 1} {
		_, err := DecodePoolAccount(make([]byte, length))
		if !errors.Is(err, ErrMalformedAccount) {
			t.Errorf("length %d: expected ErrMalformedAccount, got %v", length, err)
		}
	}
}
