package solana

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// OnCurve reports whether a base58 pubkey decodes to a valid ed25519 curve
// point. Keypair-derived addresses (token mints, wallets) are on the curve;
// program-derived addresses are not. Useful as a mis-parse signal when
// decoding account layouts.
func OnCurve(pubkey string) bool {
	raw, err := base58.Decode(pubkey)
	if err != nil || len(raw) != 32 {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(raw)
	return err == nil
}
