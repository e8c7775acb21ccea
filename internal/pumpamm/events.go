// Package pumpamm implements the binary schema of the pump.fun AMM program:
// event log records and the pool account layout. All records are fixed-layout
// little-endian with an 8-byte Anchor discriminator prefix.
package pumpamm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"pump-swap-ingestor/internal/domain"
)

// ProgramID is the pump.fun AMM program this codec understands.
const ProgramID = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"

// Anchor event discriminators for the pump_amm schema version in use.
var (
	BuyEventDiscriminator  = [8]byte{103, 244, 82, 31, 44, 245, 119, 119}
	SellEventDiscriminator = [8]byte{62, 47, 55, 10, 165, 3, 220, 42}
)

const (
	discriminatorLen = 8

	// Event payload after the discriminator: pool (32), user (32),
	// timestamp (i64), two amount fields (u64 each) and three fee
	// fields (u64 each), in the schema's declared order.
	eventPayloadLen = 32 + 32 + 8 + 8 + 8 + 8 + 8 + 8
)

// Decode failures. Both are per-record: the caller logs and skips the line.
var (
	ErrTooShort        = errors.New("event data shorter than discriminator")
	ErrMalformedRecord = errors.New("malformed event record")
)

// DecodeEvent decodes a raw event record into a SwapEvent.
// It returns (nil, nil) when the discriminator does not match any known
// event kind; that is not an error, the line simply belongs to another
// schema. ErrTooShort and ErrMalformedRecord are returned for inputs that
// claim to be events but cannot be parsed.
func DecodeEvent(data []byte, txSig string, logIndex int) (*domain.SwapEvent, error) {
	if len(data) < discriminatorLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrTooShort, len(data))
	}

	var kind domain.EventKind
	switch {
	case bytes.Equal(data[:discriminatorLen], BuyEventDiscriminator[:]):
		kind = domain.EventBuy
	case bytes.Equal(data[:discriminatorLen], SellEventDiscriminator[:]):
		kind = domain.EventSell
	default:
		return nil, nil
	}

	payload := data[discriminatorLen:]
	if len(payload) != eventPayloadLen {
		return nil, fmt.Errorf("%w: %s payload is %d bytes, want %d",
			ErrMalformedRecord, kind, len(payload), eventPayloadLen)
	}

	ev := &domain.SwapEvent{
		Kind:        kind,
		Pool:        base58.Encode(payload[0:32]),
		User:        base58.Encode(payload[32:64]),
		Timestamp:   int64(binary.LittleEndian.Uint64(payload[64:72])),
		TxSignature: txSig,
		LogIndex:    logIndex,
	}

	// Buys declare quote_amount_in then base_amount_out; sells mirror
	// with base_amount_in then quote_amount_out.
	first := binary.LittleEndian.Uint64(payload[72:80])
	second := binary.LittleEndian.Uint64(payload[80:88])
	if kind == domain.EventBuy {
		ev.QuoteAmount = first
		ev.BaseAmount = second
	} else {
		ev.BaseAmount = first
		ev.QuoteAmount = second
	}

	ev.ProtocolFee = binary.LittleEndian.Uint64(payload[88:96])
	ev.LPFee = binary.LittleEndian.Uint64(payload[96:104])
	ev.CoinCreatorFee = binary.LittleEndian.Uint64(payload[104:112])

	return ev, nil
}
