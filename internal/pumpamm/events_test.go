package pumpamm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/mr-tron/base58"

	"pump-swap-ingestor/internal/domain"
)

// encodeEvent builds a synthetic event record in the program's layout.
func encodeEvent(disc [8]byte, pool, user [32]byte, timestamp int64, first, second, protocolFee, lpFee, creatorFee uint64) []byte {
	buf := &bytes.Buffer{}
	buf.Write(disc[:])
	buf.Write(pool[:])
	buf.Write(user[:])
	binary.Write(buf, binary.LittleEndian, timestamp)
	binary.Write(buf, binary.LittleEndian, first)
	binary.Write(buf, binary.LittleEndian, second)
	binary.Write(buf, binary.LittleEndian, protocolFee)
	binary.Write(buf, binary.LittleEndian, lpFee)
	binary.Write(buf, binary.LittleEndian, creatorFee)
	return buf.Bytes()
}

func testKeys() (pool, user [32]byte) {
	for i := range pool {
		pool[i] = byte(i + 1)
	}
	for i := range user {
		user[i] = byte(200 - i)
	}
	return pool, user
}

func TestDecodeEvent_TooShort(t *testing.T) {
	for length := 0; length < 8; length++ {
		data := make([]byte, length)
		_, err := DecodeEvent(data, "sig", 0)
		if !errors.Is(err, ErrTooShort) {
			t.Errorf("length %d: expected ErrTooShort, got %v", length, err)
		}
	}
}

func TestDecodeEvent_Buy_RoundTrip(t *testing.T) {
	pool, user := testKeys()
	data := encodeEvent(BuyEventDiscriminator, pool, user, 1700000000, 2_000_000_000, 12345, 30, 20, 10)

	ev, err := DecodeEvent(data, "buysig", 3)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev == nil {
		t.Fatal("expected event, got nil")
	}

	if ev.Kind != domain.EventBuy {
		t.Errorf("expected buy, got %v", ev.Kind)
	}
	if ev.Pool != base58.Encode(pool[:]) {
		t.Errorf("pool mismatch: %s", ev.Pool)
	}
	if ev.User != base58.Encode(user[:]) {
		t.Errorf("user mismatch: %s", ev.User)
	}
	if ev.Timestamp != 1700000000 {
		t.Errorf("expected timestamp 1700000000, got %d", ev.Timestamp)
	}
	if ev.QuoteAmount != 2_000_000_000 {
		t.Errorf("expected quote amount 2000000000, got %d", ev.QuoteAmount)
	}
	if ev.BaseAmount != 12345 {
		t.Errorf("expected base amount 12345, got %d", ev.BaseAmount)
	}
	if ev.ProtocolFee != 30 || ev.LPFee != 20 || ev.CoinCreatorFee != 10 {
		t.Errorf("fee mismatch: %d %d %d", ev.ProtocolFee, ev.LPFee, ev.CoinCreatorFee)
	}
	if ev.TotalFees() != 60 {
		t.Errorf("expected total fees 60, got %d", ev.TotalFees())
	}
	if ev.TxSignature != "buysig" || ev.LogIndex != 3 {
		t.Errorf("identity mismatch: %s %d", ev.TxSignature, ev.LogIndex)
	}
}

func TestDecodeEvent_Sell_RoundTrip(t *testing.T) {
	pool, user := testKeys()
	// Sells declare base_amount_in first, quote_amount_out second.
	data := encodeEvent(SellEventDiscriminator, pool, user, 1700000001, 999, 3_000_000_000, 1, 2, 3)

	ev, err := DecodeEvent(data, "sellsig", 0)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if ev == nil {
		t.Fatal("expected event, got nil")
	}

	if ev.Kind != domain.EventSell {
		t.Errorf("expected sell, got %v", ev.Kind)
	}
	if ev.BaseAmount != 999 {
		t.Errorf("expected base amount 999, got %d", ev.BaseAmount)
	}
	if ev.QuoteAmount != 3_000_000_000 {
		t.Errorf("expected quote amount 3000000000, got %d", ev.QuoteAmount)
	}
}

func TestDecodeEvent_Unrecognized(t *testing.T) {
	data := make([]byte, 120)
	copy(data, []byte{1, 2, 3, 4, 5, 6, 7, 8})

	ev, err := DecodeEvent(data, "sig", 0)
	if err != nil {
		t.Fatalf("unrecognized discriminator must not error, got %v", err)
	}
	if ev != nil {
		t.Errorf("expected nil event, got %+v", ev)
	}
}

func TestDecodeEvent_MalformedRecord(t *testing.T) {
	pool, user := testKeys()
	data := encodeEvent(BuyEventDiscriminator, pool, user, 1, 2, 3, 4, 5, 6)

	for _, length := range []int{9, 50, len(data) - 1, len(data) + 1} {
		truncated := make([]byte, length)
		copy(truncated, data)
		copy(truncated[:8], BuyEventDiscriminator[:])

		_, err := DecodeEvent(truncated[:length], "sig", 0)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("length %d: expected ErrMalformedRecord, got %v", length, err)
		}
	}
}
