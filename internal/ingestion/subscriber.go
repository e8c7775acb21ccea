package ingestion

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"time"

	"pump-swap-ingestor/internal/domain"
	"pump-swap-ingestor/internal/observability"
	"pump-swap-ingestor/internal/poolcache"
	"pump-swap-ingestor/internal/pumpamm"
	"pump-swap-ingestor/internal/solana"
	"pump-swap-ingestor/internal/trades"
)

// programDataPrefix marks log lines carrying base64-encoded event records.
const programDataPrefix = "Program data: "

// DefaultIdleTimeout is how long the subscriber waits for a notification
// before logging that the stream is quiet.
const DefaultIdleTimeout = 30 * time.Second

// Subscriber consumes log notifications and drives the decode -> assemble
// chain per line. Failures are isolated per line: a bad record is logged
// and skipped, never aborting the stream.
type Subscriber struct {
	notifs      <-chan solana.LogNotification
	assembler   *trades.Assembler
	idleTimeout time.Duration
	logger      *log.Logger
}

// SubscriberOptions configures a Subscriber.
type SubscriberOptions struct {
	Notifications <-chan solana.LogNotification
	Assembler     *trades.Assembler
	IdleTimeout   time.Duration
	Logger        *log.Logger
}

// NewSubscriber creates a Subscriber reading from an established
// subscription stream.
func NewSubscriber(opts SubscriberOptions) *Subscriber {
	idle := opts.IdleTimeout
	if idle == 0 {
		idle = DefaultIdleTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Subscriber{
		notifs:      opts.Notifications,
		assembler:   opts.Assembler,
		idleTimeout: idle,
		logger:      logger,
	}
}

// Run consumes notifications until the stream closes or ctx is cancelled,
// forwarding assembled trades to out in original line order. The out
// channel is closed on return so the sink can drain and stop.
func (s *Subscriber) Run(ctx context.Context, out chan<- *domain.Trade) error {
	defer close(out)

	idle := time.NewTimer(s.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case notif, ok := <-s.notifs:
			if !ok {
				s.logger.Println("log stream closed, subscriber stopping")
				return nil
			}
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(s.idleTimeout)

			if err := s.handleNotification(ctx, &notif, out); err != nil {
				return err
			}

		case <-idle.C:
			s.logger.Printf("no activity in %v", s.idleTimeout)
			idle.Reset(s.idleTimeout)
		}
	}
}

// handleNotification processes every program-data line of one message.
// The only returned error is ctx cancellation during the channel send.
func (s *Subscriber) handleNotification(ctx context.Context, notif *solana.LogNotification, out chan<- *domain.Trade) error {
	observability.RecordMessage()

	for i, line := range notif.Logs {
		if !strings.HasPrefix(line, programDataPrefix) {
			continue
		}

		encoded := strings.TrimSpace(strings.TrimPrefix(line, programDataPrefix))
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			s.logger.Printf("tx %s line %d: bad base64: %v", notif.Signature, i, err)
			observability.RecordDecodeError("base64")
			continue
		}

		ev, err := pumpamm.DecodeEvent(raw, notif.Signature, i)
		if err != nil {
			s.logger.Printf("tx %s line %d: %v", notif.Signature, i, err)
			observability.RecordDecodeError(classifyError(err))
			continue
		}
		if ev == nil {
			// Some other event kind of the same program; not ours.
			continue
		}
		observability.RecordLineDecoded(ev.Kind.String())

		trade, err := s.assembler.Assemble(ctx, ev)
		if err != nil {
			s.logger.Printf("tx %s line %d: assemble: %v", notif.Signature, i, err)
			observability.RecordDecodeError(classifyError(err))
			continue
		}

		select {
		case out <- trade:
		case <-ctx.Done():
			return ctx.Err()
		}
		observability.RecordTradeAssembled()
		observability.UpdateQueueDepth(len(out))
	}

	return nil
}

// classifyError maps per-line failures to a metric label.
func classifyError(err error) string {
	switch {
	case errors.Is(err, pumpamm.ErrTooShort):
		return "too_short"
	case errors.Is(err, pumpamm.ErrMalformedRecord):
		return "malformed_record"
	case errors.Is(err, pumpamm.ErrMalformedAccount):
		return "malformed_account"
	case errors.Is(err, poolcache.ErrAccountNotFound):
		return "pool_not_found"
	default:
		return "other"
	}
}
