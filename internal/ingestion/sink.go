package ingestion

import (
	"context"
	"log"

	"pump-swap-ingestor/internal/domain"
	"pump-swap-ingestor/internal/observability"
	"pump-swap-ingestor/internal/storage"
)

// Sink drains the pipeline channel and writes each trade to the store.
// A failed insert is logged and the next trade processed; there is no
// retry and no dead-lettering.
type Sink struct {
	store  storage.TradeStore
	logger *log.Logger
}

// NewSink creates a Sink writing to the given store.
func NewSink(store storage.TradeStore, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.Default()
	}
	return &Sink{store: store, logger: logger}
}

// Run consumes trades until the channel is closed, then returns. All
// trades enqueued before the close are drained in FIFO order.
func (s *Sink) Run(ctx context.Context, in <-chan *domain.Trade) {
	for trade := range in {
		err := s.store.Insert(ctx, trade)
		observability.RecordTradeStored(err)
		if err != nil {
			s.logger.Printf("error inserting trade tx=%s log_index=%d: %v",
				trade.TxSignature, trade.LogIndex, err)
			continue
		}
		s.logger.Printf("inserted trade tx=%s log_index=%d", trade.TxSignature, trade.LogIndex)
		observability.UpdateQueueDepth(len(in))
	}
	s.logger.Println("trade channel closed, sink stopping")
}
