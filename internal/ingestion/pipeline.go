// Package ingestion runs the live pipeline: a subscriber that turns log
// notifications into trades, and a sink that persists them.
package ingestion

import "pump-swap-ingestor/internal/domain"

// PipelineBuffer is the capacity of the subscriber-to-sink channel. The
// send blocks when full, so a lagging sink back-pressures the subscriber
// instead of growing memory without limit.
const PipelineBuffer = 10000

// NewPipeline creates the channel carrying trades from the subscriber to
// the sink. Single producer, single consumer, FIFO.
func NewPipeline() chan *domain.Trade {
	return make(chan *domain.Trade, PipelineBuffer)
}
