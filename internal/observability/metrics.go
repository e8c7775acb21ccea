// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the ingestor.
type Metrics struct {
	// Subscriber metrics
	MessagesReceived prometheus.Counter
	LinesDecoded     *prometheus.CounterVec
	DecodeErrors     *prometheus.CounterVec
	TradesAssembled  prometheus.Counter

	// Pool cache metrics
	PoolCacheHits   prometheus.Counter
	PoolCacheMisses prometheus.Counter
	PoolCacheSize   prometheus.Gauge

	// Price oracle metrics
	PriceRefreshes     *prometheus.CounterVec
	SolPriceUSD        prometheus.Gauge
	LastPriceRefreshAt prometheus.Gauge

	// Sink metrics
	TradesStored prometheus.Counter
	StoreErrors  prometheus.Counter
	QueueDepth   prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "pump_swap_ingestor"
	}

	return &Metrics{
		MessagesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriber",
			Name:      "messages_received_total",
			Help:      "Total number of log notifications received",
		}),
		LinesDecoded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriber",
			Name:      "lines_decoded_total",
			Help:      "Total number of program data lines decoded by event kind",
		}, []string{"kind"}),
		DecodeErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriber",
			Name:      "decode_errors_total",
			Help:      "Total number of per-line decode or assembly failures by type",
		}, []string{"error_type"}),
		TradesAssembled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscriber",
			Name:      "trades_assembled_total",
			Help:      "Total number of trades assembled and enqueued",
		}),

		PoolCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poolcache",
			Name:      "hits_total",
			Help:      "Total number of pool cache hits",
		}),
		PoolCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "poolcache",
			Name:      "misses_total",
			Help:      "Total number of pool cache misses (remote fetches)",
		}),
		PoolCacheSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "poolcache",
			Name:      "entries",
			Help:      "Current number of cached pools",
		}),

		PriceRefreshes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "refreshes_total",
			Help:      "Total number of price refresh attempts by status",
		}, []string{"status"}),
		SolPriceUSD: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "sol_price_usd",
			Help:      "Last observed SOL/USD rate",
		}),
		LastPriceRefreshAt: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "oracle",
			Name:      "last_refresh_timestamp",
			Help:      "Unix timestamp of last successful price refresh",
		}),

		TradesStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sink",
			Name:      "trades_stored_total",
			Help:      "Total number of trades written to the store",
		}),
		StoreErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sink",
			Name:      "store_errors_total",
			Help:      "Total number of failed trade inserts",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sink",
			Name:      "queue_depth",
			Help:      "Current number of trades buffered between subscriber and sink",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordMessage increments the received notifications counter.
func RecordMessage() {
	DefaultMetrics.MessagesReceived.Inc()
}

// RecordLineDecoded increments the decoded lines counter for an event kind.
func RecordLineDecoded(kind string) {
	DefaultMetrics.LinesDecoded.WithLabelValues(kind).Inc()
}

// RecordDecodeError records a per-line decode or assembly failure.
func RecordDecodeError(errorType string) {
	DefaultMetrics.DecodeErrors.WithLabelValues(errorType).Inc()
}

// RecordTradeAssembled increments the assembled trades counter.
func RecordTradeAssembled() {
	DefaultMetrics.TradesAssembled.Inc()
}

// RecordPoolCacheHit increments the cache hit counter.
func RecordPoolCacheHit() {
	DefaultMetrics.PoolCacheHits.Inc()
}

// RecordPoolCacheMiss increments the cache miss counter and updates the
// entry gauge.
func RecordPoolCacheMiss(entries int) {
	DefaultMetrics.PoolCacheMisses.Inc()
	DefaultMetrics.PoolCacheSize.Set(float64(entries))
}

// RecordPriceRefresh records a refresh attempt and, on success, the new rate.
func RecordPriceRefresh(price float64, err error) {
	if err != nil {
		DefaultMetrics.PriceRefreshes.WithLabelValues("error").Inc()
		return
	}
	DefaultMetrics.PriceRefreshes.WithLabelValues("ok").Inc()
	DefaultMetrics.SolPriceUSD.Set(price)
}

// RecordTradeStored records the outcome of one store insert.
func RecordTradeStored(err error) {
	if err != nil {
		DefaultMetrics.StoreErrors.Inc()
		return
	}
	DefaultMetrics.TradesStored.Inc()
}

// UpdateQueueDepth updates the pipeline queue depth gauge.
func UpdateQueueDepth(depth int) {
	DefaultMetrics.QueueDepth.Set(float64(depth))
}
