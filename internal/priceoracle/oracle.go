// Package priceoracle maintains a shared SOL/USD exchange rate refreshed in
// the background.
package priceoracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"pump-swap-ingestor/internal/observability"
)

// Default endpoint and refresh cadence.
const (
	DefaultEndpoint        = "https://api.coingecko.com/api/v3/simple/price?ids=solana&vs_currencies=usd"
	DefaultRefreshInterval = 20 * time.Second

	userAgent = "pump-swap-ingestor/1.0"
)

// ErrBadResponse is returned when the price endpoint answers but the USD
// field is absent or not numeric.
var ErrBadResponse = errors.New("price endpoint returned unusable body")

// Oracle holds one shared SOL/USD rate. The refresh loop is the only
// writer; any number of goroutines may read concurrently. A reader never
// observes a torn value and never blocks on an in-flight refresh.
type Oracle struct {
	mu    sync.RWMutex
	price float64

	endpoint string
	interval time.Duration
	client   *http.Client
	logger   *log.Logger
}

// Options configures an Oracle. Zero values fall back to defaults.
type Options struct {
	Endpoint        string
	RefreshInterval time.Duration
	HTTPClient      *http.Client
	Logger          *log.Logger
}

// New creates an Oracle. The rate is undefined until the first successful
// Refresh; callers must refresh synchronously before serving.
func New(opts Options) *Oracle {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.RefreshInterval == 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Oracle{
		endpoint: opts.Endpoint,
		interval: opts.RefreshInterval,
		client:   opts.HTTPClient,
		logger:   opts.Logger,
	}
}

// Current returns the last successfully fetched SOL/USD rate.
func (o *Oracle) Current() float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.price
}

// Refresh fetches the rate once and replaces the shared value on success.
func (o *Oracle) Refresh(ctx context.Context) error {
	price, err := o.fetch(ctx)
	observability.RecordPriceRefresh(price, err)
	if err != nil {
		return err
	}

	o.mu.Lock()
	o.price = price
	o.mu.Unlock()

	observability.DefaultMetrics.LastPriceRefreshAt.Set(float64(time.Now().Unix()))
	return nil
}

// Run refreshes the rate on a fixed interval until ctx is done. A failed
// tick is logged and the previous value retained; stale beats blocking.
func (o *Oracle) Run(ctx context.Context) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := o.Refresh(ctx); err != nil {
				o.logger.Printf("price refresh failed, keeping previous value: %v", err)
			}
		}
	}
}

func (o *Oracle) fetch(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := o.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("price request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read price response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var parsed struct {
		Solana struct {
			USD *float64 `json:"usd"`
		} `json:"solana"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if parsed.Solana.USD == nil {
		return 0, fmt.Errorf("%w: missing solana.usd field", ErrBadResponse)
	}

	return *parsed.Solana.USD, nil
}
