// Package poolcache is a read-through cache of pool token metadata.
package poolcache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"sync"

	"pump-swap-ingestor/internal/domain"
	"pump-swap-ingestor/internal/observability"
	"pump-swap-ingestor/internal/pumpamm"
	"pump-swap-ingestor/internal/solana"
)

// ErrAccountNotFound is returned when the pool account does not exist on
// chain. Per-record: the caller logs and skips the event.
var ErrAccountNotFound = errors.New("pool account not found")

// Cache maps pool addresses to their token pair, fetching unknown pools
// from RPC on demand. Entries are never evicted: pools are immutable for
// the process lifetime, so the map only grows with distinct pools observed.
//
// Concurrent misses for the same pool are not coalesced; both callers fetch
// and both write the same value. The write is idempotent so no corruption
// results, only a redundant RPC call.
type Cache struct {
	mu    sync.RWMutex
	pools map[string]domain.PoolInfo

	rpc    solana.RPCClient
	logger *log.Logger
}

// New creates an empty cache backed by the given RPC client.
func New(rpc solana.RPCClient, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{
		pools:  make(map[string]domain.PoolInfo),
		rpc:    rpc,
		logger: logger,
	}
}

// Get returns the token pair for a pool, fetching it on first sight.
func (c *Cache) Get(ctx context.Context, pool string) (domain.PoolInfo, error) {
	c.mu.RLock()
	info, ok := c.pools[pool]
	c.mu.RUnlock()

	if ok {
		observability.RecordPoolCacheHit()
		return info, nil
	}

	return c.fetch(ctx, pool)
}

// Len returns the number of cached pools.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pools)
}

// fetch retrieves pool account bytes from RPC, decodes the mint pair and
// inserts it into the cache.
func (c *Cache) fetch(ctx context.Context, pool string) (domain.PoolInfo, error) {
	c.logger.Printf("pool cache miss, fetching %s", pool)

	acct, err := c.rpc.GetAccountInfo(ctx, pool)
	if err != nil {
		return domain.PoolInfo{}, fmt.Errorf("fetch pool %s: %w", pool, err)
	}
	if acct == nil {
		return domain.PoolInfo{}, fmt.Errorf("%w: %s", ErrAccountNotFound, pool)
	}

	raw, err := base64.StdEncoding.DecodeString(acct.Data)
	if err != nil {
		return domain.PoolInfo{}, fmt.Errorf("%w: pool %s: bad base64: %v",
			pumpamm.ErrMalformedAccount, pool, err)
	}

	decoded, err := pumpamm.DecodePoolAccount(raw)
	if err != nil {
		return domain.PoolInfo{}, fmt.Errorf("pool %s: %w", pool, err)
	}

	// Mints are keypair-derived and should sit on the curve; an off-curve
	// value usually means the account layout shifted under us.
	if !solana.OnCurve(decoded.BaseMint) {
		c.logger.Printf("pool %s: base mint %s is off-curve, possible layout mismatch", pool, decoded.BaseMint)
	}

	c.mu.Lock()
	c.pools[pool] = *decoded
	entries := len(c.pools)
	c.mu.Unlock()

	observability.RecordPoolCacheMiss(entries)
	c.logger.Printf("pool added to cache %s (base=%s quote=%s)", pool, decoded.BaseMint, decoded.QuoteMint)

	return *decoded, nil
}
