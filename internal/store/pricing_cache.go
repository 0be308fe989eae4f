package store

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"
)

// maxValidMonthlyPrice rejects absurdly high per-feature monthly figures
// coming back from the pricing API. Zero is a legitimate value: some
// services in the catalog are genuinely free.
const maxValidMonthlyPrice = 100000.0

// ValidatePrice returns true if a per-feature monthly price is sane.
func ValidatePrice(price float64) bool {
	return price >= 0 && price <= maxValidMonthlyPrice
}

// SanitizePrices filters a pricing map, removing entries with negative or
// absurdly high prices. Returns the number of entries removed.
func SanitizePrices(prices map[string]float64) int {
	removed := 0
	for k, v := range prices {
		if !ValidatePrice(v) {
			delete(prices, k)
			removed++
		}
	}
	return removed
}

// DefaultPricingTTL is how long a built pricing snapshot stays fresh.
const DefaultPricingTTL = 24 * time.Hour

// PricingCache holds the most recent live feature pricing snapshot, in
// memory with nil-safe SQLite persistence behind it. Readers keep serving
// the previous snapshot while a refresh is in flight; an expired snapshot
// simply stops answering lookups so callers fall back to static catalog
// values.
type PricingCache struct {
	db  *sql.DB
	ttl time.Duration

	mu      sync.RWMutex
	prices  map[string]float64 // featureID -> monthly USD
	builtAt time.Time
}

// CacheStatus describes the cache for status reporting.
type CacheStatus struct {
	Valid      bool      `json:"valid"`
	EntryCount int       `json:"entryCount"`
	BuiltAt    time.Time `json:"builtAt"`
	TTLSeconds int64     `json:"ttlSeconds"`
}

// NewPricingCache creates a PricingCache backed by the given database.
// If db is nil the cache works in-memory only. A persisted snapshot that
// is still within the TTL is loaded immediately so restarts do not lose
// a fresh fetch.
func NewPricingCache(db *sql.DB, ttl time.Duration) *PricingCache {
	if ttl <= 0 {
		ttl = DefaultPricingTTL
	}
	c := &PricingCache{db: db, ttl: ttl}
	if db != nil {
		c.loadPersisted()
	}
	return c
}

// Lookup returns the cached monthly price for a feature. ok is false when
// the snapshot is absent, expired, or has no entry for the feature — the
// caller then uses the static catalog value. An explicit zero entry is a
// valid hit.
func (c *PricingCache) Lookup(featureID string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.prices == nil || time.Since(c.builtAt) >= c.ttl {
		return 0, false
	}
	price, ok := c.prices[featureID]
	return price, ok
}

// Valid reports whether the current snapshot exists and is within the TTL.
func (c *PricingCache) Valid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.prices != nil && time.Since(c.builtAt) < c.ttl
}

// Status returns a point-in-time description of the cache.
func (c *PricingCache) Status() CacheStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStatus{
		Valid:      c.prices != nil && time.Since(c.builtAt) < c.ttl,
		EntryCount: len(c.prices),
		BuiltAt:    c.builtAt,
		TTLSeconds: int64(c.ttl / time.Second),
	}
}

// Replace swaps in a freshly fetched snapshot and persists it. Last writer
// wins; racing refreshes are harmless because each carries a complete
// snapshot.
func (c *PricingCache) Replace(prices map[string]float64) {
	cp := make(map[string]float64, len(prices))
	for k, v := range prices {
		cp[k] = v
	}
	now := time.Now()

	c.mu.Lock()
	c.prices = cp
	c.builtAt = now
	c.mu.Unlock()

	c.persist(cp, now)
}

func (c *PricingCache) loadPersisted() {
	cutoff := time.Now().Add(-c.ttl).Unix()
	rows, err := c.db.Query(
		"SELECT feature_id, monthly_cost_usd, built_at FROM feature_pricing_cache WHERE built_at > ?",
		cutoff,
	)
	if err != nil {
		return
	}
	defer rows.Close()

	prices := make(map[string]float64)
	var builtAt int64
	for rows.Next() {
		var id string
		var price float64
		var ts int64
		if err := rows.Scan(&id, &price, &ts); err != nil {
			continue
		}
		prices[id] = price
		if ts > builtAt {
			builtAt = ts
		}
	}
	if len(prices) == 0 {
		return
	}

	c.mu.Lock()
	c.prices = prices
	c.builtAt = time.Unix(builtAt, 0)
	c.mu.Unlock()
}

func (c *PricingCache) persist(prices map[string]float64, builtAt time.Time) {
	if c.db == nil {
		return
	}

	tx, err := c.db.Begin()
	if err != nil {
		return
	}
	if _, err := tx.Exec("DELETE FROM feature_pricing_cache"); err != nil {
		tx.Rollback()
		return
	}
	stmt, err := tx.Prepare(
		"INSERT INTO feature_pricing_cache (feature_id, monthly_cost_usd, built_at) VALUES (?, ?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return
	}
	defer stmt.Close()

	ts := builtAt.Unix()
	for id, price := range prices {
		if _, err := stmt.Exec(id, price, ts); err != nil {
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		fmt.Fprintf(os.Stderr, "pricing_cache: persist failed: %v\n", err)
	}
}
