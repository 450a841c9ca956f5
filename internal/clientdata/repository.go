// Package clientdata provides time-boxed caching for market data responses.
// Price series are stored as msgpack blobs with expiration timestamps so
// repeated analyses of the same symbol and window skip the network entirely.
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/volcast/internal/domain"
)

// Schema for the price cache table. Keyed by (symbol, range) so different
// lookback windows cache independently.
const schema = `
CREATE TABLE IF NOT EXISTS price_history (
	symbol     TEXT NOT NULL,
	range_key  TEXT NOT NULL,
	data       BLOB NOT NULL,
	expires_at INTEGER NOT NULL,
	PRIMARY KEY (symbol, range_key)
);
CREATE INDEX IF NOT EXISTS idx_price_history_expires ON price_history(expires_at);
`

// Repository provides cache operations for fetched price series.
type Repository struct {
	db *sql.DB
}

// NewRepository creates the repository and ensures the cache schema exists.
func NewRepository(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to initialize price cache schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// Store saves a price series with expiration = now + ttl, upserting any
// previous entry for the same key.
func (r *Repository) Store(symbol, rangeKey string, series *domain.PriceSeries, ttl time.Duration) error {
	blob, err := msgpack.Marshal(series)
	if err != nil {
		return fmt.Errorf("failed to marshal price series: %w", err)
	}

	expiresAt := time.Now().Add(ttl).Unix()

	_, err = r.db.Exec(
		"INSERT OR REPLACE INTO price_history (symbol, range_key, data, expires_at) VALUES (?, ?, ?, ?)",
		symbol, rangeKey, blob, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store price series for %s: %w", symbol, err)
	}

	return nil
}

// GetIfFresh returns the cached series only if it has not expired.
// Returns nil, nil when the key is missing or stale.
func (r *Repository) GetIfFresh(symbol, rangeKey string) (*domain.PriceSeries, error) {
	var blob []byte
	err := r.db.QueryRow(
		"SELECT data FROM price_history WHERE symbol = ? AND range_key = ? AND expires_at > ?",
		symbol, rangeKey, time.Now().Unix(),
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read price cache for %s: %w", symbol, err)
	}

	var series domain.PriceSeries
	if err := msgpack.Unmarshal(blob, &series); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached price series for %s: %w", symbol, err)
	}

	return &series, nil
}

// DeleteExpired removes all stale entries and returns how many were dropped.
func (r *Repository) DeleteExpired() (int64, error) {
	res, err := r.db.Exec("DELETE FROM price_history WHERE expires_at <= ?", time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired cache entries: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Count returns the number of cached entries, fresh or stale.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM price_history").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return n, nil
}
