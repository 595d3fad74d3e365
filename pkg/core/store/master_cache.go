package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"earnings_navi/pkg/models"

	"go.uber.org/zap"
)

// searchLimit caps the number of results returned to the frontend.
const searchLimit = 20

// MasterCache holds the stock master in memory with an explicit fetch
// timestamp and TTL, so staleness and refresh are owned here rather
// than living in ambient globals.
type MasterCache struct {
	mu        sync.Mutex
	store     MasterStore
	stocks    []models.Stock
	fetchedAt time.Time
	ttl       time.Duration
	logger    *zap.Logger
}

func NewMasterCache(store MasterStore, ttl time.Duration, logger *zap.Logger) *MasterCache {
	return &MasterCache{store: store, ttl: ttl, logger: logger}
}

// Get returns the cached master list, reloading it when the TTL has
// elapsed. A failed refresh serves the previous snapshot when one
// exists.
func (c *MasterCache) Get(ctx context.Context) ([]models.Stock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stocks != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.stocks, nil
	}

	stocks, err := c.store.LoadAll(ctx)
	if err != nil {
		if c.stocks != nil {
			c.logger.Warn("stock master refresh failed, serving stale snapshot", zap.Error(err))
			return c.stocks, nil
		}
		return nil, err
	}

	c.logger.Info("stock master loaded", zap.Int("count", len(stocks)))
	c.stocks = stocks
	c.fetchedAt = time.Now()
	return c.stocks, nil
}

// Search matches a query against the master: exact code match for
// all-digit queries, otherwise name substring match. At most
// searchLimit results.
func (c *MasterCache) Search(ctx context.Context, query string) ([]models.Stock, error) {
	stocks, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]models.Stock, 0, searchLimit)
	if isAllDigits(query) {
		for _, stock := range stocks {
			if stock.Code == query {
				results = append(results, stock)
			}
		}
	}

	if len(results) == 0 {
		for _, stock := range stocks {
			if strings.Contains(stock.Name, query) {
				results = append(results, stock)
				if len(results) >= searchLimit {
					break
				}
			}
		}
	}

	if len(results) > searchLimit {
		results = results[:searchLimit]
	}
	return results, nil
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
