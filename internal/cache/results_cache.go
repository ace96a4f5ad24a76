// Package cache holds the redis-backed read cache for tally views. The
// cache only serves the presentation path; vote acceptance always goes
// through the engine, never a cached status.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"election-service/internal/ports/models"

	"github.com/redis/go-redis/v9"
)

// ResultsCache caches ElectionResults per election with a short TTL and
// is invalidated on every accepted vote or election end. A nil
// ResultsCache is a no-op.
type ResultsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultsCache(client *redis.Client, ttl time.Duration) *ResultsCache {
	return &ResultsCache{client: client, ttl: ttl}
}

func resultsKey(electionID uint) string {
	return fmt.Sprintf("results:%d", electionID)
}

func (c *ResultsCache) Get(ctx context.Context, electionID uint) (*models.ElectionResults, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, resultsKey(electionID)).Bytes()
	if err != nil {
		return nil, false
	}
	var results models.ElectionResults
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return &results, true
}

func (c *ResultsCache) Set(ctx context.Context, results *models.ElectionResults) {
	if c == nil {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	c.client.Set(ctx, resultsKey(results.ElectionID), data, c.ttl)
}

func (c *ResultsCache) Invalidate(ctx context.Context, electionID uint) {
	if c == nil {
		return
	}
	c.client.Del(ctx, resultsKey(electionID))
}
