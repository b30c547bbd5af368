// Package cache provides the optional Redis-backed ranking cache.
// Leaderboards are recomputed from bet history on demand; caching them is a
// read-path optimisation only and the system is fully functional without it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Alvaro-Franqueira/projectCiclo-sub000/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens a Redis connection and verifies it with a ping.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache.ConnectRedis: %w", err)
	}
	return client, nil
}

const rankingKeyPrefix = "rankings:"

// RankingCache stores computed leaderboards under short-TTL keys and drops
// them all whenever a bet settles. Every method tolerates Redis being down:
// cache errors are logged and treated as misses.
type RankingCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRankingCache creates a RankingCache with the given entry TTL.
func NewRankingCache(rdb *redis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{rdb: rdb, ttl: ttl}
}

// rankingKey builds the cache key for one leaderboard. gameName is "" for
// global rankings.
func rankingKey(rt domain.RankingType, gameName string) string {
	if gameName == "" {
		return rankingKeyPrefix + string(rt)
	}
	return rankingKeyPrefix + string(rt) + ":" + gameName
}

// Get returns a cached leaderboard, or found=false on a miss.
func (c *RankingCache) Get(ctx context.Context, rt domain.RankingType, gameName string) ([]domain.RankingEntry, bool) {
	raw, err := c.rdb.Get(ctx, rankingKey(rt, gameName)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[cache] ranking get failed: %v", err)
		}
		return nil, false
	}

	var entries []domain.RankingEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Printf("[cache] ranking unmarshal failed, dropping key: %v", err)
		c.rdb.Del(ctx, rankingKey(rt, gameName))
		return nil, false
	}
	return entries, true
}

// Set stores a computed leaderboard under its key with the configured TTL.
func (c *RankingCache) Set(ctx context.Context, rt domain.RankingType, gameName string, entries []domain.RankingEntry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		log.Printf("[cache] ranking marshal failed: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, rankingKey(rt, gameName), raw, c.ttl).Err(); err != nil {
		log.Printf("[cache] ranking set failed: %v", err)
	}
}

// InvalidateAll drops every cached leaderboard. Called after each settlement
// so rankings never serve results older than the last settled bet plus TTL.
func (c *RankingCache) InvalidateAll(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, rankingKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[cache] ranking scan failed: %v", err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] ranking invalidate failed: %v", err)
	}
}
