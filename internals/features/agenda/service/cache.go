package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

/* =========================================================
   Public-content cache

   The agenda and speaker lists are read by every visitor and
   change rarely. Read-through with a short TTL; a nil redis
   client means cache-off and every call hits the DB.
========================================================= */

const (
	cacheTTL        = 60 * time.Second
	KeyAgendaList   = "confhub:agenda:list"
	KeySpeakersList = "confhub:speakers:list"
)

type ContentCache struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewContentCache(rdb *redis.Client, log *zap.Logger) *ContentCache {
	return &ContentCache{rdb: rdb, log: log}
}

func (c *ContentCache) Enabled() bool { return c.rdb != nil }

// GetOrLoad returns the cached value for key, falling back to load and
// populating the cache. Cache faults degrade to a plain DB read.
func (c *ContentCache) GetOrLoad(ctx context.Context, key string, out interface{}, load func() (interface{}, error)) error {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, key).Bytes()
		if err == nil {
			if jErr := json.Unmarshal(raw, out); jErr == nil {
				return nil
			}
			// corrupt entry: fall through to reload
			_ = c.rdb.Del(ctx, key).Err()
		} else if err != redis.Nil {
			c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	val, err := load()
	if err != nil {
		return err
	}

	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return err
	}

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, b, cacheTTL).Err(); err != nil {
			c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

// Invalidate drops keys after an admin mutation.
func (c *ContentCache) Invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidation failed", zap.Error(err))
	}
}
