package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Public cache keys. Mutations on the owning resource delete them.
const (
	KeySettings        = "public:settings"
	KeyHero            = "public:hero"
	KeyPartnerShowcase = "public:partners:showcase"
	KeySocialMedia     = "public:social-media"
)

// JSON wraps a KV with JSON encoding. Backend failures are logged and treated
// as misses so the database stays the source of truth.
type JSON struct {
	kv  KV
	ttl time.Duration
	log *zap.Logger
}

func NewJSON(kv KV, ttl time.Duration, log *zap.Logger) *JSON {
	return &JSON{kv: kv, ttl: ttl, log: log}
}

// Load decodes the cached value into dst. It reports whether dst was filled.
func (j *JSON) Load(ctx context.Context, key string, dst interface{}) bool {
	raw, err := j.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			j.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		j.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (j *JSON) Store(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		j.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := j.kv.Set(ctx, key, string(raw), j.ttl); err != nil {
		j.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (j *JSON) Invalidate(ctx context.Context, keys ...string) {
	if err := j.kv.Delete(ctx, keys...); err != nil {
		j.log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
