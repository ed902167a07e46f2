package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"skill-passport/internal/logger"

	"go.uber.org/zap"
)

// JSONCache is the part of the redis cache the provider needs.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedProvider memoizes vectors by namespace and text. Cache failures are
// logged and fall through to the wrapped provider. A cached vector whose
// length differs from dim is a miss.
type CachedProvider struct {
	next      Provider
	cache     JSONCache
	namespace string
	dim       int
	ttl       time.Duration
	logger    *zap.Logger
}

// NewCachedProvider wraps next. namespace must change whenever the vectors
// next produces would (provider, model, dimension).
func NewCachedProvider(next Provider, cache JSONCache, namespace string, dim int, ttl time.Duration, log *zap.Logger) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, namespace: namespace, dim: dim, ttl: ttl, logger: logger.OrNop(log)}
}

func (p *CachedProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return p.next.Embed(ctx, text)
	}

	key := p.key(text)
	var cached []float64
	hit, err := p.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		p.logger.Warn("embedding cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit && len(cached) > 0 {
		if len(cached) == p.dim {
			return cached, nil
		}
		p.logger.Warn("embedding cache entry has wrong dimension",
			zap.String("key", key),
			zap.Int("got", len(cached)),
			zap.Int("want", p.dim),
		)
	}

	vec, err := p.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := p.cache.SetJSON(ctx, key, vec, p.ttl); err != nil {
		p.logger.Warn("embedding cache write failed", zap.String("key", key), zap.Error(err))
	}
	return vec, nil
}

func (p *CachedProvider) key(text string) string {
	h := sha256.Sum256([]byte(p.namespace + "\x00" + text))
	return "embedding:" + hex.EncodeToString(h[:])
}
