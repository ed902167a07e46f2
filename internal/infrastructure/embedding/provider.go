// Package embedding turns skill and job text into unit length vectors.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"skill-passport/internal/config"

	"go.uber.org/zap"
)

var ErrEmbedding = errors.New("embedding failed")

// Provider maps text to a vector of fixed dimension. Blank text yields the
// zero vector of that dimension without calling any model.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// New builds the provider selected by cfg. cache may be nil.
func New(cfg config.EmbeddingConfig, cache JSONCache, cacheTTL time.Duration, logger *zap.Logger) (Provider, error) {
	var p Provider
	switch cfg.Provider {
	case config.EmbeddingProviderGemini:
		p = NewGeminiProvider(cfg, logger)
	case config.EmbeddingProviderHash:
		p = NewHashProvider(cfg.Dimension)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
	if cache == nil {
		return p, nil
	}
	namespace := fmt.Sprintf("%s:%s:%d", cfg.Provider, cfg.Model, cfg.Dimension)
	return NewCachedProvider(p, cache, namespace, cfg.Dimension, cacheTTL, logger), nil
}

// Normalize scales v to unit length. A zero vector is returned as is.
func Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return v
	}
	norm := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func zeroVector(dim int) []float64 {
	if dim < 0 {
		dim = 0
	}
	return make([]float64, dim)
}

func embeddingError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEmbedding, fmt.Sprintf(format, args...))
}
