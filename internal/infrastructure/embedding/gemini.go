package embedding

import (
	"context"
	"errors"
	"strings"
	"sync"

	"skill-passport/internal/config"
	"skill-passport/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const (
	defaultModel = "text-embedding-004"
	taskType     = "SEMANTIC_SIMILARITY"
)

// ModelClient is the slice of the genai Models service the provider uses.
type ModelClient interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

type ClientLoader func(ctx context.Context) (ModelClient, error)

// GeminiProvider embeds text with the Gemini API. The client is created on
// first use; concurrent first callers share one initialization and a failed
// one is retried by the next call.
type GeminiProvider struct {
	model   string
	dim     int
	limiter *rate.Limiter
	logger  *zap.Logger
	load    ClientLoader

	mu     sync.Mutex
	client ModelClient
}

func NewGeminiProvider(cfg config.EmbeddingConfig, log *zap.Logger) *GeminiProvider {
	apiKey := strings.TrimSpace(cfg.APIKey)
	return newGeminiProvider(cfg, log, func(ctx context.Context) (ModelClient, error) {
		if apiKey == "" {
			return nil, errors.New("gemini api key is required")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return client.Models, nil
	})
}

func newGeminiProvider(cfg config.EmbeddingConfig, log *zap.Logger, load ClientLoader) *GeminiProvider {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}
	return &GeminiProvider{
		model:   model,
		dim:     cfg.Dimension,
		limiter: limiter,
		logger:  logger.OrNop(log),
		load:    load,
	}
}

// Initialize creates the client if it does not exist yet.
func (p *GeminiProvider) Initialize(ctx context.Context) error {
	_, err := p.ensureClient(ctx)
	return err
}

func (p *GeminiProvider) ensureClient(ctx context.Context) (ModelClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	client, err := p.load(ctx)
	if err != nil {
		p.logger.Error("embedding model init failed", zap.String("model", p.model), zap.Error(err))
		return nil, embeddingError("init %s: %v", p.model, err)
	}
	p.client = client
	p.logger.Info("embedding model ready", zap.String("model", p.model), zap.Int("dimension", p.dim))
	return client, nil
}

func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return zeroVector(p.dim), nil
	}

	client, err := p.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, embeddingError("rate limit wait: %v", err)
		}
	}

	cfg := &genai.EmbedContentConfig{TaskType: taskType}
	if p.dim > 0 {
		d := int32(p.dim)
		cfg.OutputDimensionality = &d
	}

	resp, err := client.EmbedContent(ctx, p.model, genai.Text(text), cfg)
	if err != nil {
		return nil, embeddingError("embed content: %v", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, embeddingError("empty response from %s", p.model)
	}

	values := resp.Embeddings[0].Values
	if len(values) == 0 {
		return nil, embeddingError("empty vector from %s", p.model)
	}
	if p.dim > 0 && len(values) != p.dim {
		return nil, embeddingError("got dimension %d, want %d", len(values), p.dim)
	}

	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return Normalize(out), nil
}
