package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"skill-passport/internal/domain/job"
	"skill-passport/internal/infrastructure/embedding"
	"skill-passport/internal/logger"
	"skill-passport/internal/repository"

	"go.uber.org/zap"
)

var ErrIncomplete = errors.New("job embedding incomplete")

const logTextLimit = 120

// JobEmbeddingPipeline fills in the embedding of catalog postings.
type JobEmbeddingPipeline struct {
	jobs     repository.JobRepository
	embedder embedding.Provider
	log      *zap.Logger
}

func NewJobEmbeddingPipeline(jobs repository.JobRepository, embedder embedding.Provider, log *zap.Logger) *JobEmbeddingPipeline {
	return &JobEmbeddingPipeline{jobs: jobs, embedder: embedder, log: logger.OrNop(log)}
}

type RunParams struct {
	// Force re-embeds postings that already carry a vector.
	Force   bool
	Workers int
	RPS     float64
}

type Report struct {
	Total    int
	Selected int
	Embedded int
	Failed   map[string]error
	Duration time.Duration
}

// Run embeds every selected posting and writes the vectors back in one
// update. Nothing is written unless every posting succeeded.
func (p *JobEmbeddingPipeline) Run(ctx context.Context, params RunParams) (report Report, err error) {
	start := time.Now()
	report.Failed = map[string]error{}
	defer func() { report.Duration = time.Since(start) }()

	jobs, err := p.jobs.ListJobs(ctx)
	if err != nil {
		return report, err
	}
	report.Total = len(jobs)

	selected := make([]job.Posting, 0, len(jobs))
	for _, j := range jobs {
		if params.Force || !j.HasEmbedding() {
			selected = append(selected, j)
		}
	}
	report.Selected = len(selected)
	if len(selected) == 0 {
		p.log.Info("no postings to embed", zap.Int("total", report.Total))
		return report, nil
	}

	workers := params.Workers
	if workers <= 0 {
		workers = 4
	}
	pool := NewWorkerPool(workers, workers*2)
	pool.SetRateLimit(params.RPS)
	results := pool.Run(ctx)

	var mu sync.Mutex
	vectors := make(map[string][]float64, len(selected))

	go func() {
		defer pool.Close()
		for _, j := range selected {
			j := j
			ok := pool.Submit(ctx, func(ctx context.Context) Result {
				taskStart := time.Now()
				text := j.EmbeddingText()
				vec, err := p.embedder.Embed(ctx, text)
				if err != nil {
					p.log.Warn("posting embedding failed",
						zap.String("job_id", j.ID),
						zap.String("text", logger.Truncate(text, logTextLimit)),
						zap.Duration("duration", time.Since(taskStart)),
						zap.Error(err),
					)
					return Result{Key: j.ID, Err: err}
				}
				mu.Lock()
				vectors[j.ID] = vec
				mu.Unlock()
				p.log.Debug("posting embedded", zap.String("job_id", j.ID), zap.Duration("duration", time.Since(taskStart)))
				return Result{Key: j.ID}
			})
			if !ok {
				return
			}
		}
	}()

	done := 0
	for r := range results {
		done++
		if r.Err != nil {
			report.Failed[r.Key] = r.Err
		}
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	if done < len(selected) || len(report.Failed) > 0 {
		return report, fmt.Errorf("%w: %d of %d postings failed", ErrIncomplete, len(selected)-len(vectors), len(selected))
	}

	n, err := p.jobs.UpdateEmbeddings(ctx, vectors)
	if err != nil {
		return report, err
	}
	report.Embedded = n
	p.log.Info("postings embedded",
		zap.Int("total", report.Total),
		zap.Int("embedded", n),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}
