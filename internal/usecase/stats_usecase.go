package usecase

import (
	"context"

	"skill-passport/internal/domain/stats"
	"skill-passport/internal/logger"
	"skill-passport/internal/repository"

	"go.uber.org/zap"
)

type StatsUsecase interface {
	GetStats(ctx context.Context, userID string) (stats.SkillStats, error)
}

type Stats struct {
	progress repository.RoadmapProgressRepository
	sources  repository.ProfileSourceRepository
	log      *zap.Logger
}

func NewStatsUsecase(progress repository.RoadmapProgressRepository, sources repository.ProfileSourceRepository, log *zap.Logger) *Stats {
	return &Stats{progress: progress, sources: sources, log: logger.OrNop(log)}
}

// GetStats summarizes roadmap completion and persona scores. Completion is
// read from the first completed-roadmap record whoever the user is.
func (u *Stats) GetStats(ctx context.Context, userID string) (stats.SkillStats, error) {
	categories, err := u.progress.CategoryRoadmaps(ctx)
	if err != nil {
		return stats.SkillStats{}, err
	}
	completed, err := u.progress.CompletedRoadmaps(ctx)
	if err != nil {
		return stats.SkillStats{}, err
	}
	if len(completed) > 1 {
		u.log.Debug("only the first completed-roadmap record is counted", zap.Int("records", len(completed)))
	}

	pre, err := resolvePreassessment(ctx, u.sources, userID, u.log)
	if err != nil {
		return stats.SkillStats{}, err
	}

	return stats.Compute(categories, completed, pre), nil
}
