package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-passport/internal/domain/job"
	"skill-passport/internal/domain/matching"
	"skill-passport/internal/domain/profile"
	"skill-passport/internal/infrastructure/embedding"
	"skill-passport/internal/logger"
	"skill-passport/internal/pkg/lookup"
	"skill-passport/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type MatchingUsecase interface {
	GetMatches(ctx context.Context, userID string) (Matches, error)
	GetJobMatch(ctx context.Context, userID, jobID string) (matching.MatchResult, error)
}

// Matches is the ranked catalog for the active profile. User is nil when no
// merged profile exists yet.
type Matches struct {
	User       *profile.MergedProfile
	HardSkills []string
	Results    []matching.MatchResult
}

type Matching struct {
	merged   repository.MergedProfileRepository
	sources  repository.ProfileSourceRepository
	jobs     repository.JobRepository
	embedder embedding.Provider
	timeout  time.Duration
	log      *zap.Logger
}

// NewMatchingUsecase builds the matcher. timeout bounds both skill
// embeddings of a request; zero leaves only the caller's deadline.
func NewMatchingUsecase(
	merged repository.MergedProfileRepository,
	sources repository.ProfileSourceRepository,
	jobs repository.JobRepository,
	embedder embedding.Provider,
	timeout time.Duration,
	log *zap.Logger,
) *Matching {
	return &Matching{
		merged:   merged,
		sources:  sources,
		jobs:     jobs,
		embedder: embedder,
		timeout:  timeout,
		log:      logger.OrNop(log),
	}
}

func (u *Matching) GetMatches(ctx context.Context, userID string) (Matches, error) {
	q, err := u.query(ctx, userID)
	if err != nil {
		return Matches{}, err
	}

	jobs, err := u.jobs.ListJobs(ctx)
	if err != nil {
		return Matches{}, err
	}
	u.warnMissingEmbeddings(jobs)

	results, err := matching.ScoreAll(q.hard, q.soft, jobs)
	if err != nil {
		return Matches{}, fmt.Errorf("score catalog: %w", err)
	}

	return Matches{User: q.user, HardSkills: q.hardSkills, Results: results}, nil
}

func (u *Matching) GetJobMatch(ctx context.Context, userID, jobID string) (matching.MatchResult, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return matching.MatchResult{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}

	j, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return matching.MatchResult{}, fmt.Errorf("%w: job %q", ErrNotFound, jobID)
		}
		return matching.MatchResult{}, err
	}

	q, err := u.query(ctx, userID)
	if err != nil {
		return matching.MatchResult{}, err
	}

	res, err := matching.ScoreJob(q.hard, q.soft, j)
	if err != nil {
		return matching.MatchResult{}, fmt.Errorf("score job %s: %w", jobID, err)
	}
	return res, nil
}

type matchQuery struct {
	user       *profile.MergedProfile
	hardSkills []string
	hard, soft []float64
}

// query resolves the active profile and preassessment and embeds both skill
// texts concurrently. Either embedding failing fails the request.
func (u *Matching) query(ctx context.Context, userID string) (matchQuery, error) {
	profiles, err := u.merged.List(ctx)
	if err != nil {
		return matchQuery{}, err
	}

	var q matchQuery
	active, exact, ok := lookup.FindByIDOrFallback(profiles, userID, func(p profile.MergedProfile) string { return p.UserID })
	if ok {
		if !exact && strings.TrimSpace(userID) != "" {
			u.log.Warn("merged profile not found, using first record",
				zap.String("user_uid", userID),
				zap.String("fallback_uid", active.UserID),
			)
		}
		q.user = &active
		userID = active.UserID
	} else {
		u.log.Warn("no merged profiles, matching with empty hard skills")
	}

	pre, err := resolvePreassessment(ctx, u.sources, userID, u.log)
	if err != nil {
		return matchQuery{}, err
	}

	hardText := ""
	if q.user != nil {
		q.hardSkills = profile.HardSkills(*q.user)
		hardText = profile.HardSkillText(*q.user)
	} else {
		q.hardSkills = []string{}
	}
	softText := profile.SoftSkillText(pre)

	ectx := ctx
	if u.timeout > 0 {
		var cancel context.CancelFunc
		ectx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ectx)
	g.Go(func() error {
		v, err := u.embedder.Embed(gctx, hardText)
		if err != nil {
			return fmt.Errorf("embed hard skills: %w", err)
		}
		q.hard = v
		return nil
	})
	g.Go(func() error {
		v, err := u.embedder.Embed(gctx, softText)
		if err != nil {
			return fmt.Errorf("embed soft skills: %w", err)
		}
		q.soft = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return matchQuery{}, err
	}
	return q, nil
}

func (u *Matching) warnMissingEmbeddings(jobs []job.Posting) {
	missing := 0
	for _, j := range jobs {
		if !j.HasEmbedding() {
			missing++
		}
	}
	if missing > 0 {
		u.log.Warn("postings without embedding score zero", zap.Int("count", missing), zap.Int("total", len(jobs)))
	}
}
