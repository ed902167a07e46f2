package usecase

import (
	"context"
	"fmt"
	"strings"

	"skill-passport/internal/domain/profile"
	"skill-passport/internal/logger"
	"skill-passport/internal/pkg/lookup"
	"skill-passport/internal/repository"

	"go.uber.org/zap"
)

// ProfileNotifier is told about every merged profile that was stored.
type ProfileNotifier interface {
	ProfileUpdated(userID string)
}

type ProfileMergeUsecase interface {
	Merge(ctx context.Context, userID string, form profile.FormInput) (profile.MergedProfile, error)
}

type ProfileMerge struct {
	sources  repository.ProfileSourceRepository
	merged   repository.MergedProfileRepository
	notifier ProfileNotifier
	log      *zap.Logger
}

func NewProfileMergeUsecase(sources repository.ProfileSourceRepository, merged repository.MergedProfileRepository, notifier ProfileNotifier, log *zap.Logger) *ProfileMerge {
	return &ProfileMerge{sources: sources, merged: merged, notifier: notifier, log: logger.OrNop(log)}
}

// Merge rebuilds the user's profile from every source and stores it,
// replacing any earlier version for the same user. The write has completed
// when Merge returns without error.
func (u *ProfileMerge) Merge(ctx context.Context, userID string, form profile.FormInput) (profile.MergedProfile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.MergedProfile{}, fmt.Errorf("%w: user_uid is required", ErrInvalidInput)
	}

	statics, single, err := u.sources.StaticProfiles(ctx)
	if err != nil {
		return profile.MergedProfile{}, err
	}
	if len(statics) == 0 {
		return profile.MergedProfile{}, fmt.Errorf("%w: no static profile records", ErrNotFound)
	}

	static := statics[0]
	if !single {
		rec, exact, _ := lookup.FindByIDOrFallback(statics, userID, profile.StaticProfile.Key)
		if !exact {
			u.log.Warn("static profile not found, using first record",
				zap.String("user_uid", userID),
				zap.String("fallback_uid", rec.Key()),
			)
		}
		static = rec
	}

	roadmaps, err := u.sources.Roadmaps(ctx)
	if err != nil {
		return profile.MergedProfile{}, err
	}

	pre, err := u.preassessment(ctx, userID)
	if err != nil {
		return profile.MergedProfile{}, err
	}

	merged := profile.Build(userID, static, roadmaps, pre, form)
	if err := u.merged.Upsert(ctx, merged); err != nil {
		return profile.MergedProfile{}, err
	}

	u.log.Info("profile merged",
		zap.String("user_uid", merged.UserID),
		zap.Int("roadmap_skills", len(merged.RoadmapSkills)),
		zap.Int("form_skills", len(merged.FormInput.Skills)),
	)
	if u.notifier != nil {
		u.notifier.ProfileUpdated(merged.UserID)
	}
	return merged, nil
}

func (u *ProfileMerge) preassessment(ctx context.Context, userID string) (*profile.Preassessment, error) {
	return resolvePreassessment(ctx, u.sources, userID, u.log)
}

// resolvePreassessment selects the user's preassessment, falling back to the
// first record. It returns nil when there are none.
func resolvePreassessment(ctx context.Context, sources repository.ProfileSourceRepository, userID string, log *zap.Logger) (*profile.Preassessment, error) {
	pres, err := sources.Preassessments(ctx)
	if err != nil {
		return nil, err
	}
	rec, exact, ok := lookup.FindByIDOrFallback(pres, userID, func(p profile.Preassessment) string { return p.UserID })
	if !ok {
		log.Warn("no preassessment records, persona scores default to zero", zap.String("user_uid", userID))
		return nil, nil
	}
	if !exact {
		log.Warn("preassessment not found, using first record",
			zap.String("user_uid", userID),
			zap.String("fallback_uid", rec.UserID),
		)
	}
	return &rec, nil
}
