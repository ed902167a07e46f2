package repository

import (
	"context"

	"skill-passport/internal/domain/profile"
)

// ProfileSourceRepository reads the partial records a merged profile is
// built from.
type ProfileSourceRepository interface {
	// StaticProfiles reports single=true when the collection holds one bare
	// record rather than a list.
	StaticProfiles(ctx context.Context) (profiles []profile.StaticProfile, single bool, err error)
	Roadmaps(ctx context.Context) ([]profile.Roadmap, error)
	Preassessments(ctx context.Context) ([]profile.Preassessment, error)
}

type StoreProfileSourceRepository struct {
	store Store
}

func NewStoreProfileSourceRepository(store Store) *StoreProfileSourceRepository {
	return &StoreProfileSourceRepository{store: store}
}

func (r *StoreProfileSourceRepository) StaticProfiles(ctx context.Context) ([]profile.StaticProfile, bool, error) {
	doc, err := r.store.Read(ctx, CollectionStaticProfiles)
	if err != nil {
		return nil, false, err
	}
	return loadRecords[profile.StaticProfile](CollectionStaticProfiles, doc)
}

func (r *StoreProfileSourceRepository) Roadmaps(ctx context.Context) ([]profile.Roadmap, error) {
	doc, err := r.store.Read(ctx, CollectionRoadmaps)
	if err != nil {
		return nil, err
	}
	out, _, err := loadRecords[profile.Roadmap](CollectionRoadmaps, doc)
	return out, err
}

func (r *StoreProfileSourceRepository) Preassessments(ctx context.Context) ([]profile.Preassessment, error) {
	doc, err := r.store.Read(ctx, CollectionPreassessments)
	if err != nil {
		return nil, err
	}
	out, _, err := loadRecords[profile.Preassessment](CollectionPreassessments, doc)
	if err != nil {
		return nil, err
	}

	soft := objectKeyOrder(doc, "soft_skill_scores")
	personality := objectKeyOrder(doc, "personality_category_scores")
	for i := range out {
		if i < len(soft) {
			out[i].SoftSkillOrder = soft[i]
		}
		if i < len(personality) {
			out[i].PersonalityOrder = personality[i]
		}
	}
	return out, nil
}
