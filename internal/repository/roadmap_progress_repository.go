package repository

import (
	"context"

	"skill-passport/internal/domain/stats"
)

type RoadmapProgressRepository interface {
	CategoryRoadmaps(ctx context.Context) ([]stats.CategoryRoadmap, error)
	CompletedRoadmaps(ctx context.Context) ([]stats.CompletedRoadmaps, error)
}

type StoreRoadmapProgressRepository struct {
	store Store
}

func NewStoreRoadmapProgressRepository(store Store) *StoreRoadmapProgressRepository {
	return &StoreRoadmapProgressRepository{store: store}
}

func (r *StoreRoadmapProgressRepository) CategoryRoadmaps(ctx context.Context) ([]stats.CategoryRoadmap, error) {
	doc, err := r.store.Read(ctx, CollectionCategoryRoadmaps)
	if err != nil {
		return nil, err
	}
	out, _, err := loadRecords[stats.CategoryRoadmap](CollectionCategoryRoadmaps, doc)
	return out, err
}

// CompletedRoadmaps keeps each record's fields as stored; the aggregator
// decides which values count.
func (r *StoreRoadmapProgressRepository) CompletedRoadmaps(ctx context.Context) ([]stats.CompletedRoadmaps, error) {
	doc, err := r.store.Read(ctx, CollectionCompletedRoadmaps)
	if err != nil {
		return nil, err
	}
	records, _, err := parseDocument(CollectionCompletedRoadmaps, doc)
	if err != nil {
		return nil, err
	}
	out := make([]stats.CompletedRoadmaps, 0, len(records))
	for _, rec := range records {
		out = append(out, stats.CompletedRoadmaps(rec))
	}
	return out, nil
}
