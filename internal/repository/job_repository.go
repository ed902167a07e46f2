package repository

import (
	"context"
	"fmt"
	"strings"

	"skill-passport/internal/domain/job"
)

const jobKeyField = "jobId"

type JobRepository interface {
	ListJobs(ctx context.Context) ([]job.Posting, error)
	FindByID(ctx context.Context, jobID string) (job.Posting, error)
	// UpdateEmbeddings sets the embedding of each listed job and returns how
	// many records were changed. Other fields are stored untouched.
	UpdateEmbeddings(ctx context.Context, embeddings map[string][]float64) (int, error)
}

type StoreJobRepository struct {
	store Store
}

func NewStoreJobRepository(store Store) *StoreJobRepository {
	return &StoreJobRepository{store: store}
}

func (r *StoreJobRepository) ListJobs(ctx context.Context) ([]job.Posting, error) {
	doc, err := r.store.Read(ctx, CollectionJobs)
	if err != nil {
		return nil, err
	}
	jobs, _, err := loadRecords[job.Posting](CollectionJobs, doc)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(jobs))
	for i := range jobs {
		id := strings.TrimSpace(jobs[i].ID)
		jobs[i].ID = id
		if id == "" {
			return nil, &ValidationError{Collection: CollectionJobs, Index: i, Reason: "missing jobId"}
		}
		if prev, ok := seen[id]; ok {
			return nil, &ValidationError{Collection: CollectionJobs, Index: i, Reason: fmt.Sprintf("duplicate jobId %q (first at %d)", id, prev)}
		}
		seen[id] = i
	}
	return jobs, nil
}

func (r *StoreJobRepository) FindByID(ctx context.Context, jobID string) (job.Posting, error) {
	jobs, err := r.ListJobs(ctx)
	if err != nil {
		return job.Posting{}, err
	}
	jobID = strings.TrimSpace(jobID)
	for _, j := range jobs {
		if j.ID == jobID {
			return j, nil
		}
	}
	return job.Posting{}, fmt.Errorf("%w: job %q", ErrNotFound, jobID)
}

func (r *StoreJobRepository) UpdateEmbeddings(ctx context.Context, embeddings map[string][]float64) (int, error) {
	if len(embeddings) == 0 {
		return 0, nil
	}

	changed := 0
	err := r.store.Update(ctx, CollectionJobs, func(doc []byte) ([]byte, error) {
		records, _, err := parseDocument(CollectionJobs, doc)
		if err != nil {
			return nil, err
		}
		changed = 0
		for _, rec := range records {
			vec, ok := embeddings[strings.TrimSpace(rawKey(rec[jobKeyField]))]
			if !ok {
				continue
			}
			rec["embedding"] = vec
			changed++
		}
		return marshalRecords(CollectionJobs, records)
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
