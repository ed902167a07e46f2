package repository

import (
	"context"
	"errors"
	"fmt"
)

// Collection names, matching the data files the service was seeded from.
const (
	CollectionStaticProfiles    = "userprofiles"
	CollectionRoadmaps          = "roadmaps"
	CollectionPreassessments    = "preassessments"
	CollectionMergedProfiles    = "merged_profiles"
	CollectionJobs              = "jobs_with_embeddings"
	CollectionCategoryRoadmaps  = "categorywiseroadmap"
	CollectionCompletedRoadmaps = "completedroadmapdata"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrIO         = errors.New("collection io failed")
	ErrValidation = errors.New("invalid collection record")
)

// Store persists named JSON documents. A collection that was never written
// reads as nil without error.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, doc []byte) error
	// Update runs fn on the current document and stores its result. No other
	// Update or Write of the same collection runs while fn executes.
	Update(ctx context.Context, name string, fn func(doc []byte) ([]byte, error)) error
}

type ValidationError struct {
	Collection string
	Index      int
	Reason     string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Collection, e.Reason)
	}
	return fmt.Sprintf("%s[%d]: %s", e.Collection, e.Index, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func ioError(op, name string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrIO, op, name, err)
}
