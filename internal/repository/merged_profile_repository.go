package repository

import (
	"context"
	"strings"

	"skill-passport/internal/domain/profile"
)

type MergedProfileRepository interface {
	List(ctx context.Context) ([]profile.MergedProfile, error)
	// Upsert replaces the record with the same user_uid, or appends one.
	Upsert(ctx context.Context, p profile.MergedProfile) error
}

type StoreMergedProfileRepository struct {
	store Store
}

func NewStoreMergedProfileRepository(store Store) *StoreMergedProfileRepository {
	return &StoreMergedProfileRepository{store: store}
}

func (r *StoreMergedProfileRepository) List(ctx context.Context) ([]profile.MergedProfile, error) {
	doc, err := r.store.Read(ctx, CollectionMergedProfiles)
	if err != nil {
		return nil, err
	}
	out, _, err := loadRecords[profile.MergedProfile](CollectionMergedProfiles, doc)
	if err != nil {
		return nil, err
	}
	for i, p := range out {
		if strings.TrimSpace(p.UserID) == "" {
			return nil, &ValidationError{Collection: CollectionMergedProfiles, Index: i, Reason: "missing user_uid"}
		}
	}
	return out, nil
}

func (r *StoreMergedProfileRepository) Upsert(ctx context.Context, p profile.MergedProfile) error {
	if strings.TrimSpace(p.UserID) == "" {
		return &ValidationError{Collection: CollectionMergedProfiles, Index: -1, Reason: "missing user_uid"}
	}
	rec, err := toRecord(p)
	if err != nil {
		return &ValidationError{Collection: CollectionMergedProfiles, Index: -1, Reason: err.Error()}
	}

	return r.store.Update(ctx, CollectionMergedProfiles, func(doc []byte) ([]byte, error) {
		records, _, err := parseDocument(CollectionMergedProfiles, doc)
		if err != nil {
			return nil, err
		}

		replaced := false
		out := make([]map[string]any, 0, len(records)+1)
		for _, existing := range records {
			if rawKey(existing[profileKeyField]) != p.UserID {
				out = append(out, existing)
				continue
			}
			if !replaced {
				out = append(out, rec)
				replaced = true
			}
		}
		if !replaced {
			out = append(out, rec)
		}
		return marshalRecords(CollectionMergedProfiles, out)
	})
}

const profileKeyField = "user_uid"
