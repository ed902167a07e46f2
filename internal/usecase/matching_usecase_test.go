package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"skill-passport/internal/domain/matching"
	"skill-passport/internal/infrastructure/embedding"
	"skill-passport/internal/repository"
)

type fakeEmbedder struct {
	mu    sync.Mutex
	texts []string
	fn    func(ctx context.Context, text string) ([]float64, error)
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	return f.fn(ctx, text)
}

// skillVectors embeds anything mentioning communication as the soft vector,
// blank text as zero and everything else as the hard vector.
func skillVectors(_ context.Context, text string) ([]float64, error) {
	switch {
	case strings.TrimSpace(text) == "":
		return []float64{0, 0}, nil
	case strings.Contains(text, "communication"):
		return []float64{0.6, 0.8}, nil
	default:
		return []float64{1, 0}, nil
	}
}

const (
	mergedDoc = `[
		{"user_uid":"u1","name":"ada","roadmap_skills":["SQL"],"form_input":{"skills":["Go"]}},
		{"user_uid":"u2","name":"grace","roadmap_skills":[],"form_input":{"skills":[]}}
	]`
	jobsDoc = `[
		{"jobId":"c","title":"No vector"},
		{"jobId":"b","title":"People lead","embedding":[0,1]},
		{"jobId":"a","title":"Go dev","embedding":[1,0]},
		{"jobId":"d","title":"Also Go","embedding":[2,0]}
	]`
)

func newMatchingFixture(t *testing.T, docs map[string]string, emb embedding.Provider, timeout time.Duration) *Matching {
	store := seedStore(t, docs)
	return NewMatchingUsecase(
		repository.NewStoreMergedProfileRepository(store),
		repository.NewStoreProfileSourceRepository(store),
		repository.NewStoreJobRepository(store),
		emb,
		timeout,
		nil,
	)
}

func defaultDocs() map[string]string {
	return map[string]string{
		repository.CollectionMergedProfiles: mergedDoc,
		repository.CollectionPreassessments: preassessmentsDoc,
		repository.CollectionJobs:           jobsDoc,
	}
}

func TestMatching_GetMatchesRanksCatalog(t *testing.T) {
	emb := &fakeEmbedder{fn: skillVectors}
	uc := newMatchingFixture(t, defaultDocs(), emb, time.Second)

	got, err := uc.GetMatches(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.User == nil || got.User.UserID != "u1" {
		t.Fatalf("expected active user u1, got %+v", got.User)
	}
	if strings.Join(got.HardSkills, ",") != "Go,SQL" {
		t.Fatalf("unexpected hard skills %v", got.HardSkills)
	}

	order := make([]string, 0, len(got.Results))
	for _, r := range got.Results {
		order = append(order, r.JobID())
	}
	if strings.Join(order, ",") != "a,d,b,c" {
		t.Fatalf("unexpected ranking %v", order)
	}

	a := got.Results[0]
	if a.HardSkillPercent != 100 || a.SoftSkillPercent != 60 || a.MatchPercent != 80 {
		t.Fatalf("unexpected scores for a: %+v", a)
	}
	c := got.Results[3]
	if c.HardSkillPercent != 0 || c.SoftSkillPercent != 0 || c.MatchPercent != 0 {
		t.Fatalf("expected zero scores without embedding: %+v", c)
	}

	if len(emb.texts) != 2 {
		t.Fatalf("expected two embeddings per request, got %v", emb.texts)
	}
}

func TestMatching_EmptySkillsScoreZero(t *testing.T) {
	emb := &fakeEmbedder{fn: skillVectors}
	uc := newMatchingFixture(t, map[string]string{
		repository.CollectionMergedProfiles: mergedDoc,
		repository.CollectionJobs:           jobsDoc,
	}, emb, 0)

	got, err := uc.GetMatches(context.Background(), "u2")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, r := range got.Results {
		if r.HardSkillPercent != 0 || r.SoftSkillPercent != 0 || r.MatchPercent != 0 {
			t.Fatalf("expected all-zero scores, got %+v", r)
		}
	}
	for _, text := range emb.texts {
		if text != "" {
			t.Fatalf("expected empty skill texts, got %q", text)
		}
	}
}

func TestMatching_NoMergedProfile(t *testing.T) {
	emb := &fakeEmbedder{fn: skillVectors}
	uc := newMatchingFixture(t, map[string]string{
		repository.CollectionJobs: jobsDoc,
	}, emb, 0)

	got, err := uc.GetMatches(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.User != nil {
		t.Fatalf("expected nil user, got %+v", got.User)
	}
	if len(got.Results) != 4 || got.HardSkills == nil {
		t.Fatalf("expected full catalog with empty hard skills, got %+v", got)
	}
}

func TestMatching_EmbeddingFailureAborts(t *testing.T) {
	emb := &fakeEmbedder{fn: func(_ context.Context, text string) ([]float64, error) {
		if strings.Contains(text, "communication") {
			return nil, errors.New("embedding failed: model offline")
		}
		return []float64{1, 0}, nil
	}}
	uc := newMatchingFixture(t, defaultDocs(), emb, 0)

	got, err := uc.GetMatches(context.Background(), "u1")
	if err == nil || !strings.Contains(err.Error(), "embed soft skills") {
		t.Fatalf("expected soft embedding failure, got %v", err)
	}
	if got.Results != nil {
		t.Fatalf("expected no partial results")
	}

	emb.fn = func(context.Context, string) ([]float64, error) {
		return nil, embedding.ErrEmbedding
	}
	if _, err := uc.GetJobMatch(context.Background(), "u1", "a"); !errors.Is(err, embedding.ErrEmbedding) {
		t.Fatalf("expected ErrEmbedding, got %v", err)
	}
}

func TestMatching_TimeoutBoundsEmbedding(t *testing.T) {
	emb := &fakeEmbedder{fn: func(ctx context.Context, _ string) ([]float64, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	uc := newMatchingFixture(t, defaultDocs(), emb, 20*time.Millisecond)

	if _, err := uc.GetMatches(context.Background(), "u1"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestMatching_DimensionMismatch(t *testing.T) {
	emb := &fakeEmbedder{fn: func(context.Context, string) ([]float64, error) {
		return []float64{1, 0, 0}, nil
	}}
	uc := newMatchingFixture(t, defaultDocs(), emb, 0)

	if _, err := uc.GetMatches(context.Background(), "u1"); !errors.Is(err, matching.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestMatching_GetJobMatchEqualsCatalogEntry(t *testing.T) {
	uc := newMatchingFixture(t, defaultDocs(), &fakeEmbedder{fn: skillVectors}, 0)
	ctx := context.Background()

	all, err := uc.GetMatches(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	for _, want := range all.Results {
		got, err := uc.GetJobMatch(ctx, "u1", want.JobID())
		if err != nil {
			t.Fatalf("job %s: %v", want.JobID(), err)
		}
		if got.HardSkillPercent != want.HardSkillPercent || got.SoftSkillPercent != want.SoftSkillPercent || got.MatchPercent != want.MatchPercent {
			t.Fatalf("job %s: single %+v differs from catalog %+v", want.JobID(), got, want)
		}
	}

	if _, err := uc.GetJobMatch(ctx, "u1", "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.GetJobMatch(ctx, "u1", " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
