package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"skill-passport/internal/domain/profile"
	"skill-passport/internal/repository"
)

type recordingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *recordingNotifier) ProfileUpdated(userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, userID)
}

func seedStore(t *testing.T, docs map[string]string) repository.Store {
	t.Helper()
	store := repository.NewFileStore(t.TempDir())
	for name, doc := range docs {
		if err := store.Write(context.Background(), name, []byte(doc)); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	return store
}

const (
	staticProfilesDoc = `[
		{"user_uid":"u1","username":"ada","email":"ada@example.com","interests":["math"]},
		{"user_uid":"u2","first_name":" Grace","last_name":"Hopper ","email":"grace@example.com"}
	]`
	roadmapsDoc = `[
		{"uid":"r1","user_uid":"u1","roadmap_title":"Backend","skill_objectives":["Go","SQL"]},
		{"uid":"r2","user_uid":"u9","roadmap_title":"Cloud","skill_objectives":["Kubernetes"]}
	]`
	preassessmentsDoc = `[
		{"user_uid":"u1","soft_skill_scores":{"communication":80,"teamwork_and_collaboration":70,"problem_solving":60,"leadership":50},"personality_category_scores":{"openness":60,"conscientiousness":40}},
		{"user_uid":"u2","soft_skill_scores":{"adaptability_and_flexibility":90},"personality_category_scores":{}}
	]`
)

func newMergeFixture(t *testing.T, docs map[string]string) (*ProfileMerge, repository.Store, *recordingNotifier) {
	store := seedStore(t, docs)
	n := &recordingNotifier{}
	uc := NewProfileMergeUsecase(
		repository.NewStoreProfileSourceRepository(store),
		repository.NewStoreMergedProfileRepository(store),
		n,
		nil,
	)
	return uc, store, n
}

func TestProfileMerge_BuildsAndStores(t *testing.T) {
	uc, store, n := newMergeFixture(t, map[string]string{
		repository.CollectionStaticProfiles: staticProfilesDoc,
		repository.CollectionRoadmaps:       roadmapsDoc,
		repository.CollectionPreassessments: preassessmentsDoc,
	})

	got, err := uc.Merge(context.Background(), "u1", profile.FormInput{JobRole: "Backend Engineer", Skills: []string{"Go"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.UserID != "u1" || got.Name != "ada" || got.Email != "ada@example.com" {
		t.Fatalf("unexpected identity %+v", got)
	}
	if strings.Join(got.RoadmapSkills, ",") != "Go,SQL,Kubernetes" {
		t.Fatalf("expected every roadmap flattened, got %v", got.RoadmapSkills)
	}
	want := profile.PersonaAnalysis{Communication: 80, Teamwork: 70, ProblemSolving: 60, Leadership: 50}
	if got.PersonaAnalysis != want {
		t.Fatalf("unexpected persona %+v", got.PersonaAnalysis)
	}
	if len(n.ids) != 1 || n.ids[0] != "u1" {
		t.Fatalf("expected one notification, got %v", n.ids)
	}

	stored, err := repository.NewStoreMergedProfileRepository(store).List(context.Background())
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected one stored profile, got %d %v", len(stored), err)
	}
}

func TestProfileMerge_RoundTripSecondFormWins(t *testing.T) {
	uc, store, _ := newMergeFixture(t, map[string]string{
		repository.CollectionStaticProfiles: staticProfilesDoc,
	})
	ctx := context.Background()

	if _, err := uc.Merge(ctx, "u2", profile.FormInput{JobRole: "Analyst", ExperienceYears: 1, Skills: []string{"Excel"}}); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	if _, err := uc.Merge(ctx, "u2", profile.FormInput{JobRole: "Data Engineer", ExperienceYears: 3, Skills: []string{"Spark"}}); err != nil {
		t.Fatalf("second merge: %v", err)
	}

	stored, err := repository.NewStoreMergedProfileRepository(store).List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(stored))
	}
	got := stored[0]
	if got.Name != "Grace Hopper" {
		t.Fatalf("expected trimmed first/last name, got %q", got.Name)
	}
	if got.FormInput.JobRole != "Data Engineer" || got.FormInput.ExperienceYears != 3 || got.FormInput.Skills[0] != "Spark" {
		t.Fatalf("expected second form input, got %+v", got.FormInput)
	}
	if got.PersonaAnalysis != (profile.PersonaAnalysis{}) {
		t.Fatalf("expected zero persona without preassessments, got %+v", got.PersonaAnalysis)
	}
}

func TestProfileMerge_FallbacksAndSingleRecord(t *testing.T) {
	uc, _, _ := newMergeFixture(t, map[string]string{
		repository.CollectionStaticProfiles: `{"uid":"solo","username":"solo-user"}`,
		repository.CollectionPreassessments: preassessmentsDoc,
	})

	got, err := uc.Merge(context.Background(), "unknown", profile.FormInput{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.UserID != "unknown" || got.Name != "solo-user" {
		t.Fatalf("expected request id with single static record, got %+v", got)
	}
	if got.PersonaAnalysis.Communication != 80 {
		t.Fatalf("expected first preassessment fallback, got %+v", got.PersonaAnalysis)
	}
	if got.FormInput.Skills == nil || got.RoadmapSkills == nil {
		t.Fatalf("expected empty, non-nil lists")
	}
}

func TestProfileMerge_Errors(t *testing.T) {
	uc, _, n := newMergeFixture(t, nil)
	ctx := context.Background()

	if _, err := uc.Merge(ctx, " ", profile.FormInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := uc.Merge(ctx, "u1", profile.FormInput{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty static collection, got %v", err)
	}
	if len(n.ids) != 0 {
		t.Fatalf("expected no notifications, got %v", n.ids)
	}

	uc, _, _ = newMergeFixture(t, map[string]string{
		repository.CollectionStaticProfiles: `42`,
	})
	if _, err := uc.Merge(ctx, "u1", profile.FormInput{}); !errors.Is(err, repository.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestProfileMerge_ConcurrentUsersAllStored(t *testing.T) {
	uc, store, _ := newMergeFixture(t, map[string]string{
		repository.CollectionStaticProfiles: staticProfilesDoc,
	})
	ctx := context.Background()

	ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := uc.Merge(ctx, id, profile.FormInput{Skills: []string{id}}); err != nil {
				t.Errorf("merge %s: %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	stored, _ := repository.NewStoreMergedProfileRepository(store).List(ctx)
	if len(stored) != len(ids) {
		t.Fatalf("expected %d stored profiles, got %d", len(ids), len(stored))
	}
}
