package profile

import (
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	static := StaticProfile{UserID: "u1", FirstName: " Ada", LastName: "Lovelace ", Email: "ada@example.com", Interests: []string{"math"}}
	roadmaps := []Roadmap{
		{UserID: "u1", SkillObjectives: []string{"Go", "SQL"}},
		{UserID: "someone-else", SkillObjectives: []string{"Docker"}},
		{UserID: "u1"},
	}
	pre := &Preassessment{SoftSkillScores: map[string]float64{
		"communication":                80,
		"teamwork_and_collaboration":   70,
		"adaptability_and_flexibility": 55,
		"unrelated":                    99,
	}}
	form := FormInput{JobRole: "Backend", Skills: []string{"Go"}}

	got := Build("u1", static, roadmaps, pre, form)

	if got.UserID != "u1" {
		t.Fatalf("expected user u1, got %q", got.UserID)
	}
	if got.Name != "Ada Lovelace" {
		t.Fatalf("expected trimmed full name, got %q", got.Name)
	}
	if !reflect.DeepEqual(got.RoadmapSkills, []string{"Go", "SQL", "Docker"}) {
		t.Fatalf("unexpected roadmap skills %v", got.RoadmapSkills)
	}
	want := PersonaAnalysis{Communication: 80, Teamwork: 70, Adaptability: 55}
	if got.PersonaAnalysis != want {
		t.Fatalf("expected persona %+v, got %+v", want, got.PersonaAnalysis)
	}
	if got.FormInput.JobRole != "Backend" {
		t.Fatalf("expected form input carried through")
	}
}

func TestBuild_Defaults(t *testing.T) {
	got := Build("", StaticProfile{UID: "legacy", Username: "neo"}, nil, nil, FormInput{})

	if got.UserID != "legacy" {
		t.Fatalf("expected fallback to uid, got %q", got.UserID)
	}
	if got.Name != "neo" {
		t.Fatalf("expected username, got %q", got.Name)
	}
	if got.PersonaAnalysis != (PersonaAnalysis{}) {
		t.Fatalf("expected zero persona, got %+v", got.PersonaAnalysis)
	}
	if got.Interests == nil || got.RoadmapSkills == nil || got.FormInput.Skills == nil {
		t.Fatalf("expected non-nil slices")
	}
}

func TestHardSkillText(t *testing.T) {
	p := MergedProfile{
		RoadmapSkills: []string{"SQL", "Go"},
		FormInput:     FormInput{Skills: []string{"Go", "Docker"}},
	}
	if got := HardSkillText(p); got != "Go Docker SQL Go" {
		t.Fatalf("unexpected hard skill text %q", got)
	}

	if got := HardSkillText(MergedProfile{}); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestSoftSkillText(t *testing.T) {
	pre := &Preassessment{
		SoftSkillScores:           map[string]float64{"problem_solving": 1, "communication": 2},
		PersonalityCategoryScores: map[string]float64{"emotional_stability": 3},
	}
	if got := SoftSkillText(pre); got != "communication problem solving emotional stability" {
		t.Fatalf("unexpected soft skill text %q", got)
	}

	pre.SoftSkillOrder = []string{"problem_solving", "teamwork", "communication"}
	pre.PersonalityOrder = []string{"emotional_stability"}
	if got := SoftSkillText(pre); got != "problem solving communication emotional stability" {
		t.Fatalf("expected stored key order, got %q", got)
	}

	pre.SoftSkillScores["adaptability"] = 4
	if got := SoftSkillText(pre); got != "problem solving communication adaptability emotional stability" {
		t.Fatalf("expected unordered keys after ordered ones, got %q", got)
	}

	if got := SoftSkillText(nil); got != "" {
		t.Fatalf("expected empty text for nil, got %q", got)
	}
	if got := SoftSkillText(&Preassessment{}); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}
