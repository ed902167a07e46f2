package stats

import (
	"testing"

	"skill-passport/internal/domain/profile"
)

func TestOverallScore(t *testing.T) {
	if got := OverallScore(80, 50); got != 71 {
		t.Fatalf("expected 71, got %d", got)
	}
	if got := OverallScore(0, 0); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := OverallScore(100, 100); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestCompute_Totals(t *testing.T) {
	categories := []CategoryRoadmap{
		{Category: "a", TotalRoadmaps: 10, StartedRoadmaps: 7},
		{Category: "b", TotalRoadmaps: 5, StartedRoadmaps: 5},
	}
	completed := []CompletedRoadmaps{
		{"_id": "x", "a": float64(3), "b": float64(2)},
		{"_id": "y", "a": float64(10), "b": float64(5)},
	}
	pre := &profile.Preassessment{PersonalityCategoryScores: map[string]float64{"openness": 40, "conscientiousness": 61}}

	got := Compute(categories, completed, pre)

	if got.TotalRoadmaps != 15 {
		t.Fatalf("expected totalRoadmaps=15, got %d", got.TotalRoadmaps)
	}
	if got.CompletedRoadmaps != 5 {
		t.Fatalf("expected completedRoadmaps=5, got %d", got.CompletedRoadmaps)
	}
	if got.SkillScore != 33 {
		t.Fatalf("expected skillScore=33, got %d", got.SkillScore)
	}
	// mean(40, 61) = 50.5 rounds to 51
	if got.PersonaScore != 51 {
		t.Fatalf("expected personaScore=51, got %d", got.PersonaScore)
	}
	// 0.7*33 + 0.3*51 = 38.4
	if got.OverallScore != 38 {
		t.Fatalf("expected overallScore=38, got %d", got.OverallScore)
	}
	if got.Certificates != 8 {
		t.Fatalf("expected certificates=8, got %d", got.Certificates)
	}

	if len(got.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got.Categories))
	}
	if c := got.Categories[0]; c.Category != "a" || c.Completed != 3 || c.Total != 10 || c.Percent != 30 {
		t.Fatalf("unexpected breakdown %+v", c)
	}
	if c := got.Categories[1]; c.Completed != 2 || c.Percent != 40 {
		t.Fatalf("unexpected breakdown %+v", c)
	}
}

func TestCompute_EmptyInputs(t *testing.T) {
	got := Compute(nil, nil, nil)
	if got.SkillScore != 0 || got.PersonaScore != 0 || got.OverallScore != 0 {
		t.Fatalf("expected zero scores, got %+v", got)
	}
	if got.TotalRoadmaps != 0 || got.CompletedRoadmaps != 0 {
		t.Fatalf("expected zero counts, got %+v", got)
	}

	got = Compute(nil, nil, &profile.Preassessment{})
	if got.PersonaScore != 0 {
		t.Fatalf("expected personaScore 0 for empty mapping, got %d", got.PersonaScore)
	}
}

func TestCompute_ClampsUnvalidatedData(t *testing.T) {
	categories := []CategoryRoadmap{{Category: "a", TotalRoadmaps: 2}}
	completed := []CompletedRoadmaps{{"_id": "x", "a": float64(9), "note": "ignored"}}
	pre := &profile.Preassessment{PersonalityCategoryScores: map[string]float64{"x": 400}}

	got := Compute(categories, completed, pre)
	if got.SkillScore != 100 {
		t.Fatalf("expected clamped skillScore=100, got %d", got.SkillScore)
	}
	if got.PersonaScore != 100 {
		t.Fatalf("expected clamped personaScore=100, got %d", got.PersonaScore)
	}
	if got.OverallScore != 100 {
		t.Fatalf("expected overallScore=100, got %d", got.OverallScore)
	}
	if got.CompletedRoadmaps != 9 {
		t.Fatalf("expected non-numeric values skipped, got %d", got.CompletedRoadmaps)
	}

	neg := Compute(categories, []CompletedRoadmaps{{"a": float64(-5)}}, &profile.Preassessment{PersonalityCategoryScores: map[string]float64{"x": -20}})
	if neg.SkillScore != 0 || neg.PersonaScore != 0 || neg.OverallScore != 0 || neg.CompletedRoadmaps != 0 {
		t.Fatalf("expected negatives clamped to 0, got %+v", neg)
	}
}
