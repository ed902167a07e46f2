package stats

import (
	"math"
	"sort"

	"skill-passport/internal/domain/profile"
)

const (
	// IdentifierKey is the record id field of a completed-roadmap record.
	IdentifierKey = "_id"

	// Certificates has no data source yet and is reported as a constant.
	Certificates = 8

	skillWeight   = 0.7
	personaWeight = 0.3
)

type CategoryRoadmap struct {
	Category      string `json:"category" mapstructure:"category"`
	TotalRoadmaps int    `json:"total_roadmaps" mapstructure:"total_roadmaps"`
	// StartedRoadmaps is decoded but never counted.
	StartedRoadmaps int `json:"started_roadmaps" mapstructure:"started_roadmaps"`
}

// CompletedRoadmaps maps a category to its completed count, plus the
// IdentifierKey entry.
type CompletedRoadmaps map[string]any

type CategoryProgress struct {
	Category  string `json:"category"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Percent   int    `json:"percent"`
}

type SkillStats struct {
	SkillScore        int                `json:"skillScore"`
	PersonaScore      int                `json:"personaScore"`
	OverallScore      int                `json:"overallScore"`
	TotalRoadmaps     int                `json:"totalRoadmaps"`
	CompletedRoadmaps int                `json:"completedRoadmaps"`
	Certificates      int                `json:"certificates"`
	Categories        []CategoryProgress `json:"categories"`
}

// Compute derives the skill passport summary.
//
// Only the first completed-roadmap record is read. pre may be nil, in which
// case the persona score is 0. Every score is clamped to [0,100].
func Compute(categories []CategoryRoadmap, completed []CompletedRoadmaps, pre *profile.Preassessment) SkillStats {
	var first CompletedRoadmaps
	if len(completed) > 0 {
		first = completed[0]
	}

	total := 0
	for _, c := range categories {
		total += c.TotalRoadmaps
	}
	if total < 0 {
		total = 0
	}

	var done float64
	for k, v := range first {
		if k == IdentifierKey {
			continue
		}
		n, ok := numeric(v)
		if !ok {
			continue
		}
		done += n
	}
	completedCount := int(math.Round(done))
	if completedCount < 0 {
		completedCount = 0
	}

	skill := 0
	if total > 0 {
		skill = int(math.Round(100 * float64(completedCount) / float64(total)))
	}
	skill = clampScore(skill)

	persona := 0
	if pre != nil {
		persona = clampScore(meanScore(pre.PersonalityCategoryScores))
	}

	overall := clampScore(OverallScore(skill, persona))

	return SkillStats{
		SkillScore:        skill,
		PersonaScore:      persona,
		OverallScore:      overall,
		TotalRoadmaps:     total,
		CompletedRoadmaps: completedCount,
		Certificates:      Certificates,
		Categories:        breakdown(categories, first),
	}
}

// OverallScore is round(0.7*skill + 0.3*persona).
func OverallScore(skill, persona int) int {
	return int(math.Round(skillWeight*float64(skill) + personaWeight*float64(persona)))
}

func meanScore(m map[string]float64) int {
	if len(m) == 0 {
		return 0
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sum float64
	for _, k := range keys {
		sum += m[k]
	}
	return int(math.Round(sum / float64(len(m))))
}

func breakdown(categories []CategoryRoadmap, first CompletedRoadmaps) []CategoryProgress {
	out := make([]CategoryProgress, 0, len(categories))
	for _, c := range categories {
		done := 0
		if n, ok := numeric(first[c.Category]); ok {
			done = int(math.Round(n))
		}
		pct := 0
		if c.TotalRoadmaps > 0 {
			pct = clampScore(int(math.Round(100 * float64(done) / float64(c.TotalRoadmaps))))
		}
		out = append(out, CategoryProgress{
			Category:  c.Category,
			Completed: done,
			Total:     c.TotalRoadmaps,
			Percent:   pct,
		})
	}
	return out
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	default:
		return 0, false
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
