package profile

import "strings"

// Soft skill keys read from a preassessment record, by persona trait.
const (
	KeyCommunication  = "communication"
	KeyTeamwork       = "teamwork_and_collaboration"
	KeyProblemSolving = "problem_solving"
	KeyLeadership     = "leadership"
	KeyAdaptability   = "adaptability_and_flexibility"
)

// Build assembles a merged profile from already resolved sources. pre may be
// nil when no preassessment exists at all; the persona then scores zero.
//
// roadmaps is flattened in full regardless of owner.
func Build(userID string, static StaticProfile, roadmaps []Roadmap, pre *Preassessment, form FormInput) MergedProfile {
	id := strings.TrimSpace(userID)
	if id == "" {
		id = static.Key()
	}

	var persona PersonaAnalysis
	if pre != nil {
		persona = PersonaFromScores(pre.SoftSkillScores)
	}

	interests := static.Interests
	if interests == nil {
		interests = []string{}
	}
	if form.Skills == nil {
		form.Skills = []string{}
	}

	return MergedProfile{
		UserID:          id,
		Name:            DisplayName(static),
		Email:           static.Email,
		Interests:       interests,
		RoadmapSkills:   FlattenRoadmapSkills(roadmaps),
		PersonaAnalysis: persona,
		FormInput:       form,
	}
}

// PersonaFromScores maps soft skill scores onto the fixed trait set. Missing
// keys score 0.
func PersonaFromScores(scores map[string]float64) PersonaAnalysis {
	return PersonaAnalysis{
		Communication:  scores[KeyCommunication],
		Teamwork:       scores[KeyTeamwork],
		ProblemSolving: scores[KeyProblemSolving],
		Leadership:     scores[KeyLeadership],
		Adaptability:   scores[KeyAdaptability],
	}
}

// DisplayName prefers username, then "first last".
func DisplayName(p StaticProfile) string {
	if p.Username != "" {
		return p.Username
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func FlattenRoadmapSkills(roadmaps []Roadmap) []string {
	out := make([]string, 0)
	for _, r := range roadmaps {
		out = append(out, r.SkillObjectives...)
	}
	return out
}
