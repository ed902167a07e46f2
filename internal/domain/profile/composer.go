package profile

import (
	"sort"
	"strings"
)

// HardSkills lists form skills followed by roadmap skills, duplicates kept.
func HardSkills(p MergedProfile) []string {
	out := make([]string, 0, len(p.FormInput.Skills)+len(p.RoadmapSkills))
	out = append(out, p.FormInput.Skills...)
	out = append(out, p.RoadmapSkills...)
	return out
}

func HardSkillText(p MergedProfile) string {
	return strings.Join(HardSkills(p), " ")
}

// SoftSkillText joins the readable form of every soft skill key followed by
// every personality category key. Keys follow the stored order; keys with no
// known position come last, sorted.
func SoftSkillText(pre *Preassessment) string {
	if pre == nil {
		return ""
	}
	words := make([]string, 0, len(pre.SoftSkillScores)+len(pre.PersonalityCategoryScores))
	words = append(words, readableKeys(pre.SoftSkillScores, pre.SoftSkillOrder)...)
	words = append(words, readableKeys(pre.PersonalityCategoryScores, pre.PersonalityOrder)...)
	return strings.Join(words, " ")
}

func readableKeys(m map[string]float64, order []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(m)-len(keys))
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	keys = append(keys, rest...)
	for i, k := range keys {
		keys[i] = strings.ReplaceAll(k, "_", " ")
	}
	return keys
}
