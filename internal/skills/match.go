package skills

import (
	"math"
	"strings"

	"github.com/jonathan/intellihire/internal/strmetrics"
	"github.com/jonathan/intellihire/internal/types"
)

const (
	// PipelineThreshold is the minimum similarity for Match to count a skill as present.
	PipelineThreshold = 60.0
	// DefaultFuzzyThreshold is the conventional threshold for FuzzySkillMatch.
	DefaultFuzzyThreshold = 70.0

	exactSimilarity     = 100.0
	substringSimilarity = 95.0
)

// Match resolves every required skill against the resume skills using three tiers:
// exact membership, substring containment (first hit wins), then best edit-distance similarity.
// The result has exactly one entry per required skill, in input order.
func Match(resumeSkills, requiredSkills []string) types.SkillMatchResult {
	normalized := make([]string, 0, len(resumeSkills))
	present := make(map[string]bool, len(resumeSkills))
	for _, s := range resumeSkills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		normalized = append(normalized, s)
		present[s] = true
	}

	result := types.SkillMatchResult{
		MatchedSkills: []string{},
		MissingSkills: []string{},
		MatchDetails:  make([]types.SkillMatchEntry, 0, len(requiredSkills)),
		TotalRequired: len(requiredSkills),
	}

	for _, req := range requiredSkills {
		entry := matchOne(req, normalized, present)
		if entry.Similarity >= PipelineThreshold {
			entry.Similarity = round1(entry.Similarity)
			result.MatchedSkills = append(result.MatchedSkills, req)
		} else {
			entry = types.SkillMatchEntry{
				Required:   req,
				Found:      types.NotFound,
				Similarity: 0.0,
				Method:     types.MethodNoMatch,
				Algorithm:  types.AlgorithmNone,
			}
			result.MissingSkills = append(result.MissingSkills, req)
		}
		result.MatchDetails = append(result.MatchDetails, entry)
	}

	result.TotalMatched = len(result.MatchedSkills)
	result.TotalMissing = len(result.MissingSkills)
	if result.TotalRequired > 0 {
		result.SkillMatchPercentage = round1(float64(result.TotalMatched) / float64(result.TotalRequired) * 100)
	}

	return result
}

func matchOne(req string, resume []string, present map[string]bool) types.SkillMatchEntry {
	clean := strings.ToLower(strings.TrimSpace(req))
	entry := types.SkillMatchEntry{Required: req}

	if present[clean] {
		entry.Found = clean
		entry.Similarity = exactSimilarity
		entry.Method = types.MethodExact
		entry.Algorithm = types.AlgorithmPatternMatching
		return entry
	}

	for _, s := range resume {
		if strings.Contains(s, clean) || strings.Contains(clean, s) {
			entry.Found = s
			entry.Similarity = substringSimilarity
			entry.Method = types.MethodSubstring
			entry.Algorithm = types.AlgorithmStringMatching
			return entry
		}
	}

	for _, s := range resume {
		if sim := strmetrics.SimilarityScore(s, clean); sim > entry.Similarity {
			entry.Found = s
			entry.Similarity = sim
			entry.Method = types.MethodFuzzy
			entry.Algorithm = types.AlgorithmSimilarityAnalysis
		}
	}
	return entry
}

// FuzzySkillMatch is a standalone matcher independent of Match: for each resume skill
// in order it checks KMP containment in either direction (similarity 100), then
// edit-distance similarity against threshold. The first qualifying skill wins.
func FuzzySkillMatch(resumeSkills []string, required string, threshold float64) (bool, string, float64) {
	required = strings.ToLower(strings.TrimSpace(required))

	for _, s := range resumeSkills {
		s = strings.ToLower(strings.TrimSpace(s))

		if strmetrics.Contains(s, required) || strmetrics.Contains(required, s) {
			return true, s, exactSimilarity
		}
		if sim := strmetrics.SimilarityScore(s, required); sim >= threshold {
			return true, s, sim
		}
	}

	return false, "", 0.0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
