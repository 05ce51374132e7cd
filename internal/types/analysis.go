// Package types provides type definitions for structured data used throughout the screening system.
package types

import (
	"strings"
	"time"
)

// Recommendation is the hiring verdict attached to an analysis.
type Recommendation string

// Recommendation values, best first.
const (
	RecommendationHighlyRecommended Recommendation = "HIGHLY_RECOMMENDED"
	RecommendationRecommended       Recommendation = "RECOMMENDED"
	RecommendationMaybe             Recommendation = "MAYBE"
	RecommendationNotRecommended    Recommendation = "NOT_RECOMMENDED"
)

// Label is the display form, e.g. "HIGHLY RECOMMENDED".
func (r Recommendation) Label() string {
	return strings.ReplaceAll(string(r), "_", " ")
}

// ParseRecommendation maps a loosely formatted string ("highly recommended",
// "HIGHLY_RECOMMENDED") to a Recommendation. ok is false for unknown values.
func ParseRecommendation(s string) (Recommendation, bool) {
	normalized := strings.NewReplacer(" ", "_", "-", "_").Replace(strings.ToUpper(strings.TrimSpace(s)))
	switch rec := Recommendation(normalized); rec {
	case RecommendationHighlyRecommended, RecommendationRecommended,
		RecommendationMaybe, RecommendationNotRecommended:
		return rec, true
	}
	return "", false
}

// MatchMethod describes which matching tier resolved a required skill.
type MatchMethod string

// Matching tiers.
const (
	MethodExact     MatchMethod = "ExactMatch"
	MethodSubstring MatchMethod = "SubstringMatch"
	MethodFuzzy     MatchMethod = "FuzzyMatch"
	MethodNoMatch   MatchMethod = "NoMatch"
)

// Algorithm names the string algorithm family behind a MatchMethod.
type Algorithm string

// Algorithm families.
const (
	AlgorithmPatternMatching    Algorithm = "PatternMatching"
	AlgorithmStringMatching     Algorithm = "StringMatching"
	AlgorithmSimilarityAnalysis Algorithm = "SimilarityAnalysis"
	AlgorithmNone               Algorithm = "None"
)

// NotFound is the Found value of a SkillMatchEntry for a missing skill.
const NotFound = "Not Found"

// CandidateProfile holds the identity, education and experience signals extracted from a resume.
type CandidateProfile struct {
	Name            string   `json:"name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Education       []string `json:"education"`
	GraduationYear  *int     `json:"graduation_year"`
	ExperienceYears int      `json:"experience_years"`
	IsFresher       bool     `json:"is_fresher"`
	CandidateType   string   `json:"candidate_type"`
}

// SkillMatchEntry is the verdict for one required skill.
type SkillMatchEntry struct {
	Required   string      `json:"required"`
	Found      string      `json:"found"`
	Similarity float64     `json:"similarity"`
	Method     MatchMethod `json:"method"`
	Algorithm  Algorithm   `json:"algorithm"`
}

// Matched reports whether the entry resolved to a resume skill.
func (e SkillMatchEntry) Matched() bool {
	return e.Method != MethodNoMatch
}

// SkillMatchResult aggregates the per-skill verdicts for one resume.
type SkillMatchResult struct {
	MatchedSkills        []string          `json:"matched_skills"`
	MissingSkills        []string          `json:"missing_skills"`
	MatchDetails         []SkillMatchEntry `json:"match_details"`
	SkillMatchPercentage float64           `json:"skill_match_percentage"`
	TotalRequired        int               `json:"total_required"`
	TotalMatched         int               `json:"total_matched"`
	TotalMissing         int               `json:"total_missing"`
}

// AnalysisResult is the complete screening output for one resume.
type AnalysisResult struct {
	// Profile
	CandidateName   string   `json:"candidate_name"`
	Email           *string  `json:"email"`
	Phone           *string  `json:"phone"`
	Education       []string `json:"education"`
	GraduationYear  *int     `json:"graduation_year"`
	ExperienceYears int      `json:"experience_years"`
	IsFresher       bool     `json:"is_fresher"`
	CandidateType   string   `json:"candidate_type"`

	// Skill match
	MatchedSkills        []string          `json:"matched_skills"`
	MissingSkills        []string          `json:"missing_skills"`
	MatchDetails         []SkillMatchEntry `json:"match_details"`
	SkillMatchPercentage float64           `json:"skill_match_percentage"`
	TotalSkillsFound     int               `json:"total_skills_found"`

	// Scores
	OverallScore         float64 `json:"overall_score"`
	ExperienceMatchScore float64 `json:"experience_match_score"`
	QualificationScore   float64 `json:"qualification_score"`
	CulturalFitScore     float64 `json:"cultural_fit_score"`

	// Narrative
	Strengths          []string       `json:"strengths"`
	Weaknesses         []string       `json:"weaknesses"`
	AISummary          string         `json:"ai_summary"`
	DetailedAnalysis   string         `json:"detailed_analysis"`
	Recommendation     Recommendation `json:"recommendation"`
	Reasoning          string         `json:"reasoning"`
	SuggestedQuestions []string       `json:"suggested_questions"`

	AugmenterUsed     bool      `json:"augmenter_used"`
	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
}

// Profile returns the CandidateProfile portion of the result.
func (r *AnalysisResult) Profile() CandidateProfile {
	return CandidateProfile{
		Name:            r.CandidateName,
		Email:           r.Email,
		Phone:           r.Phone,
		Education:       r.Education,
		GraduationYear:  r.GraduationYear,
		ExperienceYears: r.ExperienceYears,
		IsFresher:       r.IsFresher,
		CandidateType:   r.CandidateType,
	}
}

// AugmentedScores is the optional output of an external augmenter.
// A nil field means the augmenter did not provide it.
type AugmentedScores struct {
	OverallScore         *float64 `json:"overall_score,omitempty"`
	ExperienceMatchScore *float64 `json:"experience_match_score,omitempty"`
	QualificationScore   *float64 `json:"qualification_score,omitempty"`
	CulturalFitScore     *float64 `json:"cultural_fit_score,omitempty"`
	Strengths            []string `json:"strengths,omitempty"`
	Weaknesses           []string `json:"weaknesses,omitempty"`
	AISummary            *string  `json:"ai_summary,omitempty"`
	Recommendation       *string  `json:"recommendation,omitempty"`
	Reasoning            *string  `json:"reasoning,omitempty"`
	SuggestedQuestions   []string `json:"suggested_questions,omitempty"`
}

// IsEmpty reports whether no field was provided.
func (a *AugmentedScores) IsEmpty() bool {
	if a == nil {
		return true
	}
	return a.OverallScore == nil && a.ExperienceMatchScore == nil &&
		a.QualificationScore == nil && a.CulturalFitScore == nil &&
		len(a.Strengths) == 0 && len(a.Weaknesses) == 0 &&
		a.AISummary == nil && a.Recommendation == nil && a.Reasoning == nil &&
		len(a.SuggestedQuestions) == 0
}
