package ranking

import (
	"time"

	"github.com/jonathan/intellihire/internal/types"
)

// ScoreInput carries everything Score needs for one resume.
type ScoreInput struct {
	Profile          types.CandidateProfile
	Match            types.SkillMatchResult
	TotalSkillsFound int
	// Augmented is the optional augmenter output. nil or empty means algorithmic mode.
	Augmented *types.AugmentedScores
	// Now stamps the result and anchors graduation-gap rules. Zero means time.Now().
	Now time.Time
}

// Score builds the AnalysisResult for one resume. The algorithmic values are
// always computed; augmenter fields, when present, override them one by one.
func Score(in ScoreInput) types.AnalysisResult {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	result := algorithmic(in.Profile, in.Match, in.TotalSkillsFound, now)
	if in.Augmented.IsEmpty() {
		return result
	}
	return Merge(result, in.Augmented)
}

func algorithmic(p types.CandidateProfile, m types.SkillMatchResult, totalFound int, now time.Time) types.AnalysisResult {
	skill := m.SkillMatchPercentage
	experience := ExperienceScore(p.IsFresher, p.ExperienceYears)
	education := EducationScore(p.Education)
	overall := OverallScore(skill, experience, education)
	rec, reasoning := recommend(overall)
	strengths, weaknesses := strengthsAndWeaknesses(p, m, now.Year())

	return types.AnalysisResult{
		CandidateName:   p.Name,
		Email:           p.Email,
		Phone:           p.Phone,
		Education:       p.Education,
		GraduationYear:  p.GraduationYear,
		ExperienceYears: p.ExperienceYears,
		IsFresher:       p.IsFresher,
		CandidateType:   p.CandidateType,

		MatchedSkills:        m.MatchedSkills,
		MissingSkills:        m.MissingSkills,
		MatchDetails:         m.MatchDetails,
		SkillMatchPercentage: skill,
		TotalSkillsFound:     totalFound,

		OverallScore:         overall,
		ExperienceMatchScore: experience,
		QualificationScore:   education,
		CulturalFitScore:     defaultCulturalFitScore,

		Strengths:          strengths,
		Weaknesses:         weaknesses,
		AISummary:          summary(p, skill, rec),
		DetailedAnalysis:   detailedAnalysis(skill, experience, education, reasoning),
		Recommendation:     rec,
		Reasoning:          reasoning,
		SuggestedQuestions: suggestedQuestions(p, m),

		AnalysisTimestamp: now.UTC(),
	}
}

// Merge overlays augmenter output on an algorithmic result. Fields the augmenter
// left out keep their algorithmic value; scores are clipped to [0,100] and an
// unrecognized recommendation is ignored. AugmenterUsed is set only when at
// least one field was applied.
func Merge(base types.AnalysisResult, aug *types.AugmentedScores) types.AnalysisResult {
	if aug.IsEmpty() {
		return base
	}
	merged := base
	applied := false

	scores := []struct {
		from *float64
		to   *float64
	}{
		{aug.OverallScore, &merged.OverallScore},
		{aug.ExperienceMatchScore, &merged.ExperienceMatchScore},
		{aug.QualificationScore, &merged.QualificationScore},
		{aug.CulturalFitScore, &merged.CulturalFitScore},
	}
	for _, s := range scores {
		if s.from != nil {
			*s.to = clip(*s.from)
			applied = true
		}
	}
	if len(aug.Strengths) > 0 {
		merged.Strengths = aug.Strengths
		applied = true
	}
	if len(aug.Weaknesses) > 0 {
		merged.Weaknesses = aug.Weaknesses
		applied = true
	}
	if aug.AISummary != nil && *aug.AISummary != "" {
		merged.AISummary = *aug.AISummary
		applied = true
	}
	if aug.Recommendation != nil {
		if rec, ok := types.ParseRecommendation(*aug.Recommendation); ok {
			merged.Recommendation = rec
			applied = true
		}
	}
	if aug.Reasoning != nil && *aug.Reasoning != "" {
		merged.Reasoning = *aug.Reasoning
		merged.DetailedAnalysis = *aug.Reasoning
		applied = true
	}
	if len(aug.SuggestedQuestions) > 0 {
		questions := aug.SuggestedQuestions
		if len(questions) > maxQuestions {
			questions = questions[:maxQuestions]
		}
		merged.SuggestedQuestions = questions
		applied = true
	}

	if !applied {
		return base
	}
	merged.AugmenterUsed = true
	return merged
}
