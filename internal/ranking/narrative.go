package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/intellihire/internal/types"
)

const (
	strongSkillThreshold   = 70.0
	moderateSkillThreshold = 50.0
	solidExperienceYears   = 3
	graduationGapYears     = 2
	maxMissingListed       = 3
	maxQuestions           = 3
)

const (
	defaultStrength = "Analysis completed"
	defaultWeakness = "Manual review recommended"
)

func strengthsAndWeaknesses(p types.CandidateProfile, m types.SkillMatchResult, currentYear int) ([]string, []string) {
	var strengths, weaknesses []string

	skill := m.SkillMatchPercentage
	switch {
	case skill >= strongSkillThreshold:
		strengths = append(strengths, fmt.Sprintf("Strong skill match: %d/%d required skills", m.TotalMatched, m.TotalRequired))
	case skill >= moderateSkillThreshold:
		strengths = append(strengths, fmt.Sprintf("Good skill foundation: %d core skills", m.TotalMatched))
	default:
		weaknesses = append(weaknesses, fmt.Sprintf("Limited skill match: Only %d/%d required skills", m.TotalMatched, m.TotalRequired))
	}

	switch {
	case p.IsFresher && p.GraduationYear != nil:
		strengths = append(strengths, fmt.Sprintf("Fresh talent with recent education (%d)", *p.GraduationYear))
	case p.ExperienceYears >= solidExperienceYears:
		strengths = append(strengths, fmt.Sprintf("Solid %d years of professional experience", p.ExperienceYears))
	case p.ExperienceYears > 0:
		strengths = append(strengths, fmt.Sprintf("%d years of relevant experience", p.ExperienceYears))
	case p.GraduationYear != nil && currentYear-*p.GraduationYear > graduationGapYears:
		weaknesses = append(weaknesses, fmt.Sprintf("Graduated in %d with no mentioned experience", *p.GraduationYear))
	}

	if len(p.Education) > 0 {
		strengths = append(strengths, "Qualified: "+p.Education[0])
	}

	if m.TotalMissing > 0 {
		listed := m.MissingSkills
		if len(listed) > maxMissingListed {
			listed = listed[:maxMissingListed]
		}
		weaknesses = append(weaknesses, fmt.Sprintf("Missing %d skills: %s", m.TotalMissing, strings.Join(listed, ", ")))
	}

	if len(strengths) == 0 {
		strengths = []string{defaultStrength}
	}
	if len(weaknesses) == 0 {
		weaknesses = []string{defaultWeakness}
	}
	return strengths, weaknesses
}

func suggestedQuestions(p types.CandidateProfile, m types.SkillMatchResult) []string {
	questions := make([]string, 0, maxQuestions)

	if len(m.MatchedSkills) > 0 {
		questions = append(questions, "Tell us about your experience with "+m.MatchedSkills[0])
	} else {
		questions = append(questions, "Describe your technical experience")
	}

	if len(m.MissingSkills) > 0 {
		questions = append(questions, fmt.Sprintf("How would you approach learning %s?", m.MissingSkills[0]))
	} else {
		questions = append(questions, "What technologies interest you?")
	}

	if p.IsFresher {
		questions = append(questions, "Tell us about your academic projects")
	} else {
		questions = append(questions, "Walk us through a recent challenging project")
	}
	return questions
}

func summary(p types.CandidateProfile, skill float64, rec types.Recommendation) string {
	return fmt.Sprintf("%s - %s. %.1f%% skill match. %s.",
		p.Name, p.CandidateType, skill, rec.Label())
}

func detailedAnalysis(skill, experience, education float64, reasoning string) string {
	return fmt.Sprintf("Comprehensive analysis: Skills=%.1f%%, Experience=%.1f%%, Education=%.1f%%. %s",
		skill, experience, education, reasoning)
}
