// Package ranking scores screened candidates and orders them for review.
package ranking

import (
	"fmt"
	"math"

	"github.com/jonathan/intellihire/internal/types"
)

// Weights of the overall score components.
const (
	skillWeight      = 0.4
	experienceWeight = 0.4
	educationWeight  = 0.2
)

const (
	fresherExperienceScore  = 60.0
	noExperienceScore       = 20.0
	experienceBaseScore     = 20.0
	experiencePerYearScore  = 16.0
	defaultCulturalFitScore = 50.0
)

// Recommendation thresholds on the overall score.
const (
	highlyRecommendedThreshold = 75.0
	recommendedThreshold       = 60.0
	maybeThreshold             = 40.0
)

// ExperienceScore rates experience. Freshers get a flat score instead of being
// penalized for having none.
func ExperienceScore(isFresher bool, years int) float64 {
	switch {
	case isFresher:
		return fresherExperienceScore
	case years <= 0:
		return noExperienceScore
	default:
		return math.Min(experienceBaseScore+experiencePerYearScore*float64(years), 100)
	}
}

// OverallScore combines the component scores into a 0-100 value rounded to one decimal.
func OverallScore(skill, experience, education float64) float64 {
	overall := skillWeight*skill + experienceWeight*experience + educationWeight*education
	return round1(clip(overall))
}

// recommend buckets an overall score and explains the verdict.
func recommend(overall float64) (types.Recommendation, string) {
	switch {
	case overall >= highlyRecommendedThreshold:
		return types.RecommendationHighlyRecommended,
			fmt.Sprintf("Excellent candidate with %.1f%% match - strong skills and qualifications", overall)
	case overall >= recommendedThreshold:
		return types.RecommendationRecommended,
			fmt.Sprintf("Good candidate with %.1f%% match - worth detailed interview", overall)
	case overall >= maybeThreshold:
		return types.RecommendationMaybe,
			fmt.Sprintf("Moderate fit at %.1f%% - consider based on other factors", overall)
	default:
		return types.RecommendationNotRecommended,
			fmt.Sprintf("Below requirements at %.1f%% match", overall)
	}
}

func clip(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(v, 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
