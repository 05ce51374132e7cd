package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecommendation(t *testing.T) {
	tests := []struct {
		in     string
		want   Recommendation
		wantOK bool
	}{
		{"HIGHLY_RECOMMENDED", RecommendationHighlyRecommended, true},
		{"highly recommended", RecommendationHighlyRecommended, true},
		{"Recommended", RecommendationRecommended, true},
		{"not-recommended", RecommendationNotRecommended, true},
		{"maybe", RecommendationMaybe, true},
		{"STRONG HIRE", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRecommendation(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAugmentedScores_IsEmpty(t *testing.T) {
	var nilScores *AugmentedScores
	assert.True(t, nilScores.IsEmpty())
	assert.True(t, (&AugmentedScores{}).IsEmpty())

	score := 80.0
	assert.False(t, (&AugmentedScores{OverallScore: &score}).IsEmpty())
	assert.False(t, (&AugmentedScores{Strengths: []string{"Go"}}).IsEmpty())
}

func TestSkillMatchEntry_Matched(t *testing.T) {
	assert.True(t, SkillMatchEntry{Method: MethodFuzzy}.Matched())
	assert.False(t, SkillMatchEntry{Method: MethodNoMatch}.Matched())
}

func TestAnalysisResult_Profile(t *testing.T) {
	year := 2024
	r := AnalysisResult{
		CandidateName:  "Asha Rao",
		GraduationYear: &year,
		IsFresher:      true,
		CandidateType:  "Fresher",
		Education:      []string{"B.Tech in CS"},
	}

	p := r.Profile()
	assert.Equal(t, "Asha Rao", p.Name)
	assert.Equal(t, 2024, *p.GraduationYear)
	assert.True(t, p.IsFresher)
	assert.Equal(t, []string{"B.Tech in CS"}, p.Education)
}
