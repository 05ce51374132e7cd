package ranking

import (
	"testing"

	"github.com/jonathan/intellihire/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestRankResults_DescendingAndStable(t *testing.T) {
	results := []types.AnalysisResult{
		{CandidateName: "a", OverallScore: 55},
		{CandidateName: "b", OverallScore: 80},
		{CandidateName: "c", OverallScore: 55},
		{CandidateName: "d", OverallScore: 91.5},
	}

	RankResults(results)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.CandidateName
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, names)
}

func TestRankCandidates(t *testing.T) {
	candidates := []types.Candidate{
		{Filename: "low.pdf", AnalysisResult: types.AnalysisResult{OverallScore: 10}},
		{Filename: "high.pdf", AnalysisResult: types.AnalysisResult{OverallScore: 90}},
	}

	RankCandidates(candidates)
	assert.Equal(t, "high.pdf", candidates[0].Filename)
}

func TestRankResults_Empty(t *testing.T) {
	assert.NotPanics(t, func() { RankResults(nil) })
}
