package ranking

import (
	"sort"

	"github.com/jonathan/intellihire/internal/types"
)

// Outranks reports whether a sorts before b: higher overall score first.
func Outranks(a, b *types.AnalysisResult) bool {
	return a.OverallScore > b.OverallScore
}

// RankResults sorts results by overall score, highest first, in place.
// Equal scores keep their input order.
func RankResults(results []types.AnalysisResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return Outranks(&results[i], &results[j])
	})
}

// RankCandidates is RankResults for persisted candidates.
func RankCandidates(candidates []types.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return Outranks(&candidates[i].AnalysisResult, &candidates[j].AnalysisResult)
	})
}
