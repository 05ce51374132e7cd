// Package strmetrics provides the string similarity primitives used by skill matching:
// edit distance, normalized similarity, longest common subsequence and KMP substring search.
package strmetrics

import (
	"math"
	"strings"
)

// EditDistance returns the Levenshtein distance between a and b, counted in runes.
// Only two DP rows are kept, so memory is O(min(|a|,|b|)).
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// SimilarityScore returns a case-insensitive similarity in [0,100] derived from
// the edit distance, rounded to two decimals. Two empty strings are identical.
func SimilarityScore(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 100.0
	}

	distance := EditDistance(a, b)
	score := (1.0 - float64(distance)/float64(maxLen)) * 100.0
	return math.Round(score*100) / 100
}

// LongestCommonSubsequence returns the length of the longest common subsequence of a and b.
func LongestCommonSubsequence(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	dp := make([][]int, len(ra)+1)
	for i := range dp {
		dp[i] = make([]int, len(rb)+1)
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	return dp[len(ra)][len(rb)]
}

// KMPSearch returns every rune offset in text where pattern starts, ascending.
// Matching is case-insensitive. An empty pattern yields no matches.
func KMPSearch(text, pattern string) []int {
	t := []rune(strings.ToLower(text))
	p := []rune(strings.ToLower(pattern))
	matches := []int{}
	if len(p) == 0 || len(p) > len(t) {
		return matches
	}

	lps := failureFunction(p)
	j := 0
	for i := 0; i < len(t); i++ {
		for j > 0 && t[i] != p[j] {
			j = lps[j-1]
		}
		if t[i] == p[j] {
			j++
		}
		if j == len(p) {
			matches = append(matches, i-len(p)+1)
			j = lps[j-1]
		}
	}

	return matches
}

// failureFunction computes, for each prefix of p, the length of the longest
// proper prefix that is also a suffix.
func failureFunction(p []rune) []int {
	lps := make([]int, len(p))
	length := 0
	for i := 1; i < len(p); i++ {
		for length > 0 && p[i] != p[length] {
			length = lps[length-1]
		}
		if p[i] == p[length] {
			length++
		}
		lps[i] = length
	}
	return lps
}

// Contains reports whether pattern occurs in text using KMPSearch.
func Contains(text, pattern string) bool {
	return len(KMPSearch(text, pattern)) > 0
}
