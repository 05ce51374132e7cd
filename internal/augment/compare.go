package augment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/intellihire/internal/llm"
	"github.com/jonathan/intellihire/internal/parsing"
	"github.com/jonathan/intellihire/internal/prompts"
	"github.com/jonathan/intellihire/internal/ranking"
	"github.com/jonathan/intellihire/internal/types"
)

// ErrNoCandidates is returned when there is nothing to compare.
var ErrNoCandidates = errors.New("no candidates to compare")

// maxCompared bounds how many top candidates are sent to the model.
const maxCompared = 10

// candidateDigest is the compact view of a candidate sent for comparison.
type candidateDigest struct {
	Name                 string               `json:"name"`
	CandidateType        string               `json:"candidate_type"`
	OverallScore         float64              `json:"overall_score"`
	SkillMatchPercentage float64              `json:"skill_match_percentage"`
	ExperienceYears      int                  `json:"experience_years"`
	Education            []string             `json:"education"`
	MatchedSkills        []string             `json:"matched_skills"`
	MissingSkills        []string             `json:"missing_skills"`
	Recommendation       types.Recommendation `json:"recommendation"`
}

// Comparer asks the model for a free-text comparison of stored candidates.
type Comparer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewComparer creates a Comparer on the advanced tier.
func NewComparer(client llm.Client) *Comparer {
	return &Comparer{client: client, tier: llm.TierAdvanced}
}

// Compare returns the model's ranking, differentiators, hiring recommendation
// and red flags for the given candidates of job. Only the highest scoring
// candidates are sent; the caller's slice is not reordered.
func (c *Comparer) Compare(ctx context.Context, job types.Job, candidates []types.Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	prompt, err := buildComparePrompt(job, candidates)
	if err != nil {
		return "", err
	}

	text, err := c.client.GenerateContent(ctx, prompt, c.tier)
	if err != nil {
		return "", &parsing.APICallError{Op: "compare candidates", Model: c.client.GetModel(c.tier), Cause: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &parsing.ValidationError{Message: "empty comparison"}
	}
	return text, nil
}

func buildComparePrompt(job types.Job, candidates []types.Candidate) (string, error) {
	candidates = append([]types.Candidate(nil), candidates...)
	ranking.RankCandidates(candidates)
	if len(candidates) > maxCompared {
		candidates = candidates[:maxCompared]
	}

	digests := make([]candidateDigest, len(candidates))
	for i, cand := range candidates {
		digests[i] = candidateDigest{
			Name:                 cand.CandidateName,
			CandidateType:        cand.CandidateType,
			OverallScore:         cand.OverallScore,
			SkillMatchPercentage: cand.SkillMatchPercentage,
			ExperienceYears:      cand.ExperienceYears,
			Education:            cand.Education,
			MatchedSkills:        cand.MatchedSkills,
			MissingSkills:        cand.MissingSkills,
			Recommendation:       cand.Recommendation,
		}
	}

	body, err := json.MarshalIndent(digests, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode candidates: %w", err)
	}

	template := prompts.MustGet(prompts.Screening, prompts.KeyCompareCandidates)
	return prompts.Format(template, map[string]string{
		"JobTitle":       job.Title,
		"RequiredSkills": strings.Join(job.RequiredSkills, ", "),
		"Candidates":     string(body),
	}), nil
}
