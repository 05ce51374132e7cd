package augment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jonathan/intellihire/internal/llm"
	"github.com/jonathan/intellihire/internal/parsing"
	"github.com/jonathan/intellihire/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidates(n int) []types.Candidate {
	out := make([]types.Candidate, n)
	for i := range out {
		out[i] = types.Candidate{AnalysisResult: types.AnalysisResult{
			CandidateName:  fmt.Sprintf("Candidate %02d", i),
			OverallScore:   float64(90 - i),
			MatchedSkills:  []string{"python"},
			Recommendation: types.RecommendationRecommended,
		}}
	}
	return out
}

func TestComparer_Compare(t *testing.T) {
	client := &fakeClient{response: "  1. Candidate 00 is strongest.\n"}
	c := NewComparer(client)
	job := types.Job{Title: "Backend Engineer", RequiredSkills: []string{"python", "aws"}}

	text, err := c.Compare(context.Background(), job, candidates(12))
	require.NoError(t, err)
	assert.Equal(t, "1. Candidate 00 is strongest.", text)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, `role "Backend Engineer"`)
	assert.Contains(t, prompt, "REQUIRED SKILLS: python, aws")
	assert.Contains(t, prompt, `"name": "Candidate 09"`)
	assert.NotContains(t, prompt, "Candidate 10", "only the top candidates are sent")
	assert.Equal(t, []llm.ModelTier{llm.TierAdvanced}, client.tiers)
}

func TestComparer_SendsHighestScores(t *testing.T) {
	client := &fakeClient{response: "ok"}
	list := candidates(12)
	list[0], list[11] = list[11], list[0]

	_, err := NewComparer(client).Compare(context.Background(), types.Job{}, list)
	require.NoError(t, err)

	prompt := client.prompts[0]
	assert.Contains(t, prompt, `"name": "Candidate 00"`)
	assert.NotContains(t, prompt, "Candidate 11")
	assert.Equal(t, "Candidate 11", list[0].CandidateName, "input order is untouched")
}

func TestComparer_NoCandidates(t *testing.T) {
	_, err := NewComparer(&fakeClient{}).Compare(context.Background(), types.Job{}, nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestComparer_ClientError(t *testing.T) {
	_, err := NewComparer(&fakeClient{err: errors.New("quota")}).Compare(context.Background(), types.Job{}, candidates(2))
	var apiErr *parsing.APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestComparer_EmptyResponse(t *testing.T) {
	_, err := NewComparer(&fakeClient{response: " \n "}).Compare(context.Background(), types.Job{}, candidates(2))

	var verr *parsing.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unusable model output: empty comparison", err.Error())
}
