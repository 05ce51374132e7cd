// Package augment asks a language model for a second opinion on an algorithmic
// screening result.
package augment

import (
	"context"
	"strconv"
	"strings"

	"github.com/jonathan/intellihire/internal/llm"
	"github.com/jonathan/intellihire/internal/parsing"
	"github.com/jonathan/intellihire/internal/prompts"
	"github.com/jonathan/intellihire/internal/types"
)

const (
	jobDescriptionLimit = 400
	resumeLimit         = 800
	educationLimit      = 2
)

// Request is everything an augmenter may look at for one resume.
type Request struct {
	Profile        types.CandidateProfile
	Match          types.SkillMatchResult
	ResumeText     string
	JobDescription string
	RequiredSkills []string
}

// Augmenter produces optional scores that override the algorithmic ones field by field.
// A nil result with a nil error means the augmenter had nothing usable.
type Augmenter interface {
	Augment(ctx context.Context, req Request) (*types.AugmentedScores, error)
}

// Func adapts a function to the Augmenter interface.
type Func func(ctx context.Context, req Request) (*types.AugmentedScores, error)

// Augment calls f.
func (f Func) Augment(ctx context.Context, req Request) (*types.AugmentedScores, error) {
	return f(ctx, req)
}

// LLMAugmenter is an Augmenter backed by an llm.Client.
type LLMAugmenter struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMAugmenter creates an augmenter that calls client on the standard tier.
func NewLLMAugmenter(client llm.Client) *LLMAugmenter {
	return &LLMAugmenter{client: client, tier: llm.TierStandard}
}

// Augment sends the candidate summary to the model and parses its JSON verdict.
func (a *LLMAugmenter) Augment(ctx context.Context, req Request) (*types.AugmentedScores, error) {
	resp, err := a.client.GenerateJSON(ctx, BuildPrompt(req), a.tier)
	if err != nil {
		return nil, &parsing.APICallError{Op: "augment candidate", Model: a.client.GetModel(a.tier), Cause: err}
	}

	scores, err := ParseScores(resp)
	if err != nil {
		return nil, err
	}
	if scores.IsEmpty() {
		return nil, nil
	}
	return scores, nil
}

// BuildPrompt renders the augmentation prompt for req.
func BuildPrompt(req Request) string {
	gradYear := "Not specified"
	if req.Profile.GraduationYear != nil {
		gradYear = strconv.Itoa(*req.Profile.GraduationYear)
	}

	education := req.Profile.Education
	if len(education) > educationLimit {
		education = education[:educationLimit]
	}

	template := prompts.MustGet(prompts.Screening, prompts.KeyAugmentCandidate)
	return prompts.Format(template, map[string]string{
		"JobDescription": parsing.Truncate(req.JobDescription, jobDescriptionLimit),
		"RequiredSkills": strings.Join(req.RequiredSkills, ", "),
		"Name":           req.Profile.Name,
		"CandidateType":  req.Profile.CandidateType,
		"GraduationYear": gradYear,
		"Education":      strings.Join(education, ", "),
		"TotalMatched":   strconv.Itoa(req.Match.TotalMatched),
		"TotalRequired":  strconv.Itoa(req.Match.TotalRequired),
		"Resume":         parsing.Truncate(req.ResumeText, resumeLimit),
	})
}
