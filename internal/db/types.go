package db

import (
	"errors"

	"github.com/jonathan/intellihire/internal/types"
)

// ErrJobNotFound is returned when writing candidates for an unknown job.
var ErrJobNotFound = errors.New("job not found")

// JobCreateInput holds the fields needed to create a job.
type JobCreateInput struct {
	Title              string
	Description        string
	RequiredSkills     []string
	ExperienceRequired string
}

// CandidateInput is one analyzed resume to persist.
type CandidateInput struct {
	Filename string
	Result   types.AnalysisResult
}
