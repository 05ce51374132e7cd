package types

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Job is a job opening that resumes are screened against.
type Job struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	RequiredSkills     []string  `json:"required_skills"`
	ExperienceRequired string    `json:"experience_required"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateJobRequest is the API payload for creating a job.
// RequiredSkills is a comma-separated list.
type CreateJobRequest struct {
	Title              string `json:"title" validate:"required,max=200"`
	Description        string `json:"description" validate:"required"`
	RequiredSkills     string `json:"required_skills" validate:"required,skilllist"`
	ExperienceRequired string `json:"experience_required,omitempty" validate:"max=100"`
}

// Candidate is a persisted screening result.
type Candidate struct {
	ID       uuid.UUID `json:"id"`
	JobID    uuid.UUID `json:"job_id"`
	Filename string    `json:"filename"`
	AnalysisResult
	RequiredSkills []string  `json:"required_skills,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Stats summarizes stored jobs and candidates.
type Stats struct {
	TotalJobs       int `json:"total_jobs"`
	TotalCandidates int `json:"total_candidates"`
	Freshers        int `json:"freshers"`
	Experienced     int `json:"experienced"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("skilllist", func(fl validator.FieldLevel) bool {
		return len(SplitSkills(fl.Field().String())) > 0
	})
	return v
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	return validate.Struct(r)
}

// Skills returns the parsed required skills.
func (r *CreateJobRequest) Skills() []string {
	return SplitSkills(r.RequiredSkills)
}

// SplitSkills splits a comma-separated skill list, trimming blanks.
func SplitSkills(list string) []string {
	parts := strings.Split(list, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
