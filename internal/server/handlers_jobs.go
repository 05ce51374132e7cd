package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/intellihire/internal/db"
	"github.com/jonathan/intellihire/internal/server/middleware"
	"github.com/jonathan/intellihire/internal/types"
)

const maxJobBodyBytes = 1 << 20

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.store.ListJobs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if jobs == nil {
		jobs = []types.Job{}
	}
	s.successResponse(w, http.StatusOK, "jobs", jobs)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJobBodyBytes))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, &ErrValidation{Message: "invalid JSON body"})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, validationError(err))
		return
	}

	job, err := s.store.CreateJob(r.Context(), db.JobCreateInput{
		Title:              strings.TrimSpace(req.Title),
		Description:        strings.TrimSpace(req.Description),
		RequiredSkills:     req.Skills(),
		ExperienceRequired: strings.TrimSpace(req.ExperienceRequired),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	subject, _ := middleware.Subject(r)
	s.log.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("title", job.Title),
		zap.Int("required_skills", len(job.RequiredSkills)),
		zap.String("subject", subject),
	)
	s.successResponse(w, http.StatusCreated, "job", job)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "job", ID: id.String()})
		return
	}
	s.successResponse(w, http.StatusOK, "job", job)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if s.comparer == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "candidate comparison"})
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	job, err := s.store.GetJob(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "job", ID: id.String()})
		return
	}
	candidates, err := s.store.ListCandidatesByJob(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	comparison, err := s.comparer.Compare(r.Context(), *job, candidates)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.successResponse(w, http.StatusOK, "comparison", comparison)
}

// validationError reports the first failing field of a validator error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Message: err.Error()}
	}
	fe := verrs[0]
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return &ErrValidation{Field: field, Message: "is required"}
	case "max":
		return &ErrValidation{Field: field, Message: fmt.Sprintf("must be at most %s characters", fe.Param())}
	case "skilllist":
		return &ErrValidation{Field: field, Message: "must list at least one skill"}
	default:
		return &ErrValidation{Field: field, Message: "is invalid"}
	}
}

func jsonFieldName(field string) string {
	switch field {
	case "RequiredSkills":
		return "required_skills"
	case "ExperienceRequired":
		return "experience_required"
	default:
		return strings.ToLower(field)
	}
}
