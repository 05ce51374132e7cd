package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/intellihire/internal/db"
	"github.com/jonathan/intellihire/internal/ingestion"
	"github.com/jonathan/intellihire/internal/pipeline"
	"github.com/jonathan/intellihire/internal/types"
)

// skippedResume reports a file that was not screened.
type skippedResume struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// handleAnalyze screens uploaded resumes against a job and stores the ranked batch.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUpload {
		s.writeError(w, r, &http.MaxBytesError{Limit: s.maxUpload})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, err)
			return
		}
		s.writeError(w, r, &ErrValidation{Message: "Missing job_id or resume files"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	rawJobID := r.FormValue("job_id")
	files := r.MultipartForm.File["resumes"]
	if rawJobID == "" || len(files) == 0 {
		s.writeError(w, r, &ErrValidation{Message: "Missing job_id or resume files"})
		return
	}

	jobID, err := parseUUID("job_id", rawJobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if job == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "job", ID: jobID.String()})
		return
	}

	inputs := make([]pipeline.ResumeInput, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			s.log.Warn("failed to open upload", zap.String("filename", fh.Filename), zap.Error(err))
			inputs = append(inputs, pipeline.ResumeInput{Filename: fh.Filename})
			continue
		}
		text := ingestion.ExtractText(fh.Filename, f)
		_ = f.Close()
		inputs = append(inputs, pipeline.ResumeInput{Filename: fh.Filename, Text: text})
	}

	items, err := s.engine.AnalyzeBatch(r.Context(), *job, inputs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	toSave := make([]db.CandidateInput, 0, len(items))
	skipped := []skippedResume{}
	for _, item := range items {
		if item.Skipped || item.Result == nil {
			skipped = append(skipped, skippedResume{Filename: item.Filename, Reason: item.SkipReason})
			continue
		}
		toSave = append(toSave, db.CandidateInput{Filename: item.Filename, Result: *item.Result})
	}

	candidates := []types.Candidate{}
	if len(toSave) > 0 {
		candidates, err = s.store.SaveCandidates(r.Context(), job.ID, toSave)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	s.log.Info("batch screened",
		zap.String("job_id", job.ID.String()),
		zap.Int("uploaded", len(files)),
		zap.Int("analyzed", len(candidates)),
		zap.Int("skipped", len(skipped)),
		zap.Bool("augmented", s.engine.AugmenterEnabled()),
	)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":         true,
		"candidates":      candidates,
		"skipped":         skipped,
		"total_processed": len(candidates),
	})
}
