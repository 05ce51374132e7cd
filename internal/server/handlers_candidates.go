package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/intellihire/internal/export"
	"github.com/jonathan/intellihire/internal/types"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "job_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	candidates, err := s.store.ListCandidatesByJob(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if candidates == nil {
		candidates = []types.Candidate{}
	}
	s.successResponse(w, http.StatusOK, "candidates", candidates)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	candidate, err := s.store.GetCandidate(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if candidate == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "candidate", ID: id.String()})
		return
	}
	s.successResponse(w, http.StatusOK, "candidate", candidate)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.successResponse(w, http.StatusOK, "stats", stats)
}

// handleExport streams the job's ranked candidates as an XLSX workbook.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	jobID, err := pathUUID(r, "job_id")
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
	candidates, err := s.store.ListCandidatesByJob(r.Context(), jobID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	report := export.Report{Job: *job, Candidates: candidates, GeneratedAt: s.now()}
	if err := export.Write(&buf, report); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(*job)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
