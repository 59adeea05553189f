package server

import (
	"net/http"

	"github.com/jonathan/climb/internal/ats"
	"github.com/jonathan/climb/internal/cache"
	"github.com/jonathan/climb/internal/db"
	"github.com/jonathan/climb/internal/metrics"
	"github.com/jonathan/climb/internal/types"
	"go.uber.org/zap"
)

// ListResumesResponse represents the response for listing resumes
type ListResumesResponse struct {
	Resumes []db.Resume `json:"resumes"`
	Count   int         `json:"count"`
}

// handleListResumes lists the caller's resumes
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	resumes, err := s.db.ListResumes(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListResumesResponse{Resumes: resumes, Count: len(resumes)})
}

// handleCreateResume stores a resume document
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req types.CreateResumeRequest
	if !decodeAndValidate(w, r, s.logger, &req) {
		return
	}

	resume, err := s.db.CreateResume(r.Context(), userID, req.Title, &req.Content)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleGetResume retrieves one resume
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	resume, err := s.db.GetResume(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

// handleScoreResume scores a stored resume against the job terms in the body.
// Results are cached per resume and term set.
func (s *Server) handleScoreResume(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "resume")
	if !ok {
		return
	}

	var job types.JobRequirements
	if !decodeJSON(w, r, s.logger, &job) {
		return
	}

	ctx := r.Context()
	resume, err := s.db.GetResume(ctx, userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	// resumes are immutable once stored, so the ID and term list identify the result
	key := cache.ATSKey(resume.ID, &job)
	var result types.ATSResult
	hit, err := s.cache.GetJSON(ctx, key, &result)
	if err != nil {
		s.logger.Warn("ats cache lookup failed", zap.Error(err))
	}
	if !hit {
		result = ats.Score(&resume.Content, &job)
		if err := s.cache.SetJSON(ctx, key, result); err != nil {
			s.logger.Warn("failed to cache ats result", zap.Error(err))
		}
	}

	metrics.ATSScores.Observe(float64(result.Score))
	s.jsonResponse(w, http.StatusOK, result)
}
