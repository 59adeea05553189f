package server

import (
	"net/http"

	"github.com/jonathan/climb/internal/ats"
	"github.com/jonathan/climb/internal/ingestion"
	"github.com/jonathan/climb/internal/metrics"
	"github.com/jonathan/climb/internal/types"
	"go.uber.org/zap"
)

// handleScore scores a resume supplied in the body against job terms
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req types.ScoreRequest
	if !decodeJSON(w, r, s.logger, &req) {
		return
	}

	result := ats.Score(&req.Resume, &req.Job)
	metrics.ATSScores.Observe(float64(result.Score))
	s.jsonResponse(w, http.StatusOK, result)
}

// handleExtractKeywords pulls screening terms out of a job posting.
// HTML input is reduced to the description text first.
func (s *Server) handleExtractKeywords(w http.ResponseWriter, r *http.Request) {
	if s.llm == nil {
		s.serviceError(w, r, ErrExtractionUnavailable)
		return
	}

	var req types.ExtractKeywordsRequest
	if !decodeAndValidate(w, r, s.logger, &req) {
		return
	}

	text := req.Text
	if req.HTML != "" {
		var err error
		text, err = ingestion.ExtractJobText(req.HTML)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	job, err := ats.ExtractKeywords(r.Context(), s.llm, text)
	if err != nil {
		metrics.KeywordExtractions.WithLabelValues("error").Inc()
		s.serviceError(w, r, err)
		return
	}
	metrics.KeywordExtractions.WithLabelValues("ok").Inc()
	s.logger.Debug("extracted keywords",
		zap.Int("keywords", len(job.Keywords)),
		zap.Int("requirements", len(job.Requirements)),
	)
	s.jsonResponse(w, http.StatusOK, job)
}
