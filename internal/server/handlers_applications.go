package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/climb/internal/cache"
	"github.com/jonathan/climb/internal/db"
	"github.com/jonathan/climb/internal/types"
	"go.uber.org/zap"
)

// ListApplicationsResponse represents the response for listing applications
type ListApplicationsResponse struct {
	Applications []db.Application `json:"applications"`
	Count        int              `json:"count"`
}

// handleListApplications lists the caller's applications, newest first
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	apps, err := s.db.ListApplications(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ListApplicationsResponse{Applications: apps, Count: len(apps)})
}

// handleCreateApplication records a new application
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req types.CreateApplicationRequest
	if !decodeJSON(w, r, s.logger, &req) {
		return
	}
	req.Status = normalizeStage(req.Status)
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.db.CreateApplication(r.Context(), userID, &db.ApplicationCreateInput{
		Company:     req.Company,
		RoleTitle:   req.RoleTitle,
		JobURL:      req.JobURL,
		Status:      req.Status,
		Notes:       req.Notes,
		AppliedDate: req.AppliedDate,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.invalidateMetrics(r.Context(), userID)
	s.jsonResponse(w, http.StatusCreated, app)
}

// handleGetApplication retrieves one application
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "application")
	if !ok {
		return
	}

	app, err := s.db.GetApplication(r.Context(), userID, id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// handleUpdateApplicationStatus moves an application to another stage
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "application")
	if !ok {
		return
	}

	var req types.UpdateStatusRequest
	if !decodeJSON(w, r, s.logger, &req) {
		return
	}
	req.Status = normalizeStage(req.Status)
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	app, err := s.db.UpdateApplicationStatus(r.Context(), userID, id, req.Status)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.invalidateMetrics(r.Context(), userID)
	s.jsonResponse(w, http.StatusOK, app)
}

// handleDeleteApplication removes an application
func (s *Server) handleDeleteApplication(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "application")
	if !ok {
		return
	}

	if err := s.db.DeleteApplication(r.Context(), userID, id); err != nil {
		s.serviceError(w, r, err)
		return
	}

	s.invalidateMetrics(r.Context(), userID)
	w.WriteHeader(http.StatusNoContent)
}

// normalizeStage accepts any casing of a known stage; unknown values are left
// for validation to reject.
func normalizeStage(s types.Stage) types.Stage {
	if s == "" {
		return s
	}
	if parsed, err := types.ParseStage(string(s)); err == nil {
		return parsed
	}
	return s
}

// invalidateMetrics drops the caller's cached forecast metrics after a write.
// Failures are logged; a stale entry still expires with its TTL.
func (s *Server) invalidateMetrics(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, cache.MetricsKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate cached metrics", zap.Stringer("user_id", userID), zap.Error(err))
	}
}
