package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/climb/internal/cache"
	"github.com/jonathan/climb/internal/db"
	"github.com/jonathan/climb/internal/forecast"
	"github.com/jonathan/climb/internal/metrics"
	"github.com/jonathan/climb/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// dashboardWeeks is the horizon of the projection shown on the dashboard.
const dashboardWeeks = 8

// maxGoalWeeks bounds the horizon accepted by the goal planner.
const maxGoalWeeks = 520

// RatePercentages are the derived rates as whole percentages for display.
type RatePercentages struct {
	Response  int `json:"response"`
	Interview int `json:"interview"`
	Offer     int `json:"offer"`
}

// ForecastMetricsResponse represents the response for GET /forecast/metrics
type ForecastMetricsResponse struct {
	Metrics     types.ForecastMetrics `json:"metrics"`
	Percentages RatePercentages       `json:"percentages"`
}

// ScenariosResponse represents the response for POST /forecast/scenarios
type ScenariosResponse struct {
	Metrics types.ForecastMetrics  `json:"metrics"`
	Results []types.ScenarioResult `json:"results"`
}

// GoalResponse represents the response for GET /forecast/goal
type GoalResponse struct {
	TargetOffers               int     `json:"target_offers"`
	Weeks                      int     `json:"weeks"`
	QualityLiftPct             float64 `json:"quality_lift_pct"`
	OfferRate                  float64 `json:"offer_rate"`
	CurrentApplicationsPerWeek float64 `json:"current_applications_per_week"`
	// RequiredApplicationsPerWeek is 0 when Reachable is false.
	RequiredApplicationsPerWeek float64 `json:"required_applications_per_week"`
	Reachable                   bool    `json:"reachable"`
}

func percentages(m types.ForecastMetrics) RatePercentages {
	return RatePercentages{
		Response:  forecast.Percent(m.ResponseRate),
		Interview: forecast.Percent(m.InterviewRate),
		Offer:     forecast.Percent(m.OfferRate),
	}
}

// loadRecords fetches the caller's history in the shape the calculators take.
// Rows with an unknown status are dropped and logged.
func (s *Server) loadRecords(ctx context.Context, userID uuid.UUID) ([]types.ApplicationRecord, error) {
	apps, err := s.db.ListApplications(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, skipped := db.ToRecords(apps)
	if skipped > 0 {
		s.logger.Warn("skipped applications with unknown status",
			zap.Stringer("user_id", userID),
			zap.Int("skipped", skipped),
		)
	}
	return records, nil
}

// loadMetrics returns the caller's derived metrics, read through the cache.
func (s *Server) loadMetrics(ctx context.Context, userID uuid.UUID) (types.ForecastMetrics, error) {
	key := cache.MetricsKey(userID)

	var m types.ForecastMetrics
	hit, err := s.cache.GetJSON(ctx, key, &m)
	if err != nil {
		s.logger.Warn("metrics cache lookup failed", zap.Error(err))
	}
	if hit {
		return m, nil
	}

	records, err := s.loadRecords(ctx, userID)
	if err != nil {
		return types.ForecastMetrics{}, err
	}
	m = forecast.DeriveMetrics(records, s.now())
	metrics.ForecastsComputed.WithLabelValues("metrics").Inc()

	s.storeMetrics(ctx, userID, m)
	return m, nil
}

func (s *Server) storeMetrics(ctx context.Context, userID uuid.UUID, m types.ForecastMetrics) {
	if err := s.cache.SetJSON(ctx, cache.MetricsKey(userID), m); err != nil {
		s.logger.Warn("failed to cache metrics", zap.Error(err))
	}
}

// handleForecastMetrics returns the rates derived from the caller's history
func (s *Server) handleForecastMetrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	m, err := s.loadMetrics(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ForecastMetricsResponse{Metrics: m, Percentages: percentages(m)})
}

// handleProjection projects explicit inputs; no history is involved
func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	var in types.ProjectionInput
	if !decodeAndValidate(w, r, s.logger, &in) {
		return
	}

	result := forecast.Project(in)
	metrics.ForecastsComputed.WithLabelValues("projection").Inc()
	s.jsonResponse(w, http.StatusOK, result)
}

// handleScenarios compares what-if scenarios against the caller's rates
func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var req types.ScenariosRequest
	if !decodeAndValidate(w, r, s.logger, &req) {
		return
	}

	m, err := s.loadMetrics(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	results := forecast.CompareScenarios(m, req.Scenarios)
	metrics.ForecastsComputed.WithLabelValues("scenarios").Inc()
	s.jsonResponse(w, http.StatusOK, ScenariosResponse{Metrics: m, Results: results})
}

// handleGoal works out the weekly volume needed to reach a number of offers
func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	offers, err := strconv.Atoi(q.Get("offers"))
	if err != nil || offers < 1 {
		s.errorResponse(w, http.StatusBadRequest, "offers must be a positive integer")
		return
	}
	weeks, err := strconv.Atoi(q.Get("weeks"))
	if err != nil || weeks < 1 || weeks > maxGoalWeeks {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("weeks must be between 1 and %d", maxGoalWeeks))
		return
	}
	lift := 0.0
	if raw := q.Get("lift"); raw != "" {
		lift, err = strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(lift) || math.IsInf(lift, 0) {
			s.errorResponse(w, http.StatusBadRequest, "lift must be a number")
			return
		}
	}

	m, err := s.loadMetrics(r.Context(), userID)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	required := forecast.RequiredWeeklyApplications(offers, weeks, m.OfferRate, lift)
	metrics.ForecastsComputed.WithLabelValues("goal").Inc()
	s.jsonResponse(w, http.StatusOK, GoalResponse{
		TargetOffers:                offers,
		Weeks:                       weeks,
		QualityLiftPct:              lift,
		OfferRate:                   m.OfferRate,
		CurrentApplicationsPerWeek:  m.AvgApplicationsPerWeek,
		RequiredApplicationsPerWeek: required,
		Reachable:                   required > 0,
	})
}

// handleDashboard gathers stage counts, metrics, a default projection and the
// resume count. The history and the resume count are loaded concurrently.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userID(w, r)
	if !ok {
		return
	}

	var (
		records     []types.ApplicationRecord
		resumeCount int
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		records, err = s.loadRecords(ctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		resumeCount, err = s.db.CountResumes(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.serviceError(w, r, err)
		return
	}

	m := forecast.DeriveMetrics(records, s.now())
	metrics.ForecastsComputed.WithLabelValues("metrics").Inc()
	s.storeMetrics(r.Context(), userID, m)

	s.jsonResponse(w, http.StatusOK, types.Dashboard{
		Stages:      forecast.CountStages(records),
		Metrics:     m,
		Projection:  forecast.ProjectFromMetrics(m, dashboardWeeks, 0),
		ResumeCount: resumeCount,
	})
}
