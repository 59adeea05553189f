package forecast

import (
	"math"
	"testing"

	"github.com/jonathan/climb/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestProject_Baseline(t *testing.T) {
	got := Project(types.ProjectionInput{
		ApplicationsPerWeek: 10,
		Weeks:               8,
		ResponseRate:        0.3,
		InterviewRate:       0.15,
		OfferRate:           0.05,
	})

	assert.Equal(t, 12, got.ExpectedInterviews)
	assert.Equal(t, 4, got.ExpectedOffers)
	assert.Equal(t, 24, got.ExpectedResponses)
	assert.InDelta(t, 80.0, got.TotalApplications, 1e-9)
}

func TestProject_ZeroHorizon(t *testing.T) {
	got := Project(types.ProjectionInput{
		ApplicationsPerWeek: 5,
		Weeks:               0,
		ResponseRate:        0.5,
		InterviewRate:       0.5,
		OfferRate:           0.5,
	})

	assert.Equal(t, types.ProjectionResult{}, got)
}

func TestProject_InvalidInputDegrades(t *testing.T) {
	tests := []struct {
		name string
		in   types.ProjectionInput
	}{
		{"negative weeks", types.ProjectionInput{ApplicationsPerWeek: 5, Weeks: -2, OfferRate: 0.5}},
		{"negative volume", types.ProjectionInput{ApplicationsPerWeek: -1, Weeks: 4, OfferRate: 0.5}},
		{"NaN volume", types.ProjectionInput{ApplicationsPerWeek: math.NaN(), Weeks: 4, OfferRate: 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, types.ProjectionResult{}, Project(tt.in))
		})
	}
}

func TestProject_QualityLiftDoublesRates(t *testing.T) {
	got := Project(types.ProjectionInput{
		ApplicationsPerWeek: 10,
		Weeks:               4,
		ResponseRate:        0,
		InterviewRate:       0.4,
		OfferRate:           0.4,
		QualityLiftPct:      100,
	})

	assert.Equal(t, 32, got.ExpectedInterviews)
	assert.Equal(t, 32, got.ExpectedOffers)
	assert.Equal(t, 0, got.ExpectedResponses)
}

func TestProject_LiftClampsAtOne(t *testing.T) {
	got := Project(types.ProjectionInput{
		ApplicationsPerWeek: 10,
		Weeks:               2,
		InterviewRate:       0.8,
		OfferRate:           0.1,
		QualityLiftPct:      100,
	})

	assert.Equal(t, 20, got.ExpectedInterviews) // 0.8 * 2 clamps to 1.0
	assert.Equal(t, 4, got.ExpectedOffers)
}

func TestProject_HugeVolumeSaturates(t *testing.T) {
	got := Project(types.ProjectionInput{
		ApplicationsPerWeek: 1e300,
		Weeks:               1,
		ResponseRate:        0.5,
		InterviewRate:       0.5,
		OfferRate:           0.5,
	})

	assert.Equal(t, MaxExpected, got.ExpectedResponses)
	assert.Equal(t, MaxExpected, got.ExpectedInterviews)
	assert.Equal(t, MaxExpected, got.ExpectedOffers)

	got = Project(types.ProjectionInput{ApplicationsPerWeek: math.MaxFloat64, Weeks: 520, OfferRate: 1})
	assert.Equal(t, MaxExpected, got.ExpectedOffers)
	assert.Zero(t, got.ExpectedInterviews)
}

func TestProject_NonFiniteRatesCoerceToZero(t *testing.T) {
	got := Project(types.ProjectionInput{
		ApplicationsPerWeek: 10,
		Weeks:               2,
		ResponseRate:        math.Inf(1),
		InterviewRate:       math.NaN(),
		OfferRate:           -0.5,
		QualityLiftPct:      math.NaN(),
	})

	assert.Equal(t, 0, got.ExpectedResponses)
	assert.Equal(t, 0, got.ExpectedInterviews)
	assert.Equal(t, 0, got.ExpectedOffers)
}

func TestProject_Idempotent(t *testing.T) {
	in := types.ProjectionInput{ApplicationsPerWeek: 7.5, Weeks: 6, ResponseRate: 0.2, InterviewRate: 0.1, OfferRate: 0.03, QualityLiftPct: 15}
	assert.Equal(t, Project(in), Project(in))
}

func TestProjectFromMetrics(t *testing.T) {
	m := types.ForecastMetrics{AvgApplicationsPerWeek: 5, ResponseRate: 0.4, InterviewRate: 0.2, OfferRate: 0.1}

	got := ProjectFromMetrics(m, 4, 0)

	assert.Equal(t, 8, got.ExpectedResponses)
	assert.Equal(t, 4, got.ExpectedInterviews)
	assert.Equal(t, 2, got.ExpectedOffers)
}

func TestCompareScenarios(t *testing.T) {
	m := types.ForecastMetrics{AvgApplicationsPerWeek: 5, ResponseRate: 0.4, InterviewRate: 0.2, OfferRate: 0.1}
	scenarios := []types.Scenario{
		{Name: "current pace", Weeks: 4},
		{Name: "double volume", ApplicationsPerWeek: 10, Weeks: 4},
		{Name: "better resume", Weeks: 4, QualityLiftPct: 50},
	}

	results := CompareScenarios(m, scenarios)

	assert.Len(t, results, 3)
	assert.Equal(t, "current pace", results[0].Scenario.Name)
	assert.Equal(t, 2, results[0].Projection.ExpectedOffers)
	assert.Equal(t, 4, results[1].Projection.ExpectedOffers)
	assert.Equal(t, 6, results[2].Projection.ExpectedInterviews) // 20 * 0.3
	assert.Empty(t, CompareScenarios(m, nil))
}

func TestRequiredWeeklyApplications(t *testing.T) {
	assert.InDelta(t, 3.0, RequiredWeeklyApplications(3, 10, 0.1, 0), 1e-9)
	assert.InDelta(t, 0.4, RequiredWeeklyApplications(1, 5, 0.5, 0), 1e-9)
	assert.Equal(t, 0.0, RequiredWeeklyApplications(3, 10, 0, 50))
	assert.Equal(t, 0.0, RequiredWeeklyApplications(3, 0, 0.1, 0))
	assert.Equal(t, 0.0, RequiredWeeklyApplications(0, 10, 0.1, 0))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0))
	assert.Equal(t, 15, Percent(0.15))
	assert.Equal(t, 33, Percent(1.0/3.0))
	assert.Equal(t, 100, Percent(1.7))
	assert.Equal(t, 0, Percent(math.NaN()))
}
