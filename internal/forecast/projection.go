package forecast

import (
	"math"

	"github.com/jonathan/climb/internal/types"
)

// Project returns the expected responses, interviews and offers for a weekly
// application volume held over a horizon. The quality lift scales conversion
// rates only; raw volume is taken as given. The projection is closed-form.
//
// Weeks <= 0 or a negative volume yields a zero result.
func Project(in types.ProjectionInput) types.ProjectionResult {
	if in.Weeks <= 0 || in.ApplicationsPerWeek < 0 || !finite(in.ApplicationsPerWeek) {
		return types.ProjectionResult{}
	}

	lift := liftMultiplier(in.QualityLiftPct)
	total := in.ApplicationsPerWeek * float64(in.Weeks)

	return types.ProjectionResult{
		TotalApplications:  total,
		ExpectedResponses:  expected(total, clampUnit(finiteOrZero(in.ResponseRate)*lift)),
		ExpectedInterviews: expected(total, clampUnit(finiteOrZero(in.InterviewRate)*lift)),
		ExpectedOffers:     expected(total, clampUnit(finiteOrZero(in.OfferRate)*lift)),
	}
}

// ProjectFromMetrics projects the observed weekly volume and rates forward.
func ProjectFromMetrics(m types.ForecastMetrics, weeks int, qualityLiftPct float64) types.ProjectionResult {
	return Project(types.ProjectionInput{
		ApplicationsPerWeek: m.AvgApplicationsPerWeek,
		Weeks:               weeks,
		ResponseRate:        m.ResponseRate,
		InterviewRate:       m.InterviewRate,
		OfferRate:           m.OfferRate,
		QualityLiftPct:      qualityLiftPct,
	})
}

// CompareScenarios runs each scenario against the derived rates, in input order.
// A scenario without a weekly volume uses the observed average.
func CompareScenarios(m types.ForecastMetrics, scenarios []types.Scenario) []types.ScenarioResult {
	results := make([]types.ScenarioResult, 0, len(scenarios))
	for _, sc := range scenarios {
		perWeek := sc.ApplicationsPerWeek
		if perWeek == 0 {
			perWeek = m.AvgApplicationsPerWeek
		}
		results = append(results, types.ScenarioResult{
			Scenario: sc,
			Projection: Project(types.ProjectionInput{
				ApplicationsPerWeek: perWeek,
				Weeks:               sc.Weeks,
				ResponseRate:        m.ResponseRate,
				InterviewRate:       m.InterviewRate,
				OfferRate:           m.OfferRate,
				QualityLiftPct:      sc.QualityLiftPct,
			}),
		})
	}
	return results
}

// RequiredWeeklyApplications returns the weekly volume needed to expect targetOffers
// within weeks. Returns 0 when the target cannot be reached at any volume.
func RequiredWeeklyApplications(targetOffers, weeks int, offerRate, qualityLiftPct float64) float64 {
	if targetOffers <= 0 || weeks <= 0 {
		return 0
	}
	rate := clampUnit(finiteOrZero(offerRate) * liftMultiplier(qualityLiftPct))
	if rate == 0 {
		return 0
	}
	perWeek := float64(targetOffers) / (rate * float64(weeks))
	// one decimal, rounded up so the projection meets the target
	return math.Ceil(perWeek*10) / 10
}

// Percent formats a rate as a rounded whole percentage.
func Percent(rate float64) int {
	return int(math.Round(clampUnit(rate) * 100))
}

func liftMultiplier(pct float64) float64 {
	return 1 + finiteOrZero(pct)/100
}

// MaxExpected caps an expected count so the conversion to int never overflows.
const MaxExpected = math.MaxInt32

func expected(total, rate float64) int {
	v := math.Round(total * rate)
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v >= MaxExpected {
		return MaxExpected
	}
	return int(v)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if !finite(v) {
		return 0
	}
	return v
}
