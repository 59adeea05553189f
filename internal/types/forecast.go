package types

// ForecastMetrics holds the rates derived from an application history.
type ForecastMetrics struct {
	AvgApplicationsPerWeek float64 `json:"avg_applications_per_week"`
	ResponseRate           float64 `json:"response_rate"`  // screening or later
	InterviewRate          float64 `json:"interview_rate"` // interview or offer
	OfferRate              float64 `json:"offer_rate"`
	TotalApplications      int     `json:"total_applications"`
	ObservedWeeks          int     `json:"observed_weeks"`
}

// ProjectionInput describes one forward projection.
type ProjectionInput struct {
	ApplicationsPerWeek float64 `json:"applications_per_week" validate:"gte=0,lte=10000"`
	Weeks               int     `json:"weeks" validate:"gte=0,lte=520"`
	ResponseRate        float64 `json:"response_rate" validate:"gte=0,lte=1"`
	InterviewRate       float64 `json:"interview_rate" validate:"gte=0,lte=1"`
	OfferRate           float64 `json:"offer_rate" validate:"gte=0,lte=1"`
	QualityLiftPct      float64 `json:"quality_lift_pct"`
}

// ProjectionResult is the expected pipeline output over a horizon.
type ProjectionResult struct {
	TotalApplications  float64 `json:"total_applications"`
	ExpectedResponses  int     `json:"expected_responses"`
	ExpectedInterviews int     `json:"expected_interviews"`
	ExpectedOffers     int     `json:"expected_offers"`
}

// Scenario is a named what-if run against derived metrics.
// A zero ApplicationsPerWeek means "keep the observed weekly volume".
type Scenario struct {
	Name                string  `json:"name" validate:"required"`
	ApplicationsPerWeek float64 `json:"applications_per_week" validate:"gte=0,lte=10000"`
	Weeks               int     `json:"weeks" validate:"gt=0,lte=520"`
	QualityLiftPct      float64 `json:"quality_lift_pct"`
}

// ScenarioResult pairs a scenario with its projection.
type ScenarioResult struct {
	Scenario   Scenario         `json:"scenario"`
	Projection ProjectionResult `json:"projection"`
}

// Dashboard is the summary served to the home page.
type Dashboard struct {
	Stages      StageCounts      `json:"stages"`
	Metrics     ForecastMetrics  `json:"metrics"`
	Projection  ProjectionResult `json:"projection"`
	ResumeCount int              `json:"resume_count"`
}
