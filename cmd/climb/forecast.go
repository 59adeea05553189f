package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/jonathan/climb/internal/forecast"
	"github.com/jonathan/climb/internal/types"
	"github.com/spf13/cobra"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Forecast the hiring pipeline from an application history file",
	Long: `Derives weekly volume and stage conversion rates from a JSON array of applications
({"status": "...", "applied_date": "...", "created_date": "..."}) and projects them forward.
Dates may be RFC 3339 timestamps or YYYY-MM-DD.`,
	RunE: runForecast,
}

var (
	forecastInput  string
	forecastWeeks  int
	forecastLift   float64
	forecastTarget int
	forecastNow    string
	forecastJSON   bool
)

func init() {
	forecastCmd.Flags().StringVarP(&forecastInput, "in", "i", "", "Path to application history JSON (required)")
	forecastCmd.Flags().IntVarP(&forecastWeeks, "weeks", "w", 8, "Projection horizon in weeks")
	forecastCmd.Flags().Float64Var(&forecastLift, "lift", 0, "Quality lift applied to conversion rates, in percent")
	forecastCmd.Flags().IntVar(&forecastTarget, "target", 0, "Target offers; prints the weekly volume needed to reach it")
	forecastCmd.Flags().StringVar(&forecastNow, "now", "", "Evaluate history as of this date (default today)")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "Print the report as JSON")

	if err := forecastCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(forecastCmd)
}

// forecastReport is the --json output of the forecast command.
type forecastReport struct {
	Metrics    types.ForecastMetrics  `json:"metrics"`
	Weeks      int                    `json:"weeks"`
	LiftPct    float64                `json:"quality_lift_pct"`
	Projection types.ProjectionResult `json:"projection"`
	Goal       *goalReport            `json:"goal,omitempty"`
	Skipped    int                    `json:"skipped,omitempty"`
}

type goalReport struct {
	TargetOffers                int     `json:"target_offers"`
	RequiredApplicationsPerWeek float64 `json:"required_applications_per_week"`
	Reachable                   bool    `json:"reachable"`
}

// historyEntry is one application as written in a history file.
type historyEntry struct {
	Status      string `json:"status"`
	AppliedDate string `json:"applied_date"`
	CreatedDate string `json:"created_date"`
}

func runForecast(cmd *cobra.Command, _ []string) error {
	if forecastWeeks < 0 || forecastWeeks > 520 {
		return fmt.Errorf("weeks must be between 0 and 520, got %d", forecastWeeks)
	}
	if forecastTarget < 0 {
		return fmt.Errorf("target must be non-negative, got %d", forecastTarget)
	}
	if math.IsNaN(forecastLift) || math.IsInf(forecastLift, 0) {
		return fmt.Errorf("lift must be a finite number, got %v", forecastLift)
	}

	now := time.Now()
	if forecastNow != "" {
		t, err := parseDate(forecastNow)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		now = t
	}

	records, skipped, err := loadHistory(forecastInput)
	if err != nil {
		return err
	}
	for _, msg := range skipped {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipping %s\n", msg)
	}

	report := forecastReport{
		Metrics: forecast.DeriveMetrics(records, now),
		Weeks:   forecastWeeks,
		LiftPct: forecastLift,
		Skipped: len(skipped),
	}
	report.Projection = forecast.ProjectFromMetrics(report.Metrics, forecastWeeks, forecastLift)
	if forecastTarget > 0 {
		required := forecast.RequiredWeeklyApplications(forecastTarget, forecastWeeks, report.Metrics.OfferRate, forecastLift)
		report.Goal = &goalReport{
			TargetOffers:                forecastTarget,
			RequiredApplicationsPerWeek: required,
			Reachable:                   required > 0,
		}
	}

	out := cmd.OutOrStdout()
	if forecastJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printForecast(out, report)
	return nil
}

// loadHistory reads a history file. Entries with an unknown status or an
// unparseable date are skipped and described in the returned messages.
func loadHistory(path string) ([]types.ApplicationRecord, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []historyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: expected a JSON array of applications: %w", path, err)
	}

	records := make([]types.ApplicationRecord, 0, len(entries))
	var skipped []string
	for i, e := range entries {
		rec, err := e.record()
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("entry %d: %v", i, err))
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func (e historyEntry) record() (types.ApplicationRecord, error) {
	stage, err := types.ParseStage(e.Status)
	if err != nil {
		return types.ApplicationRecord{}, err
	}
	rec := types.ApplicationRecord{Status: stage}
	if rec.AppliedDate, err = optionalDate(e.AppliedDate); err != nil {
		return types.ApplicationRecord{}, fmt.Errorf("applied_date: %w", err)
	}
	if rec.CreatedDate, err = optionalDate(e.CreatedDate); err != nil {
		return types.ApplicationRecord{}, fmt.Errorf("created_date: %w", err)
	}
	return rec, types.Validator().Struct(rec)
}

func optionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not RFC 3339 or YYYY-MM-DD", raw)
	}
	return t, nil
}

func printForecast(w io.Writer, r forecastReport) {
	m := r.Metrics
	_, _ = fmt.Fprintf(w, "Applications:   %d over %d week(s)\n", m.TotalApplications, m.ObservedWeeks)
	_, _ = fmt.Fprintf(w, "Per week:       %.1f\n", m.AvgApplicationsPerWeek)
	_, _ = fmt.Fprintf(w, "Response rate:  %d%%\n", forecast.Percent(m.ResponseRate))
	_, _ = fmt.Fprintf(w, "Interview rate: %d%%\n", forecast.Percent(m.InterviewRate))
	_, _ = fmt.Fprintf(w, "Offer rate:     %d%%\n", forecast.Percent(m.OfferRate))

	p := r.Projection
	_, _ = fmt.Fprintf(w, "\nProjection over %d week(s), %+.0f%% quality lift:\n", r.Weeks, r.LiftPct)
	_, _ = fmt.Fprintf(w, "  Applications: %.1f\n", p.TotalApplications)
	_, _ = fmt.Fprintf(w, "  Responses:    %d\n", p.ExpectedResponses)
	_, _ = fmt.Fprintf(w, "  Interviews:   %d\n", p.ExpectedInterviews)
	_, _ = fmt.Fprintf(w, "  Offers:       %d\n", p.ExpectedOffers)

	if r.Goal != nil {
		if r.Goal.Reachable {
			_, _ = fmt.Fprintf(w, "\nTo reach %d offer(s) in %d week(s): %.1f applications/week\n",
				r.Goal.TargetOffers, r.Weeks, r.Goal.RequiredApplicationsPerWeek)
		} else {
			_, _ = fmt.Fprintf(w, "\nTarget of %d offer(s) is not reachable: no offers in history or zero horizon\n", r.Goal.TargetOffers)
		}
	}
}
